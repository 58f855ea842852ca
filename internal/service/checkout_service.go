package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sorteocloud/raffle-backend/internal/domain"
	"github.com/sorteocloud/raffle-backend/internal/dto"
	"github.com/sorteocloud/raffle-backend/internal/gateway"
	"github.com/sorteocloud/raffle-backend/internal/promotion"
	"github.com/sorteocloud/raffle-backend/internal/repository"
	"github.com/sorteocloud/raffle-backend/pkg/events"
	"github.com/sorteocloud/raffle-backend/pkg/logger"
)

var (
	ErrRaffleNotPurchasable = errors.New("raffle is not open for purchases")
	ErrPackageUnavailable   = errors.New("package is not available for purchase")
	ErrPurchaseLimitReached = errors.New("purchase limit reached for this package")
	ErrNoPaymentProvider    = errors.New("no payment provider configured")
	ErrPaymentFailed        = errors.New("payment processing failed")
)

// gatewayFactory builds a payment gateway from a provider config; it is
// swappable in tests
type gatewayFactory func(cfg *domain.ProviderConfig) (gateway.PaymentGateway, error)

// CheckoutService processes storefront purchases. The final price is
// always re-resolved server side; client-supplied prices are ignored.
type CheckoutService interface {
	// Checkout opens a pending order for one package and a provider-side
	// payment the buyer completes client side
	Checkout(ctx context.Context, raffleSlug string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	// ConfirmPayment reconciles an order with its provider-side payment
	// state after client completion
	ConfirmPayment(ctx context.Context, orderID string) (*dto.OrderResponse, error)
}

// checkoutService implements CheckoutService
type checkoutService struct {
	raffleRepo   repository.RaffleRepository
	packageRepo  repository.PackageRepository
	offerRepo    repository.OfferRepository
	orderRepo    repository.OrderRepository
	providerRepo repository.ProviderRepository
	referralRepo repository.ReferralRepository
	engine       *promotion.Engine
	publisher    events.Publisher
	newGateway   gatewayFactory
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	raffleRepo repository.RaffleRepository,
	packageRepo repository.PackageRepository,
	offerRepo repository.OfferRepository,
	orderRepo repository.OrderRepository,
	providerRepo repository.ProviderRepository,
	referralRepo repository.ReferralRepository,
	engine *promotion.Engine,
	publisher events.Publisher,
) CheckoutService {
	return &checkoutService{
		raffleRepo:   raffleRepo,
		packageRepo:  packageRepo,
		offerRepo:    offerRepo,
		orderRepo:    orderRepo,
		providerRepo: providerRepo,
		referralRepo: referralRepo,
		engine:       engine,
		publisher:    publisher,
		newGateway:   gateway.ForConfig,
	}
}

// Checkout opens a pending order for one package
func (s *checkoutService) Checkout(ctx context.Context, raffleSlug string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if valid, msg := req.Validate(); !valid {
		return nil, errors.New(msg)
	}

	raffle, err := s.raffleRepo.GetBySlug(ctx, raffleSlug)
	if err != nil {
		return nil, err
	}
	if raffle == nil {
		return nil, ErrRaffleNotFound
	}
	if !raffle.IsPurchasable() {
		return nil, ErrRaffleNotPurchasable
	}

	pkg, err := s.packageRepo.GetByID(ctx, req.TicketPackageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil || pkg.RaffleID != raffle.ID {
		return nil, ErrPackageNotFound
	}

	resolved, err := s.resolvePackage(ctx, pkg, raffle)
	if err != nil {
		return nil, err
	}
	if !resolved.IsAvailable {
		return nil, ErrPackageUnavailable
	}

	if err := s.checkPurchaseLimit(ctx, pkg, req.CustomerEmail); err != nil {
		return nil, err
	}

	providerCfg, err := s.providerRepo.GetDefault(ctx, domain.ProviderKindPayment)
	if err != nil {
		return nil, err
	}
	if providerCfg == nil {
		return nil, ErrNoPaymentProvider
	}

	// Take the stock unit before money moves; every failure past this
	// point returns it
	if err := s.packageRepo.ConsumeStock(ctx, pkg.ID); err != nil {
		return nil, err
	}

	order, err := domain.NewOrder(pkg.TenantID, raffle.ID, pkg.ID, req.CustomerEmail,
		resolved.FinalPrice, raffle.Currency, resolved.FinalAmount)
	if err != nil {
		s.releaseStock(ctx, pkg.ID)
		return nil, err
	}
	order.CustomerName = req.CustomerName
	order.ReferralCode = req.ReferralCode
	order.PaymentProvider = providerCfg.ProviderID

	pay, err := s.newGateway(providerCfg)
	if err != nil {
		s.releaseStock(ctx, pkg.ID)
		return nil, err
	}

	intent, err := pay.CreatePaymentIntent(ctx, &gateway.PaymentIntentRequest{
		OrderID:       order.ID,
		AmountCents:   resolved.FinalPrice.Shift(2).Round(0).IntPart(),
		Currency:      raffle.Currency,
		Description:   pkg.Name,
		CustomerEmail: req.CustomerEmail,
		Metadata:      map[string]string{"raffle_id": raffle.ID},
	})
	if err != nil {
		logger.ErrorCtx(ctx, "payment intent creation failed", zap.Error(err), zap.String("order_id", order.ID))
		s.releaseStock(ctx, pkg.ID)
		return nil, ErrPaymentFailed
	}
	order.PaymentRef = intent.PaymentIntentID

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.releaseStock(ctx, pkg.ID)
		return nil, err
	}

	s.publishOrderCreated(ctx, order)

	return &dto.CheckoutResponse{
		OrderID:         order.ID,
		UnitPrice:       order.UnitPrice.StringFixed(2),
		Currency:        order.Currency,
		EntriesGranted:  order.EntriesGranted,
		Status:          order.Status,
		PaymentProvider: order.PaymentProvider,
		PaymentIntentID: intent.PaymentIntentID,
		ClientSecret:    intent.ClientSecret,
	}, nil
}

// ConfirmPayment reconciles an order with its provider-side payment state
func (s *checkoutService) ConfirmPayment(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != domain.OrderStatusPending {
		return dto.FromOrder(order), nil
	}

	// The gateway must match the provider the intent was opened with, not
	// whatever the current default is
	providerCfg, err := s.providerRepo.GetByProvider(ctx, order.PaymentProvider, domain.ProviderKindPayment)
	if err != nil {
		return nil, err
	}
	if providerCfg == nil {
		return nil, ErrNoPaymentProvider
	}

	pay, err := s.newGateway(providerCfg)
	if err != nil {
		return nil, err
	}

	intent, err := pay.ConfirmPaymentIntent(ctx, order.PaymentRef)
	if err != nil {
		return nil, ErrPaymentFailed
	}

	switch intent.Status {
	case gateway.IntentStatusSucceeded:
		if err := s.orderRepo.UpdateStatus(ctx, order.ID, domain.OrderStatusPaid, intent.PaymentIntentID); err != nil {
			return nil, err
		}
		order.Status = domain.OrderStatusPaid
		s.recordConversion(ctx, order)
		s.publishOrderPaid(ctx, order)
	case gateway.IntentStatusFailed:
		if err := s.orderRepo.UpdateStatus(ctx, order.ID, domain.OrderStatusFailed, ""); err != nil {
			return nil, err
		}
		order.Status = domain.OrderStatusFailed
		s.releaseStock(ctx, order.TicketPackageID)
	}

	return dto.FromOrder(order), nil
}

func (s *checkoutService) resolvePackage(ctx context.Context, pkg *domain.TicketPackage, raffle *domain.Raffle) (*promotion.Resolved, error) {
	offerPtrs, err := s.offerRepo.ListByPackage(ctx, pkg.ID)
	if err != nil {
		return nil, err
	}
	offers := make([]domain.TimeLimitedOffer, 0, len(offerPtrs))
	for _, o := range offerPtrs {
		offers = append(offers, *o)
	}

	resolved, err := s.engine.Resolve([]domain.TicketPackage{*pkg}, offers, raffle.BaseTicketPrice, time.Now())
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

// releaseStock returns the unit held by an order that will never be paid.
// Failures only log; the counter stays high rather than going negative.
func (s *checkoutService) releaseStock(ctx context.Context, packageID string) {
	if err := s.packageRepo.ReleaseStock(ctx, packageID); err != nil {
		logger.ErrorCtx(ctx, "stock unit not released", zap.Error(err), zap.String("package_id", packageID))
	}
}

func (s *checkoutService) checkPurchaseLimit(ctx context.Context, pkg *domain.TicketPackage, email string) error {
	if pkg.MaxPurchasesPerUser == nil {
		return nil
	}
	count, err := s.orderRepo.CountByCustomerAndPackage(ctx, email, pkg.ID)
	if err != nil {
		return err
	}
	if count >= int64(*pkg.MaxPurchasesPerUser) {
		return ErrPurchaseLimitReached
	}
	return nil
}

// recordConversion credits the order's referral code. Failures only log;
// the payment already went through.
func (s *checkoutService) recordConversion(ctx context.Context, order *domain.Order) {
	if order.ReferralCode == "" || s.referralRepo == nil {
		return
	}
	ref, err := s.referralRepo.GetByCode(ctx, order.RaffleID, order.ReferralCode)
	if err != nil || ref == nil {
		return
	}
	if err := s.referralRepo.RecordConversion(ctx, ref.ID); err != nil {
		logger.Warn("referral conversion not recorded", zap.Error(err), zap.String("order_id", order.ID))
	}
}

func (s *checkoutService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	event := &dto.OrderCreatedEvent{
		EventType:       "order.created",
		OrderID:         order.ID,
		TenantID:        order.TenantID,
		RaffleID:        order.RaffleID,
		TicketPackageID: order.TicketPackageID,
		CustomerEmail:   order.CustomerEmail,
		UnitPrice:       order.UnitPrice.StringFixed(2),
		Currency:        order.Currency,
		EntriesGranted:  order.EntriesGranted,
		PaymentProvider: order.PaymentProvider,
		ReferralCode:    order.ReferralCode,
		Timestamp:       time.Now(),
	}
	if err := s.publisher.Publish(ctx, dto.TopicOrderCreated, event); err != nil {
		logger.ErrorCtx(ctx, "order created event not published", zap.Error(err), zap.String("order_id", order.ID))
	}
}

func (s *checkoutService) publishOrderPaid(ctx context.Context, order *domain.Order) {
	if s.publisher == nil {
		return
	}
	event := &dto.OrderPaidEvent{
		EventType:      "order.paid",
		OrderID:        order.ID,
		TenantID:       order.TenantID,
		RaffleID:       order.RaffleID,
		CustomerEmail:  order.CustomerEmail,
		EntriesGranted: order.EntriesGranted,
		PaymentRef:     order.PaymentRef,
		Timestamp:      time.Now(),
	}
	if err := s.publisher.Publish(ctx, dto.TopicOrderPaid, event); err != nil {
		logger.ErrorCtx(ctx, "order paid event not published", zap.Error(err), zap.String("order_id", order.ID))
	}
}
