package di

import (
	"time"

	"github.com/sorteocloud/raffle-backend/internal/handler"
	"github.com/sorteocloud/raffle-backend/internal/promotion"
	"github.com/sorteocloud/raffle-backend/internal/repository"
	"github.com/sorteocloud/raffle-backend/internal/service"
	"github.com/sorteocloud/raffle-backend/internal/store"
	"github.com/sorteocloud/raffle-backend/internal/tenancy"
	"github.com/sorteocloud/raffle-backend/pkg/cache"
	"github.com/sorteocloud/raffle-backend/pkg/database"
	"github.com/sorteocloud/raffle-backend/pkg/events"
)

// Container holds all dependencies for the raffle service
type Container struct {
	// Infrastructure
	DB        *database.PostgresDB
	Cache     *cache.Cache
	Publisher events.Publisher
	Store     store.Client

	// Repositories
	TenantRepo   repository.TenantRepository
	RaffleRepo   repository.RaffleRepository
	PackageRepo  repository.PackageRepository
	OfferRepo    repository.OfferRepository
	OrderRepo    repository.OrderRepository
	ProviderRepo repository.ProviderRepository
	ReferralRepo repository.ReferralRepository

	// Services
	TenantService   service.TenantService
	RaffleService   service.RaffleService
	PackageService  service.PackageService
	OfferService    service.OfferService
	ProviderService service.ProviderService
	CatalogService  service.CatalogService
	CheckoutService service.CheckoutService
	OrderService    service.OrderService
	ReferralService service.ReferralService

	// Handlers
	HealthHandler     *handler.HealthHandler
	TenantHandler     *handler.TenantHandler
	RaffleHandler     *handler.RaffleHandler
	PackageHandler    *handler.PackageHandler
	OfferHandler      *handler.OfferHandler
	ProviderHandler   *handler.ProviderHandler
	OrderHandler      *handler.OrderHandler
	ReferralHandler   *handler.ReferralHandler
	StorefrontHandler *handler.StorefrontHandler
}

// ContainerConfig contains configuration for building the container
type ContainerConfig struct {
	DB        *database.PostgresDB
	Cache     *cache.Cache
	Publisher events.Publisher

	// EntriesSuffix labels entry counts in storefront display text
	EntriesSuffix string
	// CatalogCacheTTL bounds how stale a cached storefront catalog may be
	CatalogCacheTTL time.Duration
}

// NewContainer creates a new dependency injection container. Every data
// access path runs through the tenancy guard.
func NewContainer(cfg *ContainerConfig) *Container {
	c := &Container{
		DB:        cfg.DB,
		Cache:     cfg.Cache,
		Publisher: cfg.Publisher,
	}

	// Row store wrapped by the tenant guard
	guarded := tenancy.NewGuard(store.NewPostgresClient(cfg.DB.Pool()), tenancy.DefaultGuardConfig())
	c.Store = guarded

	// Initialize repositories
	c.TenantRepo = repository.NewStoreTenantRepository(guarded)
	c.RaffleRepo = repository.NewStoreRaffleRepository(guarded)
	c.PackageRepo = repository.NewStorePackageRepository(guarded)
	c.OfferRepo = repository.NewStoreOfferRepository(guarded)
	c.OrderRepo = repository.NewStoreOrderRepository(guarded)
	c.ProviderRepo = repository.NewStoreProviderRepository(guarded)
	c.ReferralRepo = repository.NewStoreReferralRepository(guarded)

	engine := promotion.NewEngine(cfg.EntriesSuffix)

	// Initialize services
	c.TenantService = service.NewTenantService(c.TenantRepo)
	c.RaffleService = service.NewRaffleService(c.RaffleRepo)
	c.CatalogService = service.NewCatalogService(c.RaffleRepo, c.PackageRepo, c.OfferRepo, engine, cfg.Cache, cfg.CatalogCacheTTL)
	c.PackageService = service.NewPackageService(c.PackageRepo, c.RaffleRepo, c.CatalogService)
	c.OfferService = service.NewOfferService(c.OfferRepo, c.PackageRepo, c.RaffleRepo, c.CatalogService)
	c.ProviderService = service.NewProviderService(c.ProviderRepo)
	c.CheckoutService = service.NewCheckoutService(c.RaffleRepo, c.PackageRepo, c.OfferRepo, c.OrderRepo,
		c.ProviderRepo, c.ReferralRepo, engine, cfg.Publisher)
	c.OrderService = service.NewOrderService(c.OrderRepo)
	c.ReferralService = service.NewReferralService(c.ReferralRepo, c.RaffleRepo)

	// Initialize handlers
	c.HealthHandler = handler.NewHealthHandler(c.DB)
	c.TenantHandler = handler.NewTenantHandler(c.TenantService)
	c.RaffleHandler = handler.NewRaffleHandler(c.RaffleService)
	c.PackageHandler = handler.NewPackageHandler(c.PackageService, c.CatalogService)
	c.OfferHandler = handler.NewOfferHandler(c.OfferService)
	c.ProviderHandler = handler.NewProviderHandler(c.ProviderService)
	c.OrderHandler = handler.NewOrderHandler(c.OrderService)
	c.ReferralHandler = handler.NewReferralHandler(c.ReferralService)
	c.StorefrontHandler = handler.NewStorefrontHandler(c.CatalogService, c.CheckoutService)

	return c
}
