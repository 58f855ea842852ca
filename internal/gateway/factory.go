package gateway

import (
	"errors"
	"fmt"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// ErrUnsupportedProvider is returned for provider IDs with no gateway
var ErrUnsupportedProvider = errors.New("unsupported payment provider")

// ForConfig builds the payment gateway for a tenant's provider config
func ForConfig(cfg *domain.ProviderConfig) (PaymentGateway, error) {
	if cfg.Kind != domain.ProviderKindPayment {
		return nil, fmt.Errorf("provider %s is not a payment provider", cfg.ProviderID)
	}

	switch cfg.ProviderID {
	case domain.ProviderStripe:
		return NewStripeGateway(cfg.SecretKey), nil
	case domain.ProviderPayPhone:
		storeID, _ := cfg.Extra["store_id"].(string)
		return NewPayPhoneGateway(cfg.SecretKey, storeID), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.ProviderID)
	}
}
