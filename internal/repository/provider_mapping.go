package repository

import (
	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// fieldMapping translates between the domain's generic credential fields
// and the provider's storage key names, in both directions. Each provider
// gets one explicit entry; nothing is inferred from key shapes.
type fieldMapping struct {
	// publicKey and secretKey name the storage keys holding the domain's
	// PublicKey and SecretKey
	publicKey string
	secretKey string
	// extraKeys lists provider-specific keys carried in Extra; anything
	// not listed is dropped on write
	extraKeys []string
}

// providerFieldMappings is keyed by provider ID. Providers absent from
// the table fall back to defaultFieldMapping.
var providerFieldMappings = map[string]fieldMapping{
	domain.ProviderStripe: {
		publicKey: "publishable_key",
		secretKey: "secret_key",
		extraKeys: []string{"webhook_secret", "account_id"},
	},
	domain.ProviderPayPhone: {
		publicKey: "client_id",
		secretKey: "token",
		extraKeys: []string{"store_id"},
	},
	domain.ProviderResend: {
		secretKey: "api_key",
		extraKeys: []string{"from_address", "from_name"},
	},
}

var defaultFieldMapping = fieldMapping{
	publicKey: "public_key",
	secretKey: "secret_key",
}

func mappingFor(providerID string) fieldMapping {
	if m, ok := providerFieldMappings[providerID]; ok {
		return m
	}
	return defaultFieldMapping
}

// credentialsToStorage maps a config's credential fields onto the
// provider's storage keys
func credentialsToStorage(cfg *domain.ProviderConfig) map[string]interface{} {
	m := mappingFor(cfg.ProviderID)
	out := make(map[string]interface{})

	if m.publicKey != "" && cfg.PublicKey != "" {
		out[m.publicKey] = cfg.PublicKey
	}
	if m.secretKey != "" && cfg.SecretKey != "" {
		out[m.secretKey] = cfg.SecretKey
	}
	for _, key := range m.extraKeys {
		if v, ok := cfg.Extra[key]; ok {
			out[key] = v
		}
	}
	return out
}

// credentialsFromStorage maps the provider's storage keys back onto the
// config's credential fields
func credentialsFromStorage(providerID string, stored map[string]interface{}) (publicKey, secretKey string, extra map[string]interface{}) {
	m := mappingFor(providerID)

	if m.publicKey != "" {
		publicKey, _ = stored[m.publicKey].(string)
	}
	if m.secretKey != "" {
		secretKey, _ = stored[m.secretKey].(string)
	}
	for _, key := range m.extraKeys {
		if v, ok := stored[key]; ok {
			if extra == nil {
				extra = make(map[string]interface{})
			}
			extra[key] = v
		}
	}
	return publicKey, secretKey, extra
}
