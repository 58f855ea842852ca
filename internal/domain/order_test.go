package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewOrder(t *testing.T) {
	price := decimal.NewFromFloat(56.25)

	tests := []struct {
		name      string
		tenantID  string
		raffleID  string
		packageID string
		email     string
		unitPrice decimal.Decimal
		currency  string
		entries   int
		wantErr   bool
	}{
		{
			name:      "valid order",
			tenantID:  "tenant-123",
			raffleID:  "raffle-123",
			packageID: "pkg-123",
			email:     "buyer@example.com",
			unitPrice: price,
			currency:  "USD",
			entries:   65,
			wantErr:   false,
		},
		{
			name:      "missing tenant_id",
			raffleID:  "raffle-123",
			packageID: "pkg-123",
			email:     "buyer@example.com",
			unitPrice: price,
			entries:   65,
			wantErr:   true,
		},
		{
			name:      "missing raffle_id",
			tenantID:  "tenant-123",
			packageID: "pkg-123",
			email:     "buyer@example.com",
			unitPrice: price,
			entries:   65,
			wantErr:   true,
		},
		{
			name:     "missing package_id",
			tenantID: "tenant-123",
			raffleID: "raffle-123",
			email:    "buyer@example.com",
			unitPrice: price,
			entries:  65,
			wantErr:  true,
		},
		{
			name:      "missing customer email",
			tenantID:  "tenant-123",
			raffleID:  "raffle-123",
			packageID: "pkg-123",
			unitPrice: price,
			entries:   65,
			wantErr:   true,
		},
		{
			name:      "negative unit price",
			tenantID:  "tenant-123",
			raffleID:  "raffle-123",
			packageID: "pkg-123",
			email:     "buyer@example.com",
			unitPrice: decimal.NewFromFloat(-1),
			entries:   65,
			wantErr:   true,
		},
		{
			name:      "zero entries",
			tenantID:  "tenant-123",
			raffleID:  "raffle-123",
			packageID: "pkg-123",
			email:     "buyer@example.com",
			unitPrice: price,
			entries:   0,
			wantErr:   true,
		},
		{
			name:      "empty currency defaults to USD",
			tenantID:  "tenant-123",
			raffleID:  "raffle-123",
			packageID: "pkg-123",
			email:     "buyer@example.com",
			unitPrice: price,
			currency:  "",
			entries:   65,
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder(tt.tenantID, tt.raffleID, tt.packageID, tt.email, tt.unitPrice, tt.currency, tt.entries)

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}

			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}

			if order.ID == "" {
				t.Error("Expected order ID to be set")
			}
			if order.Status != OrderStatusPending {
				t.Errorf("Expected status %s, got %s", OrderStatusPending, order.Status)
			}
			if tt.currency == "" && order.Currency != "USD" {
				t.Errorf("Expected currency to default to USD, got %s", order.Currency)
			}
			if !order.UnitPrice.Equal(tt.unitPrice) {
				t.Errorf("Expected unit price %s, got %s", tt.unitPrice, order.UnitPrice)
			}
		})
	}
}
