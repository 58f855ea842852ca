package promotion

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func basePkg(id string) domain.TicketPackage {
	return domain.TicketPackage{
		ID:              id,
		TenantID:        "tenant-1",
		RaffleID:        "raffle-1",
		Amount:          20,
		PriceMultiplier: decimal.NewFromInt(1),
		IsActive:        true,
	}
}

func activeOffer(id, pkgID string, discount float64, bonus int) domain.TimeLimitedOffer {
	return domain.TimeLimitedOffer{
		ID:                        id,
		TicketPackageID:           pkgID,
		StartDate:                 testNow.Add(-24 * time.Hour),
		EndDate:                   testNow.Add(24 * time.Hour),
		SpecialDiscountPercentage: discount,
		SpecialBonusEntries:       bonus,
		IsActive:                  true,
	}
}

func mustResolveOne(t *testing.T, pkg domain.TicketPackage, offers []domain.TimeLimitedOffer, basePrice float64) Resolved {
	t.Helper()
	engine := NewEngine("entradas")
	resolved, err := engine.Resolve([]domain.TicketPackage{pkg}, offers, decimal.NewFromFloat(basePrice), testNow)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	if len(resolved) != 1 {
		t.Fatalf("Expected 1 resolved package, got %d", len(resolved))
	}
	return resolved[0]
}

func TestResolve_PlainPackage(t *testing.T) {
	pkg := basePkg("pkg-1")

	r := mustResolveOne(t, pkg, nil, 1.5)

	if r.FinalPrice.String() != "30" {
		t.Errorf("Expected final price 30, got %s", r.FinalPrice)
	}
	if r.FinalAmount != 20 {
		t.Errorf("Expected final amount 20, got %d", r.FinalAmount)
	}
	if !r.IsAvailable {
		t.Error("Expected package to be available")
	}
	if r.WinningOffer != nil {
		t.Error("Expected no winning offer")
	}
}

func TestResolve_BaselineDiscountAndBonus(t *testing.T) {
	pkg := basePkg("pkg-1")
	pkg.Amount = 50
	pkg.DiscountPercentage = 10
	pkg.BonusEntries = 5

	r := mustResolveOne(t, pkg, nil, 1.5)

	if r.OriginalPrice.String() != "75" {
		t.Errorf("Expected original price 75, got %s", r.OriginalPrice)
	}
	if r.FinalPrice.String() != "67.5" {
		t.Errorf("Expected final price 67.50, got %s", r.FinalPrice)
	}
	if r.FinalAmount != 55 {
		t.Errorf("Expected final amount 55, got %d", r.FinalAmount)
	}
}

func TestResolve_OfferOverlay(t *testing.T) {
	// Discount takes the max of baseline and offer; bonus entries add up
	pkg := basePkg("pkg-1")
	pkg.Amount = 50
	pkg.DiscountPercentage = 10
	pkg.BonusEntries = 5

	offer := activeOffer("offer-1", "pkg-1", 25, 10)

	r := mustResolveOne(t, pkg, []domain.TimeLimitedOffer{offer}, 1.5)

	if r.DiscountPercent != 25 {
		t.Errorf("Expected effective discount 25, got %.2f", r.DiscountPercent)
	}
	if r.FinalPrice.String() != "56.25" {
		t.Errorf("Expected final price 56.25, got %s", r.FinalPrice)
	}
	if r.BonusEntries != 15 {
		t.Errorf("Expected 15 bonus entries, got %d", r.BonusEntries)
	}
	if r.FinalAmount != 65 {
		t.Errorf("Expected final amount 65, got %d", r.FinalAmount)
	}
	if r.WinningOffer == nil || r.WinningOffer.ID != "offer-1" {
		t.Errorf("Expected winning offer offer-1, got %+v", r.WinningOffer)
	}
}

func TestResolve_BaselineDiscountBeatsWeakerOffer(t *testing.T) {
	pkg := basePkg("pkg-1")
	pkg.DiscountPercentage = 30
	pkg.BonusEntries = 2

	offer := activeOffer("offer-1", "pkg-1", 10, 3)

	r := mustResolveOne(t, pkg, []domain.TimeLimitedOffer{offer}, 1.5)

	// Baseline 30 wins over offer 10; never 40
	if r.DiscountPercent != 30 {
		t.Errorf("Expected effective discount 30, got %.2f", r.DiscountPercent)
	}
	// Bonuses still stack even when the offer loses the discount race
	if r.BonusEntries != 5 {
		t.Errorf("Expected 5 bonus entries, got %d", r.BonusEntries)
	}
}

func TestResolve_FixedPriceOverride(t *testing.T) {
	fixed := decimal.NewFromFloat(9.99)
	pkg := basePkg("pkg-1")
	pkg.FixedPrice = &fixed

	r := mustResolveOne(t, pkg, nil, 1.5)

	if r.FinalPrice.String() != "9.99" {
		t.Errorf("Expected fixed price 9.99, got %s", r.FinalPrice)
	}
}

func TestResolve_PriceMultiplier(t *testing.T) {
	pkg := basePkg("pkg-1")
	pkg.Amount = 10
	pkg.PriceMultiplier = decimal.NewFromFloat(0.9)

	r := mustResolveOne(t, pkg, nil, 2)

	// 10 x 2.00 x 0.9 = 18.00
	if r.FinalPrice.String() != "18" {
		t.Errorf("Expected final price 18, got %s", r.FinalPrice)
	}
}

func TestResolve_RoundingHalfUp(t *testing.T) {
	pkg := basePkg("pkg-1")
	pkg.Amount = 3
	pkg.DiscountPercentage = 50

	// 3 x 1.75 = 5.25; 50% -> 2.625 -> rounds half-up to 2.63
	r := mustResolveOne(t, pkg, nil, 1.75)

	if r.FinalPrice.String() != "2.63" {
		t.Errorf("Expected final price 2.63, got %s", r.FinalPrice)
	}
}

func TestResolve_WinningOfferSelection(t *testing.T) {
	pkg := basePkg("pkg-1")

	tests := []struct {
		name       string
		offers     []domain.TimeLimitedOffer
		expectedID string
	}{
		{
			name: "highest discount wins",
			offers: []domain.TimeLimitedOffer{
				activeOffer("offer-a", "pkg-1", 10, 0),
				activeOffer("offer-b", "pkg-1", 25, 0),
				activeOffer("offer-c", "pkg-1", 15, 0),
			},
			expectedID: "offer-b",
		},
		{
			name: "tie broken by lowest id",
			offers: []domain.TimeLimitedOffer{
				activeOffer("offer-z", "pkg-1", 20, 0),
				activeOffer("offer-a", "pkg-1", 20, 0),
				activeOffer("offer-m", "pkg-1", 20, 0),
			},
			expectedID: "offer-a",
		},
		{
			name: "inactive offers never win",
			offers: []domain.TimeLimitedOffer{
				func() domain.TimeLimitedOffer {
					o := activeOffer("offer-big", "pkg-1", 90, 0)
					o.IsActive = false
					return o
				}(),
				activeOffer("offer-small", "pkg-1", 5, 0),
			},
			expectedID: "offer-small",
		},
		{
			name: "offers for other packages ignored",
			offers: []domain.TimeLimitedOffer{
				activeOffer("offer-other", "pkg-2", 90, 0),
				activeOffer("offer-mine", "pkg-1", 5, 0),
			},
			expectedID: "offer-mine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustResolveOne(t, pkg, tt.offers, 1.5)
			if r.WinningOffer == nil {
				t.Fatal("Expected a winning offer")
			}
			if r.WinningOffer.ID != tt.expectedID {
				t.Errorf("Expected winning offer %s, got %s", tt.expectedID, r.WinningOffer.ID)
			}
		})
	}
}

func TestResolve_OfferWindowBoundsInclusive(t *testing.T) {
	pkg := basePkg("pkg-1")

	tests := []struct {
		name       string
		start, end time.Time
		wantApplied bool
	}{
		{"start equals now", testNow, testNow.Add(time.Hour), true},
		{"end equals now", testNow.Add(-time.Hour), testNow, true},
		{"starts one second from now", testNow.Add(time.Second), testNow.Add(time.Hour), false},
		{"ended one second ago", testNow.Add(-time.Hour), testNow.Add(-time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := activeOffer("offer-1", "pkg-1", 50, 0)
			offer.StartDate = tt.start
			offer.EndDate = tt.end

			r := mustResolveOne(t, pkg, []domain.TimeLimitedOffer{offer}, 1.5)

			applied := r.WinningOffer != nil
			if applied != tt.wantApplied {
				t.Errorf("Expected applied=%v, got %v", tt.wantApplied, applied)
			}
		})
	}
}

func TestResolve_StockExhaustedUnavailable(t *testing.T) {
	limit := 10
	pkg := basePkg("pkg-1")
	pkg.StockLimit = &limit
	pkg.CurrentStock = 10
	pkg.DiscountPercentage = 50

	r := mustResolveOne(t, pkg, nil, 1.5)

	if r.IsAvailable {
		t.Error("Expected exhausted package to be unavailable")
	}
	// Price is still computed for the admin view
	if r.FinalPrice.String() != "15" {
		t.Errorf("Expected final price 15, got %s", r.FinalPrice)
	}
}

func TestResolve_OrderPreservingAndComplete(t *testing.T) {
	pkgs := []domain.TicketPackage{basePkg("pkg-c"), basePkg("pkg-a"), basePkg("pkg-b")}
	pkgs[1].IsActive = false // unavailable entries are still returned

	engine := NewEngine("entradas")
	resolved, err := engine.Resolve(pkgs, nil, decimal.NewFromFloat(1.5), testNow)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}

	if len(resolved) != 3 {
		t.Fatalf("Expected 3 resolved packages, got %d", len(resolved))
	}
	for i, want := range []string{"pkg-c", "pkg-a", "pkg-b"} {
		if resolved[i].Package.ID != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, resolved[i].Package.ID)
		}
	}

	storefront := Available(resolved)
	if len(storefront) != 2 {
		t.Fatalf("Expected 2 available packages, got %d", len(storefront))
	}
	if storefront[0].Package.ID != "pkg-c" || storefront[1].Package.ID != "pkg-b" {
		t.Errorf("Available() changed ordering: %s, %s", storefront[0].Package.ID, storefront[1].Package.ID)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	pkg := basePkg("pkg-1")
	pkg.DiscountPercentage = 10
	pkg.BonusEntries = 5
	offers := []domain.TimeLimitedOffer{
		activeOffer("offer-1", "pkg-1", 25, 10),
		activeOffer("offer-2", "pkg-1", 25, 3),
	}

	engine := NewEngine("entradas")
	base := decimal.NewFromFloat(1.5)

	first, err := engine.Resolve([]domain.TicketPackage{pkg}, offers, base, testNow)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}
	second, err := engine.Resolve([]domain.TicketPackage{pkg}, offers, base, testNow)
	if err != nil {
		t.Fatalf("Resolve() returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Expected identical output for identical inputs")
	}
}

func TestResolve_DisplayFields(t *testing.T) {
	pkg := basePkg("pkg-1")
	pkg.Amount = 10000
	pkg.BonusEntries = 2500

	r := mustResolveOne(t, pkg, nil, 0.1)

	if r.EntriesDisplay != "12.500 entradas" {
		t.Errorf("Expected entries display '12.500 entradas', got '%s'", r.EntriesDisplay)
	}
	// 12500/10000 = 1.25 -> rounds to 1.3x
	if r.MultiplierDisplay != "1.3x" {
		t.Errorf("Expected multiplier display '1.3x', got '%s'", r.MultiplierDisplay)
	}

	label := "DUPLICA TUS ENTRADAS"
	pkg.MultiplierLabel = &label
	r = mustResolveOne(t, pkg, nil, 0.1)
	if r.MultiplierDisplay != label {
		t.Errorf("Expected custom multiplier label, got '%s'", r.MultiplierDisplay)
	}
}

func TestResolve_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.TicketPackage)
	}{
		{"amount below one", func(p *domain.TicketPackage) { p.Amount = 0 }},
		{"zero multiplier", func(p *domain.TicketPackage) { p.PriceMultiplier = decimal.Zero }},
		{"negative multiplier", func(p *domain.TicketPackage) { p.PriceMultiplier = decimal.NewFromFloat(-1) }},
		{"discount above 100", func(p *domain.TicketPackage) { p.DiscountPercentage = 101 }},
		{"negative discount", func(p *domain.TicketPackage) { p.DiscountPercentage = -1 }},
		{"negative bonus", func(p *domain.TicketPackage) { p.BonusEntries = -1 }},
		{"non-positive fixed price", func(p *domain.TicketPackage) {
			zero := decimal.Zero
			p.FixedPrice = &zero
		}},
	}

	engine := NewEngine("entradas")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg := basePkg("pkg-1")
			tt.mutate(&pkg)

			_, err := engine.Resolve([]domain.TicketPackage{pkg}, nil, decimal.NewFromFloat(1.5), testNow)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidPackage) {
				t.Errorf("Expected ErrInvalidPackage, got %v", err)
			}
		})
	}
}

func TestResolve_NonPositiveBasePriceRejected(t *testing.T) {
	pkg := basePkg("pkg-1")
	engine := NewEngine("entradas")

	for _, base := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-1.5)} {
		_, err := engine.Resolve([]domain.TicketPackage{pkg}, nil, base, testNow)
		if !errors.Is(err, ErrInvalidPackage) {
			t.Errorf("Expected ErrInvalidPackage for base price %s, got %v", base, err)
		}
	}
}

func TestResolve_InvalidOfferRejected(t *testing.T) {
	pkg := basePkg("pkg-1")
	offer := activeOffer("offer-1", "pkg-1", 120, 0)

	engine := NewEngine("entradas")
	_, err := engine.Resolve([]domain.TicketPackage{pkg}, []domain.TimeLimitedOffer{offer}, decimal.NewFromFloat(1.5), testNow)
	if !errors.Is(err, ErrInvalidPackage) {
		t.Errorf("Expected ErrInvalidPackage for out-of-range offer discount, got %v", err)
	}
}

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.000"},
		{12500, "12.500"},
		{1234567, "1.234.567"},
		{-4500, "-4.500"},
	}

	for _, tt := range tests {
		if got := formatThousands(tt.in); got != tt.want {
			t.Errorf("formatThousands(%d) = %s, expected %s", tt.in, got, tt.want)
		}
	}
}
