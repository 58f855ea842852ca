// Package promotion computes the buyer-facing form of ticket packages:
// final price after discounts, entry count after bonuses, and availability.
// Resolution is a pure function over its inputs and the supplied instant,
// so callers own the clock and results are reproducible.
package promotion

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sorteocloud/raffle-backend/internal/domain"
)

// ErrInvalidPackage is wrapped by all input-validation failures
var ErrInvalidPackage = errors.New("invalid package data")

var oneHundred = decimal.NewFromInt(100)

// DefaultEntriesSuffix labels the entry count in storefront display text
const DefaultEntriesSuffix = "entradas"

// Resolved is the computed purchasable form of one package. It is derived
// at resolution time and never persisted.
type Resolved struct {
	Package domain.TicketPackage `json:"package"`

	OriginalPrice   decimal.Decimal `json:"original_price"`
	FinalPrice      decimal.Decimal `json:"final_price"`
	DiscountPercent float64         `json:"total_discount_percentage"`
	BonusEntries    int             `json:"bonus_entries"`
	FinalAmount     int             `json:"final_amount"`
	IsAvailable     bool            `json:"is_available"`

	// WinningOffer is the applied overlay, nil when none is active
	WinningOffer *domain.TimeLimitedOffer `json:"winning_offer,omitempty"`

	EntriesDisplay    string `json:"entries_display"`
	MultiplierDisplay string `json:"multiplier_display"`
}

// Engine resolves packages against their offers. The zero value is usable;
// EntriesSuffix defaults to DefaultEntriesSuffix.
type Engine struct {
	EntriesSuffix string
}

// NewEngine creates an engine with the given display suffix
func NewEngine(entriesSuffix string) *Engine {
	if entriesSuffix == "" {
		entriesSuffix = DefaultEntriesSuffix
	}
	return &Engine{EntriesSuffix: entriesSuffix}
}

// Resolve computes one Resolved per input package, order-preserving.
// Unavailable packages are still returned so admin tooling can show them;
// use Available to filter for the storefront.
//
// Validation never clamps: out-of-range fields fail with ErrInvalidPackage.
func (e *Engine) Resolve(packages []domain.TicketPackage, offers []domain.TimeLimitedOffer, baseTicketPrice decimal.Decimal, now time.Time) ([]Resolved, error) {
	if !baseTicketPrice.IsPositive() {
		return nil, fmt.Errorf("%w: base ticket price must be positive", ErrInvalidPackage)
	}

	for i := range offers {
		o := &offers[i]
		if o.SpecialDiscountPercentage < 0 || o.SpecialDiscountPercentage > 100 {
			return nil, fmt.Errorf("%w: offer %s special_discount_percentage %.2f outside [0,100]", ErrInvalidPackage, o.ID, o.SpecialDiscountPercentage)
		}
		if o.SpecialBonusEntries < 0 {
			return nil, fmt.Errorf("%w: offer %s special_bonus_entries must not be negative", ErrInvalidPackage, o.ID)
		}
	}

	// Offers grouped by package; only active ones compete
	activeByPackage := make(map[string][]*domain.TimeLimitedOffer)
	for i := range offers {
		o := &offers[i]
		if o.ActiveAt(now) {
			activeByPackage[o.TicketPackageID] = append(activeByPackage[o.TicketPackageID], o)
		}
	}

	resolved := make([]Resolved, 0, len(packages))
	for i := range packages {
		pkg := packages[i]
		if err := validatePackage(&pkg); err != nil {
			return nil, err
		}

		winning := selectWinningOffer(activeByPackage[pkg.ID])

		r := e.resolveOne(&pkg, winning, baseTicketPrice, now)
		resolved = append(resolved, r)
	}

	return resolved, nil
}

// Available filters out unavailable entries, preserving order. This is the
// storefront view; the full slice is the admin view.
func Available(resolved []Resolved) []Resolved {
	out := make([]Resolved, 0, len(resolved))
	for _, r := range resolved {
		if r.IsAvailable {
			out = append(out, r)
		}
	}
	return out
}

func validatePackage(p *domain.TicketPackage) error {
	if p.Amount < 1 {
		return fmt.Errorf("%w: package %s amount must be at least 1", ErrInvalidPackage, p.ID)
	}
	if p.PriceMultiplier.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: package %s price_multiplier must be positive", ErrInvalidPackage, p.ID)
	}
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		return fmt.Errorf("%w: package %s discount_percentage %.2f outside [0,100]", ErrInvalidPackage, p.ID, p.DiscountPercentage)
	}
	if p.BonusEntries < 0 {
		return fmt.Errorf("%w: package %s bonus_entries must not be negative", ErrInvalidPackage, p.ID)
	}
	if p.FixedPrice != nil && p.FixedPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: package %s fixed_price must be positive", ErrInvalidPackage, p.ID)
	}
	return nil
}

// selectWinningOffer picks the active offer with the greatest special
// discount. Ties break on lowest offer ID so resolution stays deterministic.
func selectWinningOffer(candidates []*domain.TimeLimitedOffer) *domain.TimeLimitedOffer {
	var winning *domain.TimeLimitedOffer
	for _, o := range candidates {
		if winning == nil {
			winning = o
			continue
		}
		if o.SpecialDiscountPercentage > winning.SpecialDiscountPercentage {
			winning = o
			continue
		}
		if o.SpecialDiscountPercentage == winning.SpecialDiscountPercentage && o.ID < winning.ID {
			winning = o
		}
	}
	return winning
}

func (e *Engine) resolveOne(pkg *domain.TicketPackage, winning *domain.TimeLimitedOffer, baseTicketPrice decimal.Decimal, now time.Time) Resolved {
	// Base price: fixed override wins, otherwise amount x base x multiplier
	var basePrice decimal.Decimal
	if pkg.FixedPrice != nil {
		basePrice = *pkg.FixedPrice
	} else {
		basePrice = decimal.NewFromInt(int64(pkg.Amount)).Mul(baseTicketPrice).Mul(pkg.PriceMultiplier)
	}
	originalPrice := basePrice.Round(2)

	// Discounts compete, the larger one wins; they are never stacked
	discount := pkg.DiscountPercentage
	if winning != nil && winning.SpecialDiscountPercentage > discount {
		discount = winning.SpecialDiscountPercentage
	}

	// Bonuses stack
	bonus := pkg.BonusEntries
	if winning != nil {
		bonus += winning.SpecialBonusEntries
	}

	factor := oneHundred.Sub(decimal.NewFromFloat(discount)).Div(oneHundred)
	finalPrice := basePrice.Mul(factor).Round(2) // half-up, currency precision

	finalAmount := pkg.Amount + bonus

	suffix := e.EntriesSuffix
	if suffix == "" {
		suffix = DefaultEntriesSuffix
	}

	return Resolved{
		Package:           *pkg,
		OriginalPrice:     originalPrice,
		FinalPrice:        finalPrice,
		DiscountPercent:   discount,
		BonusEntries:      bonus,
		FinalAmount:       finalAmount,
		IsAvailable:       pkg.AvailableAt(now),
		WinningOffer:      winning,
		EntriesDisplay:    formatThousands(finalAmount) + " " + suffix,
		MultiplierDisplay: multiplierDisplay(pkg, finalAmount),
	}
}

// multiplierDisplay renders the entry ratio, honoring a custom label override
func multiplierDisplay(pkg *domain.TicketPackage, finalAmount int) string {
	if pkg.MultiplierLabel != nil && *pkg.MultiplierLabel != "" {
		return *pkg.MultiplierLabel
	}
	if pkg.Amount <= 0 || finalAmount == pkg.Amount {
		return "1x"
	}
	ratio := decimal.NewFromInt(int64(finalAmount)).Div(decimal.NewFromInt(int64(pkg.Amount)))
	return ratio.Round(1).String() + "x"
}
