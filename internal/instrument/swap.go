package instrument

import (
	"fmt"
	"strings"
	"unicode"
)

// assumedFloatingRate stands in for a real fixing lookup when computing
// indicative net payments. A true implementation would resolve the
// index fixing for the period.
const assumedFloatingRate = 0.045

// InterestRateSwap pairs a pay leg and a receive leg under a
// classification. Construct only through the classification factories;
// swaptions share the aggregate by pointer.
type InterestRateSwap struct {
	swapType      SwapType
	payLeg        *SwapLeg
	receiveLeg    *SwapLeg
	tenor         string
	effectiveDate string
	fxRate        float64
	hasFXRate     bool
}

// IsValidVanillaPair reports whether the legs form a vanilla swap:
// one fixed, one floating, same currency.
func IsValidVanillaPair(pay, receive *SwapLeg) bool {
	oneFixedOneFloat := (pay.IsFixed() && receive.IsFloating()) ||
		(pay.IsFloating() && receive.IsFixed())
	return oneFixedOneFloat && pay.Currency() == receive.Currency()
}

// IsValidBasisPair reports whether the legs form a basis swap:
// both floating, same currency, distinct indices.
func IsValidBasisPair(pay, receive *SwapLeg) bool {
	if !pay.IsFloating() || !receive.IsFloating() {
		return false
	}
	if pay.Currency() != receive.Currency() {
		return false
	}
	payIdx, _ := pay.FloatingIndex()
	recvIdx, _ := receive.FloatingIndex()
	return payIdx != recvIdx
}

// IsValidCrossCurrencyPair reports whether the legs form a
// cross-currency swap: differing currencies.
func IsValidCrossCurrencyPair(pay, receive *SwapLeg) bool {
	return pay.Currency() != receive.Currency()
}

// TenorToMonths converts a tenor token like "5Y", "18M", "90D" into an
// approximate month count. Unparseable tokens yield 0.
func TenorToMonths(tenor string) int {
	if tenor == "" {
		return 0
	}
	upper := strings.ToUpper(strings.TrimSpace(tenor))

	i := 0
	for i < len(upper) && unicode.IsDigit(rune(upper[i])) {
		i++
	}
	if i == 0 {
		return 0
	}

	num := 0
	for _, c := range upper[:i] {
		num = num*10 + int(c-'0')
	}

	unit := byte('M')
	if i < len(upper) {
		unit = upper[i]
	}

	switch unit {
	case 'D':
		return num / 30
	case 'W':
		return num / 4
	case 'M':
		return num
	case 'Y':
		return num * 12
	default:
		return num
	}
}

func newSwap(t SwapType, pay, receive *SwapLeg, tenor, effectiveDate string) *InterestRateSwap {
	return &InterestRateSwap{
		swapType:      t,
		payLeg:        pay,
		receiveLeg:    receive,
		tenor:         tenor,
		effectiveDate: effectiveDate,
	}
}

// NewVanillaSwap creates a fixed-for-floating swap, rejecting leg pairs
// that do not satisfy the vanilla structure.
func NewVanillaSwap(pay, receive *SwapLeg, tenor, effectiveDate string) (*InterestRateSwap, error) {
	if pay == nil || receive == nil {
		return nil, newConstructionError("InterestRateSwap", "both pay and receive legs required")
	}
	if !IsValidVanillaPair(pay, receive) {
		return nil, newConstructionError("InterestRateSwap",
			"invalid vanilla swap: one leg must be fixed, one floating, same currency")
	}
	return newSwap(SwapVanilla, pay, receive, tenor, effectiveDate), nil
}

// NewBasisSwap creates a floating-for-floating swap on distinct indices.
func NewBasisSwap(pay, receive *SwapLeg, tenor, effectiveDate string) (*InterestRateSwap, error) {
	if pay == nil || receive == nil {
		return nil, newConstructionError("InterestRateSwap", "both pay and receive legs required")
	}
	if !IsValidBasisPair(pay, receive) {
		return nil, newConstructionError("InterestRateSwap",
			"invalid basis swap: both legs must be floating on distinct indices, same currency")
	}
	return newSwap(SwapBasis, pay, receive, tenor, effectiveDate), nil
}

// NewCrossCurrencySwap creates a swap across two currencies with an FX
// conversion rate for expressing notionals in a common unit.
func NewCrossCurrencySwap(pay, receive *SwapLeg, tenor, effectiveDate string, fxRate float64) (*InterestRateSwap, error) {
	if pay == nil || receive == nil {
		return nil, newConstructionError("InterestRateSwap", "both pay and receive legs required")
	}
	if !IsValidCrossCurrencyPair(pay, receive) {
		return nil, newConstructionError("InterestRateSwap",
			"invalid cross-currency swap: legs must have different currencies")
	}
	if fxRate <= 0 {
		return nil, newConstructionError("InterestRateSwap", "FX rate must be positive, got %v", fxRate)
	}
	s := newSwap(SwapCrossCurrency, pay, receive, tenor, effectiveDate)
	s.fxRate = fxRate
	s.hasFXRate = true
	return s, nil
}

// Type returns the swap classification.
func (s *InterestRateSwap) Type() SwapType { return s.swapType }

// PayLeg returns the leg this party pays on.
func (s *InterestRateSwap) PayLeg() *SwapLeg { return s.payLeg }

// ReceiveLeg returns the leg this party receives on.
func (s *InterestRateSwap) ReceiveLeg() *SwapLeg { return s.receiveLeg }

// Tenor returns the stated duration token, e.g. "5Y".
func (s *InterestRateSwap) Tenor() string { return s.tenor }

// EffectiveDate returns the effective date token.
func (s *InterestRateSwap) EffectiveDate() string { return s.effectiveDate }

// FXRate returns the FX conversion rate and whether one is present.
// Only cross-currency swaps carry one.
func (s *InterestRateSwap) FXRate() (rate float64, ok bool) {
	return s.fxRate, s.hasFXRate
}

// Notional returns the swap notional. Same-currency swaps use the pay
// leg notional; cross-currency swaps average both legs expressed in the
// pay currency via the FX rate.
func (s *InterestRateSwap) Notional() float64 {
	if s.swapType == SwapCrossCurrency && s.hasFXRate {
		return (s.payLeg.Notional() + s.receiveLeg.Notional()*s.fxRate) / 2.0
	}
	return s.payLeg.Notional()
}

// CalculateNetPayment computes the indicative net payment for a period
// of the given length in days. Positive means a net receipt. Floating
// legs use a placeholder reference rate plus their spread in place of a
// real fixing.
func (s *InterestRateSwap) CalculateNetPayment(periodDays float64) float64 {
	legPayment := func(leg *SwapLeg) float64 {
		yearFrac := leg.YearFraction(int(periodDays))
		if rate, err := leg.FixedRate(); err == nil {
			return leg.Notional() * rate * yearFrac
		}
		spreadBps, _ := leg.Spread()
		return leg.Notional() * (assumedFloatingRate + spreadBps/10000.0) * yearFrac
	}

	return legPayment(s.receiveLeg) - legPayment(s.payLeg)
}

// Validate returns human-readable violations; structural rules are
// re-checked so a swap mutated through shared references would still be
// caught.
func (s *InterestRateSwap) Validate() []string {
	var violations []string

	if s.payLeg == nil || s.receiveLeg == nil {
		return []string{"both pay and receive legs required"}
	}

	if s.tenor == "" {
		violations = append(violations, "tenor is required")
	}
	if s.effectiveDate == "" {
		violations = append(violations, "effective date is required")
	}

	switch s.swapType {
	case SwapVanilla:
		if !IsValidVanillaPair(s.payLeg, s.receiveLeg) {
			violations = append(violations, "invalid vanilla swap: one leg must be fixed, one floating")
		}
	case SwapBasis:
		if !IsValidBasisPair(s.payLeg, s.receiveLeg) {
			violations = append(violations, "invalid basis swap: both legs must be floating")
		}
	case SwapCrossCurrency:
		if !IsValidCrossCurrencyPair(s.payLeg, s.receiveLeg) {
			violations = append(violations, "invalid cross-currency swap: legs must have different currencies")
		}
		if !s.hasFXRate || s.fxRate <= 0 {
			violations = append(violations, "cross-currency swap requires valid FX rate")
		}
	case SwapOvernight:
		violations = append(violations, "overnight swap validation not yet implemented")
	}

	return violations
}

// IsValid reports whether Validate finds no violations.
func (s *InterestRateSwap) IsValid() bool {
	return len(s.Validate()) == 0
}

// String renders the swap for logs.
func (s *InterestRateSwap) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", s.swapType, s.tenor)
	fmt.Fprintf(&b, "Effective: %s\n", s.effectiveDate)
	fmt.Fprintf(&b, "Pay: %s\n", s.payLeg)
	fmt.Fprintf(&b, "Receive: %s", s.receiveLeg)
	if s.hasFXRate {
		fmt.Fprintf(&b, "\nFX Rate: %v", s.fxRate)
	}
	return b.String()
}
