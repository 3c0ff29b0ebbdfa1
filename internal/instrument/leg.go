package instrument

import (
	"fmt"
	"strings"
)

// Rate is a tagged union: a leg carries either a fixed rate or a
// floating index, never both. The zero value is unset; accessors for
// the inactive variant fail with an InvalidOperationError.
type Rate struct {
	kind  LegKind
	set   bool
	fixed float64
	index FloatingIndex
}

// FixedRate wraps a fixed decimal rate (e.g. 0.0525 for 5.25%).
func FixedRate(rate float64) Rate {
	return Rate{kind: LegFixed, set: true, fixed: rate}
}

// FloatingRate wraps a floating index reference.
func FloatingRate(index FloatingIndex) Rate {
	return Rate{kind: LegFloating, set: true, index: index}
}

// IsFixed reports whether the fixed variant is active.
func (r Rate) IsFixed() bool { return r.set && r.kind == LegFixed }

// IsFloating reports whether the floating variant is active.
func (r Rate) IsFloating() bool { return r.set && r.kind == LegFloating }

// Fixed returns the fixed rate, failing if the leg is floating or unset.
func (r Rate) Fixed() (float64, error) {
	if !r.IsFixed() {
		return 0, &InvalidOperationError{Op: "Rate.Fixed", Reason: "leg is floating, not fixed"}
	}
	return r.fixed, nil
}

// Index returns the floating index, failing if the leg is fixed or unset.
func (r Rate) Index() (FloatingIndex, error) {
	if !r.IsFloating() {
		return 0, &InvalidOperationError{Op: "Rate.Index", Reason: "leg is fixed, not floating"}
	}
	return r.index, nil
}

// SwapLeg is one cash-flow stream of an interest rate swap. Legs are
// immutable once built and are owned by the swap that holds them.
type SwapLeg struct {
	kind      LegKind
	currency  string
	notional  float64
	rate      Rate
	dayCount  DayCount
	frequency Frequency
	spreadBps float64
	hasSpread bool
}

// Kind returns whether the leg is fixed or floating.
func (l *SwapLeg) Kind() LegKind { return l.kind }

// Currency returns the 3-letter currency code.
func (l *SwapLeg) Currency() string { return l.currency }

// Notional returns the leg notional (always positive).
func (l *SwapLeg) Notional() float64 { return l.notional }

// Rate returns the fixed-or-floating rate union.
func (l *SwapLeg) Rate() Rate { return l.rate }

// DayCount returns the day count convention.
func (l *SwapLeg) DayCount() DayCount { return l.dayCount }

// Frequency returns the payment frequency.
func (l *SwapLeg) Frequency() Frequency { return l.frequency }

// Spread returns the spread over the floating index in basis points and
// whether one was configured. Only meaningful for floating legs.
func (l *SwapLeg) Spread() (bps float64, ok bool) {
	return l.spreadBps, l.hasSpread
}

// IsFixed reports whether the leg pays a fixed rate.
func (l *SwapLeg) IsFixed() bool { return l.rate.IsFixed() }

// IsFloating reports whether the leg references a floating index.
func (l *SwapLeg) IsFloating() bool { return l.rate.IsFloating() }

// FixedRate returns the fixed rate, failing if the leg is floating.
func (l *SwapLeg) FixedRate() (float64, error) { return l.rate.Fixed() }

// FloatingIndex returns the index, failing if the leg is fixed.
func (l *SwapLeg) FloatingIndex() (FloatingIndex, error) { return l.rate.Index() }

// YearFraction converts a day span into a year fraction under the leg's
// day count convention. This is the simplified divisor mapping, not
// calendar-accurate day counting.
func (l *SwapLeg) YearFraction(days int) float64 {
	return float64(days) / l.dayCount.Divisor()
}

// String renders the leg for logs. Formatting is not a compatibility
// contract.
func (l *SwapLeg) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s leg: %s %.4f notional, ", l.kind, l.currency, l.notional)
	if l.IsFixed() {
		rate, _ := l.rate.Fixed()
		fmt.Fprintf(&b, "rate=%.4f%%, ", rate*100)
	} else {
		index, _ := l.rate.Index()
		fmt.Fprintf(&b, "index=%s", index)
		if l.hasSpread {
			fmt.Fprintf(&b, " + %.4fbps, ", l.spreadBps)
		} else {
			b.WriteString(", ")
		}
	}
	fmt.Fprintf(&b, "%s, %s", l.dayCount, l.frequency)
	return b.String()
}

// LegBuilder accumulates SwapLeg fields through a fluent interface.
// Setter-level violations (non-positive notional) are recorded
// immediately and surfaced by Build, which also checks that currency
// and exactly one rate variant were provided.
type LegBuilder struct {
	leg SwapLeg
	err error
}

// NewLegBuilder returns a builder with market defaults (ACT/360,
// semi-annual).
func NewLegBuilder() *LegBuilder {
	return &LegBuilder{leg: SwapLeg{dayCount: DayCountAct360, frequency: FrequencySemiAnnual}}
}

// WithCurrency sets the 3-letter currency code.
func (b *LegBuilder) WithCurrency(currency string) *LegBuilder {
	b.leg.currency = currency
	return b
}

// WithNotional sets the leg notional. Non-positive values fail the
// builder immediately rather than waiting for Build.
func (b *LegBuilder) WithNotional(notional float64) *LegBuilder {
	if notional <= 0 && b.err == nil {
		b.err = newConstructionError("SwapLeg", "notional must be positive, got %v", notional)
		return b
	}
	b.leg.notional = notional
	return b
}

// WithFixedRate marks the leg fixed at the given decimal rate.
func (b *LegBuilder) WithFixedRate(rate float64) *LegBuilder {
	b.leg.rate = FixedRate(rate)
	b.leg.kind = LegFixed
	return b
}

// WithFloatingIndex marks the leg floating on the given index.
func (b *LegBuilder) WithFloatingIndex(index FloatingIndex) *LegBuilder {
	b.leg.rate = FloatingRate(index)
	b.leg.kind = LegFloating
	return b
}

// WithDayCount sets the day count convention.
func (b *LegBuilder) WithDayCount(dc DayCount) *LegBuilder {
	b.leg.dayCount = dc
	return b
}

// WithFrequency sets the payment frequency.
func (b *LegBuilder) WithFrequency(freq Frequency) *LegBuilder {
	b.leg.frequency = freq
	return b
}

// WithSpread sets the spread over the floating index in basis points.
func (b *LegBuilder) WithSpread(bps float64) *LegBuilder {
	b.leg.spreadBps = bps
	b.leg.hasSpread = true
	return b
}

// Build validates the accumulated fields and returns an immutable leg.
func (b *LegBuilder) Build() (*SwapLeg, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.leg.currency == "" {
		return nil, newConstructionError("SwapLeg", "currency is required")
	}
	if b.leg.notional <= 0 {
		return nil, newConstructionError("SwapLeg", "notional must be positive")
	}
	if !b.leg.rate.set {
		return nil, newConstructionError("SwapLeg", "rate must be set (fixed or floating)")
	}
	leg := b.leg
	return &leg, nil
}
