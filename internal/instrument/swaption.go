package instrument

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Swaption is an option to enter the underlying swap. The underlying is
// held by pointer and may be shared across several swaptions. Exercise
// dates are parsed at construction so every comparison is chronological
// rather than a string comparison.
type Swaption struct {
	kind          SwaptionKind
	style         ExerciseStyle
	underlying    *InterestRateSwap
	expiry        time.Time
	strike        float64
	premium       float64
	exerciseDates []time.Time
}

func newSwaption(kind SwaptionKind, style ExerciseStyle, underlying *InterestRateSwap, expiryDate string, strike, premium float64) (*Swaption, error) {
	if underlying == nil {
		return nil, newConstructionError("Swaption", "underlying swap is required")
	}
	expiry, err := parseDate("Swaption", expiryDate)
	if err != nil {
		return nil, err
	}
	return &Swaption{
		kind:       kind,
		style:      style,
		underlying: underlying,
		expiry:     expiry,
		strike:     strike,
		premium:    premium,
	}, nil
}

// NewEuropeanSwaption creates a swaption exercisable only on the expiry
// date. The exercise date set is exactly the expiry.
func NewEuropeanSwaption(kind SwaptionKind, underlying *InterestRateSwap, expiryDate string, strike, premium float64) (*Swaption, error) {
	s, err := newSwaption(kind, StyleEuropean, underlying, expiryDate, strike, premium)
	if err != nil {
		return nil, err
	}
	s.exerciseDates = []time.Time{s.expiry}
	return s, nil
}

// NewAmericanSwaption creates a swaption exercisable on any date up to
// and including expiry.
func NewAmericanSwaption(kind SwaptionKind, underlying *InterestRateSwap, expiryDate string, strike, premium float64) (*Swaption, error) {
	return newSwaption(kind, StyleAmerican, underlying, expiryDate, strike, premium)
}

// NewBermudanSwaption creates a swaption exercisable on a fixed set of
// dates. At least one exercise date is required; duplicates collapse
// and the set is kept sorted.
func NewBermudanSwaption(kind SwaptionKind, underlying *InterestRateSwap, expiryDate string, strike float64, exerciseDates []string, premium float64) (*Swaption, error) {
	s, err := newSwaption(kind, StyleBermudan, underlying, expiryDate, strike, premium)
	if err != nil {
		return nil, err
	}
	if len(exerciseDates) == 0 {
		return nil, newConstructionError("Swaption", "bermudan swaption requires at least one exercise date")
	}
	for _, d := range exerciseDates {
		parsed, err := parseDate("Swaption", d)
		if err != nil {
			return nil, err
		}
		s.insertExerciseDate(parsed)
	}
	return s, nil
}

func (s *Swaption) insertExerciseDate(d time.Time) {
	for _, existing := range s.exerciseDates {
		if existing.Equal(d) {
			return
		}
	}
	s.exerciseDates = append(s.exerciseDates, d)
	sort.Slice(s.exerciseDates, func(i, j int) bool {
		return s.exerciseDates[i].Before(s.exerciseDates[j])
	})
}

// Kind returns payer or receiver.
func (s *Swaption) Kind() SwaptionKind { return s.kind }

// Style returns the exercise style.
func (s *Swaption) Style() ExerciseStyle { return s.style }

// Underlying returns the swap this option references.
func (s *Swaption) Underlying() *InterestRateSwap { return s.underlying }

// ExpiryDate returns the expiry in ISO-8601 form.
func (s *Swaption) ExpiryDate() string { return formatDate(s.expiry) }

// Strike returns the strike rate as a decimal.
func (s *Swaption) Strike() float64 { return s.strike }

// Premium returns the premium paid for the option.
func (s *Swaption) Premium() float64 { return s.premium }

// IsPayer reports whether the holder pays fixed on exercise.
func (s *Swaption) IsPayer() bool { return s.kind == SwaptionPayer }

// ExerciseDates returns the exercise dates in ISO-8601 form, sorted
// ascending. Empty for American style.
func (s *Swaption) ExerciseDates() []string {
	out := make([]string, len(s.exerciseDates))
	for i, d := range s.exerciseDates {
		out[i] = formatDate(d)
	}
	return out
}

// CanExerciseOn reports whether the option may be exercised on the
// given date. Invalid date tokens are never exercisable.
func (s *Swaption) CanExerciseOn(date string) bool {
	d, err := parseDate("Swaption", date)
	if err != nil {
		return false
	}

	switch s.style {
	case StyleEuropean:
		return d.Equal(s.expiry)
	case StyleAmerican:
		return !d.After(s.expiry)
	case StyleBermudan:
		for _, ex := range s.exerciseDates {
			if ex.Equal(d) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// AddExerciseDate adds a date to a Bermudan swaption's exercise set.
// Duplicates are ignored and the set stays sorted. Any other style
// fails with an InvalidOperationError.
func (s *Swaption) AddExerciseDate(date string) error {
	if s.style != StyleBermudan {
		return &InvalidOperationError{
			Op:     "Swaption.AddExerciseDate",
			Reason: "exercise dates can only be added to bermudan swaptions",
		}
	}
	d, err := parseDate("Swaption", date)
	if err != nil {
		return err
	}
	s.insertExerciseDate(d)
	return nil
}

// IntrinsicValue returns the exercise value per unit notional at the
// given current rate. Payers profit when rates rise above strike,
// receivers when rates fall below.
func (s *Swaption) IntrinsicValue(currentRate float64) float64 {
	diff := currentRate - s.strike
	if s.kind == SwaptionReceiver {
		diff = -diff
	}
	if diff < 0 {
		return 0
	}
	return diff
}

// Validate returns human-readable violations covering the option and
// its underlying.
func (s *Swaption) Validate() []string {
	var violations []string

	if s.underlying == nil {
		return []string{"underlying swap is required"}
	}
	if !s.underlying.IsValid() {
		violations = append(violations, "underlying swap is invalid")
	}

	if s.expiry.IsZero() {
		violations = append(violations, "expiry date is required")
	}
	if s.strike < 0.0 || s.strike > 1.0 {
		violations = append(violations, "strike rate must be between 0 and 1 (as decimal)")
	}

	if s.style == StyleBermudan {
		if len(s.exerciseDates) == 0 {
			violations = append(violations, "bermudan swaption requires at least one exercise date")
		}
		for _, d := range s.exerciseDates {
			if d.After(s.expiry) {
				violations = append(violations, fmt.Sprintf("exercise date %s is after expiry", formatDate(d)))
			}
		}
	}

	return violations
}

// IsValid reports whether Validate finds no violations.
func (s *Swaption) IsValid() bool {
	return len(s.Validate()) == 0
}

// String renders the swaption for logs.
func (s *Swaption) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s SWAPTION\n", s.kind, s.style)
	fmt.Fprintf(&b, "Strike: %.4f%%\n", s.strike*100)
	fmt.Fprintf(&b, "Expiry: %s\n", s.ExpiryDate())
	fmt.Fprintf(&b, "Premium: %v\n", s.premium)
	if s.style == StyleBermudan {
		fmt.Fprintf(&b, "Exercise dates: %s\n", joinDates(s.exerciseDates))
	}
	fmt.Fprintf(&b, "\nUnderlying:\n%s", s.underlying)
	return b.String()
}
