package instrument

import "strings"

// DayCount is a day count convention used in interest rate markets.
type DayCount int

const (
	DayCountAct360    DayCount = iota // Actual/360 - most USD derivatives
	DayCountAct365                    // Actual/365 - GBP, some others
	DayCountThirty360                 // 30/360 - corporate bonds, some swaps
	DayCountActAct                    // Actual/Actual - treasuries
)

// String returns the market spelling of the convention.
func (dc DayCount) String() string {
	switch dc {
	case DayCountAct360:
		return "ACT/360"
	case DayCountAct365:
		return "ACT/365"
	case DayCountThirty360:
		return "30/360"
	case DayCountActAct:
		return "ACT/ACT"
	default:
		return "UNKNOWN"
	}
}

// Divisor returns the year-fraction denominator for the convention.
// 30/360 and ACT/ACT use simplified divisors, not calendar-accurate
// day counting.
func (dc DayCount) Divisor() float64 {
	switch dc {
	case DayCountAct365:
		return 365.0
	case DayCountActAct:
		return 365.25
	default:
		return 360.0
	}
}

// ParseDayCount parses free-text input into a DayCount. Matching is
// case-insensitive and substring based, so "Act/360 Fixed" resolves.
func ParseDayCount(s string) (DayCount, error) {
	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(upper, "ACT/360"):
		return DayCountAct360, nil
	case strings.Contains(upper, "ACT/365"):
		return DayCountAct365, nil
	case strings.Contains(upper, "30/360"):
		return DayCountThirty360, nil
	case strings.Contains(upper, "ACT/ACT"):
		return DayCountActAct, nil
	default:
		return DayCountAct360, &UnknownEnumError{Kind: "day count convention", Value: s}
	}
}

// Frequency is the payment frequency of a swap leg.
type Frequency int

const (
	FrequencyAnnual Frequency = iota
	FrequencySemiAnnual
	FrequencyQuarterly
	FrequencyMonthly
)

// String returns the display name.
func (f Frequency) String() string {
	switch f {
	case FrequencyAnnual:
		return "Annual"
	case FrequencySemiAnnual:
		return "Semi-Annual"
	case FrequencyQuarterly:
		return "Quarterly"
	case FrequencyMonthly:
		return "Monthly"
	default:
		return "Unknown"
	}
}

// PaymentsPerYear returns the number of payments per year, or 0 if the
// frequency is not one of the defined values.
func (f Frequency) PaymentsPerYear() int {
	switch f {
	case FrequencyAnnual:
		return 1
	case FrequencySemiAnnual:
		return 2
	case FrequencyQuarterly:
		return 4
	case FrequencyMonthly:
		return 12
	default:
		return 0
	}
}

// ParseFrequency parses free-text input into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	upper := strings.ToUpper(s)
	switch {
	case strings.Contains(upper, "SEMI"):
		return FrequencySemiAnnual, nil
	case strings.Contains(upper, "ANNUAL"):
		return FrequencyAnnual, nil
	case strings.Contains(upper, "QUARTER"):
		return FrequencyQuarterly, nil
	case strings.Contains(upper, "MONTH"):
		return FrequencyMonthly, nil
	default:
		return FrequencyAnnual, &UnknownEnumError{Kind: "payment frequency", Value: s}
	}
}

// FloatingIndex is a floating rate reference index.
type FloatingIndex int

const (
	IndexSOFR     FloatingIndex = iota // Secured Overnight Financing Rate (USD)
	IndexLiborUSD                      // LIBOR USD (being phased out)
	IndexEuribor                       // Euro Interbank Offered Rate
	IndexSONIA                         // Sterling Overnight Index Average (GBP)
	IndexTONAR                         // Tokyo Overnight Average Rate (JPY)
	IndexESTR                          // Euro Short-Term Rate
)

// String returns the market name of the index.
func (fi FloatingIndex) String() string {
	switch fi {
	case IndexSOFR:
		return "SOFR"
	case IndexLiborUSD:
		return "LIBOR-USD"
	case IndexEuribor:
		return "EURIBOR"
	case IndexSONIA:
		return "SONIA"
	case IndexTONAR:
		return "TONAR"
	case IndexESTR:
		return "ESTR"
	default:
		return "UNKNOWN"
	}
}

// ParseFloatingIndex parses free-text input into a FloatingIndex.
func ParseFloatingIndex(s string) (FloatingIndex, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case upper == "SOFR":
		return IndexSOFR, nil
	case strings.Contains(upper, "LIBOR"):
		return IndexLiborUSD, nil
	case upper == "EURIBOR":
		return IndexEuribor, nil
	case upper == "SONIA":
		return IndexSONIA, nil
	case upper == "TONAR" || upper == "TONA":
		return IndexTONAR, nil
	case upper == "ESTR":
		return IndexESTR, nil
	default:
		return IndexSOFR, &UnknownEnumError{Kind: "floating index", Value: s}
	}
}

// LegKind distinguishes fixed and floating legs.
type LegKind int

const (
	LegFixed LegKind = iota
	LegFloating
)

func (k LegKind) String() string {
	if k == LegFixed {
		return "FIXED"
	}
	return "FLOATING"
}

// SwapType classifies an interest rate swap.
type SwapType int

const (
	SwapVanilla SwapType = iota
	SwapBasis
	SwapCrossCurrency
	SwapOvernight // reserved, not yet implemented
)

func (t SwapType) String() string {
	switch t {
	case SwapVanilla:
		return "VANILLA IRS"
	case SwapBasis:
		return "BASIS SWAP"
	case SwapCrossCurrency:
		return "CROSS-CURRENCY SWAP"
	case SwapOvernight:
		return "OVERNIGHT SWAP"
	default:
		return "UNKNOWN"
	}
}

// SwaptionKind distinguishes payer and receiver swaptions.
type SwaptionKind int

const (
	SwaptionPayer SwaptionKind = iota
	SwaptionReceiver
)

func (k SwaptionKind) String() string {
	if k == SwaptionPayer {
		return "PAYER"
	}
	return "RECEIVER"
}

// ExerciseStyle is the exercise convention of a swaption.
type ExerciseStyle int

const (
	StyleEuropean ExerciseStyle = iota
	StyleAmerican
	StyleBermudan
)

func (s ExerciseStyle) String() string {
	switch s {
	case StyleEuropean:
		return "EUROPEAN"
	case StyleAmerican:
		return "AMERICAN"
	case StyleBermudan:
		return "BERMUDAN"
	default:
		return "UNKNOWN"
	}
}
