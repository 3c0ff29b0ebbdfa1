package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	tenorPattern    = regexp.MustCompile(`(?i)^\d+[DWMY]$`)
)

var validDirections = map[string]struct{}{
	"BUY": {}, "SELL": {}, "TWO_WAY": {}, "TWO-WAY": {}, "PAY": {}, "RECEIVE": {},
}

func (v *Validator) validateDirection(data Fields) *Result {
	direction, ok := data.get("direction")
	if !ok {
		if v.cfg.StrictMode {
			return &Result{
				Severity:   SeverityError,
				Field:      "direction",
				Message:    "Direction is required",
				Suggestion: "Specify BUY, SELL, or TWO_WAY",
			}
		}
		return nil
	}

	if _, valid := validDirections[strings.ToUpper(direction)]; !valid {
		return &Result{
			Severity:   SeverityError,
			Field:      "direction",
			Message:    "Invalid direction: " + direction,
			Suggestion: "Valid values: BUY, SELL, TWO_WAY, PAY, RECEIVE",
		}
	}
	return nil
}

func (v *Validator) validateCurrency(data Fields) *Result {
	currency, ok := data.get("currency", "notional_currency")
	if !ok {
		if v.cfg.StrictMode {
			return &Result{
				Severity:   SeverityWarning,
				Field:      "currency",
				Message:    "Currency not specified",
				Suggestion: "Default currency may be assumed",
			}
		}
		return nil
	}

	if !currencyPattern.MatchString(currency) {
		return &Result{
			Severity:   SeverityError,
			Field:      "currency",
			Message:    "Invalid currency code: " + currency,
			Suggestion: "Use 3-letter ISO code (e.g., USD, EUR, GBP)",
		}
	}
	return nil
}

func (v *Validator) validateNotional(data Fields) *Result {
	raw, ok := data.get("notional", "quantity")
	if !ok {
		if v.cfg.StrictMode {
			return &Result{
				Severity: SeverityError,
				Field:    "notional",
				Message:  "Notional amount is required",
			}
		}
		return nil
	}

	notional, err := decimal.NewFromString(raw)
	if err != nil {
		return &Result{
			Severity:   SeverityError,
			Field:      "notional",
			Message:    "Invalid notional value: " + raw,
			Suggestion: "Must be a valid number",
		}
	}

	if !notional.IsPositive() {
		return &Result{
			Severity: SeverityError,
			Field:    "notional",
			Message:  "Notional must be positive",
		}
	}

	if min := decimal.NewFromFloat(v.cfg.MinNotional); notional.LessThan(min) {
		return &Result{
			Severity:   SeverityWarning,
			Field:      "notional",
			Message:    "Notional below minimum: " + raw,
			Suggestion: "Minimum is " + min.String(),
		}
	}

	if max := decimal.NewFromFloat(v.cfg.MaxNotional); notional.GreaterThan(max) {
		return &Result{
			Severity:   SeverityWarning,
			Field:      "notional",
			Message:    "Notional exceeds maximum: " + raw,
			Suggestion: "Maximum is " + max.String(),
		}
	}
	return nil
}

func (v *Validator) validateTenor(data Fields) *Result {
	// Tenor is optional, e.g. spot trades carry none.
	tenor, ok := data.get("tenor")
	if !ok {
		return nil
	}

	if !tenorPattern.MatchString(tenor) {
		return &Result{
			Severity:   SeverityError,
			Field:      "tenor",
			Message:    "Invalid tenor format: " + tenor,
			Suggestion: "Use format like '3M', '1Y', '5Y'",
		}
	}
	return nil
}

func (v *Validator) validateRate(data Fields) *Result {
	// Rate is optional, e.g. market orders carry none.
	raw, ok := data.get("rate", "strike")
	if !ok {
		return nil
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return &Result{
			Severity:   SeverityError,
			Field:      "rate",
			Message:    "Invalid rate value: " + raw,
			Suggestion: "Must be a valid number",
		}
	}

	lower := decimal.NewFromFloat(-0.05)
	upper := decimal.NewFromInt(1)
	if rate.LessThan(lower) || rate.GreaterThan(upper) {
		return &Result{
			Severity:   SeverityWarning,
			Field:      "rate",
			Message:    "Rate outside typical range: " + raw,
			Suggestion: "Typical range: -5% to 100%",
		}
	}
	return nil
}

var knownDayCounts = []string{"ACT/360", "ACT/365", "30/360", "ACT/ACT"}

func (v *Validator) validateDayCount(data Fields) *Result {
	dayCount, ok := data.get("day_count")
	if !ok {
		return nil
	}

	upper := strings.ToUpper(dayCount)
	for _, known := range knownDayCounts {
		if strings.Contains(upper, known) {
			return nil
		}
	}

	return &Result{
		Severity:   SeverityWarning,
		Field:      "day_count",
		Message:    "Unusual day count convention: " + dayCount,
		Suggestion: "Common: ACT/360, ACT/365, 30/360, ACT/ACT",
	}
}
