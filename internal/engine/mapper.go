package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Checker-Finance/rates-engine/internal/instrument"
	"github.com/Checker-Finance/rates-engine/pkg/model"
)

// Market bundles the observables a pricing call needs alongside the
// instrument itself.
type Market struct {
	ForwardRate  float64
	Volatility   float64
	TimeToExpiry float64
}

// Desk defaults applied when an already-validated RFQ omits optional
// fields. Validation decides acceptability; mapping only fills gaps.
const (
	defaultCurrency = "USD"
	defaultNotional = 1_000_000.0
	defaultStrike   = 0.05
	defaultTenor    = "5Y"
	defaultVol      = 0.20
	defaultExpiry   = 1.0
)

func fieldValue(fields map[string]string, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := fields[k]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

func fieldFloat(fields map[string]string, fallback float64, keys ...string) float64 {
	raw, ok := fieldValue(fields, keys...)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return f
}

// BuildSwaption maps a validated RFQ field mapping onto a priceable
// swaption plus its market observables. Enum-ish fields that the
// validator only warns on (day count, frequency) fall back to desk
// defaults; structural failures from the instrument factories are
// returned as-is.
func BuildSwaption(rfq model.RawRFQ, now time.Time) (*instrument.Swaption, Market, error) {
	fields := rfq.Fields

	currency, ok := fieldValue(fields, "currency", "notional_currency")
	if !ok {
		currency = defaultCurrency
	}
	notional := fieldFloat(fields, defaultNotional, "notional", "quantity")
	strike := fieldFloat(fields, defaultStrike, "strike", "rate")

	tenor, ok := fieldValue(fields, "tenor")
	if !ok {
		tenor = defaultTenor
	}

	dayCount := instrument.DayCountAct360
	if raw, ok := fieldValue(fields, "day_count"); ok {
		if dc, err := instrument.ParseDayCount(raw); err == nil {
			dayCount = dc
		}
	}

	frequency := instrument.FrequencySemiAnnual
	if raw, ok := fieldValue(fields, "frequency"); ok {
		if f, err := instrument.ParseFrequency(raw); err == nil {
			frequency = f
		}
	}

	index := instrument.IndexSOFR
	if raw, ok := fieldValue(fields, "index", "floating_index"); ok {
		if fi, err := instrument.ParseFloatingIndex(raw); err == nil {
			index = fi
		}
	}

	fixed, err := instrument.NewLegBuilder().
		WithCurrency(currency).
		WithNotional(notional).
		WithFixedRate(strike).
		WithDayCount(dayCount).
		WithFrequency(frequency).
		Build()
	if err != nil {
		return nil, Market{}, fmt.Errorf("fixed leg: %w", err)
	}

	floating, err := instrument.NewLegBuilder().
		WithCurrency(currency).
		WithNotional(notional).
		WithFloatingIndex(index).
		WithDayCount(dayCount).
		WithFrequency(instrument.FrequencyQuarterly).
		Build()
	if err != nil {
		return nil, Market{}, fmt.Errorf("floating leg: %w", err)
	}

	effectiveDate, ok := fieldValue(fields, "effective_date")
	if !ok {
		effectiveDate = now.UTC().Format("2006-01-02")
	}

	swap, err := instrument.NewVanillaSwap(fixed, floating, tenor, effectiveDate)
	if err != nil {
		return nil, Market{}, err
	}

	kind := instrument.SwaptionPayer
	if direction, ok := fieldValue(fields, "direction"); ok {
		switch strings.ToUpper(direction) {
		case "RECEIVE", "SELL":
			kind = instrument.SwaptionReceiver
		}
	}

	market := Market{
		ForwardRate:  fieldFloat(fields, strike, "forward_rate", "forward"),
		Volatility:   fieldFloat(fields, defaultVol, "volatility", "vol"),
		TimeToExpiry: fieldFloat(fields, defaultExpiry, "time_to_expiry"),
	}

	expiryDate, ok := fieldValue(fields, "expiry_date", "expiry")
	if !ok {
		days := int(market.TimeToExpiry * 365)
		expiryDate = now.UTC().AddDate(0, 0, days).Format("2006-01-02")
	}

	var sw *instrument.Swaption
	style, _ := fieldValue(fields, "style")
	switch strings.ToUpper(style) {
	case "AMERICAN":
		sw, err = instrument.NewAmericanSwaption(kind, swap, expiryDate, strike, 0)
	case "BERMUDAN":
		raw, _ := fieldValue(fields, "exercise_dates")
		var dates []string
		for _, d := range strings.Split(raw, ",") {
			if d = strings.TrimSpace(d); d != "" {
				dates = append(dates, d)
			}
		}
		sw, err = instrument.NewBermudanSwaption(kind, swap, expiryDate, strike, dates, 0)
	default:
		sw, err = instrument.NewEuropeanSwaption(kind, swap, expiryDate, strike, 0)
	}
	if err != nil {
		return nil, Market{}, err
	}

	return sw, market, nil
}
