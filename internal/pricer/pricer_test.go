package pricer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Checker-Finance/rates-engine/internal/instrument"
)

func buildSwaption(t *testing.T, kind instrument.SwaptionKind, strike float64, tenor string) *instrument.Swaption {
	t.Helper()

	pay, err := instrument.NewLegBuilder().
		WithCurrency("USD").
		WithNotional(10_000_000).
		WithFixedRate(strike).
		WithFrequency(instrument.FrequencySemiAnnual).
		Build()
	require.NoError(t, err)

	receive, err := instrument.NewLegBuilder().
		WithCurrency("USD").
		WithNotional(10_000_000).
		WithFloatingIndex(instrument.IndexSOFR).
		WithFrequency(instrument.FrequencyQuarterly).
		Build()
	require.NoError(t, err)

	swap, err := instrument.NewVanillaSwap(pay, receive, tenor, "2024-01-15")
	require.NoError(t, err)

	sw, err := instrument.NewEuropeanSwaption(kind, swap, "2025-01-15", strike, 0)
	require.NoError(t, err)
	return sw
}

func TestAnnuity(t *testing.T) {
	sw := buildSwaption(t, instrument.SwaptionPayer, 0.05, "5Y")
	swap := sw.Underlying()

	// 5Y semi-annual fixed leg: 10 payments at 0.5y spacing.
	expected := 0.0
	for i := 1; i <= 10; i++ {
		expected += math.Exp(-0.05 * float64(i) * 0.5)
	}
	assert.InDelta(t, expected, Annuity(swap, 0.05), 1e-12)

	// Annuity is positive and below the undiscounted payment count.
	a := Annuity(swap, 0.05)
	assert.Greater(t, a, 0.0)
	assert.Less(t, a, 10.0)
}

func TestAnnuityDegenerateFallback(t *testing.T) {
	sw := buildSwaption(t, instrument.SwaptionPayer, 0.05, "garbage")
	assert.Equal(t, 1.0, Annuity(sw.Underlying(), 0.05))

	assert.Equal(t, 1.0, Annuity(nil, 0.05))
}

func TestBlackPriceNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		kind    instrument.SwaptionKind
		strike  float64
		forward float64
		vol     float64
		tte     float64
	}{
		{"payer atm", instrument.SwaptionPayer, 0.05, 0.05, 0.20, 1.0},
		{"payer itm", instrument.SwaptionPayer, 0.04, 0.06, 0.20, 1.0},
		{"payer otm", instrument.SwaptionPayer, 0.06, 0.04, 0.20, 1.0},
		{"receiver atm", instrument.SwaptionReceiver, 0.05, 0.05, 0.20, 1.0},
		{"receiver itm", instrument.SwaptionReceiver, 0.06, 0.04, 0.30, 2.0},
		{"short expiry", instrument.SwaptionPayer, 0.05, 0.05, 0.15, 0.25},
		{"low vol", instrument.SwaptionPayer, 0.05, 0.055, 0.05, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw := buildSwaption(t, tt.kind, tt.strike, "5Y")
			price := BlackPrice(sw, tt.forward, tt.vol, tt.tte)
			assert.GreaterOrEqual(t, price, 0.0)
		})
	}
}

func TestBlackPricePayerReceiverParity(t *testing.T) {
	// Payer minus receiver equals the discounted forward-strike spread
	// (put-call parity under Black-76).
	forward, vol, tte := 0.055, 0.20, 1.0
	strike := 0.05

	payer := buildSwaption(t, instrument.SwaptionPayer, strike, "5Y")
	receiver := buildSwaption(t, instrument.SwaptionReceiver, strike, "5Y")

	notional := payer.Underlying().Notional()
	annuity := Annuity(payer.Underlying(), forward)

	lhs := BlackPrice(payer, forward, vol, tte) - BlackPrice(receiver, forward, vol, tte)
	rhs := notional * annuity * (forward - strike)
	assert.InDelta(t, rhs, lhs, 1e-6*notional)
}

func TestBlackPriceDegenerateInputsReturnIntrinsic(t *testing.T) {
	sw := buildSwaption(t, instrument.SwaptionPayer, 0.05, "5Y")
	forward := 0.06
	annuity := Annuity(sw.Underlying(), forward)
	intrinsic := sw.Underlying().Notional() * annuity * (forward - 0.05)

	assert.InDelta(t, intrinsic, BlackPrice(sw, forward, 0, 1.0), 1e-6)
	assert.InDelta(t, intrinsic, BlackPrice(sw, forward, 0.20, 0), 1e-6)
	assert.Zero(t, BlackPrice(sw, 0, 0.20, 1.0))
}

func TestBlackPriceIncreasesWithVol(t *testing.T) {
	sw := buildSwaption(t, instrument.SwaptionPayer, 0.05, "5Y")

	prev := BlackPrice(sw, 0.05, 0.05, 1.0)
	for _, vol := range []float64{0.10, 0.20, 0.40, 0.80} {
		price := BlackPrice(sw, 0.05, vol, 1.0)
		assert.Greater(t, price, prev)
		prev = price
	}
}

func TestImpliedVolatilityRoundTrip(t *testing.T) {
	vols := []float64{0.10, 0.20, 0.35, 0.50}
	forwards := []float64{0.03, 0.05, 0.08}
	expiries := []float64{0.5, 1.0, 3.0}

	for _, kind := range []instrument.SwaptionKind{instrument.SwaptionPayer, instrument.SwaptionReceiver} {
		sw := buildSwaption(t, kind, 0.05, "5Y")
		for _, vol := range vols {
			for _, forward := range forwards {
				for _, tte := range expiries {
					price := BlackPrice(sw, forward, vol, tte)
					if price < priceTolerance {
						continue
					}
					implied := ImpliedVolatility(sw, price, forward, tte)
					assert.InDeltaf(t, vol, implied, 1e-4,
						"%s vol=%v forward=%v tte=%v", kind, vol, forward, tte)
				}
			}
		}
	}
}

func TestImpliedVolatilityFarFromInitialGuess(t *testing.T) {
	// Roots where a raw Newton step from the 20% start would jump out
	// of the domain: deep ITM with low vol (tiny vega at the start) and
	// high-vol points well above the guess. The bracketed solver must
	// still recover them.
	tests := []struct {
		name    string
		kind    instrument.SwaptionKind
		forward float64
		vol     float64
		tte     float64
	}{
		{"payer deep itm low vol", instrument.SwaptionPayer, 0.08, 0.10, 0.5},
		{"receiver high vol", instrument.SwaptionReceiver, 0.03, 0.50, 1.0},
		{"payer high vol", instrument.SwaptionPayer, 0.05, 0.50, 3.0},
		{"receiver deep itm", instrument.SwaptionReceiver, 0.03, 0.10, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw := buildSwaption(t, tt.kind, 0.05, "5Y")
			price := BlackPrice(sw, tt.forward, tt.vol, tt.tte)
			require.Greater(t, price, priceTolerance)

			implied := ImpliedVolatility(sw, price, tt.forward, tt.tte)
			assert.InDelta(t, tt.vol, implied, 1e-4)
		})
	}
}

func TestImpliedVolatilityZeroVegaTerminates(t *testing.T) {
	// Deep out of the money with no time value: vega vanishes, the
	// solver must return instead of dividing by zero.
	sw := buildSwaption(t, instrument.SwaptionPayer, 0.50, "5Y")
	vol := ImpliedVolatility(sw, 0, 0.01, 0.01)
	assert.False(t, math.IsNaN(vol))
	assert.False(t, math.IsInf(vol, 0))
}
