package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/rates-engine/internal/instrument"
	"github.com/Checker-Finance/rates-engine/internal/pricer"
	"github.com/Checker-Finance/rates-engine/internal/validation"
	"github.com/Checker-Finance/rates-engine/pkg/config"
	"github.com/Checker-Finance/rates-engine/pkg/model"
)

var mapperNow = time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	cfg := &config.Config{
		Workers:    2,
		QueueDepth: 16,
		QuoteTTL:   time.Minute,
	}
	return New(cfg, zap.NewNop(), validation.New(validation.DefaultConfig()), nil, nil)
}

func TestBuildSwaptionFromFullFields(t *testing.T) {
	rfq := model.RawRFQ{
		RequestID: "rfq-100",
		Fields: map[string]string{
			"direction":      "PAY",
			"currency":       "USD",
			"notional":       "25000000",
			"tenor":          "10Y",
			"strike":         "0.045",
			"day_count":      "ACT/365",
			"frequency":      "Quarterly",
			"index":          "SOFR",
			"expiry_date":    "2025-06-03",
			"forward_rate":   "0.048",
			"volatility":     "0.25",
			"time_to_expiry": "1.0",
		},
	}

	sw, market, err := BuildSwaption(rfq, mapperNow)
	require.NoError(t, err)

	assert.Equal(t, instrument.SwaptionPayer, sw.Kind())
	assert.Equal(t, instrument.StyleEuropean, sw.Style())
	assert.Equal(t, 25_000_000.0, sw.Underlying().Notional())
	assert.Equal(t, 0.045, sw.Strike())
	assert.Equal(t, "2025-06-03", sw.ExpiryDate())
	assert.Equal(t, "10Y", sw.Underlying().Tenor())

	fixedLeg := sw.Underlying().PayLeg()
	assert.True(t, fixedLeg.IsFixed())
	assert.Equal(t, instrument.DayCountAct365, fixedLeg.DayCount())
	assert.Equal(t, instrument.FrequencyQuarterly, fixedLeg.Frequency())

	assert.Equal(t, 0.048, market.ForwardRate)
	assert.Equal(t, 0.25, market.Volatility)
	assert.Equal(t, 1.0, market.TimeToExpiry)
}

func TestBuildSwaptionDefaults(t *testing.T) {
	rfq := model.RawRFQ{RequestID: "rfq-101", Fields: map[string]string{}}

	sw, market, err := BuildSwaption(rfq, mapperNow)
	require.NoError(t, err)

	assert.Equal(t, instrument.SwaptionPayer, sw.Kind())
	assert.Equal(t, "USD", sw.Underlying().PayLeg().Currency())
	assert.Equal(t, defaultNotional, sw.Underlying().Notional())
	assert.Equal(t, defaultStrike, sw.Strike())
	assert.Equal(t, defaultTenor, sw.Underlying().Tenor())
	assert.Equal(t, "2024-06-03", sw.Underlying().EffectiveDate())
	// Forward defaults to the strike (at the money).
	assert.Equal(t, defaultStrike, market.ForwardRate)
	assert.Equal(t, defaultVol, market.Volatility)
	assert.True(t, sw.IsValid())
}

func TestBuildSwaptionDirectionMapping(t *testing.T) {
	tests := []struct {
		direction string
		kind      instrument.SwaptionKind
	}{
		{"PAY", instrument.SwaptionPayer},
		{"BUY", instrument.SwaptionPayer},
		{"receive", instrument.SwaptionReceiver},
		{"SELL", instrument.SwaptionReceiver},
		{"TWO_WAY", instrument.SwaptionPayer},
	}

	for _, tt := range tests {
		t.Run(tt.direction, func(t *testing.T) {
			rfq := model.RawRFQ{Fields: map[string]string{"direction": tt.direction}}
			sw, _, err := BuildSwaption(rfq, mapperNow)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, sw.Kind())
		})
	}
}

func TestBuildSwaptionBermudan(t *testing.T) {
	rfq := model.RawRFQ{
		Fields: map[string]string{
			"style":          "BERMUDAN",
			"expiry_date":    "2026-06-03",
			"exercise_dates": "2025-06-03, 2025-12-03,2026-06-03",
		},
	}

	sw, _, err := BuildSwaption(rfq, mapperNow)
	require.NoError(t, err)
	assert.Equal(t, instrument.StyleBermudan, sw.Style())
	assert.Equal(t, []string{"2025-06-03", "2025-12-03", "2026-06-03"}, sw.ExerciseDates())
	assert.True(t, sw.CanExerciseOn("2025-12-03"))
}

func TestBuildSwaptionBermudanWithoutDatesFails(t *testing.T) {
	rfq := model.RawRFQ{Fields: map[string]string{"style": "BERMUDAN"}}
	_, _, err := BuildSwaption(rfq, mapperNow)
	require.Error(t, err)
}

func TestValidateFieldsSummary(t *testing.T) {
	e := testEngine()

	summary := e.ValidateFields("rfq-200", map[string]string{
		"direction": "BUY",
		"currency":  "usd",
		"notional":  "500",
	})

	assert.Equal(t, "rfq-200", summary.RequestID)
	assert.False(t, summary.Valid)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 1, summary.Warnings)
	require.Len(t, summary.Issues, 2)
	assert.Equal(t, "currency", summary.Issues[0].Field)
	assert.Equal(t, "ERROR", summary.Issues[0].Severity)
	assert.Equal(t, "notional", summary.Issues[1].Field)
	assert.Equal(t, "WARNING", summary.Issues[1].Severity)
}

func TestPriceRFQMatchesPricer(t *testing.T) {
	e := testEngine()

	rfq := model.RawRFQ{
		RequestID:  "rfq-300",
		ClientID:   "client1",
		ReceivedAt: mapperNow,
		Fields: map[string]string{
			"direction":      "PAY",
			"notional":       "10000000",
			"strike":         "0.05",
			"tenor":          "5Y",
			"forward_rate":   "0.055",
			"volatility":     "0.20",
			"time_to_expiry": "1.0",
		},
	}

	quote, err := e.PriceRFQ(rfq)
	require.NoError(t, err)

	sw, market, err := BuildSwaption(rfq, mapperNow)
	require.NoError(t, err)

	assert.Equal(t, "rfq-300", quote.RequestID)
	assert.Equal(t, "PAYER", quote.SwaptionKind)
	assert.Equal(t, "EUROPEAN", quote.Style)
	assert.InDelta(t, pricer.BlackPrice(sw, 0.055, 0.20, 1.0), quote.Price, 1e-9)
	assert.InDelta(t, pricer.Annuity(sw.Underlying(), 0.055), quote.Annuity, 1e-12)
	assert.Greater(t, quote.Price, 0.0)
	assert.Equal(t, market.ForwardRate, quote.ForwardRate)
}
