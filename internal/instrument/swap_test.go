package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLeg(t *testing.T, ccy string, notional, rate float64) *SwapLeg {
	t.Helper()
	leg, err := NewLegBuilder().
		WithCurrency(ccy).
		WithNotional(notional).
		WithFixedRate(rate).
		Build()
	require.NoError(t, err)
	return leg
}

func floatingLeg(t *testing.T, ccy string, notional float64, index FloatingIndex) *SwapLeg {
	t.Helper()
	leg, err := NewLegBuilder().
		WithCurrency(ccy).
		WithNotional(notional).
		WithFloatingIndex(index).
		WithFrequency(FrequencyQuarterly).
		Build()
	require.NoError(t, err)
	return leg
}

func TestVanillaSwapScenario(t *testing.T) {
	pay := fixedLeg(t, "USD", 10_000_000, 0.0525)
	receive := floatingLeg(t, "USD", 10_000_000, IndexSOFR)

	swap, err := NewVanillaSwap(pay, receive, "5Y", "2024-01-15")
	require.NoError(t, err)

	assert.Equal(t, SwapVanilla, swap.Type())
	assert.Equal(t, 10_000_000.0, swap.Notional())
	assert.Equal(t, "5Y", swap.Tenor())
	assert.True(t, swap.IsValid())
	assert.Empty(t, swap.Validate())
}

func TestVanillaSwapRejections(t *testing.T) {
	tests := []struct {
		name    string
		pay     func(t *testing.T) *SwapLeg
		receive func(t *testing.T) *SwapLeg
	}{
		{
			name:    "both fixed",
			pay:     func(t *testing.T) *SwapLeg { return fixedLeg(t, "USD", 1e6, 0.05) },
			receive: func(t *testing.T) *SwapLeg { return fixedLeg(t, "USD", 1e6, 0.04) },
		},
		{
			name:    "both floating",
			pay:     func(t *testing.T) *SwapLeg { return floatingLeg(t, "USD", 1e6, IndexSOFR) },
			receive: func(t *testing.T) *SwapLeg { return floatingLeg(t, "USD", 1e6, IndexLiborUSD) },
		},
		{
			name:    "currency mismatch",
			pay:     func(t *testing.T) *SwapLeg { return fixedLeg(t, "USD", 1e6, 0.05) },
			receive: func(t *testing.T) *SwapLeg { return floatingLeg(t, "EUR", 1e6, IndexEuribor) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			swap, err := NewVanillaSwap(tt.pay(t), tt.receive(t), "5Y", "2024-01-15")
			require.Error(t, err)
			assert.Nil(t, swap)

			var cerr *ConstructionError
			assert.ErrorAs(t, err, &cerr)
		})
	}
}

func TestBasisSwap(t *testing.T) {
	t.Run("distinct indices succeed", func(t *testing.T) {
		swap, err := NewBasisSwap(
			floatingLeg(t, "USD", 1e6, IndexSOFR),
			floatingLeg(t, "USD", 1e6, IndexLiborUSD),
			"2Y", "2024-06-01",
		)
		require.NoError(t, err)
		assert.Equal(t, SwapBasis, swap.Type())
		assert.True(t, swap.IsValid())
	})

	t.Run("same index rejected", func(t *testing.T) {
		_, err := NewBasisSwap(
			floatingLeg(t, "USD", 1e6, IndexSOFR),
			floatingLeg(t, "USD", 1e6, IndexSOFR),
			"2Y", "2024-06-01",
		)
		require.Error(t, err)
	})

	t.Run("fixed leg rejected", func(t *testing.T) {
		_, err := NewBasisSwap(
			fixedLeg(t, "USD", 1e6, 0.05),
			floatingLeg(t, "USD", 1e6, IndexSOFR),
			"2Y", "2024-06-01",
		)
		require.Error(t, err)
	})
}

func TestCrossCurrencySwap(t *testing.T) {
	t.Run("notional averages legs in pay currency", func(t *testing.T) {
		swap, err := NewCrossCurrencySwap(
			fixedLeg(t, "USD", 10_000_000, 0.05),
			floatingLeg(t, "EUR", 9_000_000, IndexEuribor),
			"10Y", "2024-03-20", 1.10,
		)
		require.NoError(t, err)
		assert.Equal(t, SwapCrossCurrency, swap.Type())
		assert.InDelta(t, (10_000_000+9_000_000*1.10)/2.0, swap.Notional(), 1e-6)

		fx, ok := swap.FXRate()
		assert.True(t, ok)
		assert.Equal(t, 1.10, fx)
	})

	t.Run("same currency rejected", func(t *testing.T) {
		_, err := NewCrossCurrencySwap(
			fixedLeg(t, "USD", 1e6, 0.05),
			floatingLeg(t, "USD", 1e6, IndexSOFR),
			"10Y", "2024-03-20", 1.10,
		)
		require.Error(t, err)
	})

	t.Run("non-positive fx rate rejected", func(t *testing.T) {
		_, err := NewCrossCurrencySwap(
			fixedLeg(t, "USD", 1e6, 0.05),
			floatingLeg(t, "EUR", 1e6, IndexEuribor),
			"10Y", "2024-03-20", 0,
		)
		require.Error(t, err)
	})
}

func TestCalculateNetPayment(t *testing.T) {
	pay := fixedLeg(t, "USD", 10_000_000, 0.05)
	receive := floatingLeg(t, "USD", 10_000_000, IndexSOFR)

	swap, err := NewVanillaSwap(pay, receive, "5Y", "2024-01-15")
	require.NoError(t, err)

	// Fixed pays 10M * 0.05 * 0.5, floating receives 10M * 0.045 * 0.5.
	net := swap.CalculateNetPayment(180)
	assert.InDelta(t, 10_000_000*(0.045-0.05)*0.5, net, 1e-6)
}

func TestSwapValidateViolations(t *testing.T) {
	pay := fixedLeg(t, "USD", 1e6, 0.05)
	receive := floatingLeg(t, "USD", 1e6, IndexSOFR)

	swap, err := NewVanillaSwap(pay, receive, "", "")
	require.NoError(t, err)

	violations := swap.Validate()
	assert.Len(t, violations, 2)
	assert.False(t, swap.IsValid())
}

func TestTenorToMonths(t *testing.T) {
	tests := []struct {
		tenor    string
		expected int
	}{
		{"5Y", 60},
		{"18M", 18},
		{"90D", 3},
		{"12W", 3},
		{"1y", 12},
		{" 2Y ", 24},
		{"", 0},
		{"Y5", 0},
		{"abc", 0},
	}

	for _, tt := range tests {
		t.Run(tt.tenor, func(t *testing.T) {
			assert.Equal(t, tt.expected, TenorToMonths(tt.tenor))
		})
	}
}
