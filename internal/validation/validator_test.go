package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() Fields {
	return Fields{
		"direction": "BUY",
		"currency":  "USD",
		"notional":  "10000000",
		"tenor":     "5Y",
		"rate":      "0.0525",
		"day_count": "ACT/360",
	}
}

func TestValidateCleanFields(t *testing.T) {
	v := New(DefaultConfig())

	report := v.Validate(validFields())
	assert.Empty(t, report.Results())
	assert.True(t, report.IsValid())
	assert.True(t, v.IsValid(validFields()))
}

func TestDirectionRule(t *testing.T) {
	tests := []struct {
		name      string
		direction string
		strict    bool
		wantErrs  int
	}{
		{"absent non-strict", "", false, 0},
		{"absent strict", "", true, 1},
		{"valid buy", "BUY", false, 0},
		{"valid lowercase", "receive", false, 0},
		{"valid two-way hyphen", "TWO-WAY", false, 0},
		{"invalid", "SIDEWAYS", false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.StrictMode = tt.strict
			v := New(cfg)

			// Notional is supplied so that strict mode cannot add a
			// second error; only the direction rule is under test.
			fields := Fields{"notional": "5000000"}
			if tt.direction != "" {
				fields["direction"] = tt.direction
			}

			errs := v.Errors(fields)
			assert.Len(t, errs, tt.wantErrs)
			if tt.wantErrs > 0 {
				assert.Equal(t, "direction", errs[0].Field)
			}
		})
	}
}

func TestCurrencyRule(t *testing.T) {
	v := New(DefaultConfig())

	t.Run("valid iso code", func(t *testing.T) {
		assert.Empty(t, v.Validate(Fields{"currency": "EUR"}).Results())
	})

	t.Run("falls back to notional_currency", func(t *testing.T) {
		report := v.Validate(Fields{"notional_currency": "usd"})
		require.Len(t, report.Results(), 1)
		assert.True(t, report.Results()[0].IsError())
	})

	t.Run("lowercase rejected", func(t *testing.T) {
		report := v.Validate(Fields{"currency": "usd"})
		require.Len(t, report.Errors(), 1)
		assert.Equal(t, "currency", report.Errors()[0].Field)
	})

	t.Run("absent warns only in strict", func(t *testing.T) {
		assert.Empty(t, v.Validate(Fields{}).Results())

		strict := New(Config{StrictMode: true, MinNotional: 1000, MaxNotional: 1e12})
		report := strict.Validate(Fields{"direction": "BUY", "notional": "5000000"})
		warnings := report.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "currency", warnings[0].Field)
	})
}

func TestNotionalRule(t *testing.T) {
	t.Run("below minimum yields one warning", func(t *testing.T) {
		v := New(Config{MinNotional: 1_000_000, MaxNotional: 1e12})

		report := v.Validate(Fields{"notional": "500000"})
		assert.Empty(t, report.Errors())
		warnings := report.Warnings()
		require.Len(t, warnings, 1)
		assert.Equal(t, "notional", warnings[0].Field)
		assert.True(t, report.IsValid())
	})

	t.Run("negative yields one error", func(t *testing.T) {
		v := New(DefaultConfig())

		report := v.Validate(Fields{"notional": "-5"})
		errs := report.Errors()
		require.Len(t, errs, 1)
		assert.Equal(t, "notional", errs[0].Field)
		assert.False(t, report.IsValid())
	})

	t.Run("zero yields error", func(t *testing.T) {
		v := New(DefaultConfig())
		assert.Len(t, v.Errors(Fields{"notional": "0"}), 1)
	})

	t.Run("unparseable yields error", func(t *testing.T) {
		v := New(DefaultConfig())
		assert.Len(t, v.Errors(Fields{"notional": "ten million"}), 1)
	})

	t.Run("above maximum yields warning", func(t *testing.T) {
		v := New(DefaultConfig())
		assert.Len(t, v.Warnings(Fields{"notional": "9000000000000"}), 1)
	})

	t.Run("falls back to quantity", func(t *testing.T) {
		v := New(DefaultConfig())
		assert.Len(t, v.Errors(Fields{"quantity": "-100"}), 1)
	})

	t.Run("absent errors only in strict", func(t *testing.T) {
		lenient := New(DefaultConfig())
		assert.Empty(t, lenient.Validate(Fields{}).Results())

		strict := New(Config{StrictMode: true, MinNotional: 1000, MaxNotional: 1e12})
		errs := strict.Errors(Fields{"direction": "BUY", "currency": "USD"})
		require.Len(t, errs, 1)
		assert.Equal(t, "notional", errs[0].Field)
	})
}

func TestTenorRule(t *testing.T) {
	v := New(DefaultConfig())

	tests := []struct {
		tenor    string
		wantErrs int
	}{
		{"5Y", 0},
		{"3m", 0},
		{"90D", 0},
		{"12W", 0},
		{"5 Y", 1},
		{"Y5", 1},
		{"5", 1},
	}

	for _, tt := range tests {
		t.Run(tt.tenor, func(t *testing.T) {
			assert.Len(t, v.Errors(Fields{"tenor": tt.tenor}), tt.wantErrs)
		})
	}

	t.Run("absent is fine even in strict", func(t *testing.T) {
		strict := New(Config{StrictMode: true, MinNotional: 1000, MaxNotional: 1e12})
		report := strict.Validate(Fields{"direction": "BUY", "currency": "USD", "notional": "5000000"})
		assert.True(t, report.IsValid())
	})
}

func TestRateRule(t *testing.T) {
	v := New(DefaultConfig())

	t.Run("in range", func(t *testing.T) {
		assert.Empty(t, v.Validate(Fields{"rate": "0.0525"}).Results())
	})

	t.Run("slightly negative allowed", func(t *testing.T) {
		assert.Empty(t, v.Validate(Fields{"rate": "-0.01"}).Results())
	})

	t.Run("out of range warns", func(t *testing.T) {
		assert.Len(t, v.Warnings(Fields{"rate": "1.5"}), 1)
		assert.Len(t, v.Warnings(Fields{"rate": "-0.10"}), 1)
	})

	t.Run("unparseable errors", func(t *testing.T) {
		errs := v.Errors(Fields{"rate": "five percent"})
		require.Len(t, errs, 1)
		assert.Equal(t, "rate", errs[0].Field)
	})

	t.Run("falls back to strike", func(t *testing.T) {
		assert.Len(t, v.Warnings(Fields{"strike": "2.0"}), 1)
	})
}

func TestDayCountRule(t *testing.T) {
	v := New(DefaultConfig())

	assert.Empty(t, v.Validate(Fields{"day_count": "act/365 fixed"}).Results())
	assert.Len(t, v.Warnings(Fields{"day_count": "BUS/252"}), 1)
	assert.Empty(t, v.Validate(Fields{}).Results())
}

func TestCustomRules(t *testing.T) {
	v := New(DefaultConfig())
	require.Equal(t, 6, v.RuleCount())

	v.AddRule("client", func(data Fields) *Result {
		if _, ok := data.get("client"); !ok {
			return &Result{Severity: SeverityError, Field: "client", Message: "Client is required"}
		}
		return nil
	})
	assert.Equal(t, 7, v.RuleCount())

	fields := validFields()
	assert.False(t, v.IsValid(fields))

	fields["client"] = "ACME"
	assert.True(t, v.IsValid(fields))

	v.RemoveRule("client")
	assert.Equal(t, 6, v.RuleCount())
	delete(fields, "client")
	assert.True(t, v.IsValid(fields))
}

func TestRuleReplacementKeepsOrder(t *testing.T) {
	v := New(DefaultConfig())

	// Relax the tenor rule; count must not change and findings stay in
	// registration order.
	v.AddRule("tenor", func(Fields) *Result { return nil })
	assert.Equal(t, 6, v.RuleCount())

	fields := Fields{"tenor": "not-a-tenor", "notional": "-5", "rate": "bad"}
	results := v.Validate(fields).Results()
	require.Len(t, results, 2)
	assert.Equal(t, "notional", results[0].Field)
	assert.Equal(t, "rate", results[1].Field)
}

func TestReportString(t *testing.T) {
	v := New(DefaultConfig())

	report := v.Validate(Fields{"notional": "-5", "rate": "2.0"})
	out := report.String()
	assert.Contains(t, out, "Total issues: 2")
	assert.Contains(t, out, "Errors: 1")
	assert.Contains(t, out, "Warnings: 1")
	assert.Contains(t, out, "[ERROR  ] notional:")
	assert.Contains(t, out, "(Typical range: -5% to 100%)")
}
