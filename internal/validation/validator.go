package validation

// Fields is the raw field-name to string-value mapping a validator
// inspects. Values arrive untyped from upstream RFQ parsing.
type Fields map[string]string

// get returns the first non-empty value among the given keys.
func (f Fields) get(keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := f[k]; ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// Rule inspects a field mapping and returns a finding, or nil when the
// fields pass. Rules must be pure: no shared mutable state, so one
// validator may serve concurrent callers.
type Rule func(Fields) *Result

// Config carries the validator's tunable thresholds. There is no
// process-wide validator state; each instance owns its configuration.
type Config struct {
	StrictMode  bool
	MinNotional float64
	MaxNotional float64
}

// DefaultConfig mirrors the desk defaults: lenient mode, notionals
// flagged outside [1e3, 1e12].
func DefaultConfig() Config {
	return Config{
		StrictMode:  false,
		MinNotional: 1000.0,
		MaxNotional: 1e12,
	}
}

type namedRule struct {
	name string
	rule Rule
}

// Validator runs a registry of named rules over RFQ field mappings.
// Rules execute in registration order so reports are reproducible.
// Re-registering a name replaces the rule in place.
type Validator struct {
	cfg   Config
	rules []namedRule
}

// New builds a validator with the six built-in rules pre-registered.
func New(cfg Config) *Validator {
	v := &Validator{cfg: cfg}
	v.AddRule("direction", v.validateDirection)
	v.AddRule("currency", v.validateCurrency)
	v.AddRule("notional", v.validateNotional)
	v.AddRule("tenor", v.validateTenor)
	v.AddRule("rate", v.validateRate)
	v.AddRule("day_count", v.validateDayCount)
	return v
}

// AddRule registers a rule under a name. An existing name is replaced
// without changing its position in the execution order.
func (v *Validator) AddRule(name string, rule Rule) {
	for i, nr := range v.rules {
		if nr.name == name {
			v.rules[i].rule = rule
			return
		}
	}
	v.rules = append(v.rules, namedRule{name: name, rule: rule})
}

// RemoveRule unregisters a rule by name. Unknown names are a no-op.
func (v *Validator) RemoveRule(name string) {
	for i, nr := range v.rules {
		if nr.name == name {
			v.rules = append(v.rules[:i], v.rules[i+1:]...)
			return
		}
	}
}

// RuleCount returns the number of registered rules.
func (v *Validator) RuleCount() int { return len(v.rules) }

// Validate runs every registered rule and collects all findings.
func (v *Validator) Validate(data Fields) *Report {
	var results []Result
	for _, nr := range v.rules {
		if res := nr.rule(data); res != nil {
			results = append(results, *res)
		}
	}
	return NewReport(results)
}

// IsValid reports whether validation produced no error-severity finding.
func (v *Validator) IsValid(data Fields) bool {
	return v.Validate(data).IsValid()
}

// Errors runs validation and returns only the error findings.
func (v *Validator) Errors(data Fields) []Result {
	return v.Validate(data).Errors()
}

// Warnings runs validation and returns only the warning findings.
func (v *Validator) Warnings(data Fields) []Result {
	return v.Validate(data).Warnings()
}
