package validation

import (
	"fmt"
	"strings"
)

// Severity classifies a validation finding. Only errors make a field
// mapping unacceptable; warnings and infos are advisory.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// Result is a single finding against one field. Suggestion is optional
// remediation text, empty when none applies.
type Result struct {
	Severity   Severity
	Field      string
	Message    string
	Suggestion string
}

// IsError reports whether the finding is error severity.
func (r Result) IsError() bool { return r.Severity == SeverityError }

// IsWarning reports whether the finding is warning severity.
func (r Result) IsWarning() bool { return r.Severity == SeverityWarning }

// Report is the ordered collection of findings from one validation
// pass. Results appear in rule registration order.
type Report struct {
	results []Result
}

// NewReport wraps findings into a report.
func NewReport(results []Result) *Report {
	return &Report{results: results}
}

// Results returns all findings in order.
func (r *Report) Results() []Result { return r.results }

// ErrorCount returns the number of error-severity findings.
func (r *Report) ErrorCount() int {
	n := 0
	for _, res := range r.results {
		if res.IsError() {
			n++
		}
	}
	return n
}

// WarningCount returns the number of warning-severity findings.
func (r *Report) WarningCount() int {
	n := 0
	for _, res := range r.results {
		if res.IsWarning() {
			n++
		}
	}
	return n
}

// IsValid reports whether no error-severity finding is present.
func (r *Report) IsValid() bool { return r.ErrorCount() == 0 }

// Errors returns only the error-severity findings.
func (r *Report) Errors() []Result {
	var out []Result
	for _, res := range r.results {
		if res.IsError() {
			out = append(out, res)
		}
	}
	return out
}

// Warnings returns only the warning-severity findings.
func (r *Report) Warnings() []Result {
	var out []Result
	for _, res := range r.results {
		if res.IsWarning() {
			out = append(out, res)
		}
	}
	return out
}

// String renders the report for logs.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString("Validation Report\n")
	b.WriteString("=================\n")
	fmt.Fprintf(&b, "Total issues: %d\n", len(r.results))
	fmt.Fprintf(&b, "Errors: %d\n", r.ErrorCount())
	fmt.Fprintf(&b, "Warnings: %d\n\n", r.WarningCount())

	for _, res := range r.results {
		fmt.Fprintf(&b, "[%-7s] %s: %s", res.Severity, res.Field, res.Message)
		if res.Suggestion != "" {
			fmt.Fprintf(&b, " (%s)", res.Suggestion)
		}
		b.WriteByte('\n')
	}

	return b.String()
}
