// Package rules implements the fare-product rule catalogue and the
// validator that runs it. Every rule is a pure function over a shared,
// immutable Context; rules never call one another and never mutate state.
package rules

// Severity distinguishes hard constraint breaches from findings that need
// operator judgment.
type Severity string

const (
	// Violation is an unambiguous rule breach; the itinerary is invalid.
	Violation Severity = "violation"
	// Warning flags a situation the rule set cannot fully resolve from the
	// input alone. Warnings never block an itinerary.
	Warning Severity = "warning"
)

// Result is a single finding from one rule.
type Result struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	// Segments lists the zero-based indices implicated, when known.
	Segments []int `json:"segments,omitempty"`
}

// Report aggregates the findings of a full validation run. Results are
// ordered by the fixed rule registry order, so identical inputs produce
// byte-identical reports.
type Report struct {
	Results []Result `json:"results"`
	Valid   bool     `json:"valid"`
}

// Violations returns only the violation-severity findings.
func (r Report) Violations() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Severity == Violation {
			out = append(out, res)
		}
	}
	return out
}

// Warnings returns only the warning-severity findings.
func (r Report) Warnings() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Severity == Warning {
			out = append(out, res)
		}
	}
	return out
}

func violation(ruleID, msg string, segments ...int) Result {
	return Result{RuleID: ruleID, Severity: Violation, Message: msg, Segments: segments}
}

func warning(ruleID, msg string, segments ...int) Result {
	return Result{RuleID: ruleID, Severity: Warning, Message: msg, Segments: segments}
}
