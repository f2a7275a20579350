// Package models defines the result types shared by the checklist evaluator,
// the suite runner, and the reporting layer.
package models

import "fmt"

// CheckOutcome is the tri-state outcome of a single check.
type CheckOutcome string

const (
	OutcomePassed CheckOutcome = "passed"
	OutcomeFailed CheckOutcome = "failed"
	// OutcomeSkipped marks a check that did not run. Skipped checks count
	// toward neither the score numerator nor the denominator.
	OutcomeSkipped CheckOutcome = "skipped"
)

// CheckRecord is the persisted outcome of one check against one template.
type CheckRecord struct {
	// Name is a stable check identifier used in output and downstream processing.
	Name string `json:"name"`
	// Outcome is the tri-state result of the check.
	Outcome CheckOutcome `json:"outcome"`
	// Summary is a human-readable one-line result intended for concise display.
	Summary string `json:"summary,omitempty"`
	// Details provides optional supporting lines for diagnostics.
	Details []string `json:"details,omitempty"`
	// Advisory marks a check whose failure is rendered as a warning.
	// Advisory failures still count against the score.
	Advisory bool `json:"advisory,omitempty"`
	// DurationMs is how long the check took.
	DurationMs int64 `json:"duration_ms"`
}

// TemplateResult is the complete result of evaluating one template.
// It is built once by the evaluator and never mutated afterwards.
type TemplateResult struct {
	Template string `json:"template"`
	Path     string `json:"path"`
	// Checks holds one record per check in execution order.
	Checks []CheckRecord `json:"checks"`
	// Score is "<passed>/<total>" where total counts non-skipped checks.
	Score  string `json:"score"`
	Passed bool   `json:"passed"`
}

// NewTemplateResult builds a TemplateResult from check records, computing
// the score and the overall verdict. A template passes iff every non-skipped
// check passed and at least one check ran.
func NewTemplateResult(template, path string, checks []CheckRecord) TemplateResult {
	passed := 0
	total := 0
	for _, c := range checks {
		if c.Outcome == OutcomeSkipped {
			continue
		}
		total++
		if c.Outcome == OutcomePassed {
			passed++
		}
	}

	return TemplateResult{
		Template: template,
		Path:     path,
		Checks:   checks,
		Score:    fmt.Sprintf("%d/%d", passed, total),
		Passed:   total > 0 && passed == total,
	}
}

// Outcome returns the outcome of the named check, or false if the check is
// not present in the result.
func (r *TemplateResult) Outcome(name string) (CheckOutcome, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c.Outcome, true
		}
	}
	return "", false
}
