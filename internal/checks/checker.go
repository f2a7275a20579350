// Package checks provides the TemplateChecker interface and implementations
// for validating quantum algorithm template files against the checklist.
package checks

import "context"

// Template is the unit under check: a template file path plus its content,
// loaded once by the evaluator.
type Template struct {
	// Name is the template's base filename.
	Name string
	// Path is the location the template was read from.
	Path string
	// Content is the full file content.
	Content string
}

// CheckResult holds the outcome of a single check.
type CheckResult struct {
	// Name is a stable check identifier used in output and downstream processing.
	Name string
	// Passed indicates whether the check met its acceptance criteria.
	Passed bool
	// Skipped marks a check that did not run. Skipped checks contribute to
	// neither side of the template score.
	Skipped bool
	// Summary is a human-readable one-line result intended for concise display.
	Summary string
	// Details provides optional supporting lines for diagnostics or remediation.
	Details []string
	// Advisory marks a check whose failure is surfaced as a warning rather
	// than an error. Advisory failures still gate the score.
	Advisory bool
}

// TemplateChecker runs a single checklist entry against a template.
// Implementations that spawn subprocesses honor ctx cancellation; pure
// content checks ignore it.
type TemplateChecker interface {
	Name() string
	Check(ctx context.Context, tpl Template) (*CheckResult, error)
}
