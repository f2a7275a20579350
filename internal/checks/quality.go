package checks

import (
	"context"
	"fmt"
	"strings"
)

const (
	// DefaultMinLines is the line count below which a template is flagged
	// as under-length.
	DefaultMinLines = 300
	// DefaultRequiredConstruct is the class every template must reference.
	DefaultRequiredConstruct = "PhysicsValidator"

	// docstringWindow is how far into the file the module docstring must
	// appear.
	docstringWindow = 500
)

// defaultLegacyAPIs are the deprecated interface names templates must not use.
var defaultLegacyAPIs = []string{"qiskit.aqua", "qiskit.chemistry"}

// QualityChecker scans template content for textual quality issues:
// placeholder markers, legacy API usage, the required validator construct,
// minimum length, a leading docstring, and error handling. All issues are
// collected and reported together; the check passes iff none are found.
type QualityChecker struct {
	// MinLines overrides DefaultMinLines when positive.
	MinLines int
	// RequiredConstruct overrides DefaultRequiredConstruct when non-empty.
	RequiredConstruct string
	// LegacyAPIs overrides the default deprecated interface substrings.
	LegacyAPIs []string
}

var _ TemplateChecker = (*QualityChecker)(nil)

func (c *QualityChecker) Name() string { return "quality" }

func (c *QualityChecker) Check(_ context.Context, tpl Template) (*CheckResult, error) {
	issues := c.Issues(tpl.Content)
	if len(issues) > 0 {
		return &CheckResult{
			Name:    c.Name(),
			Passed:  false,
			Summary: fmt.Sprintf("%d quality issue(s)", len(issues)),
			Details: issues,
		}, nil
	}
	return &CheckResult{
		Name:    c.Name(),
		Passed:  true,
		Summary: "No quality issues",
	}, nil
}

// Issues returns every quality issue present in content, in a fixed order.
// The scan is deterministic: identical content yields an identical list.
func (c *QualityChecker) Issues(content string) []string {
	var issues []string

	if strings.Contains(content, "TODO") || strings.Contains(content, "FIXME") ||
		strings.Contains(strings.ToLower(content), "placeholder") {
		issues = append(issues, "Contains placeholders (TODO/FIXME)")
	}

	legacy := c.LegacyAPIs
	if legacy == nil {
		legacy = defaultLegacyAPIs
	}
	for _, api := range legacy {
		if strings.Contains(content, api) {
			issues = append(issues, "Uses deprecated Qiskit API")
			break
		}
	}

	required := c.RequiredConstruct
	if required == "" {
		required = DefaultRequiredConstruct
	}
	if !strings.Contains(content, required) {
		issues = append(issues, fmt.Sprintf("Missing %s class", required))
	}

	minLines := c.MinLines
	if minLines <= 0 {
		minLines = DefaultMinLines
	}
	if lines := strings.Count(content, "\n") + 1; lines < minLines {
		issues = append(issues, fmt.Sprintf("Too short (%d lines, should be 400+)", lines))
	}

	head := content
	if len(head) > docstringWindow {
		head = head[:docstringWindow]
	}
	if !strings.Contains(head, `"""`) {
		issues = append(issues, "Missing docstring")
	}

	if !strings.Contains(content, "try:") || !strings.Contains(content, "except") {
		issues = append(issues, "Missing error handling")
	}

	return issues
}
