package checks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/qcodegen/templatecheck/internal/pytool"
)

// DefaultSyntaxTimeout bounds the byte-compilation subprocess.
const DefaultSyntaxTimeout = 10 * time.Second

// SyntaxChecker delegates to the interpreter's compile facility to verify
// the template parses. Timeouts and invocation failures are definitive
// failures for the run, never retried.
type SyntaxChecker struct {
	Tool pytool.Tool
	// Timeout overrides DefaultSyntaxTimeout when positive.
	Timeout time.Duration
}

var _ TemplateChecker = (*SyntaxChecker)(nil)

func (c *SyntaxChecker) Name() string { return "syntax" }

func (c *SyntaxChecker) Check(ctx context.Context, tpl Template) (*CheckResult, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultSyntaxTimeout
	}

	res, err := c.Tool.CompileCheck(ctx, tpl.Path, timeout)
	if err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Passed:  false,
			Summary: "Syntax check could not run",
			Details: []string{err.Error()},
		}, nil
	}

	if res.TimedOut {
		return &CheckResult{
			Name:    c.Name(),
			Passed:  false,
			Summary: fmt.Sprintf("Syntax check timed out after %s", timeout),
		}, nil
	}

	if !res.Ok() {
		var details []string
		if diag := strings.TrimSpace(res.Stderr); diag != "" {
			details = append(details, diag)
		}
		return &CheckResult{
			Name:    c.Name(),
			Passed:  false,
			Summary: "Syntax error",
			Details: details,
		}, nil
	}

	return &CheckResult{
		Name:    c.Name(),
		Passed:  true,
		Summary: "Valid syntax",
	}, nil
}
