package checks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/qcodegen/templatecheck/internal/models"
	"github.com/qcodegen/templatecheck/internal/pytool"
)

// DefaultExecutionTimeout bounds a full template run.
const DefaultExecutionTimeout = 600 * time.Second

// ExecutionChecker runs the template as a standalone process. In quick mode
// the check is always skipped and contributes nothing to the score.
type ExecutionChecker struct {
	Tool pytool.Tool
	Mode models.Mode
	// Timeout overrides DefaultExecutionTimeout when positive.
	Timeout time.Duration
}

var _ TemplateChecker = (*ExecutionChecker)(nil)

func (c *ExecutionChecker) Name() string { return "execution" }

func (c *ExecutionChecker) Check(ctx context.Context, tpl Template) (*CheckResult, error) {
	if c.Mode != models.ModeFull {
		return &CheckResult{
			Name:    c.Name(),
			Skipped: true,
			Summary: "Skipped (quick mode)",
		}, nil
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultExecutionTimeout
	}

	res, err := c.Tool.RunFile(ctx, tpl.Path, timeout)
	if err != nil {
		return &CheckResult{
			Name:    c.Name(),
			Passed:  false,
			Summary: "Execution could not start",
			Details: []string{err.Error()},
		}, nil
	}

	if res.TimedOut {
		return &CheckResult{
			Name:    c.Name(),
			Passed:  false,
			Summary: fmt.Sprintf("Execution timeout (>%s)", timeout),
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
			Summary: fmt.Sprintf("Exited with status %d", res.ExitCode),
			Details: details,
		}, nil
	}

	return &CheckResult{
		Name:    c.Name(),
		Passed:  true,
		Summary: "Ran to completion",
	}, nil
}
