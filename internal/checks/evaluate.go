package checks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/qcodegen/templatecheck/internal/models"
	"github.com/qcodegen/templatecheck/internal/pytool"
)

// ExistsCheckName identifies the implicit first check run by the evaluator.
const ExistsCheckName = "exists"

// Evaluator runs the full checklist against one template and produces an
// immutable TemplateResult. The existence check short-circuits: when the
// file cannot be read, every remaining check is recorded as skipped. No
// error from an individual check escapes Evaluate; each one is converted
// to a failed record so the remaining checks and templates still run.
type Evaluator struct {
	checkers []TemplateChecker
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithCheckers replaces the default checklist. The existence check always
// runs first and is not part of the list.
func WithCheckers(checkers ...TemplateChecker) EvaluatorOption {
	return func(e *Evaluator) {
		e.checkers = checkers
	}
}

// NewEvaluator creates an Evaluator with the standard checklist: quality,
// syntax, imports, and execution, in that order.
func NewEvaluator(tool pytool.Tool, mode models.Mode, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		checkers: []TemplateChecker{
			&QualityChecker{},
			&SyntaxChecker{Tool: tool},
			&ImportChecker{Tool: tool},
			&ExecutionChecker{Tool: tool, Mode: mode},
		},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Evaluate runs the checklist against the template at path.
func (e *Evaluator) Evaluate(ctx context.Context, path string) models.TemplateResult {
	name := filepath.Base(path)
	records := make([]models.CheckRecord, 0, len(e.checkers)+1)

	start := time.Now()
	content, err := os.ReadFile(path)
	if err != nil {
		records = append(records, models.CheckRecord{
			Name:       ExistsCheckName,
			Outcome:    models.OutcomeFailed,
			Summary:    "File not found",
			Details:    []string{err.Error()},
			DurationMs: time.Since(start).Milliseconds(),
		})
		for _, c := range e.checkers {
			records = append(records, models.CheckRecord{
				Name:    c.Name(),
				Outcome: models.OutcomeSkipped,
				Summary: "Skipped (file missing)",
			})
		}
		return models.NewTemplateResult(name, path, records)
	}

	records = append(records, models.CheckRecord{
		Name:       ExistsCheckName,
		Outcome:    models.OutcomePassed,
		Summary:    "File exists",
		DurationMs: time.Since(start).Milliseconds(),
	})

	tpl := Template{Name: name, Path: path, Content: string(content)}

	for _, c := range e.checkers {
		records = append(records, runChecker(ctx, c, tpl))
	}

	return models.NewTemplateResult(name, path, records)
}

// runChecker executes one checker, converting any returned error into a
// failed record.
func runChecker(ctx context.Context, c TemplateChecker, tpl Template) models.CheckRecord {
	start := time.Now()

	res, err := c.Check(ctx, tpl)
	if err != nil {
		return models.CheckRecord{
			Name:       c.Name(),
			Outcome:    models.OutcomeFailed,
			Summary:    fmt.Sprintf("Check failed to run: %v", err),
			DurationMs: time.Since(start).Milliseconds(),
		}
	}

	rec := models.CheckRecord{
		Name:       res.Name,
		Summary:    res.Summary,
		Details:    res.Details,
		Advisory:   res.Advisory,
		DurationMs: time.Since(start).Milliseconds(),
	}
	switch {
	case res.Skipped:
		rec.Outcome = models.OutcomeSkipped
	case res.Passed:
		rec.Outcome = models.OutcomePassed
	default:
		rec.Outcome = models.OutcomeFailed
	}
	return rec
}
