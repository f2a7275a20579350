// Package orchestration drives the suite: it walks the registry in
// registration order, evaluates each template, and aggregates the results
// into a SuiteSummary.
package orchestration

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/qcodegen/templatecheck/internal/checks"
	"github.com/qcodegen/templatecheck/internal/models"
	"github.com/qcodegen/templatecheck/internal/registry"
)

// ErrInterrupted is returned when the run context is canceled between
// template evaluations. No partial summary is produced.
var ErrInterrupted = errors.New("suite run interrupted")

// DefaultWorkers bounds parallel evaluation when no worker count is set.
const DefaultWorkers = 4

// EventType identifies a progress event.
type EventType string

const (
	EventSuiteStart       EventType = "suite_start"
	EventCategoryStart    EventType = "category_start"
	EventTemplateStart    EventType = "template_start"
	EventTemplateComplete EventType = "template_complete"
	EventSuiteComplete    EventType = "suite_complete"
)

// ProgressEvent is a progress update emitted while the suite runs.
type ProgressEvent struct {
	EventType      EventType
	Category       string
	Template       string
	TemplateNum    int
	TotalTemplates int
	// Result is set on EventTemplateComplete.
	Result     *models.TemplateResult
	DurationMs int64
}

// ProgressListener receives progress updates.
type ProgressListener func(event ProgressEvent)

// SuiteRunner evaluates every template in a registry, one at a time by
// default. Each TemplateResult is built fresh; no state crosses template
// evaluations.
type SuiteRunner struct {
	reg       *registry.Registry
	evaluator *checks.Evaluator
	mode      models.Mode

	parallel bool
	workers  int

	progressMu sync.Mutex
	listeners  []ProgressListener
}

// RunnerOption configures a SuiteRunner.
type RunnerOption func(*SuiteRunner)

// WithParallel enables bounded concurrent evaluation. Summary ordering is
// unaffected: results are collected by registry position.
func WithParallel(workers int) RunnerOption {
	return func(r *SuiteRunner) {
		r.parallel = true
		if workers > 0 {
			r.workers = workers
		}
	}
}

// NewSuiteRunner creates a runner over the given registry and evaluator.
func NewSuiteRunner(reg *registry.Registry, evaluator *checks.Evaluator, mode models.Mode, opts ...RunnerOption) *SuiteRunner {
	r := &SuiteRunner{
		reg:       reg,
		evaluator: evaluator,
		mode:      mode,
		workers:   DefaultWorkers,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OnProgress registers a progress listener.
func (r *SuiteRunner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *SuiteRunner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Run evaluates the whole registry and returns the aggregated summary.
// Cancellation is observed at template boundaries only; a check already
// committed to a subprocess runs to its own timeout first.
func (r *SuiteRunner) Run(ctx context.Context) (*models.SuiteSummary, error) {
	started := time.Now()
	total := r.reg.TemplateCount()

	r.notifyProgress(ProgressEvent{
		EventType:      EventSuiteStart,
		TotalTemplates: total,
	})

	var (
		categories []models.CategoryResult
		err        error
	)
	if r.parallel {
		categories, err = r.runParallel(ctx, total)
	} else {
		categories, err = r.runSequential(ctx, total)
	}
	if err != nil {
		return nil, err
	}

	// A cancellation that lands during the last evaluation is only visible
	// here; the per-template checks have all passed already.
	if ctx.Err() != nil {
		return nil, ErrInterrupted
	}

	summary := models.NewSuiteSummary(r.mode, categories, started)

	r.notifyProgress(ProgressEvent{
		EventType:  EventSuiteComplete,
		DurationMs: summary.Digest.DurationMs,
	})

	return summary, nil
}

func (r *SuiteRunner) runSequential(ctx context.Context, total int) ([]models.CategoryResult, error) {
	categories := make([]models.CategoryResult, 0, len(r.reg.Categories))
	num := 0

	for _, cat := range r.reg.Categories {
		r.notifyProgress(ProgressEvent{
			EventType: EventCategoryStart,
			Category:  cat.Name,
		})

		results := make([]models.TemplateResult, 0, len(cat.Templates))
		for _, path := range cat.Templates {
			if ctx.Err() != nil {
				return nil, ErrInterrupted
			}

			num++
			r.notifyProgress(ProgressEvent{
				EventType:      EventTemplateStart,
				Category:       cat.Name,
				Template:       path,
				TemplateNum:    num,
				TotalTemplates: total,
			})

			start := time.Now()
			result := r.evaluator.Evaluate(ctx, path)
			results = append(results, result)

			r.notifyProgress(ProgressEvent{
				EventType:      EventTemplateComplete,
				Category:       cat.Name,
				Template:       result.Template,
				TemplateNum:    num,
				TotalTemplates: total,
				Result:         &result,
				DurationMs:     time.Since(start).Milliseconds(),
			})
		}

		categories = append(categories, models.CategoryResult{Name: cat.Name, Results: results})
	}

	return categories, nil
}

// runParallel evaluates templates concurrently with a bounded worker pool.
// Results land in pre-sized slices by registry position, so the summary is
// byte-for-byte identical to a sequential run.
func (r *SuiteRunner) runParallel(ctx context.Context, total int) ([]models.CategoryResult, error) {
	categories := make([]models.CategoryResult, len(r.reg.Categories))
	for i, cat := range r.reg.Categories {
		categories[i] = models.CategoryResult{
			Name:    cat.Name,
			Results: make([]models.TemplateResult, len(cat.Templates)),
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	num := 0
	for ci, cat := range r.reg.Categories {
		r.notifyProgress(ProgressEvent{
			EventType: EventCategoryStart,
			Category:  cat.Name,
		})

		for ti, path := range cat.Templates {
			num++
			ci, ti, path, num, catName := ci, ti, path, num, cat.Name

			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				r.notifyProgress(ProgressEvent{
					EventType:      EventTemplateStart,
					Category:       catName,
					Template:       path,
					TemplateNum:    num,
					TotalTemplates: total,
				})

				start := time.Now()
				result := r.evaluator.Evaluate(gctx, path)
				categories[ci].Results[ti] = result

				r.notifyProgress(ProgressEvent{
					EventType:      EventTemplateComplete,
					Category:       catName,
					Template:       result.Template,
					TemplateNum:    num,
					TotalTemplates: total,
					Result:         &result,
					DurationMs:     time.Since(start).Milliseconds(),
				})
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, ErrInterrupted
	}
	return categories, nil
}
