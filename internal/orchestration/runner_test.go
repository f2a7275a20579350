package orchestration

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/qcodegen/templatecheck/internal/checks"
	"github.com/qcodegen/templatecheck/internal/models"
	"github.com/qcodegen/templatecheck/internal/pytool"
	"github.com/qcodegen/templatecheck/internal/registry"
	"github.com/stretchr/testify/require"
)

// testRegistry writes template files to a temp dir and returns a resolved
// registry over them. Templates listed in missing are registered but not
// written.
func testRegistry(t *testing.T, categories map[string][]string, missing ...string) *registry.Registry {
	t.Helper()
	dir := t.TempDir()

	skip := make(map[string]bool, len(missing))
	for _, m := range missing {
		skip[m] = true
	}

	// Fixed category order regardless of map iteration.
	order := []string{"VQE", "QAOA", "Grover"}
	ordered := make([]string, 0, len(categories))
	for _, n := range order {
		if _, ok := categories[n]; ok {
			ordered = append(ordered, n)
		}
	}

	reg := &registry.Registry{}
	for _, name := range ordered {
		cat := registry.Category{Name: name}
		for _, tpl := range categories[name] {
			path := filepath.Join(dir, tpl)
			if !skip[tpl] {
				content := "\"\"\"doc\"\"\"\ntry:\n    x = 1\nexcept Exception:\n    pass\n"
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			}
			cat.Templates = append(cat.Templates, path)
		}
		reg.Categories = append(reg.Categories, cat)
	}
	return reg
}

// passEverything returns an evaluator whose single checker accepts any
// readable file.
func passEverything() *checks.Evaluator {
	return checks.NewEvaluator(&pytool.MockTool{}, models.ModeQuick, checks.WithCheckers(
		&checks.QualityChecker{MinLines: 1, RequiredConstruct: "x"},
	))
}

func TestSuiteRunner_Sequential(t *testing.T) {
	reg := testRegistry(t, map[string][]string{
		"VQE":    {"vqe_h2.py", "vqe_lih.py"},
		"Grover": {"grover.py"},
	})

	runner := NewSuiteRunner(reg, passEverything(), models.ModeQuick)

	var events []EventType
	runner.OnProgress(func(event ProgressEvent) {
		events = append(events, event.EventType)
	})

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 3, summary.Digest.TotalTemplates)
	require.Equal(t, 3, summary.Digest.Passed)
	require.True(t, summary.AllPassed())

	// Category and template order matches the registry.
	require.Equal(t, "VQE", summary.Categories[0].Name)
	require.Equal(t, "Grover", summary.Categories[1].Name)
	require.Equal(t, "vqe_h2.py", summary.Categories[0].Results[0].Template)
	require.Equal(t, "vqe_lih.py", summary.Categories[0].Results[1].Template)

	require.Equal(t, []EventType{
		EventSuiteStart,
		EventCategoryStart,
		EventTemplateStart, EventTemplateComplete,
		EventTemplateStart, EventTemplateComplete,
		EventCategoryStart,
		EventTemplateStart, EventTemplateComplete,
		EventSuiteComplete,
	}, events)
}

func TestSuiteRunner_MissingTemplateFailsSuite(t *testing.T) {
	reg := testRegistry(t, map[string][]string{
		"VQE": {"vqe_h2.py", "vqe_missing.py"},
	}, "vqe_missing.py")

	runner := NewSuiteRunner(reg, passEverything(), models.ModeQuick)

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, summary.Digest.Passed)
	require.Equal(t, 1, summary.Digest.Failed)
	require.False(t, summary.AllPassed())
	require.InDelta(t, 50.0, summary.Digest.SuccessRate, 0.001)

	missing := summary.Categories[0].Results[1]
	require.Equal(t, "0/1", missing.Score)
}

func TestSuiteRunner_Interrupted(t *testing.T) {
	reg := testRegistry(t, map[string][]string{
		"VQE": {"vqe_h2.py", "vqe_lih.py"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewSuiteRunner(reg, passEverything(), models.ModeQuick)

	summary, err := runner.Run(ctx)
	require.ErrorIs(t, err, ErrInterrupted)
	require.Nil(t, summary)
}

// cancelingChecker cancels the run context from inside a check, the way a
// signal arriving mid-evaluation would.
type cancelingChecker struct {
	cancel context.CancelFunc
}

func (c *cancelingChecker) Name() string { return "quality" }

func (c *cancelingChecker) Check(ctx context.Context, tpl checks.Template) (*checks.CheckResult, error) {
	c.cancel()
	return &checks.CheckResult{Name: c.Name(), Passed: true, Summary: "ok"}, nil
}

func TestSuiteRunner_InterruptDuringFinalTemplate(t *testing.T) {
	reg := testRegistry(t, map[string][]string{
		"VQE": {"vqe_h2.py"},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evaluator := checks.NewEvaluator(&pytool.MockTool{}, models.ModeQuick,
		checks.WithCheckers(&cancelingChecker{cancel: cancel}))
	runner := NewSuiteRunner(reg, evaluator, models.ModeQuick)

	summary, err := runner.Run(ctx)
	require.ErrorIs(t, err, ErrInterrupted)
	require.Nil(t, summary)
}

func TestSuiteRunner_ParallelPreservesOrder(t *testing.T) {
	reg := testRegistry(t, map[string][]string{
		"VQE":    {"vqe_h2.py", "vqe_lih.py", "vqe_h2o.py"},
		"QAOA":   {"qaoa_maxcut.py", "qaoa_generic.py"},
		"Grover": {"grover.py"},
	})

	sequential := NewSuiteRunner(reg, passEverything(), models.ModeQuick)
	seqSummary, err := sequential.Run(context.Background())
	require.NoError(t, err)

	parallelRunner := NewSuiteRunner(reg, passEverything(), models.ModeQuick, WithParallel(3))
	parSummary, err := parallelRunner.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, seqSummary.Digest.TotalTemplates, parSummary.Digest.TotalTemplates)
	require.Len(t, parSummary.Categories, len(seqSummary.Categories))
	for i := range seqSummary.Categories {
		require.Equal(t, seqSummary.Categories[i].Name, parSummary.Categories[i].Name)
		for j := range seqSummary.Categories[i].Results {
			require.Equal(t,
				seqSummary.Categories[i].Results[j].Template,
				parSummary.Categories[i].Results[j].Template)
		}
	}
}

func TestNewSuiteRunner_WorkerDefaults(t *testing.T) {
	reg := testRegistry(t, map[string][]string{"VQE": {"vqe_h2.py"}})

	runner := NewSuiteRunner(reg, passEverything(), models.ModeQuick, WithParallel(0))
	require.True(t, runner.parallel)
	require.Equal(t, DefaultWorkers, runner.workers)

	runner = NewSuiteRunner(reg, passEverything(), models.ModeQuick, WithParallel(8))
	require.Equal(t, 8, runner.workers)
}

func TestSuiteRunner_ListenersAreConcurrencySafe(t *testing.T) {
	reg := testRegistry(t, map[string][]string{
		"VQE": {"vqe_h2.py", "vqe_lih.py", "vqe_h2o.py", "vqe_generic.py"},
	})

	runner := NewSuiteRunner(reg, passEverything(), models.ModeQuick, WithParallel(4))

	var mu sync.Mutex
	completed := 0
	runner.OnProgress(func(event ProgressEvent) {
		if event.EventType == EventTemplateComplete {
			mu.Lock()
			completed++
			mu.Unlock()
		}
	})

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, completed)
	require.Equal(t, 4, summary.Digest.TotalTemplates)
}
