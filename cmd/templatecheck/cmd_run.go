package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/qcodegen/templatecheck/internal/checks"
	"github.com/qcodegen/templatecheck/internal/models"
	"github.com/qcodegen/templatecheck/internal/orchestration"
	"github.com/qcodegen/templatecheck/internal/projectconfig"
	"github.com/qcodegen/templatecheck/internal/pytool"
	"github.com/qcodegen/templatecheck/internal/registry"
	"github.com/qcodegen/templatecheck/internal/reporting"
)

var (
	fullMode     bool
	outputPath   string
	junitPath    string
	verbose      bool
	parallel     bool
	workers      int
	registryPath string
	resultsDir   string
	pythonBin    string
)

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the template test suite",
		Long: `Run every registered template through the checklist.

Quick mode (the default) checks existence, quality, syntax, and imports.
Full mode additionally executes each template end to end, which can take
several minutes per template.`,
		Args: cobra.NoArgs,
		RunE: runCommandE,
	}

	cmd.Flags().BoolVar(&fullMode, "full", false, "Execute each template in addition to static checks")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output JSON file for results (default: timestamped file in results dir)")
	cmd.Flags().StringVar(&junitPath, "junit", "", "Also write results as JUnit XML to this path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output with per-check progress")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Check templates concurrently")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of concurrent workers (default: 4, requires --parallel)")
	cmd.Flags().StringVar(&registryPath, "registry", "", "Registry YAML file (default: built-in template registry)")
	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "Directory for timestamped result files")
	cmd.Flags().StringVar(&pythonBin, "python", "", "Python interpreter to use for subprocess checks")

	return cmd
}

func runCommandE(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := projectconfig.Load(cwd)
	if err != nil {
		return err
	}

	// CLI flags override project config
	if fullMode {
		cfg.Mode = string(models.ModeFull)
	}
	if pythonBin != "" {
		cfg.Python = pythonBin
	}
	if registryPath != "" {
		cfg.Registry = registryPath
	}
	if resultsDir != "" {
		cfg.ResultsDir = resultsDir
	}

	mode := models.ModeQuick
	if cfg.Mode == string(models.ModeFull) {
		mode = models.ModeFull
	}

	reg, err := loadRegistry(cfg, cwd)
	if err != nil {
		return err
	}

	tool := pytool.NewInterpreter(cfg.Python)

	evaluator, err := buildEvaluator(cfg, tool, mode)
	if err != nil {
		return err
	}

	var runnerOpts []orchestration.RunnerOption
	if parallel {
		runnerOpts = append(runnerOpts, orchestration.WithParallel(workers))
	}
	runner := orchestration.NewSuiteRunner(reg, evaluator, mode, runnerOpts...)

	if verbose {
		runner.OnProgress(verboseProgressListener)
	} else {
		runner.OnProgress(simpleProgressListener)
	}

	// Ctrl+C cancels the run; no results file is written for a partial run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pythonVersion, err := tool.Version(ctx)
	if err != nil {
		pythonVersion = fmt.Sprintf("%s (unavailable: %v)", cfg.Python, err)
	}

	headerWorkers := 0
	if parallel {
		headerWorkers = workers
		if headerWorkers <= 0 {
			headerWorkers = orchestration.DefaultWorkers
		}
	}
	printRunHeader(mode, pythonVersion, cwd, reg.TemplateCount(), headerWorkers)

	summary, err := runner.Run(ctx)
	if err != nil {
		if errors.Is(err, orchestration.ErrInterrupted) {
			fmt.Println()
			fmt.Println(warningStyle.Render("Testing interrupted by user"))
		}
		return err
	}

	printSummary(summary)

	savedPath, err := persistResults(summary, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("\nResults saved to: %s\n", savedPath)

	if junitPath != "" {
		if err := reporting.WriteJUnitXML(summary, junitPath); err != nil {
			return fmt.Errorf("writing JUnit XML: %w", err)
		}
		fmt.Printf("JUnit XML saved to: %s\n", junitPath)
	}

	// Return check failure as error so main can map it to the exit code
	if !summary.AllPassed() {
		return &CheckFailureError{
			Message: fmt.Sprintf("%d of %d templates failed",
				summary.Digest.Failed, summary.Digest.TotalTemplates),
		}
	}

	return nil
}

// loadRegistry returns the registry from the configured YAML file, or the
// built-in registry when none is configured. Relative template paths are
// resolved against the registry file's directory, or the working directory
// for the built-in registry.
func loadRegistry(cfg *projectconfig.ProjectConfig, cwd string) (*registry.Registry, error) {
	if cfg.Registry == "" {
		return registry.Default().Resolve(cwd), nil
	}

	reg, err := registry.Load(cfg.Registry)
	if err != nil {
		return nil, fmt.Errorf("loading registry: %w", err)
	}

	baseDir := filepath.Dir(cfg.Registry)
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}
	return reg.Resolve(baseDir), nil
}

// buildEvaluator assembles the checklist. A configured checks pipeline
// replaces the default one; otherwise the default checkers run with the
// configured timeouts.
func buildEvaluator(cfg *projectconfig.ProjectConfig, tool pytool.Tool, mode models.Mode) (*checks.Evaluator, error) {
	if len(cfg.Checks) > 0 {
		checkers := make([]checks.TemplateChecker, 0, len(cfg.Checks))
		for _, cc := range cfg.Checks {
			checker, err := checks.Create(checks.Kind(cc.Kind), tool, mode, cc.Params)
			if err != nil {
				return nil, fmt.Errorf("configured check %q: %w", cc.Kind, err)
			}
			checkers = append(checkers, checker)
		}
		return checks.NewEvaluator(tool, mode, checks.WithCheckers(checkers...)), nil
	}

	return checks.NewEvaluator(tool, mode, checks.WithCheckers(
		&checks.QualityChecker{},
		&checks.SyntaxChecker{Tool: tool, Timeout: time.Duration(cfg.Timeouts.SyntaxSec) * time.Second},
		&checks.ImportChecker{Tool: tool, Timeout: time.Duration(cfg.Timeouts.ImportsSec) * time.Second},
		&checks.ExecutionChecker{Tool: tool, Mode: mode, Timeout: time.Duration(cfg.Timeouts.ExecutionSec) * time.Second},
	)), nil
}

// persistResults writes the JSON summary, either to the explicit --output
// path or to a timestamped file in the results directory.
func persistResults(summary *models.SuiteSummary, cfg *projectconfig.ProjectConfig) (string, error) {
	if outputPath != "" {
		if err := reporting.WriteResultsFile(summary, outputPath); err != nil {
			return "", fmt.Errorf("saving results: %w", err)
		}
		return outputPath, nil
	}

	if cfg.ResultsDir != "." && cfg.ResultsDir != "" {
		if err := os.MkdirAll(cfg.ResultsDir, 0755); err != nil {
			return "", fmt.Errorf("creating results directory: %w", err)
		}
	}

	path, err := reporting.WriteResults(summary, cfg.ResultsDir)
	if err != nil {
		return "", fmt.Errorf("saving results: %w", err)
	}
	return path, nil
}

func verboseProgressListener(event orchestration.ProgressEvent) {
	switch event.EventType {
	case orchestration.EventSuiteStart:
		fmt.Printf("Testing %d template(s)...\n\n", event.TotalTemplates)
	case orchestration.EventCategoryStart:
		fmt.Println(infoStyle.Render(event.Category))
	case orchestration.EventTemplateStart:
		fmt.Printf("  [%d/%d] Checking %s...\n", event.TemplateNum, event.TotalTemplates, event.Template)
	case orchestration.EventTemplateComplete:
		if event.Result != nil {
			for _, check := range event.Result.Checks {
				fmt.Printf("    %s %s: %s\n", outcomeIcon(check.Outcome), check.Name, check.Summary)
				for _, d := range check.Details {
					fmt.Printf("      %s\n", mutedStyle.Render(truncate(d, maxDetailWidth)))
				}
			}
			duration := time.Duration(event.DurationMs) * time.Millisecond
			fmt.Printf("  %s %s [%s] (%s)\n\n",
				templateIcon(event.Result.Passed), event.Template,
				event.Result.Score, formatDuration(duration))
		}
	case orchestration.EventSuiteComplete:
		duration := time.Duration(event.DurationMs) * time.Millisecond
		fmt.Printf("Suite completed in %s\n\n", formatDuration(duration))
	}
}

func simpleProgressListener(event orchestration.ProgressEvent) {
	if event.EventType != orchestration.EventTemplateComplete || event.Result == nil {
		return
	}
	fmt.Printf("%s [%d/%d] %s (%s)\n",
		templateIcon(event.Result.Passed),
		event.TemplateNum, event.TotalTemplates,
		event.Template, event.Result.Score)
}
