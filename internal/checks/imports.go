package checks

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/qcodegen/templatecheck/internal/pytool"
)

// DefaultImportTimeout bounds the import probe subprocess.
const DefaultImportTimeout = 30 * time.Second

// Markers the probe script prints so the outcome can be recognized from
// stdout. Any output carrying neither marker is treated as a failure.
const (
	importOKMarker    = "IMPORTS_OK"
	importErrorMarker = "IMPORT_ERROR:"
)

// ImportChecker extracts every import statement from the template and
// executes them in an isolated interpreter with the template's directory
// prepended to the module search path. The check is advisory: a missing
// dependency is rendered as a warning, but the failure still counts
// against the template score.
type ImportChecker struct {
	Tool pytool.Tool
	// Timeout overrides DefaultImportTimeout when positive.
	Timeout time.Duration
}

var _ TemplateChecker = (*ImportChecker)(nil)

func (c *ImportChecker) Name() string { return "imports" }

func (c *ImportChecker) Check(ctx context.Context, tpl Template) (*CheckResult, error) {
	imports := ExtractImports(tpl.Content)
	if len(imports) == 0 {
		return &CheckResult{
			Name:     c.Name(),
			Passed:   true,
			Summary:  "No import statements",
			Advisory: true,
		}, nil
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultImportTimeout
	}

	script := buildImportProbe(filepath.Dir(tpl.Path), imports)
	res, err := c.Tool.RunScript(ctx, script, timeout)
	if err != nil {
		return c.failure("Import check could not run", []string{err.Error()}), nil
	}

	if res.TimedOut {
		return c.failure(fmt.Sprintf("Import check timed out after %s", timeout), nil), nil
	}

	if strings.Contains(res.Stdout, importErrorMarker) {
		return c.failure("Missing dependencies", importErrorLines(res.Stdout)), nil
	}

	if !strings.Contains(res.Stdout, importOKMarker) {
		var details []string
		if diag := strings.TrimSpace(res.Stderr); diag != "" {
			details = append(details, diag)
		}
		return c.failure("Import probe produced unrecognized output", details), nil
	}

	return &CheckResult{
		Name:     c.Name(),
		Passed:   true,
		Summary:  fmt.Sprintf("All %d import(s) resolve", len(imports)),
		Advisory: true,
	}, nil
}

func (c *ImportChecker) failure(summary string, details []string) *CheckResult {
	return &CheckResult{
		Name:     c.Name(),
		Passed:   false,
		Summary:  summary,
		Details:  details,
		Advisory: true,
	}
}

// ExtractImports returns every import-style statement in content, stripped
// of surrounding whitespace, in file order. Commented lines are ignored.
func ExtractImports(content string) []string {
	var imports []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "from ") {
			imports = append(imports, trimmed)
		}
	}
	return imports
}

// buildImportProbe generates the script executed in the isolated
// interpreter. Each statement is attempted independently so every missing
// dependency is reported, not just the first.
func buildImportProbe(templateDir string, imports []string) string {
	var b strings.Builder
	b.WriteString("import sys\n")
	fmt.Fprintf(&b, "sys.path.insert(0, %q)\n", templateDir)
	for _, stmt := range imports {
		b.WriteString("try:\n")
		fmt.Fprintf(&b, "    %s\n", stmt)
		b.WriteString("except ImportError as e:\n")
		fmt.Fprintf(&b, "    print(%q %% e)\n", importErrorMarker+" %s")
	}
	fmt.Fprintf(&b, "print(%q)\n", importOKMarker)
	return b.String()
}

// importErrorLines extracts the IMPORT_ERROR lines from probe output.
func importErrorLines(stdout string) []string {
	var lines []string
	for _, line := range strings.Split(stdout, "\n") {
		if strings.HasPrefix(line, importErrorMarker) {
			lines = append(lines, strings.TrimSpace(strings.TrimPrefix(line, importErrorMarker)))
		}
	}
	return lines
}
