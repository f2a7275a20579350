package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/qcodegen/templatecheck/internal/models"
	"github.com/qcodegen/templatecheck/internal/reporting"
)

// Semantic colors, same in light and dark terminals.
var (
	successColor = lipgloss.Color("#8BC34A") // Lime Green
	errorColor   = lipgloss.Color("#e53935") // Red
	warningColor = lipgloss.Color("#FFC107") // Yellow
	infoColor    = lipgloss.Color("#2196F3") // Blue
)

var (
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	warningStyle = lipgloss.NewStyle().Foreground(warningColor)
	infoStyle    = lipgloss.NewStyle().Foreground(infoColor)
	headerStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// maxDetailWidth caps diagnostic lines in console output. Full text is
// always preserved in the JSON results file.
const maxDetailWidth = 200

// outcomeIcon returns the styled status marker for a check or template.
func outcomeIcon(outcome models.CheckOutcome) string {
	switch outcome {
	case models.OutcomePassed:
		return successStyle.Render("✓")
	case models.OutcomeSkipped:
		return mutedStyle.Render("-")
	default:
		return errorStyle.Render("✗")
	}
}

func templateIcon(passed bool) string {
	if passed {
		return successStyle.Render("✓")
	}
	return errorStyle.Render("✗")
}

// formatDuration formats a duration in a consistent, human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(10 * time.Millisecond).String()
}

// truncate shortens s to maxWidth display cells, appending "..." if
// truncated. Cuts fall on rune boundaries.
func truncate(s string, maxWidth int) string {
	return runewidth.Truncate(s, maxWidth, "...")
}

func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// printRunHeader prints the banner shown before checks start.
func printRunHeader(mode models.Mode, pythonVersion, workingDir string, totalTemplates, workers int) {
	fmt.Println(headerStyle.Render("Quantum Template Test Suite"))
	fmt.Printf("Mode:      %s\n", mode)
	fmt.Printf("Python:    %s\n", pythonVersion)
	fmt.Printf("Directory: %s\n", workingDir)
	fmt.Printf("Templates: %d\n", totalTemplates)
	if workers > 0 {
		fmt.Printf("Parallel:  %d workers\n", workers)
	}
	fmt.Println()
}

func printSummary(summary *models.SuiteSummary) {
	fmt.Println("=" + strings.Repeat("=", 50))
	fmt.Println(headerStyle.Render(" TEST RESULTS"))
	fmt.Println("=" + strings.Repeat("=", 50))
	fmt.Println()

	nameWidth := 0
	for _, cat := range summary.Categories {
		for _, res := range cat.Results {
			if w := runewidth.StringWidth(res.Template); w > nameWidth {
				nameWidth = w
			}
		}
	}

	for _, cat := range summary.Categories {
		fmt.Println(infoStyle.Render(cat.Name))
		for _, res := range cat.Results {
			fmt.Printf("  %s %s  %s\n",
				templateIcon(res.Passed),
				padRight(res.Template, nameWidth),
				scoreLabel(&res))
			if !res.Passed {
				printFailedChecks(&res)
			}
		}
		fmt.Println()
	}

	digest := summary.Digest
	fmt.Println("-" + strings.Repeat("-", 50))
	fmt.Printf("Total:        %d\n", digest.TotalTemplates)
	fmt.Printf("Passed:       %d\n", digest.Passed)
	fmt.Printf("Failed:       %d\n", digest.Failed)
	fmt.Printf("Success Rate: %.1f%%\n", digest.SuccessRate)
	fmt.Printf("Duration:     %s\n", formatDuration(time.Duration(digest.DurationMs)*time.Millisecond))
	fmt.Println()

	verdict := reporting.Verdict(digest)
	if digest.Failed == 0 && digest.TotalTemplates > 0 {
		fmt.Println(successStyle.Render(verdict))
	} else if digest.Failed > 0 {
		fmt.Println(errorStyle.Render(verdict))
	} else {
		fmt.Println(mutedStyle.Render(verdict))
	}
}

func scoreLabel(res *models.TemplateResult) string {
	if res.Passed {
		return successStyle.Render(res.Score)
	}
	return errorStyle.Render(res.Score)
}

// printFailedChecks lists failed and skipped checks under a template line.
// Advisory failures render as warnings rather than errors.
func printFailedChecks(res *models.TemplateResult) {
	for _, check := range res.Checks {
		switch check.Outcome {
		case models.OutcomeFailed:
			style := errorStyle
			if check.Advisory {
				style = warningStyle
			}
			fmt.Printf("      %s %s: %s\n", style.Render("•"), check.Name, check.Summary)
			for _, d := range check.Details {
				fmt.Printf("        %s\n", mutedStyle.Render(truncate(d, maxDetailWidth)))
			}
		case models.OutcomeSkipped:
			fmt.Printf("      %s %s: %s\n", mutedStyle.Render("•"), check.Name, check.Summary)
		}
	}
}
