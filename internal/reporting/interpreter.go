package reporting

import (
	"fmt"

	"github.com/qcodegen/templatecheck/internal/models"
)

// InterpretSuccessRate returns a plain-language label for a success rate
// percentage (0–100).
func InterpretSuccessRate(pct float64) string {
	switch {
	case pct >= 100:
		return "All templates passed"
	case pct >= 80:
		return "Most templates passed"
	case pct >= 50:
		return "About half the templates passed"
	default:
		return "Few templates passed"
	}
}

// Verdict returns the one-line final verdict for a completed run.
func Verdict(digest models.SuiteDigest) string {
	if digest.TotalTemplates == 0 {
		return "No templates to test"
	}
	if digest.Failed == 0 {
		return fmt.Sprintf("All %d templates passed", digest.TotalTemplates)
	}
	return fmt.Sprintf("%d of %d templates failed (%.1f%% success rate)",
		digest.Failed, digest.TotalTemplates, digest.SuccessRate)
}
