package models

import (
	"fmt"
	"time"
)

// Mode selects how much of the checklist runs.
type Mode string

const (
	// ModeQuick skips the execution check entirely.
	ModeQuick Mode = "quick"
	// ModeFull runs every template to completion.
	ModeFull Mode = "full"
)

// CategoryResult groups the template results of one registry category,
// preserving registration order.
type CategoryResult struct {
	Name    string           `json:"category"`
	Results []TemplateResult `json:"templates"`
}

// SuiteDigest holds the aggregate numbers for one suite run.
type SuiteDigest struct {
	TotalTemplates int `json:"total_templates"`
	Passed         int `json:"passed"`
	Failed         int `json:"failed"`
	// SuccessRate is a percentage (0-100). Zero when no templates ran.
	SuccessRate float64 `json:"success_rate"`
	DurationMs  int64   `json:"duration_ms"`
}

// SuiteSummary is the complete, serializable result of one suite run.
// The nested category → template-result structure round-trips through JSON.
type SuiteSummary struct {
	RunID      string           `json:"run_id"`
	Timestamp  time.Time        `json:"timestamp"`
	Mode       Mode             `json:"mode"`
	Categories []CategoryResult `json:"categories"`
	Digest     SuiteDigest      `json:"summary"`
}

// NewSuiteSummary assembles a summary from ordered category results and
// computes the digest. An empty registry yields a zero digest with a zero
// success rate rather than a division by zero; AllPassed treats it as a
// vacuous success.
func NewSuiteSummary(mode Mode, categories []CategoryResult, started time.Time) *SuiteSummary {
	digest := SuiteDigest{DurationMs: time.Since(started).Milliseconds()}
	for _, cat := range categories {
		for _, r := range cat.Results {
			digest.TotalTemplates++
			if r.Passed {
				digest.Passed++
			} else {
				digest.Failed++
			}
		}
	}
	if digest.TotalTemplates > 0 {
		digest.SuccessRate = float64(digest.Passed) / float64(digest.TotalTemplates) * 100
	}

	return &SuiteSummary{
		RunID:      fmt.Sprintf("run-%d", started.Unix()),
		Timestamp:  started,
		Mode:       mode,
		Categories: categories,
		Digest:     digest,
	}
}

// AllPassed reports whether every template passed. An empty suite counts as
// a pass.
func (s *SuiteSummary) AllPassed() bool {
	return s.Digest.Passed == s.Digest.TotalTemplates
}
