// Package reporting serializes suite summaries to JSON result files and
// JUnit XML for CI systems.
package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/qcodegen/templatecheck/internal/models"
)

// ResultsFileName returns the timestamped results filename used by
// WriteResults, e.g. test_results_20260831_142530.json.
func ResultsFileName(t time.Time) string {
	return fmt.Sprintf("test_results_%s.json", t.Format("20060102_150405"))
}

// WriteResults writes the summary as indented JSON into dir using a
// filename derived from the summary timestamp, and returns the path.
func WriteResults(summary *models.SuiteSummary, dir string) (string, error) {
	path := filepath.Join(dir, ResultsFileName(summary.Timestamp))
	if err := WriteResultsFile(summary, path); err != nil {
		return "", err
	}
	return path, nil
}

// WriteResultsFile writes the summary as indented JSON to an explicit path.
func WriteResultsFile(summary *models.SuiteSummary, path string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
