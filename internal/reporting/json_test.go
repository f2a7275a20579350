package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qcodegen/templatecheck/internal/models"
	"github.com/stretchr/testify/require"
)

func sampleSummary(t *testing.T) *models.SuiteSummary {
	t.Helper()
	started := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	results := []models.TemplateResult{
		models.NewTemplateResult("vqe_h2.py", "templates/vqe/vqe_h2.py", []models.CheckRecord{
			{Name: "exists", Outcome: models.OutcomePassed, Summary: "File exists"},
			{Name: "quality", Outcome: models.OutcomePassed, Summary: "No quality issues"},
			{Name: "imports", Outcome: models.OutcomeFailed, Summary: "Missing dependencies",
				Details: []string{"No module named 'qiskit'"}, Advisory: true},
			{Name: "execution", Outcome: models.OutcomeSkipped, Summary: "Skipped (quick mode)"},
		}),
	}

	return models.NewSuiteSummary(models.ModeQuick, []models.CategoryResult{
		{Name: "VQE", Results: results},
	}, started)
}

func TestResultsFileName(t *testing.T) {
	ts := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	require.Equal(t, "test_results_20260314_150926.json", ResultsFileName(ts))
}

func TestWriteResults(t *testing.T) {
	dir := t.TempDir()
	summary := sampleSummary(t)

	path, err := WriteResults(summary, dir)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "test_results_20260314_150926.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.SuiteSummary
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Equal(t, summary.RunID, decoded.RunID)
	require.Len(t, decoded.Categories, 1)
	require.Equal(t, "2/3", decoded.Categories[0].Results[0].Score)

	rec := decoded.Categories[0].Results[0].Checks[2]
	require.Equal(t, models.OutcomeFailed, rec.Outcome)
	require.True(t, rec.Advisory)
	require.Equal(t, []string{"No module named 'qiskit'"}, rec.Details)
}

func TestWriteResultsFile_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, WriteResultsFile(sampleSummary(t), path))
	require.FileExists(t, path)
}
