package reporting

import (
	"testing"

	"github.com/qcodegen/templatecheck/internal/models"
	"github.com/stretchr/testify/require"
)

func TestInterpretSuccessRate(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "All templates passed"},
		{88.9, "Most templates passed"},
		{60, "About half the templates passed"},
		{11.1, "Few templates passed"},
		{0, "Few templates passed"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, InterpretSuccessRate(tt.pct))
	}
}

func TestVerdict(t *testing.T) {
	t.Run("all passed", func(t *testing.T) {
		v := Verdict(models.SuiteDigest{TotalTemplates: 9, Passed: 9})
		require.Equal(t, "All 9 templates passed", v)
	})

	t.Run("some failed", func(t *testing.T) {
		v := Verdict(models.SuiteDigest{TotalTemplates: 9, Passed: 6, Failed: 3, SuccessRate: 66.7})
		require.Equal(t, "3 of 9 templates failed (66.7% success rate)", v)
	})

	t.Run("empty suite", func(t *testing.T) {
		require.Equal(t, "No templates to test", Verdict(models.SuiteDigest{}))
	})
}
