package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRegistryBytes(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		errs := ValidateRegistryBytes([]byte(`categories:
  - name: VQE
    templates:
      - templates/vqe/vqe_h2.py
`))
		require.Empty(t, errs)
	})

	t.Run("missing categories", func(t *testing.T) {
		errs := ValidateRegistryBytes([]byte(`{}`))
		require.NotEmpty(t, errs)
	})

	t.Run("empty category name reports location", func(t *testing.T) {
		errs := ValidateRegistryBytes([]byte(`categories:
  - name: ""
    templates: []
`))
		require.NotEmpty(t, errs)
		require.Contains(t, errs[0], "/categories/0/name")
	})

	t.Run("templates must be strings", func(t *testing.T) {
		errs := ValidateRegistryBytes([]byte(`categories:
  - name: VQE
    templates:
      - 42
`))
		require.NotEmpty(t, errs)
	})

	t.Run("unparseable yaml", func(t *testing.T) {
		errs := ValidateRegistryBytes([]byte("categories: [\n"))
		require.NotEmpty(t, errs)
		require.Contains(t, errs[0], "YAML parse error")
	})
}
