package checks

import (
	"context"
	"testing"

	"github.com/qcodegen/templatecheck/internal/pytool"
	"github.com/stretchr/testify/require"
)

func TestExtractImports(t *testing.T) {
	content := `"""VQE template."""
import numpy as np
from qiskit import QuantumCircuit
# import commented_out
    from qiskit.circuit import Parameter
x = 1
importlib = None
`
	imports := ExtractImports(content)
	require.Equal(t, []string{
		"import numpy as np",
		"from qiskit import QuantumCircuit",
		"from qiskit.circuit import Parameter",
	}, imports)
}

func TestBuildImportProbe(t *testing.T) {
	script := buildImportProbe("/work/templates/vqe", []string{"import numpy as np"})

	require.Contains(t, script, `sys.path.insert(0, "/work/templates/vqe")`)
	require.Contains(t, script, "    import numpy as np\n")
	require.Contains(t, script, "except ImportError as e:")
	require.Contains(t, script, `print("IMPORTS_OK")`)
}

func TestImportChecker(t *testing.T) {
	tpl := Template{
		Name:    "vqe.py",
		Path:    "templates/vqe/vqe.py",
		Content: "import numpy as np\nfrom qiskit import QuantumCircuit\n",
	}

	t.Run("all imports resolve", func(t *testing.T) {
		c := &ImportChecker{Tool: &pytool.MockTool{}}

		res, err := c.Check(context.Background(), tpl)
		require.NoError(t, err)
		require.True(t, res.Passed)
		require.True(t, res.Advisory)
		require.Equal(t, "All 2 import(s) resolve", res.Summary)
	})

	t.Run("missing dependency is an advisory failure", func(t *testing.T) {
		c := &ImportChecker{Tool: &pytool.MockTool{
			RunScriptFunc: func(script string) (*pytool.Result, error) {
				return &pytool.Result{
					Stdout: "IMPORT_ERROR: No module named 'qiskit'\nIMPORTS_OK\n",
				}, nil
			},
		}}

		res, err := c.Check(context.Background(), tpl)
		require.NoError(t, err)
		require.False(t, res.Passed)
		require.True(t, res.Advisory)
		require.Equal(t, "Missing dependencies", res.Summary)
		require.Equal(t, []string{"No module named 'qiskit'"}, res.Details)
	})

	t.Run("no imports passes without spawning", func(t *testing.T) {
		spawned := false
		c := &ImportChecker{Tool: &pytool.MockTool{
			RunScriptFunc: func(script string) (*pytool.Result, error) {
				spawned = true
				return &pytool.Result{Stdout: "IMPORTS_OK\n"}, nil
			},
		}}

		res, err := c.Check(context.Background(), Template{Content: "x = 1\n"})
		require.NoError(t, err)
		require.True(t, res.Passed)
		require.Equal(t, "No import statements", res.Summary)
		require.False(t, spawned)
	})

	t.Run("unrecognized probe output fails", func(t *testing.T) {
		c := &ImportChecker{Tool: &pytool.MockTool{
			RunScriptFunc: func(script string) (*pytool.Result, error) {
				return &pytool.Result{ExitCode: 1, Stderr: "Segmentation fault\n"}, nil
			},
		}}

		res, err := c.Check(context.Background(), tpl)
		require.NoError(t, err)
		require.False(t, res.Passed)
		require.Equal(t, "Import probe produced unrecognized output", res.Summary)
		require.Equal(t, []string{"Segmentation fault"}, res.Details)
	})

	t.Run("timeout", func(t *testing.T) {
		c := &ImportChecker{Tool: &pytool.MockTool{
			RunScriptFunc: func(script string) (*pytool.Result, error) {
				return &pytool.Result{TimedOut: true, ExitCode: -1}, nil
			},
		}}

		res, err := c.Check(context.Background(), tpl)
		require.NoError(t, err)
		require.False(t, res.Passed)
		require.Contains(t, res.Summary, "timed out")
	})
}
