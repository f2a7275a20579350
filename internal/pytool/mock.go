package pytool

import (
	"context"
	"time"
)

// MockTool is a deterministic Tool for tests. Each hook returns a canned
// Result; nil hooks succeed with exit status zero.
type MockTool struct {
	CompileCheckFunc func(path string) (*Result, error)
	RunScriptFunc    func(script string) (*Result, error)
	RunFileFunc      func(path string) (*Result, error)
	VersionString    string
}

var _ Tool = (*MockTool)(nil)

func (m *MockTool) CompileCheck(_ context.Context, path string, _ time.Duration) (*Result, error) {
	if m.CompileCheckFunc != nil {
		return m.CompileCheckFunc(path)
	}
	return &Result{}, nil
}

func (m *MockTool) RunScript(_ context.Context, script string, _ time.Duration) (*Result, error) {
	if m.RunScriptFunc != nil {
		return m.RunScriptFunc(script)
	}
	return &Result{Stdout: "IMPORTS_OK\n"}, nil
}

func (m *MockTool) RunFile(_ context.Context, path string, _ time.Duration) (*Result, error) {
	if m.RunFileFunc != nil {
		return m.RunFileFunc(path)
	}
	return &Result{}, nil
}

func (m *MockTool) Version(context.Context) (string, error) {
	if m.VersionString != "" {
		return m.VersionString, nil
	}
	return "Python 3.12.0 (mock)", nil
}
