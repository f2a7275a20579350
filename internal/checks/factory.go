package checks

import (
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/qcodegen/templatecheck/internal/models"
	"github.com/qcodegen/templatecheck/internal/pytool"
)

// Kind identifies a checker type in configuration.
type Kind string

const (
	KindQuality   Kind = "quality"
	KindSyntax    Kind = "syntax"
	KindImports   Kind = "imports"
	KindExecution Kind = "execution"
)

// Create builds a checker of the given kind from loosely typed parameters,
// as found in project configuration. Subprocess-backed checkers receive the
// shared interpreter tool and run mode.
func Create(kind Kind, tool pytool.Tool, mode models.Mode, params map[string]any) (TemplateChecker, error) {
	switch kind {
	case KindQuality:
		var v struct {
			MinLines          int      `mapstructure:"min_lines"`
			RequiredConstruct string   `mapstructure:"required_construct"`
			LegacyAPIs        []string `mapstructure:"legacy_apis"`
		}
		if err := mapstructure.Decode(params, &v); err != nil {
			return nil, err
		}
		return &QualityChecker{
			MinLines:          v.MinLines,
			RequiredConstruct: v.RequiredConstruct,
			LegacyAPIs:        v.LegacyAPIs,
		}, nil
	case KindSyntax:
		timeout, err := decodeTimeout(params)
		if err != nil {
			return nil, err
		}
		return &SyntaxChecker{Tool: tool, Timeout: timeout}, nil
	case KindImports:
		timeout, err := decodeTimeout(params)
		if err != nil {
			return nil, err
		}
		return &ImportChecker{Tool: tool, Timeout: timeout}, nil
	case KindExecution:
		timeout, err := decodeTimeout(params)
		if err != nil {
			return nil, err
		}
		return &ExecutionChecker{Tool: tool, Mode: mode, Timeout: timeout}, nil
	default:
		return nil, fmt.Errorf("'%s' is not a valid checker kind", kind)
	}
}

func decodeTimeout(params map[string]any) (time.Duration, error) {
	var v struct {
		TimeoutSec int `mapstructure:"timeout_sec"`
	}
	if err := mapstructure.Decode(params, &v); err != nil {
		return 0, err
	}
	return time.Duration(v.TimeoutSec) * time.Second, nil
}
