// Package registry holds the category → template-path registry the suite
// runner iterates. The registry is read-only after load: categories keep
// their registration order and template lists keep their file order.
package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/qcodegen/templatecheck/internal/validation"
)

// Category is one named group of template paths.
type Category struct {
	Name      string   `yaml:"name" json:"name"`
	Templates []string `yaml:"templates" json:"templates"`
}

// Registry is the ordered set of categories for one suite run.
type Registry struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Default returns the compiled-in registry of quantum algorithm templates.
func Default() *Registry {
	return &Registry{
		Categories: []Category{
			{Name: "VQE", Templates: []string{
				"templates/vqe/vqe_h2_complete_qiskit22.py",
				"templates/vqe/vqe_lih_complete_qiskit22.py",
				"templates/vqe/vqe_h2o_complete_qiskit22.py",
				"templates/vqe/vqe_generic_complete_qiskit22.py",
			}},
			{Name: "QAOA", Templates: []string{
				"templates/qaoa/qaoa_maxcut_complete_qiskit22.py",
				"templates/qaoa/qaoa_generic_complete_qiskit22.py",
			}},
			{Name: "Grover", Templates: []string{
				"templates/grover/grover_complete_qiskit22.py",
			}},
			{Name: "QFT", Templates: []string{
				"templates/qft/qft_complete_qiskit22.py",
			}},
			{Name: "QPE", Templates: []string{
				"templates/qpe/qpe_complete_qiskit22.py",
			}},
		},
	}
}

// Load reads a registry from a YAML file, validating it against the
// registry schema first so malformed files fail with precise locations.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file: %w", err)
	}

	if errs := validation.ValidateRegistryBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("registry file %s is invalid: %w", path, errors.Join(toErrors(errs)...))
	}

	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing registry file: %w", err)
	}
	slog.Debug("registry loaded", "path", path,
		"categories", len(reg.Categories), "templates", reg.TemplateCount())
	return &reg, nil
}

// TemplateCount returns the total number of templates across categories.
func (r *Registry) TemplateCount() int {
	n := 0
	for _, c := range r.Categories {
		n += len(c.Templates)
	}
	return n
}

// Resolve returns a copy of the registry with relative template paths
// resolved against baseDir. Absolute paths are kept unchanged.
func (r *Registry) Resolve(baseDir string) *Registry {
	resolved := &Registry{Categories: make([]Category, 0, len(r.Categories))}
	for _, c := range r.Categories {
		paths := make([]string, 0, len(c.Templates))
		for _, p := range c.Templates {
			if filepath.IsAbs(p) {
				paths = append(paths, p)
			} else {
				paths = append(paths, filepath.Join(baseDir, p))
			}
		}
		resolved.Categories = append(resolved.Categories, Category{Name: c.Name, Templates: paths})
	}
	return resolved
}

func toErrors(msgs []string) []error {
	errs := make([]error, 0, len(msgs))
	for _, m := range msgs {
		errs = append(errs, errors.New(m))
	}
	return errs
}
