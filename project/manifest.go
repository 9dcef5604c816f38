package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/meysamhadeli/jjgen/generator/contracts"
	"gopkg.in/yaml.v3"
)

// Manifest records the compile source roots registered by generation runs in
// a YAML file the host build reads.
type Manifest struct {
	path  string
	roots []string
}

type manifestFile struct {
	CompileSourceRoots []string `yaml:"compile_source_roots"`
}

var _ contracts.IProjectContext = (*Manifest)(nil)

// NewManifest loads the manifest at path. A missing file is an empty manifest.
func NewManifest(path string) (*Manifest, error) {
	manifest := &Manifest{path: path}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return manifest, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read source roots file: %w", err)
	}

	var file manifestFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse source roots file %s: %w", path, err)
	}
	manifest.roots = file.CompileSourceRoots
	return manifest, nil
}

// AddCompileSourceRoot registers dir once and saves the manifest.
func (m *Manifest) AddCompileSourceRoot(dir string) error {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	for _, root := range m.roots {
		if root == absDir {
			return nil
		}
	}
	m.roots = append(m.roots, absDir)
	return m.save()
}

// CompileSourceRoots returns the registered roots in registration order.
func (m *Manifest) CompileSourceRoots() []string {
	return append([]string(nil), m.roots...)
}

func (m *Manifest) save() error {
	data, err := yaml.Marshal(manifestFile{CompileSourceRoots: m.roots})
	if err != nil {
		return fmt.Errorf("failed to encode source roots: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", m.path, err)
	}
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write source roots file: %w", err)
	}
	return nil
}
