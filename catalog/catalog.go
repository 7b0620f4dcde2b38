// Package catalog resolves model names to model assets through a YAML
// manifest, so hosts can refer to engines by name instead of hardcoding
// asset paths and backend selectors.
package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lmbridge/lmbridge-go/spec"
)

// Model is one manifest entry.
type Model struct {
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Backend     string `yaml:"backend,omitempty"` // "cpu" (default) or "gpu"
	ContextSize int    `yaml:"context_size,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// EngineBackend returns the typed backend selector for this entry.
func (m Model) EngineBackend() spec.Backend {
	b, _ := spec.ParseBackend(m.Backend)
	return b
}

type manifest struct {
	Models []Model `yaml:"models"`
}

// Catalog is an immutable, name-keyed view of a parsed manifest.
type Catalog struct {
	byName map[string]Model
}

// Parse builds a catalog from manifest bytes. Entries must have unique,
// non-empty names, non-empty paths, and a recognizable backend.
func Parse(data []byte) (*Catalog, error) {
	var mf manifest
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse model manifest: %w", err)
	}

	byName := make(map[string]Model, len(mf.Models))
	for i, m := range mf.Models {
		if m.Name == "" {
			return nil, fmt.Errorf("model manifest entry %d: name is required", i)
		}
		if m.Path == "" {
			return nil, fmt.Errorf("model %q: path is required", m.Name)
		}
		if _, ok := spec.ParseBackend(m.Backend); !ok {
			return nil, fmt.Errorf("model %q: unknown backend %q", m.Name, m.Backend)
		}
		if _, dup := byName[m.Name]; dup {
			return nil, fmt.Errorf("model %q: duplicate name", m.Name)
		}
		byName[m.Name] = m
	}
	return &Catalog{byName: byName}, nil
}

// Load reads and parses a manifest file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model manifest: %w", err)
	}
	return Parse(data)
}

// Resolve looks up a model by name.
func (c *Catalog) Resolve(name string) (Model, bool) {
	m, ok := c.byName[name]
	return m, ok
}

// Models returns all entries sorted by name.
func (c *Catalog) Models() []Model {
	out := make([]Model, 0, len(c.byName))
	for _, m := range c.byName {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len reports the number of entries.
func (c *Catalog) Len() int { return len(c.byName) }
