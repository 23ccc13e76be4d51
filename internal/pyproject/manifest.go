// Package pyproject reads and edits the dependency lists of a
// pyproject.toml manifest.
package pyproject

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/pyscaf/internal/core"
	"github.com/indaco/pyscaf/internal/tomledit"
	"github.com/pelletier/go-toml/v2"
)

// DefaultFilename is the manifest file name.
const DefaultFilename = "pyproject.toml"

var (
	// ErrNoProjectTable is returned when the manifest has no [project] table.
	ErrNoProjectTable = errors.New("manifest has no [project] table")

	// ErrGroupNotFound is returned when an optional dependency group does not exist.
	ErrGroupNotFound = errors.New("dependency group not found")
)

type document struct {
	Project *projectTable `toml:"project"`
}

type projectTable struct {
	Name                 string              `toml:"name"`
	Version              string              `toml:"version"`
	Dependencies         []string            `toml:"dependencies"`
	OptionalDependencies map[string][]string `toml:"optional-dependencies"`
}

// Manifest is a loaded pyproject.toml. Edits are applied to the raw bytes so
// that everything outside the edited list stays untouched.
type Manifest struct {
	fs   core.FileSystem
	path string
	data []byte
	doc  document
}

// Load reads and decodes the manifest at path.
func Load(ctx context.Context, fs core.FileSystem, path string) (*Manifest, error) {
	data, err := fs.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	m := &Manifest{fs: fs, path: path}
	if err := m.reset(data); err != nil {
		return nil, fmt.Errorf("in manifest %q: %w", path, err)
	}
	return m, nil
}

func (m *Manifest) reset(data []byte) error {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse TOML: %w", err)
	}
	if doc.Project == nil {
		return ErrNoProjectTable
	}
	m.data = data
	m.doc = doc
	return nil
}

// Path returns the manifest path.
func (m *Manifest) Path() string {
	return m.path
}

// Name returns project.name.
func (m *Manifest) Name() string {
	return m.doc.Project.Name
}

// Version returns the static project.version, empty when it is dynamic.
func (m *Manifest) Version() string {
	return m.doc.Project.Version
}

// Groups returns the names of the optional dependency groups.
func (m *Manifest) Groups() []string {
	groups := make([]string, 0, len(m.doc.Project.OptionalDependencies))
	for name := range m.doc.Project.OptionalDependencies {
		groups = append(groups, name)
	}
	return groups
}

// HasGroup reports whether the optional dependency group exists.
func (m *Manifest) HasGroup(group string) bool {
	_, ok := m.doc.Project.OptionalDependencies[group]
	return ok
}

// Dependencies returns project.dependencies when group is empty, otherwise
// project.optional-dependencies.<group>.
func (m *Manifest) Dependencies(group string) ([]string, error) {
	if group == "" {
		return append([]string(nil), m.doc.Project.Dependencies...), nil
	}
	list, ok := m.doc.Project.OptionalDependencies[group]
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", ErrGroupNotFound, group, m.path)
	}
	return append([]string(nil), list...), nil
}

// SetDependencies replaces a dependency list in memory. A missing group is
// created. Nothing is written until Save.
func (m *Manifest) SetDependencies(group string, entries []string) error {
	path := []string{"project", "dependencies"}
	if group != "" {
		path = []string{"project", "optional-dependencies", group}
	}

	if group != "" && !m.HasGroup(group) && len(m.doc.Project.OptionalDependencies) > 0 {
		loc, err := tomledit.Locate(m.data, path)
		if err != nil {
			return fmt.Errorf("in manifest %q: %w", m.path, err)
		}
		if !loc.TableFound {
			return fmt.Errorf("in manifest %q: cannot add group %q: optional-dependencies is not declared as a [project.optional-dependencies] table", m.path, group)
		}
	}

	updated, err := tomledit.Set(m.data, path, tomledit.EncodeStringArray(entries))
	if err != nil {
		return fmt.Errorf("in manifest %q: %w", m.path, err)
	}
	if err := m.reset(updated); err != nil {
		return fmt.Errorf("in manifest %q: rewritten document is invalid: %w", m.path, err)
	}
	return nil
}

// Bytes returns the current manifest content.
func (m *Manifest) Bytes() []byte {
	return m.data
}

// Save writes the manifest back to its path.
func (m *Manifest) Save(ctx context.Context) error {
	if err := m.fs.WriteFile(ctx, m.path, m.data, core.PermPublicRead); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", m.path, err)
	}
	return nil
}
