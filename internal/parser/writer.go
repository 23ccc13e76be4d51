package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/pyscaf/internal/core"
	"github.com/indaco/pyscaf/internal/tomledit"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/sjson"
)

// Writer provides version writing capabilities for multiple file formats.
// Every writer reads the whole file, computes the new content in memory and
// writes it back in one call.
type Writer struct {
	fs core.FileSystem
}

// NewWriter creates a new Writer with the given filesystem.
func NewWriter(fs core.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Write writes a version to a file based on the provided configuration.
func (w *Writer) Write(ctx context.Context, cfg FileConfig, version string) error {
	updated, err := w.Render(ctx, cfg, version)
	if err != nil {
		return err
	}
	return w.Commit(ctx, cfg.Path, updated)
}

// Render returns the content cfg.Path would have with version written to
// it. The file is read but never written.
func (w *Writer) Render(ctx context.Context, cfg FileConfig, version string) ([]byte, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}

	if !cfg.Format.IsValid() {
		return nil, fmt.Errorf("invalid format: %s", cfg.Format)
	}

	if cfg.Format == FormatRaw {
		return renderRaw(version), nil
	}

	data, err := w.fs.ReadFile(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", cfg.Path, err)
	}

	switch cfg.Format {
	case FormatLine:
		return rewriteLines(data, cfg.Path, cfg.Field, version)
	case FormatJSON:
		return w.updateJSON(data, cfg.Path, cfg.Field, version)
	case FormatYAML:
		return w.updateYAML(data, cfg.Path, cfg.Field, version)
	case FormatTOML:
		return w.updateTOML(data, cfg.Path, cfg.Field, version)
	case FormatRegex:
		return w.updateRegex(data, cfg.Path, cfg.Pattern, version)
	default:
		return nil, fmt.Errorf("unsupported format: %s", cfg.Format)
	}
}

// Commit writes content previously produced by Render.
func (w *Writer) Commit(ctx context.Context, path string, content []byte) error {
	if err := w.fs.WriteFile(ctx, path, content, core.PermPublicRead); err != nil {
		return fmt.Errorf("failed to write file %q: %w", path, err)
	}
	return nil
}

// updateJSON uses sjson to update only the specified field, preserving
// structure and field order.
func (w *Writer) updateJSON(data []byte, path, field, version string) ([]byte, error) {
	if field == "" {
		return nil, fmt.Errorf("field is required for JSON format")
	}

	updated, err := sjson.SetBytes(data, field, version)
	if err != nil {
		return nil, fmt.Errorf("failed to set version in %q: %w", path, err)
	}

	if len(updated) > 0 && updated[len(updated)-1] != '\n' {
		updated = append(updated, '\n')
	}
	return updated, nil
}

func (w *Writer) updateYAML(data []byte, path, field, version string) ([]byte, error) {
	if field == "" {
		return nil, fmt.Errorf("field is required for YAML format")
	}

	var obj map[string]any
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse YAML in %q: %w", path, err)
	}

	if err := setNestedValue(obj, field, version); err != nil {
		return nil, fmt.Errorf("in file %q: %w", path, err)
	}

	updated, err := yaml.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML for %q: %w", path, err)
	}
	return updated, nil
}

// updateTOML replaces the field value in place so comments and layout of
// the rest of the document survive.
func (w *Writer) updateTOML(data []byte, path, field, version string) ([]byte, error) {
	if field == "" {
		return nil, fmt.Errorf("field is required for TOML format")
	}

	var obj map[string]any
	if err := toml.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("failed to parse TOML in %q: %w", path, err)
	}
	if _, err := getNestedValue(obj, field); err != nil {
		return nil, fmt.Errorf("in file %q: %w", path, err)
	}

	updated, err := tomledit.Replace(data, strings.Split(field, "."), tomledit.EncodeString(version))
	if err != nil {
		return nil, fmt.Errorf("in file %q: %w", path, err)
	}
	return updated, nil
}

// renderRaw returns the version as the entire file contents.
func renderRaw(version string) []byte {
	if !strings.HasSuffix(version, "\n") {
		version += "\n"
	}
	return []byte(version)
}

// updateRegex replaces the first capturing group of every match.
func (w *Writer) updateRegex(data []byte, path, pattern, version string) ([]byte, error) {
	if pattern == "" {
		return nil, fmt.Errorf("pattern is required for regex format")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("regex pattern %q must have a capturing group", pattern)
	}

	if !re.Match(data) {
		return nil, fmt.Errorf("%w: pattern %q does not match contents of %q", ErrNotFound, pattern, path)
	}

	var out []byte
	last := 0
	for _, loc := range re.FindAllSubmatchIndex(data, -1) {
		if loc[2] < 0 {
			continue
		}
		out = append(out, data[last:loc[2]]...)
		out = append(out, version...)
		last = loc[3]
	}
	out = append(out, data[last:]...)
	return out, nil
}

// setNestedValue sets a value in a nested map using dot notation.
// Missing intermediate maps are created.
func setNestedValue(obj map[string]any, field string, value any) error {
	parts := strings.Split(field, ".")
	current := obj

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]

		next, exists := current[part]
		if !exists {
			newMap := make(map[string]any)
			current[part] = newMap
			current = newMap
			continue
		}

		nextMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i+1], "."), part)
		}

		current = nextMap
	}

	current[parts[len(parts)-1]] = value
	return nil
}

// FormatForFile detects the format based on file extension or name.
func FormatForFile(filename string) Format {
	lower := strings.ToLower(filename)

	switch {
	case strings.HasSuffix(lower, ".py"):
		return FormatLine
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".toml"):
		return FormatTOML
	default:
		return FormatRaw
	}
}

// FieldForFile returns the typical field path for common file types.
func FieldForFile(filename string) string {
	parts := strings.Split(strings.ReplaceAll(filename, "\\", "/"), "/")
	switch base := parts[len(parts)-1]; {
	case base == "pyproject.toml":
		return "project.version"
	case base == "Cargo.toml":
		return "package.version"
	case strings.HasSuffix(base, ".py"):
		return DefaultLinePrefix
	default:
		return "version"
	}
}
