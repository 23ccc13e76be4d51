package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/indaco/pyscaf/internal/core"
	"github.com/pelletier/go-toml/v2"
)

// Reader provides version reading capabilities for multiple file formats.
type Reader struct {
	fs core.FileSystem
}

// NewReader creates a new Reader with the given filesystem.
func NewReader(fs core.FileSystem) *Reader {
	return &Reader{fs: fs}
}

// Read reads a version from a file based on the provided configuration.
func (r *Reader) Read(ctx context.Context, cfg FileConfig) (*Result, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file path is required")
	}

	if !cfg.Format.IsValid() {
		return nil, fmt.Errorf("invalid format: %s", cfg.Format)
	}

	data, err := r.fs.ReadFile(ctx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", cfg.Path, err)
	}

	var version string
	switch cfg.Format {
	case FormatLine:
		version, err = readLine(data, cfg.Path, cfg.Field)
	case FormatJSON:
		version, err = r.readStructured(data, cfg.Path, cfg.Field, "JSON", json.Unmarshal)
	case FormatYAML:
		version, err = r.readStructured(data, cfg.Path, cfg.Field, "YAML", unmarshalYAML)
	case FormatTOML:
		version, err = r.readStructured(data, cfg.Path, cfg.Field, "TOML", toml.Unmarshal)
	case FormatRaw:
		version = strings.TrimSpace(string(data))
	case FormatRegex:
		version, err = r.readRegex(data, cfg.Path, cfg.Pattern)
	default:
		return nil, fmt.Errorf("unsupported format: %s", cfg.Format)
	}

	if err != nil {
		return nil, err
	}

	return &Result{
		Version: version,
		Path:    cfg.Path,
		Format:  cfg.Format,
		Field:   cfg.Field,
	}, nil
}

// ReadVersion is a convenience method that reads and returns just the version string.
func (r *Reader) ReadVersion(ctx context.Context, cfg FileConfig) (string, error) {
	result, err := r.Read(ctx, cfg)
	if err != nil {
		return "", err
	}
	return result.Version, nil
}

func unmarshalYAML(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// readStructured extracts a version from a decoded document using dot
// notation for the field path.
func (r *Reader) readStructured(data []byte, path, field, kind string, unmarshal func([]byte, any) error) (string, error) {
	if field == "" {
		return "", fmt.Errorf("field is required for %s format", kind)
	}

	var obj map[string]any
	if err := unmarshal(data, &obj); err != nil {
		return "", fmt.Errorf("failed to parse %s in %q: %w", kind, path, err)
	}

	value, err := getNestedValue(obj, field)
	if err != nil {
		return "", fmt.Errorf("in file %q: %w", path, err)
	}

	version, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("field %q in %q is not a string", field, path)
	}

	return version, nil
}

// readRegex extracts a version using a regex pattern with a capturing group.
func (r *Reader) readRegex(data []byte, path, pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("pattern is required for regex format")
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}

	matches := re.FindSubmatch(data)
	if len(matches) < 2 {
		return "", fmt.Errorf("%w: pattern %q has no match with a capturing group in %q", ErrNotFound, pattern, path)
	}

	return string(matches[1]), nil
}

// getNestedValue retrieves a value from a nested map using dot notation.
// Example: "project.version" accesses obj["project"]["version"]
func getNestedValue(obj map[string]any, field string) (any, error) {
	parts := strings.Split(field, ".")
	current := any(obj)

	for i, part := range parts {
		currentMap, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("field %q is not an object at path %q", strings.Join(parts[:i], "."), part)
		}

		value, exists := currentMap[part]
		if !exists {
			return nil, fmt.Errorf("%w: field %q", ErrNotFound, field)
		}

		current = value
	}

	return current, nil
}
