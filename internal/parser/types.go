package parser

import "errors"

// ErrNotFound is returned when a file does not declare a version where
// the FileConfig says it should.
var ErrNotFound = errors.New("version declaration not found")

// Format represents the supported file formats for version parsing.
type Format string

const (
	// FormatLine is for source files with a "<prefix> = <quoted version>" line,
	// such as __version__ in a Python package __init__.py.
	FormatLine Format = "line"

	// FormatJSON is for JSON files (package.json, etc.).
	FormatJSON Format = "json"

	// FormatYAML is for YAML files (Chart.yaml, etc.).
	FormatYAML Format = "yaml"

	// FormatTOML is for TOML files (pyproject.toml, Cargo.toml, etc.).
	FormatTOML Format = "toml"

	// FormatRaw is for plain text files where the entire content is the version.
	FormatRaw Format = "raw"

	// FormatRegex is for files requiring regex extraction.
	FormatRegex Format = "regex"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid returns true if the format is a known valid format.
func (f Format) IsValid() bool {
	switch f {
	case FormatLine, FormatJSON, FormatYAML, FormatTOML, FormatRaw, FormatRegex:
		return true
	default:
		return false
	}
}

// ParseFormat converts a string to a Format, returning FormatRaw as fallback.
func ParseFormat(s string) Format {
	f := Format(s)
	if f.IsValid() {
		return f
	}
	return FormatRaw
}

// FileConfig describes where a file declares its version.
type FileConfig struct {
	// Path is the file path (absolute or relative).
	Path string

	// Format specifies the file format.
	Format Format

	// Field is the dot-notation path to the version field (JSON/YAML/TOML),
	// or the line prefix for FormatLine (e.g. "__version__").
	Field string

	// Pattern is the regex pattern for regex format.
	// Must contain a capturing group for the version.
	Pattern string
}

// Result represents the result of reading a version from a file.
type Result struct {
	Version string
	Path    string
	Format  Format
	Field   string
}
