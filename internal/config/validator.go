package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/indaco/pyscaf/internal/parser"
	"github.com/indaco/pyscaf/internal/tui"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the values that cannot be verified by strict decoding.
// All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Manifest == "" {
		errs = append(errs, errors.New("manifest must not be empty"))
	}
	if c.VersionFile == "" {
		errs = append(errs, errors.New("version-file must not be empty"))
	}
	if strings.TrimSpace(c.VersionPrefix) == "" {
		errs = append(errs, errors.New("version-prefix must not be empty"))
	}

	if u, err := url.Parse(c.IndexURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("index-url %q must be an absolute http(s) URL", c.IndexURL))
	}

	if !tui.IsValidTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("theme %q is not one of %s", c.Theme, strings.Join(tui.ValidThemes, ", ")))
	}

	for i, sf := range c.SyncFiles {
		if err := sf.validate(); err != nil {
			errs = append(errs, fmt.Errorf("sync-files[%d]: %w", i, err))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func (s SyncFile) validate() error {
	if s.Path == "" {
		return errors.New("path is required")
	}

	format := s.FileConfig().Format
	if s.Format != "" && !parser.Format(s.Format).IsValid() {
		return fmt.Errorf("unknown format %q", s.Format)
	}

	switch format {
	case parser.FormatRegex:
		if s.Pattern == "" {
			return errors.New("pattern is required for regex format")
		}
	case parser.FormatJSON, parser.FormatYAML, parser.FormatTOML, parser.FormatLine:
		if s.FileConfig().Field == "" {
			return fmt.Errorf("field is required for %s format", format)
		}
	}
	return nil
}

// FileConfig converts the entry into a parser configuration, inferring the
// format and field from the file name when they are omitted.
func (s SyncFile) FileConfig() parser.FileConfig {
	format := parser.Format(s.Format)
	if s.Format == "" {
		format = parser.FormatForFile(s.Path)
	}

	field := s.Field
	if field == "" && format != parser.FormatRaw && format != parser.FormatRegex {
		field = parser.FieldForFile(s.Path)
	}

	return parser.FileConfig{
		Path:    s.Path,
		Format:  format,
		Field:   field,
		Pattern: s.Pattern,
	}
}

// VersionFileConfig describes the package version declaration.
func (c *Config) VersionFileConfig() parser.FileConfig {
	return parser.FileConfig{
		Path:   c.VersionFile,
		Format: parser.FormatLine,
		Field:  c.VersionPrefix,
	}
}
