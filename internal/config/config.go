// Package config loads the optional .pyscaf.yaml project configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = ".pyscaf.yaml"

// Environment overrides, applied after the file is decoded.
const (
	EnvVersionFile = "PYSCAF_VERSION_FILE"
	EnvManifest    = "PYSCAF_MANIFEST"
	EnvIndexURL    = "PYSCAF_INDEX_URL"
)

const (
	DefaultPackage       = "python_template"
	DefaultManifest      = "pyproject.toml"
	DefaultVersionPrefix = "__version__"
	DefaultIndexURL      = "https://pypi.org/pypi"
	DefaultTheme         = "pyscaf"
)

// ErrPathTraversal is returned when an environment override points outside
// the project with a relative path.
var ErrPathTraversal = errors.New("path traversal not allowed, use absolute path instead")

// SyncFile describes an extra file whose version follows bump-version.
type SyncFile struct {
	Path    string `yaml:"path"`
	Format  string `yaml:"format,omitempty"`
	Field   string `yaml:"field,omitempty"`
	Pattern string `yaml:"pattern,omitempty"`
}

// Commands holds the command lines run by each task. Tasks with several
// lines run them in order and stop at the first failure.
type Commands struct {
	Build     []string `yaml:"build,omitempty"`
	Format    []string `yaml:"format,omitempty"`
	Lint      []string `yaml:"lint,omitempty"`
	Test      []string `yaml:"test,omitempty"`
	Publish   []string `yaml:"publish,omitempty"`
	Install   string   `yaml:"install,omitempty"`
	Uninstall string   `yaml:"uninstall,omitempty"`
}

// Config is the main configuration structure for pyscaf.
type Config struct {
	Package       string     `yaml:"package"`
	Manifest      string     `yaml:"manifest"`
	VersionFile   string     `yaml:"version-file"`
	VersionPrefix string     `yaml:"version-prefix"`
	IndexURL      string     `yaml:"index-url"`
	DefaultGroups []string   `yaml:"default-groups"`
	CleanPaths    []string   `yaml:"clean-paths"`
	Commands      Commands   `yaml:"commands"`
	SyncFiles     []SyncFile `yaml:"sync-files,omitempty"`
	Theme         string     `yaml:"theme"`
}

// DefaultCleanPaths are removed by the clean task.
var DefaultCleanPaths = []string{
	"build",
	"dist",
	"site",
	"htmlcov",
	".mypy_cache",
	".pytest_cache",
	".ruff_cache",
	"*.egg-info",
	"coverage.xml",
	".coverage",
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Package == "" {
		c.Package = DefaultPackage
	}
	if c.Manifest == "" {
		c.Manifest = DefaultManifest
	}
	if c.VersionFile == "" {
		c.VersionFile = path.Join(c.Package, "__init__.py")
	}
	if c.VersionPrefix == "" {
		c.VersionPrefix = DefaultVersionPrefix
	}
	if c.IndexURL == "" {
		c.IndexURL = DefaultIndexURL
	}
	if c.DefaultGroups == nil {
		c.DefaultGroups = []string{"dev"}
	}
	if c.CleanPaths == nil {
		c.CleanPaths = append([]string(nil), DefaultCleanPaths...)
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}

	cmds := &c.Commands
	if cmds.Build == nil {
		cmds.Build = []string{"python -m build"}
	}
	if cmds.Format == nil {
		cmds.Format = []string{"ruff format"}
	}
	if cmds.Lint == nil {
		cmds.Lint = []string{"mypy .", "ruff check"}
	}
	if cmds.Test == nil {
		cmds.Test = []string{"pytest"}
	}
	if cmds.Publish == nil {
		cmds.Publish = []string{"twine upload dist/*"}
	}
	if cmds.Install == "" {
		cmds.Install = "pip install"
	}
	if cmds.Uninstall == "" {
		cmds.Uninstall = "pip uninstall -y"
	}
}

// LoadConfigFn is the loader used by the CLI; tests replace it.
var LoadConfigFn = loadConfig

func loadConfig() (*Config, error) {
	return LoadFile(DefaultFile)
}

// LoadFile decodes the given file strictly, fills defaults and applies the
// environment overrides. A missing file yields the defaults.
func LoadFile(configFile string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", configFile, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read %s: %w", configFile, err)
	}

	cfg.applyDefaults()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvVersionFile); v != "" {
		p, err := cleanEnvPath(EnvVersionFile, v)
		if err != nil {
			return err
		}
		c.VersionFile = p
	}
	if v := os.Getenv(EnvManifest); v != "" {
		p, err := cleanEnvPath(EnvManifest, v)
		if err != nil {
			return err
		}
		c.Manifest = p
	}
	if v := os.Getenv(EnvIndexURL); v != "" {
		c.IndexURL = strings.TrimRight(v, "/")
	}
	return nil
}

func cleanEnvPath(name, value string) (string, error) {
	cleanPath := filepath.Clean(value)
	if strings.Contains(cleanPath, "..") {
		return "", fmt.Errorf("invalid %s: %w", name, ErrPathTraversal)
	}
	return cleanPath, nil
}
