// Package clix holds what every pyscaf command needs at run time: the
// loaded configuration and the collaborators that touch the outside world.
package clix

import (
	"context"
	"net/http"

	"github.com/indaco/pyscaf/internal/config"
	"github.com/indaco/pyscaf/internal/core"
	"github.com/indaco/pyscaf/internal/deps"
	"github.com/indaco/pyscaf/internal/parser"
	"github.com/indaco/pyscaf/internal/pypi"
	"github.com/indaco/pyscaf/internal/runner"
	"github.com/indaco/pyscaf/internal/tui"
	"github.com/urfave/cli/v3"
)

// Root flag names shared by subcommands.
const (
	FlagManifest    = "manifest"
	FlagVersionFile = "version-file"
)

// Env bundles the dependencies of the command actions. Tests build one with
// in-memory or recording collaborators.
type Env struct {
	Config *config.Config
	FS     core.FileSystem
	Runner runner.Runner

	// Dir is the project root used for glob expansion in clean.
	Dir string

	// NewResolver builds the index client for an index URL.
	NewResolver func(indexURL string) deps.Resolver

	Interactive func() bool
	Confirm     func(ctx context.Context, title, description string) (bool, error)
	WithSpinner func(ctx context.Context, title string, action func(context.Context) error) error
}

// NewEnv returns the production environment for cfg.
func NewEnv(cfg *config.Config) *Env {
	return &Env{
		Config: cfg,
		FS:     core.NewOSFileSystem(),
		Runner: runner.NewExecRunner(),
		Dir:    ".",
		NewResolver: func(indexURL string) deps.Resolver {
			return pypi.NewClient(indexURL, http.DefaultClient)
		},
		Interactive: tui.IsInteractive,
		Confirm:     tui.Confirm,
		WithSpinner: tui.RunWithSpinner,
	}
}

// ManifestPath returns the --manifest flag value, falling back to the
// configured manifest.
func (e *Env) ManifestPath(cmd *cli.Command) string {
	if cmd != nil {
		if p := cmd.String(FlagManifest); p != "" {
			return p
		}
	}
	return e.Config.Manifest
}

// VersionFile returns the version declaration, honoring --version-file.
func (e *Env) VersionFile(cmd *cli.Command) parser.FileConfig {
	fc := e.Config.VersionFileConfig()
	if cmd != nil {
		if p := cmd.String(FlagVersionFile); p != "" {
			fc.Path = p
		}
	}
	return fc
}

// SyncFiles returns the parser configuration of every configured sync file.
func (e *Env) SyncFiles() []parser.FileConfig {
	files := make([]parser.FileConfig, 0, len(e.Config.SyncFiles))
	for _, sf := range e.Config.SyncFiles {
		files = append(files, sf.FileConfig())
	}
	return files
}

// RunAll runs each command line in order and stops at the first failure.
func (e *Env) RunAll(ctx context.Context, lines []string) error {
	for _, line := range lines {
		if err := e.Runner.Run(ctx, line); err != nil {
			return err
		}
	}
	return nil
}
