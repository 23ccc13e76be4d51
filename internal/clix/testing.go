package clix

import (
	"context"

	"github.com/indaco/pyscaf/internal/config"
	"github.com/indaco/pyscaf/internal/core"
	"github.com/indaco/pyscaf/internal/deps"
	"github.com/indaco/pyscaf/internal/runner"
)

// NewTestEnv returns an Env backed by an in-memory filesystem and a
// recording runner. It is never interactive and resolves nothing unless
// NewResolver is replaced.
func NewTestEnv(cfg *config.Config) (*Env, *core.MockFileSystem, *runner.MockRunner) {
	if cfg == nil {
		cfg = config.Default()
	}
	fs := core.NewMockFileSystem()
	r := runner.NewMockRunner()
	return &Env{
		Config:      cfg,
		FS:          fs,
		Runner:      r,
		Dir:         ".",
		NewResolver: func(string) deps.Resolver { return nil },
		Interactive: func() bool { return false },
		Confirm: func(context.Context, string, string) (bool, error) {
			return false, nil
		},
		WithSpinner: func(ctx context.Context, _ string, action func(context.Context) error) error {
			return action(ctx)
		},
	}, fs, r
}
