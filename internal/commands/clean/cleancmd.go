package clean

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/indaco/pyscaf/internal/clix"
	"github.com/indaco/pyscaf/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "clean" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "clean",
		Usage:     "Remove build artifacts and tool caches",
		UsageText: "pyscaf clean",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, err := Clean(ctx, env)
			return err
		},
	}
}

// Clean removes every path matching the configured clean patterns, relative
// to env.Dir, and returns the removed paths. Missing paths are skipped.
func Clean(ctx context.Context, env *clix.Env) ([]string, error) {
	var removed []string

	for _, pattern := range env.Config.CleanPaths {
		matches, err := filepath.Glob(filepath.Join(env.Dir, pattern))
		if err != nil {
			return removed, fmt.Errorf("invalid clean pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if err := env.FS.RemoveAll(ctx, match); err != nil {
				return removed, fmt.Errorf("failed to remove %s: %w", match, err)
			}
			rel, err := filepath.Rel(env.Dir, match)
			if err != nil {
				rel = match
			}
			printer.PrintFaint("removed " + rel)
			removed = append(removed, rel)
		}
	}

	return removed, nil
}
