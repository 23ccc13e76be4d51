// Package tasks wires the thin wrappers around the project tooling: build,
// format, lint, test, publish, version and the combined all task.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/pyscaf/internal/clix"
	"github.com/indaco/pyscaf/internal/commands/clean"
	"github.com/indaco/pyscaf/internal/commands/install"
	"github.com/indaco/pyscaf/internal/parser"
	"github.com/indaco/pyscaf/internal/printer"
	"github.com/urfave/cli/v3"
)

// ErrPublishCanceled is returned when the upload is declined at the prompt.
var ErrPublishCanceled = errors.New("publish canceled")

// Commands returns every task command.
func Commands(env *clix.Env) []*cli.Command {
	return []*cli.Command{
		runLinesCmd(env, "build", "Build the sdist and wheel", func() []string { return env.Config.Commands.Build }),
		runLinesCmd(env, "format", "Format the codebase", func() []string { return env.Config.Commands.Format }),
		runLinesCmd(env, "lint", "Run the linters", func() []string { return env.Config.Commands.Lint }),
		runLinesCmd(env, "test", "Run the test suite", func() []string { return env.Config.Commands.Test }),
		publishCmd(env),
		versionCmd(env),
		allCmd(env),
	}
}

func runLinesCmd(env *clix.Env, name, usage string, lines func() []string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		UsageText: "pyscaf " + name,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return env.RunAll(ctx, lines())
		},
	}
}

func publishCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "publish",
		Usage:     "Upload the built distributions",
		UsageText: "pyscaf publish [--yes]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Bool("yes") && env.Interactive() {
				ok, err := env.Confirm(ctx, "Publish the contents of dist/?", "The upload cannot be undone.")
				if err != nil {
					return err
				}
				if !ok {
					printer.PrintWarning("Publish canceled")
					return ErrPublishCanceled
				}
			}
			return env.RunAll(ctx, env.Config.Commands.Publish)
		},
	}
}

func versionCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "version",
		Usage:     "Print the declared package version",
		UsageText: "pyscaf version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			v, err := parser.NewReader(env.FS).ReadVersion(ctx, env.VersionFile(cmd))
			if err != nil {
				return err
			}
			printer.Println(v)
			return nil
		},
	}
}

func allCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "all",
		Usage:     "Clean, install dev dependencies, format, lint and test",
		UsageText: "pyscaf all",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return All(ctx, env)
		},
	}
}

// All runs the local development sequence and stops at the first failure.
func All(ctx context.Context, env *clix.Env) error {
	if _, err := clean.Clean(ctx, env); err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	if err := install.Install(ctx, env, true, env.Config.DefaultGroups); err != nil {
		return fmt.Errorf("install: %w", err)
	}

	cmds := env.Config.Commands
	for _, step := range []struct {
		name  string
		lines []string
	}{
		{"format", cmds.Format},
		{"lint", cmds.Lint},
		{"test", cmds.Test},
	} {
		if err := env.RunAll(ctx, step.lines); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}
