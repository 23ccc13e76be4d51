package cli

import (
	"context"
	"fmt"

	"github.com/indaco/pyscaf/internal/clix"
	"github.com/indaco/pyscaf/internal/commands/bump"
	"github.com/indaco/pyscaf/internal/commands/clean"
	"github.com/indaco/pyscaf/internal/commands/dependency"
	"github.com/indaco/pyscaf/internal/commands/install"
	"github.com/indaco/pyscaf/internal/commands/tasks"
	"github.com/indaco/pyscaf/internal/printer"
	"github.com/indaco/pyscaf/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

var noColorFlag bool

// New builds and returns the root CLI command,
// configuring all subcommands and flags for the pyscaf cli.
func New(env *clix.Env) *urfavecli.Command {
	commands := []*urfavecli.Command{
		clean.Run(env),
		install.Run(env),
		dependency.AddCmd(env),
		dependency.RemoveCmd(env),
		bump.Run(env),
	}
	commands = append(commands, tasks.Commands(env)...)

	return &urfavecli.Command{
		Name:                  "pyscaf",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Task runner for Python package projects",
		EnableShellCompletion: true,
		Flags: []urfavecli.Flag{
			&urfavecli.StringFlag{
				Name:        clix.FlagManifest,
				Aliases:     []string{"m"},
				Usage:       "Path to pyproject.toml",
				DefaultText: env.Config.Manifest,
			},
			&urfavecli.StringFlag{
				Name:        clix.FlagVersionFile,
				Usage:       "Path to the file declaring __version__",
				DefaultText: env.Config.VersionFile,
			},
			&urfavecli.BoolFlag{
				Name:        "no-color",
				Usage:       "Disable colored output",
				Destination: &noColorFlag,
			},
		},
		Before: func(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
			printer.SetNoColor(noColorFlag)
			return ctx, nil
		},
		Commands: commands,
	}
}
