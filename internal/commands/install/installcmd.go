package install

import (
	"context"
	"strings"

	"github.com/indaco/pyscaf/internal/clix"
	"github.com/urfave/cli/v3"
)

// Run returns the "install" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "install",
		Usage:     "Install the package, optionally with extra dependency groups",
		UsageText: "pyscaf install [--editable=false] [--group name]...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "editable",
				Usage: "Install in editable mode",
				Value: true,
			},
			&cli.StringSliceFlag{
				Name:    "group",
				Aliases: []string{"g"},
				Usage:   "Optional dependency group to include (repeatable)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return Install(ctx, env, cmd.Bool("editable"), cmd.StringSlice("group"))
		},
	}
}

// Install runs the configured install command for the project.
func Install(ctx context.Context, env *clix.Env, editable bool, groups []string) error {
	return env.Runner.Run(ctx, Line(env.Config.Commands.Install, editable, groups))
}

// Line renders an install command line, e.g. "pip install -e .[dev,docs]".
func Line(base string, editable bool, groups []string) string {
	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteByte(' ')
	if editable {
		sb.WriteString("-e ")
	}
	sb.WriteByte('.')
	if len(groups) > 0 {
		sb.WriteByte('[')
		sb.WriteString(strings.Join(groups, ","))
		sb.WriteByte(']')
	}
	return sb.String()
}
