package bump

import (
	"context"
	"fmt"

	"github.com/indaco/pyscaf/internal/clix"
	"github.com/indaco/pyscaf/internal/operations"
	"github.com/indaco/pyscaf/internal/printer"
	"github.com/indaco/pyscaf/internal/semver"
	"github.com/urfave/cli/v3"
)

// Run returns the "bump-version" command.
func Run(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "bump-version",
		Aliases:   []string{"bv"},
		Usage:     "Bump the package version (major, minor or patch)",
		UsageText: "pyscaf bump-version [major|minor|patch] [--part kind] [--dry-run]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "part",
				Aliases: []string{"p"},
				Usage:   "Version component to bump: major, minor or patch",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the new version without writing any file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runBumpCmd(ctx, cmd, env)
		},
	}
}

func runBumpCmd(ctx context.Context, cmd *cli.Command, env *clix.Env) error {
	label := cmd.String("part")
	if cmd.Args().Len() > 0 {
		if label != "" {
			return fmt.Errorf("give the bump kind either as an argument or with --part, not both")
		}
		if cmd.Args().Len() > 1 {
			return fmt.Errorf("expected at most one bump kind, got %d", cmd.Args().Len())
		}
		label = cmd.Args().First()
	}

	kind, err := semver.ParseBumpKind(label)
	if err != nil {
		return err
	}

	dryRun := cmd.Bool("dry-run")
	op := operations.NewBumpOperation(env.FS, kind, dryRun)
	result, err := op.Execute(ctx, env.VersionFile(cmd), env.SyncFiles())
	if err != nil {
		return err
	}

	printer.Println(fmt.Sprintf("Current version: %s", result.Previous))
	printer.Println(fmt.Sprintf("New version: %s", result.Current))

	if dryRun {
		printer.PrintFaint("dry run: no files written")
		return nil
	}
	for _, path := range result.Files[1:] {
		printer.PrintFaint("synced " + path)
	}
	return nil
}
