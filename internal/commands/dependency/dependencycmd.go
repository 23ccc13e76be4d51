// Package dependency implements the add and remove commands, which edit the
// dependency lists of pyproject.toml and reinstall the project.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/indaco/pyscaf/internal/clix"
	"github.com/indaco/pyscaf/internal/commands/install"
	"github.com/indaco/pyscaf/internal/deps"
	"github.com/indaco/pyscaf/internal/printer"
	"github.com/indaco/pyscaf/internal/pyproject"
	"github.com/urfave/cli/v3"
)

// ErrNoPackages is returned when remove is called without packages.
var ErrNoPackages = errors.New("at least one package is required")

func editFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "group",
			Aliases: []string{"g"},
			Usage:   "Optional dependency group to edit instead of project.dependencies",
		},
		&cli.BoolFlag{
			Name:  "reinstall",
			Usage: "Reinstall the project after editing",
			Value: true,
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the resulting list without writing or installing",
		},
	}
}

// AddCmd returns the "add" command.
func AddCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add dependencies to pyproject.toml",
		UsageText: "pyscaf add [package...] [--group name] [--reinstall=false] [--dry-run]",
		Flags:     editFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runEdit(ctx, cmd, env, deps.ActionAdd)
		},
	}
}

// RemoveCmd returns the "remove" command.
func RemoveCmd(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove dependencies from pyproject.toml and uninstall them",
		UsageText: "pyscaf remove <package>... [--group name] [--reinstall=false] [--dry-run]",
		Flags:     editFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runEdit(ctx, cmd, env, deps.ActionRemove)
		},
	}
}

// Options controls a single manifest edit.
type Options struct {
	Packages  []string
	Group     string
	Action    deps.Action
	Reinstall bool
	DryRun    bool
}

func runEdit(ctx context.Context, cmd *cli.Command, env *clix.Env, action deps.Action) error {
	return Edit(ctx, env, env.ManifestPath(cmd), Options{
		Packages:  cmd.Args().Slice(),
		Group:     cmd.String("group"),
		Action:    action,
		Reinstall: cmd.Bool("reinstall"),
		DryRun:    cmd.Bool("dry-run"),
	})
}

// Edit updates one dependency list of the manifest at manifestPath. An add
// without packages re-sorts the current list and reinstalls. The
// manifest is written once, after the new list is fully computed; the
// uninstall and reinstall commands only run after a successful write.
func Edit(ctx context.Context, env *clix.Env, manifestPath string, opts Options) error {
	if !opts.Action.IsValid() {
		return fmt.Errorf("%w: %q", deps.ErrInvalidAction, opts.Action)
	}
	if len(opts.Packages) == 0 && opts.Action == deps.ActionRemove {
		return ErrNoPackages
	}

	printer.PrintInfo(describe(opts))

	manifest, err := pyproject.Load(ctx, env.FS, manifestPath)
	if err != nil {
		return err
	}

	entries, err := manifest.Dependencies(opts.Group)
	if err != nil {
		// Adding to a group that does not exist yet creates it.
		if !errors.Is(err, pyproject.ErrGroupNotFound) || opts.Action != deps.ActionAdd {
			return err
		}
		entries = nil
	}

	current, err := deps.NewCollection(entries)
	if err != nil {
		return fmt.Errorf("in manifest %q: %w", manifestPath, err)
	}

	updated, err := merge(ctx, env, current, opts)
	if err != nil {
		return err
	}

	if err := manifest.SetDependencies(opts.Group, updated); err != nil {
		return err
	}

	if opts.DryRun {
		printer.PrintFaint(fmt.Sprintf("dry run: %s would contain:", listName(opts.Group)))
		for _, entry := range updated {
			printer.Println("  " + entry)
		}
		return nil
	}

	if err := manifest.Save(ctx); err != nil {
		return err
	}
	printer.PrintSuccess(fmt.Sprintf("Updated %s in %s", listName(opts.Group), manifestPath))

	if opts.Action == deps.ActionRemove {
		line := env.Config.Commands.Uninstall + " " + strings.Join(opts.Packages, " ")
		if err := env.Runner.Run(ctx, line); err != nil {
			return err
		}
	}

	if opts.Reinstall {
		groups := env.Config.DefaultGroups
		if opts.Group != "" {
			groups = []string{opts.Group}
		}
		return install.Install(ctx, env, true, groups)
	}
	return nil
}

// merge runs the list merge, showing a spinner while an add resolves
// latest versions from the index.
func merge(ctx context.Context, env *clix.Env, current deps.Collection, opts Options) ([]string, error) {
	if opts.Action == deps.ActionRemove {
		return deps.NewEditor(nil).Merge(ctx, current, opts.Packages, opts.Action)
	}

	editor := deps.NewEditor(env.NewResolver(env.Config.IndexURL))

	var updated []string
	err := env.WithSpinner(ctx, "Resolving latest versions...", func(ctx context.Context) error {
		var err error
		updated, err = editor.Merge(ctx, current, opts.Packages, opts.Action)
		return err
	})
	return updated, err
}

func describe(opts Options) string {
	if opts.Action == deps.ActionAdd && len(opts.Packages) == 0 {
		return "Reinstalling current dependencies of " + listName(opts.Group)
	}
	verb, prep := "Adding", "to"
	if opts.Action == deps.ActionRemove {
		verb, prep = "Removing", "from"
	}
	msg := fmt.Sprintf("%s %v", verb, opts.Packages)
	if opts.Group != "" {
		msg += fmt.Sprintf(" %s group %s", prep, opts.Group)
	}
	return msg
}

func listName(group string) string {
	if group == "" {
		return "project.dependencies"
	}
	return "project.optional-dependencies." + group
}
