package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/indaco/pyscaf/internal/cli"
	"github.com/indaco/pyscaf/internal/clix"
	"github.com/indaco/pyscaf/internal/config"
	"github.com/indaco/pyscaf/internal/printer"
	"github.com/indaco/pyscaf/internal/tui"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// newEnv builds the command environment; tests replace it.
var newEnv = clix.NewEnv

// runCLI loads the configuration and runs the root command. Ctrl-C cancels
// the context passed to every command.
func runCLI(args []string) error {
	cfg, err := config.LoadConfigFn()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	tui.SetTheme(cfg.Theme)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.New(newEnv(cfg)).Run(ctx, args)
}
