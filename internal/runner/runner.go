// Package runner executes the external Python tooling behind the tasks.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/indaco/pyscaf/internal/printer"
)

// ErrCommandFailed wraps every failed or unstartable command.
var ErrCommandFailed = errors.New("command failed")

// Runner runs command lines such as "ruff check" or "pip install -e .[dev]".
type Runner interface {
	Run(ctx context.Context, line string) error
}

// ExecRunner runs commands as subprocesses attached to the current stdio.
// Each line is echoed before it runs.
type ExecRunner struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
	Dir         string
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
}

var _ Runner = (*ExecRunner)(nil)

// NewExecRunner creates an ExecRunner bound to the process stdio.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{
		execCommand: exec.CommandContext,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
	}
}

// Run splits line on whitespace, expands glob arguments and runs it.
func (r *ExecRunner) Run(ctx context.Context, line string) error {
	args, err := r.Split(line)
	if err != nil {
		return err
	}

	printer.PrintCommand(line)

	cmd := r.execCommand(ctx, args[0], args[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s: %w", ErrCommandFailed, line, ctxErr)
		}
		return fmt.Errorf("%w: %s: %w", ErrCommandFailed, line, err)
	}
	return nil
}

// Split turns a command line into arguments. Arguments containing * or ?
// are expanded relative to Dir; a pattern with no match is passed through
// literally. Brackets are never treated as patterns so extras such as
// .[dev] reach pip unchanged.
func (r *ExecRunner) Split(line string) ([]string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrCommandFailed)
	}

	args := []string{fields[0]}
	for _, field := range fields[1:] {
		if !strings.ContainsAny(field, "*?") {
			args = append(args, field)
			continue
		}

		matches, err := filepath.Glob(filepath.Join(r.Dir, field))
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q: %w", ErrCommandFailed, field, err)
		}
		if len(matches) == 0 {
			args = append(args, field)
			continue
		}
		for _, m := range matches {
			if r.Dir != "" {
				if rel, err := filepath.Rel(r.Dir, m); err == nil {
					m = rel
				}
			}
			args = append(args, m)
		}
	}
	return args, nil
}
