// Package operations provides the file-level operations behind pyscaf commands.
package operations

import (
	"context"
	"fmt"

	"github.com/indaco/pyscaf/internal/core"
	"github.com/indaco/pyscaf/internal/parser"
	"github.com/indaco/pyscaf/internal/semver"
)

// BumpResult reports what a bump changed.
type BumpResult struct {
	Previous string
	Current  string
	// Files lists every file written, declaration first.
	Files []string
}

// BumpOperation bumps the version declared in a package source file and
// propagates the new version to the configured sync files.
type BumpOperation struct {
	reader *parser.Reader
	writer *parser.Writer
	kind   semver.BumpKind
	dryRun bool
}

// NewBumpOperation creates a new bump operation. With dryRun set nothing is
// written but the result is computed as usual.
func NewBumpOperation(fs core.FileSystem, kind semver.BumpKind, dryRun bool) *BumpOperation {
	return &BumpOperation{
		reader: parser.NewReader(fs),
		writer: parser.NewWriter(fs),
		kind:   kind,
		dryRun: dryRun,
	}
}

// Execute reads the current version from declaration, bumps it and writes
// it to declaration and then to every sync file. No file is written unless
// the new content of every target could be computed.
func (op *BumpOperation) Execute(ctx context.Context, declaration parser.FileConfig, syncFiles []parser.FileConfig) (*BumpResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	current, err := op.reader.ReadVersion(ctx, declaration)
	if err != nil {
		return nil, fmt.Errorf("failed to read version from %s: %w", declaration.Path, err)
	}

	next, err := semver.BumpString(current, op.kind)
	if err != nil {
		return nil, fmt.Errorf("version in %s: %w", declaration.Path, err)
	}

	result := &BumpResult{Previous: current, Current: next}
	if op.dryRun {
		return result, nil
	}

	targets := append([]parser.FileConfig{declaration}, syncFiles...)
	contents := make([][]byte, len(targets))
	for i, target := range targets {
		content, err := op.writer.Render(ctx, target, next)
		if err != nil {
			return result, fmt.Errorf("failed to update version in %s: %w", target.Path, err)
		}
		contents[i] = content
	}

	for i, target := range targets {
		if err := op.writer.Commit(ctx, target.Path, contents[i]); err != nil {
			return result, fmt.Errorf("failed to write version to %s: %w", target.Path, err)
		}
		result.Files = append(result.Files, target.Path)
	}

	return result, nil
}

// Name returns the name of this operation.
func (op *BumpOperation) Name() string {
	return fmt.Sprintf("bump %s", op.kind)
}
