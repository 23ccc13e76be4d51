package bump

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/indaco/pyscaf/internal/clix"
	"github.com/indaco/pyscaf/internal/config"
	"github.com/indaco/pyscaf/internal/parser"
	"github.com/indaco/pyscaf/internal/printer"
	"github.com/indaco/pyscaf/internal/semver"
	"github.com/urfave/cli/v3"
)

const initPath = "python_template/__init__.py"

func newApp(env *clix.Env) *cli.Command {
	return &cli.Command{
		Name:     "pyscaf",
		Flags:    []cli.Flag{&cli.StringFlag{Name: clix.FlagVersionFile}},
		Commands: []*cli.Command{Run(env)},
	}
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	restore := printer.SetOutput(&out, &bytes.Buffer{})
	t.Cleanup(restore)
	return &out
}

func TestBumpVersion(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default is patch", []string{"pyscaf", "bump-version"}, "1.4.10"},
		{"positional major", []string{"pyscaf", "bump-version", "major"}, "2.0.0"},
		{"part flag minor", []string{"pyscaf", "bump-version", "--part", "minor"}, "1.5.0"},
		{"alias", []string{"pyscaf", "bv", "patch"}, "1.4.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			env, fs, _ := clix.NewTestEnv(nil)
			fs.SetFile(initPath, []byte("\"\"\"python_template.\"\"\"\n\n__version__ = \"1.4.9\"\n"))

			if err := newApp(env).Run(context.Background(), tt.args); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got, _ := fs.GetFile(initPath)
			want := "\"\"\"python_template.\"\"\"\n\n__version__ = \"" + tt.want + "\"\n"
			if string(got) != want {
				t.Errorf("file = %q, want %q", got, want)
			}

			if !strings.Contains(out.String(), "Current version: 1.4.9\n") {
				t.Errorf("missing current version line in %q", out.String())
			}
			if !strings.Contains(out.String(), "New version: "+tt.want+"\n") {
				t.Errorf("missing new version line in %q", out.String())
			}
		})
	}
}

func TestBumpVersion_SyncFilesAndDryRun(t *testing.T) {
	cfg := config.Default()
	cfg.SyncFiles = []config.SyncFile{{Path: "docs/package.json"}}

	t.Run("sync", func(t *testing.T) {
		captureOutput(t)
		env, fs, _ := clix.NewTestEnv(cfg)
		fs.SetFile(initPath, []byte("__version__ = \"0.1.0\"\n"))
		fs.SetFile("docs/package.json", []byte(`{"version": "0.1.0"}`))

		if err := newApp(env).Run(context.Background(), []string{"pyscaf", "bv", "minor"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		v, err := parser.NewReader(fs).ReadVersion(context.Background(), cfg.SyncFiles[0].FileConfig())
		if err != nil {
			t.Fatalf("read sync file: %v", err)
		}
		if v != "0.2.0" {
			t.Errorf("sync file version = %q, want %q", v, "0.2.0")
		}
	})

	t.Run("dry run", func(t *testing.T) {
		out := captureOutput(t)
		env, fs, _ := clix.NewTestEnv(cfg)
		original := []byte("__version__ = \"0.1.0\"\n")
		fs.SetFile(initPath, original)
		fs.SetFile("docs/package.json", []byte(`{"version": "0.1.0"}`))

		if err := newApp(env).Run(context.Background(), []string{"pyscaf", "bv", "--dry-run", "major"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := fs.GetFile(initPath)
		if string(got) != string(original) {
			t.Errorf("dry run modified %s: %q", initPath, got)
		}
		if !strings.Contains(out.String(), "New version: 1.0.0") {
			t.Errorf("dry run did not report the new version: %q", out.String())
		}
	})
}

func TestBumpVersion_VersionFileFlag(t *testing.T) {
	captureOutput(t)
	env, fs, _ := clix.NewTestEnv(nil)
	fs.SetFile("src/acme/__init__.py", []byte("__version__ = \"3.2.1\"\n"))

	err := newApp(env).Run(context.Background(), []string{"pyscaf", "--version-file", "src/acme/__init__.py", "bv"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := fs.GetFile("src/acme/__init__.py")
	if string(got) != "__version__ = \"3.2.2\"\n" {
		t.Errorf("file = %q", got)
	}
}

func TestBumpVersion_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		args    []string
		wantErr error
	}{
		{"invalid kind", "__version__ = \"1.0.0\"\n", []string{"pyscaf", "bv", "huge"}, semver.ErrInvalidBumpKind},
		{"invalid version", "__version__ = \"one\"\n", []string{"pyscaf", "bv"}, semver.ErrInvalidVersion},
		{"missing declaration", "# empty\n", []string{"pyscaf", "bv"}, parser.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureOutput(t)
			env, fs, _ := clix.NewTestEnv(nil)
			fs.SetFile(initPath, []byte(tt.content))

			err := newApp(env).Run(context.Background(), tt.args)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("argument and flag together", func(t *testing.T) {
		env, fs, _ := clix.NewTestEnv(nil)
		fs.SetFile(initPath, []byte("__version__ = \"1.0.0\"\n"))
		if err := newApp(env).Run(context.Background(), []string{"pyscaf", "bv", "--part", "minor", "major"}); err == nil {
			t.Error("expected error, got nil")
		}
	})
}
