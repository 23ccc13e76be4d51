package parser

import (
	"context"
	"errors"
	"testing"

	"github.com/indaco/pyscaf/internal/core"
)

func TestFormat_IsValid(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatLine, true},
		{FormatJSON, true},
		{FormatYAML, true},
		{FormatTOML, true},
		{FormatRaw, true},
		{FormatRegex, true},
		{Format("ini"), false},
		{Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.IsValid(); got != tt.want {
				t.Errorf("Format(%q).IsValid() = %v, want %v", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"line", FormatLine},
		{"json", FormatJSON},
		{"toml", FormatTOML},
		{"regex", FormatRegex},
		{"ini", FormatRaw},
		{"", FormatRaw},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReader_ReadLine(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "double quoted",
			content: "\"\"\"Package.\"\"\"\n\n__version__ = \"0.1.0\"\n",
			want:    "0.1.0",
		},
		{
			name:    "single quoted with comment",
			content: "__version__ = '1.2.3'  # managed\n",
			want:    "1.2.3",
		},
		{
			name:    "first match wins",
			content: "__version__ = \"1.0.0\"\n__version__ = \"2.0.0\"\n",
			want:    "1.0.0",
		},
		{
			name:    "indented line is ignored",
			content: "if True:\n    __version__ = \"9.9.9\"\n",
			wantErr: ErrNotFound,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile("pkg/__init__.py", []byte(tt.content))

			got, err := NewReader(fs).ReadVersion(context.Background(), FileConfig{
				Path:   "pkg/__init__.py",
				Format: FormatLine,
				Field:  DefaultLinePrefix,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReader_ReadStructured(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		content string
		field   string
		want    string
		wantErr bool
	}{
		{"json top level", FormatJSON, `{"name": "web", "version": "1.2.3"}`, "version", "1.2.3", false},
		{"json nested", FormatJSON, `{"tool": {"version": "3.0.0"}}`, "tool.version", "3.0.0", false},
		{"json missing field", FormatJSON, `{"name": "web"}`, "version", "", true},
		{"json not a string", FormatJSON, `{"version": 3}`, "version", "", true},
		{"json invalid", FormatJSON, `{bad`, "version", "", true},
		{"yaml", FormatYAML, "name: chart\nversion: 0.4.0\n", "version", "0.4.0", false},
		{"yaml nested", FormatYAML, "app:\n  version: 1.0.1\n", "app.version", "1.0.1", false},
		{"toml project", FormatTOML, "[project]\nname = \"demo\"\nversion = \"0.1.0\"\n", "project.version", "0.1.0", false},
		{"toml missing table", FormatTOML, "[tool.x]\na = 1\n", "project.version", "", true},
		{"empty field", FormatTOML, "version = \"1.0.0\"\n", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := core.NewMockFileSystem()
			fs.SetFile("/file", []byte(tt.content))

			got, err := NewReader(fs).ReadVersion(context.Background(), FileConfig{
				Path:   "/file",
				Format: tt.format,
				Field:  tt.field,
			})
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got version %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReader_MissingFieldIsNotFound(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/package.json", []byte(`{"name": "web"}`))

	_, err := NewReader(fs).Read(context.Background(), FileConfig{
		Path:   "/package.json",
		Format: FormatJSON,
		Field:  "version",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReader_ReadRawAndRegex(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/VERSION", []byte("  2.4.6\n"))
	fs.SetFile("/setup.cfg", []byte("[metadata]\nversion = 0.9.1\n"))
	reader := NewReader(fs)

	got, err := reader.ReadVersion(context.Background(), FileConfig{Path: "/VERSION", Format: FormatRaw})
	if err != nil {
		t.Fatalf("raw: unexpected error: %v", err)
	}
	if got != "2.4.6" {
		t.Errorf("raw: got %q, want %q", got, "2.4.6")
	}

	got, err = reader.ReadVersion(context.Background(), FileConfig{
		Path:    "/setup.cfg",
		Format:  FormatRegex,
		Pattern: `version = (\S+)`,
	})
	if err != nil {
		t.Fatalf("regex: unexpected error: %v", err)
	}
	if got != "0.9.1" {
		t.Errorf("regex: got %q, want %q", got, "0.9.1")
	}

	_, err = reader.ReadVersion(context.Background(), FileConfig{
		Path:    "/setup.cfg",
		Format:  FormatRegex,
		Pattern: `release = (\S+)`,
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("regex without match: expected ErrNotFound, got %v", err)
	}

	_, err = reader.ReadVersion(context.Background(), FileConfig{
		Path:    "/setup.cfg",
		Format:  FormatRegex,
		Pattern: `(`,
	})
	if err == nil {
		t.Error("invalid pattern: expected error, got nil")
	}
}

func TestReader_InvalidInput(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/a", []byte("1.0.0"))
	reader := NewReader(fs)

	tests := []struct {
		name string
		cfg  FileConfig
	}{
		{"empty path", FileConfig{Format: FormatRaw}},
		{"invalid format", FileConfig{Path: "/a", Format: Format("ini")}},
		{"missing file", FileConfig{Path: "/missing", Format: FormatRaw}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := reader.Read(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestReader_ContextCancellation(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/VERSION", []byte("1.0.0"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewReader(fs).Read(ctx, FileConfig{Path: "/VERSION", Format: FormatRaw})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFormatForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"python_template/__init__.py", FormatLine},
		{"package.json", FormatJSON},
		{"Chart.yaml", FormatYAML},
		{"values.YML", FormatYAML},
		{"pyproject.toml", FormatTOML},
		{"VERSION", FormatRaw},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := FormatForFile(tt.filename); got != tt.want {
				t.Errorf("FormatForFile(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestFieldForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"pyproject.toml", "project.version"},
		{"sub/pyproject.toml", "project.version"},
		{"Cargo.toml", "package.version"},
		{"pkg/_version.py", DefaultLinePrefix},
		{"package.json", "version"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := FieldForFile(tt.filename); got != tt.want {
				t.Errorf("FieldForFile(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}
