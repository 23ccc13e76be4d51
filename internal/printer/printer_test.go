package printer

import (
	"bytes"
	"strings"
	"testing"
)

// TestRenderFunctions verifies that all render functions keep the input text.
func TestRenderFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string) string
		input    string
	}{
		{"Faint", Faint, "test text"},
		{"Bold", Bold, "test text"},
		{"Success", Success, "test text"},
		{"Error", Error, "test text"},
		{"Warning", Warning, "test text"},
		{"Info", Info, "test text"},
		{"Command", Command, "ruff check"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.function(tt.input)
			if !strings.Contains(result, tt.input) {
				t.Errorf("%s() result does not contain input text. got %q, want to contain %q", tt.name, result, tt.input)
			}
		})
	}
}

func TestPrintFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func(string)
		toErr    bool
	}{
		{"PrintFaint", PrintFaint, false},
		{"PrintBold", PrintBold, false},
		{"PrintSuccess", PrintSuccess, false},
		{"PrintError", PrintError, true},
		{"PrintWarning", PrintWarning, false},
		{"PrintInfo", PrintInfo, false},
		{"PrintCommand", PrintCommand, false},
		{"Println", Println, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			restore := SetOutput(&out, &errOut)
			defer restore()

			tt.function("test text")

			got, other := out.String(), errOut.String()
			if tt.toErr {
				got, other = other, got
			}
			if !strings.Contains(got, "test text") {
				t.Errorf("%s() output %q does not contain input", tt.name, got)
			}
			if !strings.HasSuffix(got, "\n") {
				t.Errorf("%s() output does not end with newline", tt.name)
			}
			if other != "" {
				t.Errorf("%s() wrote to the wrong stream: %q", tt.name, other)
			}
		})
	}
}

func TestSetNoColor(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	if got := Success("done"); got != "done" {
		t.Errorf("Success() with colors disabled = %q, want %q", got, "done")
	}
	if got := Command("pytest"); got != "$ pytest" {
		t.Errorf("Command() with colors disabled = %q, want %q", got, "$ pytest")
	}
}
