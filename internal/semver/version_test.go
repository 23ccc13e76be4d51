package semver

import (
	"errors"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input string
		want  SemVersion
	}{
		{"1.2.3", SemVersion{Major: 1, Minor: 2, Patch: 3}},
		{"v0.1.0", SemVersion{Major: 0, Minor: 1, Patch: 0}},
		{" 10.20.30 \n", SemVersion{Major: 10, Minor: 20, Patch: 30}},
		{"1.0.0-rc.1", SemVersion{Major: 1, PreRelease: "rc.1"}},
		{"1.0.0+build.5", SemVersion{Major: 1, Build: "build.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseVersion_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"1",
		"1.2",
		"1.2.3.4",
		"a.b.c",
		"1.-2.3",
		"1.2.x",
		"1.2.3rc1",
		string(make([]byte, 200)),
	}

	for _, input := range inputs {
		_, err := ParseVersion(input)
		if err == nil {
			t.Errorf("ParseVersion(%q): expected error, got nil", input)
			continue
		}
		if !errors.Is(err, ErrInvalidVersion) {
			t.Errorf("ParseVersion(%q): expected ErrInvalidVersion, got %v", input, err)
		}
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		current string
		kind    BumpKind
		want    string
	}{
		{"1.4.9", BumpMajor, "2.0.0"},
		{"1.4.9", BumpMinor, "1.5.0"},
		{"1.4.9", BumpPatch, "1.4.10"},
		{"0.0.0", BumpPatch, "0.0.1"},
		{"0.9.0", BumpMinor, "0.10.0"},
		{"1.0.0-rc.1+meta", BumpPatch, "1.0.1"},
		{"v3.2.1", BumpMajor, "4.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.current+"/"+tt.kind.String(), func(t *testing.T) {
			got, err := BumpString(tt.current, tt.kind)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("BumpString(%q, %s) = %q, want %q", tt.current, tt.kind, got, tt.want)
			}
		})
	}
}

func TestBump_Properties(t *testing.T) {
	for a := 0; a < 4; a++ {
		for b := 0; b < 4; b++ {
			for c := 0; c < 4; c++ {
				v := SemVersion{Major: a, Minor: b, Patch: c}
				if got := Bump(v, BumpMajor); got != (SemVersion{Major: a + 1}) {
					t.Errorf("Bump(%s, major) = %s", v, got)
				}
				if got := Bump(v, BumpMinor); got != (SemVersion{Major: a, Minor: b + 1}) {
					t.Errorf("Bump(%s, minor) = %s", v, got)
				}
				if got := Bump(v, BumpPatch); got != (SemVersion{Major: a, Minor: b, Patch: c + 1}) {
					t.Errorf("Bump(%s, patch) = %s", v, got)
				}
			}
		}
	}
}

func TestBumpString_InvalidVersion(t *testing.T) {
	_, err := BumpString("not-a-version", BumpMinor)
	if !errors.Is(err, ErrInvalidVersion) {
		t.Fatalf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestParseBumpKind(t *testing.T) {
	tests := []struct {
		input   string
		want    BumpKind
		wantErr bool
	}{
		{"", BumpPatch, false},
		{"patch", BumpPatch, false},
		{"minor", BumpMinor, false},
		{"MAJOR", BumpMajor, false},
		{"release", BumpPatch, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBumpKind(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidBumpKind) {
					t.Fatalf("expected ErrInvalidBumpKind, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseBumpKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSemVersion_String(t *testing.T) {
	v := SemVersion{Major: 1, Minor: 2, Patch: 3, PreRelease: "beta.2", Build: "abc"}
	if got := v.String(); got != "1.2.3-beta.2+abc" {
		t.Errorf("String() = %q", got)
	}
}
