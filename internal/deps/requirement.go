package deps

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// ErrInvalidRequirement is returned for a malformed requirement string.
var ErrInvalidRequirement = errors.New("invalid requirement")

// Specifier is a single version clause such as ">=2.0".
type Specifier struct {
	Op      string
	Version string
}

// String renders the specifier without spaces.
func (s Specifier) String() string {
	return s.Op + s.Version
}

// Requirement is a parsed dependency entry:
//
//	name[extra1,extra2]>=1.0,<2 ; python_version >= "3.9"
//	name[extra] @ https://example.com/pkg.whl ; sys_platform == "linux"
type Requirement struct {
	Name       string
	Extras     []string
	Specifiers []Specifier
	URL        string
	Marker     string
}

var (
	nameRegex      = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)`)
	specifierRegex = regexp.MustCompile(`^(~=|===|==|!=|<=|>=|<|>)\s*([A-Za-z0-9_.*+!-]+)$`)
	extraRegex     = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?$`)
	canonicalRegex = regexp.MustCompile(`[-_.]+`)
)

// CanonicalName normalizes a package name so that "Foo_Bar", "foo-bar" and
// "foo.bar" compare equal.
func CanonicalName(name string) string {
	return canonicalRegex.ReplaceAllString(strings.ToLower(name), "-")
}

// ParseRequirement parses a requirement string.
func ParseRequirement(s string) (Requirement, error) {
	input := strings.TrimSpace(s)
	if input == "" {
		return Requirement{}, fmt.Errorf("%w: empty string", ErrInvalidRequirement)
	}

	var req Requirement
	rest := input

	if before, marker, ok := splitMarker(rest); ok {
		normalized, err := normalizeMarker(marker)
		if err != nil {
			return Requirement{}, fmt.Errorf("%w: %q: %s", ErrInvalidRequirement, s, err.Error())
		}
		if normalized == "" {
			return Requirement{}, fmt.Errorf("%w: %q: empty marker", ErrInvalidRequirement, s)
		}
		req.Marker = normalized
		rest = before
	}

	name := nameRegex.FindString(rest)
	if name == "" {
		return Requirement{}, fmt.Errorf("%w: %q: missing package name", ErrInvalidRequirement, s)
	}
	req.Name = name
	rest = strings.TrimSpace(rest[len(name):])

	if strings.HasPrefix(rest, "[") {
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Requirement{}, fmt.Errorf("%w: %q: unterminated extras", ErrInvalidRequirement, s)
		}
		extras, err := parseExtras(rest[1:end])
		if err != nil {
			return Requirement{}, fmt.Errorf("%w: %q: %s", ErrInvalidRequirement, s, err.Error())
		}
		req.Extras = extras
		rest = strings.TrimSpace(rest[end+1:])
	}

	if strings.HasPrefix(rest, "@") {
		req.URL = strings.TrimSpace(rest[1:])
		if req.URL == "" || strings.ContainsAny(req.URL, " \t") {
			return Requirement{}, fmt.Errorf("%w: %q: invalid url", ErrInvalidRequirement, s)
		}
		return req, nil
	}

	specs, err := parseSpecifiers(rest)
	if err != nil {
		return Requirement{}, fmt.Errorf("%w: %q: %s", ErrInvalidRequirement, s, err.Error())
	}
	req.Specifiers = specs
	return req, nil
}

func parseExtras(s string) ([]string, error) {
	var extras []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !extraRegex.MatchString(part) {
			return nil, fmt.Errorf("invalid extra %q", part)
		}
		if !slices.Contains(extras, part) {
			extras = append(extras, part)
		}
	}
	slices.Sort(extras)
	return extras, nil
}

func parseSpecifiers(s string) ([]Specifier, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("unbalanced parentheses")
		}
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return nil, nil
	}

	var specs []Specifier
	for _, clause := range strings.Split(s, ",") {
		m := specifierRegex.FindStringSubmatch(strings.TrimSpace(clause))
		if m == nil {
			return nil, fmt.Errorf("invalid version specifier %q", strings.TrimSpace(clause))
		}
		specs = append(specs, Specifier{Op: m[1], Version: m[2]})
	}
	return specs, nil
}

// Key returns the identity of the requirement within a collection.
func (r Requirement) Key() string {
	return CanonicalName(r.Name)
}

// HasConstraint reports whether the requirement carries a version constraint.
func (r Requirement) HasConstraint() bool {
	return len(r.Specifiers) > 0
}

// String renders the requirement: extras sorted, specifiers sorted and
// comma-joined, normalized marker after "; ".
func (r Requirement) String() string {
	var sb strings.Builder
	sb.WriteString(r.Name)
	if len(r.Extras) > 0 {
		sb.WriteByte('[')
		sb.WriteString(strings.Join(r.Extras, ","))
		sb.WriteByte(']')
	}
	if len(r.Specifiers) > 0 {
		clauses := make([]string, len(r.Specifiers))
		for i, s := range r.Specifiers {
			clauses[i] = s.String()
		}
		slices.Sort(clauses)
		sb.WriteString(strings.Join(clauses, ","))
	}
	if r.URL != "" {
		sb.WriteString("@ ")
		sb.WriteString(r.URL)
		if r.Marker != "" {
			sb.WriteByte(' ')
		}
	}
	if r.Marker != "" {
		sb.WriteString("; ")
		sb.WriteString(r.Marker)
	}
	return sb.String()
}
