package parser

import (
	"fmt"
	"strings"
)

// DefaultLinePrefix is the Python module attribute holding the version.
const DefaultLinePrefix = "__version__"

// readLine returns the quoted value of the first line starting with prefix.
func readLine(data []byte, path, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("field is required for line format")
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		_, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if i := strings.IndexByte(value, '#'); i >= 0 && !strings.ContainsAny(value[:i], `"'`) {
			value = strings.TrimSpace(value[:i])
		}
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') {
			if end := strings.IndexByte(value[1:], value[0]); end >= 0 {
				return value[1 : end+1], nil
			}
		}
		return value, nil
	}
	return "", fmt.Errorf("%w: no line starting with %q in %q", ErrNotFound, prefix, path)
}

// rewriteLines replaces every line starting with prefix by
// `<prefix> = "<version>"`. Other lines, including their line endings,
// are passed through unchanged.
func rewriteLines(data []byte, path, prefix, version string) ([]byte, error) {
	if prefix == "" {
		return nil, fmt.Errorf("field is required for line format")
	}
	lines := strings.SplitAfter(string(data), "\n")
	replaced := false
	for i, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		ending := ""
		switch {
		case strings.HasSuffix(line, "\r\n"):
			ending = "\r\n"
		case strings.HasSuffix(line, "\n"):
			ending = "\n"
		}
		lines[i] = fmt.Sprintf("%s = %q%s", prefix, version, ending)
		replaced = true
	}
	if !replaced {
		return nil, fmt.Errorf("%w: no line starting with %q in %q", ErrNotFound, prefix, path)
	}
	return []byte(strings.Join(lines, "")), nil
}
