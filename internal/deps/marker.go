package deps

import (
	"fmt"
	"strings"
)

const markerOpChars = "<>=!~"

// splitMarker separates the environment marker from the rest of a
// requirement. After a direct URL the separator must be preceded by
// whitespace, since URLs may contain ';'.
func splitMarker(s string) (rest, marker string, ok bool) {
	before, _, _ := strings.Cut(s, ";")
	if !strings.Contains(before, "@") {
		return strings.Cut(s, ";")
	}
	for i := 1; i < len(s); i++ {
		if s[i] == ';' && (s[i-1] == ' ' || s[i-1] == '\t') {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// normalizeMarker rewrites a marker expression with single spaces around
// operators and keywords and double-quoted values, so "python_version<'3.8'"
// becomes `python_version < "3.8"`.
func normalizeMarker(s string) (string, error) {
	tokens, err := markerTokens(s)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	prev := ""
	for _, tok := range tokens {
		if sb.Len() > 0 && prev != "(" && tok != ")" {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok)
		prev = tok
	}
	return sb.String(), nil
}

func markerTokens(s string) ([]string, error) {
	var tokens []string
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '(' || c == ')':
			tokens = append(tokens, string(c))
			i++
		case c == '"' || c == '\'':
			end := strings.IndexByte(s[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("unterminated string in marker %q", s)
			}
			value := s[i+1 : i+1+end]
			if strings.Contains(value, `"`) {
				tokens = append(tokens, "'"+value+"'")
			} else {
				tokens = append(tokens, `"`+value+`"`)
			}
			i += end + 2
		case strings.IndexByte(markerOpChars, c) >= 0:
			j := i
			for j < len(s) && strings.IndexByte(markerOpChars, s[j]) >= 0 {
				j++
			}
			tokens = append(tokens, s[i:j])
			i = j
		default:
			j := i
			for j < len(s) && !strings.ContainsRune(" \t()\"'"+markerOpChars, rune(s[j])) {
				j++
			}
			tokens = append(tokens, s[i:j])
			i = j
		}
	}
	return tokens, nil
}
