package tomledit

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

var errUnexpectedEOF = errors.New("unexpected end of document")

// scanner walks a TOML document statement by statement. It understands just
// enough of the grammar to skip over any value and to decode keys; the
// document is expected to have been validated by a real decoder first.
type scanner struct {
	src []byte
	pos int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *scanner) hasPrefix(p string) bool {
	return strings.HasPrefix(string(s.src[s.pos:]), p)
}

// line returns the 1-based line number of the current position.
func (s *scanner) line() int {
	return strings.Count(string(s.src[:min(s.pos, len(s.src))]), "\n") + 1
}

func (s *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", s.line(), fmt.Sprintf(format, args...))
}

// skipSpaces skips spaces and tabs.
func (s *scanner) skipSpaces() {
	for !s.eof() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

// skipBlank skips whitespace, newlines and comments.
func (s *scanner) skipBlank() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		case '#':
			s.skipRestOfLine()
		default:
			return
		}
	}
}

// skipRestOfLine moves past the next newline.
func (s *scanner) skipRestOfLine() {
	for !s.eof() && s.src[s.pos] != '\n' {
		s.pos++
	}
	if !s.eof() {
		s.pos++
	}
}

// endOfLine returns the offset of the newline ending the current line,
// trimming a preceding carriage return, or len(src) on the last line.
func (s *scanner) endOfLine() int {
	i := s.pos
	for i < len(s.src) && s.src[i] != '\n' {
		i++
	}
	if i > s.pos && i <= len(s.src) && i > 0 && s.src[i-1] == '\r' {
		i--
	}
	return i
}

// parseHeader parses a [table] or [[array.table]] header.
func (s *scanner) parseHeader() (path []string, arrayTable bool, err error) {
	open, closing := "[", "]"
	if s.hasPrefix("[[") {
		open, closing, arrayTable = "[[", "]]", true
	}
	s.pos += len(open)
	path, err = s.parseKeyParts()
	if err != nil {
		return nil, false, err
	}
	s.skipSpaces()
	if !s.hasPrefix(closing) {
		return nil, false, s.errorf("expected %q after table name", closing)
	}
	s.pos += len(closing)
	return path, arrayTable, nil
}

// parseKeyValueKey parses a (possibly dotted) key and the following '='.
func (s *scanner) parseKeyValueKey() ([]string, error) {
	parts, err := s.parseKeyParts()
	if err != nil {
		return nil, err
	}
	s.skipSpaces()
	if s.eof() || s.src[s.pos] != '=' {
		return nil, s.errorf("expected '=' after key %q", strings.Join(parts, "."))
	}
	s.pos++
	return parts, nil
}

func (s *scanner) parseKeyParts() ([]string, error) {
	var parts []string
	for {
		s.skipSpaces()
		if s.eof() {
			return nil, errUnexpectedEOF
		}
		var part string
		var err error
		switch s.src[s.pos] {
		case '"':
			part, err = s.parseBasicString()
		case '\'':
			part, err = s.parseLiteralString()
		default:
			part, err = s.parseBareKey()
		}
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
		s.skipSpaces()
		if s.eof() || s.src[s.pos] != '.' {
			return parts, nil
		}
		s.pos++
	}
}

func isBareKeyChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

func (s *scanner) parseBareKey() (string, error) {
	start := s.pos
	for !s.eof() && isBareKeyChar(s.src[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		return "", s.errorf("invalid key character %q", s.src[s.pos])
	}
	return string(s.src[start:s.pos]), nil
}

// parseBasicString decodes a single-line "..." string.
func (s *scanner) parseBasicString() (string, error) {
	s.pos++ // opening quote
	var sb strings.Builder
	for !s.eof() {
		c := s.src[s.pos]
		switch c {
		case '"':
			s.pos++
			return sb.String(), nil
		case '\n':
			return "", s.errorf("newline in basic string")
		case '\\':
			r, err := s.parseEscape()
			if err != nil {
				return "", err
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte(c)
			s.pos++
		}
	}
	return "", errUnexpectedEOF
}

func (s *scanner) parseEscape() (rune, error) {
	s.pos++ // backslash
	if s.eof() {
		return 0, errUnexpectedEOF
	}
	c := s.src[s.pos]
	s.pos++
	switch c {
	case 'b':
		return '\b', nil
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'f':
		return '\f', nil
	case 'r':
		return '\r', nil
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case 'u', 'U':
		size := 4
		if c == 'U' {
			size = 8
		}
		if s.pos+size > len(s.src) {
			return 0, errUnexpectedEOF
		}
		n, err := strconv.ParseUint(string(s.src[s.pos:s.pos+size]), 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return 0, s.errorf("invalid unicode escape")
		}
		s.pos += size
		return rune(n), nil
	default:
		return 0, s.errorf("invalid escape sequence \\%c", c)
	}
}

// parseLiteralString decodes a single-line '...' string.
func (s *scanner) parseLiteralString() (string, error) {
	s.pos++
	start := s.pos
	for !s.eof() {
		switch s.src[s.pos] {
		case '\'':
			v := string(s.src[start:s.pos])
			s.pos++
			return v, nil
		case '\n':
			return "", s.errorf("newline in literal string")
		}
		s.pos++
	}
	return "", errUnexpectedEOF
}

// skipMultiline skips a """ or ''' string. Up to two extra quote characters
// may precede the closing delimiter.
func (s *scanner) skipMultiline(delim string) error {
	s.pos += len(delim)
	escapes := delim == `"""`
	for !s.eof() {
		if escapes && s.src[s.pos] == '\\' {
			s.pos += 2
			continue
		}
		if s.hasPrefix(delim) {
			s.pos += len(delim)
			for extra := 0; extra < 2 && !s.eof() && s.src[s.pos] == delim[0]; extra++ {
				s.pos++
			}
			return nil
		}
		s.pos++
	}
	return errUnexpectedEOF
}

// skipValue moves past one value of any type.
func (s *scanner) skipValue() error {
	if s.eof() {
		return errUnexpectedEOF
	}
	switch {
	case s.hasPrefix(`"""`):
		return s.skipMultiline(`"""`)
	case s.hasPrefix(`'''`):
		return s.skipMultiline(`'''`)
	case s.src[s.pos] == '"':
		_, err := s.parseBasicString()
		return err
	case s.src[s.pos] == '\'':
		_, err := s.parseLiteralString()
		return err
	case s.src[s.pos] == '[':
		return s.skipContainer(']', false)
	case s.src[s.pos] == '{':
		return s.skipContainer('}', true)
	}

	// Scalars (numbers, booleans, dates) run up to a terminator. Local
	// date-times may contain a space, so trailing blanks are trimmed after.
	start := s.pos
	for !s.eof() {
		c := s.src[s.pos]
		if c == '\n' || c == '#' || c == ',' || c == ']' || c == '}' {
			break
		}
		s.pos++
	}
	for s.pos > start && (s.src[s.pos-1] == ' ' || s.src[s.pos-1] == '\t' || s.src[s.pos-1] == '\r') {
		s.pos--
	}
	if s.pos == start {
		return s.errorf("missing value")
	}
	return nil
}

// skipContainer skips an array or an inline table.
func (s *scanner) skipContainer(closing byte, keyed bool) error {
	s.pos++
	for {
		s.skipBlank()
		if s.eof() {
			return errUnexpectedEOF
		}
		switch s.src[s.pos] {
		case closing:
			s.pos++
			return nil
		case ',':
			s.pos++
			continue
		}
		if keyed {
			if _, err := s.parseKeyValueKey(); err != nil {
				return err
			}
			s.skipSpaces()
		}
		if err := s.skipValue(); err != nil {
			return err
		}
	}
}
