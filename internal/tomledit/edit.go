package tomledit

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrKeyNotFound is returned when the requested key does not appear as a
// statement in the document.
var ErrKeyNotFound = errors.New("key not found")

// Span is the half-open byte range [Start, End) of a value.
type Span struct {
	Start int
	End   int
}

// Location describes where a key lives in a document.
type Location struct {
	// Found reports whether the key itself was found; Value is then set.
	Found bool
	Value Span

	// TableFound reports whether the parent table of the key has its own
	// [header] in the document (or is the root table).
	TableFound bool

	// InsertAt is where a new key of the parent table can be inserted:
	// the end of the last line belonging to that table.
	InsertAt int
}

// Locate finds the value of the key at path, where path is the full dotted
// key split into parts ("project", "optional-dependencies", "dev").
// Keys nested in inline tables or arrays of tables are not addressable.
func Locate(src []byte, path []string) (Location, error) {
	if len(path) == 0 {
		return Location{}, fmt.Errorf("empty key path")
	}
	parent := path[:len(path)-1]

	var loc Location
	inParent := len(parent) == 0
	loc.TableFound = inParent

	s := &scanner{src: src}
	var table []string
	for {
		s.skipBlank()
		if s.eof() {
			return loc, nil
		}

		if s.src[s.pos] == '[' {
			header, arrayTable, err := s.parseHeader()
			if err != nil {
				return Location{}, err
			}
			table = header
			if arrayTable {
				// Keys below an array of tables belong to its last element.
				table = append(slices.Clone(header), "[]")
			}
			inParent = !arrayTable && slices.Equal(table, parent)
			if inParent {
				loc.TableFound = true
				loc.InsertAt = s.endOfLine()
			}
			s.skipRestOfLine()
			continue
		}

		key, err := s.parseKeyValueKey()
		if err != nil {
			return Location{}, err
		}
		s.skipSpaces()
		start := s.pos
		if err := s.skipValue(); err != nil {
			return Location{}, err
		}
		end := s.pos

		full := append(slices.Clone(table), key...)
		if slices.Equal(full, path) {
			loc.Found = true
			loc.Value = Span{Start: start, End: end}
			return loc, nil
		}
		if inParent {
			loc.InsertAt = s.endOfLine()
		}
		s.skipRestOfLine()
	}
}

// Replace swaps the value at path for the already encoded value.
func Replace(src []byte, path []string, encoded string) ([]byte, error) {
	loc, err := Locate(src, path)
	if err != nil {
		return nil, err
	}
	if !loc.Found {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, FormatKeyPath(path))
	}
	return splice(src, loc.Value.Start, loc.Value.End, encoded), nil
}

// Set replaces the value at path, or inserts the key when it is missing:
// at the end of its parent table when that table has a header, otherwise
// as a new table appended to the document.
func Set(src []byte, path []string, encoded string) ([]byte, error) {
	loc, err := Locate(src, path)
	if err != nil {
		return nil, err
	}
	if loc.Found {
		return splice(src, loc.Value.Start, loc.Value.End, encoded), nil
	}

	key := path[len(path)-1]
	line := FormatKey(key) + " = " + encoded
	if loc.TableFound {
		if loc.InsertAt == 0 {
			return splice(src, 0, 0, line+"\n"), nil
		}
		return splice(src, loc.InsertAt, loc.InsertAt, "\n"+line), nil
	}

	var sb strings.Builder
	sb.Write(src)
	if len(src) > 0 && !strings.HasSuffix(string(src), "\n") {
		sb.WriteByte('\n')
	}
	if len(src) > 0 {
		sb.WriteByte('\n')
	}
	sb.WriteString("[" + FormatKeyPath(path[:len(path)-1]) + "]\n")
	sb.WriteString(line + "\n")
	return []byte(sb.String()), nil
}

func splice(src []byte, start, end int, value string) []byte {
	out := make([]byte, 0, len(src)-(end-start)+len(value))
	out = append(out, src[:start]...)
	out = append(out, value...)
	out = append(out, src[end:]...)
	return out
}

// FormatKey renders a single key part, quoting it when it is not a bare key.
func FormatKey(key string) string {
	if key == "" {
		return `""`
	}
	for i := 0; i < len(key); i++ {
		if !isBareKeyChar(key[i]) {
			return quoteBasic(key)
		}
	}
	return key
}

// FormatKeyPath renders a dotted key.
func FormatKeyPath(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = FormatKey(p)
	}
	return strings.Join(parts, ".")
}
