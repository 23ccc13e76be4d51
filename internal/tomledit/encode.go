package tomledit

import (
	"fmt"
	"strings"
)

// MultilineSentinel marks values written as a ''' block, such as the
// verbose regexes used by formatter exclude settings.
const MultilineSentinel = "/("

// ArrayIndent is the indentation of array items written by EncodeStringArray.
const ArrayIndent = "    "

// EncodeString encodes a string value for pyproject.toml.
//
// Values starting with MultilineSentinel become a ''' block. Everything else
// is a double-quoted basic string, except that anchored regexes (encoded form
// starting with "^ or ending with $") become single-quoted literals with
// every double quote removed. Doubled backslashes are collapsed last, so
// regex escapes stay readable.
func EncodeString(v string) string {
	var out string
	if strings.HasPrefix(v, MultilineSentinel) {
		out = "'''\n" + v + "'''"
	} else {
		out = quoteBasic(v)
	}
	if strings.HasPrefix(out, `"^`) || strings.HasSuffix(out, `$"`) {
		out = "'" + strings.ReplaceAll(out, `"`, "") + "'"
	}
	return strings.ReplaceAll(out, `\\`, `\`)
}

// EncodeStringArray encodes values as a multi-line array, one item per line.
// An empty slice is written as [].
func EncodeStringArray(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	var sb strings.Builder
	sb.WriteString("[\n")
	for _, v := range values {
		sb.WriteString(ArrayIndent)
		sb.WriteString(EncodeString(v))
		sb.WriteString(",\n")
	}
	sb.WriteString("]")
	return sb.String()
}

// quoteBasic encodes v as a TOML basic string.
func quoteBasic(v string) string {
	var sb strings.Builder
	sb.Grow(len(v) + 2)
	sb.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		case '\f':
			sb.WriteString(`\f`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04X`, r)
				continue
			}
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
