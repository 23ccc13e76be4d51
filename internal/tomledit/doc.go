// Package tomledit rewrites single values inside a TOML document without
// re-encoding the rest of it. Comments, key order and formatting outside the
// edited value are preserved byte for byte.
//
// It also owns the string encoding used for values written back into
// pyproject.toml, including the quirks that keep regex-like markers and
// multi-line blocks readable (see EncodeString).
package tomledit
