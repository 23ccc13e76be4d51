// Package parser reads and writes the version declared in project files:
// Python modules (a "__version__ = ..." line), JSON, YAML and TOML documents,
// plain text files and arbitrary files matched by a regex.
package parser
