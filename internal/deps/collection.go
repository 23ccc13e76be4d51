package deps

import (
	"slices"
)

// Collection maps a canonical package name to its requirement.
type Collection map[string]Requirement

// NewCollection parses every entry of a dependency list. A later entry for
// the same package replaces an earlier one.
func NewCollection(entries []string) (Collection, error) {
	c := make(Collection, len(entries))
	for _, entry := range entries {
		req, err := ParseRequirement(entry)
		if err != nil {
			return nil, err
		}
		c[req.Key()] = req
	}
	return c, nil
}

// Add stores req, replacing any requirement with the same name.
func (c Collection) Add(req Requirement) {
	c[req.Key()] = req
}

// Has reports whether a requirement with the given package name exists.
func (c Collection) Has(name string) bool {
	_, ok := c[CanonicalName(name)]
	return ok
}

// Render returns the rendered requirements sorted lexicographically.
func (c Collection) Render() []string {
	out := make([]string, 0, len(c))
	for _, req := range c {
		out = append(out, req.String())
	}
	slices.Sort(out)
	return out
}
