package deps

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidAction is returned for an action other than add or remove.
	ErrInvalidAction = errors.New("invalid dependency action")

	// ErrResolution is returned when the latest version of a package
	// cannot be looked up.
	ErrResolution = errors.New("failed to resolve package version")
)

// Action selects how requested packages are merged into a collection.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)

// ParseAction validates an action tag.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if !a.IsValid() {
		return "", invalidAction(s)
	}
	return a, nil
}

// IsValid reports whether a is add or remove.
func (a Action) IsValid() bool {
	return a == ActionAdd || a == ActionRemove
}

func invalidAction(a string) error {
	return fmt.Errorf("%w: %q. Valid options are: %s, %s", ErrInvalidAction, a, ActionAdd, ActionRemove)
}

// Resolver looks up the latest published version of a package.
type Resolver interface {
	LatestVersion(ctx context.Context, name string) (string, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, name string) (string, error)

// LatestVersion calls f.
func (f ResolverFunc) LatestVersion(ctx context.Context, name string) (string, error) {
	return f(ctx, name)
}

// Editor computes new dependency lists.
type Editor struct {
	resolver Resolver
}

// NewEditor returns an Editor that pins constrained requests through resolver.
// A nil resolver is allowed as long as no request carries a constraint.
func NewEditor(resolver Resolver) *Editor {
	return &Editor{resolver: resolver}
}

// Requested parses the requested package specs. Specs carrying a non-empty
// constraint have it replaced with ">=" the latest published version.
// Any lookup failure aborts with ErrResolution.
func (e *Editor) Requested(ctx context.Context, packages []string) (Collection, error) {
	requested := make(Collection, len(packages))
	for _, pkg := range packages {
		req, err := ParseRequirement(pkg)
		if err != nil {
			return nil, err
		}
		if req.HasConstraint() {
			latest, err := e.latestVersion(ctx, req.Name)
			if err != nil {
				return nil, err
			}
			req.Specifiers = []Specifier{{Op: ">=", Version: latest}}
		}
		requested.Add(req)
	}
	return requested, nil
}

func (e *Editor) latestVersion(ctx context.Context, name string) (string, error) {
	if e.resolver == nil {
		return "", fmt.Errorf("%w: %s: no package index configured", ErrResolution, name)
	}
	latest, err := e.resolver.LatestVersion(ctx, name)
	if err != nil {
		if errors.Is(err, ErrResolution) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s: %w", ErrResolution, name, err)
	}
	if strings.TrimSpace(latest) == "" {
		return "", fmt.Errorf("%w: %s: empty version", ErrResolution, name)
	}
	return strings.TrimSpace(latest), nil
}

// Merge applies action to current with the requested package specs and
// returns the new sorted list of rendered requirements. current is not
// modified.
//
// Removal only looks at package names, so it never contacts the resolver.
func (e *Editor) Merge(ctx context.Context, current Collection, packages []string, action Action) ([]string, error) {
	switch action {
	case ActionAdd:
		requested, err := e.Requested(ctx, packages)
		if err != nil {
			return nil, err
		}
		return MergeAdd(current, requested), nil
	case ActionRemove:
		names := make([]string, 0, len(packages))
		for _, pkg := range packages {
			req, err := ParseRequirement(pkg)
			if err != nil {
				return nil, err
			}
			names = append(names, req.Name)
		}
		return MergeRemove(current, names), nil
	default:
		return nil, invalidAction(string(action))
	}
}

// MergeAdd returns requested plus every entry of current whose name was not
// requested, rendered and sorted.
func MergeAdd(current, requested Collection) []string {
	result := make(Collection, len(current)+len(requested))
	for key, req := range current {
		result[key] = req
	}
	for key, req := range requested {
		result[key] = req
	}
	return result.Render()
}

// MergeRemove returns current without the named packages, rendered and
// sorted. Names not present in current are ignored.
func MergeRemove(current Collection, names []string) []string {
	result := make(Collection, len(current))
	for key, req := range current {
		result[key] = req
	}
	for _, name := range names {
		delete(result, CanonicalName(name))
	}
	return result.Render()
}
