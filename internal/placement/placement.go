// Package placement maps categories to their expected storage directories and
// decides whether a document already lives where it should.
package placement

import (
	"path"
	"strings"
)

// rootMarker is the canonical textual form of the scan root directory.
const rootMarker = "."

// Resolver computes expected directories from category templates. Templates
// contain {name} placeholders substituted from PathVariables; placeholder
// names are disjoint, so substitution order does not matter.
type Resolver struct {
	templates map[string]string
	variables map[string]string
	root      string
}

// NewResolver builds a resolver from a category → template mapping, the named
// path variables, and the root template used for categories with no explicit
// mapping.
func NewResolver(templates, variables map[string]string, rootTemplate string) *Resolver {
	return &Resolver{
		templates: templates,
		variables: variables,
		root:      rootTemplate,
	}
}

// ResolveDirectory returns the expected directory for a category.
//
// A category with no configured template falls back to the root template.
// Placeholders whose variable is unknown to configuration are left verbatim;
// resolution never fails.
func (r *Resolver) ResolveDirectory(category string) string {
	tmpl, ok := r.templates[category]
	if !ok {
		tmpl = r.root
	}
	for name, value := range r.variables {
		tmpl = strings.ReplaceAll(tmpl, "{"+name+"}", value)
	}
	return tmpl
}

// SuggestedPath returns the full expected path for a document of the given
// category.
func (r *Resolver) SuggestedPath(category, fileName string) string {
	dir := normalizeDir(r.ResolveDirectory(category))
	if dir == rootMarker {
		return fileName
	}
	return path.Join(strings.TrimSuffix(dir, "/"), fileName)
}

// IsCorrectlyPlaced reports whether a document's current directory equals the
// expected directory for its category. Both sides are normalized first, so
// textual variations of the same location ("docs" vs "docs/", "" vs ".")
// compare equal, while directories differing by any path segment do not.
func IsCorrectlyPlaced(currentDir, expectedDir string) bool {
	return normalizeDir(currentDir) == normalizeDir(expectedDir)
}

// normalizeDir canonicalizes a directory string: a leading "./" is stripped,
// the empty string maps to the root marker, and any non-root directory carries
// exactly one trailing separator.
func normalizeDir(dir string) string {
	dir = strings.TrimPrefix(dir, "./")
	if dir == "" || dir == rootMarker {
		return rootMarker
	}
	return strings.TrimRight(dir, "/") + "/"
}
