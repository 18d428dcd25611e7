// Package validate implements ValidationVisitor: a traversal that
// collects statistics about a query (referenced fields, operation
// counts, max nesting depth) and, guided by Options, turns some of
// those observations into errors.
package validate

// Options configures a Visitor's restrictions. The zero value imposes
// no restrictions: every field and operation is allowed, leading
// wildcards are permitted, depth is unbounded, and errors are merely
// collected rather than raised.
type Options struct {
	AllowedFields        []string
	RestrictedFields     []string
	AllowedOperations    []string
	RestrictedOperations []string

	AllowLeadingWildcards bool

	// AllowedMaxNodeDepth is the post-pass depth ceiling. Zero means
	// unbounded, per spec.md §4.9.
	AllowedMaxNodeDepth int

	// ShouldThrow, when set, makes Run return a *ValidationError instead
	// of just populating Result.Errors.
	ShouldThrow bool
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
