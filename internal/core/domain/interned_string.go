package domain

import "unique"

// InternedString wraps a unique.Handle[string]. Node identifiers repeat
// across predecessor lists, the graph and the executor's ran-set, so they
// are interned once and compared by handle.
type InternedString struct {
	h unique.Handle[string]
}

// Intern creates an InternedString from a string.
func Intern(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}
