// Package selector converts between dotted selector strings (e.g.
// "$.util.cmd") and their canonical Parts form. Parts is the only form
// used internally once a selector has been parsed — selector strings are
// parsed here and nowhere else (spec.md §4.1).
package selector

import (
	"strings"

	"github.com/codecity-go/heapdump/dumperrors"
)

// Parts is the canonical, ordered form of a dotted selector. The first
// element names a variable in some scope; every following element names
// an own-property reached by walking from that variable's value.
type Parts []string

// ToParts splits a dotted selector into Parts. An empty selector, or one
// that splits into zero non-empty parts, is a ConfigError — spec.md §3
// states a zero-length Parts list is always an error.
func ToParts(sel string) (Parts, error) {
	if sel == "" {
		return nil, &dumperrors.ConfigError{Reason: "empty selector"}
	}
	raw := strings.Split(sel, ".")
	parts := make(Parts, 0, len(raw))
	for _, p := range raw {
		if p == "" {
			return nil, &dumperrors.ConfigError{
				Reason: "selector has an empty path component",
				Parts:  dumperrors.Parts(raw),
			}
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return nil, &dumperrors.ConfigError{Reason: "selector resolves to zero parts"}
	}
	return parts, nil
}

// MustParts is ToParts for callers (tests, fixture construction) that
// already know the selector is well-formed.
func MustParts(sel string) Parts {
	p, err := ToParts(sel)
	if err != nil {
		panic(err)
	}
	return p
}

// String joins Parts back into a dotted selector. It is the inverse of
// ToParts for any Parts that ToParts could have produced.
func (p Parts) String() string {
	return strings.Join(p, ".")
}

// Dumperrors converts Parts to the error-package's duplicate Parts type,
// so error values can carry a path without importing the rest of the
// engine back into dumperrors.
func (p Parts) Dumperrors() dumperrors.Parts {
	return dumperrors.Parts(p)
}

// Parent returns all but the last element — the Parts of the object that
// owns the binding named by p's final element — and the final element
// itself. Parent panics if p is empty; every valid Parts has at least
// one element.
func (p Parts) Parent() (Parts, string) {
	return p[:len(p)-1], p[len(p)-1]
}

// Equal reports whether two Parts name the same path.
func (p Parts) Equal(o Parts) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of p, so callers that stash Parts as
// a long-lived reference (ObjectInfo.Ref) are never aliased to a slice
// the caller later mutates.
func (p Parts) Clone() Parts {
	out := make(Parts, len(p))
	copy(out, p)
	return out
}
