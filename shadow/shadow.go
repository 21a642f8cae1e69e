// Package shadow implements the shadowing oracle of spec.md §4.6: given
// the current dump scope cursor, decide whether a global name like
// undefined, NaN or Infinity is shadowed by an intermediate scope, which
// forces the serializer to fall back to a parenthesized expression
// ((void 0), (0/0), (1/0)) instead of the bare identifier.
package shadow

import "github.com/codecity-go/heapdump/heap"

// IsShadowed walks from cursor outward, not including ref, returning
// true if any intermediate scope binds name. The default reference
// scope is the global scope, reached when ref is nil.
func IsShadowed(cursor heap.Scope, name string, ref heap.Scope) bool {
	for s := cursor; s != nil && s != ref; s = s.Outer() {
		if ref == nil && s.Outer() == nil {
			// s is the global scope: the default reference scope.
			break
		}
		if s.HasBinding(name) {
			return true
		}
	}
	return false
}
