// Package registry implements the BindingInfo registry of spec.md §3/§4.3:
// interned per-scope and per-object dump-status records, memoized by
// identity, that the dump driver consults to avoid re-emitting a binding
// and to locate the reference expression for an object already emitted.
package registry

import (
	"github.com/codecity-go/heapdump/config"
	"github.com/codecity-go/heapdump/heap"
	"github.com/codecity-go/heapdump/selector"
)

// ScopeInfo records, per variable name in one scope, the highest Do
// level reached so far.
type ScopeInfo struct {
	done map[string]config.Do
}

// Done returns the current Do level of name, or zero (below PRUNE, i.e.
// "untouched") if name has not been touched yet.
func (s *ScopeInfo) Done(name string) config.Do {
	return s.done[name]
}

// Bump raises name's Do level to max(current, to) and returns the new
// level. Never downgrades, by construction: config.Max cannot return a
// value lower than either input.
func (s *ScopeInfo) Bump(name string, to config.Do) config.Do {
	next := config.Max(s.done[name], to)
	s.done[name] = next
	return next
}

// ObjectInfo records, per own-property name of one object, the highest
// Do level reached so far, plus the object's canonical reference Parts
// once it has been emitted at DECL or above.
type ObjectInfo struct {
	done map[string]config.Do
	Ref  selector.Parts
}

// Done returns prop's current Do level on this object.
func (o *ObjectInfo) Done(prop string) config.Do {
	return o.done[prop]
}

// Bump raises prop's Do level to max(current, to) and returns the new
// level.
func (o *ObjectInfo) Bump(prop string, to config.Do) config.Do {
	next := config.Max(o.done[prop], to)
	o.done[prop] = next
	return next
}

// HasRef reports whether this object has already been assigned a
// canonical reference (i.e. has reached at least DECL status as a
// constructed object, per spec.md's ObjectInfo.ref invariant).
func (o *ObjectInfo) HasRef() bool {
	return o.Ref != nil
}

// SetRef assigns the canonical reference. It is only ever called once
// per object — spec.md's invariant that ref never changes once set is
// enforced by the caller (package serializer) never calling SetRef a second
// time, not by a guard here, matching how ObjectInfo.ref is described as
// a write-once field rather than a mutable one with a lock.
func (o *ObjectInfo) SetRef(parts selector.Parts) {
	o.Ref = parts.Clone()
}

// Registry owns the two interned maps — scope -> ScopeInfo and object ->
// ObjectInfo — for a single dump run. A Registry belongs to exactly one
// Dumper instance and is never shared or exposed (spec.md §5).
type Registry struct {
	scopes  map[heap.Scope]*ScopeInfo
	objects map[heap.Object]*ObjectInfo
}

// New creates an empty registry for a new dump run.
func New() *Registry {
	return &Registry{
		scopes:  map[heap.Scope]*ScopeInfo{},
		objects: map[heap.Object]*ObjectInfo{},
	}
}

// ScopeInfo returns the memoized ScopeInfo for s, creating it on first
// touch.
func (r *Registry) ScopeInfo(s heap.Scope) *ScopeInfo {
	info, ok := r.scopes[s]
	if !ok {
		info = &ScopeInfo{done: map[string]config.Do{}}
		r.scopes[s] = info
	}
	return info
}

// ObjectInfo returns the memoized ObjectInfo for o, creating it on first
// touch.
func (r *Registry) ObjectInfo(o heap.Object) *ObjectInfo {
	info, ok := r.objects[o]
	if !ok {
		info = &ObjectInfo{done: map[string]config.Do{}}
		r.objects[o] = info
	}
	return info
}
