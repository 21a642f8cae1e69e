// Package orderedmap wraps a third-party ordered map so the rest of this
// module depends on a narrow interface instead of the vendor type.
//
// The dump engine needs exactly one thing from this package: an
// interpreter object's own-properties, in the order they were first
// assigned, the way spec.md §3 requires own-properties to be preserved
// ("name -> PropertyDescriptor in insertion order"). The live heap is
// read-only to the dump engine (spec.md §5), so nothing here needs
// concurrent iteration or deletion/re-insertion semantics beyond what
// building a fixture object once, then walking it, requires.
package orderedmap

import (
	wk8orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Map is an insertion-ordered key/value container.
type Map[K comparable, V any] interface {
	Len() int
	Get(K) (V, bool)
	Set(K, V) (V, bool)
	First() Pair[K, V]
	Keys() []K
}

// Pair is one entry of a Map, linked to the next entry in insertion order.
type Pair[K comparable, V any] interface {
	Key() K
	Value() V
	Next() Pair[K, V]
}

type wrapOrderedMap[K comparable, V any] struct {
	*wk8orderedmap.OrderedMap[K, V]
}

type wrapPair[K comparable, V any] struct {
	*wk8orderedmap.Pair[K, V]
}

// New creates an empty ordered map.
func New[K comparable, V any]() Map[K, V] {
	return &wrapOrderedMap[K, V]{
		OrderedMap: wk8orderedmap.New[K, V](),
	}
}

func (o *wrapOrderedMap[K, V]) First() Pair[K, V] {
	pair := o.OrderedMap.Oldest()
	if pair == nil {
		return nil
	}
	return &wrapPair[K, V]{Pair: pair}
}

// Keys returns the map's keys in insertion order.
func (o *wrapOrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, o.Len())
	for pair := o.First(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key())
	}
	return keys
}

func (p *wrapPair[K, V]) Next() Pair[K, V] {
	next := p.Pair.Next()
	if next == nil {
		return nil
	}
	return &wrapPair[K, V]{Pair: next}
}

func (p *wrapPair[K, V]) Key() K   { return p.Pair.Key }
func (p *wrapPair[K, V]) Value() V { return p.Pair.Value }

// First returns m's first pair, or nil for an empty or nil map.
func First[K comparable, V any](m Map[K, V]) Pair[K, V] {
	if m == nil {
		return nil
	}
	return m.First()
}
