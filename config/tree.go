package config

import (
	"github.com/codecity-go/heapdump/selector"
)

// node is one component of a ConfigNode trie (spec.md §3). Only the
// leaf a content entry was inserted at carries a Do/Reorder directive.
type node struct {
	children     map[string]*node
	hasDirective bool
	do           Do
	reorder      bool
}

func newNode() *node {
	return &node{children: map[string]*node{}}
}

// Tree is the Config Tree: a trie of Parts paths to their depth
// directive, built in one pass over a spec's ordered SpecEntries
// (spec.md §4.2). File routing is resolved separately, by object
// identity rather than by Parts text (package dumper's claim table) —
// the same object can be reachable through more than one Parts path, so
// only a live-value-keyed index can answer "which file owns this
// object", not a pure trie over path text.
type Tree struct {
	root *node
}

// BuildTree builds a Tree from an ordered list of SpecEntry. At most one
// entry may set Rest: true; a second is a fatal ConfigError — this is
// re-validated here (not just in LoadSpec) because BuildTree may be
// called directly by callers that constructed []SpecEntry themselves
// rather than through LoadSpec.
func BuildTree(entries []SpecEntry) (*Tree, error) {
	if err := validateSpec(entries); err != nil {
		return nil, err
	}

	t := &Tree{root: newNode()}
	for _, entry := range entries {
		for _, c := range entry.Contents {
			parts, err := selector.ToParts(c.Path)
			if err != nil {
				return nil, err
			}
			t.insert(parts, c.Do, c.Reorder)
		}
	}
	return t, nil
}

func (t *Tree) insert(parts selector.Parts, do Do, reorder bool) {
	cur := t.root
	for _, name := range parts {
		child, ok := cur.children[name]
		if !ok {
			child = newNode()
			cur.children[name] = child
		}
		cur = child
	}
	cur.hasDirective = true
	cur.do = do
	cur.reorder = reorder
}

// DoFor returns the exact content entry's directive for parts, if one
// was registered at exactly that path (not inherited from an ancestor —
// depth directives, unlike file routing, apply only where declared;
// RECURSE handling is what brings descendants along).
func (t *Tree) DoFor(parts selector.Parts) (Do, bool, bool) {
	cur := t.root
	for _, name := range parts {
		child, ok := cur.children[name]
		if !ok {
			return 0, false, false
		}
		cur = child
	}
	return cur.do, cur.reorder, cur.hasDirective
}
