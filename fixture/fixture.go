// Package fixture is a minimal, in-memory heap.Interpreter used only by
// this repository's own tests. It is not part of the dump engine's
// public surface — a real caller brings its own interpreter — but the
// engine needs something concrete to walk end to end, the way the
// teacher's test suite builds small in-memory documents rather than
// hitting a real filesystem.
//
// The scope-chain/frame shape (a parent-linked chain of name tables) is
// grounded on the yaegi interpreter's frame/scope model; own-property
// storage uses this module's insertion-ordered map package, so
// OwnPropertyKeys returns keys in the insertion order heap.Object
// requires.
package fixture

import (
	"github.com/codecity-go/heapdump/heap"
	"github.com/codecity-go/heapdump/orderedmap"
)

// Owner is fixture's heap.Owner: either the privileged ROOT identity or
// a named non-root party, used to exercise the dump engine's extended
// Object.defineProperty attribute form in tests.
type Owner struct {
	name string
	root bool
}

// ROOT is the privileged owner the dump engine always reads as.
var ROOT = Owner{name: "ROOT", root: true}

// NewOwner returns a non-root owner identified by name.
func NewOwner(name string) Owner { return Owner{name: name} }

func (o Owner) IsRoot() bool   { return o.root }
func (o Owner) String() string { return o.name }

// Scope is one link in fixture's scope chain.
type Scope struct {
	vars  orderedmap.Map[string, heap.Value]
	outer *Scope
}

// NewScope creates a scope chained to outer (nil for the global scope).
func NewScope(outer *Scope) *Scope {
	return &Scope{vars: orderedmap.New[string, heap.Value](), outer: outer}
}

func (s *Scope) Get(name string) (heap.Value, bool) {
	v, ok := s.vars.Get(name)
	return v, ok
}

func (s *Scope) HasBinding(name string) bool {
	_, ok := s.vars.Get(name)
	return ok
}

func (s *Scope) Outer() heap.Scope {
	if s.outer == nil {
		return nil
	}
	return s.outer
}

func (s *Scope) Names() []string {
	return s.vars.Keys()
}

// Set declares or overwrites a binding in s.
func (s *Scope) Set(name string, v heap.Value) {
	s.vars.Set(name, v)
}

// builtinRegistry is a plain identity-keyed lookup from object to the
// stable key it was registered under.
type builtinRegistry struct {
	keys map[heap.Object]string
}

func (r *builtinRegistry) KeyFor(o heap.Object) (string, bool) {
	k, ok := r.keys[o]
	return k, ok
}

// Interpreter is fixture's heap.Interpreter.
type Interpreter struct {
	global      *Scope
	builtins    *builtinRegistry
	objectProto *Object
}

// New creates an interpreter with an empty global scope and a default
// Object.prototype (a plain object whose own prototype is null),
// registered as the builtin "Object.prototype".
func New() *Interpreter {
	ip := &Interpreter{
		global:   NewScope(nil),
		builtins: &builtinRegistry{keys: map[heap.Object]string{}},
	}
	ip.objectProto = newObject(heap.Value{Kind: heap.KindNull}, heap.ClassPlainObject)
	ip.RegisterBuiltin("Object.prototype", ip.objectProto)
	return ip
}

func (ip *Interpreter) Global() heap.Scope             { return ip.global }
func (ip *Interpreter) Root() heap.Owner               { return ROOT }
func (ip *Interpreter) Builtins() heap.BuiltinRegistry { return ip.builtins }
func (ip *Interpreter) ObjectPrototype() heap.Object   { return ip.objectProto }

// GlobalScope returns the concrete global *Scope, for test setup code
// that needs Set rather than just the heap.Scope read interface.
func (ip *Interpreter) GlobalScope() *Scope { return ip.global }

// SetGlobal declares a global variable. A convenience wrapper over
// GlobalScope().Set, since nearly every test fixture needs it.
func (ip *Interpreter) SetGlobal(name string, v heap.Value) {
	ip.global.Set(name, v)
}

// RegisterBuiltin records obj as recoverable by key, the way a real
// interpreter's built-ins (Object.prototype, Array.prototype, Math,
// ...) are always reachable without reconstruction (spec.md §4.4 step
// 3).
func (ip *Interpreter) RegisterBuiltin(key string, obj heap.Object) {
	ip.builtins.keys[obj] = key
}

// ObjectPrototypeValue is a Value wrapping ObjectPrototype, for callers
// building a plain object whose proto is the default prototype.
func (ip *Interpreter) ObjectPrototypeValue() heap.Value {
	return heap.Value{Kind: heap.KindObject, Object: ip.objectProto}
}
