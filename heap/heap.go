// Package heap declares the narrow, read-only interface the dump engine
// uses to observe a live interpreter heap (spec.md §6, "Interpreter
// collaborator"). The interpreter's object/primitive model, scope chain
// and built-ins registry are assumed to exist elsewhere (they are out of
// scope for this repository); this package only names the shape the dump
// engine needs of them.
//
// Nothing in this package, or in any package that only depends on it, is
// permitted to mutate the heap it walks. The live heap is read-only to
// the dump engine (spec.md §5).
package heap

// Kind tags a Value as either a primitive of a specific JS kind, or an
// object reference.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
)

// Class discriminates the class-specific shapes an Object can have.
type Class int

const (
	ClassPlainObject Class = iota
	ClassArray
	ClassFunction
	ClassDate
	ClassRegExp
)

// Value is the tagged variant spec.md §3 describes: a primitive or an
// object reference. Object identity is the Object's own pointer/handle
// identity — two Values with Kind == KindObject and the same Object are
// the same live object.
type Value struct {
	Kind    Kind
	Bool    bool
	Num     float64
	Str     string
	Object  Object
}

// IsObject reports whether v holds an object reference.
func (v Value) IsObject() bool { return v.Kind == KindObject && v.Object != nil }

// Owner identifies the privileged party a PropertyDescriptor read is
// performed on behalf of. The dump engine always reads as ROOT
// (spec.md §6); Owner exists as a type so the collaborator's access
// control is visible in signatures rather than assumed.
type Owner interface {
	// IsRoot reports whether this owner is the privileged ROOT identity.
	IsRoot() bool
}

// PropertyDescriptor is the full attribute set spec.md §3 requires to
// round-trip: Owner and all five booleans must survive a dump/reload
// cycle.
type PropertyDescriptor struct {
	Value              Value
	Owner              Owner
	Writable           bool
	Enumerable         bool
	Configurable       bool
	Readable           bool
	InheritedOwnership bool
}

// Object is a live interpreter object. Own-properties are iterated in
// insertion order via OwnPropertyKeys; class-specific intrinsic data
// (array length, function source, date epoch, regexp pattern/flags) is
// reached through the optional per-class interfaces below, which a
// concrete Object implements only for its own Class.
type Object interface {
	// Proto returns the prototype object, or a Value with Kind ==
	// KindNull if this object's prototype chain ends here.
	Proto() Value

	// Class reports which class-specific accessor interface, if any,
	// this object implements.
	Class() Class

	// OwnPropertyKeys returns this object's own-property names in
	// insertion order.
	OwnPropertyKeys() []string

	// GetOwnPropertyDescriptor returns the descriptor for an own
	// property, or ok == false if key is not an own property.
	GetOwnPropertyDescriptor(key string) (PropertyDescriptor, bool)

	// Get reads a property (own or inherited) as the given owner.
	Get(key string, owner Owner) Value
}

// ArrayObject is implemented by objects with Class() == ClassArray.
type ArrayObject interface {
	Object
	Length() int
}

// FunctionObject is implemented by objects with Class() == ClassFunction.
type FunctionObject interface {
	Object
	// IsUserDefined reports whether this function has JS source text.
	// Non-user-defined (native/built-in) functions cannot be serialized
	// inline — constructing one is a fatal SerializerError unless it is
	// also a recognized builtin (see BuiltinRegistry).
	IsUserDefined() bool
	// Source returns the function's verbatim source text. Only valid
	// when IsUserDefined() is true.
	Source() string
	// ClosureScope returns the scope this function closes over.
	ClosureScope() Scope
}

// DateObject is implemented by objects with Class() == ClassDate.
type DateObject interface {
	Object
	// EpochMillis returns milliseconds since the Unix epoch, UTC.
	EpochMillis() int64
}

// RegExpObject is implemented by objects with Class() == ClassRegExp.
type RegExpObject interface {
	Object
	Pattern() string
	Flags() string
}

// Scope is one link in the interpreter's scope chain. The global scope
// has Outer() == nil and HasBinding(name) true for every name the
// interpreter pre-declares.
type Scope interface {
	Get(name string) (Value, bool)
	HasBinding(name string) bool
	Outer() Scope
	// Names returns this scope's own variable names in declaration
	// order; the dump driver does not require insertion order here the
	// way it does for object properties, but declaration order makes
	// output deterministic.
	Names() []string
}

// BuiltinRegistry recovers the stable key of a built-in object — one
// that exists unconditionally in any fresh interpreter and so can be
// re-acquired by key instead of reconstructed (spec.md §4.4 step 3).
type BuiltinRegistry interface {
	KeyFor(o Object) (string, bool)
}

// Interpreter is the complete external collaborator spec.md §6 names.
type Interpreter interface {
	Global() Scope
	Root() Owner
	Builtins() BuiltinRegistry
	// ObjectPrototype is OBJECT in spec.md §6: the default Object
	// prototype, used to decide whether a plain object's proto needs an
	// explicit Object.create(...) call.
	ObjectPrototype() Object
}
