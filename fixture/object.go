package fixture

import (
	"strconv"

	"github.com/codecity-go/heapdump/heap"
	"github.com/codecity-go/heapdump/orderedmap"
)

// Object is fixture's concrete heap.Object: a prototype link, a class
// tag, and own-properties stored in an insertion-ordered map so
// OwnPropertyKeys reflects declaration order the way a real
// interpreter's property table would.
type Object struct {
	proto heap.Value
	class heap.Class
	props orderedmap.Map[string, heap.PropertyDescriptor]
}

func newObject(proto heap.Value, class heap.Class) *Object {
	return &Object{proto: proto, class: class, props: orderedmap.New[string, heap.PropertyDescriptor]()}
}

func (o *Object) Proto() heap.Value { return o.proto }
func (o *Object) Class() heap.Class { return o.class }

func (o *Object) OwnPropertyKeys() []string {
	return o.props.Keys()
}

func (o *Object) GetOwnPropertyDescriptor(key string) (heap.PropertyDescriptor, bool) {
	return o.props.Get(key)
}

// Get reads key, walking the prototype chain if key is not an own
// property. The owner argument is accepted to satisfy heap.Object;
// fixture has no access control to enforce with it.
func (o *Object) Get(key string, owner heap.Owner) heap.Value {
	if desc, ok := o.props.Get(key); ok {
		return desc.Value
	}
	if o.proto.IsObject() {
		return o.proto.Object.Get(key, owner)
	}
	return heap.Value{Kind: heap.KindUndefined}
}

// Define sets an own property with the all-true default attributes, the
// shape a plain assignment (obj.x = v) produces in real JS.
func (o *Object) Define(key string, v heap.Value) {
	o.props.Set(key, heap.PropertyDescriptor{
		Value:        v,
		Owner:        ROOT,
		Writable:     true,
		Enumerable:   true,
		Configurable: true,
		Readable:     true,
	})
}

// DefineFull sets an own property with an arbitrary descriptor, for
// tests exercising non-default attributes and the extended owner /
// readable / inheritedOwnership form.
func (o *Object) DefineFull(key string, desc heap.PropertyDescriptor) {
	o.props.Set(key, desc)
}

// NewObject creates a plain object whose prototype is ip's default
// Object.prototype.
func (ip *Interpreter) NewObject() *Object {
	return newObject(ip.ObjectPrototypeValue(), heap.ClassPlainObject)
}

// NewObjectWithProto creates a plain object with an explicit prototype
// value (heap.Value{Kind: heap.KindNull} for Object.create(null)).
func (ip *Interpreter) NewObjectWithProto(proto heap.Value) *Object {
	return newObject(proto, heap.ClassPlainObject)
}

// Array is fixture's heap.ArrayObject. Length is tracked independently
// of own-properties, matching the engine's intrinsic-length assumption
// (SPEC_FULL.md §4) rather than storing "length" as a regular property.
type Array struct {
	*Object
	length int
}

func (a *Array) Length() int { return a.length }

// NewArray creates an empty array whose prototype is ip's default
// Object.prototype (fixture does not model a distinct Array.prototype).
func (ip *Interpreter) NewArray() *Array {
	return &Array{Object: newObject(ip.ObjectPrototypeValue(), heap.ClassArray)}
}

// Push appends v as the next indexed own property and advances Length.
func (a *Array) Push(v heap.Value) {
	a.Define(strconv.Itoa(a.length), v)
	a.length++
}

// Function is fixture's heap.FunctionObject.
type Function struct {
	*Object
	userDefined bool
	source      string
	closure     *Scope
}

func (f *Function) IsUserDefined() bool { return f.userDefined }
func (f *Function) Source() string      { return f.source }
func (f *Function) ClosureScope() heap.Scope {
	if f.closure == nil {
		return nil
	}
	return f.closure
}

// NewFunction creates a user-defined function with the given verbatim
// source text, closing over closure (nil for the global scope).
func (ip *Interpreter) NewFunction(source string, closure *Scope) *Function {
	return &Function{
		Object:      newObject(ip.ObjectPrototypeValue(), heap.ClassFunction),
		userDefined: true,
		source:      source,
		closure:     closure,
	}
}

// NewNativeFunction creates a non-user-defined function — a stand-in for
// a builtin method. Serializing one inline (rather than via
// BuiltinRegistry) is a fatal SerializerError, by design.
func (ip *Interpreter) NewNativeFunction() *Function {
	return &Function{Object: newObject(ip.ObjectPrototypeValue(), heap.ClassFunction)}
}

// Date is fixture's heap.DateObject.
type Date struct {
	*Object
	epochMillis int64
}

func (d *Date) EpochMillis() int64 { return d.epochMillis }

func (ip *Interpreter) NewDate(epochMillis int64) *Date {
	return &Date{Object: newObject(ip.ObjectPrototypeValue(), heap.ClassDate), epochMillis: epochMillis}
}

// RegExp is fixture's heap.RegExpObject.
type RegExp struct {
	*Object
	pattern string
	flags   string
}

func (r *RegExp) Pattern() string { return r.pattern }
func (r *RegExp) Flags() string   { return r.flags }

func (ip *Interpreter) NewRegExp(pattern, flags string) *RegExp {
	return &RegExp{Object: newObject(ip.ObjectPrototypeValue(), heap.ClassRegExp), pattern: pattern, flags: flags}
}
