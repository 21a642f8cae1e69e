// Package serializer implements toExpr (spec.md §4.4): converting a live
// heap.Value into source text that, evaluated in the target interpreter
// at the current dump cursor, yields an observably equivalent value.
package serializer

import (
	"fmt"
	"math"
	"strconv"
	"time"
	"unicode"

	"github.com/codecity-go/heapdump/dumperrors"
	"github.com/codecity-go/heapdump/heap"
	"github.com/codecity-go/heapdump/registry"
	"github.com/codecity-go/heapdump/selector"
	"github.com/codecity-go/heapdump/shadow"
)

// Context carries everything ToExpr needs besides the value itself: the
// interpreter collaborator (for the default Object prototype and the
// builtin registry), the BindingInfo registry (for identity / ref
// lookup), and the scope cursor the shadowing oracle checks against.
type Context struct {
	Interp heap.Interpreter
	Reg    *registry.Registry
	Cursor heap.Scope
	// RefScope is the enclosing reference scope the shadowing oracle
	// stops at; nil means the global scope (spec.md §4.6 default).
	RefScope heap.Scope
}

// ToExpr implements the exclusive decision order of spec.md §4.4.
//
// parts is the Parts at which v is about to be stored, or nil if v is
// being read only to be embedded inline (e.g. as a prototype reference)
// with no binding of its own. Constructing a new, not-yet-seen object
// with parts == nil is a fatal SerializerError.
func (c *Context) ToExpr(v heap.Value, parts selector.Parts) (string, error) {
	if !v.IsObject() {
		return c.primitive(v, parts)
	}
	return c.object(v.Object, parts)
}

func (c *Context) primitive(v heap.Value, parts selector.Parts) (string, error) {
	switch v.Kind {
	case heap.KindUndefined:
		if shadow.IsShadowed(c.Cursor, "undefined", c.RefScope) {
			return "(void 0)", nil
		}
		return "undefined", nil
	case heap.KindNull:
		return "null", nil
	case heap.KindBoolean:
		if v.Bool {
			return "true", nil
		}
		return "false", nil
	case heap.KindNumber:
		return c.number(v.Num), nil
	case heap.KindString:
		return quoteString(v.Str), nil
	default:
		return "", &dumperrors.SerializerError{
			Reason: "unknown primitive kind",
			Parts:  parts.Dumperrors(),
		}
	}
}

func (c *Context) number(n float64) string {
	switch {
	case math.IsNaN(n):
		if shadow.IsShadowed(c.Cursor, "NaN", c.RefScope) {
			return "(0/0)"
		}
		return "NaN"
	case math.IsInf(n, 1):
		if shadow.IsShadowed(c.Cursor, "Infinity", c.RefScope) {
			return "(1/0)"
		}
		return "Infinity"
	case math.IsInf(n, -1):
		if shadow.IsShadowed(c.Cursor, "Infinity", c.RefScope) {
			return "(-1/0)"
		}
		return "-Infinity"
	case n == 0 && math.Signbit(n):
		return "-0"
	default:
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
}

// quoteString renders s as a single-quoted JS string literal, escaping
// the characters that would otherwise break out of the literal or be
// reinterpreted by the target parser. Round-tripping through the target
// parser is the only correctness bar spec.md §4.4 sets for this
// collaborator.
// QuoteString renders s as a single-quoted JS string literal. It is
// exported for package dumper's use when rendering property keys and
// owner identifiers in Object.defineProperty calls, which need the same
// quoting rules as any other string value.
func QuoteString(s string) string {
	return quoteString(s)
}

func quoteString(s string) string {
	return quoteWith(s, '\'')
}

// quoteWith renders s as a JS string literal delimited by quote.
func quoteWith(s string, quote rune) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, byte(quote))
	for _, r := range s {
		switch r {
		case quote:
			out = append(out, '\\', byte(quote))
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\u2028':
			out = append(out, '\\', 'u', '2', '0', '2', '8')
		case '\u2029':
			out = append(out, '\\', 'u', '2', '0', '2', '9')
		case 0:
			out = append(out, '\\', '0')
		default:
			out = append(out, []byte(string(r))...)
		}
	}
	out = append(out, byte(quote))
	return string(out)
}

// isIdentifier reports whether s is a valid ECMAScript identifier name,
// i.e. safe to follow a "." in a member expression. Array elements are
// own-properties keyed "0", "1", ... (heap.ArrayObject), which are not
// identifiers, so they must never be rendered as obj.0.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
			continue
		case i > 0 && unicode.IsDigit(r):
			continue
		default:
			return false
		}
	}
	return true
}

// PropertyAccess renders a member access on owner for prop, using dot
// notation when prop is a valid identifier and bracket notation with a
// double-quoted key otherwise (array indices, and any other
// non-identifier own property name).
func PropertyAccess(owner, prop string) string {
	if isIdentifier(prop) {
		return owner + "." + prop
	}
	return owner + "[" + quoteWith(prop, '"') + "]"
}

// ExprString renders parts as the source text of the member expression
// it names: the first element is a bare identifier (a global variable),
// and each subsequent element is folded on via PropertyAccess. Unlike
// selector.Parts.String, which just joins with ".", this is safe to use
// for any Parts a dump may emit, including ones that pass through an
// array index.
func ExprString(parts selector.Parts) string {
	if len(parts) == 0 {
		return ""
	}
	expr := parts[0]
	for _, p := range parts[1:] {
		expr = PropertyAccess(expr, p)
	}
	return expr
}

func (c *Context) object(obj heap.Object, parts selector.Parts) (string, error) {
	info := c.Reg.ObjectInfo(obj)

	// Step 2: already emitted.
	if info.HasRef() {
		return ExprString(info.Ref), nil
	}

	// Step 3: built-in, recovered by key rather than reconstructed.
	if key, ok := c.Interp.Builtins().KeyFor(obj); ok {
		if parts != nil {
			info.SetRef(parts)
		}
		return fmt.Sprintf("new %s", quoteString(key)), nil
	}

	// Step 4: a genuinely new object. It must be nameable.
	if parts == nil {
		return "", &dumperrors.SerializerError{
			Reason: "cannot construct a non-referable object inline",
		}
	}
	info.SetRef(parts)

	switch obj.Class() {
	case heap.ClassPlainObject:
		return c.plainObject(obj, parts)
	case heap.ClassArray:
		return "[]", nil
	case heap.ClassFunction:
		fn, ok := obj.(heap.FunctionObject)
		if !ok || !fn.IsUserDefined() {
			return "", &dumperrors.SerializerError{
				Reason: "function is not user-defined",
				Parts:  parts.Dumperrors(),
			}
		}
		return fn.Source(), nil
	case heap.ClassDate:
		date, ok := obj.(heap.DateObject)
		if !ok {
			return "", &dumperrors.SerializerError{Reason: "date object missing epoch accessor", Parts: parts.Dumperrors()}
		}
		t := time.UnixMilli(date.EpochMillis()).UTC()
		return fmt.Sprintf("new Date(%s)", quoteString(t.Format("2006-01-02T15:04:05.000Z"))), nil
	case heap.ClassRegExp:
		re, ok := obj.(heap.RegExpObject)
		if !ok {
			return "", &dumperrors.SerializerError{Reason: "regexp object missing pattern accessor", Parts: parts.Dumperrors()}
		}
		return fmt.Sprintf("/%s/%s", re.Pattern(), re.Flags()), nil
	default:
		return "", &dumperrors.SerializerError{
			Reason: "unknown object class",
			Parts:  parts.Dumperrors(),
		}
	}
}

func (c *Context) plainObject(obj heap.Object, parts selector.Parts) (string, error) {
	proto := obj.Proto()
	switch {
	case proto.Kind == heap.KindNull:
		return "Object.create(null)", nil
	case proto.IsObject() && proto.Object == c.Interp.ObjectPrototype():
		return "{}", nil
	case proto.IsObject():
		protoExpr, err := c.ToExpr(proto, nil)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Object.create(%s)", protoExpr), nil
	default:
		return "{}", nil
	}
}
