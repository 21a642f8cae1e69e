package serializer

import (
	"math"
	"testing"

	"github.com/codecity-go/heapdump/fixture"
	"github.com/codecity-go/heapdump/heap"
	"github.com/codecity-go/heapdump/registry"
	"github.com/codecity-go/heapdump/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCtx(ip *fixture.Interpreter) *Context {
	return &Context{
		Interp: ip,
		Reg:    registry.New(),
		Cursor: ip.Global(),
	}
}

func TestToExprPrimitives(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)

	cases := []struct {
		v    heap.Value
		want string
	}{
		{heap.Value{Kind: heap.KindUndefined}, "undefined"},
		{heap.Value{Kind: heap.KindNull}, "null"},
		{heap.Value{Kind: heap.KindBoolean, Bool: true}, "true"},
		{heap.Value{Kind: heap.KindNumber, Num: 3}, "3"},
		{heap.Value{Kind: heap.KindString, Str: "it's"}, `'it\'s'`},
	}
	for _, tc := range cases {
		got, err := c.ToExpr(tc.v, nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestToExprNegativeZeroAndSpecials(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)

	neg0, err := c.ToExpr(heap.Value{Kind: heap.KindNumber, Num: math.Copysign(0, -1)}, nil)
	require.NoError(t, err)
	assert.Equal(t, "-0", neg0)

	nan, err := c.ToExpr(heap.Value{Kind: heap.KindNumber, Num: math.NaN()}, nil)
	require.NoError(t, err)
	assert.Equal(t, "NaN", nan)
}

func TestToExprUndefinedShadowed(t *testing.T) {
	ip := fixture.New()
	inner := fixture.NewScope(ip.GlobalScope())
	inner.Set("undefined", heap.Value{Kind: heap.KindString, Str: "shadowed"})

	c := &Context{Interp: ip, Reg: registry.New(), Cursor: inner}
	got, err := c.ToExpr(heap.Value{Kind: heap.KindUndefined}, nil)
	require.NoError(t, err)
	assert.Equal(t, "(void 0)", got)
}

func TestToExprPlainObjectDefaultProto(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)
	obj := ip.NewObject()

	got, err := c.ToExpr(heap.Value{Kind: heap.KindObject, Object: obj}, selector.MustParts("a"))
	require.NoError(t, err)
	assert.Equal(t, "{}", got)
}

func TestToExprObjectCreateNull(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)
	obj := ip.NewObjectWithProto(heap.Value{Kind: heap.KindNull})

	got, err := c.ToExpr(heap.Value{Kind: heap.KindObject, Object: obj}, selector.MustParts("a"))
	require.NoError(t, err)
	assert.Equal(t, "Object.create(null)", got)
}

func TestToExprObjectReusesRefOnSecondEncounter(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)
	obj := ip.NewObject()
	v := heap.Value{Kind: heap.KindObject, Object: obj}

	first, err := c.ToExpr(v, selector.MustParts("a"))
	require.NoError(t, err)
	assert.Equal(t, "{}", first)

	second, err := c.ToExpr(v, selector.MustParts("b"))
	require.NoError(t, err)
	assert.Equal(t, "a", second)
}

func TestToExprNewObjectWithoutPartsIsFatal(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)
	obj := ip.NewObject()

	_, err := c.ToExpr(heap.Value{Kind: heap.KindObject, Object: obj}, nil)
	assert.Error(t, err)
}

func TestToExprBuiltinByKey(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)

	got, err := c.ToExpr(ip.ObjectPrototypeValue(), selector.MustParts("whatever"))
	require.NoError(t, err)
	assert.Equal(t, `new 'Object.prototype'`, got)
}

func TestToExprArray(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)
	arr := ip.NewArray()

	got, err := c.ToExpr(heap.Value{Kind: heap.KindObject, Object: arr}, selector.MustParts("a"))
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
}

func TestToExprUserDefinedFunction(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)
	fn := ip.NewFunction("function () { return 1; }", nil)

	got, err := c.ToExpr(heap.Value{Kind: heap.KindObject, Object: fn}, selector.MustParts("f"))
	require.NoError(t, err)
	assert.Equal(t, "function () { return 1; }", got)
}

func TestToExprNativeFunctionIsFatal(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)
	fn := ip.NewNativeFunction()

	_, err := c.ToExpr(heap.Value{Kind: heap.KindObject, Object: fn}, selector.MustParts("f"))
	assert.Error(t, err)
}

func TestToExprDate(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)
	d := ip.NewDate(0)

	got, err := c.ToExpr(heap.Value{Kind: heap.KindObject, Object: d}, selector.MustParts("d"))
	require.NoError(t, err)
	assert.Equal(t, "new Date('1970-01-01T00:00:00.000Z')", got)
}

func TestToExprObjectReusesRefThroughArrayIndex(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)
	shared := ip.NewObject()
	v := heap.Value{Kind: heap.KindObject, Object: shared}

	first, err := c.ToExpr(v, selector.MustParts("items.0"))
	require.NoError(t, err)
	assert.Equal(t, "{}", first)

	second, err := c.ToExpr(v, selector.MustParts("b"))
	require.NoError(t, err)
	assert.Equal(t, `items["0"]`, second)
}

func TestPropertyAccess(t *testing.T) {
	assert.Equal(t, "obj.name", PropertyAccess("obj", "name"))
	assert.Equal(t, `obj["0"]`, PropertyAccess("obj", "0"))
	assert.Equal(t, `obj["has space"]`, PropertyAccess("obj", "has space"))
	assert.Equal(t, "obj.$_weird9", PropertyAccess("obj", "$_weird9"))
}

func TestExprString(t *testing.T) {
	assert.Equal(t, `items["0"].name`, ExprString(selector.MustParts("items.0.name")))
	assert.Equal(t, "a.b.c", ExprString(selector.MustParts("a.b.c")))
}

func TestToExprRegExp(t *testing.T) {
	ip := fixture.New()
	c := newCtx(ip)
	re := ip.NewRegExp("a+", "g")

	got, err := c.ToExpr(heap.Value{Kind: heap.KindObject, Object: re}, selector.MustParts("r"))
	require.NoError(t, err)
	assert.Equal(t, "/a+/g", got)
}
