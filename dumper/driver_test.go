package dumper

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/codecity-go/heapdump/config"
	"github.com/codecity-go/heapdump/dumperrors"
	"github.com/codecity-go/heapdump/fixture"
	"github.com/codecity-go/heapdump/heap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memFiles is a FileOpener backed by in-memory buffers, keyed by
// filename, so tests can assert on exactly what each declared file
// received.
type memFiles struct {
	buf map[string]*bytes.Buffer
}

func newMemFiles() *memFiles { return &memFiles{buf: map[string]*bytes.Buffer{}} }

func (m *memFiles) Open(filename string) (io.WriteCloser, error) {
	b := &bytes.Buffer{}
	m.buf[filename] = b
	return nopCloser{b}, nil
}

type nopCloser struct{ *bytes.Buffer }

func (nopCloser) Close() error { return nil }

func TestDriverRunSimpleObjectGraph(t *testing.T) {
	ip := fixture.New()
	root := ip.NewObject()
	root.Define("name", heap.Value{Kind: heap.KindString, Str: "codecity"})
	ip.SetGlobal("root", heap.Value{Kind: heap.KindObject, Object: root})

	spec := []config.SpecEntry{
		{Filename: "main.js", Rest: true},
	}

	out := newMemFiles()
	err := NewDriver(ip).Run(spec, out)
	require.NoError(t, err)

	got := out.buf["main.js"].String()
	assert.Contains(t, got, "var root = {};")
	assert.Contains(t, got, "root.name = 'codecity';")
}

func TestDriverForwardDeclaresSharedObject(t *testing.T) {
	ip := fixture.New()
	shared := ip.NewObject()
	shared.Define("tag", heap.Value{Kind: heap.KindString, Str: "shared"})

	a := ip.NewObject()
	a.Define("link", heap.Value{Kind: heap.KindObject, Object: shared})
	b := ip.NewObject()
	b.Define("link", heap.Value{Kind: heap.KindObject, Object: shared})

	ip.SetGlobal("a", heap.Value{Kind: heap.KindObject, Object: a})
	ip.SetGlobal("b", heap.Value{Kind: heap.KindObject, Object: b})
	ip.SetGlobal("shared", heap.Value{Kind: heap.KindObject, Object: shared})

	spec := []config.SpecEntry{
		{Filename: "main.js", Contents: []config.ContentEntry{
			{Path: "a", Do: config.RECURSE},
			{Path: "b", Do: config.RECURSE},
			{Path: "shared", Do: config.RECURSE},
		}},
	}

	out := newMemFiles()
	err := NewDriver(ip).Run(spec, out)
	require.NoError(t, err)

	got := out.buf["main.js"].String()
	lines := strings.Split(strings.TrimSpace(got), "\n")

	declIdx := indexOfPrefix(lines, "var shared =")
	linkIdx := indexOfPrefix(lines, "a.link =")
	require.NotEqual(t, -1, declIdx)
	require.NotEqual(t, -1, linkIdx)
	assert.Less(t, declIdx, linkIdx, "shared must be declared before it is referenced")
	assert.Contains(t, got, "a.link = shared;")
	assert.Contains(t, got, "b.link = shared;")
}

func TestDriverPruneExcludesSubtree(t *testing.T) {
	ip := fixture.New()
	root := ip.NewObject()
	root.Define("public", heap.Value{Kind: heap.KindString, Str: "ok"})
	root.Define("secret", heap.Value{Kind: heap.KindString, Str: "nope"})
	ip.SetGlobal("root", heap.Value{Kind: heap.KindObject, Object: root})

	spec := []config.SpecEntry{
		{Filename: "main.js", Contents: []config.ContentEntry{
			{Path: "root", Do: config.RECURSE},
			{Path: "root.secret", Do: config.PRUNE},
		}},
	}

	out := newMemFiles()
	err := NewDriver(ip).Run(spec, out)
	require.NoError(t, err)

	got := out.buf["main.js"].String()
	assert.Contains(t, got, "root.public = 'ok';")
	assert.NotContains(t, got, "secret")
}

func TestDriverForwardDeclaresIntoEarlierFileWhenClaimedLater(t *testing.T) {
	ip := fixture.New()
	shared := ip.NewObject()
	a := ip.NewObject()
	a.Define("link", heap.Value{Kind: heap.KindObject, Object: shared})

	ip.SetGlobal("a", heap.Value{Kind: heap.KindObject, Object: a})
	ip.SetGlobal("shared", heap.Value{Kind: heap.KindObject, Object: shared})

	// shared is claimed by a *later* file than the one referencing it
	// through a.link, which is still fine: a later claim can always be
	// pulled forward into an earlier file's output.
	fullSpec := []config.SpecEntry{
		{Filename: "first.js", Contents: []config.ContentEntry{
			{Path: "a", Do: config.RECURSE},
		}},
		{Filename: "second.js", Contents: []config.ContentEntry{
			{Path: "shared", Do: config.RECURSE},
		}},
	}

	out := newMemFiles()
	err := NewDriver(ip).Run(fullSpec, out)
	require.NoError(t, err)
	assert.Contains(t, out.buf["first.js"].String(), "var shared")
}

func TestDriverOrderingErrorWhenEarlierFileSkipsItsClaim(t *testing.T) {
	ip := fixture.New()
	shared := ip.NewObject()
	a := ip.NewObject()
	a.Define("link", heap.Value{Kind: heap.KindObject, Object: shared})

	ip.SetGlobal("a", heap.Value{Kind: heap.KindObject, Object: a})
	ip.SetGlobal("shared", heap.Value{Kind: heap.KindObject, Object: shared})

	// first.js claims shared (via an explicit, non-PRUNE entry) but
	// defers it with SKIP instead of declaring it; second.js needs
	// shared's identity before first.js ever produced it.
	fullSpec := []config.SpecEntry{
		{Filename: "first.js", Contents: []config.ContentEntry{
			{Path: "shared", Do: config.SKIP},
		}},
		{Filename: "second.js", Contents: []config.ContentEntry{
			{Path: "a", Do: config.RECURSE},
		}},
	}

	out := newMemFiles()
	err := NewDriver(ip).Run(fullSpec, out)
	require.Error(t, err)
	assert.IsType(t, &dumperrors.OrderingError{}, err)
}

func TestDriverArrayElementsUseBracketNotation(t *testing.T) {
	ip := fixture.New()
	arr := ip.NewArray()
	arr.Push(heap.Value{Kind: heap.KindNumber, Num: 1})
	arr.Push(heap.Value{Kind: heap.KindNumber, Num: 2})
	ip.SetGlobal("items", heap.Value{Kind: heap.KindObject, Object: arr})

	spec := []config.SpecEntry{
		{Filename: "main.js", Contents: []config.ContentEntry{
			{Path: "items", Do: config.RECURSE},
		}},
	}

	out := newMemFiles()
	err := NewDriver(ip).Run(spec, out)
	require.NoError(t, err)

	got := out.buf["main.js"].String()
	assert.Contains(t, got, "var items = [];")
	assert.Contains(t, got, "items[\"0\"] = 1;")
	assert.Contains(t, got, "items[\"1\"] = 2;")
	assert.NotContains(t, got, "items.0")
	assert.NotContains(t, got, "items.1")
}

func TestDriverReferenceThroughArrayIndexUsesBracketNotation(t *testing.T) {
	ip := fixture.New()
	shared := ip.NewObject()
	shared.Define("tag", heap.Value{Kind: heap.KindString, Str: "shared"})
	arr := ip.NewArray()
	arr.Push(heap.Value{Kind: heap.KindObject, Object: shared})
	ip.SetGlobal("items", heap.Value{Kind: heap.KindObject, Object: arr})
	ip.SetGlobal("shared", heap.Value{Kind: heap.KindObject, Object: shared})

	// shared has no explicit entry of its own, so it is first constructed
	// at items[0]; the rest pass then names the global through that ref.
	spec := []config.SpecEntry{
		{Filename: "main.js", Rest: true, Contents: []config.ContentEntry{
			{Path: "items", Do: config.RECURSE},
		}},
	}

	out := newMemFiles()
	err := NewDriver(ip).Run(spec, out)
	require.NoError(t, err)

	got := out.buf["main.js"].String()
	assert.Contains(t, got, "var shared = items[\"0\"];")
}

func TestDriverGlobalPreBoundNamesAreNeverTreatedAsShadowed(t *testing.T) {
	ip := fixture.New()
	// A conforming interpreter's global scope pre-binds undefined, NaN
	// and Infinity (spec.md §6); the shadowing oracle must not treat
	// the global reference scope's own bindings as shadowing.
	ip.SetGlobal("undefined", heap.Value{Kind: heap.KindUndefined})
	ip.SetGlobal("NaN", heap.Value{Kind: heap.KindNumber, Num: math.NaN()})
	ip.SetGlobal("Infinity", heap.Value{Kind: heap.KindNumber, Num: math.Inf(1)})

	ip.SetGlobal("w", heap.Value{Kind: heap.KindUndefined})
	ip.SetGlobal("z", heap.Value{Kind: heap.KindNumber, Num: math.NaN()})
	ip.SetGlobal("inf", heap.Value{Kind: heap.KindNumber, Num: math.Inf(1)})

	spec := []config.SpecEntry{
		{Filename: "main.js", Contents: []config.ContentEntry{
			{Path: "w", Do: config.SET},
			{Path: "z", Do: config.SET},
			{Path: "inf", Do: config.SET},
		}},
	}

	out := newMemFiles()
	err := NewDriver(ip).Run(spec, out)
	require.NoError(t, err)

	got := out.buf["main.js"].String()
	assert.Contains(t, got, "var w = undefined;")
	assert.Contains(t, got, "var z = NaN;")
	assert.Contains(t, got, "var inf = Infinity;")
	assert.NotContains(t, got, "(void 0)")
	assert.NotContains(t, got, "(0/0)")
	assert.NotContains(t, got, "(1/0)")
}

func indexOfPrefix(lines []string, prefix string) int {
	for i, l := range lines {
		if strings.HasPrefix(l, prefix) {
			return i
		}
	}
	return -1
}
