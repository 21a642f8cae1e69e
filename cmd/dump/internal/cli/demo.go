package cli

import (
	"github.com/codecity-go/heapdump/fixture"
	"github.com/codecity-go/heapdump/heap"
)

// demoInterpreter builds a small heap exercising every object class and
// the identity cases the engine cares about most (a shared reference and
// a self-cycle), the way driver_test.go's fixtures do — grounded on the
// same fixture package, since no production interpreter is embedded in
// this repository (see main.go's package doc).
func demoInterpreter() *fixture.Interpreter {
	ip := fixture.New()

	shared := ip.NewObject()
	shared.Define("tag", heap.Value{Kind: heap.KindString, Str: "shared"})

	self := ip.NewObject()
	self.Define("self", heap.Value{Kind: heap.KindObject, Object: self})

	arr := ip.NewArray()
	arr.Push(heap.Value{Kind: heap.KindNumber, Num: 1})
	arr.Push(heap.Value{Kind: heap.KindObject, Object: shared})

	fn := ip.NewFunction("function greet() { return 'hello'; }", nil)

	root := ip.NewObject()
	root.Define("shared", heap.Value{Kind: heap.KindObject, Object: shared})
	root.Define("items", heap.Value{Kind: heap.KindObject, Object: arr})
	root.Define("greet", heap.Value{Kind: heap.KindObject, Object: fn})
	root.Define("when", heap.Value{Kind: heap.KindObject, Object: ip.NewDate(0)})
	root.Define("pattern", heap.Value{Kind: heap.KindObject, Object: ip.NewRegExp("a+", "g")})

	ip.SetGlobal("root", heap.Value{Kind: heap.KindObject, Object: root})
	ip.SetGlobal("shared", heap.Value{Kind: heap.KindObject, Object: shared})
	ip.SetGlobal("cyclic", heap.Value{Kind: heap.KindObject, Object: self})

	return ip
}
