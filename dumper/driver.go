// Package dumper implements the binding dumper and dump driver of
// spec.md §4.5/§4.6: the state machine that walks a Config tree
// file-by-file, finalizes one binding at a time, resolves forward
// references, and preserves the declared property ordering.
package dumper

import (
	"fmt"
	"io"

	"github.com/codecity-go/heapdump/config"
	"github.com/codecity-go/heapdump/dumperrors"
	"github.com/codecity-go/heapdump/heap"
	"github.com/codecity-go/heapdump/registry"
	"github.com/codecity-go/heapdump/selector"
	"github.com/codecity-go/heapdump/serializer"
)

// FileOpener opens the output for one declared file. The dump driver
// opens files sequentially, in declared order, and never revisits one
// once its pass has finished (spec.md §5).
type FileOpener interface {
	Open(filename string) (io.WriteCloser, error)
}

// claim records, for an object reachable at an explicit top-level config
// path, the first such path found and the file that path's Config entry
// was declared in. It lets the driver answer "does this incidentally
// encountered object have a canonical home, and if so is it safe to
// construct it here" (spec.md §4.6 step 3) without needing a live
// reverse index baked into the heap itself.
type claim struct {
	parts selector.Parts
	file  int
}

// Driver owns one dump run: the registry, the interpreter, the resolved
// claim table, and the config tree. A Driver is used for exactly one
// Run call.
type Driver struct {
	interp heap.Interpreter
	reg    *registry.Registry
	tree   *config.Tree
	claims map[heap.Object]claim

	curFile   int
	curWriter io.Writer
}

// NewDriver creates a Driver for a single dump run against interp.
func NewDriver(interp heap.Interpreter) *Driver {
	return &Driver{
		interp: interp,
		reg:    registry.New(),
		claims: map[heap.Object]claim{},
	}
}

// Run drives the full dump: builds the Config tree, resolves the claim
// table, then opens and walks each declared file in order.
func (d *Driver) Run(spec []config.SpecEntry, out FileOpener) error {
	tree, err := config.BuildTree(spec)
	if err != nil {
		return err
	}
	d.tree = tree
	d.buildClaims(spec)

	for fileNo, entry := range spec {
		w, err := out.Open(entry.Filename)
		if err != nil {
			return fmt.Errorf("opening %s: %w", entry.Filename, err)
		}
		d.curFile = fileNo
		d.curWriter = w
		err = d.runFile(fileNo, entry)
		closeErr := w.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return fmt.Errorf("closing %s: %w", entry.Filename, closeErr)
		}
	}
	return nil
}

// buildClaims does one read-only pass over every explicit ContentEntry
// in the whole spec (regardless of which file declares it) and records,
// per object reached, the first non-PRUNE Parts path and claiming file
// that resolves to it. This is the "claimed location" spec.md §4.6 step
// 3 needs to forward-declare an incidentally encountered shared object.
func (d *Driver) buildClaims(spec []config.SpecEntry) {
	for fileNo, entry := range spec {
		for _, c := range entry.Contents {
			if c.Do == config.PRUNE {
				continue
			}
			parts, err := selector.ToParts(c.Path)
			if err != nil {
				continue
			}
			v, err := d.GetValueForParts(parts)
			if err != nil || !v.IsObject() {
				continue
			}
			if _, exists := d.claims[v.Object]; !exists {
				d.claims[v.Object] = claim{parts: parts.Clone(), file: fileNo}
			}
		}
	}
}

func (d *Driver) runFile(fileNo int, entry config.SpecEntry) error {
	for _, c := range entry.Contents {
		parts, err := selector.ToParts(c.Path)
		if err != nil {
			return err
		}
		if err := d.driveTo(parts, c.Do, c.Reorder); err != nil {
			return err
		}
	}
	if entry.Rest {
		for _, name := range d.interp.Global().Names() {
			parts := selector.Parts{name}
			do, reorder, has := d.tree.DoFor(parts)
			if !has {
				do, reorder = config.RECURSE, false
			} else if do == config.SKIP {
				// SKIP deferred this binding to the rest pass.
				do = config.RECURSE
			}
			if err := d.driveTo(parts, do, reorder); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetValueForParts traverses from the global scope per spec.md §4.5:
// parts[0] names a global variable; each subsequent part must be read as
// an own-or-inherited property of the value reached so far.
func (d *Driver) GetValueForParts(parts selector.Parts) (heap.Value, error) {
	if len(parts) == 0 {
		return heap.Value{}, &dumperrors.ConfigError{Reason: "empty Parts"}
	}
	global := d.interp.Global()
	v, ok := global.Get(parts[0])
	if !ok {
		return heap.Value{}, &dumperrors.StructureError{
			Reason: "no such global binding",
			Parts:  parts.Dumperrors(),
		}
	}
	for _, name := range parts[1:] {
		if !v.IsObject() {
			return heap.Value{}, &dumperrors.StructureError{
				Reason: "traversal through a non-object",
				Parts:  parts.Dumperrors(),
			}
		}
		v = v.Object.Get(name, d.interp.Root())
	}
	return v, nil
}

func (d *Driver) serializerCtx() *serializer.Context {
	global := d.interp.Global()
	return &serializer.Context{
		Interp:   d.interp,
		Reg:      d.reg,
		Cursor:   global,
		RefScope: global,
	}
}

func (d *Driver) writeln(s string) {
	fmt.Fprintln(d.curWriter, s)
}
