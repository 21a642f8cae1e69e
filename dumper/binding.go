package dumper

import (
	"fmt"

	"github.com/codecity-go/heapdump/config"
	"github.com/codecity-go/heapdump/dumperrors"
	"github.com/codecity-go/heapdump/heap"
	"github.com/codecity-go/heapdump/selector"
	"github.com/codecity-go/heapdump/serializer"
)

// driveTo brings one binding to at least the given Do level, emitting
// whatever statements that requires, then (for RECURSE) walking the
// object's own properties to the same level. It is the combination of
// spec.md §4.5's dumpBinding and the per-binding half of §4.6's driver
// loop; package dumper's per-file loop (runFile) is the other half.
func (d *Driver) driveTo(parts selector.Parts, target config.Do, reorder bool) error {
	switch target {
	case config.PRUNE:
		d.markDone(parts, config.PRUNE)
		return nil
	case config.SKIP:
		return nil
	}

	current := d.currentDo(parts)
	if current >= target {
		return nil
	}

	if len(parts) > 1 {
		ownerParts, _ := parts.Parent()
		if err := d.driveTo(ownerParts, config.DECL, false); err != nil {
			return err
		}
	}

	v, err := d.GetValueForParts(parts)
	if err != nil {
		return err
	}
	if err := d.prepareReferencedValue(v, parts); err != nil {
		return err
	}
	if err := d.emitBinding(parts, current, target, v); err != nil {
		return err
	}

	if target == config.RECURSE && v.IsObject() {
		if err := d.recurseProperties(parts, v.Object, reorder); err != nil {
			return err
		}
	}
	return nil
}

// prepareReferencedValue implements the forward-declaration-at-claimed-
// location rule of spec.md §4.6 step 3: if v is an object with no ref
// yet, but has a canonical claimed path elsewhere in the config (and
// that path isn't the very binding currentParts already being driven),
// the claimed path's declaration must be emitted now — in the current
// file — before v can be embedded in an expression.
func (d *Driver) prepareReferencedValue(v heap.Value, currentParts selector.Parts) error {
	if !v.IsObject() {
		return nil
	}
	info := d.reg.ObjectInfo(v.Object)
	if info.HasRef() {
		return nil
	}
	cl, ok := d.claims[v.Object]
	if !ok {
		return nil
	}
	if cl.parts.Equal(currentParts) {
		return nil
	}
	if cl.file < d.curFile {
		return &dumperrors.OrderingError{
			Parts:       cl.parts.Dumperrors(),
			ClaimedFile: cl.file,
			CurrentFile: d.curFile,
		}
	}
	return d.driveTo(cl.parts, config.DECL, false)
}

// emitBinding writes the single statement that advances parts from
// current to target, per spec.md §4.5 steps 1-4.
//
// DECL on a primitive-valued binding writes a literal undefined
// placeholder and nothing more is written until something requests
// SET. DECL on an object-valued binding must construct the real shell
// immediately (toExpr's step-3/4 construction, which is also how its
// ref gets established) — there is no meaningful "undefined" stand-in
// for an object identity that other bindings may need to reference
// before this one reaches SET (see DESIGN.md's Open Question notes).
func (d *Driver) emitBinding(parts selector.Parts, current, target config.Do, v heap.Value) error {
	wasDeclared := current >= config.DECL
	d.markDone(parts, target)

	if wasDeclared {
		if v.IsObject() {
			// The shell already exists and already carries the
			// identity every later reference needs; nothing further
			// to assign for the binding itself. Attribute
			// finalization (below) is independent of this.
		} else if current == config.DECL && target >= config.SET {
			expr, err := d.serializerCtx().ToExpr(v, parts)
			if err != nil {
				return err
			}
			d.writeln(d.assignText(parts, expr, false))
		}
	} else {
		var expr string
		var err error
		if target == config.DECL && !v.IsObject() {
			expr = "undefined"
		} else {
			expr, err = d.serializerCtx().ToExpr(v, parts)
			if err != nil {
				return err
			}
		}
		d.writeln(d.assignText(parts, expr, true))
	}

	if target >= config.SET && len(parts) > 1 {
		if err := d.finalizeAttributes(parts); err != nil {
			return err
		}
	}
	return nil
}

// assignText renders the LHS of a binding statement. For a property,
// the LHS names the owner through its established reference expression
// (not the literal owner Parts text), since a shared owner's ref may
// differ from the path this particular property happened to be
// discovered through.
func (d *Driver) assignText(parts selector.Parts, expr string, declare bool) string {
	if len(parts) == 1 {
		if declare {
			return fmt.Sprintf("var %s = %s;", parts[0], expr)
		}
		return fmt.Sprintf("%s = %s;", parts[0], expr)
	}
	ownerParts, prop := parts.Parent()
	ownerVal, err := d.GetValueForParts(ownerParts)
	lhs := serializer.ExprString(ownerParts)
	if err == nil && ownerVal.IsObject() {
		if ref := d.reg.ObjectInfo(ownerVal.Object).Ref; ref != nil {
			lhs = serializer.ExprString(ref)
		}
	}
	return fmt.Sprintf("%s = %s;", serializer.PropertyAccess(lhs, prop), expr)
}

func (d *Driver) currentDo(parts selector.Parts) config.Do {
	if len(parts) == 1 {
		return d.reg.ScopeInfo(d.interp.Global()).Done(parts[0])
	}
	ownerParts, prop := parts.Parent()
	ownerVal, err := d.GetValueForParts(ownerParts)
	if err != nil || !ownerVal.IsObject() {
		return 0
	}
	return d.reg.ObjectInfo(ownerVal.Object).Done(prop)
}

func (d *Driver) markDone(parts selector.Parts, lvl config.Do) {
	if len(parts) == 1 {
		d.reg.ScopeInfo(d.interp.Global()).Bump(parts[0], lvl)
		return
	}
	ownerParts, prop := parts.Parent()
	ownerVal, err := d.GetValueForParts(ownerParts)
	if err != nil || !ownerVal.IsObject() {
		return
	}
	d.reg.ObjectInfo(ownerVal.Object).Bump(prop, lvl)
}
