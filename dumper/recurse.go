package dumper

import (
	"fmt"

	"github.com/codecity-go/heapdump/config"
	"github.com/codecity-go/heapdump/dumperrors"
	"github.com/codecity-go/heapdump/heap"
	"github.com/codecity-go/heapdump/selector"
	"github.com/codecity-go/heapdump/serializer"
)

// recurseProperties walks obj's own properties in declared insertion
// order (spec.md §3's ordering invariant) and drives each one to its
// own Do level: an explicit per-property override from the Config
// tree if present, otherwise RECURSE inheriting the parent's reorder
// flag.
//
// Array length is intrinsic, not an ordinary own property (SPEC_FULL.md
// §4's supplemented-features note), so it never appears here; a
// conforming heap.ArrayObject simply never lists "length" among
// OwnPropertyKeys.
func (d *Driver) recurseProperties(parts selector.Parts, obj heap.Object, reorder bool) error {
	keys := obj.OwnPropertyKeys()

	type deferredKey struct {
		key string
		do  config.Do
	}
	var deferred []deferredKey

	for _, key := range keys {
		childParts := append(parts.Clone(), key)
		do, childReorder, explicit := d.childDirective(childParts, reorder)
		if !explicit {
			childReorder = reorder
		}
		if do == config.PRUNE {
			d.markDone(childParts, config.PRUNE)
			continue
		}
		err := d.driveTo(childParts, do, childReorder)
		if err == nil {
			continue
		}
		if _, ok := err.(*dumperrors.OrderingError); ok && childReorder {
			deferred = append(deferred, deferredKey{key: key, do: do})
			continue
		}
		return err
	}

	for _, dk := range deferred {
		childParts := append(parts.Clone(), dk.key)
		if err := d.driveTo(childParts, dk.do, false); err != nil {
			return err
		}
	}
	return nil
}

// childDirective resolves the Do/reorder directive for one own
// property, consulting the Config tree for an explicit override (e.g.
// a nested PRUNE under a RECURSE parent) before falling back to
// inheriting RECURSE and the parent's reorder flag.
func (d *Driver) childDirective(childParts selector.Parts, parentReorder bool) (config.Do, bool, bool) {
	do, reorder, hasDirective := d.tree.DoFor(childParts)
	if hasDirective {
		return do, reorder, true
	}
	return config.RECURSE, parentReorder, false
}

// finalizeAttributes emits an Object.defineProperty call for parts if
// its live descriptor differs from the default a bare assignment would
// have produced. This only ever runs once a property has reached SET
// or RECURSE (emitBinding's call site), matching spec.md's "attributes
// finalized, including configurable:false, only at the step that
// commits the real value" rule.
func (d *Driver) finalizeAttributes(parts selector.Parts) error {
	ownerParts, prop := parts.Parent()
	ownerVal, err := d.GetValueForParts(ownerParts)
	if err != nil || !ownerVal.IsObject() {
		return &dumperrors.StructureError{
			Reason: "property owner is not an object",
			Parts:  parts.Dumperrors(),
		}
	}
	desc, ok := ownerVal.Object.GetOwnPropertyDescriptor(prop)
	if !ok {
		return &dumperrors.StructureError{
			Reason: "property vanished before attributes could be finalized",
			Parts:  parts.Dumperrors(),
		}
	}
	if isDefaultDescriptor(desc) {
		return nil
	}

	ownerExpr := serializer.ExprString(ownerParts)
	if ref := d.reg.ObjectInfo(ownerVal.Object).Ref; ref != nil {
		ownerExpr = serializer.ExprString(ref)
	}
	call, err := d.defineDescriptorCall(ownerExpr, prop, desc)
	if err != nil {
		return err
	}
	d.writeln(call)
	return nil
}

func isDefaultDescriptor(desc heap.PropertyDescriptor) bool {
	return desc.Writable && desc.Enumerable && desc.Configurable &&
		desc.Readable && !desc.InheritedOwnership &&
		(desc.Owner == nil || desc.Owner.IsRoot())
}

// defineDescriptorCall renders the Object.defineProperty call for a
// non-default descriptor. When owner, readable or inheritedOwnership
// departs from its implicit default, the extended descriptor form
// carries all three alongside the standard attributes, per spec.md's
// note that a complete dump must be able to reconstruct CodeCity's
// ownership model, not just ECMAScript's three boolean attributes.
func (d *Driver) defineDescriptorCall(ownerExpr, prop string, desc heap.PropertyDescriptor) (string, error) {
	valueExpr, err := d.serializerCtx().ToExpr(desc.Value, nil)
	if err != nil {
		return "", err
	}
	extended := desc.Owner != nil && !desc.Owner.IsRoot() || !desc.Readable || desc.InheritedOwnership
	if !extended {
		return fmt.Sprintf(
			"Object.defineProperty(%s, %s, {value: %s, writable: %t, enumerable: %t, configurable: %t});",
			ownerExpr, serializer.QuoteString(prop), valueExpr, desc.Writable, desc.Enumerable, desc.Configurable,
		), nil
	}
	return fmt.Sprintf(
		"Object.defineProperty(%s, %s, {value: %s, writable: %t, enumerable: %t, configurable: %t, owner: %s, readable: %t, inheritedOwnership: %t});",
		ownerExpr, serializer.QuoteString(prop), valueExpr, desc.Writable, desc.Enumerable, desc.Configurable,
		ownerExprText(desc.Owner), desc.Readable, desc.InheritedOwnership,
	), nil
}

func ownerExprText(o heap.Owner) string {
	if o == nil || o.IsRoot() {
		return "ROOT"
	}
	if s, ok := o.(fmt.Stringer); ok {
		return serializer.QuoteString(s.String())
	}
	return "null"
}
