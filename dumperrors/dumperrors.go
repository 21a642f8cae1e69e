// Package dumperrors defines the fatal error kinds the dump engine can
// raise. Every dump either completes or fails immediately (spec.md §7);
// there is no partial dump and no local recovery, so each kind here
// carries enough context — the offending selector Parts, and sometimes a
// file index — for the caller to report exactly where the dump stopped.
package dumperrors

import (
	"fmt"
	"strings"
)

// Parts is duplicated here (rather than imported from package selector)
// to keep this package free of a dependency on the rest of the engine;
// selector.Parts is defined as the same underlying type and the two
// convert freely.
type Parts []string

func (p Parts) String() string {
	return strings.Join(p, ".")
}

// ConfigError reports a problem with the config spec itself: more than
// one SpecEntry claiming rest:true, an empty Parts selector, or a
// malformed selector string.
type ConfigError struct {
	Reason string
	Parts  Parts
}

func (e *ConfigError) Error() string {
	if len(e.Parts) == 0 {
		return fmt.Sprintf("config error: %s", e.Reason)
	}
	return fmt.Sprintf("config error: %s (%s)", e.Reason, e.Parts)
}

// StructureError reports a traversal through a non-object where an
// object was required — a property set on a primitive, or a Parts path
// that walks through a value that isn't an InterpreterObject.
type StructureError struct {
	Reason string
	Parts  Parts
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure error: %s (%s)", e.Reason, e.Parts)
}

// SerializerError reports a value the serializer cannot turn into an
// expression: an object under construction with no Parts to refer to it
// by, a non-user-defined function, or a primitive of unrecognized kind.
type SerializerError struct {
	Reason string
	Parts  Parts
}

func (e *SerializerError) Error() string {
	return fmt.Sprintf("serializer error: %s (%s)", e.Reason, e.Parts)
}

// OrderingError reports a reference to an object whose claimed file
// precedes the file currently being emitted, and which that earlier
// file failed to forward-declare.
type OrderingError struct {
	Parts        Parts
	ClaimedFile  int
	CurrentFile  int
	FileRoutedAt int
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf(
		"ordering error: %s claimed by file %d was not declared there before file %d needed it",
		e.Parts, e.ClaimedFile, e.CurrentFile,
	)
}
