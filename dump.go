// Copyright 2023 Princess B33f Heavy Industries
// SPDX-License-Identifier: MIT

// Package dump is the thin top-level entrypoint spec.md §6 describes: a
// caller brings an interpreter and a parsed config spec, and gets back
// either a completed dump (one file written per SpecEntry) or the first
// fatal error the driver hit. Everything that actually walks the heap
// lives in package dumper; this package exists so a caller — in
// particular cmd/dump — never has to import dumper, config, heap and
// registry separately just to run one dump.
package dump

import (
	"fmt"

	"github.com/codecity-go/heapdump/config"
	"github.com/codecity-go/heapdump/dumper"
	"github.com/codecity-go/heapdump/heap"
	"github.com/codecity-go/heapdump/selector"
)

// Dump runs one dump of interp against spec, writing through out. It
// returns the first fatal error the driver encounters (spec.md §7: no
// partial dumps, no recovery) — never a *MultiError.
func Dump(interp heap.Interpreter, spec []config.SpecEntry, out dumper.FileOpener) error {
	return dumper.NewDriver(interp).Run(spec, out)
}

// Validate is the supplemented --validate dry-run CLI feature
// (SPEC_FULL.md §4): it checks a config spec against a live interpreter
// without writing anything, and — unlike Dump — keeps going after the
// first problem, returning every issue found as a *MultiError so a CLI
// user fixing a spec doesn't have to re-run once per mistake.
//
// Validate checks only what can be checked without mutating dump state:
// that the spec parses, that at most one rest file is declared, and
// that every declared content path actually resolves against interp.
// A spec-level ConfigError (a bad filename, a second rest file, a
// malformed selector) is returned on its own before any path is
// resolved; unresolvable paths are the problems that accumulate.
// It cannot predict ordering errors a real Run might hit, since those
// depend on the order files are visited and what's already been
// emitted by the time a given reference is reached.
func Validate(interp heap.Interpreter, spec []config.SpecEntry) error {
	var merr MultiError

	if _, err := config.BuildTree(spec); err != nil {
		merr.Append(err)
		return merr.OrNil()
	}

	d := dumper.NewDriver(interp)
	for _, entry := range spec {
		for _, c := range entry.Contents {
			parts, err := selector.ToParts(c.Path)
			if err != nil {
				merr.Append(err)
				continue
			}
			if _, err := d.GetValueForParts(parts); err != nil {
				merr.Append(fmt.Errorf("%s: %w", entry.Filename, err))
			}
		}
	}
	return merr.OrNil()
}
