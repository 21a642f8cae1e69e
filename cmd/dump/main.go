// Command dump is the CLI collaborator spec.md §6 names: it loads a
// config spec, drives the dump engine against an interpreter, and writes
// the resulting files to a directory.
//
// This repository has no concrete production interpreter embedded — one
// is always out of scope (spec.md §1, "Out of scope: external
// collaborators") and supplied by whoever links this package into a real
// program. To exercise the full pipeline end to end anyway, dump run and
// dump validate both drive a small demo heap (see demo.go) rather than
// refusing to do anything; a real deployment swaps demoInterpreter for
// its own heap.Interpreter and otherwise reuses this command verbatim.
package main

import (
	"os"

	"github.com/codecity-go/heapdump/cmd/dump/internal/cli"
)

func main() {
	os.Exit(cli.Main(os.Args[1:]))
}
