// Package report renders a dump run's outcome as a standalone HTML
// diagnostics page — the same "serialize an internal model back out as
// a different textual form" role the teacher's renderer package plays
// for an OpenAPI document, applied here to a dump run's own statistics
// rather than to the document the engine dumped.
package report

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FileStat summarizes one declared output file's contribution to a run.
type FileStat struct {
	Filename     string
	BytesWritten int
	Lines        int
}

// Run is the complete summary of one dump run, assembled by the caller
// (typically cmd/dump) as it drives the engine — the report package
// itself never touches the engine or the interpreter, only this model.
type Run struct {
	RunID string
	Files []FileStat
	// Err, if non-nil, is the fatal error the run stopped on (spec.md
	// §7: dumps are immediate-fatal, never partial-with-warnings).
	Err error
}

// Render writes run as a self-contained HTML page to w.
func Render(w io.Writer, run *Run) error {
	doc := &html.Node{Type: html.DocumentNode}
	htmlNode := elem(atom.Html, nil)
	doc.AppendChild(htmlNode)

	head := elem(atom.Head, nil)
	htmlNode.AppendChild(head)
	head.AppendChild(elem(atom.Title, nil, text(fmt.Sprintf("dump report %s", run.RunID))))

	body := elem(atom.Body, nil)
	htmlNode.AppendChild(body)

	h1 := elem(atom.H1, nil, text(fmt.Sprintf("Dump run %s", run.RunID)))
	body.AppendChild(h1)

	if run.Err != nil {
		p := elem(atom.P, []html.Attribute{{Key: "class", Val: "fatal"}},
			text(fmt.Sprintf("FAILED: %s", run.Err.Error())))
		body.AppendChild(p)
	} else {
		body.AppendChild(elem(atom.P, nil, text("completed successfully")))
	}

	table := elem(atom.Table, nil)
	body.AppendChild(table)

	headRow := elem(atom.Tr, nil,
		elem(atom.Th, nil, text("file")),
		elem(atom.Th, nil, text("bytes")),
		elem(atom.Th, nil, text("lines")),
	)
	table.AppendChild(headRow)

	for _, f := range run.Files {
		row := elem(atom.Tr, nil,
			elem(atom.Td, nil, text(f.Filename)),
			elem(atom.Td, nil, text(fmt.Sprintf("%d", f.BytesWritten))),
			elem(atom.Td, nil, text(fmt.Sprintf("%d", f.Lines))),
		)
		table.AppendChild(row)
	}

	return html.Render(w, doc)
}

func elem(a atom.Atom, attr []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attr,
	}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
