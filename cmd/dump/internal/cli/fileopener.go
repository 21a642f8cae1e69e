package cli

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/codecity-go/heapdump/report"
)

// dirOpener is a dumper.FileOpener backed by real files under a root
// directory, created as needed. It also tracks, per opened file, the
// byte and line counts the HTML report wants — counts accumulate per
// Write and are recorded once, at Close, since the dump driver only ever
// appends and never revisits a file once its pass has finished
// (spec.md §5).
type dirOpener struct {
	root  string
	stats []report.FileStat
}

func newDirOpener(root string) *dirOpener {
	return &dirOpener{root: root}
}

func (d *dirOpener) Open(filename string) (io.WriteCloser, error) {
	path := filepath.Join(d.root, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &countingFile{File: f, w: bufio.NewWriter(f), opener: d, filename: filename}, nil
}

// countingFile buffers writes (the dump driver writes one line at a
// time) and records the final stats into its owning dirOpener on Close.
type countingFile struct {
	*os.File
	w        *bufio.Writer
	opener   *dirOpener
	filename string
	bytes    int
	lines    int
}

func (c *countingFile) Write(p []byte) (int, error) {
	c.bytes += len(p)
	c.lines += strings.Count(string(p), "\n")
	return c.w.Write(p)
}

func (c *countingFile) Close() error {
	if err := c.w.Flush(); err != nil {
		c.File.Close()
		return err
	}
	c.opener.stats = append(c.opener.stats, report.FileStat{
		Filename:     c.filename,
		BytesWritten: c.bytes,
		Lines:        c.lines,
	})
	return c.File.Close()
}
