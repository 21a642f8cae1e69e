package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSuccessfulRun(t *testing.T) {
	run := &Run{
		RunID: "abc-123",
		Files: []FileStat{
			{Filename: "main.js", BytesWritten: 42, Lines: 3},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, run))

	got := buf.String()
	assert.Contains(t, got, "abc-123")
	assert.Contains(t, got, "main.js")
	assert.Contains(t, got, "completed successfully")
	assert.NotContains(t, got, "FAILED")
}

func TestRenderFailedRunIncludesError(t *testing.T) {
	run := &Run{
		RunID: "def-456",
		Err:   errors.New("ordering error: a.link claimed by file 1 was not declared there before file 0 needed it"),
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, run))

	got := buf.String()
	assert.Contains(t, got, "FAILED")
	assert.Contains(t, got, "ordering error")
}
