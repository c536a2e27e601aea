package batch

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/camt-fix/internal/camtfix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteManifest(t *testing.T) {
	results := []Result{
		{Input: "in/a.xml", Output: "out/a_FIXED.xml", Status: StatusFixed, Report: &camtfix.Report{Entries: 4}},
		{Input: "in/b.xml", Output: "out/b_FIXED.xml", Status: StatusFailed, Err: errors.New("in/b.xml: failed to parse XML: EOF")},
	}
	path := filepath.Join(t.TempDir(), "manifest.csv")

	require.NoError(t, WriteManifest(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "input,output,status,entries,error", lines[0])
	assert.Equal(t, "in/a.xml,out/a_FIXED.xml,fixed,4,", lines[1])

	rows, err := ReadManifest(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[1].Output)
	assert.Equal(t, StatusFailed, rows[1].Status)
	assert.Equal(t, 0, rows[1].Entries)
	assert.Equal(t, "in/b.xml: failed to parse XML: EOF", rows[1].Error)
}

func TestReadManifest_Missing(t *testing.T) {
	_, err := ReadManifest(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
