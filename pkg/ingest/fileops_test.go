package ingest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lakeforge/rowcore/pkg/ingest"
	"github.com/lakeforge/rowcore/pkg/ingesterrors"
	"github.com/lakeforge/rowcore/pkg/rowtype"
	"github.com/lakeforge/rowcore/pkg/signal"
	"github.com/lakeforge/rowcore/pkg/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParameterValidation(t *testing.T) {
	o, _ := newOrchestrator()

	ds := o.CSV(ingest.CSVParams{Delimiter: ";;"})
	require.True(t, ds.IsError())
	assert.Contains(t, ds.ErrorMsg, "delimiter")

	ds = o.CSV(ingest.CSVParams{QuoteChar: "''"})
	require.True(t, ds.IsError())
	assert.Contains(t, ds.ErrorMsg, "quotechar")

	// The quote character is required, not optional.
	ds = o.CSV(ingest.CSVParams{Delimiter: ","})
	require.True(t, ds.IsError())
	assert.Contains(t, ds.ErrorMsg, "quotechar")

	ds = o.CSV(ingest.CSVParams{QuoteChar: `"`, AutodetectHeader: true, Header: true})
	require.True(t, ds.IsError())
	assert.Contains(t, ds.ErrorMsg, "mutually exclusive")

	ds = o.CSV(ingest.CSVParams{
		QuoteChar:          `"`,
		TypeHints:          map[int]rowtype.Type{0: rowtype.I64},
		ColumnNameTypeHint: map[string]rowtype.Type{"a": rowtype.Str},
	})
	require.True(t, ds.IsError())
	assert.Contains(t, ds.ErrorMsg, "type hints")

	// Valid parameters still produce an error dataset: file reading is
	// outside this core.
	ds = o.CSV(ingest.CSVParams{Pattern: "*.csv", Delimiter: ",", QuoteChar: `"`})
	require.True(t, ds.IsError())
	assert.Contains(t, ds.ErrorMsg, "not implemented")
}

func TestTextParameterValidation(t *testing.T) {
	o, _ := newOrchestrator()

	ds := o.Text(ingest.TextParams{})
	require.True(t, ds.IsError())
	assert.Contains(t, ds.ErrorMsg, "pattern")

	ds = o.Text(ingest.TextParams{Pattern: "*.txt"})
	require.True(t, ds.IsError())
	assert.Contains(t, ds.ErrorMsg, "not implemented")
}

func TestLSAndRM(t *testing.T) {
	o, _ := newOrchestrator()
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	paths, err := o.LS(vfs.Local{}, filepath.Join(dir, "*.txt"))
	require.NoError(t, err)
	assert.Len(t, paths, 2)

	require.NoError(t, o.RM(vfs.Local{}, filepath.Join(dir, "*.txt")))
	paths, err = o.LS(vfs.Local{}, filepath.Join(dir, "*"))
	require.NoError(t, err)
	assert.Len(t, paths, 1, "only the .log file survives")
}

func TestLSInterrupted(t *testing.T) {
	o, _ := newOrchestrator()
	signal.Raise()
	defer signal.Clear()

	_, err := o.LS(vfs.Local{}, "*")
	require.Error(t, err)
	assert.True(t, ingesterrors.IsType(err, ingesterrors.ErrorTypeCancelled))
}

func TestCPNotSupported(t *testing.T) {
	o, _ := newOrchestrator()
	err := o.CP("src/*", "dst/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not yet supported")
}
