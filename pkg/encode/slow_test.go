package encode_test

import (
	"testing"

	"github.com/lakeforge/rowcore/pkg/driver/memdriver"
	"github.com/lakeforge/rowcore/pkg/encode"
	"github.com/lakeforge/rowcore/pkg/ingesterrors"
	"github.com/lakeforge/rowcore/pkg/partition"
	"github.com/lakeforge/rowcore/pkg/quarantine"
	"github.com/lakeforge/rowcore/pkg/rowtype"
	"github.com/lakeforge/rowcore/pkg/signal"
	"github.com/stretchr/testify/require"
)

func newSlowWriter(t *testing.T, target rowtype.Type) *partition.Writer {
	t.Helper()
	drv := memdriver.New(65536, 4)
	schema := partition.NewSchema(rowtype.MakeTuple(target))
	w, err := partition.NewWriter(drv, schema, 4096)
	require.NoError(t, err)
	return w
}

// TestSlowOptionRows: nulls and present values both conform to Option(T);
// values of a different ground type are quarantined.
func TestSlowOptionRows(t *testing.T) {
	target := rowtype.MakeOption(rowtype.Str)
	w := newSlowWriter(t, target)
	q := &quarantine.List{}

	inputs := []any{"a", nil, "b", int64(7)}
	require.NoError(t, encode.Slow(inputs, target, w.Append, q))

	entries := q.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, 3, entries[0].Index)

	finalized := w.Close()
	require.Equal(t, 3, finalized[0].NumRows)
	q.Drain()
}

// TestSlowInterrupt: an interrupt observed between rows stops the
// transfer with the distinguished cancelled error and leaves the flag set
// for the outer host to handle.
func TestSlowInterrupt(t *testing.T) {
	target := rowtype.I64
	w := newSlowWriter(t, target)
	q := &quarantine.List{}

	signal.Raise()
	defer signal.Clear()

	err := encode.Slow([]any{int64(1), int64(2)}, target, w.Append, q)
	require.Error(t, err)
	require.True(t, ingesterrors.IsType(err, ingesterrors.ErrorTypeCancelled))
	require.Equal(t, "cancelled: interrupted transfer", err.Error())
	require.True(t, signal.Interrupted(), "the flag is propagated, not cleared")

	finalized := w.Close()
	require.Equal(t, 0, finalized[0].NumRows)
	q.Drain()
}

// TestSlowNestedTuple: a tuple containing a non-scalar field takes the
// slow path and still round-trips its row count.
func TestSlowNestedTuple(t *testing.T) {
	target := rowtype.MakeTuple(rowtype.I64, rowtype.MakeTuple(rowtype.Str, rowtype.Bool))
	w := newSlowWriter(t, target)
	q := &quarantine.List{}

	inputs := []any{
		[]any{int64(1), []any{"x", true}},
		[]any{int64(2), []any{"y", false}},
		[]any{int64(3), "not a tuple"},
	}
	require.NoError(t, encode.Slow(inputs, target, w.Append, q))
	require.Equal(t, 1, q.Len())

	finalized := w.Close()
	require.Equal(t, 2, finalized[0].NumRows)
	q.Drain()
}
