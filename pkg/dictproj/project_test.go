package dictproj_test

import (
	"testing"

	"github.com/lakeforge/rowcore/pkg/dictproj"
	"github.com/lakeforge/rowcore/pkg/ingesterrors"
	"github.com/lakeforge/rowcore/pkg/rowtype"
	"github.com/lakeforge/rowcore/pkg/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestProjectNormalColumns: keys present in enough of the sample become
// columns, with a per-column type inferred over their pooled values.
func TestProjectNormalColumns(t *testing.T) {
	rows := []any{
		map[string]any{"a": int64(1), "b": "x"},
		map[string]any{"a": int64(2), "b": "y"},
	}
	cols, err := dictproj.Project(rows, 0.9, 0.9, &sample.Inferencer{})
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.True(t, rowtype.Equal(rowtype.I64, cols["a"]))
	assert.True(t, rowtype.Equal(rowtype.Str, cols["b"]))
}

// TestProjectDropsRareKeys: a key seen in only half the dicts misses a
// 0.9 acceptance ratio and is excluded from the column set.
func TestProjectDropsRareKeys(t *testing.T) {
	rows := []any{
		map[string]any{"a": int64(1), "rare": true},
		map[string]any{"a": int64(2)},
	}
	cols, err := dictproj.Project(rows, 0.9, 0.9, &sample.Inferencer{})
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.True(t, rowtype.Equal(rowtype.I64, cols["a"]))
}

// TestProjectNullableColumn: a key whose pooled values mix a type with
// nulls inside the lifting band infers an Option column.
func TestProjectNullableColumn(t *testing.T) {
	rows := []any{
		map[string]any{"a": "x"},
		map[string]any{"a": nil},
		map[string]any{"a": "y"},
	}
	cols, err := dictproj.Project(rows, 0.9, 0.9, &sample.Inferencer{})
	require.NoError(t, err)
	want := rowtype.MakeOption(rowtype.Str)
	assert.True(t, rowtype.Equal(want, cols["a"]), "want %s got %s", want, cols["a"])
}

// TestProjectFallsBackToFirstRow: when no key survives the threshold, the
// first mapping row's keys and classified value types become the schema.
func TestProjectFallsBackToFirstRow(t *testing.T) {
	// Three disjoint single-key dicts: each key appears in 1/3 of the
	// sample, below ceil(0.9*3)=3, so the threshold pass yields nothing.
	rows := []any{
		map[string]any{"a": int64(1)},
		map[string]any{"b": "x"},
		map[string]any{"c": true},
	}
	cols, err := dictproj.Project(rows, 0.9, 0.9, &sample.Inferencer{})
	require.NoError(t, err)
	require.Len(t, cols, 1)
	assert.True(t, rowtype.Equal(rowtype.I64, cols["a"]))
}

// TestProjectNoMappingRowsErrors: a sample with no string-keyed mapping
// rows is an unrecoverable caller error.
func TestProjectNoMappingRowsErrors(t *testing.T) {
	_, err := dictproj.Project([]any{int64(1), "x"}, 0.9, 0.9, &sample.Inferencer{})
	require.Error(t, err)
	assert.True(t, ingesterrors.IsType(err, ingesterrors.ErrorTypeCaller))
}
