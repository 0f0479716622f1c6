// Package dictproj derives a set of column names and a per-column type
// from a sample of string-keyed mapping rows, for the "dict-as-tuple" path
// of the ingestion orchestrator. The result is an unordered map; column
// order is chosen by the caller.
package dictproj

import (
	"math"

	"github.com/lakeforge/rowcore/pkg/ingesterrors"
	"github.com/lakeforge/rowcore/pkg/rowlogger"
	"github.com/lakeforge/rowcore/pkg/rowtype"
	"github.com/lakeforge/rowcore/pkg/sample"
	"go.uber.org/zap"
)

// Project derives a map from column name to inferred type over a sample
// of mapping rows. normalThreshold is the acceptance ratio a key must
// meet to be considered a normal column; optionThreshold is passed
// through to the per-column sample inferencer.
func Project(rows []any, normalThreshold, optionThreshold float64, infer *sample.Inferencer) (map[string]rowtype.Type, error) {
	type accum struct {
		count  int
		values []any
	}
	byKey := make(map[string]*accum)
	numDicts := 0

	var firstAllStringRow map[string]any

	for _, row := range rows {
		m, ok := row.(map[string]any)
		if !ok {
			continue
		}
		numDicts++
		if firstAllStringRow == nil {
			firstAllStringRow = m
		}
		for k, v := range m {
			a := byKey[k]
			if a == nil {
				a = &accum{}
				byKey[k] = a
			}
			a.count++
			a.values = append(a.values, v)
		}
	}

	if numDicts > 0 {
		threshold := int(math.Ceil(normalThreshold * float64(numDicts)))
		result := make(map[string]rowtype.Type)
		for k, a := range byKey {
			if a.count >= threshold {
				result[k] = infer.Infer(a.values, optionThreshold)
			}
		}
		if len(result) > 0 {
			return result, nil
		}
	}

	if firstAllStringRow != nil {
		rowlogger.Warn("could not infer column names from sample according to threshold, falling back to first row")
		result := make(map[string]rowtype.Type, len(firstAllStringRow))
		for k, v := range firstAllStringRow {
			result[k] = infer.Classify(v, optionThreshold)
		}
		return result, nil
	}

	rowlogger.Error("dict column projection failed: no string-keyed mapping rows in sample", zap.Int("rows", len(rows)))
	return nil, ingesterrors.New(ingesterrors.ErrorTypeCaller, "could not infer columns: no string-keyed mapping rows in sample")
}
