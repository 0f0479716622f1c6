package encode

import (
	"github.com/lakeforge/rowcore/pkg/ingesterrors"
	"github.com/lakeforge/rowcore/pkg/ownref"
	"github.com/lakeforge/rowcore/pkg/quarantine"
	"github.com/lakeforge/rowcore/pkg/rowlogger"
	"github.com/lakeforge/rowcore/pkg/rowtype"
	"github.com/lakeforge/rowcore/pkg/signal"
	"go.uber.org/zap"
)

// ErrInterrupted is returned by Slow when the interrupt flag is observed
// between rows. The caller converts this into the distinguished
// "interrupted transfer" error dataset; the flag itself is left set.
var ErrInterrupted = ingesterrors.New(ingesterrors.ErrorTypeCancelled, "interrupted transfer")

// Slow is the fallback per-row path for any normal-case type not handled
// by a fast encoder: options, lists, generic dicts, and nested tuples.
// Each accepted element is converted into a generic Row via the type
// lattice, then serialized through appendRow. It polls the interrupt
// flag between rows and never clears it.
func Slow(values []any, target rowtype.Type, appendRow Appender, q *quarantine.List) error {
	for i, v := range values {
		if signal.Interrupted() {
			rowlogger.Warn("slow encoder observed interrupt, stopping transfer", zap.Int("rowsProcessed", i))
			return ErrInterrupted
		}

		ref := ownref.Acquire(v)
		row, ok := buildRow(v, target)
		if !ok {
			q.AddRef(i, ref)
			continue
		}

		// The append may allocate a fresh partition; the host lock is
		// released around that bulk allocation, not around the per-row
		// conversion above.
		encoded := encodeRow(row)
		var err error
		signal.WithHostLockReleased(func() {
			err = appendRow(len(encoded), func(slot []byte, _ int) error {
				copy(slot, encoded)
				return nil
			})
		})
		ref.Release()
		if err != nil {
			return err
		}
	}
	return nil
}
