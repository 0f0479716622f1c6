// Package ingest implements the ingestion orchestrator: the public
// Parallelize entry point that normalizes caller arguments, picks an
// encoder, collects quarantined rows, and emits diagnostics, plus the
// CSV/Text/LS/RM/CP operations around it.
package ingest

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/lakeforge/rowcore/pkg/backend"
	"github.com/lakeforge/rowcore/pkg/dictproj"
	"github.com/lakeforge/rowcore/pkg/encode"
	"github.com/lakeforge/rowcore/pkg/ingesterrors"
	"github.com/lakeforge/rowcore/pkg/partition"
	"github.com/lakeforge/rowcore/pkg/quarantine"
	"github.com/lakeforge/rowcore/pkg/rowlogger"
	"github.com/lakeforge/rowcore/pkg/rowtype"
	"github.com/lakeforge/rowcore/pkg/sample"
	"github.com/lakeforge/rowcore/pkg/signal"
)

// defaultMinPartitionSize is the minimum size requested for every new
// partition, matching the writer's alloc(schema, minSize) contract.
const defaultMinPartitionSize = 64 * 1024

var tracer = otel.Tracer("rowcore/ingest")

// Orchestrator is the ingestion core's public entry point, bound to a
// backend.Context and a sample.Inferencer.
type Orchestrator struct {
	Ctx     backend.Context
	Infer   *sample.Inferencer
	Metrics *Metrics
}

// New returns an Orchestrator over ctx with a default inferencer (no
// sample-size ceiling) and the process-wide default metrics.
func New(ctx backend.Context) *Orchestrator {
	return &Orchestrator{Ctx: ctx, Infer: &sample.Inferencer{}, Metrics: DefaultMetrics()}
}

// Parallelize is the single public ingestion entry point: it normalizes
// caller arguments, infers or decodes the row type, dispatches to an
// encoder, drains the quarantine, and wraps the produced partitions into
// a dataset handle.
func (o *Orchestrator) Parallelize(ctx context.Context, seq []any, columnNames []string, schema *rowtype.Type) (*backend.Dataset, error) {
	spanCtx, span := tracer.Start(ctx, "Parallelize")
	defer span.End()
	start := time.Now()

	q := &quarantine.List{}
	defer q.Drain() // every path reaches this single drain point

	if err := validateColumnNames(columnNames); err != nil {
		return o.Ctx.MakeError(err.Error()), nil
	}

	opts := o.Ctx.GetOptions()
	autoUpcast, _ := opts["AUTO_UPCAST_NUMBERS"].(bool)
	optionalThreshold, ok := opts["OPTIONAL_THRESHOLD"].(float64)
	if !ok {
		optionalThreshold = 0.9
	}
	normalcaseThreshold, ok := opts["NORMALCASE_THRESHOLD"].(float64)
	if !ok {
		normalcaseThreshold = 0.9
	}

	var rowType rowtype.Type
	if schema != nil {
		rowType = *schema
	} else {
		rowType = o.Infer.Infer(seq, optionalThreshold)
	}

	if rowType.Kind == rowtype.KindUnknown {
		rowlogger.Error("inferred row type is UNKNOWN", zap.Int("rows", len(seq)))
	}

	beforeRSS := sampleRSS()

	var dataset *backend.Dataset
	var encErr error

	switch {
	case rowType.Kind == rowtype.KindUnknown:
		dataset = o.finishEmpty(rowType, columnNames, q, span)

	case rowType.Kind == rowtype.KindDict:
		dataset, encErr = o.runDictAsTuple(spanCtx, seq, columnNames, rowType, normalcaseThreshold, optionalThreshold, q, span)

	default:
		dataset, encErr = o.runScalarOrTuple(spanCtx, seq, columnNames, rowType, autoUpcast, q, span)
	}

	// No exception crosses the host-runtime boundary except a startup-fatal
	// error: every per-call failure, cancelled or not, becomes an error
	// dataset rather than a raw Go error.
	if encErr != nil {
		if ingesterrors.IsType(encErr, ingesterrors.ErrorTypeStartupFatal) {
			return nil, encErr
		}
		return o.Ctx.MakeError(encErr.Error()), nil
	}

	afterRSS := sampleRSS()
	elapsed := time.Since(start)

	o.Metrics.TransferDuration.Observe(elapsed.Seconds())

	materialized := 0
	for _, p := range dataset.Partitions {
		materialized += p.Size()
	}
	rowlogger.Info("transfer complete",
		zap.Duration("duration", elapsed),
		zap.Int("bytes", materialized),
		zap.Int64("rss_delta_bytes", afterRSS-beforeRSS),
		zap.String("rowType", rowType.String()),
	)

	if q.Len() > 0 {
		rowlogger.Warn("rows quarantined during transfer",
			zap.Int("count", q.Len()),
			zap.String("rowType", rowType.String()),
		)
	}

	return dataset, nil
}

func (o *Orchestrator) finishEmpty(rowType rowtype.Type, columnNames []string, q *quarantine.List, span trace.Span) *backend.Dataset {
	schema := partition.NewSchema(rowtype.MakeTuple())
	drv := o.Ctx.GetDriver()
	w, err := partition.NewWriter(drv, schema, defaultMinPartitionSize)
	if err != nil {
		return o.Ctx.MakeError(err.Error())
	}
	finalized := w.Close()
	ds, err := o.fromPartitions(schema, finalized, columnNames)
	if err != nil {
		return o.Ctx.MakeError(err.Error())
	}
	span.SetAttributes(attribute.String("rowcore.encoder", "empty"))
	return ds
}

// fromPartitions hands finalized partitions to the backend with the host
// lock released for the duration of the (potentially blocking)
// construction call.
func (o *Orchestrator) fromPartitions(schema partition.Schema, finalized []partition.Finalized, columnNames []string) (*backend.Dataset, error) {
	var ds *backend.Dataset
	var err error
	signal.WithHostLockReleased(func() {
		ds, err = o.Ctx.FromPartitions(schema, finalized, columnNames)
	})
	return ds, err
}

func (o *Orchestrator) runScalarOrTuple(ctx context.Context, seq []any, columnNames []string, rowType rowtype.Type, autoUpcast bool, q *quarantine.List, span trace.Span) (*backend.Dataset, error) {
	target := rowType
	if !target.IsTuple() {
		target = rowtype.MakeTuple(rowType)
	}

	schema := partition.NewSchema(target)
	drv := o.Ctx.GetDriver()
	w, err := partition.NewWriter(drv, schema, defaultMinPartitionSize)
	if err != nil {
		return nil, err
	}

	encoderName, err := o.dispatchTuple(seq, target, autoUpcast, w.Append, q)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("rowcore.encoder", encoderName))

	finalized := w.Close()
	o.countBytes(finalized)
	o.Metrics.RowsIngested.Add(float64(countRows(finalized)))
	o.Metrics.RowsQuarantined.Add(float64(q.Len()))

	return o.fromPartitions(schema, finalized, columnNames)
}

// dispatchTuple picks the encoder for a single-wrapped scalar or a
// multi-field tuple target.
func (o *Orchestrator) dispatchTuple(seq []any, target rowtype.Type, autoUpcast bool, appendRow encode.Appender, q *quarantine.List) (string, error) {
	if len(target.Fields) == 1 {
		switch target.Fields[0].Kind {
		case rowtype.KindBool:
			return "fast_bool", encode.FastBool(seq, appendRow, q)
		case rowtype.KindI64:
			return "fast_i64", encode.FastI64(seq, autoUpcast, appendRow, q)
		case rowtype.KindF64:
			return "fast_f64", encode.FastF64(seq, autoUpcast, appendRow, q)
		case rowtype.KindStr:
			return "fast_str", encode.FastStr(seq, appendRow, q)
		}
		// target is a synthetic one-field wrapper around a non-scalar
		// row type (e.g. Option(STR)); seq holds bare values of that
		// inner type, not one-tuples, so the slow path must validate
		// against the unwrapped field, not the wrapper.
		return "slow", encode.Slow(seq, target.Fields[0], appendRow, q)
	}
	if target.AllScalarFields() {
		return "fast_tuple", encode.FastTuple(seq, target, appendRow, q)
	}
	return "slow", encode.Slow(seq, target, appendRow, q)
}

func (o *Orchestrator) runDictAsTuple(ctx context.Context, seq []any, columnNames []string, rowType rowtype.Type, normalcaseThreshold, optionalThreshold float64, q *quarantine.List, span trace.Span) (*backend.Dataset, error) {
	cols, err := dictproj.Project(seq, normalcaseThreshold, optionalThreshold, o.Infer)
	if err != nil {
		return nil, err
	}

	names := columnNames
	if len(names) == 0 {
		names = make([]string, 0, len(cols))
		for k := range cols {
			names = append(names, k)
		}
		sort.Strings(names)
	}

	fields := make([]rowtype.Type, len(names))
	for i, n := range names {
		t, ok := cols[n]
		if !ok {
			return nil, ingesterrors.New(ingesterrors.ErrorTypeCaller, "caller-supplied column not present in inferred schema").WithDetail("column", n)
		}
		fields[i] = t
	}
	target := rowtype.MakeTuple(fields...)

	schema := partition.NewSchema(target)
	drv := o.Ctx.GetDriver()
	w, err := partition.NewWriter(drv, schema, defaultMinPartitionSize)
	if err != nil {
		return nil, err
	}

	tupleRows := make([]any, len(seq))
	for i, row := range seq {
		m, ok := row.(map[string]any)
		if !ok {
			tupleRows[i] = sample.Tuple(nil) // forces quarantine below
			continue
		}
		elems := make([]any, len(names))
		for j, n := range names {
			v, present := m[n]
			if !present {
				elems = nil
				break
			}
			elems[j] = v
		}
		tupleRows[i] = sample.Tuple(elems)
	}

	var encoderName string
	if target.AllScalarFields() {
		encoderName = "fast_tuple_dict"
		err = encode.FastTuple(tupleRows, target, w.AppendDictRow, q)
	} else {
		encoderName = "slow_dict"
		err = encode.Slow(tupleRows, target, w.AppendDictRow, q)
	}
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("rowcore.encoder", encoderName))

	finalized := w.Close()
	o.countBytes(finalized)
	o.Metrics.RowsIngested.Add(float64(countRows(finalized)))
	o.Metrics.RowsQuarantined.Add(float64(q.Len()))

	return o.fromPartitions(schema, finalized, names)
}

func (o *Orchestrator) countBytes(finalized []partition.Finalized) {
	total := 0
	for _, f := range finalized {
		total += f.Partition.Size()
	}
	o.Metrics.BytesMaterialized.Add(float64(total))
}

func countRows(finalized []partition.Finalized) int {
	total := 0
	for _, f := range finalized {
		total += f.NumRows
	}
	return total
}

func validateColumnNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			return ingesterrors.New(ingesterrors.ErrorTypeCaller, "column name must not be empty")
		}
		if seen[n] {
			return ingesterrors.New(ingesterrors.ErrorTypeCaller, "duplicate column name").WithDetail("column", n)
		}
		seen[n] = true
	}
	return nil
}

func sampleRSS() int64 {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0
	}
	info, err := p.MemoryInfo()
	if err != nil || info == nil {
		return 0
	}
	return int64(info.RSS)
}
