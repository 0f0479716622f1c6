package ingest

import (
	"github.com/lakeforge/rowcore/pkg/backend"
	"github.com/lakeforge/rowcore/pkg/ingesterrors"
	"github.com/lakeforge/rowcore/pkg/rowtype"
	"github.com/lakeforge/rowcore/pkg/signal"
	"github.com/lakeforge/rowcore/pkg/vfs"
)

// CSVParams mirrors the parameter surface of the csv() public operation.
// File-source ingestion itself is out of scope; CSV validates parameters
// and returns a caller-error dataset rather than attempting to read
// anything.
type CSVParams struct {
	Pattern            string
	ColumnNames        []string
	AutodetectHeader   bool
	Header             bool
	Delimiter          string
	QuoteChar          string
	NullValues         []string
	TypeHints          map[int]rowtype.Type
	ColumnNameTypeHint map[string]rowtype.Type
}

// CSV validates params and returns a caller-error dataset describing the
// validation failure, or a "not yet implemented" backend-error dataset
// once parameters pass validation. File reading itself is outside this
// core's scope.
func (o *Orchestrator) CSV(p CSVParams) *backend.Dataset {
	if len(p.Delimiter) > 1 {
		return o.Ctx.MakeError("csv: delimiter must be a single character")
	}
	if len(p.QuoteChar) != 1 {
		return o.Ctx.MakeError("csv: quotechar must be exactly one character")
	}
	if p.AutodetectHeader && p.Header {
		return o.Ctx.MakeError("csv: autodetectHeader and an explicit header are mutually exclusive")
	}
	if len(p.TypeHints) > 0 && len(p.ColumnNameTypeHint) > 0 {
		return o.Ctx.MakeError("csv: index-based and name-based type hints are mutually exclusive")
	}
	return o.Ctx.MakeError("csv: file-source ingestion is not implemented in this core")
}

// TextParams mirrors the parameter surface of the text() public
// operation.
type TextParams struct {
	Pattern    string
	NullValues []string
}

// Text validates params and returns the same "not yet implemented"
// backend-error dataset CSV does.
func (o *Orchestrator) Text(p TextParams) *backend.Dataset {
	if p.Pattern == "" {
		return o.Ctx.MakeError("text: pattern must not be empty")
	}
	return o.Ctx.MakeError("text: file-source ingestion is not implemented in this core")
}

// Options returns the introspection payload for the options() public
// operation.
func (o *Orchestrator) Options() map[string]any {
	return o.Ctx.GetOptions()
}

// LS globs pattern against fs, polling the interrupt flag before
// starting work.
func (o *Orchestrator) LS(fs vfs.FS, pattern string) ([]string, error) {
	if signal.Interrupted() {
		return nil, ErrInterruptedOp
	}
	return fs.GlobAll(pattern)
}

// RM removes every path matching pattern against fs.
func (o *Orchestrator) RM(fs vfs.FS, pattern string) error {
	if signal.Interrupted() {
		return ErrInterruptedOp
	}
	paths, err := fs.GlobAll(pattern)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := fs.Remove(p); err != nil {
			return err
		}
	}
	return nil
}

// CP is not yet supported.
func (o *Orchestrator) CP(pattern, target string) error {
	return ingesterrors.New(ingesterrors.ErrorTypeCaller, "cp: not yet supported")
}

// ErrInterruptedOp is returned by LS/RM when the interrupt flag is
// observed before the operation starts.
var ErrInterruptedOp = ingesterrors.New(ingesterrors.ErrorTypeCancelled, "interrupted transfer")
