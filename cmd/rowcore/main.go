// Command rowcore is a thin cobra front-end over the ingestion core,
// demonstrating parallelize/ls/rm/options against the in-memory reference
// driver and backend context.
package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/lakeforge/rowcore/pkg/backend/localctx"
	"github.com/lakeforge/rowcore/pkg/driver/memdriver"
	"github.com/lakeforge/rowcore/pkg/ingest"
	"github.com/lakeforge/rowcore/pkg/rowconfig"
	"github.com/lakeforge/rowcore/pkg/rowlogger"
	"github.com/lakeforge/rowcore/pkg/vfs"
)

func main() {
	shutdown := initTracing()
	defer shutdown()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initTracing wires a stdout span exporter so Parallelize's span is
// visible when running the CLI directly; real deployments would swap the
// exporter, not the instrumentation in pkg/ingest.
func initTracing() func() {
	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return func() {}
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)
	return func() { _ = tp.Shutdown(context.Background()) }
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:   "rowcore",
		Short: "host-to-engine data ingestion core",
	}

	root.AddCommand(newOptionsCmd(v), newLSCmd(), newRMCmd(), newCPCmd(), newParallelizeCmd(v))
	return root
}

func newParallelizeCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "parallelize [file.json]",
		Short: "ingest a JSON array of rows from a file and report the resulting schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var rows []any
			if err := json.Unmarshal(data, &rows); err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			o := newOrchestrator(v)
			ds, err := o.Parallelize(context.Background(), rows, nil, nil)
			if err != nil {
				return err
			}
			if ds.IsError() {
				fmt.Println("error dataset:", ds.ErrorMsg)
				return nil
			}
			fmt.Printf("rowType=%s columns=%v partitions=%d\n", ds.Schema.RowType, ds.ColumnNames, len(ds.Partitions))
			return nil
		},
	}
}

func newOrchestrator(v *viper.Viper) *ingest.Orchestrator {
	_ = rowlogger.Init(rowlogger.Config{Level: "info", Encoding: "console"})
	opts := rowconfig.Load(v)
	drv := memdriver.New(16*1024*1024, 8)
	ctx := localctx.New(drv)
	for k, val := range opts.AsMap() {
		ctx.Options[k] = val
	}
	return ingest.New(ctx)
}

func newOptionsCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "print the options the ingestion core consumes",
		RunE: func(cmd *cobra.Command, args []string) error {
			o := newOrchestrator(v)
			for k, val := range o.Options() {
				fmt.Printf("%s=%v\n", k, val)
			}
			return nil
		},
	}
}

func newLSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [pattern]",
		Short: "list files matching pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := newOrchestrator(viper.New())
			paths, err := o.LS(vfs.Local{}, args[0])
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Println(p)
			}
			return nil
		},
	}
}

func newCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cp [pattern] [target]",
		Short: "copy files matching pattern to target (not yet supported)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := newOrchestrator(viper.New())
			return o.CP(args[0], args[1])
		},
	}
}

func newRMCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm [pattern]",
		Short: "remove files matching pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o := newOrchestrator(viper.New())
			return o.RM(vfs.Local{}, args[0])
		},
	}
}
