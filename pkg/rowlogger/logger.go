// Package rowlogger provides the process-wide structured logger used by
// the ingestion core. It is modeled as an injected collaborator: the
// orchestrator, dict projector, and slow encoder all log through it rather
// than holding their own logger instances.
package rowlogger

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.Logger
	once   sync.Once
)

type contextKey string

const (
	// TransferIDKey tags log lines with the Parallelize call they belong
	// to, the closest analogue to a per-request id here.
	TransferIDKey contextKey = "transfer_id"
	// DatasetIDKey tags log lines with the dataset a partition chain was
	// materialized into.
	DatasetIDKey contextKey = "dataset_id"
)

// Config configures the global logger.
type Config struct {
	Level       string
	Development bool
	Encoding    string // json or console
}

// Init initializes the global logger exactly once; subsequent calls are
// no-ops.
func Init(cfg Config) error {
	var err error
	once.Do(func() {
		global, err = build(cfg)
	})
	return err
}

func build(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if cfg.Development {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Development,
		Encoding:         cfg.Encoding,
		EncoderConfig:    encoderCfg,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if cfg.Development {
		logger = logger.WithOptions(zap.AddStacktrace(zapcore.ErrorLevel))
	}
	return logger, nil
}

// Get returns the global logger, lazily initializing it to a sane default
// if Init was never called.
func Get() *zap.Logger {
	if global == nil {
		if err := Init(Config{Level: "info", Encoding: "json"}); err != nil {
			l, _ := zap.NewProduction()
			global = l
		}
	}
	return global
}

// WithContext returns a child logger annotated with values found on ctx.
func WithContext(ctx context.Context) *zap.Logger {
	l := Get()
	if id, ok := ctx.Value(TransferIDKey).(string); ok {
		l = l.With(zap.String("transfer_id", id))
	}
	if id, ok := ctx.Value(DatasetIDKey).(string); ok {
		l = l.With(zap.String("dataset_id", id))
	}
	return l
}

func Debug(msg string, fields ...zap.Field) { Get().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { Get().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { Get().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { Get().Error(msg, fields...) }

func Fatal(msg string, fields ...zap.Field) {
	Get().Fatal(msg, fields...)
	os.Exit(1)
}

func With(fields ...zap.Field) *zap.Logger { return Get().With(fields...) }

func Sync() error {
	if global != nil {
		return global.Sync()
	}
	return nil
}
