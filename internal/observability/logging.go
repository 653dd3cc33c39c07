// Package observability provides logger construction and a log-backed display
// of character stat changes.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/statengine/internal/config"
)

// RootName is the name of every logger built by NewLogger.
const RootName = "statengine"

// NewLogger builds the root structured logger for cfg. Records go to
// cfg.Output, or stderr when it is empty, so command output on stdout stays
// clean.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	enc, stackLevel, err := encoderFor(cfg.Format)
	if err != nil {
		return nil, err
	}

	output := cfg.Output
	if output == "" {
		output = "stderr"
	}
	sink, _, err := zap.Open(output)
	if err != nil {
		return nil, fmt.Errorf("opening log output %q: %w", output, err)
	}

	core := zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(level))
	logger := zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(stackLevel),
		zap.ErrorOutput(sink),
	)
	return logger.Named(RootName), nil
}

// encoderFor returns the encoder for format and the level at which stack
// traces are attached.
func encoderFor(format string) (zapcore.Encoder, zapcore.Level, error) {
	switch format {
	case "json":
		ec := zap.NewProductionEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(ec), zapcore.ErrorLevel, nil
	case "console":
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec), zapcore.WarnLevel, nil
	default:
		return nil, zapcore.InvalidLevel, fmt.Errorf("unknown log format %q", format)
	}
}
