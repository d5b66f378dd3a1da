package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds the process logger. "json" writes slog JSON lines to w;
// "console" builds a zap development logger on stderr.
func New(format, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatJSON:
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(defaultLevel(level))); err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
		return NewSlogLogger(slog.New(h)), nil
	case FormatConsole:
		lvl, err := zapcore.ParseLevel(defaultLevel(level))
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		zcfg := zap.NewDevelopmentConfig()
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zl, err := zcfg.Build()
		if err != nil {
			return nil, err
		}
		return NewZapLogger(zl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func defaultLevel(level string) string {
	if level == "" {
		return "info"
	}
	return level
}
