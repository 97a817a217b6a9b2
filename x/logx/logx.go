// Package logx builds the zap loggers used by the command-line tools.
package logx

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is zap's development console config without stacktraces, with
// production key names and coloured levels. Output goes to stderr so that
// command output on stdout stays machine readable.
func Config(debug bool) zap.Config {
	lvl := zap.InfoLevel
	if debug {
		lvl = zap.DebugLevel
	}
	return zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Encoding:          "console",
		EncoderConfig:     encoderConfig(),
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New returns a named console logger. It falls back to a no-op logger if
// the sinks cannot be opened.
func New(name string, debug bool) *zap.Logger {
	l, err := Config(debug).Build()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named(name)
}

// NewWriter returns a console logger writing plain levels to w.
func NewWriter(w io.Writer, name string, debug bool) *zap.Logger {
	ec := encoderConfig()
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	ec.TimeKey = zapcore.OmitKey
	lvl := zapcore.InfoLevel
	if debug {
		lvl = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.AddSync(w), lvl)
	return zap.New(core).Named(name)
}
