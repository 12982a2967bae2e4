package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

const defaultZapLevel = zapcore.DebugLevel

func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	if format == JSONFormat {
		cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.TimeKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func newCore(w io.Writer, level zapcore.Level, format string) zapcore.Core {
	return zapcore.NewCore(newEncoder(format), zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
}

// New builds a logger writing to stdout. Unknown levels fall back to debug,
// unknown formats to console.
func New(levelStr, format string) *Logger {
	core := newCore(zapcore.Lock(os.Stdout), toZapLevel(levelStr), format)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// NewWriter is New with an explicit sink; used by tests.
func NewWriter(w io.Writer, levelStr, format string) *Logger {
	core := newCore(zapcore.AddSync(w), toZapLevel(levelStr), format)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}
