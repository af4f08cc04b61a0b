package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	logsDir      string
	console      io.Writer
	consoleLevel zapcore.Level
}

// Option configures InitLogger
type Option func(*options)

// WithLogsDir sets the directory log files are written to (default "logs")
func WithLogsDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.logsDir = dir
		}
	}
}

// WithConsole redirects human-readable output (default stdout)
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.console = w
		}
	}
}

// WithVerbose lowers the console level to Debug so training progress and
// per-task decisions are shown
func WithVerbose(verbose bool) Option {
	return func(o *options) {
		if verbose {
			o.consoleLevel = zapcore.DebugLevel
		}
	}
}

// InitLogger builds a logger that writes coloured text to the console and
// JSON to logs/<env>_<timestamp>.log. The file always receives Debug.
func InitLogger(env string, opts ...Option) (*zap.Logger, error) {
	o := &options{
		logsDir:      "logs",
		console:      os.Stdout,
		consoleLevel: zapcore.InfoLevel,
	}
	for _, opt := range opts {
		opt(o)
	}

	if err := os.MkdirAll(o.logsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	logFileName := filepath.Join(o.logsDir, fmt.Sprintf("%s_%s.log", env, timestamp))
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig), zapcore.AddSync(o.console), o.consoleLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(logFile), zapcore.DebugLevel),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)).
		With(zap.String("env", env))

	return logger, nil
}
