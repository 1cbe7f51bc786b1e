package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config represents logger configuration
type Config struct {
	Level      string // debug, info, warn, error
	Format     string // json, console
	OutputPath string // stdout, stderr, or file path

	// Writer overrides OutputPath when set
	Writer io.Writer
}

// New creates a new logger based on configuration
func New(config Config) (*zap.Logger, error) {
	// Parse log level
	level, err := zapcore.ParseLevel(config.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}

	// Configure output
	writer, color, err := openOutput(config)
	if err != nil {
		return nil, err
	}

	// Configure encoder
	var encoderConfig zapcore.EncoderConfig
	if config.Format == "json" {
		encoderConfig = zap.NewProductionEncoderConfig()
	} else {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		if color {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		} else {
			encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		}
	}

	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	// Create encoder
	var encoder zapcore.Encoder
	if config.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	// Create core
	core := zapcore.NewCore(encoder, writer, level)

	// Create logger
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))

	return logger, nil
}

// openOutput resolves the log destination and whether it supports colour
func openOutput(config Config) (zapcore.WriteSyncer, bool, error) {
	if config.Writer != nil {
		return zapcore.AddSync(config.Writer), false, nil
	}

	switch config.OutputPath {
	case "stderr", "":
		return zapcore.Lock(os.Stderr), isatty.IsTerminal(os.Stderr.Fd()), nil
	case "stdout":
		return zapcore.Lock(os.Stdout), isatty.IsTerminal(os.Stdout.Fd()), nil
	default:
		// Log files may live in a directory that does not exist yet
		if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0755); err != nil {
			return nil, false, err
		}
		file, err := os.OpenFile(config.OutputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, false, err
		}
		return zapcore.AddSync(file), false, nil
	}
}

// LevelFor picks the effective level: verbose wins over quiet, and both
// override the configured level.
func LevelFor(configured string, verbose, quiet bool) string {
	switch {
	case verbose:
		return "debug"
	case quiet:
		return "error"
	case configured == "":
		return "warn"
	default:
		return configured
	}
}

// NewDefault creates a logger that only reports warnings and errors to stderr
func NewDefault() *zap.Logger {
	logger, _ := New(Config{
		Level:      "warn",
		Format:     "console",
		OutputPath: "stderr",
	})
	return logger
}
