package config

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the shared application logger.
var Logger = zap.NewNop()

// LogWriter is the writer used for database logs. It mirrors the zap
// sink so SQL output lands in the same file.
var LogWriter io.Writer = os.Stdout

// LogFilePath returns the path to the backend log file.
func LogFilePath() string {
	return filepath.Join("logs", "community-api.log")
}

// InitLogging opens the log file and builds the zap logger teeing to
// stdout and the file. Falls back to stdout-only if the file cannot be
// opened.
func InitLogging() (*os.File, *zap.Logger) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	level := zapcore.InfoLevel
	if os.Getenv("DEBUG") == "true" {
		level = zapcore.DebugLevel
	}

	if err := os.MkdirAll(filepath.Dir(LogFilePath()), os.ModePerm); err != nil {
		Logger = zap.New(zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
		Logger.Warn("failed to create logs directory", zap.Error(err))
		return nil, Logger
	}

	logFile, err := os.OpenFile(LogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		Logger = zap.New(zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level))
		Logger.Warn("failed to open log file", zap.Error(err))
		LogWriter = os.Stdout
		return nil, Logger
	}

	sink := zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), zapcore.AddSync(logFile))
	Logger = zap.New(zapcore.NewCore(encoder, sink, level))
	LogWriter = io.MultiWriter(os.Stdout, logFile)
	return logFile, Logger
}
