package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log   *zap.Logger
	Sugar *zap.SugaredLogger
)

// InitLogger initializes the global logger configuration.
func InitLogger() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewJSONEncoder(encoderConfig)
	writer := zapcore.AddSync(os.Stdout)

	level := zapcore.InfoLevel
	if GetEnvAsString("LOG_LEVEL", "info") == "debug" {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(encoder, writer, level)

	Log = zap.New(core, zap.AddCaller())
	Sugar = Log.Sugar()
}

func init() {
	// Tests and helpers may log before main wires things up.
	if Sugar == nil {
		InitLogger()
	}
}
