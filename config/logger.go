package config

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required,oneof=none debug normal"`
}

type LoggingConfig struct {
	ConsoleLogger LoggerConfig `yaml:"console"`
}

// Prepare returns our standard logger writing to w. Standard output carries
// the reassembled document, so w is normally standard error.
func (conf *LoggingConfig) Prepare(w io.Writer) (*zap.Logger, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(ec)

	sink := zapcore.Lock(zapcore.AddSync(w))

	var core zapcore.Core
	switch conf.ConsoleLogger.Level {
	case "normal":
		core = zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(zapcore.InfoLevel))
	case "debug":
		core = zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(zapcore.DebugLevel))
	default:
		// errors are reported by the caller
		core = zapcore.NewNopCore()
	}

	return zap.New(core), nil
}
