package logger

import (
	"fmt"

	"github.com/GlebRadaev/steake/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timeLayout = "15:04:05 02-01-2006"

var logLvlMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// encoderConfig returns the field layout for a zap encoding ("console" or "json").
func encoderConfig(encoding string) (zapcore.EncoderConfig, error) {
	base := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	switch encoding {
	case "", "console":
		base.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)
		base.EncodeLevel = zapcore.CapitalColorLevelEncoder
	case "json":
		base.EncodeTime = zapcore.ISO8601TimeEncoder
		base.EncodeLevel = zapcore.LowercaseLevelEncoder
	default:
		return base, fmt.Errorf("unsupported log format: %s", encoding)
	}
	return base, nil
}

// InitLogger replaces zap's global logger according to conf.
func InitLogger(conf *config.Config) error {
	lvl, ok := logLvlMap[conf.LogLvl]
	if !ok {
		return fmt.Errorf("unsupported log lvl: %s", conf.LogLvl)
	}

	encoding := conf.LogFmt
	if encoding == "" {
		encoding = "console"
	}
	encodeConfig, err := encoderConfig(encoding)
	if err != nil {
		return err
	}

	c := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         encoding,
		EncoderConfig:    encodeConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		InitialFields:    map[string]interface{}{"service": "steake"},
	}

	logger, err := c.Build()
	if err != nil {
		return fmt.Errorf("unable to create zap logger, error: %w", err)
	}

	zap.ReplaceGlobals(logger)

	return nil
}
