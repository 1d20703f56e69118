package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GlebRadaev/steake/internal/config"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name    string
		config  *config.Config
		wantErr bool
		wantLvl zapcore.Level
	}{
		{
			name:    "debug console",
			config:  &config.Config{LogLvl: "debug", LogFmt: "console"},
			wantLvl: zapcore.DebugLevel,
		},
		{
			name:    "info with default format",
			config:  &config.Config{LogLvl: "info"},
			wantLvl: zapcore.InfoLevel,
		},
		{
			name:    "warn json",
			config:  &config.Config{LogLvl: "warn", LogFmt: "json"},
			wantLvl: zapcore.WarnLevel,
		},
		{
			name:    "error json",
			config:  &config.Config{LogLvl: "error", LogFmt: "json"},
			wantLvl: zapcore.ErrorLevel,
		},
		{
			name:    "unknown level",
			config:  &config.Config{LogLvl: "verbose"},
			wantErr: true,
		},
		{
			name:    "unknown format",
			config:  &config.Config{LogLvl: "info", LogFmt: "xml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := InitLogger(tt.config)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, zap.L().Core().Enabled(tt.wantLvl))
			assert.False(t, zap.L().Core().Enabled(tt.wantLvl-1))
		})
	}
}

func TestEncoderConfig(t *testing.T) {
	console, err := encoderConfig("console")
	require.NoError(t, err)
	assert.Equal(t, "msg", console.MessageKey)

	json, err := encoderConfig("json")
	require.NoError(t, err)
	assert.Equal(t, "ts", json.TimeKey)

	_, err = encoderConfig("yaml")
	assert.Error(t, err)
}
