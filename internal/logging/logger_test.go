package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{name: "dev default level", mode: "dev", level: "", want: zapcore.InfoLevel},
		{name: "prod debug", mode: "prod", level: "debug", want: zapcore.DebugLevel},
		{name: "mode is case insensitive", mode: "Production", level: "WARN", want: zapcore.WarnLevel},
		{name: "unknown mode", mode: "verbose", level: "info", wantErr: true},
		{name: "unknown level", mode: "dev", level: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.mode, tt.level)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, log.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, log.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@example.com", MaskEmail("ana.silva@example.com"))
	assert.Equal(t, "[REDACTED]", MaskEmail("not-an-address"))
	assert.Equal(t, "[REDACTED]", MaskEmail("@example.com"))
	assert.Equal(t, "email", Email("email", "x@y.z").Key)
}
