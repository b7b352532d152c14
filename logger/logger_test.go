package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewZapAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	log.With(map[string]interface{}{"session_id": "s1"}).
		WithError(errors.New("boom")).
		Warn("Failed to store record", map[string]interface{}{"kind": "claim"})
	log.Debug("Classified message", nil)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "Failed to store record", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "s1", fields["session_id"])
	assert.Equal(t, "boom", fields["error"])
	assert.Equal(t, "claim", fields["kind"])

	assert.Equal(t, zapcore.DebugLevel, entries[1].Level)
	assert.Empty(t, entries[1].Context)
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"loud", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			l := New(tt.level, "json")
			assert.True(t, l.Core().Enabled(tt.want))
			assert.False(t, l.Core().Enabled(tt.want-1))
		})
	}
}

func TestNewNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	log.Info("ignored", map[string]interface{}{"k": "v"})
	assert.NoError(t, log.Sync())
}
