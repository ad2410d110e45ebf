package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("JSON com atributos fixos e do With", func(t *testing.T) {
		var buf bytes.Buffer
		log := New(Options{Level: "info", Service: "econsciente-api", Env: "test", Writer: &buf}).
			With("component", "achievements")

		log.Info("achievement unlocked", "user_id", "u1")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "achievement unlocked", entry["msg"])
		assert.Equal(t, "econsciente-api", entry["service"])
		assert.Equal(t, "test", entry["env"])
		assert.Equal(t, "achievements", entry["component"])
		assert.Equal(t, "u1", entry["user_id"])
	})

	t.Run("formato texto", func(t *testing.T) {
		var buf bytes.Buffer
		New(Options{Format: "TEXT", Writer: &buf}).Info("challenge completed", "points", 50)

		out := buf.String()
		assert.True(t, strings.Contains(out, `msg="challenge completed"`), out)
		assert.Contains(t, out, "points=50")
		assert.NotContains(t, out, "service=")
	})

	t.Run("respeita o nível configurado", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewSlogLoggerWithWriter(&buf, "warn")

		log.Info("ignored")
		log.Debug("ignored")
		assert.Zero(t, buf.Len())

		log.Warn("kept")
		assert.NotZero(t, buf.Len())
	})
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level=%q", in)
	}
}
