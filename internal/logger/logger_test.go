package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestSetLevel_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := SetLevel(&buf, zerolog.WarnLevel)

	l.Info().Msg("hidden")
	l.Warn().Str("player", "Player1").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected info message to be filtered, got %s", out)
	}
	if !strings.Contains(out, `"player":"Player1"`) {
		t.Errorf("Expected structured field in output, got %s", out)
	}
}

func TestNew_ReadsLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	if got := New().GetLevel(); got != zerolog.ErrorLevel {
		t.Errorf("Expected error level, got %s", got)
	}

	t.Setenv("LOG_LEVEL", "")
	if got := New().GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("Expected debug level fallback, got %s", got)
	}
}
