package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.WarnLevel, Output: &buf})

	logger.Info().Msg("hidden")
	logger.Warn().Str("group", "page_fields").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message written at warn level: %s", out)
	}
	if !strings.Contains(out, `"group":"page_fields"`) || !strings.Contains(out, "shown") {
		t.Fatalf("warn message missing: %s", out)
	}
}

func TestNew_Pretty(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.InfoLevel, Output: &buf, Pretty: true})
	logger.Info().Msg("hello")
	if strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("pretty output should not be JSON: %s", buf.String())
	}
}
