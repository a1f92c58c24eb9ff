package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInit_OnlyFirstCallConfigures(t *testing.T) {
	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})

	// A second Init with different options must not reconfigure.
	other := Init(Options{Level: "error", Output: &bytes.Buffer{}})
	_ = other

	log.Debug().Msg("first")
	again := Init(Options{})
	again.Debug().Msg("second")

	out := buf.String()
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("both writes should land in the first writer, got %q", out)
	}
}

func TestParseLevel_Defaults(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"WARN":    "warn",
		"warning": "warn",
		" error ": "error",
		"":        "info",
		"bogus":   "info",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
