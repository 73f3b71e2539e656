package logger

import "testing"

func TestInitLevels(t *testing.T) {
	defer Init("info")

	cases := map[string]string{
		"debug":   "debug",
		"INFO":    "info",
		"warning": "warn",
		"error":   "error",
		"fatal":   "fatal",
		"bogus":   "info",
		"":        "info",
	}
	for in, want := range cases {
		Init(in)
		if got := LevelString(); got != want {
			t.Fatalf("Init(%q): got level %q, want %q", in, got, want)
		}
	}
}

func TestSuppressedBelowLevel(t *testing.T) {
	defer Init("info")
	Init("error")
	if enabled(LevelDebug) || enabled(LevelInfo) || enabled(LevelWarn) {
		t.Fatal("levels below error should be suppressed")
	}
	if !enabled(LevelError) || !enabled(LevelFatal) {
		t.Fatal("error and fatal should be enabled")
	}
}
