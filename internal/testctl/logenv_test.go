package testctl

import "testing"

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel("info")
	cases := map[string]logLevel{
		"debug":   levelDebug,
		"info":    levelInfo,
		"warn":    levelWarn,
		"warning": levelWarn,
		"error":   levelError,
		"err":     levelError,
		"bogus":   levelInfo,
	}
	for in, want := range cases {
		SetLogLevel(in)
		if currentLevel != want {
			t.Fatalf("SetLogLevel(%q) = %v, want %v", in, currentLevel, want)
		}
	}
}

func TestEnvStr(t *testing.T) {
	t.Setenv("TESTCTL_SOME_KEY", "value")
	if got := envStr("TESTCTL_SOME_KEY", "def"); got != "value" {
		t.Fatalf("envStr set = %q", got)
	}
	if got := envStr("TESTCTL_MISSING_KEY", "def"); got != "def" {
		t.Fatalf("envStr default = %q", got)
	}
}
