package testctl

import (
	"flag"
	"testing"
)

// withCLIStubs snapshots the fn* indirections, applies overrides, and returns
// a cleanup that restores the originals.
func withCLIStubs(t *testing.T, apply func()) func() {
	t.Helper()
	origVerify := fnVerifyTools
	origList := fnListModels
	origFetch := fnFetchModel
	origGo := fnRunGoTests
	origBB := fnRunBlackboxTests
	origSmoke := fnSmoke
	origHas := fnHasHostModels
	apply()
	return func() {
		fnVerifyTools = origVerify
		fnListModels = origList
		fnFetchModel = origFetch
		fnRunGoTests = origGo
		fnRunBlackboxTests = origBB
		fnSmoke = origSmoke
		fnHasHostModels = origHas
	}
}

func TestMainWithArgs_NoArgs_ShowsUsageAndExit2(t *testing.T) {
	code := MainWithArgs([]string{})
	if code != 2 {
		t.Fatalf("expected exit code 2 for no args, got %d", code)
	}
}

func TestMainWithArgs_UnknownCommand_Exit1(t *testing.T) {
	code := MainWithArgs([]string{"wat"})
	if code != 1 {
		t.Fatalf("expected exit code 1 for unknown command, got %d", code)
	}
}

func TestMainWithArgs_TestGo_SuccessExit0(t *testing.T) {
	cleanup := withCLIStubs(t, func() {
		fnRunGoTests = func() error { return nil }
	})
	defer cleanup()

	code := MainWithArgs([]string{"test", "go"})
	if code != 0 {
		t.Fatalf("expected exit code 0 for successful test go, got %d", code)
	}
}

func TestMainWithArgs_TestAll_RunsBothSuites(t *testing.T) {
	var ranGo, ranBB bool
	cleanup := withCLIStubs(t, func() {
		fnRunGoTests = func() error { ranGo = true; return nil }
		fnRunBlackboxTests = func() error { ranBB = true; return nil }
	})
	defer cleanup()

	code := MainWithArgs([]string{"test", "all"})
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !ranGo || !ranBB {
		t.Fatalf("expected both suites to run: go=%v blackbox=%v", ranGo, ranBB)
	}
}

func TestMainWithArgs_FlagsAreParsedAndPassedToHandlers(t *testing.T) {
	cleanup := withCLIStubs(t, func() {
		fnListModels = func(c *Config) error {
			if c.ModelsDir != "/srv/models" {
				t.Fatalf("expected cfg.ModelsDir /srv/models from flags, got %s", c.ModelsDir)
			}
			if c.LogLvl != "debug" {
				t.Fatalf("expected cfg.LogLvl debug from flags, got %s", c.LogLvl)
			}
			return nil
		}
	})
	defer cleanup()

	args := []string{"--models-dir", "/srv/models", "--log-level", "debug", "models", "list"}
	code := MainWithArgs(args)
	if code != 0 {
		t.Fatalf("expected exit code 0 for models list with flags, got %d", code)
	}
}

func TestMainWithArgs_ModelsFetchRequiresName(t *testing.T) {
	cleanup := withCLIStubs(t, func() {
		fnFetchModel = func(c *Config, name string) error { return nil }
	})
	defer cleanup()

	code := MainWithArgs([]string{"models", "fetch"})
	if code != 1 {
		t.Fatalf("expected exit code 1 for fetch without name, got %d", code)
	}
}

func TestMainWithArgs_Smoke_Exit0(t *testing.T) {
	cleanup := withCLIStubs(t, func() {
		fnSmoke = func(c *Config) error { return nil }
	})
	defer cleanup()

	code := MainWithArgs([]string{"smoke"})
	if code != 0 {
		t.Fatalf("expected exit code 0 for smoke, got %d", code)
	}
}

// Sanity: ensure ParseConfig still delegates to ParseConfigWith with CommandLine
func TestParseConfig_DelegatesToCommandLine(t *testing.T) {
	fs := flag.CommandLine
	fs.Init("testctl", flag.ContinueOnError)
	cfg, rest := ParseConfigWith(fs, []string{"verify", "tools"})
	if cfg.ModelsDir == "" {
		t.Fatal("expected a default models dir")
	}
	if len(rest) != 2 || rest[0] != "verify" {
		t.Fatalf("unexpected rest args: %v", rest)
	}
}
