package testctl

import (
	"flag"
	"fmt"
	"os"
)

type Config struct {
	ModelsDir string
	LogLvl    string
}

func usage() {
	fmt.Println("Usage: testctl [--models-dir DIR] [--log-level info] <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  verify tools")
	fmt.Println("  models list")
	fmt.Println("  models fetch <name>")
	fmt.Println("  test go")
	fmt.Println("  test blackbox")
	fmt.Println("  test all")
	fmt.Println("  smoke")
}

// Run dispatches the CLI command. It returns an error instead of exiting,
// enabling reuse from other packages or tests.
func Run(args []string, cfg *Config) error {
	switch args[0] {
	case "verify":
		if len(args) < 2 || args[1] != "tools" {
			return fmt.Errorf("verify requires a subcommand: tools")
		}
		return fnVerifyTools()
	case "models":
		if len(args) < 2 {
			return fmt.Errorf("models requires a subcommand: list|fetch")
		}
		switch args[1] {
		case "list":
			return fnListModels(cfg)
		case "fetch":
			if len(args) < 3 {
				return fmt.Errorf("models fetch requires a model name, e.g., ggml-base.en.bin")
			}
			return fnFetchModel(cfg, args[2])
		default:
			return fmt.Errorf("unknown models subcommand: %s", args[1])
		}
	case "test":
		if len(args) < 2 {
			return fmt.Errorf("test requires a subcommand: go|blackbox|all")
		}
		switch args[1] {
		case "go":
			return fnRunGoTests()
		case "blackbox":
			return fnRunBlackboxTests()
		case "all":
			if err := fnRunGoTests(); err != nil {
				return err
			}
			return fnRunBlackboxTests()
		default:
			return fmt.Errorf("unknown test subcommand: %s", args[1])
		}
	case "smoke":
		return fnSmoke(cfg)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func ParseConfig() (*Config, []string) {
	return ParseConfigWith(flag.CommandLine, os.Args[1:])
}

// ParseConfigWith parses flags using the provided FlagSet and args slice.
// This enables tests to inject their own FlagSet and arguments without
// mutating global state.
func ParseConfigWith(fs *flag.FlagSet, args []string) (*Config, []string) {
	cfg := &Config{}
	// Only define flags if they are not already present on the provided FlagSet.
	if fs.Lookup("models-dir") == nil {
		fs.String("models-dir", envStr("TRANSCRIBED_MODELS_DIR", defaultModelsDir()), "Directory holding recognition model files")
	}
	if fs.Lookup("log-level") == nil {
		fs.String("log-level", envStr("TESTCTL_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	}
	_ = fs.Parse(args)
	// Read back values from the parsed FlagSet, falling back to env defaults.
	md := envStr("TRANSCRIBED_MODELS_DIR", defaultModelsDir())
	if f := fs.Lookup("models-dir"); f != nil {
		if v := f.Value.String(); v != "" {
			md = v
		}
	}
	ll := envStr("TESTCTL_LOG_LEVEL", "info")
	if f := fs.Lookup("log-level"); f != nil {
		if v := f.Value.String(); v != "" {
			ll = v
		}
	}
	cfg.ModelsDir = md
	cfg.LogLvl = ll
	SetLogLevel(cfg.LogLvl)
	return cfg, fs.Args()
}

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code (0 for success, non-zero on error).
func MainWithArgs(args []string) int {
	// If user explicitly asks for help, print usage and exit 0
	for _, a := range args {
		if a == "-h" || a == "--help" || a == "help" {
			usage()
			return 0
		}
	}
	fs := flag.NewFlagSet("testctl", flag.ContinueOnError)
	cfg, rest := ParseConfigWith(fs, args)
	if len(rest) == 0 {
		usage()
		return 2
	}
	if err := Run(rest, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// Main executes the Cobra command tree and returns an exit code for use by
// cmd/testctl.
func Main() int {
	cfg := &Config{
		ModelsDir: envStr("TRANSCRIBED_MODELS_DIR", defaultModelsDir()),
		LogLvl:    envStr("TESTCTL_LOG_LEVEL", "info"),
	}
	root := buildRootCmdWith(cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}
