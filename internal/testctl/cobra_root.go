package testctl

import (
	"os"

	"github.com/spf13/cobra"
)

// buildRootCmdWith constructs a Cobra command tree wired to the existing fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "testctl",
		Short:         "Dev and test utilities for the transcription service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags -> Config
	root.PersistentFlags().String("models-dir", cfg.ModelsDir, "Directory holding recognition model files (defaults TRANSCRIBED_MODELS_DIR)")
	root.PersistentFlags().String("log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults TESTCTL_LOG_LEVEL or info)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if f := cmd.InheritedFlags().Lookup("models-dir"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.ModelsDir = v
			}
		}
		if f := cmd.InheritedFlags().Lookup("log-level"); f != nil {
			if v := f.Value.String(); v != "" {
				cfg.LogLvl = v
			}
		}
		SetLogLevel(cfg.LogLvl)
	}

	// verify group
	verifyCmd := &cobra.Command{Use: "verify", Short: "Verify the local environment", RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}}
	verifyToolsCmd := &cobra.Command{Use: "tools", Short: "Check ffmpeg and the recognizer binary", Example: "  testctl verify tools", RunE: func(cmd *cobra.Command, args []string) error { return fnVerifyTools() }}
	verifyCmd.AddCommand(verifyToolsCmd)
	root.AddCommand(verifyCmd)

	// models group
	modelsCmd := &cobra.Command{Use: "models", Short: "Manage recognition model files", RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}}
	modelsList := &cobra.Command{Use: "list", Short: "List model files in the models dir", RunE: func(cmd *cobra.Command, args []string) error { return fnListModels(cfg) }}
	modelsFetch := &cobra.Command{Use: "fetch <name>", Short: "Download a ggml model into the models dir", Example: "  testctl models fetch ggml-base.en.bin", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error { return fnFetchModel(cfg, args[0]) }}
	modelsCmd.AddCommand(modelsList, modelsFetch)
	root.AddCommand(modelsCmd)

	// test group
	testCmd := &cobra.Command{Use: "test", Short: "Run test suites", RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	}}
	testGo := &cobra.Command{Use: "go", Short: "Run Go tests", RunE: func(cmd *cobra.Command, args []string) error { return fnRunGoTests() }}
	testBlackbox := &cobra.Command{Use: "blackbox", Short: "Run blackbox tests against a built binary", RunE: func(cmd *cobra.Command, args []string) error { return fnRunBlackboxTests() }}
	testAll := &cobra.Command{Use: "all", Short: "Go tests, then blackbox", RunE: func(cmd *cobra.Command, args []string) error {
		if err := fnRunGoTests(); err != nil {
			return err
		}
		return fnRunBlackboxTests()
	}}
	testCmd.AddCommand(testGo, testBlackbox, testAll)
	root.AddCommand(testCmd)

	// smoke
	smokeCmd := &cobra.Command{Use: "smoke", Short: "Build and boot the server, wait for health", RunE: func(cmd *cobra.Command, args []string) error { return fnSmoke(cfg) }}
	root.AddCommand(smokeCmd)

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(os.Stdout) }})
	root.AddCommand(completionCmd)

	return root
}
