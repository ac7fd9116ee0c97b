package testctl

import (
	"context"
)

// Tests
func runGoTests() error {
	info("==== Run Go tests ====")
	return runCmdStreaming(context.Background(), "go", "test", "./...", "-v")
}

func runBlackboxTests() error {
	info("==== Run blackbox tests against a built binary ====")
	return runCmdStreaming(context.Background(), "go", "test", "./tests/blackbox/...", "-v")
}
