package testctl

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// verifyTools checks that the external binaries the service shells out to are
// installed and runnable.
func verifyTools() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	if err := runCmdVerbose(context.Background(), "ffmpeg", "-version"); err != nil {
		return fmt.Errorf("ffmpeg -version failed: %w", err)
	}
	whisper := envStr("WHISPER_BIN", "whisper-cli")
	if _, err := exec.LookPath(whisper); err != nil {
		if _, statErr := os.Stat(whisper); statErr != nil {
			return fmt.Errorf("recognizer %q not found in PATH (set WHISPER_BIN): %w", whisper, err)
		}
	}
	info("[verify] ffmpeg and %s are available", whisper)
	if !fnHasHostModels() {
		warn("[verify] no %s models under %s; run: testctl models fetch ggml-base.en.bin", modelExt, defaultModelsDir())
	}
	return nil
}
