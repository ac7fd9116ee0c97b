package testctl

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// smoke builds the server binary, boots it against a scratch models dir, and
// waits for /healthz and /readyz to come up before tearing it down.
func smoke(cfg *Config) error {
	info("==== Smoke: build and boot the server ====")
	workDir, err := os.MkdirTemp("", "transcribed-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(workDir)

	bin := filepath.Join(workDir, "transcribed")
	if err := runCmdStreaming(context.Background(), "go", "build", "-o", bin, "./cmd/transcribed"); err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	modelsDir := cfg.ModelsDir
	modelName := "ggml-base.en.bin"
	if fnHasHostModels() {
		if n, err := firstModel(modelsDir); err == nil {
			modelName = n
		}
	} else {
		// Registry only stats model paths at startup, so an empty placeholder does.
		modelsDir = filepath.Join(workDir, "models")
		if err := os.MkdirAll(modelsDir, 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(modelsDir, modelName), nil, 0o644); err != nil {
			return err
		}
	}
	cfgPath := filepath.Join(workDir, "config.yaml")
	body := fmt.Sprintf("models_dir: %s\ndefault_language: english\nlanguages:\n  english: %s\n  spanish: %s\n", modelsDir, modelName, modelName)
	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		return err
	}

	port, err := chooseFreePort()
	if err != nil {
		return err
	}
	cmd := exec.Command(bin, "--addr", fmt.Sprintf(":%d", port), "--config", cfgPath)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	TrackProcess(cmd)
	defer func() { _ = defaultProcManager.KillAll() }()

	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	if err := waitHTTP(base+"/healthz", http.StatusOK, 5*time.Second); err != nil {
		return fmt.Errorf("healthz: %w", err)
	}
	if err := waitHTTP(base+"/readyz", http.StatusOK, 5*time.Second); err != nil {
		return fmt.Errorf("readyz: %w", err)
	}
	info("[smoke] server healthy on %s", base)
	return nil
}
