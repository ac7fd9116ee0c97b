package testctl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"transcribed/internal/common/fsutil"
)

// modelBaseURL hosts the prebuilt whisper.cpp ggml models.
const modelBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// listModels prints the model files found under the configured models dir.
func listModels(cfg *Config) error {
	entries, err := os.ReadDir(cfg.ModelsDir)
	if err != nil {
		return fmt.Errorf("read models dir: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), modelExt) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		fmt.Printf("%-40s %12d bytes\n", e.Name(), fi.Size())
		n++
	}
	if n == 0 {
		info("[models] no %s files under %s", modelExt, cfg.ModelsDir)
	}
	return nil
}

// fetchModel downloads a ggml model into the models dir via curl.
func fetchModel(cfg *Config, name string) error {
	if !strings.HasSuffix(name, modelExt) {
		name += modelExt
	}
	if err := os.MkdirAll(cfg.ModelsDir, 0o755); err != nil {
		return fmt.Errorf("create models dir: %w", err)
	}
	dst := filepath.Join(cfg.ModelsDir, name)
	if fsutil.PathExists(dst) {
		info("[models] %s already present, skipping", dst)
		return nil
	}
	url := fmt.Sprintf("%s/%s", modelBaseURL, name)
	info("[models] downloading %s", url)
	if err := runCmdStreaming(context.Background(), "curl", "-L", "--fail", "-o", dst, url); err != nil {
		errl("[models] download failed: %v", err)
		_ = os.Remove(dst)
		return fmt.Errorf("download %s: %w", name, err)
	}
	info("[models] saved %s", dst)
	return nil
}
