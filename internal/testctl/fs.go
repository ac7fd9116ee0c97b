package testctl

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// modelExt is the suffix of whisper.cpp ggml model files.
const modelExt = ".bin"

func defaultModelsDir() string {
	return filepath.Join(homeDir(), "models", "whisper")
}

func firstModel(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(strings.ToLower(name), modelExt) {
			return name, nil
		}
	}
	return "", fmt.Errorf("no %s models found in %s", modelExt, dir)
}

func hasHostModels() bool {
	entries, err := os.ReadDir(defaultModelsDir())
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), modelExt) {
			return true
		}
	}
	return false
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	h, _ := os.UserHomeDir()
	return h
}
