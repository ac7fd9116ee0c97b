package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"transcribed/pkg/types"
)

// Recognizer runs offline speech recognition over normalized PCM audio.
// Completing with empty text is a valid result, not an error.
type Recognizer interface {
	Recognize(ctx context.Context, wavPath string, model types.Model) (string, error)
}

// whisperRecognizer shells out to a whisper.cpp style CLI that writes the
// transcript next to a requested output base path.
type whisperRecognizer struct {
	bin     string
	tempDir string
	runner  commandRunner
}

// NewWhisperRecognizer builds the production recognizer. An empty bin falls
// back to resolving "whisper-cli" on PATH.
func NewWhisperRecognizer(bin, tempDir string) Recognizer {
	if bin == "" {
		bin = "whisper-cli"
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &whisperRecognizer{bin: bin, tempDir: tempDir, runner: execRunner{}}
}

func (r *whisperRecognizer) Recognize(ctx context.Context, wavPath string, model types.Model) (string, error) {
	base := filepath.Join(r.tempDir, uuid.NewString())
	txtPath := base + ".txt"
	defer os.Remove(txtPath)

	args := []string{
		"-m", model.Path,
		"-f", wavPath,
		"-of", base,
		"--output-txt",
		"--no-prints",
	}
	if lang := engineLang(model.Tag); lang != "" {
		args = append(args, "-l", lang)
	}

	res, err := r.runner.Run(ctx, r.bin, args...)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("recognizer exited with code %d: %s", res.ExitCode, firstLine(res.Stderr))
	}
	content, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("recognizer completed but transcript is missing: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}

// engineLang reduces a tag like "en-US" to the short code the engine expects.
func engineLang(tag string) string {
	if tag == "" {
		return ""
	}
	return strings.ToLower(strings.SplitN(tag, "-", 2)[0])
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
