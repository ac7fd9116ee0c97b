package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// supportedInputFormats are the upload extensions the service accepts.
var supportedInputFormats = map[string]struct{}{
	"mp3":  {},
	"wav":  {},
	"aac":  {},
	"m4a":  {},
	"ogg":  {},
	"flac": {},
	"wma":  {},
	"mp4":  {},
	"webm": {},
}

// InputFormats returns the accepted upload formats in sorted order.
func InputFormats() []string {
	out := make([]string, 0, len(supportedInputFormats))
	for f := range supportedInputFormats {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// normalizeExt lowercases an extension or filename suffix and strips the dot.
func normalizeExt(s string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
}

// inputExt extracts the normalized extension from an uploaded filename.
func inputExt(name string) string {
	return normalizeExt(filepath.Ext(name))
}

// validateUpload enforces the pre-gate invariants: non-empty file, supported
// format, size within the configured maximum. Violations never touch the gate.
func (s *Service) validateUpload(up Upload) error {
	if strings.TrimSpace(up.Name) == "" {
		return ErrInvalidInput("no audio file provided")
	}
	if up.Size <= 0 {
		return ErrInvalidInput("uploaded file is empty")
	}
	if up.Size > s.maxUploadBytes {
		return ErrInvalidInput(fmt.Sprintf("file too large: maximum size is %d bytes", s.maxUploadBytes))
	}
	ext := inputExt(up.Name)
	if _, ok := supportedInputFormats[ext]; !ok {
		return ErrInvalidInput(fmt.Sprintf("unsupported file format: %s (supported: %s)", ext, strings.Join(InputFormats(), ", ")))
	}
	return nil
}
