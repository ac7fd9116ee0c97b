package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// audioMIME maps output formats to download content types.
var audioMIME = map[string]string{
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"flac": "audio/flac",
	"m4a":  "audio/mp4",
	"aac":  "audio/aac",
}

// ConvertAudio runs the convert-format-only sequence: validate, admit,
// transcode to the requested format. Same admission and cleanup guarantees
// as Transcribe.
func (s *Service) ConvertAudio(ctx context.Context, up Upload, outputFormat string) (art Artifact, err error) {
	if verr := s.validateUpload(up); verr != nil {
		return Artifact{}, verr
	}
	format := normalizeExt(outputFormat)
	if _, ok := s.outputFormats[format]; !ok {
		return Artifact{}, ErrInvalidInput(fmt.Sprintf("unsupported output format: %s", outputFormat))
	}

	slot, ok := s.gate.TryAcquire()
	if !ok {
		return Artifact{}, overloadedError{}
	}
	defer slot.Release()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("file", up.Name).Msg("conversion pipeline panicked")
			art, err = Artifact{}, ErrEngineFailure("transcode", fmt.Errorf("panic: %v", r))
		}
	}()

	dst := filepath.Join(s.tempDir, uuid.NewString()+"."+format)
	defer os.Remove(dst)
	tctx, cancel := s.stageCtx(ctx)
	terr := s.transcoder.Convert(tctx, up.Path, dst)
	cancel()
	if terr != nil {
		return Artifact{}, s.classify("transcode", terr)
	}

	out, rerr := os.ReadFile(dst)
	if rerr != nil {
		return Artifact{}, s.classify("transcode", fmt.Errorf("converted file missing: %w", rerr))
	}

	mime := audioMIME[format]
	if mime == "" {
		mime = "application/octet-stream"
	}
	base := strings.TrimSuffix(up.Name, filepath.Ext(up.Name))
	return Artifact{
		Bytes:    out,
		MIME:     mime,
		Filename: base + "." + format,
	}, nil
}
