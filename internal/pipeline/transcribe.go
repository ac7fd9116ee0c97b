package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const pdfMIME = "application/pdf"

// Transcribe runs the transcribe-to-document sequence for one request:
// validate, admit, normalize, recognize, render. The gate slot and all
// scratch files are released on every exit path, panics included.
func (s *Service) Transcribe(ctx context.Context, up Upload, language string) (art Artifact, err error) {
	if verr := s.validateUpload(up); verr != nil {
		return Artifact{}, verr
	}
	if !s.registry.Known(language) {
		return Artifact{}, ErrInvalidInput(fmt.Sprintf("unsupported language: %s (supported: %s)", language, strings.Join(s.registry.Languages(), ", ")))
	}

	slot, ok := s.gate.TryAcquire()
	if !ok {
		return Artifact{}, overloadedError{}
	}
	defer slot.Release()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("file", up.Name).Msg("transcription pipeline panicked")
			art, err = Artifact{}, ErrEngineFailure("transcription", fmt.Errorf("panic: %v", r))
		}
	}()

	wavPath := up.Path
	if inputExt(up.Name) != "wav" {
		wavPath = filepath.Join(s.tempDir, uuid.NewString()+".wav")
		defer os.Remove(wavPath)
		tctx, cancel := s.stageCtx(ctx)
		terr := s.transcoder.ToPCMWav(tctx, up.Path, wavPath)
		cancel()
		if terr != nil {
			return Artifact{}, s.classify("transcode", terr)
		}
	}

	model, ok := s.registry.Resolve(language)
	if !ok {
		// Known() passed, so only a racing registry misconfiguration lands here.
		return Artifact{}, ErrEngineFailure("recognition", fmt.Errorf("no model for language %q", language))
	}

	rctx, cancel := s.stageCtx(ctx)
	text, rerr := s.recognizer.Recognize(rctx, wavPath, model)
	cancel()
	if rerr != nil {
		return Artifact{}, s.classify("recognition", rerr)
	}
	if strings.TrimSpace(text) == "" {
		text = NoSpeechMarker
	}

	bytes, derr := s.renderer.Render(Document{
		SourceFile:    up.Name,
		Language:      model.Language,
		Engine:        s.engine,
		GeneratedAt:   time.Now(),
		FileSizeBytes: up.Size,
		Transcript:    text,
	})
	if derr != nil {
		return Artifact{}, s.classify("document", derr)
	}

	base := strings.TrimSuffix(up.Name, filepath.Ext(up.Name))
	return Artifact{
		Bytes:    bytes,
		MIME:     pdfMIME,
		Filename: base + "_transcription.pdf",
	}, nil
}

// classify maps a stage failure to exactly one taxonomy member. Errors the
// adapters already classified pass through; everything else is an engine
// fault, logged with its cause.
func (s *Service) classify(stage string, err error) error {
	if err == nil || IsInvalidInput(err) || IsOverloaded(err) {
		return err
	}
	if !IsEngineFailure(err) {
		err = ErrEngineFailure(stage, err)
	}
	s.log.Error().Err(err).Str("stage", stage).Msg("stage failed")
	return err
}
