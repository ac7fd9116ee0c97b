package pipeline

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestTranscribeBasic(t *testing.T) {
	dir := t.TempDir()
	rec := &fakeRecognizer{text: "hello from the audio"}
	rend := &fakeRenderer{}
	svc := NewWithConfig(Config{
		Registry:      newTestRegistry(t),
		MaxConcurrent: 5,
		TempDir:       dir,
		Transcoder:    &fakeTranscoder{},
		Recognizer:    rec,
		Renderer:      rend,
	})

	up := writeUpload(t, dir, "meeting.wav", 128)
	art, err := svc.Transcribe(context.Background(), up, "english")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if string(art.Bytes) != "hello from the audio" {
		t.Fatalf("artifact bytes = %q", art.Bytes)
	}
	if art.MIME != pdfMIME || art.Filename != "meeting_transcription.pdf" {
		t.Fatalf("unexpected artifact: mime=%q name=%q", art.MIME, art.Filename)
	}
	if rend.last.Language != "english" {
		t.Fatalf("document language = %q", rend.last.Language)
	}
	if a := svc.gate.Snapshot().Active; a != 0 {
		t.Fatalf("active = %d after completion, want 0", a)
	}
}

func TestTranscribeNormalizesNonWAV(t *testing.T) {
	dir := t.TempDir()
	normalized := false
	tr := &fakeTranscoder{toPCM: func(ctx context.Context, src, dst string) error {
		normalized = true
		return os.WriteFile(dst, []byte("wav"), 0o644)
	}}
	svc := NewWithConfig(Config{
		Registry:   newTestRegistry(t),
		TempDir:    dir,
		Transcoder: tr,
		Recognizer: &fakeRecognizer{text: "hola"},
		Renderer:   &fakeRenderer{},
	})

	up := writeUpload(t, dir, "clip.mp3", 64)
	if _, err := svc.Transcribe(context.Background(), up, "spanish"); err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if !normalized {
		t.Fatalf("mp3 upload skipped normalization")
	}
}

func TestTranscribeWAVSkipsNormalization(t *testing.T) {
	dir := t.TempDir()
	tr := &fakeTranscoder{toPCM: func(ctx context.Context, src, dst string) error {
		t.Fatalf("wav upload should not be transcoded")
		return nil
	}}
	svc := NewWithConfig(Config{
		Registry:   newTestRegistry(t),
		TempDir:    dir,
		Transcoder: tr,
		Recognizer: &fakeRecognizer{text: "ok"},
		Renderer:   &fakeRenderer{},
	})
	up := writeUpload(t, dir, "already.wav", 64)
	if _, err := svc.Transcribe(context.Background(), up, "auto"); err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
}

func TestTranscribeEmptyRecognitionIsSuccess(t *testing.T) {
	dir := t.TempDir()
	rend := &fakeRenderer{}
	svc := NewWithConfig(Config{
		Registry:   newTestRegistry(t),
		TempDir:    dir,
		Transcoder: &fakeTranscoder{},
		Recognizer: &fakeRecognizer{text: "   "},
		Renderer:   rend,
	})
	up := writeUpload(t, dir, "silence.wav", 64)
	art, err := svc.Transcribe(context.Background(), up, "english")
	if err != nil {
		t.Fatalf("empty recognition must not fail: %v", err)
	}
	if !strings.Contains(string(art.Bytes), NoSpeechMarker) {
		t.Fatalf("document missing no-speech marker: %q", art.Bytes)
	}
}

func TestTranscribeOversizedUploadPreGate(t *testing.T) {
	dir := t.TempDir()
	svc := NewWithConfig(Config{
		Registry:       newTestRegistry(t),
		MaxUploadBytes: 1_000_000,
		TempDir:        dir,
		Transcoder:     &fakeTranscoder{},
		Recognizer:     &fakeRecognizer{},
		Renderer:       &fakeRenderer{},
	})
	up := Upload{Name: "big.wav", Size: 2_000_000, Path: "unused"}
	_, err := svc.Transcribe(context.Background(), up, "english")
	if !IsInvalidInput(err) {
		t.Fatalf("err = %v, want invalid input", err)
	}
	if a := svc.gate.Snapshot().Active; a != 0 {
		t.Fatalf("gate touched on pre-gate rejection: active=%d", a)
	}
}

func TestTranscribeUnsupportedFormatAndLanguage(t *testing.T) {
	dir := t.TempDir()
	svc := NewWithConfig(Config{
		Registry:   newTestRegistry(t),
		TempDir:    dir,
		Transcoder: &fakeTranscoder{},
		Recognizer: &fakeRecognizer{},
		Renderer:   &fakeRenderer{},
	})
	up := writeUpload(t, dir, "notes.txt", 16)
	if _, err := svc.Transcribe(context.Background(), up, "english"); !IsInvalidInput(err) {
		t.Fatalf("txt upload: err = %v, want invalid input", err)
	}
	up2 := writeUpload(t, dir, "clip.wav", 16)
	if _, err := svc.Transcribe(context.Background(), up2, "klingon"); !IsInvalidInput(err) {
		t.Fatalf("unknown language: err = %v, want invalid input", err)
	}
}

func TestTranscribeCorruptMediaIsClientError(t *testing.T) {
	dir := t.TempDir()
	tr := &fakeTranscoder{toPCM: func(ctx context.Context, src, dst string) error {
		return ErrInvalidInput("unsupported or corrupt audio: the file could not be decoded")
	}}
	svc := NewWithConfig(Config{
		Registry:   newTestRegistry(t),
		TempDir:    dir,
		Transcoder: tr,
		Recognizer: &fakeRecognizer{},
		Renderer:   &fakeRenderer{},
	})
	up := writeUpload(t, dir, "corrupt.mp3", 16)
	if _, err := svc.Transcribe(context.Background(), up, "english"); !IsInvalidInput(err) {
		t.Fatalf("err = %v, want invalid input", err)
	}
	if a := svc.gate.Snapshot().Active; a != 0 {
		t.Fatalf("slot leaked on transcode failure: active=%d", a)
	}
}

func TestTranscribeEngineFaultIsServerError(t *testing.T) {
	dir := t.TempDir()
	svc := NewWithConfig(Config{
		Registry:   newTestRegistry(t),
		TempDir:    dir,
		Transcoder: &fakeTranscoder{},
		Recognizer: &fakeRecognizer{err: errors.New("decoder fault")},
		Renderer:   &fakeRenderer{},
	})
	up := writeUpload(t, dir, "clip.wav", 16)
	_, err := svc.Transcribe(context.Background(), up, "english")
	if !IsEngineFailure(err) {
		t.Fatalf("err = %v, want engine failure", err)
	}
	if a := svc.gate.Snapshot().Active; a != 0 {
		t.Fatalf("slot leaked on engine fault: active=%d", a)
	}
}

func TestTranscribePanicReleasesSlot(t *testing.T) {
	dir := t.TempDir()
	svc := NewWithConfig(Config{
		Registry:   newTestRegistry(t),
		TempDir:    dir,
		Transcoder: &fakeTranscoder{},
		Recognizer: &fakeRecognizer{panics: true},
		Renderer:   &fakeRenderer{},
	})
	up := writeUpload(t, dir, "clip.wav", 16)
	_, err := svc.Transcribe(context.Background(), up, "english")
	if !IsEngineFailure(err) {
		t.Fatalf("panic should surface as engine failure, got %v", err)
	}
	if a := svc.gate.Snapshot().Active; a != 0 {
		t.Fatalf("slot leaked after panic: active=%d", a)
	}
}

func TestTranscribeOverloadScenario(t *testing.T) {
	dir := t.TempDir()
	rec := &fakeRecognizer{
		text:    "busy",
		started: make(chan struct{}, 2),
		release: make(chan struct{}),
	}
	svc := NewWithConfig(Config{
		Registry:      newTestRegistry(t),
		MaxConcurrent: 2,
		TempDir:       dir,
		Transcoder:    &fakeTranscoder{},
		Recognizer:    rec,
		Renderer:      &fakeRenderer{},
	})

	done := make(chan error, 2)
	for i := 0; i < 2; i++ {
		up := writeUpload(t, dir, "inflight.wav", 16)
		go func() {
			_, err := svc.Transcribe(context.Background(), up, "english")
			done <- err
		}()
	}
	// Wait for both to be admitted and blocked inside recognition.
	<-rec.started
	<-rec.started

	up3 := writeUpload(t, dir, "third.wav", 16)
	if _, err := svc.Transcribe(context.Background(), up3, "english"); !IsOverloaded(err) {
		t.Fatalf("third request: err = %v, want overloaded", err)
	}
	if st := svc.Status(); st.CanAcceptRequests || st.ActiveRequests != 2 {
		t.Fatalf("unexpected status under load: %+v", st)
	}

	// Let one in-flight request finish; a fourth submission must now be
	// admitted while the other is still running.
	rec.release <- struct{}{}
	if err := <-done; err != nil {
		t.Fatalf("in-flight request failed: %v", err)
	}
	slot, ok := svc.gate.TryAcquire()
	if !ok {
		t.Fatalf("fourth request denied after capacity was freed")
	}
	slot.Release()

	rec.release <- struct{}{}
	if err := <-done; err != nil {
		t.Fatalf("in-flight request failed: %v", err)
	}
	if a := svc.gate.Snapshot().Active; a != 0 {
		t.Fatalf("active = %d after drain, want 0", a)
	}
}
