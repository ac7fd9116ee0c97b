package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"transcribed/internal/registry"
	"transcribed/pkg/types"
)

// fakeTranscoder lets tests script both transcoder operations.
type fakeTranscoder struct {
	toPCM   func(ctx context.Context, src, dst string) error
	convert func(ctx context.Context, src, dst string) error
}

func (f *fakeTranscoder) ToPCMWav(ctx context.Context, src, dst string) error {
	if f.toPCM == nil {
		return os.WriteFile(dst, []byte("wav"), 0o644)
	}
	return f.toPCM(ctx, src, dst)
}

func (f *fakeTranscoder) Convert(ctx context.Context, src, dst string) error {
	if f.convert == nil {
		return os.WriteFile(dst, []byte("converted"), 0o644)
	}
	return f.convert(ctx, src, dst)
}

// fakeRecognizer returns scripted text, optionally blocking until released.
type fakeRecognizer struct {
	text    string
	err     error
	panics  bool
	started chan struct{}
	release chan struct{}
}

func (f *fakeRecognizer) Recognize(ctx context.Context, wavPath string, model types.Model) (string, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	if f.panics {
		panic("recognizer blew up")
	}
	return f.text, f.err
}

// fakeRenderer returns the transcript bytes verbatim so tests can assert on
// document content without parsing a PDF.
type fakeRenderer struct {
	mu   sync.Mutex
	err  error
	last Document
}

func (f *fakeRenderer) Render(doc Document) ([]byte, error) {
	f.mu.Lock()
	f.last = doc
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return []byte(doc.Transcript), nil
}

// newTestRegistry builds a registry with english/spanish models under a
// temp dir.
func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"small-en-us", "small-es"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	reg, err := registry.Load(dir, map[string]string{"english": "small-en-us", "spanish": "small-es"}, "english")
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

// writeUpload creates an upload fixture of the given size on disk.
func writeUpload(t *testing.T, dir, name string, size int) Upload {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write upload: %v", err)
	}
	return Upload{Name: name, Size: int64(size), Path: p}
}
