package e2e

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"transcribed/internal/httpapi"
	"transcribed/internal/pipeline"
	"transcribed/internal/registry"
	"transcribed/pkg/types"
)

// createTempModelsDir creates a temporary directory populated with empty model
// files and returns the directory path.
func createTempModelsDir(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.WriteFile(p, []byte(""), 0o644); err != nil {
			t.Fatalf("write temp model %s: %v", p, err)
		}
	}
	return dir
}

// copyTranscoder satisfies pipeline.Transcoder by copying bytes, standing in
// for ffmpeg.
type copyTranscoder struct{}

func (copyTranscoder) ToPCMWav(ctx context.Context, src, dst string) error { return copyFile(src, dst) }
func (copyTranscoder) Convert(ctx context.Context, src, dst string) error  { return copyFile(src, dst) }

func copyFile(src, dst string) error {
	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, b, 0o644)
}

// textRecognizer returns a fixed transcript. When started/release are set it
// signals entry into the recognition stage and waits, so a test can hold
// admitted requests in flight.
type textRecognizer struct {
	text    string
	started chan struct{}
	release chan struct{}
}

func (r *textRecognizer) Recognize(ctx context.Context, wavPath string, model types.Model) (string, error) {
	if r.started != nil {
		r.started <- struct{}{}
	}
	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return r.text, nil
}

// newServer wires a real pipeline with the given adapters behind the HTTP mux.
func newServer(t *testing.T, cfg pipeline.Config) *httptest.Server {
	t.Helper()
	if cfg.Registry == nil {
		dir := createTempModelsDir(t, "ggml-base.en.bin", "ggml-base.bin")
		reg, err := registry.Load(dir, map[string]string{
			"english": "ggml-base.en.bin",
			"spanish": "ggml-base.bin",
		}, "english")
		if err != nil {
			t.Fatalf("load registry: %v", err)
		}
		cfg.Registry = reg
	}
	if cfg.TempDir == "" {
		cfg.TempDir = t.TempDir()
	}
	svc := pipeline.NewWithConfig(cfg)
	srv := httptest.NewServer(httpapi.NewMux(svc))
	t.Cleanup(srv.Close)
	return srv
}

// postUpload POSTs a multipart form with an audio_file part and extra fields,
// returning the response. The caller closes the body.
func postUpload(t *testing.T, url, filename string, content []byte, fields map[string]string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("audio_file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, &buf)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	return resp
}

func drainClose(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
