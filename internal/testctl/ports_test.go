package testctl

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChooseFreePort(t *testing.T) {
	p, err := chooseFreePort()
	if err != nil {
		t.Fatalf("chooseFreePort: %v", err)
	}
	if p <= 0 || p > 65535 {
		t.Fatalf("bogus port %d", p)
	}
}

func TestWaitHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()
	if err := waitHTTP(srv.URL, http.StatusOK, 2*time.Second); err != nil {
		t.Fatalf("waitHTTP: %v", err)
	}
}

func TestWaitHTTP_TimesOut(t *testing.T) {
	p, err := chooseFreePort()
	if err != nil {
		t.Fatalf("chooseFreePort: %v", err)
	}
	url := fmt.Sprintf("http://127.0.0.1:%d/healthz", p)
	if err := waitHTTP(url, http.StatusOK, 300*time.Millisecond); err == nil {
		t.Fatal("expected timeout error")
	}
}
