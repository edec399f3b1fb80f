package loader

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/shaders/vert.glsl", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("#version 300 es\r\nvoid main() {}\r\n"))
	})
	mux.HandleFunc("/shaders/frag.glsl", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("#version 300 es\nprecision highp float;\r\nout vec4 c;\r\nvoid main() { c = vec4(1.0); }\n"))
	})
	mux.HandleFunc("/textures/noise.bin", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{0x89, 'P', '\r', '\n', 0x00})
	})
	mux.HandleFunc("/shaders/broken.glsl", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchTextNormalizesLineEndings(t *testing.T) {
	srv := newServer(t)
	l, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := l.FetchText(context.Background(), "shaders/vert.glsl")
	if err != nil {
		t.Fatalf("FetchText: %v", err)
	}
	if strings.Contains(got, "\r") {
		t.Errorf("result still contains CR: %q", got)
	}
	if want := "#version 300 es\nvoid main() {}\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFetchTextErrorStatus(t *testing.T) {
	srv := newServer(t)
	l, err := New(srv.URL + "/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		ref    string
		status int
	}{
		{"shaders/missing.glsl", http.StatusNotFound},
		{"shaders/broken.glsl", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			_, err := l.FetchText(context.Background(), tt.ref)
			var fe *ResourceFetchError
			if !errors.As(err, &fe) {
				t.Fatalf("got %v, want *ResourceFetchError", err)
			}
			if fe.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", fe.StatusCode, tt.status)
			}
			wantURL := srv.URL + "/" + tt.ref
			if fe.URL != wantURL {
				t.Errorf("URL = %q, want %q", fe.URL, wantURL)
			}
			if !strings.Contains(err.Error(), wantURL) {
				t.Errorf("error %q does not name %q", err.Error(), wantURL)
			}
		})
	}
}

func TestFetchTextNetworkFailure(t *testing.T) {
	srv := newServer(t)
	base := srv.URL
	srv.Close()

	l, err := New(base)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = l.FetchText(context.Background(), "shaders/vert.glsl")
	var fe *ResourceFetchError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *ResourceFetchError", err)
	}
	if fe.Err == nil || fe.StatusCode != 0 {
		t.Errorf("got %+v, want transport error without status", fe)
	}
}

func TestFetchTextLocalDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "shaders"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "shaders", "frag.glsl"), []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := l.FetchText(context.Background(), "shaders/frag.glsl")
	if err != nil {
		t.Fatalf("FetchText: %v", err)
	}
	if got != "a\nb\n" {
		t.Errorf("got %q, want %q", got, "a\nb\n")
	}

	_, err = l.FetchText(context.Background(), "shaders/vert.glsl")
	var fe *ResourceFetchError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *ResourceFetchError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v should wrap os.ErrNotExist", err)
	}
}

func TestFetchPair(t *testing.T) {
	srv := newServer(t)
	l, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	vert, frag, err := l.FetchPair(context.Background(), "shaders/vert.glsl", "shaders/frag.glsl")
	if err != nil {
		t.Fatalf("FetchPair: %v", err)
	}
	if !strings.HasPrefix(vert, "#version 300 es\n") || !strings.Contains(frag, "out vec4 c;\n") {
		t.Errorf("unexpected sources: %q / %q", vert, frag)
	}

	_, _, err = l.FetchPair(context.Background(), "shaders/vert.glsl", "shaders/missing.glsl")
	var fe *ResourceFetchError
	if !errors.As(err, &fe) {
		t.Fatalf("got %v, want *ResourceFetchError", err)
	}
}

func TestFetchBytesUnmodified(t *testing.T) {
	srv := newServer(t)
	l, err := New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := l.FetchBytes(context.Background(), "textures/noise.bin")
	if err != nil {
		t.Fatalf("FetchBytes: %v", err)
	}
	if want := []byte{0x89, 'P', '\r', '\n', 0x00}; !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
