package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/richinsley/goshaderplay/loader"
	"github.com/richinsley/goshaderplay/options"
	"github.com/richinsley/goshaderplay/shader"
)

func parseOptions(t *testing.T, args ...string) *options.PlayerOptions {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	opts := options.Register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	return opts
}

func TestFetchSourcesSharesLoader(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.vert"), []byte("vert\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.frag"), []byte("frag\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := loader.New(dir)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		wantVert string
	}{
		{"pair", []string{"-vert", "a.vert", "-frag", "a.frag"}, "vert\n"},
		{"built-in vertex stage", []string{"-vert", "", "-frag", "a.frag"}, shader.GenerateVertexShader(false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := parseOptions(t, tt.args...)
			vert, frag, err := fetchSources(context.Background(), l, opts, false)
			if err != nil {
				t.Fatalf("fetchSources() error = %v", err)
			}
			if vert != tt.wantVert || frag != "frag\n" {
				t.Errorf("fetchSources() = %q, %q", vert, frag)
			}
		})
	}
}

func TestFetchSourcesMissingFragment(t *testing.T) {
	l, err := loader.New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := parseOptions(t, "-vert", "", "-frag", "missing.frag")
	if _, _, err := fetchSources(context.Background(), l, opts, false); err == nil {
		t.Fatal("fetchSources() error = nil, want fetch error")
	}
}
