package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	pkgopenapi "github.com/goliatone/go-formengine/pkg/openapi"
)

func TestLoader_FileAndFS(t *testing.T) {
	payload := []byte("openapi: 3.0.3\n")
	path := filepath.Join(t.TempDir(), "api.yaml")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := New(pkgopenapi.NewLoaderConfig(pkgopenapi.WithFileSystem(fstest.MapFS{
		"specs/api.yaml": {Data: payload},
	})))

	doc, err := l.Load(context.Background(), pkgopenapi.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if string(doc.Data) != string(payload) || doc.Source.Path != path || doc.Source.InFS {
		t.Fatalf("unexpected file document %+v", doc)
	}

	doc, err = l.Load(context.Background(), pkgopenapi.SourceFromFS("specs/api.yaml"))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if doc.Source.String() != "fs:specs/api.yaml" {
		t.Fatalf("unexpected source %q", doc.Source)
	}
}

func TestLoader_Errors(t *testing.T) {
	l := New(pkgopenapi.LoaderConfig{})
	ctx := context.Background()

	if _, err := l.Load(ctx, pkgopenapi.Source{}); err == nil {
		t.Fatalf("expected empty source error")
	}
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFS("api.yaml")); err == nil {
		t.Fatalf("expected error without filesystem")
	}
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFile(filepath.Join(t.TempDir(), "missing.yaml"))); err == nil {
		t.Fatalf("expected missing file error")
	}

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := l.Load(ctx, pkgopenapi.SourceFromFile(empty)); err == nil {
		t.Fatalf("expected empty document error")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := l.Load(cancelled, pkgopenapi.SourceFromFile("api.yaml")); err == nil {
		t.Fatalf("expected context error")
	}
}
