package loader

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	pkgopenapi "github.com/goliatone/go-formengine/pkg/openapi"
)

// Loader reads OpenAPI documents from disk or from a configured fs.FS.
type Loader struct {
	files fs.FS
}

var _ pkgopenapi.Loader = (*Loader)(nil)

// New returns a Loader for cfg.
func New(cfg pkgopenapi.LoaderConfig) *Loader {
	return &Loader{files: cfg.Files}
}

// Load reads src and wraps the bytes in a Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (pkgopenapi.Document, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Document{}, err
	}
	if src.IsZero() {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: empty source")
	}

	data, err := l.read(src)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("openapi loader: read %s: %w", src, err)
	}
	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) read(src pkgopenapi.Source) ([]byte, error) {
	if !src.InFS {
		return os.ReadFile(src.Path)
	}
	if l.files == nil {
		return nil, fmt.Errorf("no file system configured")
	}
	return fs.ReadFile(l.files, src.Path)
}
