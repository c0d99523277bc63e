package openapi

import (
	"errors"
	"path/filepath"
)

// Source names an OpenAPI document: a path on disk, or a name inside the
// loader's fs.FS when InFS is set.
type Source struct {
	Path string
	InFS bool
}

// SourceFromFile points at a document on disk.
func SourceFromFile(path string) Source {
	return Source{Path: filepath.Clean(path)}
}

// SourceFromFS points at a document inside the loader's file system.
func SourceFromFS(name string) Source {
	return Source{Path: name, InFS: true}
}

// IsZero reports whether the source names nothing.
func (s Source) IsZero() bool {
	return s.Path == ""
}

func (s Source) String() string {
	if s.InFS {
		return "fs:" + s.Path
	}
	return s.Path
}

// Document is a loaded, not yet parsed, OpenAPI payload.
type Document struct {
	Source Source
	Data   []byte
}

// NewDocument copies data into a Document.
func NewDocument(src Source, data []byte) (Document, error) {
	if src.IsZero() {
		return Document{}, errors.New("openapi: document source is empty")
	}
	if len(data) == 0 {
		return Document{}, errors.New("openapi: document " + src.String() + " is empty")
	}
	return Document{Source: src, Data: append([]byte(nil), data...)}, nil
}

// Operation is one OpenAPI operation reduced to what a form needs.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
}

// Schema is the request body schema, or one of its properties. Extensions
// carries the ExtensionNamespace map when the document sets one.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Title       string
	Description string
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	Enum        []any
	Default     any
	Extensions  map[string]any
}
