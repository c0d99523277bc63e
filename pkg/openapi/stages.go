package openapi

import (
	"context"
	"io/fs"
)

// Loader reads a Document from a Source.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// Parser extracts the operations of a Document keyed by operationId.
type Parser interface {
	Operations(ctx context.Context, doc Document) (map[string]Operation, error)
}

// LoaderConfig holds loader settings.
type LoaderConfig struct {
	// Files serves sources created with SourceFromFS.
	Files fs.FS
}

// LoaderOption adjusts a LoaderConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets the fs.FS that SourceFromFS names resolve against.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(cfg *LoaderConfig) {
		cfg.Files = files
	}
}

// NewLoaderConfig applies options to an empty LoaderConfig.
func NewLoaderConfig(options ...LoaderOption) LoaderConfig {
	var cfg LoaderConfig
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// ParserConfig holds parser settings. The zero value validates documents.
type ParserConfig struct {
	// SkipValidation parses documents that kin-openapi would reject.
	SkipValidation bool
}

// ParserOption adjusts a ParserConfig.
type ParserOption func(*ParserConfig)

// WithoutValidation parses without validating the document first.
func WithoutValidation() ParserOption {
	return func(cfg *ParserConfig) {
		cfg.SkipValidation = true
	}
}

// NewParserConfig applies options to the default ParserConfig.
func NewParserConfig(options ...ParserOption) ParserConfig {
	var cfg ParserConfig
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
