package formengine

import (
	internalLoader "github.com/goliatone/go-formengine/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formengine/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formengine/pkg/openapi"
)

// NewLoader returns the built-in OpenAPI document loader.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	return internalLoader.New(pkgopenapi.NewLoaderConfig(options...))
}

// NewParser returns the kin-openapi backed parser.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserConfig(options...))
}
