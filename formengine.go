// Package formengine is the top-level entry point: it re-exports the pieces a
// host needs to load form schemas, open forms and render them.
package formengine

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-formengine/pkg/engine"
	"github.com/goliatone/go-formengine/pkg/orchestrator"
	"github.com/goliatone/go-formengine/pkg/render"
	"github.com/goliatone/go-formengine/pkg/renderers/html"
	"github.com/goliatone/go-formengine/pkg/schema"
)

// RenderOptions describes per-request form attributes and hidden inputs.
type RenderOptions = render.RenderOptions

// Request selects a form and how to present it.
type Request = orchestrator.Request

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Open resolves the schema named by req and opens a form over its values.
func Open(ctx context.Context, req Request, options ...engine.Option) (*engine.Form, error) {
	return orchestrator.New().Open(ctx, req, options...)
}

// Generate resolves, opens and renders a form in one call using the built-in
// renderers.
func Generate(ctx context.Context, req Request, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, req)
}

// LoadForms parses every form document in fsys.
func LoadForms(fsys fs.FS) (*schema.Store, error) {
	return schema.LoadFS(fsys)
}

// EmbeddedForms exposes the bundled form documents.
func EmbeddedForms() fs.FS {
	return schema.EmbeddedFS()
}

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
