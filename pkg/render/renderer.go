package render

import (
	"context"

	"github.com/goliatone/go-formengine/pkg/engine"
)

// Renderer converts an engine.View into bytes (HTML, JSON, ...).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view engine.View, options RenderOptions) ([]byte, error)
}
