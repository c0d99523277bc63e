package render

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formengine/pkg/engine"
)

// JSONRenderer emits the view as JSON for client-side renderers.
type JSONRenderer struct {
	Indent string
}

// Name reports the renderer identifier.
func (JSONRenderer) Name() string {
	return "json"
}

// ContentType reports the serialization format used by Render.
func (JSONRenderer) ContentType() string {
	return "application/json"
}

// Render marshals the view. Options are ignored.
func (r JSONRenderer) Render(ctx context.Context, view engine.View, _ RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		out []byte
		err error
	)
	if r.Indent != "" {
		out, err = json.MarshalIndent(view, "", r.Indent)
	} else {
		out, err = json.Marshal(view)
	}
	if err != nil {
		return nil, fmt.Errorf("render: marshal view: %w", err)
	}
	return out, nil
}
