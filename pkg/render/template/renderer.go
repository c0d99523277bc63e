package template

import (
	"context"
	"io"
)

// Filter transforms a value inside a template: {{ value|name:param }}.
type Filter func(input any, param any) (any, error)

// TemplateRenderer is what template-backed renderers need from an engine.
type TemplateRenderer interface {
	Execute(ctx context.Context, w io.Writer, name string, data any) error
	ExecuteString(w io.Writer, source string, data any) error
	AddFilter(name string, fn Filter) error
	SetGlobals(globals map[string]any)
}
