package parser

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formengine/pkg/openapi"
)

// preferredMediaTypes are tried in order before any other request content.
var preferredMediaTypes = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// Parser reads operations with kin-openapi.
type Parser struct {
	validate bool
}

var _ pkgopenapi.Parser = (*Parser)(nil)

// New returns a Parser for cfg.
func New(cfg pkgopenapi.ParserConfig) *Parser {
	return &Parser{validate: !cfg.SkipValidation}
}

// Operations returns every operation in doc keyed by operationId, or by
// "<method>:<path>" in lower-case method when the id is missing. External
// references are refused.
func (p *Parser) Operations(ctx context.Context, doc pkgopenapi.Document) (map[string]pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(doc.Data) == 0 {
		return nil, errors.New("openapi parser: empty document")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = false

	api, err := loader.LoadFromData(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: %s: %w", doc.Source, err)
	}
	if p.validate {
		if err := api.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: %s is invalid: %w", doc.Source, err)
		}
	}
	if api.Paths == nil || api.Paths.Len() == 0 {
		return nil, fmt.Errorf("openapi parser: %s declares no paths", doc.Source)
	}

	out := make(map[string]pkgopenapi.Operation)
	for path, item := range api.Paths.Map() {
		if item == nil {
			continue
		}
		for method, operation := range item.Operations() {
			if operation == nil {
				continue
			}
			op := pkgopenapi.Operation{
				ID:          operation.OperationID,
				Method:      strings.ToUpper(method),
				Path:        path,
				Summary:     operation.Summary,
				Description: operation.Description,
				RequestBody: requestSchema(operation.RequestBody),
			}
			if op.ID == "" {
				op.ID = strings.ToLower(method) + ":" + path
			}
			out[op.ID] = op
		}
	}
	return out, nil
}

func requestSchema(body *openapi3.RequestBodyRef) pkgopenapi.Schema {
	if body == nil {
		return pkgopenapi.Schema{}
	}
	if body.Value == nil {
		return pkgopenapi.Schema{Ref: body.Ref}
	}
	content := body.Value.Content
	for _, mediaType := range preferredMediaTypes {
		if media := content.Get(mediaType); media != nil {
			return newConverter().convert(media.Schema)
		}
	}
	for _, mediaType := range slices.Sorted(maps.Keys(content)) {
		if media := content[mediaType]; media != nil {
			return newConverter().convert(media.Schema)
		}
	}
	return pkgopenapi.Schema{}
}

// converter turns kin-openapi schemas into pkgopenapi.Schema. Resolved
// references can form cycles, so a schema already on the current path is
// emitted as a bare reference.
type converter struct {
	onPath map[*openapi3.Schema]bool
}

func newConverter() *converter {
	return &converter{onPath: make(map[*openapi3.Schema]bool)}
}

func (c *converter) convert(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	src := ref.Value
	if src == nil || c.onPath[src] {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	c.onPath[src] = true
	defer delete(c.onPath, src)

	out := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        schemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
		Required:    slices.Clone(src.Required),
		Enum:        slices.Clone(src.Enum),
		Extensions:  formHints(src.Extensions),
	}
	if len(src.Properties) > 0 {
		out.Properties = make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, prop := range src.Properties {
			out.Properties[name] = c.convert(prop)
		}
	}
	if src.Items != nil {
		items := c.convert(src.Items)
		out.Items = &items
	}
	for _, member := range src.AllOf {
		c.merge(&out, c.convert(member))
	}
	return out
}

// merge folds an allOf member into out. Properties already declared on out
// win; required names are unioned; member hints override.
func (c *converter) merge(out *pkgopenapi.Schema, member pkgopenapi.Schema) {
	if out.Type == "" {
		out.Type = member.Type
	}
	for name, prop := range member.Properties {
		if out.Properties == nil {
			out.Properties = make(map[string]pkgopenapi.Schema)
		}
		if _, ok := out.Properties[name]; !ok {
			out.Properties[name] = prop
		}
	}
	for _, name := range member.Required {
		if !slices.Contains(out.Required, name) {
			out.Required = append(out.Required, name)
		}
	}
	if len(member.Extensions) > 0 {
		if out.Extensions == nil {
			out.Extensions = make(map[string]any)
		}
		maps.Copy(out.Extensions, member.Extensions)
	}
}

func schemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	return strings.Join(types.Slice(), ",")
}

// formHints keeps only the ExtensionNamespace entry of a schema's
// extensions.
func formHints(extensions map[string]any) map[string]any {
	hints, ok := extensions[pkgopenapi.ExtensionNamespace].(map[string]any)
	if !ok || len(hints) == 0 {
		return nil
	}
	return map[string]any{pkgopenapi.ExtensionNamespace: maps.Clone(hints)}
}
