package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	internalLoader "github.com/goliatone/go-formengine/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formengine/internal/openapi/parser"
	"github.com/goliatone/go-formengine/pkg/engine"
	"github.com/goliatone/go-formengine/pkg/mode"
	pkgopenapi "github.com/goliatone/go-formengine/pkg/openapi"
	"github.com/goliatone/go-formengine/pkg/render"
	"github.com/goliatone/go-formengine/pkg/renderers/html"
	"github.com/goliatone/go-formengine/pkg/schema"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom OpenAPI loader.
func WithLoader(loader pkgopenapi.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithStore supplies the form schemas looked up by Request.FormID. Without it
// the embedded forms are used.
func WithStore(store *schema.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithInterpreter sets the interpreter passed to every opened form.
func WithInterpreter(interp *engine.Interpreter) Option {
	return func(o *Orchestrator) {
		o.interp = interp
	}
}

// WithLogger sets the logger shared with opened forms.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator resolves a form schema, opens a form over it and renders the
// result. Missing dependencies are initialised with the built-in
// implementations.
type Orchestrator struct {
	loader          pkgopenapi.Loader
	parser          pkgopenapi.Parser
	registry        *render.Registry
	store           *schema.Store
	interp          *engine.Interpreter
	logger          *slog.Logger
	defaultRenderer string
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request selects a form and how to present it. Either FormID or
// OperationID (with Source or Document) is required; FormID wins when both
// are set.
type Request struct {
	// FormID names a form in the store.
	FormID string

	// Source locates the OpenAPI document. Ignored when Document is set.
	Source pkgopenapi.Source

	// Document bypasses the loader.
	Document *pkgopenapi.Document

	// OperationID selects the OpenAPI operation whose request body becomes
	// the form.
	OperationID string

	// Values seeds the form. Mode defaults to View.
	Values map[string]any
	Mode   mode.Mode

	// Renderer names the renderer to use, falling back to the default.
	Renderer string

	RenderOptions render.RenderOptions
}

// Resolve returns the schema a request refers to.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (schema.FormSchema, error) {
	if err := o.ready(ctx); err != nil {
		return schema.FormSchema{}, err
	}
	if req.FormID != "" {
		form, ok := o.store.Form(req.FormID)
		if !ok {
			return schema.FormSchema{}, fmt.Errorf("orchestrator: form %q not found", req.FormID)
		}
		return form, nil
	}
	if req.OperationID == "" {
		return schema.FormSchema{}, errors.New("orchestrator: form id or operation id is required")
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return schema.FormSchema{}, err
	}
	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return schema.FormSchema{}, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	op, ok := operations[req.OperationID]
	if !ok {
		return schema.FormSchema{}, fmt.Errorf("orchestrator: operation %q not found", req.OperationID)
	}

	form, err := pkgopenapi.FormFromOperation(op)
	if err != nil {
		return schema.FormSchema{}, fmt.Errorf("orchestrator: build form: %w", err)
	}
	if err := schema.Check(form); err != nil {
		return schema.FormSchema{}, fmt.Errorf("orchestrator: operation %q: %w", req.OperationID, err)
	}
	return schema.Sanitize(form), nil
}

// Open resolves the request's schema and opens a form over req.Values.
// Extra engine options (a save callback, typically) are applied last.
func (o *Orchestrator) Open(ctx context.Context, req Request, options ...engine.Option) (*engine.Form, error) {
	s, err := o.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	m := req.Mode
	if m == "" {
		m = mode.View
	}
	opts := []engine.Option{engine.WithMode(m), engine.WithLogger(o.logger)}
	if o.interp != nil {
		opts = append(opts, engine.WithInterpreter(o.interp))
	}
	opts = append(opts, options...)

	form, err := engine.Open(s, req.Values, opts...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: open form: %w", err)
	}
	return form, nil
}

// Generate opens the requested form and renders its current view.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Open(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.Render(ctx, form, req.Renderer, req.RenderOptions)
}

// Render renders an already open form with the named renderer.
func (o *Orchestrator) Render(ctx context.Context, form *engine.Form, rendererName string, options render.RenderOptions) ([]byte, error) {
	if form == nil {
		return nil, errors.New("orchestrator: form is required")
	}
	renderer, err := o.rendererFor(rendererName)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, form.View(), options)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// Forms lists the form ids available by FormID.
func (o *Orchestrator) Forms() []string {
	return o.store.IDs()
}

func (o *Orchestrator) ready(ctx context.Context) error {
	if ctx == nil {
		return errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return o.initialiseErr
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (pkgopenapi.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source.IsZero() {
		return pkgopenapi.Document{}, errors.New("orchestrator: source or document is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return pkgopenapi.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(pkgopenapi.NewLoaderConfig())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserConfig())
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		o.registry.MustRegister(render.JSONRenderer{Indent: "  "})
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.store == nil {
		store, err := schema.LoadFS(schema.EmbeddedFS())
		if err != nil {
			o.initialiseErr = errors.Join(o.initialiseErr, fmt.Errorf("orchestrator: load embedded forms: %w", err))
		}
		o.store = store
	}
}
