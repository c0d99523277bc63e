package template

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

const defaultExtension = ".tpl"

// Option configures an Engine.
type Option func(*Engine) error

// WithDir adds a directory of templates.
func WithDir(dir string) Option {
	return func(e *Engine) error {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			return nil
		}
		loader, err := pongo2.NewLocalFileSystemLoader(dir)
		if err != nil {
			return fmt.Errorf("template: directory %s: %w", dir, err)
		}
		e.loaders = append(e.loaders, loader)
		return nil
	}
}

// WithFS adds a template file system. Sources are searched in the order
// they are given, so an override bundle goes before the defaults.
func WithFS(files fs.FS) Option {
	return func(e *Engine) error {
		if files != nil {
			e.loaders = append(e.loaders, pongo2.NewFSLoader(files))
		}
		return nil
	}
}

// WithExtension sets the suffix appended to bare template names.
func WithExtension(ext string) Option {
	return func(e *Engine) error {
		ext = strings.TrimSpace(ext)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
		return nil
	}
}

// WithGlobals seeds values visible to every template.
func WithGlobals(globals map[string]any) Option {
	return func(e *Engine) error {
		e.pending = globals
		return nil
	}
}

// Engine executes pongo2 templates with HTML autoescaping. Parsed templates
// are cached by name.
type Engine struct {
	loaders []pongo2.TemplateLoader
	ext     string
	pending map[string]any

	set   *pongo2.TemplateSet
	mu    sync.RWMutex
	cache sync.Map
}

var _ TemplateRenderer = (*Engine)(nil)

// New builds an Engine. At least one template source is required.
func New(options ...Option) (*Engine, error) {
	e := &Engine{ext: defaultExtension}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	if len(e.loaders) == 0 {
		return nil, errors.New("template: no template source configured")
	}

	e.set = pongo2.NewSet("formengine", e.loaders...)
	e.set.Globals = pongo2.Context{}
	e.SetGlobals(e.pending)
	e.pending = nil

	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", func(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
			return pongo2.AsValue(strings.TrimSpace(in.String())), nil
		})
	}
	return e, nil
}

// Execute renders the named template into w.
func (e *Engine) Execute(ctx context.Context, w io.Writer, name string, data any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tpl, err := e.lookup(e.fileName(name))
	if err != nil {
		return err
	}
	return e.run(w, tpl, name, data)
}

// ExecuteString parses source and renders it into w without caching.
func (e *Engine) ExecuteString(w io.Writer, source string, data any) error {
	tpl, err := e.set.FromString(source)
	if err != nil {
		return fmt.Errorf("template: parse inline template: %w", err)
	}
	return e.run(w, tpl, "inline", data)
}

// AddFilter registers fn under name. pongo2 filters are global to the
// process, so each name can be added once.
func (e *Engine) AddFilter(name string, fn Filter) error {
	name = strings.TrimSpace(name)
	if name == "" || fn == nil {
		return errors.New("template: filter needs a name and a function")
	}
	if pongo2.FilterExists(name) {
		return fmt.Errorf("template: filter %q already registered", name)
	}
	return pongo2.RegisterFilter(name, func(in, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		var arg any
		if param != nil {
			arg = param.Interface()
		}
		out, err := fn(in.Interface(), arg)
		if err != nil {
			return nil, &pongo2.Error{Sender: "filter:" + name, OrigError: err}
		}
		return pongo2.AsValue(out), nil
	})
}

// SetGlobals merges globals into the values every template sees.
func (e *Engine) SetGlobals(globals map[string]any) {
	if len(globals) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for key, value := range globals {
		if key = strings.TrimSpace(key); key != "" {
			e.set.Globals[key] = value
		}
	}
}

func (e *Engine) fileName(name string) string {
	if e.ext == "" || path.Ext(name) == e.ext {
		return name
	}
	return name + e.ext
}

func (e *Engine) lookup(name string) (*pongo2.Template, error) {
	if cached, ok := e.cache.Load(name); ok {
		return cached.(*pongo2.Template), nil
	}
	tpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("template: load %s: %w", name, err)
	}
	actual, _ := e.cache.LoadOrStore(name, tpl)
	return actual.(*pongo2.Template), nil
}

func (e *Engine) run(w io.Writer, tpl *pongo2.Template, name string, data any) error {
	vars, err := toContext(data)
	if err != nil {
		return fmt.Errorf("template: %s data: %w", name, err)
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if err := tpl.ExecuteWriter(vars, w); err != nil {
		return fmt.Errorf("template: execute %s: %w", name, err)
	}
	return nil
}

// toContext exposes data to templates under its JSON field names, nested
// structs included.
func toContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var vars pongo2.Context
	if err := json.Unmarshal(raw, &vars); err != nil {
		return nil, err
	}
	return vars, nil
}
