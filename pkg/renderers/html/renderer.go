// Package html renders an engine.View into a standalone HTML form using
// pongo2 templates.
package html

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-formengine/pkg/engine"
	"github.com/goliatone/go-formengine/pkg/fields"
	"github.com/goliatone/go-formengine/pkg/render"
	rendertemplate "github.com/goliatone/go-formengine/pkg/render/template"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
}

// WithTemplatesFS layers a template bundle over the embedded one. Templates
// it provides (form.tpl, field.tpl, widgets/*.tpl) win; the rest fall back.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an external stylesheet from the rendered document.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

type Renderer struct {
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := rendertemplate.New(
			rendertemplate.WithFS(cfg.templateFS),
			rendertemplate.WithFS(TemplatesFS()),
			rendertemplate.WithExtension(".tpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, stylesheet: cfg.stylesheet}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view engine.View, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	err := r.templates.Execute(ctx, &out, "form", map[string]any{
		"form":       newFormData(view, options),
		"stylesheet": r.stylesheet,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return out.Bytes(), nil
}

// formData is the template-facing shape of a view. Option values are
// pre-formatted so numeric ids print without float noise.
type formData struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Mode          string       `json:"mode"`
	Editable      bool         `json:"editable"`
	Pending       bool         `json:"pending"`
	Action        string       `json:"action"`
	Method        string       `json:"method"`
	MethodField   string       `json:"methodField"`
	Hidden        []hiddenData `json:"hidden"`
	HeaderActions []actionData `json:"headerActions"`
	FormErrors    []string     `json:"formErrors"`
	Tabs          []tabData    `json:"tabs"`
	Unresolved    []string     `json:"unresolved"`
}

type hiddenData struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type actionData struct {
	Key    string `json:"key"`
	Action string `json:"action"`
	Label  string `json:"label"`
	Submit bool   `json:"submit"`
}

type tabData struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Sections []sectionData `json:"sections"`
}

type sectionData struct {
	Key    string      `json:"key"`
	Label  string      `json:"label"`
	Fields []fieldData `json:"fields"`
}

type fieldData struct {
	Key         string       `json:"key"`
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Widget      string       `json:"widget"`
	InputType   string       `json:"inputType"`
	Required    bool         `json:"required"`
	Disabled    bool         `json:"disabled"`
	Text        string       `json:"text"`
	Placeholder string       `json:"placeholder"`
	HelpText    string       `json:"helpText"`
	Options     []optionData `json:"options"`
	Groups      []groupData  `json:"groups"`
	Errors      []string     `json:"errors"`
}

type optionData struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type groupData struct {
	Name          string       `json:"name"`
	ID            string       `json:"id"`
	All           bool         `json:"all"`
	Indeterminate bool         `json:"indeterminate"`
	Options       []optionData `json:"options"`
}

func newFormData(view engine.View, options render.RenderOptions) formData {
	method, override := resolveMethod(options.Method)
	data := formData{
		ID:          view.FormID,
		Title:       view.Title,
		Mode:        string(view.Mode),
		Editable:    view.Editable,
		Pending:     view.Pending,
		Action:      options.Action,
		Method:      method,
		MethodField: override,
		FormErrors:  view.FormErrors,
	}
	for _, hidden := range render.NormalizeHidden(options.Hidden) {
		data.Hidden = append(data.Hidden, hiddenData{Name: hidden.Name, Value: hidden.Value})
	}
	for _, action := range view.HeaderActions {
		data.HeaderActions = append(data.HeaderActions, actionData{
			Key:    action.Key,
			Action: action.Action,
			Label:  firstNonEmpty(action.Label, action.Key),
			Submit: strings.EqualFold(action.Action, "submit"),
		})
	}
	for _, unresolved := range view.Unresolved {
		data.Unresolved = append(data.Unresolved, unresolved.Key)
	}
	for _, tab := range view.Tabs {
		td := tabData{Key: tab.Key, Label: firstNonEmpty(tab.Label, tab.Key)}
		for _, section := range tab.Sections {
			sd := sectionData{Key: section.Key, Label: section.Label}
			for _, field := range section.Fields {
				sd.Fields = append(sd.Fields, newFieldData(view.FormID, field))
			}
			td.Sections = append(td.Sections, sd)
		}
		data.Tabs = append(data.Tabs, td)
	}
	return data
}

func newFieldData(formID string, field engine.FieldView) fieldData {
	id := elementID(formID, field.Key)
	fd := fieldData{
		Key:         field.Key,
		ID:          id,
		Label:       firstNonEmpty(field.Label, field.Key),
		Widget:      field.Widget,
		InputType:   inputType(field.Widget),
		Required:    field.Required,
		Disabled:    field.Disabled,
		Text:        field.Text,
		Placeholder: field.Placeholder,
		HelpText:    field.HelpText,
		Errors:      field.Errors,
	}
	fd.Options = optionList(id, field.Options)
	for _, group := range field.Groups {
		gid := elementID(id, group.Name)
		fd.Groups = append(fd.Groups, groupData{
			Name:          group.Name,
			ID:            gid,
			All:           group.All,
			Indeterminate: group.Indeterminate,
			Options:       optionList(id, group.Options),
		})
	}
	return fd
}

func optionList(prefix string, options []engine.OptionView) []optionData {
	if len(options) == 0 {
		return nil
	}
	out := make([]optionData, 0, len(options))
	for _, opt := range options {
		value := fields.AsString(opt.Value)
		out = append(out, optionData{
			ID:       elementID(prefix, value),
			Value:    value,
			Label:    firstNonEmpty(opt.Label, value),
			Selected: opt.Selected,
		})
	}
	return out
}

func inputType(widget string) string {
	switch widget {
	case fields.WidgetPasswordInput:
		return "password"
	case fields.WidgetNumberInput:
		return "number"
	default:
		return "text"
	}
}

// resolveMethod maps verbs browsers cannot submit to POST plus an override
// value for a hidden _method input.
func resolveMethod(method string) (string, string) {
	upper := strings.ToUpper(strings.TrimSpace(method))
	switch upper {
	case "", "POST":
		return "post", ""
	case "GET":
		return "get", ""
	default:
		return "post", upper
	}
}

func elementID(parts ...string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteByte('-')
		}
		for _, r := range strings.ToLower(strings.TrimSpace(part)) {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
				b.WriteRune(r)
			default:
				b.WriteByte('_')
			}
		}
	}
	return b.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
