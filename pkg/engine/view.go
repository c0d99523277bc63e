package engine

import (
	"errors"

	"github.com/goliatone/go-formengine/pkg/fields"
	"github.com/goliatone/go-formengine/pkg/mode"
	"github.com/goliatone/go-formengine/pkg/schema"
	"github.com/goliatone/go-formengine/pkg/selection"
)

// View is the renderable structure of a form: resolved fields with their
// current values, selection state, and surfaced errors.
type View struct {
	FormID        string              `json:"formId,omitempty"`
	Title         string              `json:"title,omitempty"`
	Mode          mode.Mode           `json:"mode"`
	Editable      bool                `json:"editable"`
	Pending       bool                `json:"pending"`
	Tabs          []TabView           `json:"tabs"`
	HeaderActions []mode.HeaderAction `json:"headerActions"`
	FormErrors    []string            `json:"formErrors,omitempty"`
	Unresolved    []UnresolvedField   `json:"unresolved,omitempty"`
}

// TabView is a rendered tab.
type TabView struct {
	Key      string        `json:"key"`
	Label    string        `json:"label"`
	Sections []SectionView `json:"sections"`
}

// SectionView is a rendered section.
type SectionView struct {
	Key    string      `json:"key"`
	Label  string      `json:"label"`
	Fields []FieldView `json:"fields"`
}

// FieldView is a rendered field. Text carries the value formatted for text
// inputs; Options and Groups are set for option-bearing kinds.
type FieldView struct {
	Key         string       `json:"key"`
	Label       string       `json:"label"`
	Kind        string       `json:"kind"`
	Widget      string       `json:"widget"`
	Required    bool         `json:"required"`
	Disabled    bool         `json:"disabled"`
	Value       any          `json:"value,omitempty"`
	Text        string       `json:"text,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	HelpText    string       `json:"helpText,omitempty"`
	Options     []OptionView `json:"options,omitempty"`
	Groups      []GroupView  `json:"groups,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
}

// OptionView is a rendered option.
type OptionView struct {
	Value    any    `json:"value"`
	Label    string `json:"label"`
	Group    string `json:"group,omitempty"`
	Selected bool   `json:"selected"`
}

// GroupView is the select-all checkbox of an option group.
type GroupView struct {
	Name          string       `json:"name"`
	All           bool         `json:"all"`
	Some          bool         `json:"some"`
	Indeterminate bool         `json:"indeterminate"`
	Options       []OptionView `json:"options"`
}

// UnresolvedField records a field omitted from the view because its type
// could not be resolved.
type UnresolvedField struct {
	Key     string `json:"key"`
	Type    string `json:"type"`
	Tab     string `json:"tab"`
	Section string `json:"section"`
	Err     error  `json:"-"`
}

// Build converts a schema and values into a View for the given mode. Fields
// whose type cannot be resolved are left out and listed in View.Unresolved.
func (i *Interpreter) Build(form schema.FormSchema, values map[string]any, m mode.Mode) View {
	editable := m == mode.Edit
	view := View{
		FormID:   form.ID,
		Title:    form.Title,
		Mode:     m,
		Editable: editable,
		Tabs:     make([]TabView, 0, len(form.Tabs)),
	}

	for _, tab := range form.Tabs {
		tv := TabView{Key: tab.Key, Label: tab.DisplayName, Sections: make([]SectionView, 0, len(tab.Sections))}
		for _, section := range tab.Sections {
			sv := SectionView{Key: section.Key, Label: section.DisplayName, Fields: make([]FieldView, 0, len(section.Fields))}
			for _, field := range section.Fields {
				capability, err := i.ResolveFieldType(field.Type)
				if err != nil {
					i.logger.Warn("skipping field with unknown type", "field", field.Key, "type", field.Type)
					view.Unresolved = append(view.Unresolved, UnresolvedField{
						Key:     field.Key,
						Type:    field.Type,
						Tab:     tab.Key,
						Section: section.Key,
						Err:     err,
					})
					continue
				}
				sv.Fields = append(sv.Fields, buildField(field, capability, values[field.Key], editable))
			}
			tv.Sections = append(tv.Sections, sv)
		}
		view.Tabs = append(view.Tabs, tv)
	}
	return view
}

// View builds the form's current View, including header actions, pending
// status, and the messages surfaced by the last submission.
func (f *Form) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	view := f.interp.Build(f.schema, f.values.Snapshot(), f.controller.Mode())
	view.HeaderActions = f.controller.HeaderActions()
	view.Pending = f.pending
	view.FormErrors = append([]string(nil), f.formErrors...)
	for ti := range view.Tabs {
		for si := range view.Tabs[ti].Sections {
			list := view.Tabs[ti].Sections[si].Fields
			for fi := range list {
				if msgs := f.fieldErrors[list[fi].Key]; len(msgs) > 0 {
					list[fi].Errors = append([]string(nil), msgs...)
				}
			}
		}
	}
	return view
}

// IsUnknownFieldType reports whether err came from an unresolvable field type.
func IsUnknownFieldType(err error) bool {
	return errors.Is(err, ErrUnknownFieldType)
}

func buildField(field schema.FieldSchema, capability fields.Capability, value any, editable bool) FieldView {
	fv := FieldView{
		Key:         field.Key,
		Label:       field.DisplayName,
		Kind:        capability.Kind.String(),
		Widget:      capability.Widget,
		Required:    field.Required,
		Disabled:    !editable,
		Value:       value,
		Placeholder: field.Placeholder,
		HelpText:    field.HelpText,
	}
	if !capability.Kind.HasOptions() {
		fv.Text = fields.AsString(value)
		return fv
	}

	selected := make(selection.Set[string])
	if capability.Kind == fields.KindMultiSelect {
		selected = selectionOf(value)
	} else if value != nil {
		selected = selection.NewSet(optionID(value))
	}

	fv.Options = make([]OptionView, 0, len(field.Options))
	for _, opt := range field.Options {
		fv.Options = append(fv.Options, OptionView{
			Value:    opt.Value,
			Label:    opt.Label,
			Group:    opt.Group,
			Selected: selected.Has(optionID(opt.Value)),
		})
	}

	if capability.Kind == fields.KindMultiSelect && hasGroups(field) {
		if groups, err := optionGroups(field, value); err == nil {
			fv.Groups = make([]GroupView, 0, len(groups))
			for _, g := range groups {
				gv := GroupView{
					Name:          g.Name,
					All:           g.Aggregate.All,
					Some:          g.Aggregate.Some,
					Indeterminate: g.Aggregate.Indeterminate(),
				}
				for _, opt := range g.Options {
					gv.Options = append(gv.Options, OptionView{
						Value:    opt.Value,
						Label:    opt.Label,
						Group:    opt.Group,
						Selected: selected.Has(optionID(opt.Value)),
					})
				}
				fv.Groups = append(fv.Groups, gv)
			}
		}
	}
	return fv
}

func hasGroups(field schema.FieldSchema) bool {
	for _, opt := range field.Options {
		if opt.Group != "" {
			return true
		}
	}
	return false
}
