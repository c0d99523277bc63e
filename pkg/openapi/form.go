package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formengine/pkg/fields"
	"github.com/goliatone/go-formengine/pkg/mode"
	"github.com/goliatone/go-formengine/pkg/schema"
)

// ExtensionNamespace is the vendor extension read from property schemas. Its
// value is an object with any of: tab, section, widget ("radio"), order,
// placeholder, optionLabels (value -> label) and optionGroups
// (group -> values).
const ExtensionNamespace = "x-formengine"

const (
	defaultTabKey     = "general"
	defaultSectionKey = "fields"
)

// DefaultHeaderActions are attached to imported forms: Edit in View mode,
// Cancel and Save in Edit mode.
func DefaultHeaderActions() map[mode.Mode][]mode.HeaderAction {
	return map[mode.Mode][]mode.HeaderAction{
		mode.View: {{Key: "edit", Action: mode.ActionEdit, Label: "Edit"}},
		mode.Edit: {
			{Key: "cancel", Action: mode.ActionCancel, Label: "Cancel"},
			{Key: "save", Action: mode.ActionSubmit, Label: "Save"},
		},
	}
}

// FormFromOperation derives a form schema from the operation's request body.
// Each top-level property becomes a field; its type maps to a field type
// name the registry understands where possible. Properties the registry has
// no kind for (booleans, objects) keep their OpenAPI type so the engine
// reports them as unresolved instead of guessing.
func FormFromOperation(op Operation) (schema.FormSchema, error) {
	body := op.RequestBody
	if len(body.Properties) == 0 {
		return schema.FormSchema{}, fmt.Errorf("openapi: operation %q has no request body properties", op.ID)
	}

	required := make(map[string]struct{}, len(body.Required))
	for _, name := range body.Required {
		required[name] = struct{}{}
	}

	type placed struct {
		name  string
		order float64
		hints hints
		prop  Schema
	}
	props := make([]placed, 0, len(body.Properties))
	for name, prop := range body.Properties {
		h := readHints(prop.Extensions)
		props = append(props, placed{name: name, order: h.order, hints: h, prop: prop})
	}
	sort.SliceStable(props, func(i, j int) bool {
		if props[i].order != props[j].order {
			return props[i].order < props[j].order
		}
		return props[i].name < props[j].name
	})

	form := schema.FormSchema{
		ID:            op.ID,
		Title:         firstNonEmpty(op.Summary, body.Title, op.ID),
		HeaderActions: DefaultHeaderActions(),
	}
	tabIndex := make(map[string]int)
	sectionIndex := make(map[string]int)
	for _, p := range props {
		tabKey := firstNonEmpty(p.hints.tab, defaultTabKey)
		sectionKey := firstNonEmpty(p.hints.section, defaultSectionKey)

		ti, ok := tabIndex[tabKey]
		if !ok {
			ti = len(form.Tabs)
			tabIndex[tabKey] = ti
			form.Tabs = append(form.Tabs, schema.TabSchema{Key: tabKey, DisplayName: humanize(tabKey)})
		}
		tab := &form.Tabs[ti]
		sk := tabKey + "/" + sectionKey
		si, ok := sectionIndex[sk]
		if !ok {
			si = len(tab.Sections)
			sectionIndex[sk] = si
			tab.Sections = append(tab.Sections, schema.SectionSchema{Key: sectionKey, DisplayName: humanize(sectionKey)})
		}

		_, isRequired := required[p.name]
		field := fieldFromProperty(p.name, p.prop, p.hints)
		field.Required = isRequired
		tab.Sections[si].Fields = append(tab.Sections[si].Fields, field)
	}
	return form, nil
}

func fieldFromProperty(name string, prop Schema, h hints) schema.FieldSchema {
	field := schema.FieldSchema{
		Key:         name,
		DisplayName: firstNonEmpty(prop.Title, humanize(name)),
		HelpText:    prop.Description,
		Placeholder: h.placeholder,
		Type:        prop.Type,
	}

	switch {
	case prop.Type == "array" && prop.Items != nil && len(prop.Items.Enum) > 0:
		field.Type = fields.KindMultiSelect.String()
		field.Options = options(prop.Items.Enum, h)
	case len(prop.Enum) > 0:
		field.Type = fields.KindDropdown.String()
		if strings.EqualFold(h.widget, fields.KindRadio.String()) {
			field.Type = fields.KindRadio.String()
		}
		field.Options = options(prop.Enum, h)
	case prop.Type == "number" || prop.Type == "integer":
		field.Type = fields.KindNumber.String()
	case prop.Type == "string" && prop.Format == "password":
		field.Type = fields.KindPassword.String()
	case prop.Type == "string":
		field.Type = fields.KindText.String()
	}
	return field
}

func options(values []any, h hints) []schema.Option {
	out := make([]schema.Option, 0, len(values))
	for _, value := range values {
		key := fields.AsString(value)
		out = append(out, schema.Option{
			Value: value,
			Label: firstNonEmpty(h.optionLabels[key], key),
			Group: h.optionGroups[key],
		})
	}
	return out
}

type hints struct {
	tab          string
	section      string
	widget       string
	placeholder  string
	order        float64
	optionLabels map[string]string
	optionGroups map[string]string
}

func readHints(extensions map[string]any) hints {
	raw, _ := extensions[ExtensionNamespace].(map[string]any)
	h := hints{
		tab:         stringValue(raw["tab"]),
		section:     stringValue(raw["section"]),
		widget:      stringValue(raw["widget"]),
		placeholder: stringValue(raw["placeholder"]),
	}
	if order, ok := raw["order"].(float64); ok {
		h.order = order
	}
	if labels, ok := raw["optionLabels"].(map[string]any); ok {
		h.optionLabels = make(map[string]string, len(labels))
		for value, label := range labels {
			h.optionLabels[value] = stringValue(label)
		}
	}
	if groups, ok := raw["optionGroups"].(map[string]any); ok {
		h.optionGroups = make(map[string]string)
		for group, members := range groups {
			list, _ := members.([]any)
			for _, member := range list {
				h.optionGroups[fields.AsString(member)] = group
			}
		}
	}
	return h
}

func stringValue(value any) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func humanize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == ' '
	})
	if len(words) == 0 {
		return name
	}
	text := strings.ToLower(strings.Join(words, " "))
	return strings.ToUpper(text[:1]) + text[1:]
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
