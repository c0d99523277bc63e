package schema

import "github.com/goliatone/go-formengine/pkg/mode"

// Option is one choice of a radio, dropdown, or multiselect field. Group is
// optional and partitions multiselect options into select-all modules.
type Option struct {
	Value any    `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
	Group string `json:"group,omitempty" yaml:"group,omitempty"`
}

// FieldSchema declares a single input. Type is kept as written so that names
// the field registry cannot resolve survive loading.
type FieldSchema struct {
	Key         string   `json:"key" yaml:"key"`
	DisplayName string   `json:"displayName" yaml:"displayName"`
	Type        string   `json:"type" yaml:"type"`
	Required    bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Options     []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	HelpText    string   `json:"helpText,omitempty" yaml:"helpText,omitempty"`
}

// SectionSchema is an ordered group of fields shown under one heading.
type SectionSchema struct {
	Key         string        `json:"key" yaml:"key"`
	DisplayName string        `json:"displayName" yaml:"displayName"`
	Fields      []FieldSchema `json:"fields" yaml:"fields"`
}

// TabSchema is the top level of form organisation.
type TabSchema struct {
	Key         string          `json:"key" yaml:"key"`
	DisplayName string          `json:"displayName" yaml:"displayName"`
	Sections    []SectionSchema `json:"sections" yaml:"sections"`
}

// FormSchema is the root of a declarative form. The engine treats it as
// read-only.
type FormSchema struct {
	ID            string                            `json:"id,omitempty" yaml:"id,omitempty"`
	Title         string                            `json:"title,omitempty" yaml:"title,omitempty"`
	Tabs          []TabSchema                       `json:"tabs" yaml:"tabs"`
	HeaderActions map[mode.Mode][]mode.HeaderAction `json:"headerActions,omitempty" yaml:"headerActions,omitempty"`
}

// FieldRef locates a field inside a schema.
type FieldRef struct {
	Tab     string
	Section string
	Field   FieldSchema
}

// FlattenFields returns every field in document order: tab, then section,
// then field.
func FlattenFields(form FormSchema) []FieldSchema {
	refs := FlattenRefs(form)
	out := make([]FieldSchema, len(refs))
	for i, ref := range refs {
		out[i] = ref.Field
	}
	return out
}

// FlattenRefs is FlattenFields with tab and section keys attached.
func FlattenRefs(form FormSchema) []FieldRef {
	var out []FieldRef
	for _, tab := range form.Tabs {
		for _, section := range tab.Sections {
			for _, field := range section.Fields {
				out = append(out, FieldRef{Tab: tab.Key, Section: section.Key, Field: field})
			}
		}
	}
	return out
}
