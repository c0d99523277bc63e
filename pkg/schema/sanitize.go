package schema

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formengine/pkg/mode"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// sanitizeLabel strips markup from display strings. Labels come from
// configuration files and end up in HTML and terminal output.
func sanitizeLabel(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(labelPolicy.Sanitize(trimmed)))
}

// Sanitize returns a copy of form with every display string stripped of
// markup. Keys, types, and option values are left as declared.
func Sanitize(form FormSchema) FormSchema {
	out := form
	out.Title = sanitizeLabel(form.Title)
	out.Tabs = make([]TabSchema, len(form.Tabs))
	for ti, tab := range form.Tabs {
		tab.DisplayName = sanitizeLabel(tab.DisplayName)
		sections := make([]SectionSchema, len(tab.Sections))
		for si, section := range tab.Sections {
			section.DisplayName = sanitizeLabel(section.DisplayName)
			fieldList := make([]FieldSchema, len(section.Fields))
			for fi, field := range section.Fields {
				field.DisplayName = sanitizeLabel(field.DisplayName)
				field.Placeholder = sanitizeLabel(field.Placeholder)
				field.HelpText = sanitizeLabel(field.HelpText)
				if len(field.Options) > 0 {
					options := make([]Option, len(field.Options))
					for oi, opt := range field.Options {
						opt.Label = sanitizeLabel(opt.Label)
						opt.Group = sanitizeLabel(opt.Group)
						options[oi] = opt
					}
					field.Options = options
				}
				fieldList[fi] = field
			}
			section.Fields = fieldList
			sections[si] = section
		}
		tab.Sections = sections
		out.Tabs[ti] = tab
	}
	if len(form.HeaderActions) > 0 {
		out.HeaderActions = make(map[mode.Mode][]mode.HeaderAction, len(form.HeaderActions))
		for m, list := range form.HeaderActions {
			cloned := make([]mode.HeaderAction, len(list))
			for i, action := range list {
				action.Label = sanitizeLabel(action.Label)
				cloned[i] = action
			}
			out.HeaderActions[m] = cloned
		}
	}
	return out
}
