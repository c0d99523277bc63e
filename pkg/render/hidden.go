package render

import (
	"fmt"
	"strings"
)

// HiddenField is a hidden input emitted alongside the visible fields.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken constructs a hidden field carrying token under the backend's
// expected input name (for example "_csrf").
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// VersionField constructs a hidden field used for optimistic locking.
func VersionField(name string, version any) HiddenField {
	return Hidden(name, version)
}

// NormalizeHidden drops unnamed fields and resolves duplicates, later
// entries winning, while keeping first-seen order.
func NormalizeHidden(fields []HiddenField) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	pos := make(map[string]int, len(fields))
	out := make([]HiddenField, 0, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		if idx, ok := pos[name]; ok {
			out[idx].Value = field.Value
			continue
		}
		pos[name] = len(out)
		out = append(out, HiddenField{Name: name, Value: field.Value})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
