package tui

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/goliatone/go-formengine/pkg/fields"
)

// Encode serializes submitted values in the configured output format.
// Multi-value fields become key[] pairs in form encoding and a bracketed
// list in pretty text.
func (f *Filler) Encode(values map[string]any) ([]byte, error) {
	switch f.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for key, value := range values {
			if list, ok := multiValue(value); ok {
				form[key+"[]"] = list
				continue
			}
			form.Set(key, fields.AsString(value))
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, key := range slices.Sorted(maps.Keys(values)) {
			text := fields.AsString(values[key])
			if list, ok := multiValue(values[key]); ok {
				text = "[" + strings.Join(list, ", ") + "]"
			}
			fmt.Fprintf(&b, "%s: %s\n", key, text)
		}
		return []byte(b.String()), nil
	default:
		out, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode json: %w", err)
		}
		return out, nil
	}
}

func multiValue(value any) ([]string, bool) {
	if value == nil {
		return nil, false
	}
	if kind := reflect.TypeOf(value).Kind(); kind != reflect.Slice && kind != reflect.Array {
		return nil, false
	}
	items := fields.AsList(value)
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fields.AsString(item)
	}
	return out, true
}
