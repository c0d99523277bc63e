package engine

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/goliatone/go-formengine/pkg/schema"
)

// ErrorMapping splits a server error payload into field-level messages keyed
// by field key and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// envelopeSegments are leading path segments that wrap the record in common
// API error formats (JSON:API, request echoes).
var envelopeSegments = map[string]bool{
	"body": true, "request": true, "payload": true, "data": true, "attributes": true,
}

// formLevelKeys mark messages that belong to the whole form.
var formLevelKeys = map[string]bool{
	"": true, "form": true, "base": true, "__all__": true, "non_field_errors": true, "non-field-errors": true,
}

var pathSeparators = strings.NewReplacer("[", "/", "]", "", ".", "/")

// MapErrorPayload resolves payload keys (field keys, dotted paths, or JSON
// pointers such as "/data/attributes/email") onto the form's field keys.
// Keys that match no field are kept as form-level messages so nothing is
// lost. Payload keys are visited in sorted order.
func MapErrorPayload(form schema.FormSchema, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	fieldKeys := make(map[string]bool)
	for _, field := range schema.FlattenFields(form) {
		fieldKeys[field.Key] = true
	}

	for _, path := range slices.Sorted(maps.Keys(payload)) {
		messages := cleanMessages(payload[path])
		if len(messages) == 0 {
			continue
		}
		if key := fieldKeyFor(path, fieldKeys); key != "" {
			mapping.Fields[key] = cleanMessages(append(mapping.Fields[key], messages...))
			continue
		}
		mapping.Form = append(mapping.Form, messages...)
	}
	mapping.Form = cleanMessages(mapping.Form)
	return mapping
}

// fieldKeyFor returns the field a payload path points at, or "" for
// form-level and unknown paths.
func fieldKeyFor(path string, fieldKeys map[string]bool) string {
	path = strings.TrimSpace(path)
	if fieldKeys[path] {
		return path
	}
	trimmed := strings.TrimLeft(path, "#/.$")
	if formLevelKeys[strings.ToLower(trimmed)] {
		return ""
	}

	segments := strings.Split(pathSeparators.Replace(trimmed), "/")
	for len(segments) > 0 && envelopeSegments[strings.ToLower(segments[0])] {
		segments = segments[1:]
	}
	for _, segment := range segments {
		segment = strings.NewReplacer("~1", "/", "~0", "~").Replace(strings.TrimSpace(segment))
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		if fieldKeys[segment] {
			return segment
		}
	}
	return ""
}

// cleanMessages trims messages, drops blanks, and removes repeats keeping
// first occurrences.
func cleanMessages(messages []string) []string {
	var out []string
	for _, message := range messages {
		message = strings.TrimSpace(message)
		if message != "" && !slices.Contains(out, message) {
			out = append(out, message)
		}
	}
	return out
}
