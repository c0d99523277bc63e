package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMapErrorPayload(t *testing.T) {
	form := roleSchema()
	mapping := MapErrorPayload(form, map[string][]string{
		"name":                       {" taken ", "taken"},
		"#/data/attributes/priority": {"must be positive"},
		"permissions[0]":             {"unknown permission"},
		"non_field_errors":           {"try again later"},
		"owner.email":                {"invalid"},
		"ignored":                    {"  "},
	})

	want := map[string][]string{
		"name":        {"taken"},
		"priority":    {"must be positive"},
		"permissions": {"unknown permission"},
	}
	if diff := cmp.Diff(want, mapping.Fields); diff != "" {
		t.Fatalf("field mapping mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"try again later", "invalid"}, mapping.Form); diff != "" {
		t.Fatalf("form-level messages mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapping := MapErrorPayload(roleSchema(), nil)
	if len(mapping.Fields) != 0 || len(mapping.Form) != 0 {
		t.Fatalf("expected empty mapping, got %+v", mapping)
	}
}
