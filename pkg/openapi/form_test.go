package openapi_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formengine/pkg/openapi"
	"github.com/goliatone/go-formengine/pkg/schema"
)

func hint(values map[string]any) map[string]any {
	return map[string]any{openapi.ExtensionNamespace: values}
}

func mustOperation(t *testing.T, id string, body openapi.Schema) openapi.Operation {
	t.Helper()
	return openapi.Operation{ID: id, Method: "POST", Path: "/" + id, RequestBody: body}
}

func roleOperation(t *testing.T) openapi.Operation {
	op := mustOperation(t, "createRole", openapi.Schema{
		Type:     "object",
		Required: []string{"name", "permissions"},
		Properties: map[string]openapi.Schema{
			"name":     {Type: "string", Description: "Shown in the role picker"},
			"priority": {Type: "integer"},
			"secret":   {Type: "string", Format: "password", Extensions: hint(map[string]any{"placeholder": "hidden"})},
			"status":   {Type: "string", Enum: []any{"active", "archived"}, Extensions: hint(map[string]any{"widget": "radio", "optionLabels": map[string]any{"active": "Active"}})},
			"enabled":  {Type: "boolean"},
			"permissions": {
				Type:  "array",
				Items: &openapi.Schema{Type: "integer", Enum: []any{float64(1), float64(2), float64(10)}},
				Extensions: hint(map[string]any{
					"tab":          "access",
					"section":      "grants",
					"optionGroups": map[string]any{"Users": []any{float64(1), float64(2)}, "Courses": []any{float64(10)}},
				}),
			},
		},
	})
	op.Summary = "Create role"
	return op
}

func TestFormFromOperation(t *testing.T) {
	form, err := openapi.FormFromOperation(roleOperation(t))
	if err != nil {
		t.Fatalf("form from operation: %v", err)
	}
	if form.ID != "createRole" || form.Title != "Create role" {
		t.Fatalf("unexpected form identity: %q %q", form.ID, form.Title)
	}
	if err := schema.Check(form); err != nil {
		t.Fatalf("derived form fails checks: %v", err)
	}

	types := map[string]string{}
	required := map[string]bool{}
	for _, field := range schema.FlattenFields(form) {
		types[field.Key] = field.Type
		required[field.Key] = field.Required
	}
	wantTypes := map[string]string{
		"enabled":     "boolean",
		"name":        "text",
		"priority":    "number",
		"secret":      "password",
		"status":      "radio",
		"permissions": "multiselect",
	}
	if diff := cmp.Diff(wantTypes, types); diff != "" {
		t.Fatalf("field types mismatch (-want +got):\n%s", diff)
	}
	if !required["name"] || !required["permissions"] || required["priority"] {
		t.Fatalf("required flags wrong: %v", required)
	}

	if len(form.Tabs) != 2 || form.Tabs[1].Key != "access" || form.Tabs[1].Sections[0].Key != "grants" {
		t.Fatalf("unexpected layout: %+v", form.Tabs)
	}
	perms := form.Tabs[1].Sections[0].Fields[0]
	wantOptions := []schema.Option{
		{Value: float64(1), Label: "1", Group: "Users"},
		{Value: float64(2), Label: "2", Group: "Users"},
		{Value: float64(10), Label: "10", Group: "Courses"},
	}
	if diff := cmp.Diff(wantOptions, perms.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if len(form.HeaderActions) != 2 {
		t.Fatalf("expected default header actions")
	}
}

func TestFormFromOperation_Ordering(t *testing.T) {
	op := mustOperation(t, "ordered", openapi.Schema{
		Properties: map[string]openapi.Schema{
			"b_field": {Type: "string", Extensions: hint(map[string]any{"order": float64(1)})},
			"a_field": {Type: "string", Extensions: hint(map[string]any{"order": float64(2)})},
			"c_field": {Type: "string"},
		},
	})
	form, err := openapi.FormFromOperation(op)
	if err != nil {
		t.Fatalf("form from operation: %v", err)
	}
	var keys, labels []string
	for _, field := range schema.FlattenFields(form) {
		keys = append(keys, field.Key)
		labels = append(labels, field.DisplayName)
	}
	if diff := cmp.Diff([]string{"c_field", "b_field", "a_field"}, keys); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if labels[0] != "C field" {
		t.Fatalf("label not humanized: %q", labels[0])
	}
}

func TestFormFromOperation_NoProperties(t *testing.T) {
	if _, err := openapi.FormFromOperation(mustOperation(t, "empty", openapi.Schema{})); err == nil {
		t.Fatalf("expected error for empty request body")
	}
}
