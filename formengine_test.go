package formengine

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-formengine/pkg/mode"
)

func TestEmbeddedTemplatesContainForm(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "form.tpl"); err != nil {
		t.Fatalf("expected form template to be readable: %v", err)
	}
}

func TestGenerateEmbeddedForm(t *testing.T) {
	output, err := Generate(context.Background(), Request{
		FormID:   "user",
		Values:   map[string]any{"username": "ada"},
		Renderer: "json",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(output), `"mode": "view"`) {
		t.Fatalf("expected view mode output, got:\n%s", output)
	}
}

func TestOpenAndLoadForms(t *testing.T) {
	form, err := Open(context.Background(), Request{FormID: "group", Mode: mode.Edit})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if form.Mode() != mode.Edit {
		t.Fatalf("expected edit mode, got %q", form.Mode())
	}

	store, err := LoadForms(EmbeddedForms())
	if err != nil {
		t.Fatalf("load forms: %v", err)
	}
	if _, ok := store.Form("group"); !ok {
		t.Fatalf("group form missing")
	}
}
