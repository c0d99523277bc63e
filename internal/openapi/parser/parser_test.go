package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	pkgopenapi "github.com/goliatone/go-formengine/pkg/openapi"
)

func loadFixture(t *testing.T) pkgopenapi.Document {
	t.Helper()
	path := filepath.Join("..", "testdata", "lms.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return pkgopenapi.Document{Source: pkgopenapi.SourceFromFile(path), Data: data}
}

func TestParser_Operations(t *testing.T) {
	ops, err := New(pkgopenapi.NewParserConfig()).Operations(context.Background(), loadFixture(t))
	if err != nil {
		t.Fatalf("operations: %v", err)
	}

	ids := make([]string, 0, len(ops))
	for id := range ops {
		ids = append(ids, id)
	}
	if diff := cmp.Diff([]string{"createRole", "patch:/users/{id}"}, ids, sortStrings()); diff != "" {
		t.Fatalf("operation ids mismatch (-want +got):\n%s", diff)
	}

	role := ops["createRole"]
	if role.Method != "POST" || role.Path != "/roles" || role.Summary != "Create role" {
		t.Fatalf("unexpected operation metadata: %+v", role)
	}
	body := role.RequestBody
	if diff := cmp.Diff([]string{"name", "permissions"}, body.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	perms := body.Properties["permissions"]
	if perms.Type != "array" || perms.Items == nil || len(perms.Items.Enum) != 3 {
		t.Fatalf("permissions not converted: %+v", perms)
	}
	ext, ok := perms.Extensions[pkgopenapi.ExtensionNamespace].(map[string]any)
	if !ok || ext["tab"] != "permissions" {
		t.Fatalf("extension not carried: %+v", perms.Extensions)
	}

	user := ops["patch:/users/{id}"]
	if user.Method != "PATCH" {
		t.Fatalf("unexpected method %q", user.Method)
	}
	if got := user.RequestBody.Properties["password"].Format; got != "password" {
		t.Fatalf("format not converted: %q", got)
	}
}

func TestParser_RejectsEmptyDocuments(t *testing.T) {
	p := New(pkgopenapi.NewParserConfig(pkgopenapi.WithoutValidation()))
	doc := pkgopenapi.Document{
		Source: pkgopenapi.SourceFromFS("empty.yaml"),
		Data:   []byte("openapi: 3.0.3\ninfo: {title: x, version: '1'}\npaths: {}\n"),
	}
	if _, err := p.Operations(context.Background(), doc); err == nil {
		t.Fatalf("expected error for document without paths")
	}
	if _, err := p.Operations(context.Background(), pkgopenapi.Document{}); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestParser_RecursiveSchema(t *testing.T) {
	doc := pkgopenapi.Document{Source: pkgopenapi.SourceFromFS("tree.yaml"), Data: []byte(`
openapi: 3.0.3
info: {title: tree, version: '1'}
paths:
  /categories:
    post:
      operationId: createCategory
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Category'
      responses:
        '201': {description: created}
components:
  schemas:
    Category:
      type: object
      properties:
        name: {type: string}
        parent:
          $ref: '#/components/schemas/Category'
`)}
	ops, err := New(pkgopenapi.NewParserConfig()).Operations(context.Background(), doc)
	if err != nil {
		t.Fatalf("operations: %v", err)
	}
	parent := ops["createCategory"].RequestBody.Properties["parent"]
	if parent.Ref != "#/components/schemas/Category" || parent.Properties != nil {
		t.Fatalf("cycle should stop at a bare reference: %+v", parent)
	}
}

func sortStrings() cmp.Option {
	return cmpopts.SortSlices(func(a, b string) bool { return a < b })
}
