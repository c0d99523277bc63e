package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

const documentSchemaURL = "https://formengine.local/schema/document.schema.json"

//go:embed formschema.json
var documentSchemaJSON string

var (
	documentSchemaOnce sync.Once
	documentSchema     *jsonschema.Schema
	documentSchemaErr  error
)

type documentFile struct {
	Forms map[string]FormSchema `json:"forms"`
}

func compiledDocumentSchema() (*jsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(documentSchemaURL, strings.NewReader(documentSchemaJSON)); err != nil {
			documentSchemaErr = fmt.Errorf("schema: load document schema: %w", err)
			return
		}
		documentSchema, documentSchemaErr = c.Compile(documentSchemaURL)
		if documentSchemaErr != nil {
			documentSchemaErr = fmt.Errorf("schema: compile document schema: %w", documentSchemaErr)
		}
	})
	return documentSchema, documentSchemaErr
}

// ParseDocument decodes a JSON or YAML schema document, checks it against
// the bundled document schema, and returns its forms keyed by id.
func ParseDocument(data []byte, source string) (map[string]FormSchema, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("schema: file %s is empty", source)
	}

	raw, err := toJSON(data)
	if err != nil {
		return nil, fmt.Errorf("schema: parse %s: invalid JSON or YAML", source)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("schema: parse %s: %w", source, err)
	}

	compiled, err := compiledDocumentSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(generic); err != nil {
		return nil, fmt.Errorf("schema: %s does not match the document schema: %w", source, err)
	}

	var doc documentFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("schema: decode %s: %w", source, err)
	}
	return doc.Forms, nil
}

// toJSON returns data unchanged when it is JSON and converts YAML otherwise,
// so a single decode path handles both formats.
func toJSON(data []byte) ([]byte, error) {
	if json.Valid(data) {
		return data, nil
	}
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return json.Marshal(node)
}
