package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/goliatone/go-formengine/pkg/fields"
	"github.com/goliatone/go-formengine/pkg/schema"
)

// Interpreter resolves schema fields through a field registry and validates
// values against a schema. It holds no per-form state and can be shared.
type Interpreter struct {
	registry *fields.Registry
	logger   *slog.Logger
}

// InterpreterOption configures an Interpreter.
type InterpreterOption func(*Interpreter)

// WithRegistry overrides the field registry.
func WithRegistry(registry *fields.Registry) InterpreterOption {
	return func(i *Interpreter) {
		if registry != nil {
			i.registry = registry
		}
	}
}

// WithInterpreterLogger sets the logger used to report unresolved field types.
func WithInterpreterLogger(logger *slog.Logger) InterpreterOption {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// NewInterpreter constructs an interpreter with the built-in registry and a
// discarding logger.
func NewInterpreter(options ...InterpreterOption) *Interpreter {
	i := &Interpreter{
		registry: fields.NewRegistry(),
		logger:   discardLogger(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(i)
	}
	return i
}

// ResolveFieldType matches typeName case-insensitively against the registry.
// Unknown names return an error wrapping ErrUnknownFieldType; callers are
// expected to skip the field rather than fail.
func (i *Interpreter) ResolveFieldType(typeName string) (fields.Capability, error) {
	capability, ok := i.registry.Resolve(typeName)
	if !ok {
		return fields.Capability{}, fmt.Errorf("%w %q", ErrUnknownFieldType, typeName)
	}
	return capability, nil
}

// Validate checks every required field of form against values. A field fails
// when its value is absent, an empty string, or an empty selection. The
// returned map is keyed by field key and is empty, never nil, when the values
// are valid. Non-required fields are never reported.
func Validate(form schema.FormSchema, values map[string]any) map[string]error {
	errs := make(map[string]error)
	for _, field := range schema.FlattenFields(form) {
		if !field.Required {
			continue
		}
		value, ok := values[field.Key]
		if ok && !fields.IsEmpty(value) {
			continue
		}
		errs[field.Key] = &FieldError{
			Key:   field.Key,
			Label: field.DisplayName,
			Err:   ErrMissingRequiredField,
		}
	}
	return errs
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
