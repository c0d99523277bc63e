package engine

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMissingRequiredField marks a required field without a usable value.
	ErrMissingRequiredField = errors.New("engine: missing required field")
	// ErrUnknownFieldType marks a field whose type the registry cannot resolve.
	ErrUnknownFieldType = errors.New("engine: unknown field type")
	// ErrUnknownField is returned when addressing a key the schema does not declare.
	ErrUnknownField = errors.New("engine: unknown field")
	// ErrReadOnly is returned when editing or submitting a form that is not in
	// edit mode.
	ErrReadOnly = errors.New("engine: form is read-only")
	// ErrSubmissionPending is returned when a submission is already in flight.
	ErrSubmissionPending = errors.New("engine: submission already pending")
	// ErrSaveFailed wraps errors returned by the save callback.
	ErrSaveFailed = errors.New("engine: save failed")
	// ErrNoSaveFunc is returned by Submit when the form has no save callback.
	ErrNoSaveFunc = errors.New("engine: save function not configured")
	// ErrNotSelectable is returned by selection helpers on non-multiselect fields.
	ErrNotSelectable = errors.New("engine: field is not a multiselect")
)

// FieldError ties an error to a field key.
type FieldError struct {
	Key   string
	Label string
	Err   error
}

func (e *FieldError) Error() string {
	name := e.Label
	if name == "" {
		name = e.Key
	}
	if errors.Is(e.Err, ErrMissingRequiredField) {
		return fmt.Sprintf("%s is required", name)
	}
	return fmt.Sprintf("%s: %v", name, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationError is returned by Submit when one or more fields fail
// validation. No save call is made in that case.
type ValidationError struct {
	Fields map[string]error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("engine: %d field(s) failed validation", len(e.Fields))
}

// Unwrap exposes the per-field errors, ordered by key, to errors.Is/As.
func (e *ValidationError) Unwrap() []error {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]error, 0, len(keys))
	for _, key := range keys {
		out = append(out, e.Fields[key])
	}
	return out
}

// Messages flattens the field errors into display strings.
func (e *ValidationError) Messages() map[string]string {
	return Messages(e.Fields)
}

// Messages renders a field error map as key → message.
func Messages(errs map[string]error) map[string]string {
	out := make(map[string]string, len(errs))
	for key, err := range errs {
		if err != nil {
			out[key] = err.Error()
		}
	}
	return out
}

// PayloadError lets a save callback report server-side validation messages.
// Keys may be field keys, dotted paths, or JSON pointers; they are mapped
// onto the form's field keys and anything unmatched becomes a form-level
// message.
type PayloadError struct {
	Payload map[string][]string
	Err     error
}

func (e *PayloadError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "engine: submission rejected"
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}
