package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formengine/pkg/fields"
	"github.com/goliatone/go-formengine/pkg/mode"
	"github.com/goliatone/go-formengine/pkg/schema"
	"github.com/goliatone/go-formengine/pkg/state"
)

// SaveFunc receives the validated form values. Returning a *PayloadError
// attaches server-side messages to fields.
type SaveFunc func(ctx context.Context, values map[string]any) error

// Option configures a Form.
type Option func(*Form)

// WithMode sets the mode the form opens in. Forms open in View by default.
func WithMode(m mode.Mode) Option {
	return func(f *Form) {
		if m != "" {
			f.initialMode = m
		}
	}
}

// WithSaveFunc sets the callback invoked on a successful submission.
func WithSaveFunc(fn SaveFunc) Option {
	return func(f *Form) {
		f.save = fn
	}
}

// WithInterpreter shares an interpreter (and its registry) across forms.
func WithInterpreter(interp *Interpreter) Option {
	return func(f *Form) {
		if interp != nil {
			f.interp = interp
		}
	}
}

// WithLogger sets the logger used for submission and resolution events.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// Form is one open instance of a schema: its values, mode, and submission
// status. A Form is meant to be driven by a single caller; the only
// concurrent interaction it guards is overlapping submissions.
type Form struct {
	id          string
	schema      schema.FormSchema
	index       map[string]schema.FieldRef
	interp      *Interpreter
	logger      *slog.Logger
	save        SaveFunc
	initialMode mode.Mode

	mu          sync.Mutex
	values      *state.Container
	initial     map[string]any
	controller  *mode.Controller
	pending     bool
	fieldErrors map[string][]string
	formErrors  []string
}

// Open creates a form instance for s, seeded from initial. Field keys must be
// unique across the whole schema; Open returns an error wrapping
// schema.ErrDuplicateFieldKey otherwise.
func Open(s schema.FormSchema, initial map[string]any, options ...Option) (*Form, error) {
	index, err := schema.Index(s)
	if err != nil {
		return nil, fmt.Errorf("engine: open form %q: %w", s.ID, err)
	}

	f := &Form{
		id:          uuid.NewString(),
		schema:      s,
		index:       index,
		initialMode: mode.View,
		fieldErrors: make(map[string][]string),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.interp == nil {
		f.interp = NewInterpreter()
	}
	if f.logger == nil {
		f.logger = f.interp.logger
	}
	f.logger = f.logger.With("form", s.ID, "instance", f.id)

	f.values = state.New(initial)
	f.initial = f.values.Snapshot()
	f.controller = mode.New(f.initialMode, s.HeaderActions)
	return f, nil
}

// ID returns the instance identifier used in log records.
func (f *Form) ID() string {
	return f.id
}

// Schema returns the schema the form was opened with.
func (f *Form) Schema() schema.FormSchema {
	return f.schema
}

// Mode returns the current mode.
func (f *Form) Mode() mode.Mode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.controller.Mode()
}

// SetMode forces the mode, typically back to View after a successful save.
func (f *Form) SetMode(m mode.Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.controller.Set(m)
}

// HeaderActions returns the actions available in the current mode.
func (f *Form) HeaderActions() []mode.HeaderAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.controller.HeaderActions()
}

// Values returns a snapshot of the current values.
func (f *Form) Values() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Snapshot()
}

// Value returns the current value of a single field.
func (f *Form) Value(key string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values.Get(key)
}

// Pending reports whether a submission is in flight.
func (f *Form) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Errors returns the messages surfaced by the last submission, keyed by
// field key.
func (f *Form) Errors() map[string][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneMessages(f.fieldErrors)
}

// FormErrors returns form-level messages from the last submission.
func (f *Form) FormErrors() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.formErrors...)
}

// SetField stores a new value for key after running it through the field
// kind's normaliser. The form must be in edit mode and the field's type must
// resolve; unresolved fields are not rendered and therefore not editable.
func (f *Form) SetField(key string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, capability, err := f.editableField(key)
	if err != nil {
		return err
	}
	if err := f.values.Set(key, capability.Normalize(value)); err != nil {
		return fmt.Errorf("engine: set %q: %w", key, err)
	}
	delete(f.fieldErrors, key)
	return nil
}

// Dispatch applies a header action. The key may name one of the current
// mode's header actions or an action directly. Submit runs Submit; cancel
// discards unsaved edits and returns to View; edit enters Edit. Unknown keys
// are ignored.
func (f *Form) Dispatch(ctx context.Context, key string) (mode.Mode, error) {
	action := f.ActionFor(key)
	if action == mode.ActionSubmit {
		err := f.Submit(ctx)
		return f.Mode(), err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next, ok := f.controller.Dispatch(action)
	if !ok {
		f.logger.Debug("ignoring unknown action", "action", key)
		return next, nil
	}
	if action == mode.ActionCancel {
		f.values.Reset(f.initial)
		f.fieldErrors = make(map[string][]string)
		f.formErrors = nil
	}
	return next, nil
}

// Submit validates the current values and, when they pass, hands a snapshot
// to the save callback verbatim. Validation failures return a
// *ValidationError without calling save. Save failures keep the entered
// values and return an error wrapping ErrSaveFailed. Overlapping calls
// return ErrSubmissionPending; nothing is retried automatically. A form
// outside edit mode returns ErrReadOnly and never reaches save.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if !f.controller.Editable() {
		f.mu.Unlock()
		return ErrReadOnly
	}
	if f.pending {
		f.mu.Unlock()
		return ErrSubmissionPending
	}
	snapshot := f.values.Snapshot()
	errs := Validate(f.schema, snapshot)
	if len(errs) > 0 {
		f.fieldErrors = make(map[string][]string, len(errs))
		for key, err := range errs {
			f.fieldErrors[key] = []string{err.Error()}
		}
		f.formErrors = nil
		f.mu.Unlock()
		f.logger.Info("submission rejected", "invalid_fields", len(errs))
		return &ValidationError{Fields: errs}
	}
	if f.save == nil {
		f.mu.Unlock()
		return ErrNoSaveFunc
	}
	f.pending = true
	save := f.save
	f.mu.Unlock()

	err := save(ctx, snapshot)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = false

	if err != nil {
		f.fieldErrors = make(map[string][]string)
		f.formErrors = nil
		var payloadErr *PayloadError
		if errors.As(err, &payloadErr) {
			mapping := MapErrorPayload(f.schema, payloadErr.Payload)
			f.fieldErrors = mapping.Fields
			f.formErrors = mapping.Form
		}
		if len(f.fieldErrors) == 0 && len(f.formErrors) == 0 {
			f.formErrors = []string{err.Error()}
		}
		f.logger.Warn("save failed", "error", err)
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	f.initial = snapshot
	f.fieldErrors = make(map[string][]string)
	f.formErrors = nil
	f.logger.Info("form saved")
	return nil
}

// ActionFor resolves a header action key of the current mode to the action it
// triggers. Keys that match no header action are returned lower-cased.
func (f *Form) ActionFor(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	trimmed := strings.TrimSpace(key)
	for _, action := range f.controller.HeaderActions() {
		if strings.EqualFold(action.Key, trimmed) {
			return strings.ToLower(strings.TrimSpace(action.Action))
		}
	}
	return strings.ToLower(trimmed)
}

func (f *Form) editableField(key string) (schema.FieldRef, fields.Capability, error) {
	ref, ok := f.index[key]
	if !ok {
		return schema.FieldRef{}, fields.Capability{}, fmt.Errorf("%w %q", ErrUnknownField, key)
	}
	if !f.controller.Editable() {
		return schema.FieldRef{}, fields.Capability{}, ErrReadOnly
	}
	capability, err := f.interp.ResolveFieldType(ref.Field.Type)
	if err != nil {
		return schema.FieldRef{}, fields.Capability{}, fmt.Errorf("engine: field %q: %w", key, err)
	}
	return ref, capability, nil
}

func cloneMessages(src map[string][]string) map[string][]string {
	out := make(map[string][]string, len(src))
	for key, list := range src {
		out[key] = append([]string(nil), list...)
	}
	return out
}
