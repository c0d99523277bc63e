package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateFieldKey signals two fields sharing a key anywhere in a form.
	ErrDuplicateFieldKey = errors.New("schema: duplicate field key")
	// ErrEmptyFieldKey signals a field declared without a key.
	ErrEmptyFieldKey = errors.New("schema: empty field key")
	// ErrPaddedFieldKey signals a key with leading or trailing whitespace.
	ErrPaddedFieldKey = errors.New("schema: field key has surrounding whitespace")
)

// DuplicateKeyError reports both locations of a repeated field key.
type DuplicateKeyError struct {
	Key    string
	First  FieldRef
	Second FieldRef
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("schema: field key %q declared in %s/%s and %s/%s",
		e.Key, e.First.Tab, e.First.Section, e.Second.Tab, e.Second.Section)
}

// Is lets errors.Is match ErrDuplicateFieldKey.
func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateFieldKey
}

// Index maps field keys to their locations. It fails on the first empty,
// padded, or repeated key; callers that need last-write-wins must not use it.
// Keys are used verbatim everywhere else, so " name" and "name" would never
// meet.
func Index(form FormSchema) (map[string]FieldRef, error) {
	refs := FlattenRefs(form)
	out := make(map[string]FieldRef, len(refs))
	for _, ref := range refs {
		key := ref.Field.Key
		if strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("%w in %s/%s (%q)", ErrEmptyFieldKey, ref.Tab, ref.Section, ref.Field.DisplayName)
		}
		if strings.TrimSpace(key) != key {
			return nil, fmt.Errorf("%w: %q in %s/%s", ErrPaddedFieldKey, key, ref.Tab, ref.Section)
		}
		if prev, exists := out[key]; exists {
			return nil, &DuplicateKeyError{Key: key, First: prev, Second: ref}
		}
		out[key] = ref
	}
	return out, nil
}

// Check verifies the structural invariants the engine relies on.
func Check(form FormSchema) error {
	_, err := Index(form)
	return err
}
