package state

import (
	"fmt"
	"sort"
	"strings"
)

// Container holds the live values of one open form, keyed by field key.
// Keys are flat; the schema guarantees they are unique across the form.
// A Container is owned by a single form instance and is not safe for
// concurrent use.
type Container struct {
	values map[string]any
}

// New seeds a container with a deep copy of initial.
func New(initial map[string]any) *Container {
	return &Container{values: cloneValues(initial)}
}

// Get returns the value stored under key.
func (c *Container) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, ok := c.values[key]
	return value, ok
}

// Set stores value under key, replacing any previous value.
func (c *Container) Set(key string, value any) error {
	if c == nil {
		return fmt.Errorf("state: container is nil")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("state: key is required")
	}
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[key] = deepCopy(value)
	return nil
}

// Delete removes key.
func (c *Container) Delete(key string) {
	if c == nil {
		return
	}
	delete(c.values, key)
}

// Reset replaces every value with a deep copy of initial.
func (c *Container) Reset(initial map[string]any) {
	if c == nil {
		return
	}
	c.values = cloneValues(initial)
}

// Snapshot returns a deep copy of the current values.
func (c *Container) Snapshot() map[string]any {
	if c == nil {
		return make(map[string]any)
	}
	return cloneValues(c.values)
}

// Keys lists stored keys in sorted order.
func (c *Container) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.values))
	for key := range c.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func cloneValues(src map[string]any) map[string]any {
	if len(src) == 0 {
		return make(map[string]any)
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}
