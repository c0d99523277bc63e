package fields

import (
	"fmt"
	"sync"
)

// Built-in widget identifiers handed to renderers.
const (
	WidgetTextInput     = "text-input"
	WidgetPasswordInput = "password-input"
	WidgetNumberInput   = "number-input"
	WidgetRadioGroup    = "radio-group"
	WidgetSelect        = "select"
	WidgetCheckboxGroup = "checkbox-group"
)

// NormalizeFunc converts a raw value coming from a widget into the value
// stored in form state.
type NormalizeFunc func(value any) any

// Capability bundles what the engine needs to know about a field kind.
type Capability struct {
	Kind      Kind
	Widget    string
	Normalize NormalizeFunc
}

// Registry maps field kinds to capabilities. The zero value is not usable;
// call NewRegistry.
type Registry struct {
	mu           sync.RWMutex
	capabilities map[Kind]Capability
}

// NewRegistry constructs a registry with a capability for every built-in kind.
func NewRegistry() *Registry {
	reg := &Registry{capabilities: make(map[Kind]Capability, len(kindNames))}
	reg.registerBuiltins()
	return reg
}

// Register replaces the capability for a known kind. Unknown kinds are
// rejected so that the set of kinds stays closed.
func (r *Registry) Register(capability Capability) error {
	if r == nil {
		return fmt.Errorf("fields: registry is nil")
	}
	if _, ok := kindNames[capability.Kind]; !ok {
		return fmt.Errorf("fields: cannot register unknown kind %d", capability.Kind)
	}
	if capability.Normalize == nil {
		capability.Normalize = passThrough
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.capabilities[capability.Kind] = capability
	return nil
}

// Resolve matches typeName case-insensitively against the registered kinds.
// The boolean is false for names the registry cannot resolve.
func (r *Registry) Resolve(typeName string) (Capability, bool) {
	if r == nil {
		return Capability{}, false
	}
	kind, ok := ParseKind(typeName)
	if !ok {
		return Capability{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	capability, ok := r.capabilities[kind]
	return capability, ok
}

func (r *Registry) registerBuiltins() {
	for _, kind := range Kinds() {
		r.capabilities[kind] = builtinCapability(kind)
	}
}

func builtinCapability(kind Kind) Capability {
	capability := Capability{Kind: kind, Normalize: passThrough}
	switch kind {
	case KindText:
		capability.Widget = WidgetTextInput
	case KindPassword:
		capability.Widget = WidgetPasswordInput
	case KindRadio:
		capability.Widget = WidgetRadioGroup
	case KindDropdown:
		capability.Widget = WidgetSelect
	case KindMultiSelect:
		capability.Widget = WidgetCheckboxGroup
		capability.Normalize = normalizeList
	case KindNumber:
		capability.Widget = WidgetNumberInput
		capability.Normalize = normalizeNumber
	}
	return capability
}

func passThrough(value any) any {
	return value
}

func normalizeList(value any) any {
	if value == nil {
		return []any{}
	}
	return AsList(value)
}

// normalizeNumber parses numeric strings; anything else, including text that
// does not parse, is stored as given.
func normalizeNumber(value any) any {
	raw, ok := value.(string)
	if !ok {
		return value
	}
	if n, ok := parseNumber(raw); ok {
		return n
	}
	return raw
}
