package fields

import "strings"

// Kind enumerates the field types the engine knows how to render.
type Kind int

const (
	KindUnknown Kind = iota
	KindText
	KindPassword
	KindRadio
	KindDropdown
	KindMultiSelect
	KindNumber
)

var kindNames = map[Kind]string{
	KindText:        "text",
	KindPassword:    "password",
	KindRadio:       "radio",
	KindDropdown:    "dropdown",
	KindMultiSelect: "multiselect",
	KindNumber:      "number",
}

// kindsByName is the reverse of kindNames, keyed by lower-case name.
var kindsByName = func() map[string]Kind {
	out := make(map[string]Kind, len(kindNames))
	for kind, name := range kindNames {
		out[name] = kind
	}
	return out
}()

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindText, KindPassword, KindRadio, KindDropdown, KindMultiSelect, KindNumber}
}

// String returns the canonical lower-case type name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// HasOptions reports whether fields of this kind carry an option list.
func (k Kind) HasOptions() bool {
	switch k {
	case KindRadio, KindDropdown, KindMultiSelect:
		return true
	default:
		return false
	}
}

// ParseKind matches a declared type name case-insensitively.
func ParseKind(name string) (Kind, bool) {
	kind, ok := kindsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return KindUnknown, false
	}
	return kind, true
}
