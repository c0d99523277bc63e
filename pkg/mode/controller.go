package mode

import "strings"

// Mode gates whether a form's fields are interactive.
type Mode string

const (
	View Mode = "view"
	Edit Mode = "edit"
)

// Action keys understood by the controller.
const (
	ActionEdit   = "edit"
	ActionCancel = "cancel"
	ActionSubmit = "submit"
)

// HeaderAction is a button offered in the form header for a given mode.
type HeaderAction struct {
	Key    string `json:"key" yaml:"key"`
	Action string `json:"action" yaml:"action"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Parse maps a mode name case-insensitively. Unknown names report false.
func Parse(name string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case View:
		return View, true
	case Edit:
		return Edit, true
	default:
		return "", false
	}
}

// Controller is the View/Edit state machine behind a form header.
type Controller struct {
	current Mode
	actions map[Mode][]HeaderAction
}

// New starts a controller in the caller-supplied mode. The actions map is
// copied so later changes by the caller do not leak in.
func New(initial Mode, actions map[Mode][]HeaderAction) *Controller {
	return &Controller{
		current: initial,
		actions: cloneActions(actions),
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	return c.current
}

// Editable reports whether fields accept input in the current mode.
func (c *Controller) Editable() bool {
	return c.current == Edit
}

// Dispatch applies an action key and returns the resulting mode. The boolean
// is false for keys the controller does not recognise, which leave the mode
// unchanged. Submit is recognised but never changes the mode itself.
func (c *Controller) Dispatch(key string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case ActionEdit:
		c.current = Edit
	case ActionCancel:
		c.current = View
	case ActionSubmit:
	default:
		return c.current, false
	}
	return c.current, true
}

// Set forces the mode, for hosts that switch back to View after a save.
func (c *Controller) Set(m Mode) {
	c.current = m
}

// HeaderActions returns the actions offered for the current mode, or an
// empty slice when the mode has none configured.
func (c *Controller) HeaderActions() []HeaderAction {
	list := c.actions[c.current]
	out := make([]HeaderAction, len(list))
	copy(out, list)
	return out
}

func cloneActions(src map[Mode][]HeaderAction) map[Mode][]HeaderAction {
	out := make(map[Mode][]HeaderAction, len(src))
	for m, list := range src {
		out[m] = append([]HeaderAction(nil), list...)
	}
	return out
}
