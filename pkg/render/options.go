package render

// RenderOptions carry per-request data that renderers can use without
// touching the view.
type RenderOptions struct {
	// Action is the URL the rendered form posts to.
	Action string
	// Method overrides the HTTP method; renderers translate verbs browsers
	// cannot send into POST plus a hidden _method input.
	Method string
	// Hidden lists extra hidden inputs such as CSRF tokens.
	Hidden []HiddenField
}
