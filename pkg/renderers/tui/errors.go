package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDiscarded is returned when the user declines to submit; the form's
	// edits are cancelled.
	ErrDiscarded = errors.New("tui: changes discarded")
	// ErrNilForm is returned when Fill is called without a form.
	ErrNilForm = errors.New("tui: form is required")
)
