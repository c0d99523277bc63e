// Package template wraps pongo2 behind a small rendering contract used by the
// HTML renderer. Templates load from an fs.FS or a directory on disk and
// receive data converted to plain maps and slices.
package template
