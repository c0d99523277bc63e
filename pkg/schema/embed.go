package schema

import (
	"embed"
	"io/fs"
)

//go:embed forms/*
var embeddedForms embed.FS

// EmbeddedFS returns the bundled admin console forms (user, role, group,
// course category). Pass it to LoadFS to use them.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		// the embed directive guarantees the directory exists
		panic(err)
	}
	return sub
}
