// Package engine interprets declarative form schemas. It resolves each field
// through a field registry, builds a renderable View, validates required
// fields, and drives one open form instance through View/Edit modes and a
// single-flight submission to a host-supplied save callback.
//
// The engine has no transport or storage of its own: schemas, initial values,
// and the save callback are all injected by the host.
package engine
