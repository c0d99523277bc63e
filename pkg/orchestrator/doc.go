// Package orchestrator wires schema resolution (embedded documents or an
// OpenAPI operation), form instantiation and rendering behind a single entry
// point.
package orchestrator
