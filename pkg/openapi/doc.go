// Package openapi exposes the contracts for deriving form schemas from OpenAPI
// operations: Source and Document wrappers, the Loader and Parser stages, and
// FormFromOperation. The kin-openapi backed implementations live under
// internal/openapi so consumers never touch kin-openapi types.
package openapi
