// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError    = "error"
	FieldPath     = "path"
	FieldDuration = "duration"

	// Pack fields.
	FieldPack     = "pack"
	FieldCommands = "commands"
	FieldNodes    = "nodes"

	// Session fields.
	FieldTokens      = "tokens"
	FieldCursor      = "cursor"
	FieldBytes       = "bytes"
	FieldDiagnostics = "diagnostics"
	FieldSuggestions = "suggestions"

	// Language server fields.
	FieldURI     = "uri"
	FieldMethod  = "method"
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
