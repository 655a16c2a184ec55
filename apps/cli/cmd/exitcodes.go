package cmd

// Exit codes for the jsonspec CLI
const (
	// ExitSuccess indicates all documents validated
	ExitSuccess = 0

	// ExitInvalid indicates one or more documents failed validation
	ExitInvalid = 1

	// ExitSchemaError indicates the schema could not be loaded or resolved
	ExitSchemaError = 2

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
