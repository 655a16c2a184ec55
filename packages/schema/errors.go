package schema

import "errors"

// Sentinel errors distinguishing schema setup failures from ordinary
// validation outcomes. A schema that compiles but rejects a document is
// not an error; these are.
var (
	// ErrSchemaRetrieval indicates the schema source could not be read
	// (missing or unreadable file, failed remote fetch).
	ErrSchemaRetrieval = errors.New("schema retrieval failed")

	// ErrSchemaParse indicates the schema source is not valid JSON or YAML.
	ErrSchemaParse = errors.New("schema parse failed")

	// ErrSchemaResolution indicates the schema could not be compiled,
	// typically because a $ref pointer could not be resolved.
	ErrSchemaResolution = errors.New("schema resolution failed")
)
