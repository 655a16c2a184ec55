// Package assertions provides test assertions for structured JSON data.
//
// Supported assertions:
//   - JSON Schema validation from a schema file or inline schema text
//     (MatchesSchema, MatchesSchemaString)
//   - Value extraction and comparison via JMESPath expressions
//     (ValueEquals), with a strict kind check on top of deep equality
//
// Helpers:
//   - Search extracts a value without asserting
//   - ToJSONObject coerces JSON text into a structured composition
//
// Assertions work with any testify-compatible test target. Schema
// invalidity and value mismatches fail the test normally; resource
// problems (unreadable schema, malformed JSON, bad expression syntax)
// halt it, so a failing test is distinguishable from a misconfigured one.
package assertions
