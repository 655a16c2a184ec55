// Package schema resolves and validates JSON Schema documents.
//
// A Resolver turns a schema source (file path, bytes or string) into a
// compiled schema with all $ref pointers resolvable:
//   - relative refs resolve against the canonical file:// URI of the
//     schema's location (symlinks and relative segments resolved first)
//   - refs to bundled fragments (see the fragments directory) resolve
//     against the embedded fragment root
//   - remote http(s) refs can be preloaded through a rate-limited
//     Retriever with an optional sqlite-backed cache
//
// Validation produces a Result listing each violated constraint with the
// offending property path and a human-readable message.
package schema
