// Package query evaluates path expressions against structured JSON data.
//
// Two engines are provided behind a common Evaluator interface:
//   - JMESPath (default): full JMESPath semantics including filters,
//     projections and pipe expressions (e.g. "users[?age > `30`].name")
//   - GJSON: gjson path syntax with bracket-notation conversion
//     (e.g. "items[0].id" is rewritten to "items.0.id")
//
// Evaluators return nil for paths that match nothing and an error only
// for expressions that fail to parse.
package query
