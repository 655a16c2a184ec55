package query

// Evaluator extracts a value from structured JSON data using a path
// expression. Implementations own the expression syntax entirely.
type Evaluator interface {
	Search(expression string, data any) (any, error)
}
