package query

import (
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// JMESPath evaluates JMESPath expressions. It is the default engine for
// assertions and supports field access, indexing, slicing, filters,
// projections, multiselect and pipe expressions.
type JMESPath struct{}

func NewJMESPath() *JMESPath {
	return &JMESPath{}
}

func (*JMESPath) Search(expression string, data any) (any, error) {
	result, err := jmespath.Search(expression, data)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", expression, err)
	}
	return result, nil
}
