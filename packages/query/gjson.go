package query

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// GJSON evaluates gjson path expressions. Array bracket notation is
// accepted and rewritten to gjson's dot form before evaluation.
type GJSON struct{}

func NewGJSON() *GJSON {
	return &GJSON{}
}

func (*GJSON) Search(expression string, data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode data to JSON: %w", err)
	}

	path := convertBracketNotation(expression)
	if path == "" {
		return gjson.ParseBytes(raw).Value(), nil
	}

	result := gjson.GetBytes(raw, path)
	if !result.Exists() {
		return nil, nil
	}
	return result.Value(), nil
}

// convertBracketNotation converts array bracket notation to gjson dot notation
// e.g., "[0].id" -> "0.id", "items[0].tags[1]" -> "items.0.tags.1"
func convertBracketNotation(path string) string {
	result := regexp.MustCompile(`\[(\d+)\]`).ReplaceAllString(path, ".$1")
	return strings.TrimPrefix(result, ".")
}
