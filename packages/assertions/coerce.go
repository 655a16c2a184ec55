package assertions

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrJSONParse indicates text passed to ToJSONObject is not valid JSON.
var ErrJSONParse = errors.New("invalid JSON text")

// ToJSONObject returns data unchanged when it is already a structured
// JSON composition. Strings and byte slices are treated as JSON text and
// deserialized.
func ToJSONObject(data any) (any, error) {
	switch v := data.(type) {
	case string:
		return parseJSONText([]byte(v))
	case []byte:
		return parseJSONText(v)
	case json.RawMessage:
		return parseJSONText(v)
	default:
		return data, nil
	}
}

func parseJSONText(raw []byte) (any, error) {
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONParse, err)
	}
	return out, nil
}
