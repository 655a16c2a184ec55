package assertions

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// mockT records assertion failures without failing the real test.
type mockT struct {
	failed   bool
	messages []string
}

func (m *mockT) Errorf(format string, args ...any) {
	m.failed = true
	m.messages = append(m.messages, fmt.Sprintf(format, args...))
}

func (m *mockT) output() string {
	return strings.Join(m.messages, "\n")
}

// haltT additionally records FailNow, marking resource errors.
type haltT struct {
	mockT
	halted bool
}

func (h *haltT) FailNow() {
	h.halted = true
}

func parseJSON(t *testing.T, text string) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(text), &data))
	return data
}
