package utils

import (
	"bytes"
	"encoding/json"
	"strings"
)

// NormalizeFormData turns the form_data request field into the JSON text that
// is stored. Clients send either an object or an already-serialised string.
func NormalizeFormData(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "{}"
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
			return "{}"
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}

// SingleLine collapses line breaks so a note occupies exactly one line of the
// newline-joined notes column.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
