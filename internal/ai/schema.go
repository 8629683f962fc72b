package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedOutput means the model answered but not in the requested shape
	ErrMalformedOutput = errors.New("malformed generator output")
	// ErrNotConfigured means no generator credentials were provided
	ErrNotConfigured = errors.New("generator is not configured")
)

// DecodeFields parses the model output as a JSON object and returns the
// required string fields. Missing fields, non-string values and non-object
// payloads are rejected with ErrMalformedOutput.
func DecodeFields(raw string, fields []string) (map[string]string, error) {
	raw = strings.TrimSpace(stripCodeFence(raw))
	if raw == "" {
		return nil, fmt.Errorf("%w: empty output", ErrMalformedOutput)
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}

	out := make(map[string]string, len(fields))
	for _, field := range fields {
		value, ok := payload[field]
		if !ok {
			return nil, fmt.Errorf("%w: missing field %q", ErrMalformedOutput, field)
		}
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, fmt.Errorf("%w: field %q is not a string", ErrMalformedOutput, field)
		}
		out[field] = s
	}
	return out, nil
}

// stripCodeFence removes a ```json ... ``` wrapper some models add
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSuffix(strings.TrimSpace(s), "```")
}
