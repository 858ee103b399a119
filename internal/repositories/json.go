package repositories

import (
	"encoding/json"

	"github.com/google/uuid"
)

// parseUUID wraps uuid.Parse for nullable ID columns
func parseUUID(value string) (uuid.UUID, error) {
	return uuid.Parse(value)
}

// marshalStrings encodes a string slice for a JSON text column.
// A nil slice is stored as an empty array so the column never holds
// a distinct "missing" state.
func marshalStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

// unmarshalStrings decodes a JSON text column into a string slice.
// Malformed or empty data decodes to an empty slice.
func unmarshalStrings(data string) []string {
	if data == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil || values == nil {
		return []string{}
	}
	return values
}
