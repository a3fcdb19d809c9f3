package ds

import (
	"encoding/json"
	"fmt"
)

// DumpJSON renders any value as a JSON string for error messages and logs.
func DumpJSON[T any](t T) string {
	tBytes, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("DumpJSON error %w", err).Error()
	}
	return string(tBytes)
}
