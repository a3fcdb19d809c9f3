// Package penum maps raw integers to human-readable labels, either through
// an explicit value→label table or by parsing one out of a field's free-text
// description.
package penum

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	// bulletPattern matches listing lines such as "• 2 – DUAL STANDBY",
	// with -, – or : as the separator and an optional bullet marker.
	bulletPattern = regexp.MustCompile(`(?m)^\s*[•\-*]?\s*(\d+)\s*[–\-:]\s*(.+?)\s*$`)
	// inlinePattern matches inline sequences such as "0 = IDLE, 1 = CONNECTED".
	inlinePattern = regexp.MustCompile(`(\d+)\s*=\s*([A-Z][A-Z0-9_]*(?: [A-Z0-9_]+)*)`)
)

// Label maps a raw value through an explicit mapping table.
func Label(raw uint64, mappings map[uint64]string) string {
	if label, ok := mappings[raw]; ok {
		return label
	}
	return fmt.Sprintf("UNKNOWN(%d)", raw)
}

// ParseMappings extracts a value→label table from description text. It
// recognizes bulleted listing lines first and falls back to inline "<int> =
// <LABEL>" sequences; nil means no table was found.
func ParseMappings(description string) map[uint64]string {
	mappings := map[uint64]string{}
	for _, match := range bulletPattern.FindAllStringSubmatch(description, -1) {
		value, err := strconv.ParseUint(match[1], 10, 64)
		if err != nil {
			continue
		}
		mappings[value] = match[2]
	}
	if len(mappings) > 0 {
		return mappings
	}

	for _, match := range inlinePattern.FindAllStringSubmatch(description, -1) {
		value, err := strconv.ParseUint(match[1], 10, 64)
		if err != nil {
			continue
		}
		mappings[value] = match[2]
	}
	if len(mappings) > 0 {
		return mappings
	}
	return nil
}

// Resolve produces the friendly label for a raw enum value. Explicit
// mappings win; a table parsed out of the description is the fallback; the
// decimal string is the last resort. Pure function.
func Resolve(raw uint64, mappings map[uint64]string, description string) string {
	if mappings != nil {
		return Label(raw, mappings)
	}
	if parsed := ParseMappings(description); parsed != nil {
		return Label(raw, parsed)
	}
	return strconv.FormatUint(raw, 10)
}
