package pmeta

import (
	"regexp"
	"strings"
)

type (
	// Kind is the closed variant a type-name string is parsed into once at
	// metadata load, so that no string matching happens on the per-field
	// decode path.
	Kind struct {
		Tag KindTag
		// TableRef is the referenced table name (e.g. "4-4") when Tag is
		// KindTable.
		TableRef string
	}
	KindTag string
)

const (
	KindUint    = KindTag("uint")
	KindInt     = KindTag("int")
	KindBool    = KindTag("bool")
	KindEnum    = KindTag("enum")
	KindFloat32 = KindTag("float32")
	KindFloat64 = KindTag("float64")
	KindTable   = KindTag("table")
)

var tableRefPattern = regexp.MustCompile(`(?i)Table\s+(\d+-\d+)`)

// ParseKind classifies a raw type-name string from a specification table.
// Recognized substrings, in priority order: a "Table N-M" reference,
// float32/float64, bool, enum, uint, and int (signed, only when "uint" is
// absent). Anything unrecognized decodes as an unsigned integer.
func ParseKind(typeName string) Kind {
	if match := tableRefPattern.FindStringSubmatch(typeName); match != nil {
		return Kind{Tag: KindTable, TableRef: match[1]}
	}

	lower := strings.ToLower(typeName)
	switch {
	case strings.Contains(lower, "float32"):
		return Kind{Tag: KindFloat32}
	case strings.Contains(lower, "float64"):
		return Kind{Tag: KindFloat64}
	case strings.Contains(lower, "bool"):
		return Kind{Tag: KindBool}
	case strings.Contains(lower, "enum"):
		return Kind{Tag: KindEnum}
	case strings.Contains(lower, "uint"):
		return Kind{Tag: KindUint}
	case strings.Contains(lower, "int"):
		return Kind{Tag: KindInt}
	}
	return Kind{Tag: KindUint}
}

// TableRefName extracts the "N-M" table name from a type-name string,
// returning false when the string is not a table reference.
func TableRefName(typeName string) (string, bool) {
	match := tableRefPattern.FindStringSubmatch(typeName)
	if match == nil {
		return "", false
	}
	return match[1], true
}
