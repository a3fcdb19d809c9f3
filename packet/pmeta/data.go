// Package pmeta holds the field-layout metadata consumed by the decoder:
// per-logcode version maps and named tables of field definitions, produced
// externally and treated as read-only for the lifetime of a decode call.
package pmeta

type (
	// FieldDefinition is one row of a specification table. Instances are
	// immutable after loading; offset adjustment happens in separate
	// placement values, never in the definition itself.
	FieldDefinition struct {
		Name         string            `json:"name"`
		TypeName     string            `json:"type_name"`
		OffsetBytes  int               `json:"offset_bytes"`
		OffsetBits   int               `json:"offset_bits"`
		LengthBits   int               `json:"length_bits"`
		Description  string            `json:"description"`
		EnumMappings map[uint64]string `json:"enum_mappings,omitempty"`
		// Count is nil when the field is not repeating, -1 when the
		// repetition count comes from another field, and a positive
		// integer for a fixed count.
		Count *int `json:"count,omitempty"`
		Kind  Kind `json:"-"`
	}
	Table struct {
		Name         string            `json:"-"`
		Fields       []FieldDefinition `json:"fields"`
		Dependencies []string          `json:"dependencies,omitempty"`
	}
	LogcodeMetadata struct {
		LogcodeID     string            `json:"logcode_id"`
		LogcodeName   string            `json:"logcode_name"`
		Section       string            `json:"section"`
		VersionOffset int               `json:"version_offset"`
		VersionLength int               `json:"version_length"`
		VersionMap    map[uint64]string `json:"version_map"`
		Tables        map[string]Table  `json:"all_tables"`
	}
)

// TotalOffsetBits is the field's own bit offset within its table.
func (r FieldDefinition) TotalOffsetBits() int {
	return r.OffsetBytes*8 + r.OffsetBits
}

// EndBit is the first bit past the field.
func (r FieldDefinition) EndBit() int {
	return r.TotalOffsetBits() + r.LengthBits
}

// Repeating reports whether the field denotes an array of records shaped
// like a referenced table rather than a single value.
func (r FieldDefinition) Repeating() bool {
	return r.Kind.Tag == KindTable &&
		r.Count != nil &&
		*r.Count != 1
}

// FixedCount returns the declared repetition count when it is a fixed
// positive number.
func (r FieldDefinition) FixedCount() (int, bool) {
	if r.Count != nil && *r.Count > 0 {
		return *r.Count, true
	}
	return 0, false
}

// VersionOffsetBytes is the number of payload bytes occupied by the version
// prefix; layout fields start after it.
func (r LogcodeMetadata) VersionOffsetBytes() int {
	return r.VersionOffset + (r.VersionLength+7)/8
}
