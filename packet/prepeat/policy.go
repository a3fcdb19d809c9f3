package prepeat

import (
	"strings"

	"github.com/tmultani945/log-parser-project/packet/pmeta"
)

// Policy controls the two heuristic parts of record decoding: which fields
// of a structure table count toward the record layout, and where the
// dynamic repetition count comes from. The defaults reproduce behavior
// observed against real specification tables; both heuristics are kept
// overridable because neither is known to generalize.
type Policy struct {
	// DropNameSubstrings removes fields whose name contains any of these
	// substrings (case-insensitive). Dummy/padding rows are not part of
	// the fixed-size record.
	DropNameSubstrings []string `yaml:"drop_name_substrings"`
	// DropZeroOffsetAfterNonzero removes fields at bit offset zero that
	// appear after a field with a non-zero offset. Structure tables
	// sometimes inline computed summary fields that way, and counting
	// them would corrupt the record size.
	DropZeroOffsetAfterNonzero bool `yaml:"drop_zero_offset_after_nonzero"`
	// CountFieldNames are tried in order against already-decoded fields to
	// find the dynamic repetition count. A name containing "Bitmask" is
	// read as a slot bitmask and its popcount is the count.
	CountFieldNames []string `yaml:"count_field_names"`
}

func DefaultPolicy() Policy {
	return Policy{
		DropNameSubstrings:         []string{"dummy", "padding"},
		DropZeroOffsetAfterNonzero: true,
		CountFieldNames:            []string{"Num CA", "Num Records", "Cumulative Bitmask"},
	}
}

// ValidFields filters a structure table's field list down to the fields
// that make up one fixed-size record.
func (r Policy) ValidFields(fields []pmeta.FieldDefinition) []pmeta.FieldDefinition {
	valid := make([]pmeta.FieldDefinition, 0, len(fields))
	maxOffsetSeen := 0
	for _, field := range fields {
		if r.DropZeroOffsetAfterNonzero &&
			field.TotalOffsetBits() == 0 && maxOffsetSeen > 0 {
			continue
		}
		if r.dropByName(field.Name) {
			continue
		}
		valid = append(valid, field)
		if field.TotalOffsetBits() > maxOffsetSeen {
			maxOffsetSeen = field.TotalOffsetBits()
		}
	}
	return valid
}

func (r Policy) dropByName(name string) bool {
	lower := strings.ToLower(name)
	for _, substring := range r.DropNameSubstrings {
		if strings.Contains(lower, strings.ToLower(substring)) {
			return true
		}
	}
	return false
}
