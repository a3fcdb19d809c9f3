package pfield

import (
	"fmt"

	"github.com/tmultani945/log-parser-project/packet/pmeta"
)

type (
	// DecodedField is one named, typed output value. RawValue holds uint64,
	// int64, bool, float32 or float64 depending on the field's kind.
	DecodedField struct {
		Name          string `json:"name"`
		TypeName      string `json:"type_name"`
		RawValue      any    `json:"raw_value"`
		FriendlyValue string `json:"friendly_value,omitempty"`
		Description   string `json:"description,omitempty"`
	}
	// Placement resolves a field definition to an absolute position in one
	// payload. Definitions stay immutable and shared; every offset
	// adjustment (version prefix, table expansion, record striding) is
	// carried here instead.
	Placement struct {
		Def        *pmeta.FieldDefinition
		OffsetBits int
		// RecordIndex is -1 outside repeating structures.
		RecordIndex int
	}
)

// Name is the output name of the placed field, carrying the record suffix
// for repeating-structure instances.
func (r Placement) Name() string {
	if r.RecordIndex < 0 {
		return r.Def.Name
	}
	return fmt.Sprintf("%s (Record %d)", r.Def.Name, r.RecordIndex)
}

func Place(def *pmeta.FieldDefinition, offsetBits int) Placement {
	return Placement{
		Def:         def,
		OffsetBits:  offsetBits,
		RecordIndex: -1,
	}
}
