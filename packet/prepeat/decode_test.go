package prepeat

import (
	"strings"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmultani945/log-parser-project/packet/pfield"
	"github.com/tmultani945/log-parser-project/packet/pmeta"
)

func createField(name string, typeName string, offsetBytes int, lengthBits int) pmeta.FieldDefinition {
	return pmeta.FieldDefinition{
		Name:        name,
		TypeName:    typeName,
		OffsetBytes: offsetBytes,
		LengthBits:  lengthBits,
		Kind:        pmeta.ParseKind(typeName),
	}
}

func intPtr(n int) *int {
	return &n
}

// recordTables holds a 4-byte record structure with two Uint16 fields.
func recordTables() map[string]pmeta.Table {
	return map[string]pmeta.Table{
		"7-1": {
			Name: "7-1",
			Fields: []pmeta.FieldDefinition{
				createField("Field X", "Uint16", 0, 16),
				createField("Field Y", "Uint16", 2, 16),
			},
		},
	}
}

func createWrapper(count int, offsetBytes int) pfield.Placement {
	def := createField("Records", "Table 7-1", 0, 0)
	def.Count = intPtr(count)
	return pfield.Placement{Def: &def, OffsetBits: offsetBytes * 8, RecordIndex: -1}
}

func decodedNames(fields []pfield.DecodedField) []string {
	return lo.Map(
		fields,
		func(field pfield.DecodedField, _ int) string {
			return field.Name
		},
	)
}

func TestDecodeFixedCount(t *testing.T) {
	// 2 records of 4 bytes each starting at byte 0
	payload := []byte{
		0x01, 0x00, 0x02, 0x00,
		0x03, 0x00, 0x04, 0x00,
	}
	decoded, warnings := Decode(payload, createWrapper(2, 0), recordTables(), nil, DefaultPolicy())
	assert.Empty(t, warnings)
	require.Len(t, decoded, 4)
	assert.Equal(
		t,
		[]string{
			"Field X (Record 0)", "Field Y (Record 0)",
			"Field X (Record 1)", "Field Y (Record 1)",
		},
		decodedNames(decoded),
	)
	assert.Equal(t, uint64(1), decoded[0].RawValue)
	assert.Equal(t, uint64(4), decoded[3].RawValue)
}

func TestDecodeTruncatesToPayload(t *testing.T) {
	// a 3-record count against room for only 2 full records; the partial
	// third record is dropped without a warning
	payload := make([]byte, 9)
	decoded, warnings := Decode(payload, createWrapper(3, 0), recordTables(), nil, DefaultPolicy())
	assert.Empty(t, warnings)
	assert.Len(t, decoded, 4)
}

func TestDecodeBitmaskCount(t *testing.T) {
	alreadyDecoded := []pfield.DecodedField{
		{Name: "Cumulative Bitmask", RawValue: uint64(0b101)},
	}
	// popcount 2, but only 1 record fits after the 2-byte base offset
	payload := make([]byte, 6)
	decoded, warnings := Decode(payload, createWrapper(-1, 2), recordTables(), alreadyDecoded, DefaultPolicy())
	assert.Empty(t, warnings)
	require.Len(t, decoded, 2)
	assert.Equal(t, "Field X (Record 0)", decoded[0].Name)
}

func TestDecodeCountPriority(t *testing.T) {
	alreadyDecoded := []pfield.DecodedField{
		{Name: "Cumulative Bitmask", RawValue: uint64(0b1111111)},
		{Name: "Num CA", RawValue: uint64(2)},
	}
	payload := make([]byte, 32)
	decoded, _ := Decode(payload, createWrapper(-1, 0), recordTables(), alreadyDecoded, DefaultPolicy())
	// "Num CA" outranks the bitmask popcount
	assert.Len(t, decoded, 4)
}

func TestDecodeDefaultsToOneRecord(t *testing.T) {
	payload := make([]byte, 32)
	decoded, _ := Decode(payload, createWrapper(-1, 0), recordTables(), nil, DefaultPolicy())
	assert.Len(t, decoded, 2)
}

func TestDecodeUnknownTable(t *testing.T) {
	def := createField("Records", "Table 9-9", 0, 0)
	def.Count = intPtr(-1)
	wrapper := pfield.Placement{Def: &def, OffsetBits: 0, RecordIndex: -1}

	decoded, warnings := Decode(make([]byte, 8), wrapper, recordTables(), nil, DefaultPolicy())
	assert.Nil(t, decoded)
	assert.Nil(t, warnings)
}

func TestRecordSuffix(t *testing.T) {
	assert.Equal(t, " (Record 3)", RecordSuffix(3))

	payload := make([]byte, 4)
	decoded, _ := Decode(payload, createWrapper(1, 0), recordTables(), nil, DefaultPolicy())
	require.Len(t, decoded, 2)
	assert.True(t, strings.HasSuffix(decoded[0].Name, RecordSuffix(0)))
}

func TestValidFieldsFilter(t *testing.T) {
	fields := []pmeta.FieldDefinition{
		createField("Field X", "Uint16", 0, 16),
		createField("Reserved Dummy", "Uint8", 2, 8),
		createField("Field Y", "Uint8", 3, 8),
		// zero offset after non-zero offsets marks a computed summary row
		createField("BLER", "Uint16", 0, 16),
	}
	valid := DefaultPolicy().ValidFields(fields)
	require.Len(t, valid, 2)
	assert.Equal(t, "Field X", valid[0].Name)
	assert.Equal(t, "Field Y", valid[1].Name)
}

func TestValidFieldsFilterDisabled(t *testing.T) {
	policy := DefaultPolicy()
	policy.DropZeroOffsetAfterNonzero = false
	fields := []pmeta.FieldDefinition{
		createField("Field X", "Uint16", 0, 16),
		createField("BLER", "Uint16", 0, 16),
	}
	assert.Len(t, policy.ValidFields(fields), 2)
}
