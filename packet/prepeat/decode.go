// Package prepeat decodes repeating-structure fields: a table-reference
// field repeated N times back-to-back, where N is resolved at decode time
// and the record size comes from the referenced structure table.
package prepeat

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/tmultani945/log-parser-project/packet/pfield"
	"github.com/tmultani945/log-parser-project/packet/pmeta"
)

// Decode expands and decodes one repeating-structure wrapper field.
// alreadyDecoded are the fields decoded earlier in this same payload, in
// decode order; the dynamic repetition count is searched there.
//
// The number of decoded records is min(logical count, records that fully
// fit in the remaining payload). Payloads shorter than the declared count
// are expected, not an error: the trailing array is variable-length, and a
// partially-fitting record is dropped, never partially decoded.
//
// A single field's decode failure is reported as a warning and skipped; it
// aborts neither the record nor the remaining records.
func Decode(
	payload []byte,
	wrapper pfield.Placement,
	tables map[string]pmeta.Table,
	alreadyDecoded []pfield.DecodedField,
	policy Policy,
) ([]pfield.DecodedField, []string) {
	refTable, ok := tables[wrapper.Def.Kind.TableRef]
	if !ok {
		return nil, nil
	}

	validFields := policy.ValidFields(refTable.Fields)
	if len(validFields) == 0 {
		return nil, nil
	}

	recordSizeBits := 0
	for _, field := range validFields {
		if field.EndBit() > recordSizeBits {
			recordSizeBits = field.EndBit()
		}
	}
	recordSizeBytes := (recordSizeBits + 7) / 8
	if recordSizeBytes == 0 {
		return nil, nil
	}

	logicalCount, ok := wrapper.Def.FixedCount()
	if !ok {
		logicalCount = policy.repetitionCount(alreadyDecoded)
	}

	baseOffsetBytes := wrapper.OffsetBits / 8
	availableBytes := len(payload) - baseOffsetBytes
	maxRecordsFit := 0
	if availableBytes > 0 {
		maxRecordsFit = availableBytes / recordSizeBytes
	}
	actualCount := logicalCount
	if maxRecordsFit < actualCount {
		actualCount = maxRecordsFit
	}
	if actualCount <= 0 {
		return nil, nil
	}

	decoded := make([]pfield.DecodedField, 0, actualCount*len(validFields))
	warnings := []string(nil)
	for recordIdx := 0; recordIdx < actualCount; recordIdx++ {
		recordOffsetBits := (baseOffsetBytes + recordIdx*recordSizeBytes) * 8
		for i := range validFields {
			placement := pfield.Placement{
				Def:         &validFields[i],
				OffsetBits:  recordOffsetBits + validFields[i].TotalOffsetBits(),
				RecordIndex: recordIdx,
			}
			field, err := pfield.Decode(payload, placement)
			if err != nil {
				warnings = append(warnings, err.Error())
				continue
			}
			decoded = append(decoded, *field)
		}
	}
	return decoded, warnings
}

// repetitionCount searches already-decoded fields for the dynamic count,
// trying the policy's field names in priority order. Bitmask fields encode
// which record slots are active, so their popcount is the count. When no
// count field is present a single record is assumed.
func (r Policy) repetitionCount(alreadyDecoded []pfield.DecodedField) int {
	fieldByName := map[string]pfield.DecodedField{}
	for _, field := range alreadyDecoded {
		if _, seen := fieldByName[field.Name]; !seen {
			fieldByName[field.Name] = field
		}
	}

	for _, name := range r.CountFieldNames {
		field, ok := fieldByName[name]
		if !ok {
			continue
		}
		raw, ok := rawAsUint64(field.RawValue)
		if !ok {
			continue
		}
		if strings.Contains(name, "Bitmask") {
			return bits.OnesCount64(raw)
		}
		return int(raw)
	}
	return 1
}

func rawAsUint64(raw any) (uint64, bool) {
	switch value := raw.(type) {
	case uint64:
		return value, true
	case int64:
		if value < 0 {
			return 0, false
		}
		return uint64(value), true
	case int:
		if value < 0 {
			return 0, false
		}
		return uint64(value), true
	}
	return 0, false
}

// RecordSuffix is the canonical record-name suffix; pderive builds its
// per-record lookup names with it.
func RecordSuffix(recordIdx int) string {
	return fmt.Sprintf(" (Record %d)", recordIdx)
}
