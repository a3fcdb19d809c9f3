// Package export assembles a decoded packet into insertion-ordered JSON:
// field keys appear in decode order, with repeating-structure fields
// carrying their record suffix.
package export

import (
	"encoding/json"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"

	"github.com/tmultani945/log-parser-project/packet"
	"github.com/tmultani945/log-parser-project/packet/pfield"
)

// ToOrderedMap lays out the decode result the way downstream consumers
// read it: identity first, then version, header, fields, summary.
func ToOrderedMap(decoded packet.DecodedPacket) *orderedmap.OrderedMap {
	result := orderedmap.New()
	result.Set("logcode_id", decoded.LogcodeIDHex)
	result.Set("logcode_id_decimal", decoded.LogcodeIDDecimal)
	result.Set("logcode_name", decoded.LogcodeName)

	version := orderedmap.New()
	version.Set("value", decoded.Version.Value)
	version.Set("value_hex", decoded.Version.Hex)
	version.Set("table", decoded.Version.TableName)
	result.Set("version", version)

	header := orderedmap.New()
	header.Set("length", decoded.Header.Length)
	header.Set("logcode_id", decoded.Header.LogcodeID)
	header.Set("timestamp", decoded.Header.Timestamp)
	header.Set("sequence", decoded.Header.Sequence)
	result.Set("header", header)

	fields := orderedmap.New()
	for _, field := range decoded.Fields {
		fields.Set(field.Name, fieldEntry(field))
	}
	result.Set("fields", fields)

	summary := orderedmap.New()
	summary.Set("section", decoded.Summary.Section)
	summary.Set("payload_size_bytes", decoded.Summary.PayloadSizeBytes)
	summary.Set("fields_decoded", decoded.Summary.FieldsDecoded)
	result.Set("metadata", summary)

	if len(decoded.Warnings) > 0 {
		result.Set("warnings", decoded.Warnings)
	}
	return result
}

func fieldEntry(field pfield.DecodedField) *orderedmap.OrderedMap {
	entry := orderedmap.New()
	entry.Set("raw_value", field.RawValue)
	entry.Set("type", field.TypeName)
	if field.FriendlyValue != "" {
		entry.Set("decoded", field.FriendlyValue)
	}
	if field.Description != "" {
		entry.Set("description", field.Description)
	}
	return entry
}

func ToJSON(decoded packet.DecodedPacket, pretty bool) ([]byte, error) {
	result := ToOrderedMap(decoded)
	bs := []byte(nil)
	err := error(nil)
	if pretty {
		bs, err = json.MarshalIndent(result, "", "  ")
	} else {
		bs, err = json.Marshal(result)
	}
	if err != nil {
		err := errors.Wrap(err, "export.ToJSON error")
		return nil, err
	}
	return bs, nil
}
