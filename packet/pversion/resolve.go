// Package pversion reads the version field from a payload and maps it to
// the table that defines that version's layout.
package pversion

import (
	"github.com/tmultani945/log-parser-project/packet/pbits"
	"github.com/tmultani945/log-parser-project/packet/perrors"
	"github.com/tmultani945/log-parser-project/packet/pmeta"
)

type (
	Info struct {
		Value     uint64 `json:"value"`
		Hex       string `json:"value_hex"`
		TableName string `json:"table"`
	}
)

// Resolve extracts the version value and looks up its layout table. When
// the value has no mapping but the logcode defines exactly one table, that
// sole table is used; otherwise the decode cannot continue.
func Resolve(payload []byte, metadata *pmeta.LogcodeMetadata) (*Info, error) {
	value, err := pbits.ExtractAuto(payload, metadata.VersionOffset*8, metadata.VersionLength)
	if err != nil {
		if tooShort, ok := err.(perrors.PayloadTooShortError); ok {
			tooShort.FieldName = "version"
			return nil, tooShort
		}
		return nil, err
	}

	lengthBytes := (metadata.VersionLength + 7) / 8
	info := Info{
		Value: value,
		Hex:   pbits.UintToHexString(value, lengthBytes*2),
	}

	tableName, ok := metadata.VersionMap[value]
	if !ok {
		if len(metadata.Tables) != 1 {
			return nil, perrors.VersionNotFoundError{
				LogcodeID: metadata.LogcodeID,
				Version:   value,
			}
		}
		// single-version degeneration: no mapping, one table defined
		for name := range metadata.Tables {
			tableName = name
		}
	}
	info.TableName = tableName
	return &info, nil
}
