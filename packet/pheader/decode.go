package pheader

import (
	"github.com/pkg/errors"

	"github.com/tmultani945/log-parser-project/packet/pbits"
	"github.com/tmultani945/log-parser-project/packet/perrors"
)

// Decode reads the 12-byte header:
//
//	[0:2]  total length  (uint16 LE)
//	[2:4]  logcode id    (uint16 LE)
//	[4:8]  timestamp     (uint32 LE)
//	[8:12] sequence      (uint32 LE)
func Decode(bs []byte) (*Header, error) {
	if len(bs) < Size {
		return nil, perrors.PayloadTooShortError{
			RequiredBytes: Size,
			ActualBytes:   len(bs),
			FieldName:     "header",
		}
	}

	reader := pbits.NewReader(bs)
	readUint16 := pbits.CreateUint16ReadFunction(reader)
	readUint32 := pbits.CreateUint32ReadFunction(reader)

	headerInstructions := []pbits.Instruction{
		{Key: "length", ReadFunction: readUint16},
		{Key: "logcode_id", ReadFunction: readUint16},
		{Key: "timestamp", ReadFunction: readUint32},
		{Key: "sequence", ReadFunction: readUint32},
	}

	header, err := pbits.ExecuteInstructions[Header](headerInstructions)
	if err != nil {
		err := errors.Wrap(err, "pheader.Decode error")
		return nil, err
	}
	return header, nil
}

// LogcodeHex formats the header's logcode id the way metadata keys it,
// e.g. "0xB823".
func (r Header) LogcodeHex() string {
	return pbits.UintToHexString(uint64(r.LogcodeID), 4)
}
