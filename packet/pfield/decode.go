package pfield

import (
	"fmt"
	"math"

	"github.com/tmultani945/log-parser-project/packet/pbits"
	"github.com/tmultani945/log-parser-project/packet/penum"
	"github.com/tmultani945/log-parser-project/packet/perrors"
	"github.com/tmultani945/log-parser-project/packet/pmeta"
)

type convertFunc func(raw uint64, def *pmeta.FieldDefinition) (any, string, error)

var dispatchMap = map[pmeta.KindTag]convertFunc{
	pmeta.KindUint:    convertUint,
	pmeta.KindInt:     convertInt,
	pmeta.KindBool:    convertBool,
	pmeta.KindEnum:    convertEnum,
	pmeta.KindFloat32: convertFloat32,
	pmeta.KindFloat64: convertFloat64,
	// A table reference that survived expansion (unknown table) decodes as
	// a plain unsigned value.
	pmeta.KindTable: convertUint,
}

// Decode extracts and converts one placed field from the payload. A
// PayloadTooShortError passes through unchanged; any conversion failure is
// reported as a FieldDecodingError carrying the output field name.
func Decode(payload []byte, placement Placement) (*DecodedField, error) {
	def := placement.Def
	raw, err := pbits.ExtractAuto(payload, placement.OffsetBits, def.LengthBits)
	if err != nil {
		if tooShort, ok := err.(perrors.PayloadTooShortError); ok {
			tooShort.FieldName = placement.Name()
			return nil, tooShort
		}
		return nil, perrors.FieldDecodingError{
			FieldName: placement.Name(),
			Reason:    err.Error(),
		}
	}

	convert, ok := dispatchMap[def.Kind.Tag]
	if !ok {
		return nil, perrors.FieldDecodingError{
			FieldName: placement.Name(),
			Reason:    fmt.Sprintf(`no converter for kind "%s"`, def.Kind.Tag),
		}
	}
	value, friendly, err := convert(raw, def)
	if err != nil {
		return nil, perrors.FieldDecodingError{
			FieldName: placement.Name(),
			Reason:    err.Error(),
		}
	}

	return &DecodedField{
		Name:          placement.Name(),
		TypeName:      def.TypeName,
		RawValue:      value,
		FriendlyValue: friendly,
		Description:   def.Description,
	}, nil
}

func convertUint(raw uint64, _ *pmeta.FieldDefinition) (any, string, error) {
	return raw, "", nil
}

func convertInt(raw uint64, def *pmeta.FieldDefinition) (any, string, error) {
	return SignedFromBits(raw, def.LengthBits), "", nil
}

func convertBool(raw uint64, _ *pmeta.FieldDefinition) (any, string, error) {
	value := raw&1 != 0
	if value {
		return true, "true", nil
	}
	return false, "false", nil
}

func convertEnum(raw uint64, def *pmeta.FieldDefinition) (any, string, error) {
	return raw, penum.Resolve(raw, def.EnumMappings, def.Description), nil
}

func convertFloat32(raw uint64, def *pmeta.FieldDefinition) (any, string, error) {
	if def.LengthBits != 32 {
		return nil, "", fmt.Errorf("float32 field has length %d bits, want 32", def.LengthBits)
	}
	return math.Float32frombits(uint32(raw)), "", nil
}

func convertFloat64(raw uint64, def *pmeta.FieldDefinition) (any, string, error) {
	if def.LengthBits != 64 {
		return nil, "", fmt.Errorf("float64 field has length %d bits, want 64", def.LengthBits)
	}
	return math.Float64frombits(raw), "", nil
}

// SignedFromBits reinterprets the low lengthBits of raw as a two's
// complement signed integer.
func SignedFromBits(raw uint64, lengthBits int) int64 {
	if lengthBits <= 0 || lengthBits >= 64 {
		return int64(raw)
	}
	if raw&(uint64(1)<<uint(lengthBits-1)) != 0 {
		// sign-extend by filling the bits above lengthBits
		return int64(raw | (^uint64(0) << uint(lengthBits)))
	}
	return int64(raw)
}
