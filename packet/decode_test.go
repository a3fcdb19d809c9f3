package packet

import (
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/tmultani945/log-parser-project/packet/pbits"
	"github.com/tmultani945/log-parser-project/packet/perrors"
	"github.com/tmultani945/log-parser-project/packet/pfield"
	"github.com/tmultani945/log-parser-project/packet/pingest"
	"github.com/tmultani945/log-parser-project/packet/pmeta"
)

// metadataDocument declares two logcodes: a serving-cell logcode with a
// nested table reference and a PDSCH statistics logcode with a repeating
// carrier record plus derived BLER fields.
const metadataDocument = `
{
  "logcodes": {
    "0xB823": {
      "logcode_id": "0xB823",
      "logcode_name": "Nr5gRrcServingCellInfo",
      "section": "4.3",
      "version_offset": 0,
      "version_length": 32,
      "version_map": {"2": "4-4", "3": "4-5"},
      "all_tables": {
        "4-4": {
          "fields": [
            {"name": "Physical Cell ID", "type_name": "Uint16", "offset_bytes": 0, "offset_bits": 0, "length_bits": 16, "description": ""},
            {"name": "Standby Mode", "type_name": "Enum (8 bits)", "offset_bytes": 2, "offset_bits": 0, "length_bits": 8, "description": "Values:\n• 0 – NONE\n• 1 – SINGLE STANDBY\n• 2 – DUAL STANDBY"},
            {"name": "Cell Quality", "type_name": "Table 4-5", "offset_bytes": 3, "offset_bits": 0, "length_bits": 0, "description": ""}
          ]
        },
        "4-5": {
          "fields": [
            {"name": "RSRP", "type_name": "Int8", "offset_bytes": 0, "offset_bits": 0, "length_bits": 8, "description": ""},
            {"name": "RSRQ", "type_name": "Int8", "offset_bytes": 1, "offset_bits": 0, "length_bits": 8, "description": ""}
          ]
        }
      }
    },
    "0xB888": {
      "logcode_id": "0xB888",
      "logcode_name": "Nr5gMacPdschStats",
      "section": "7.2",
      "version_offset": 0,
      "version_length": 32,
      "version_map": {"1": "7-0"},
      "all_tables": {
        "7-0": {
          "fields": [
            {"name": "Cumulative Bitmask", "type_name": "Uint8", "offset_bytes": 0, "offset_bits": 0, "length_bits": 8, "description": ""},
            {"name": "Num CRC Pass TB", "type_name": "Uint32", "offset_bytes": 1, "offset_bits": 0, "length_bits": 32, "description": ""},
            {"name": "Num CRC Fail TB", "type_name": "Uint32", "offset_bytes": 5, "offset_bits": 0, "length_bits": 32, "description": ""},
            {"name": "BLER", "type_name": "Uint16", "offset_bytes": 9, "offset_bits": 0, "length_bits": 16, "description": ""},
            {"name": "Records", "type_name": "Table 7-1", "offset_bytes": 11, "offset_bits": 0, "length_bits": 0, "count": -1, "description": ""}
          ]
        },
        "7-1": {
          "fields": [
            {"name": "Num CRC Pass TB", "type_name": "Uint16", "offset_bytes": 0, "offset_bits": 0, "length_bits": 16, "description": ""},
            {"name": "Num CRC Fail TB", "type_name": "Uint16", "offset_bytes": 2, "offset_bits": 0, "length_bits": 16, "description": ""},
            {"name": "BLER", "type_name": "Uint16", "offset_bytes": 4, "offset_bits": 0, "length_bits": 16, "description": ""}
          ]
        }
      }
    }
  }
}
`

type DecoderTestSuite struct {
	suite.Suite
	R       *require.Assertions
	decoder *Decoder
}

func (s *DecoderTestSuite) SetupSuite() {
	s.R = s.Require()
	collection, err := pmeta.ParseCollection([]byte(metadataDocument))
	s.R.NoError(err)
	s.decoder = NewDecoder(collection)
}

func (s *DecoderTestSuite) createHeader(logcodeID uint16, payloadLength int) []byte {
	header := make([]byte, 12)
	binary.LittleEndian.PutUint16(header[0:2], uint16(12+payloadLength))
	binary.LittleEndian.PutUint16(header[2:4], logcodeID)
	binary.LittleEndian.PutUint32(header[4:8], 0x95670FCD)
	binary.LittleEndian.PutUint32(header[8:12], 0x0106A6F5)
	return header
}

func (s *DecoderTestSuite) fieldByName(fields []pfield.DecodedField, name string) pfield.DecodedField {
	for _, field := range fields {
		if field.Name == name {
			return field
		}
	}
	s.R.FailNowf("field not found", `no decoded field named "%s"`, name)
	return pfield.DecodedField{}
}

func (s *DecoderTestSuite) TestDecodeServingCellInfo() {
	payload := []byte{
		0x02, 0x00, 0x00, 0x00, // version 2
		0x34, 0x12, // Physical Cell ID
		0x01,       // Standby Mode
		0xB0, 0xF6, // RSRP, RSRQ
	}
	decoded, err := s.decoder.Decode(append(s.createHeader(0xB823, len(payload)), payload...))
	s.R.NoError(err)

	s.Equal("0xB823", decoded.LogcodeIDHex)
	s.Equal(0xB823, decoded.LogcodeIDDecimal)
	s.Equal("Nr5gRrcServingCellInfo", decoded.LogcodeName)
	s.Equal(uint64(2), decoded.Version.Value)
	s.Equal("0x00000002", decoded.Version.Hex)
	s.Equal("4-4", decoded.Version.TableName)
	s.Equal(12+len(payload), decoded.Header.Length)

	s.R.Len(decoded.Fields, 4)
	s.Equal(uint64(0x1234), s.fieldByName(decoded.Fields, "Physical Cell ID").RawValue)
	s.Equal("SINGLE STANDBY", s.fieldByName(decoded.Fields, "Standby Mode").FriendlyValue)
	// the nested table reference is flattened in place
	s.Equal(int64(-80), s.fieldByName(decoded.Fields, "RSRP").RawValue)
	s.Equal(int64(-10), s.fieldByName(decoded.Fields, "RSRQ").RawValue)

	s.Equal("4.3", decoded.Summary.Section)
	s.Equal(len(payload), decoded.Summary.PayloadSizeBytes)
	s.Equal(4, decoded.Summary.FieldsDecoded)
	s.Empty(decoded.Warnings)
}

func (s *DecoderTestSuite) TestDecodePdschStats() {
	payload := []byte{
		0x01, 0x00, 0x00, 0x00, // version 1
		0x03,                   // Cumulative Bitmask, popcount 2
		0x5A, 0x00, 0x00, 0x00, // Num CRC Pass TB = 90
		0x0A, 0x00, 0x00, 0x00, // Num CRC Fail TB = 10
		0x00, 0x00, // BLER placeholder
		0x32, 0x00, 0x32, 0x00, 0x00, 0x00, // record 0: pass 50, fail 50
		0x63, 0x00, 0x01, 0x00, 0x00, 0x00, // record 1: pass 99, fail 1
	}
	decoded, err := s.decoder.Decode(append(s.createHeader(0xB888, len(payload)), payload...))
	s.R.NoError(err)
	s.Empty(decoded.Warnings)

	// 4 top-level fields plus 3 fields per record
	s.R.Len(decoded.Fields, 10)

	bler := s.fieldByName(decoded.Fields, "BLER")
	s.Equal(10.0, bler.RawValue)
	s.Equal("10.00%", bler.FriendlyValue)

	record0 := s.fieldByName(decoded.Fields, "BLER (Record 0)")
	s.Equal(50.0, record0.RawValue)
	record1 := s.fieldByName(decoded.Fields, "BLER (Record 1)")
	s.Equal(1.0, record1.RawValue)
	s.Equal("1.00%", record1.FriendlyValue)

	s.Equal(uint64(99), s.fieldByName(decoded.Fields, "Num CRC Pass TB (Record 1)").RawValue)
}

func (s *DecoderTestSuite) TestDecodeTruncatedRecords() {
	payload := []byte{
		0x01, 0x00, 0x00, 0x00,
		0x03,
		0x5A, 0x00, 0x00, 0x00,
		0x0A, 0x00, 0x00, 0x00,
		0x00, 0x00,
		0x32, 0x00, 0x32, 0x00, 0x00, 0x00, // room for one record only
	}
	decoded, err := s.decoder.Decode(append(s.createHeader(0xB888, len(payload)), payload...))
	s.R.NoError(err)
	s.Len(decoded.Fields, 7)
	s.Empty(decoded.Warnings)
}

func (s *DecoderTestSuite) TestDecodeRecoversBadField() {
	// payload ends before the nested cell-quality fields
	payload := []byte{
		0x02, 0x00, 0x00, 0x00,
		0x34, 0x12,
		0x01,
	}
	decoded, err := s.decoder.Decode(append(s.createHeader(0xB823, len(payload)), payload...))
	s.R.NoError(err)
	s.Len(decoded.Fields, 2)
	s.Len(decoded.Warnings, 2)
}

func (s *DecoderTestSuite) TestDecodeUnknownLogcode() {
	payload := []byte{0x01, 0x00, 0x00, 0x00}
	_, err := s.decoder.Decode(append(s.createHeader(0x9999, len(payload)), payload...))
	s.R.Error(err)
	notFound, ok := err.(perrors.LogcodeNotFoundError)
	s.R.True(ok)
	s.Equal("0x9999", notFound.LogcodeID)
}

func (s *DecoderTestSuite) TestDecodeUnknownVersion() {
	payload := []byte{0x09, 0x00, 0x00, 0x00}
	_, err := s.decoder.Decode(append(s.createHeader(0xB823, len(payload)), payload...))
	s.R.Error(err)
	notFound, ok := err.(perrors.VersionNotFoundError)
	s.R.True(ok)
	s.Equal(uint64(9), notFound.Version)
}

func (s *DecoderTestSuite) TestDecodeTooShortForHeader() {
	_, err := s.decoder.Decode([]byte{0x01, 0x02, 0x03})
	s.R.Error(err)
	s.IsType(perrors.PayloadTooShortError{}, err)
}

func (s *DecoderTestSuite) TestDecodeHexText() {
	payload := []byte{
		0x02, 0x00, 0x00, 0x00,
		0x34, 0x12,
		0x01,
		0xB0, 0xF6,
	}
	header := s.createHeader(0xB823, len(payload))
	input := fmt.Sprintf(
		"Length: %d\nHeader: %s\nPayload:\n%s\n",
		len(header)+len(payload),
		pbits.BytesToHexString(header),
		pbits.BytesToHexString(payload),
	)

	parsed, err := pingest.Parse(input)
	s.R.NoError(err)
	fromText, err := s.decoder.DecodePacket(parsed)
	s.R.NoError(err)
	fromBytes, err := s.decoder.Decode(append(header, payload...))
	s.R.NoError(err)
	s.Equal(fromBytes, fromText)
}

func TestDecoderTestSuite(t *testing.T) {
	suite.Run(t, new(DecoderTestSuite))
}
