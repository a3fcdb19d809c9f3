package pingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmultani945/log-parser-project/packet/perrors"
)

const sampleInput = `
Length: 18
Header: 12 00 23 B8 CD 0F 67 95 F5 A6 06 01
Payload:
02 00 00 00
34 12
`

func TestParse(t *testing.T) {
	packet, err := Parse(sampleInput)
	require.NoError(t, err)
	assert.Equal(t, 18, packet.Length)
	assert.Len(t, packet.HeaderBytes, 12)
	assert.Equal(t, []byte{0x02, 0x00, 0x00, 0x00, 0x34, 0x12}, packet.PayloadBytes)
	assert.Equal(t, 18, len(packet.Bytes()))
	assert.Equal(t, byte(0x12), packet.Bytes()[0])
}

func TestParseLabelsAreCaseInsensitive(t *testing.T) {
	input := "length: 13\nheader: 0D 00 23 B8 CD 0F 67 95 F5 A6 06 01\npayload: FF"
	packet, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF}, packet.PayloadBytes)
}

func TestParseMissingLength(t *testing.T) {
	_, err := Parse("Header: 00 01\nPayload: 02")
	assert.Error(t, err)
	assert.IsType(t, perrors.MalformedInputError{}, err)
}

func TestParseMissingPayload(t *testing.T) {
	_, err := Parse("Length: 2\nHeader: 00 01")
	assert.Error(t, err)
	assert.IsType(t, perrors.MalformedInputError{}, err)
}

func TestParseInvalidHex(t *testing.T) {
	_, err := Parse("Length: 2\nHeader: ZZ\nPayload: 02")
	assert.Error(t, err)
	assert.IsType(t, perrors.MalformedInputError{}, err)
}

func TestParseLengthMismatch(t *testing.T) {
	_, err := Parse("Length: 5\nHeader: 00 01\nPayload: 02")
	assert.Error(t, err)
	mismatch, ok := err.(perrors.LengthMismatchError)
	require.True(t, ok)
	assert.Equal(t, 5, mismatch.Declared)
	assert.Equal(t, 3, mismatch.Actual)
}
