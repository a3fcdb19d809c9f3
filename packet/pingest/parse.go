// Package pingest parses the labeled hex-text form of a packet:
//
//	Length: 61
//	Header: 3D 00 23 B8 CD 0F 67 95 F5 A6 06 01
//	Payload:
//	02 00 03 00 01 01 00 38 ...
//
// into header and payload bytes.
package pingest

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/tmultani945/log-parser-project/packet/pbits"
	"github.com/tmultani945/log-parser-project/packet/perrors"
)

type (
	Packet struct {
		Length       int
		HeaderBytes  []byte
		PayloadBytes []byte
		RawInput     string
	}
)

var (
	lengthPattern  = regexp.MustCompile(`(?i)\bLength\s*:\s*(\d+)`)
	sectionPattern = map[string]*regexp.Regexp{
		"Header":  regexp.MustCompile(`(?is)\bHeader\s*:\s*(.*?)(?:\b(?:Length|Payload)\s*:|\z)`),
		"Payload": regexp.MustCompile(`(?is)\bPayload\s*:\s*(.*?)(?:\b(?:Length|Header)\s*:|\z)`),
	}
)

// Parse validates the labeled layout, decodes the hex sections, and checks
// the declared length against the actual byte count.
func Parse(input string) (*Packet, error) {
	lengthMatch := lengthPattern.FindStringSubmatch(input)
	if lengthMatch == nil {
		return nil, perrors.MalformedInputError{Reason: `missing "Length:" section`}
	}
	length, err := strconv.Atoi(lengthMatch[1])
	if err != nil {
		return nil, perrors.MalformedInputError{
			Reason: fmt.Sprintf("invalid length value %q", lengthMatch[1]),
		}
	}

	headerBytes, err := extractSection(input, "Header")
	if err != nil {
		return nil, err
	}
	payloadBytes, err := extractSection(input, "Payload")
	if err != nil {
		return nil, err
	}

	if total := len(headerBytes) + len(payloadBytes); total != length {
		return nil, perrors.LengthMismatchError{Declared: length, Actual: total}
	}

	return &Packet{
		Length:       length,
		HeaderBytes:  headerBytes,
		PayloadBytes: payloadBytes,
		RawInput:     input,
	}, nil
}

// Bytes is the concatenated wire form, header first.
func (r Packet) Bytes() []byte {
	bs := make([]byte, 0, len(r.HeaderBytes)+len(r.PayloadBytes))
	bs = append(bs, r.HeaderBytes...)
	bs = append(bs, r.PayloadBytes...)
	return bs
}

func extractSection(input string, name string) ([]byte, error) {
	match := sectionPattern[name].FindStringSubmatch(input)
	if match == nil {
		return nil, perrors.MalformedInputError{
			Reason: fmt.Sprintf(`missing "%s:" section`, name),
		}
	}
	bs, err := pbits.HexStringToBytes(match[1])
	if err != nil {
		return nil, err
	}
	if len(bs) == 0 {
		return nil, perrors.MalformedInputError{
			Reason: fmt.Sprintf(`"%s:" section is empty`, name),
		}
	}
	return bs, nil
}
