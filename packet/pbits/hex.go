package pbits

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/tmultani945/log-parser-project/ds"
	"github.com/tmultani945/log-parser-project/packet/perrors"
)

// UintToHexString formats a value the way logcodes and versions are shown,
// e.g. UintToHexString(0xB823, 4) == "0xB823".
func UintToHexString(value uint64, width int) string {
	return fmt.Sprintf("0x%0*X", width, value)
}

// HexStringToBytes parses space/newline-separated hex bytes, tolerating an
// optional 0x prefix and the separators -, :, , between bytes.
func HexStringToBytes(hexStr string) ([]byte, error) {
	cleaned := hexStr
	for _, separator := range []string{" ", "-", ":", ",", "\n", "\r", "\t"} {
		cleaned = strings.ReplaceAll(cleaned, separator, "")
	}
	if strings.HasPrefix(cleaned, "0x") || strings.HasPrefix(cleaned, "0X") {
		cleaned = cleaned[2:]
	}
	if len(cleaned)%2 != 0 {
		return nil, perrors.MalformedInputError{
			Reason: fmt.Sprintf("hex string has odd length %d", len(cleaned)),
		}
	}
	bs, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, perrors.MalformedInputError{
			Reason: fmt.Sprintf("invalid hex characters in %q", truncateForError(hexStr)),
		}
	}
	return bs, nil
}

// BytesToHexString renders bytes as uppercase hex separated by spaces,
// 16 bytes per line.
func BytesToHexString(bs []byte) string {
	lines := lo.Map(
		ds.MakeChunks(bs, 16),
		func(chunk []byte, _ int) string {
			pairs := lo.Map(
				chunk,
				func(b byte, _ int) string {
					return fmt.Sprintf("%02X", b)
				},
			)
			return strings.Join(pairs, " ")
		},
	)
	return strings.Join(lines, "\n")
}

func truncateForError(s string) string {
	if len(s) > 50 {
		return s[:50] + "..."
	}
	return s
}
