package pbits

import (
	"encoding/binary"

	"github.com/tmultani945/log-parser-project/packet/perrors"
)

// Extract reads an unsigned integer of lengthBits bits starting at offsetBits
// from the little-endian byte buffer. The bit offset does not have to be
// byte-aligned, and the width does not have to be a multiple of 8.
func Extract(buf []byte, offsetBits int, lengthBits int) (uint64, error) {
	if lengthBits == 0 {
		return 0, nil
	}
	startByte := offsetBits / 8
	endByte := (offsetBits + lengthBits + 7) / 8
	if endByte > len(buf) {
		return 0, perrors.PayloadTooShortError{
			RequiredBytes: endByte,
			ActualBytes:   len(buf),
		}
	}

	shift := uint(offsetBits % 8)
	value := uint64(0)
	for i := startByte; i < endByte; i++ {
		b := uint64(buf[i])
		bitPos := uint(i-startByte) * 8
		if bitPos >= shift {
			if bitPos-shift < 64 {
				value |= b << (bitPos - shift)
			}
		} else {
			value |= b >> (shift - bitPos)
		}
	}

	if lengthBits < 64 {
		value &= (uint64(1) << uint(lengthBits)) - 1
	}
	return value, nil
}

// UintLE reads lengthBytes bytes at offsetBytes as a little-endian unsigned
// integer. This is the direct path for byte-aligned fields; Extract must
// agree with it bit-for-bit on aligned 8/16/32/64-bit reads.
func UintLE(buf []byte, offsetBytes int, lengthBytes int) (uint64, error) {
	if offsetBytes+lengthBytes > len(buf) {
		return 0, perrors.PayloadTooShortError{
			RequiredBytes: offsetBytes + lengthBytes,
			ActualBytes:   len(buf),
		}
	}
	bs := buf[offsetBytes : offsetBytes+lengthBytes]
	switch lengthBytes {
	case 1:
		return uint64(bs[0]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(bs)), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(bs)), nil
	case 8:
		return binary.LittleEndian.Uint64(bs), nil
	}
	value := uint64(0)
	for i := len(bs) - 1; i >= 0; i-- {
		value = value<<8 | uint64(bs[i])
	}
	return value, nil
}

// ExtractAuto picks the direct little-endian read for byte-aligned,
// byte-multiple widths and falls back to generic bit slicing otherwise.
func ExtractAuto(buf []byte, offsetBits int, lengthBits int) (uint64, error) {
	if offsetBits%8 == 0 {
		switch lengthBits {
		case 8, 16, 32, 64:
			return UintLE(buf, offsetBits/8, lengthBits/8)
		}
	}
	return Extract(buf, offsetBits, lengthBits)
}
