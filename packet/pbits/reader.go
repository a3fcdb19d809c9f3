package pbits

import (
	"bytes"
	"encoding/binary"
)

type (
	Reader struct {
		bytes.Reader
	}
	Instruction struct {
		Key          string
		ReadFunction ReadFunction
	}
	ReadFunction func() (any, error)
)

func NewReader(bs []byte) *Reader {
	return &Reader{
		Reader: *bytes.NewReader(bs),
	}
}

func (b *Reader) ReadUint16() (uint16, error) {
	bs := make([]byte, 2)
	_, err := b.Read(bs)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bs), nil
}

func (b *Reader) ReadUint32() (uint32, error) {
	bs := make([]byte, 4)
	_, err := b.Read(bs)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	bs := make([]byte, n)
	// return early to avoid EOF error when the reader's pointer reaches
	// end of buffer while the number of next bytes to read is 0
	if n == 0 {
		return bs, nil
	}
	_, err := b.Read(bs)
	if err != nil {
		return nil, err
	}
	return bs, nil
}

func CreateUint16ReadFunction(reader *Reader) ReadFunction {
	return func() (any, error) {
		return reader.ReadUint16()
	}
}

func CreateUint32ReadFunction(reader *Reader) ReadFunction {
	return func() (any, error) {
		return reader.ReadUint32()
	}
}
