package hdrio

import (
	"errors"
	"io"
)

var (
	ErrUnexpectedEnd = errors.New("unexpected end of data")
	ErrInvalidSeek   = errors.New("invalid seek position")
)

// ByteReader is a cursor over an in-memory buffer. Reads never go past the end of
// the buffer, they fail with ErrUnexpectedEnd and leave the position untouched.
type ByteReader struct {
	data []byte
	pos  int
}

func NewByteReader(data []byte) *ByteReader {
	return &ByteReader{data: data}
}

// NewByteReaderAt returns a reader positioned at offset (clamped to the buffer).
func NewByteReaderAt(data []byte, offset int) *ByteReader {
	br := &ByteReader{data: data}
	if offset < 0 {
		offset = 0
	}
	if offset > len(data) {
		offset = len(data)
	}
	br.pos = offset
	return br
}

func (br *ByteReader) Pos() int {
	return br.pos
}

func (br *ByteReader) Len() int {
	return len(br.data)
}

func (br *ByteReader) Remaining() int {
	return len(br.data) - br.pos
}

func (br *ByteReader) AtEnd() bool {
	return br.pos >= len(br.data)
}

func (br *ByteReader) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(br.pos) + offset
	case io.SeekEnd:
		abs = int64(len(br.data)) + offset
	default:
		return 0, ErrInvalidSeek
	}
	if abs < 0 || abs > int64(len(br.data)) {
		return 0, ErrInvalidSeek
	}
	br.pos = int(abs)
	return abs, nil
}

func (br *ByteReader) ReadByte() (byte, error) {
	if br.pos >= len(br.data) {
		return 0, ErrUnexpectedEnd
	}
	b := br.data[br.pos]
	br.pos++
	return b, nil
}

// ReadPair reads two consecutive bytes. Either both are consumed or neither.
func (br *ByteReader) ReadPair() (byte, byte, error) {
	if br.Remaining() < 2 {
		return 0, 0, ErrUnexpectedEnd
	}
	a, b := br.data[br.pos], br.data[br.pos+1]
	br.pos += 2
	return a, b, nil
}

// ReadBytesToBuffer fills buffer completely from the current position.
func (br *ByteReader) ReadBytesToBuffer(buffer []uint8) error {
	if br.Remaining() < len(buffer) {
		return ErrUnexpectedEnd
	}
	copy(buffer, br.data[br.pos:br.pos+len(buffer)])
	br.pos += len(buffer)
	return nil
}

// Skip advances the position by n bytes.
func (br *ByteReader) Skip(n int) error {
	if n < 0 || br.Remaining() < n {
		return ErrUnexpectedEnd
	}
	br.pos += n
	return nil
}
