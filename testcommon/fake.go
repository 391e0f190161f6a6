package testcommon

import (
	"errors"
	"io"
)

var ErrFakeRead = errors.New("fake read failure")

// ChunkedReader hands out at most ChunkSize bytes per Read, to exercise
// callers that must cope with short reads.
type ChunkedReader struct {
	Data      []byte
	ChunkSize int

	pos int
}

func (cr *ChunkedReader) Read(p []byte) (int, error) {
	if cr.pos >= len(cr.Data) {
		return 0, io.EOF
	}
	n := len(p)
	if cr.ChunkSize > 0 && n > cr.ChunkSize {
		n = cr.ChunkSize
	}
	n = copy(p[:n], cr.Data[cr.pos:])
	cr.pos += n
	return n, nil
}

// FailingReader returns Data and then ErrFakeRead instead of io.EOF.
type FailingReader struct {
	Data []byte

	pos int
}

func (fr *FailingReader) Read(p []byte) (int, error) {
	if fr.pos >= len(fr.Data) {
		return 0, ErrFakeRead
	}
	n := copy(p, fr.Data[fr.pos:])
	fr.pos += n
	return n, nil
}
