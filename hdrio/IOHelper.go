package hdrio

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

const (
	// MaxHeaderSize bounds how much text is read while looking for the end of the header.
	MaxHeaderSize = 64 * 1024

	tempBufSize = 32 * 1024
)

var ErrHeaderTooLong = errors.New("header exceeds maximum size")

var signatureLine = []byte("#?RADIANCE\n")

// ReadFully reads the remainder of in and appends it to buffer.
func ReadFully(in io.Reader, buffer []byte) ([]byte, error) {
	tempBuf := make([]byte, tempBufSize)
	for {
		count, err := in.Read(tempBuf)
		if count > 0 {
			buffer = append(buffer, tempBuf[:count]...)
		}
		if err == io.EOF {
			return buffer, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// ReadHeaderBlock reads the text header, the blank line and the resolution line from
// in, leaving in positioned on the first pixel byte. Reading stops early once the
// first line is known not to be the Radiance signature. Running out of input is not
// an error here, the caller gets whatever was available and the header parser decides.
func ReadHeaderBlock(in *bufio.Reader) ([]byte, error) {
	block, err := readLine(in, nil)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(block, signatureLine) {
		return block, nil
	}

	sawBlank := false
	for {
		line, err := readLine(in, nil)
		if err != nil {
			return nil, err
		}
		if len(line) == 0 {
			return block, nil
		}
		block = append(block, line...)
		if len(block) > MaxHeaderSize {
			return nil, ErrHeaderTooLong
		}
		if sawBlank {
			return block, nil
		}
		if len(line) == 1 && line[0] == '\n' {
			sawBlank = true
		}
	}
}

// readLine returns the next line including its newline. A final line without a
// newline is returned as is, an exhausted reader yields an empty slice.
func readLine(in *bufio.Reader, dst []byte) ([]byte, error) {
	for {
		frag, err := in.ReadSlice('\n')
		dst = append(dst, frag...)
		if len(dst) > MaxHeaderSize {
			return nil, ErrHeaderTooLong
		}
		switch {
		case err == nil:
			return dst, nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case err == io.EOF:
			return dst, nil
		default:
			return nil, err
		}
	}
}
