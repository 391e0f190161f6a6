package core

import (
	"errors"
	"strconv"
)

// Decode failures. Every error returned by the decoder wraps exactly one of these,
// so callers can test with errors.Is.
var (
	ErrInvalidSignature            = errors.New("invalid HDR signature")
	ErrMalformedHeader             = errors.New("malformed header")
	ErrUnsupportedScanlineEncoding = errors.New("unsupported scanline encoding")
	ErrCorruptScanlineData         = errors.New("corrupt scanline data")
	ErrTruncatedInput              = errors.New("truncated input")
)

// DecodeError describes where decoding stopped.
type DecodeError struct {
	// Err is one of the Err* values above.
	Err error
	// Pos is the byte offset into the input where the problem was found.
	Pos int
	// Row is the scanline being decoded, -1 while still in the header.
	Row int
	Msg string
}

func newHeaderError(err error, pos int, msg string) *DecodeError {
	return &DecodeError{Err: err, Pos: pos, Row: -1, Msg: msg}
}

func newScanlineError(err error, pos int, row int, msg string) *DecodeError {
	return &DecodeError{Err: err, Pos: pos, Row: row, Msg: msg}
}

func (e *DecodeError) Error() string {
	s := "hdr: " + e.Err.Error()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Row >= 0 {
		s += " (scanline " + strconv.Itoa(e.Row) + ", at byte " + strconv.Itoa(e.Pos) + ")"
	} else if e.Pos > 0 {
		s += " (at byte " + strconv.Itoa(e.Pos) + ")"
	}
	return s
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
