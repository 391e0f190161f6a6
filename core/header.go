package core

import (
	"bytes"
	"math"
	"strconv"
	"strings"
)

const (
	HDR_SIGNATURE = "#?RADIANCE"

	KEY_FORMAT   = "FORMAT"
	KEY_EXPOSURE = "EXPOSURE"
)

// HeaderInfo is the parsed text header plus the resolution line.
type HeaderInfo struct {
	SignatureValid bool

	// Format is the FORMAT= value, empty when the header has none.
	Format string

	// Exposure is the EXPOSURE= value, 1.0 when absent. The decoder never applies it.
	Exposure float64

	Width  int
	Height int

	// ScanlineWidth and NumScanlines describe the encoded rows and always equal
	// Width and Height for the supported -Y/+X orientation.
	ScanlineWidth int
	NumScanlines  int

	// HeaderByteLength is the offset of the first pixel byte.
	HeaderByteLength int

	// Extra holds any other key=value lines, last one wins.
	Extra map[string]string
}

func newHeaderInfo() *HeaderInfo {
	return &HeaderInfo{Exposure: 1.0}
}

// ParseHeader parses the header at the start of data. The signature is checked
// before anything past the first line is looked at.
func ParseHeader(data []byte) (*HeaderInfo, error) {
	info := newHeaderInfo()

	firstLine := data
	if nl := bytes.IndexByte(data, '\n'); nl >= 0 {
		firstLine = data[:nl]
	}
	if string(firstLine) != HDR_SIGNATURE {
		return nil, newHeaderError(ErrInvalidSignature, 0, "first line is not "+HDR_SIGNATURE)
	}
	info.SignatureValid = true

	size := bytes.Index(data, []byte("\n\n"))
	if size < 0 {
		return nil, newHeaderError(ErrMalformedHeader, len(data), "no blank-line terminator")
	}
	resolutionStart := size + 2
	nl := bytes.IndexByte(data[resolutionStart:], '\n')
	if nl < 0 {
		return nil, newHeaderError(ErrMalformedHeader, len(data), "no resolution line terminator")
	}
	size2 := resolutionStart + nl

	lines := strings.Split(string(data[:size]), "\n")
	lineStart := len(lines[0]) + 1
	for _, line := range lines[1:] {
		if err := info.parseHeaderLine(line, lineStart); err != nil {
			return nil, err
		}
		lineStart += len(line) + 1
	}

	height, width, ok := parseResolution(string(data[resolutionStart:size2]))
	if !ok {
		return nil, newHeaderError(ErrMalformedHeader, resolutionStart, "unsupported resolution line format")
	}
	info.Width = width
	info.Height = height
	info.ScanlineWidth = width
	info.NumScanlines = height
	info.HeaderByteLength = size2 + 1

	return info, nil
}

func (info *HeaderInfo) parseHeaderLine(line string, pos int) error {
	key, value, ok := splitKeyValue(line)
	if !ok {
		// comments, command lines and anything else that is not a variable
		return nil
	}

	switch key {
	case KEY_FORMAT:
		info.Format = value
	case KEY_EXPOSURE:
		exposure, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || exposure <= 0 || math.IsInf(exposure, 0) || math.IsNaN(exposure) {
			return newHeaderError(ErrMalformedHeader, pos, "invalid EXPOSURE value "+strconv.Quote(value))
		}
		info.Exposure = exposure
	default:
		if info.Extra == nil {
			info.Extra = make(map[string]string)
		}
		info.Extra[key] = value
	}
	return nil
}

// splitKeyValue splits "KEY=value" where KEY is one or more word characters.
func splitKeyValue(line string) (string, string, bool) {
	idx := strings.IndexByte(line, '=')
	if idx <= 0 {
		return "", "", false
	}
	key := line[:idx]
	for i := 0; i < len(key); i++ {
		if !isWordChar(key[i]) {
			return "", "", false
		}
	}
	return key, line[idx+1:], true
}

func isWordChar(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseResolution accepts exactly "-Y <rows> +X <cols>", other orientations are rejected.
func parseResolution(line string) (int, int, bool) {
	line = strings.TrimSuffix(line, "\r")
	fields := strings.Split(line, " ")
	if len(fields) != 4 || fields[0] != "-Y" || fields[2] != "+X" {
		return 0, 0, false
	}
	height, ok := parseDimension(fields[1])
	if !ok {
		return 0, 0, false
	}
	width, ok := parseDimension(fields[3])
	if !ok {
		return 0, 0, false
	}
	return height, width, true
}

func parseDimension(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, false
		}
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int(v), true
}
