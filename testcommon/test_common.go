package testcommon

import (
	"fmt"
	"os"
	"testing"
)

// Helpers for building Radiance byte streams by hand in tests.

// Header builds a header block: signature, lines, blank line, resolution line.
func Header(lines []string, height int, width int) []byte {
	b := []byte("#?RADIANCE\n")
	for _, l := range lines {
		b = append(b, l...)
		b = append(b, '\n')
	}
	b = append(b, fmt.Sprintf("\n-Y %d +X %d\n", height, width)...)
	return b
}

// ScanlineMarker is the 4 byte start of a new-style RLE scanline.
func ScanlineMarker(width int) []byte {
	return []byte{2, 2, byte(width >> 8), byte(width & 0xff)}
}

// RunPacket encodes n copies of value, n must be in [1, 127].
func RunPacket(n int, value byte) []byte {
	return []byte{byte(128 + n), value}
}

// LiteralPacket encodes values verbatim, len(values) must be in [1, 128].
func LiteralPacket(values ...byte) []byte {
	return append([]byte{byte(len(values))}, values...)
}

// UniformScanline is a scanline where every pixel is p, encoded with runs.
func UniformScanline(width int, p [4]byte) []byte {
	b := ScanlineMarker(width)
	for c := 0; c < 4; c++ {
		left := width
		for left > 0 {
			n := min(left, 127)
			b = append(b, RunPacket(n, p[c])...)
			left -= n
		}
	}
	return b
}

// LiteralScanline encodes pixels (RGBE quadruplets) using only literal packets.
func LiteralScanline(pixels [][4]byte) []byte {
	b := ScanlineMarker(len(pixels))
	for c := 0; c < 4; c++ {
		plane := make([]byte, len(pixels))
		for i, p := range pixels {
			plane[i] = p[c]
		}
		for len(plane) > 0 {
			n := min(len(plane), 128)
			b = append(b, LiteralPacket(plane[:n]...)...)
			plane = plane[n:]
		}
	}
	return b
}

// UniformImage returns a complete file of height rows, every pixel p.
func UniformImage(width int, height int, p [4]byte) []byte {
	b := Header([]string{"FORMAT=32-bit_rle_rgbe"}, height, width)
	for y := 0; y < height; y++ {
		b = append(b, UniformScanline(width, p)...)
	}
	return b
}

// Concat joins byte slices.
func Concat(parts ...[]byte) []byte {
	var b []byte
	for _, p := range parts {
		b = append(b, p...)
	}
	return b
}

// ReadTestFile reads a file from disk, failing the test on error.
func ReadTestFile(t *testing.T, filepath string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath)
	if err != nil {
		t.Fatalf("error reading test hdr file : %v", err)
	}
	return data
}
