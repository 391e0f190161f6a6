package core

import (
	"github.com/kpfaulkner/radiance-go/color"
	"github.com/kpfaulkner/radiance-go/hdrio"
	"github.com/kpfaulkner/radiance-go/util"
)

const (
	MIN_SCANLINE_WIDTH = 8
	MAX_SCANLINE_WIDTH = 0x7fff

	// count bytes above this mark a run, at or below it a literal sequence
	RUN_THRESHOLD = 128
)

// scanlineDecoder decodes new-style RLE scanlines. The planes matrix is the
// per-row scratch buffer: one row per channel, so Data is 4*width bytes with
// channel c occupying [c*width, (c+1)*width).
type scanlineDecoder struct {
	reader *hdrio.ByteReader
	width  int
	planes *util.Matrix[uint8]
}

func newScanlineDecoder(reader *hdrio.ByteReader, width int) *scanlineDecoder {
	return &scanlineDecoder{
		reader: reader,
		width:  width,
		planes: util.New2DMatrix[uint8](color.NUM_CHANNELS, width),
	}
}

// decodeScanlines fills out (numScanlines rows of 4*width bytes) row by row.
func (sd *scanlineDecoder) decodeScanlines(out []uint8, numScanlines int) error {
	rowBytes := color.NUM_CHANNELS * sd.width
	for row := 0; row < numScanlines; row++ {
		if err := sd.decodeRow(row, out[row*rowBytes:(row+1)*rowBytes]); err != nil {
			return err
		}
	}
	return nil
}

func (sd *scanlineDecoder) decodeRow(row int, out []uint8) error {
	markerPos := sd.reader.Pos()
	var marker [4]uint8
	if err := sd.reader.ReadBytesToBuffer(marker[:]); err != nil {
		return newScanlineError(ErrTruncatedInput, markerPos, row, "missing scanline marker")
	}
	if marker[0] != 2 || marker[1] != 2 || marker[2]&0x80 != 0 {
		return newScanlineError(ErrUnsupportedScanlineEncoding, markerPos, row, "not a supported run-length-encoded scanline")
	}
	if int(marker[2])<<8|int(marker[3]) != sd.width {
		return newScanlineError(ErrUnsupportedScanlineEncoding, markerPos, row, "scanline width mismatch")
	}

	buffer := sd.planes.Data
	offset := 0
	for c := 0; c < color.NUM_CHANNELS; c++ {
		offsetEnd := (c + 1) * sd.width
		for offset < offsetEnd {
			pos := sd.reader.Pos()
			count, value, err := sd.reader.ReadPair()
			if err != nil {
				return newScanlineError(ErrTruncatedInput, pos, row, "scanline data ends early")
			}

			if count > RUN_THRESHOLD {
				// a run of the same value
				n := int(count) - RUN_THRESHOLD
				if n > offsetEnd-offset {
					return newScanlineError(ErrCorruptScanlineData, pos, row, "run overruns row")
				}
				util.Fill(buffer, offset, offset+n, value)
				offset += n
				continue
			}

			// a non-run, value is the first of count literal bytes
			n := int(count)
			if n == 0 || n > offsetEnd-offset {
				return newScanlineError(ErrCorruptScanlineData, pos, row, "literal overruns row")
			}
			buffer[offset] = value
			offset++
			if n > 1 {
				literalPos := sd.reader.Pos()
				if err := sd.reader.ReadBytesToBuffer(buffer[offset : offset+n-1]); err != nil {
					return newScanlineError(ErrTruncatedInput, literalPos, row, "literal data ends early")
				}
				offset += n - 1
			}
		}
	}

	sd.interleave(out)
	return nil
}

// interleave writes the four planes out as R,G,B,E per pixel.
func (sd *scanlineDecoder) interleave(out []uint8) {
	r := sd.planes.GetRow(color.CHANNEL_R)
	g := sd.planes.GetRow(color.CHANNEL_G)
	b := sd.planes.GetRow(color.CHANNEL_B)
	e := sd.planes.GetRow(color.CHANNEL_E)
	pos := 0
	for i := 0; i < sd.width; i++ {
		out[pos] = r[i]
		out[pos+1] = g[i]
		out[pos+2] = b[i]
		out[pos+3] = e[i]
		pos += color.NUM_CHANNELS
	}
}
