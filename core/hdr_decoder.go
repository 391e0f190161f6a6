package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/kpfaulkner/radiance-go/color"
	"github.com/kpfaulkner/radiance-go/hdrio"
	"github.com/kpfaulkner/radiance-go/options"
	log "github.com/sirupsen/logrus"
)

type HDRDecoderOption func(dec *HDRDecoder) error

func WithDebug() HDRDecoderOption {
	return func(dec *HDRDecoder) error {
		dec.options.Debug = true
		return nil
	}
}

func WithHeaderOnly() HDRDecoderOption {
	return func(dec *HDRDecoder) error {
		dec.options.HeaderOnly = true
		return nil
	}
}

// WithMaxPixels rejects images declaring more than maxPixels pixels before any
// pixel memory is allocated.
func WithMaxPixels(maxPixels int64) HDRDecoderOption {
	return func(dec *HDRDecoder) error {
		if maxPixels < 0 {
			return fmt.Errorf("max pixels must not be negative, got %d", maxPixels)
		}
		dec.options.MaxPixels = maxPixels
		return nil
	}
}

func WithOptions(opts *options.HDROptions) HDRDecoderOption {
	return func(dec *HDRDecoder) error {
		dec.options = *options.NewHDROptions(opts)
		return nil
	}
}

// HDRDecoder decodes a Radiance HDR image
type HDRDecoder struct {

	// input stream, nil once everything has been read into data
	in *bufio.Reader

	// bytes read so far
	data []byte

	options options.HDROptions

	// first error from applying options, reported by Decode/GetHeader
	optErr error
}

// NewHDRDecoder decodes from a stream. Only the header is read by GetHeader, Decode
// reads the rest of the stream.
func NewHDRDecoder(in io.Reader, opts ...HDRDecoderOption) *HDRDecoder {
	dec := &HDRDecoder{in: bufio.NewReader(in)}
	dec.applyOptions(opts)
	return dec
}

// NewHDRDecoderFromBytes decodes an in-memory file. data is not modified or retained
// past the returned image.
func NewHDRDecoderFromBytes(data []byte, opts ...HDRDecoderOption) *HDRDecoder {
	dec := &HDRDecoder{data: data}
	dec.applyOptions(opts)
	return dec
}

// Decode is shorthand for NewHDRDecoderFromBytes(data, opts...).Decode().
func Decode(data []byte, opts ...HDRDecoderOption) (*HDRImage, error) {
	return NewHDRDecoderFromBytes(data, opts...).Decode()
}

func (dec *HDRDecoder) applyOptions(opts []HDRDecoderOption) {
	for _, opt := range opts {
		if err := opt(dec); err != nil && dec.optErr == nil {
			dec.optErr = err
		}
	}
}

// GetHeader parses and validates the header without touching pixel data.
func (dec *HDRDecoder) GetHeader() (*HeaderInfo, error) {
	if dec.optErr != nil {
		return nil, dec.optErr
	}
	if dec.in != nil && dec.data == nil {
		block, err := hdrio.ReadHeaderBlock(dec.in)
		if err != nil {
			if errors.Is(err, hdrio.ErrHeaderTooLong) {
				return nil, newHeaderError(ErrMalformedHeader, hdrio.MaxHeaderSize, "header too long")
			}
			return nil, err
		}
		dec.data = block
	}
	return dec.parseHeader()
}

func (dec *HDRDecoder) parseHeader() (*HeaderInfo, error) {
	header, err := ParseHeader(dec.data)
	if err != nil {
		return nil, err
	}
	if header.ScanlineWidth < MIN_SCANLINE_WIDTH || header.ScanlineWidth > MAX_SCANLINE_WIDTH {
		return nil, newHeaderError(ErrUnsupportedScanlineEncoding, header.HeaderByteLength,
			fmt.Sprintf("not RLE-compressed, scanline width %d outside [%d, %d]", header.ScanlineWidth, MIN_SCANLINE_WIDTH, MAX_SCANLINE_WIDTH))
	}
	if dec.options.ExceedsPixelLimit(header.Width, header.Height) {
		return nil, newHeaderError(ErrMalformedHeader, header.HeaderByteLength,
			fmt.Sprintf("image %dx%d exceeds pixel limit %d", header.Width, header.Height, dec.options.MaxPixels))
	}
	if dec.options.Debug {
		log.WithFields(log.Fields{
			"width":    header.Width,
			"height":   header.Height,
			"format":   header.Format,
			"exposure": header.Exposure,
			"offset":   header.HeaderByteLength,
		}).Debug("parsed hdr header")
		if !color.IsKnownFormat(header.Format) {
			log.Debugf("unrecognised FORMAT %q, decoding as RGBE bytes", header.Format)
		}
	}
	return header, nil
}

// Decode decodes the whole image. On failure no image is returned.
func (dec *HDRDecoder) Decode() (*HDRImage, error) {

	header, err := dec.GetHeader()
	if err != nil {
		return nil, err
	}

	if dec.options.HeaderOnly {
		return &HDRImage{Width: header.Width, Height: header.Height, Header: *header}, nil
	}

	if dec.in != nil {
		dec.data, err = hdrio.ReadFully(dec.in, dec.data)
		if err != nil {
			return nil, err
		}
		dec.in = nil
	}

	// every scanline costs at least its marker plus one 2 byte packet per 127 pixels
	// in each plane, so a short body is rejected before the pixel buffer is sized
	available := int64(len(dec.data) - header.HeaderByteLength)
	if needed := int64(header.NumScanlines) * minScanlineBytes(header.ScanlineWidth); available < needed {
		return nil, newHeaderError(ErrTruncatedInput, len(dec.data),
			fmt.Sprintf("%d scanlines need at least %d bytes, %d available", header.NumScanlines, needed, available))
	}

	img := &HDRImage{
		Width:  header.Width,
		Height: header.Height,
		Pixels: make([]uint8, header.Width*header.Height*color.NUM_CHANNELS),
		Header: *header,
	}

	reader := hdrio.NewByteReaderAt(dec.data, header.HeaderByteLength)
	decoder := newScanlineDecoder(reader, header.ScanlineWidth)
	if err := decoder.decodeScanlines(img.Pixels, header.NumScanlines); err != nil {
		return nil, err
	}

	if dec.options.Debug {
		log.Debugf("decoded %d scanlines, %d trailing bytes", header.NumScanlines, reader.Remaining())
	}
	return img, nil
}

func minScanlineBytes(width int) int64 {
	packets := int64((width + MAX_RUN_LENGTH - 1) / MAX_RUN_LENGTH)
	return 4 + color.NUM_CHANNELS*packets*2
}
