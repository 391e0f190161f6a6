package imageformats

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/tiff"
)

func gradient(width int, height int) *hdr.RGB {
	m := hdr.NewRGB(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := float64(1+x+y*width) * 0.25
			m.SetRGB(x, y, hdrcolor.RGB{R: v, G: v / 2, B: v / 4})
		}
	}
	return m
}

func TestToneMap(t *testing.T) {
	m := gradient(8, 4)

	img, err := ToneMap(m, TMO_LINEAR)
	require.NoError(t, err)
	assert.Equal(t, m.Bounds(), img.Bounds())

	_, err = ToneMap(m, "sepia")
	assert.ErrorIs(t, err, ErrUnknownOperator)
}

func TestResize(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))

	assert.Same(t, img, Resize(img, 0, 0))
	assert.Equal(t, image.Rect(0, 0, 4, 2), Resize(img, 4, 0).Bounds())
	assert.Equal(t, image.Rect(0, 0, 2, 3), Resize(img, 2, 3).Bounds())
}

func TestEncodeLDR(t *testing.T) {
	img, err := ToneMap(gradient(8, 4), TMO_LINEAR)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, EncodeLDR(&buf, img, FORMAT_PNG))
	decoded, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	buf.Reset()
	require.NoError(t, EncodeLDR(&buf, img, FORMAT_TIFF))
	decoded, err = tiff.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())

	assert.Error(t, EncodeLDR(&buf, img, "bmp"))
}
