package radiance

import (
	"bytes"
	"image"
	"testing"

	"github.com/kpfaulkner/radiance-go/core"
	"github.com/kpfaulkner/radiance-go/testcommon"
	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageDecode(t *testing.T) {
	data := testcommon.UniformImage(16, 4, [4]byte{128, 64, 32, 129})

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "hdr", format)
	assert.Equal(t, image.Rect(0, 0, 16, 4), img.Bounds())

	m, ok := img.(*hdr.RGB)
	require.True(t, ok)
	r, g, b, _ := m.HDRAt(15, 3).HDRRGBA()
	assert.InDelta(t, 1.0, r, 1e-6)
	assert.InDelta(t, 0.5, g, 1e-6)
	assert.InDelta(t, 0.25, b, 1e-6)
}

func TestImageDecodeConfig(t *testing.T) {
	data := testcommon.Header([]string{"FORMAT=32-bit_rle_rgbe"}, 480, 640)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "hdr", format)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.True(t, cfg.ColorModel == hdrcolor.RGBModel)
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("#?RADIANCE\n\n-Y 1 +X 4\n")))
	assert.ErrorIs(t, err, core.ErrUnsupportedScanlineEncoding)

	_, err = DecodeConfig(bytes.NewReader([]byte("#?RADIANCE\n\n+Y 1 +X 8\n")))
	assert.ErrorIs(t, err, core.ErrMalformedHeader)
}
