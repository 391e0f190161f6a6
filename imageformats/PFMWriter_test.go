package imageformats

import (
	"bytes"
	"image"
	"testing"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/pfm"
	"github.com/mdouchement/hdr/hdrcolor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePFM(t *testing.T) {
	m := hdr.NewRGB(image.Rect(0, 0, 3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			m.SetRGB(x, y, hdrcolor.RGB{R: float64(x) + 0.5, G: float64(y) * 2, B: 100})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, WritePFM(m, &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PF\n3 2\n1.0\n")))
	assert.Len(t, buf.Bytes(), len("PF\n3 2\n1.0\n")+3*2*12)

	// first pixel written is the bottom left one
	assert.Equal(t, []byte{0x3f, 0x00, 0x00, 0x00}, buf.Bytes()[11:15])

	decoded, err := pfm.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	other, ok := decoded.(*hdr.RGB)
	require.True(t, ok)
	assert.Equal(t, m.Pix, other.Pix)
}
