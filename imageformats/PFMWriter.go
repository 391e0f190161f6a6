package imageformats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/mdouchement/hdr"
)

// WritePFM writes m as a colour Portable Float Map: big-endian float32 RGB,
// rows bottom to top, scale 1.0.
func WritePFM(m hdr.Image, output io.Writer) error {

	bounds := m.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	w := bufio.NewWriter(output)
	header := fmt.Sprintf("PF\n%d %d\n1.0\n", width, height)
	if _, err := w.WriteString(header); err != nil {
		return err
	}

	var buf [12]byte
	for y := height - 1; y >= 0; y-- {
		for x := 0; x < width; x++ {
			r, g, b, _ := m.HDRAt(bounds.Min.X+x, bounds.Min.Y+y).HDRRGBA()
			binary.BigEndian.PutUint32(buf[0:], math.Float32bits(float32(r)))
			binary.BigEndian.PutUint32(buf[4:], math.Float32bits(float32(g)))
			binary.BigEndian.PutUint32(buf[8:], math.Float32bits(float32(b)))
			if _, err := w.Write(buf[:]); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}
