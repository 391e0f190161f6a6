package radiance

import (
	"image"
	"io"

	"github.com/kpfaulkner/radiance-go/core"
	"github.com/mdouchement/hdr"
)

const hdrHeader = core.HDR_SIGNATURE

func init() {
	image.RegisterFormat("hdr", hdrHeader, Decode, DecodeConfig)
}

// Decode returns the image as linear float RGB (*hdr.RGB). EXPOSURE is not applied.
func Decode(r io.Reader) (image.Image, error) {

	dec := core.NewHDRDecoder(r)
	if hdrImage, err := dec.Decode(); err != nil {
		return nil, err
	} else {
		return hdrImage.ToFloat(), nil
	}
}

func DecodeConfig(r io.Reader) (image.Config, error) {

	dec := core.NewHDRDecoder(r, core.WithHeaderOnly())
	header, err := dec.GetHeader()
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		ColorModel: hdr.NewRGB(image.Rect(0, 0, 0, 0)).ColorModel(),
		Width:      header.Width,
		Height:     header.Height,
	}, nil
}
