package core

import (
	"errors"
	"image"

	"github.com/kpfaulkner/radiance-go/color"
	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/hdrcolor"
)

// HDRImage is a decoded Radiance image. Pixels holds the stored RGBE quadruplets,
// row-major, top row first, with the exponent left encoded.
type HDRImage struct {
	Width  int
	Height int
	Pixels []uint8
	Header HeaderInfo
}

// NewHDRImage allocates a black image of the given size.
func NewHDRImage(width int, height int) *HDRImage {
	img := &HDRImage{
		Width:  width,
		Height: height,
		Pixels: make([]uint8, width*height*color.NUM_CHANNELS),
		Header: *newHeaderInfo(),
	}
	img.Header.Width = width
	img.Header.Height = height
	img.Header.ScanlineWidth = width
	img.Header.NumScanlines = height
	return img
}

// NewHDRImageFromFloat packs a linear float image into RGBE.
func NewHDRImageFromFloat(m hdr.Image) *HDRImage {
	b := m.Bounds()
	img := NewHDRImage(b.Dx(), b.Dy())
	img.Header.Format = color.FORMAT_RGBE
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, bl, _ := m.HDRAt(b.Min.X+x, b.Min.Y+y).HDRRGBA()
			img.SetRGBE(x, y, color.FromRGB(hdrcolor.RGB{R: r, G: g, B: bl}))
		}
	}
	return img
}

func (img *HDRImage) pixOffset(x int, y int) int {
	return (y*img.Width + x) * color.NUM_CHANNELS
}

// RGBEAt returns the stored pixel at (x, y), zero outside the image.
func (img *HDRImage) RGBEAt(x int, y int) color.RGBE {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return color.RGBE{}
	}
	i := img.pixOffset(x, y)
	return color.RGBE{img.Pixels[i], img.Pixels[i+1], img.Pixels[i+2], img.Pixels[i+3]}
}

func (img *HDRImage) SetRGBE(x int, y int, p color.RGBE) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return
	}
	i := img.pixOffset(x, y)
	copy(img.Pixels[i:i+color.NUM_CHANNELS], p[:])
}

// ToRGBA returns the raw RGBE bytes as a 4 channel 8-bit image, ready to be uploaded
// as texture data and expanded on the GPU. The E channel lands in alpha.
func (img *HDRImage) ToRGBA() (*image.NRGBA, error) {
	if len(img.Pixels) != img.Width*img.Height*color.NUM_CHANNELS {
		return nil, errors.New("pixel buffer does not match image size")
	}
	rgba := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(rgba.Pix, img.Pixels)
	return rgba, nil
}

// ToFloat expands every pixel to linear radiance without exposure compensation.
func (img *HDRImage) ToFloat() *hdr.RGB {
	return img.ToFloatWithExposure(1)
}

// ToFloatWithExposure expands every pixel, dividing by exposure. Passing
// img.Header.Exposure gives radiance in watts/steradian/m2.
func (img *HDRImage) ToFloatWithExposure(exposure float64) *hdr.RGB {
	m := hdr.NewRGB(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			m.SetRGB(x, y, img.RGBEAt(x, y).ToRGB(exposure))
		}
	}
	return m
}
