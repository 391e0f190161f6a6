package imageformats

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/tmo"
	"github.com/nfnt/resize"
	"golang.org/x/image/tiff"
)

const (
	TMO_LINEAR            = "linear"
	TMO_LOGARITHMIC       = "logarithmic"
	TMO_DRAGO03           = "drago03"
	TMO_DURAND            = "durand"
	TMO_ICAM06            = "icam06"
	TMO_REINHARD05        = "reinhard05"
	TMO_CUSTOM_REINHARD05 = "custom-reinhard05"

	FORMAT_PNG  = "png"
	FORMAT_TIFF = "tiff"
	FORMAT_PFM  = "pfm"
)

var ErrUnknownOperator = errors.New("unknown tone mapping operator")

// ToneMap reduces m to a displayable 16-bit image using the named operator.
func ToneMap(m hdr.Image, operator string) (image.Image, error) {
	var t tmo.ToneMappingOperator
	switch strings.ToLower(operator) {
	case TMO_LINEAR:
		t = tmo.NewLinear(m)
	case TMO_LOGARITHMIC:
		t = tmo.NewLogarithmic(m)
	case TMO_DRAGO03:
		t = tmo.NewDefaultDrago03(m)
	case TMO_DURAND:
		t = tmo.NewDefaultDurand(m)
	case TMO_ICAM06:
		t = tmo.NewDefaultICam06(m)
	case TMO_REINHARD05:
		t = tmo.NewDefaultReinhard05(m)
	case TMO_CUSTOM_REINHARD05:
		t = tmo.NewDefaultCustomReinhard05(m)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperator, operator)
	}
	return t.Perform(), nil
}

// Resize scales img with Lanczos resampling. A zero width or height keeps the
// aspect ratio. Both zero returns img unchanged.
func Resize(img image.Image, width uint, height uint) image.Image {
	if width == 0 && height == 0 {
		return img
	}
	return resize.Resize(width, height, img, resize.Lanczos3)
}

// EncodeLDR writes a tone mapped image as PNG or TIFF.
func EncodeLDR(w io.Writer, img image.Image, format string) error {
	switch strings.ToLower(format) {
	case FORMAT_PNG:
		return png.Encode(w, img)
	case FORMAT_TIFF, "tif":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
