package options

// HDROptions controls how an HDR file is decoded.
type HDROptions struct {
	// Debug logs header fields and scanline progress at debug level.
	Debug bool

	// HeaderOnly stops after the header, the decoded image carries no pixels.
	HeaderOnly bool

	// MaxPixels rejects images whose declared width*height exceeds it. 0 means no limit.
	MaxPixels int64
}

func NewHDROptions(options *HDROptions) *HDROptions {

	opt := &HDROptions{}
	if options != nil {
		opt.Debug = options.Debug
		opt.HeaderOnly = options.HeaderOnly
		opt.MaxPixels = options.MaxPixels
	}
	return opt
}

// ExceedsPixelLimit reports whether an image of the given size is over MaxPixels.
func (o *HDROptions) ExceedsPixelLimit(width int, height int) bool {
	if o.MaxPixels <= 0 {
		return false
	}
	return int64(width)*int64(height) > o.MaxPixels
}
