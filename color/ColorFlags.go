package color

// Values of the FORMAT= header line.
const (
	FORMAT_RGBE = "32-bit_rle_rgbe"
	FORMAT_XYZE = "32-bit_rle_xyze"
)

// Channel order of an RGBE quadruplet.
const (
	CHANNEL_R = 0
	CHANNEL_G = 1
	CHANNEL_B = 2
	CHANNEL_E = 3

	NUM_CHANNELS = 4
)

// IsKnownFormat reports whether format is one of the Radiance pixel formats.
// An empty format is accepted, many writers omit the line.
func IsKnownFormat(format string) bool {
	return format == "" || format == FORMAT_RGBE || format == FORMAT_XYZE
}
