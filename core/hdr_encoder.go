package core

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/kpfaulkner/radiance-go/color"
	"github.com/kpfaulkner/radiance-go/util"
)

const (
	// shortest repeat worth encoding as a run
	MIN_RUN_LENGTH = 4

	MAX_RUN_LENGTH     = 0xff - RUN_THRESHOLD
	MAX_LITERAL_LENGTH = RUN_THRESHOLD
)

// Encode writes img as a Radiance file using new-style RLE scanlines. Header
// fields come from img.Header, FORMAT defaults to 32-bit_rle_rgbe.
func Encode(w io.Writer, img *HDRImage) error {
	if img.Width < MIN_SCANLINE_WIDTH || img.Width > MAX_SCANLINE_WIDTH {
		return newHeaderError(ErrUnsupportedScanlineEncoding, 0,
			fmt.Sprintf("cannot run-length encode scanline width %d", img.Width))
	}
	if img.Height <= 0 {
		return newHeaderError(ErrMalformedHeader, 0, fmt.Sprintf("invalid height %d", img.Height))
	}
	if len(img.Pixels) != img.Width*img.Height*color.NUM_CHANNELS {
		return fmt.Errorf("pixel buffer holds %d bytes, expected %d", len(img.Pixels), img.Width*img.Height*color.NUM_CHANNELS)
	}
	if err := checkHeaderFields(&img.Header); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if err := writeHeader(bw, img); err != nil {
		return err
	}

	plane := make([]uint8, img.Width)
	rowBytes := img.Width * color.NUM_CHANNELS
	var out []uint8
	for y := 0; y < img.Height; y++ {
		row := img.Pixels[y*rowBytes : (y+1)*rowBytes]
		out = append(out[:0], 2, 2, uint8(img.Width>>8), uint8(img.Width&0xff))
		for c := 0; c < color.NUM_CHANNELS; c++ {
			for x := 0; x < img.Width; x++ {
				plane[x] = row[x*color.NUM_CHANNELS+c]
			}
			out = appendPlaneRLE(out, plane)
		}
		if _, err := bw.Write(out); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// EncodeBytes returns the encoded file in memory.
func EncodeBytes(img *HDRImage) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeHeader(w io.Writer, img *HDRImage) error {
	format := util.IfThenElse(img.Header.Format == "", color.FORMAT_RGBE, img.Header.Format)
	header := HDR_SIGNATURE + "\n" + KEY_FORMAT + "=" + format + "\n"
	if img.Header.Exposure != 0 && img.Header.Exposure != 1 {
		header += KEY_EXPOSURE + "=" + strconv.FormatFloat(img.Header.Exposure, 'g', -1, 64) + "\n"
	}

	keys := make([]string, 0, len(img.Header.Extra))
	for k := range img.Header.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		header += k + "=" + img.Header.Extra[k] + "\n"
	}

	header += fmt.Sprintf("\n-Y %d +X %d\n", img.Height, img.Width)
	_, err := io.WriteString(w, header)
	return err
}

// checkHeaderFields rejects fields that would not parse back as written.
func checkHeaderFields(header *HeaderInfo) error {
	if strings.Contains(header.Format, "\n") {
		return newHeaderError(ErrMalformedHeader, 0, "FORMAT value contains a line break")
	}
	for k, v := range header.Extra {
		if k == "" || strings.IndexFunc(k, func(r rune) bool { return r > 0x7f || !isWordChar(byte(r)) }) >= 0 {
			return newHeaderError(ErrMalformedHeader, 0, "invalid header key "+strconv.Quote(k))
		}
		if k == KEY_FORMAT || k == KEY_EXPOSURE {
			return newHeaderError(ErrMalformedHeader, 0, k+" must be set through its own header field")
		}
		if strings.Contains(v, "\n") {
			return newHeaderError(ErrMalformedHeader, 0, "value of "+k+" contains a line break")
		}
	}
	return nil
}

// appendPlaneRLE encodes one channel plane. Repeats of MIN_RUN_LENGTH or more become
// runs, a 2 or 3 byte repeat directly ahead of a long run is also written as a run,
// everything else goes out as literal sequences.
func appendPlaneRLE(dst []uint8, data []uint8) []uint8 {
	cur := 0
	for cur < len(data) {
		begRun := cur
		runCount := 0
		oldRunCount := 0

		// find the next run of at least MIN_RUN_LENGTH
		for runCount < MIN_RUN_LENGTH && begRun < len(data) {
			begRun += runCount
			oldRunCount = runCount
			runCount = 1
			for begRun+runCount < len(data) && runCount < MAX_RUN_LENGTH && data[begRun] == data[begRun+runCount] {
				runCount++
			}
		}

		if oldRunCount > 1 && oldRunCount == begRun-cur {
			dst = append(dst, uint8(RUN_THRESHOLD+oldRunCount), data[cur])
			cur = begRun
		}

		for cur < begRun {
			n := begRun - cur
			if n > MAX_LITERAL_LENGTH {
				n = MAX_LITERAL_LENGTH
			}
			dst = append(dst, uint8(n))
			dst = append(dst, data[cur:cur+n]...)
			cur += n
		}

		if runCount >= MIN_RUN_LENGTH {
			dst = append(dst, uint8(RUN_THRESHOLD+runCount), data[begRun])
			cur += runCount
		}
	}
	return dst
}
