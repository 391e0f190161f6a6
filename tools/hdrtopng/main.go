package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kpfaulkner/radiance-go/core"
	"github.com/kpfaulkner/radiance-go/imageformats"
	"github.com/mdouchement/hdr"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

func main() {
	infile := flag.String("i", "", "input hdr file")
	outfile := flag.String("o", "", "output file, - for stdout")
	outFormat := flag.String("f", "", "output format: png, tiff, pfm or hdr (default from output extension)")
	operator := flag.String("tmo", imageformats.TMO_REINHARD05, "tone mapping operator for png/tiff output")
	width := flag.Uint("width", 0, "resize png/tiff output to this width")
	height := flag.Uint("height", 0, "resize png/tiff output to this height")
	applyExposure := flag.Bool("exposure", false, "divide by the file's EXPOSURE value")
	debug := flag.Bool("debug", false, "debug logging")
	cpuProfile := flag.Bool("profile", false, "write a CPU profile to the current directory")
	flag.Parse()

	if *infile == "" || *outfile == "" {
		fmt.Printf("both input and output files must be specified\n")
		os.Exit(1)
	}
	if *debug {
		log.SetLevel(log.DebugLevel)
	}
	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	format := strings.ToLower(*outFormat)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(*outfile)), ".")
	}

	var out io.Writer
	if *outfile == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			log.Fatalf("refusing to write binary %s data to a terminal", format)
		}
		out = os.Stdout
	}

	f, err := os.ReadFile(*infile)
	if err != nil {
		log.Errorf("Error opening file: %v\n", err)
		return
	}

	opts := []core.HDRDecoderOption{}
	if *debug {
		opts = append(opts, core.WithDebug())
	}
	start := time.Now()
	hdrImage, err := core.Decode(f, opts...)
	if err != nil {
		log.Fatalf("Error decoding: %v", err)
	}
	log.Infof("decoding took %d ms", time.Since(start).Milliseconds())
	log.Infof("%dx%d format %q exposure %g", hdrImage.Width, hdrImage.Height, hdrImage.Header.Format, hdrImage.Header.Exposure)

	startEncoding := time.Now()
	buf := new(bytes.Buffer)
	if err := encode(buf, hdrImage, format, *operator, *width, *height, *applyExposure); err != nil {
		log.Fatalf("boomage %v", err)
	}

	if out != nil {
		_, err = out.Write(buf.Bytes())
	} else {
		err = os.WriteFile(*outfile, buf.Bytes(), 0666)
	}
	if err != nil {
		log.Fatalf("boomage %v", err)
	}
	log.Infof("encoding took %d ms", time.Since(startEncoding).Milliseconds())
}

func encode(w io.Writer, hdrImage *core.HDRImage, format string, operator string, width uint, height uint, applyExposure bool) error {
	if format == "hdr" {
		return core.Encode(w, hdrImage)
	}

	var m hdr.Image
	if applyExposure {
		m = hdrImage.ToFloatWithExposure(hdrImage.Header.Exposure)
	} else {
		m = hdrImage.ToFloat()
	}

	if format == imageformats.FORMAT_PFM {
		return imageformats.WritePFM(m, w)
	}

	img, err := imageformats.ToneMap(m, operator)
	if err != nil {
		return err
	}
	return imageformats.EncodeLDR(w, imageformats.Resize(img, width, height), format)
}
