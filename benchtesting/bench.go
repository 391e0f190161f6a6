package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kpfaulkner/radiance-go/core"
	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"
)

// Decodes each file repeatedly under the profiler. With no files given a
// synthetic image is encoded in memory and used instead.
func main() {
	count := flag.Int("n", 10, "decodes per file")
	memProfile := flag.Bool("mem", false, "profile heap instead of CPU")
	flag.Parse()

	var p interface{ Stop() }
	if *memProfile {
		p = profile.Start(profile.MemProfileHeap, profile.ProfilePath("."))
	} else {
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."))
	}
	defer p.Stop()

	inputs := map[string][]byte{}
	for _, file := range flag.Args() {
		f, err := os.ReadFile(file)
		if err != nil {
			log.Errorf("Error opening file: %v\n", err)
			return
		}
		inputs[file] = f
	}
	if len(inputs) == 0 {
		data, err := syntheticImage(2048, 1024)
		if err != nil {
			log.Fatalf("boomage %v", err)
		}
		inputs["synthetic 2048x1024"] = data
	}

	for name, data := range inputs {
		fmt.Printf("file %s\n", name)
		start := time.Now()
		for i := 0; i < *count; i++ {
			decodeStart := time.Now()
			img, err := core.Decode(data)
			if err != nil {
				fmt.Printf("Error decoding: %v\n", err)
				return
			}
			fmt.Printf("decoding %dx%d took %d ms\n", img.Width, img.Height, time.Since(decodeStart).Milliseconds())
		}
		fmt.Printf("decoding total time %d ms\n", time.Since(start).Milliseconds())
	}
}

func syntheticImage(width int, height int) ([]byte, error) {
	img := core.NewHDRImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 4
			img.Pixels[i] = uint8(x >> 3)
			img.Pixels[i+1] = uint8(y >> 2)
			img.Pixels[i+2] = uint8(x ^ y)
			img.Pixels[i+3] = 128 + uint8(y*8/height)
		}
	}
	return core.EncodeBytes(img)
}
