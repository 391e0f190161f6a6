package main

import (
	"fmt"
	"os"

	"github.com/kpfaulkner/radiance-go/core"
)

func main() {
	fmt.Printf("So it begins...\n")
	if len(os.Args) < 2 {
		fmt.Printf("usage: readhdr <file.hdr>\n")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	dec := core.NewHDRDecoder(f)
	if img, err := dec.Decode(); err != nil {
		fmt.Printf("Error decoding: %v\n", err)
	} else {
		fmt.Printf("Decoded successfully %dx%d\n", img.Width, img.Height)
	}
}
