package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kpfaulkner/radiance-go/core"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Prints the header of each file given. Only headers are read.
func main() {
	concurrency := flag.Int("c", 4, "files read at once")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Printf("usage: hdrinfo [-c n] file.hdr...\n")
		os.Exit(1)
	}

	headers := make([]*core.HeaderInfo, len(files))
	errs := make([]error, len(files))

	var g errgroup.Group
	g.SetLimit(*concurrency)
	for i, file := range files {
		g.Go(func() error {
			headers[i], errs[i] = readHeader(file)
			return nil
		})
	}
	g.Wait()

	failed := false
	for i, file := range files {
		if errs[i] != nil {
			log.Errorf("%s : %v", file, errs[i])
			failed = true
			continue
		}
		printHeader(file, headers[i])
	}
	if failed {
		os.Exit(1)
	}
}

func readHeader(file string) (*core.HeaderInfo, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return core.NewHDRDecoder(f, core.WithHeaderOnly()).GetHeader()
}

func printHeader(file string, h *core.HeaderInfo) {
	fmt.Printf("%s\n", file)
	fmt.Printf("  size     : %d x %d\n", h.Width, h.Height)
	fmt.Printf("  format   : %s\n", h.Format)
	fmt.Printf("  exposure : %g\n", h.Exposure)
	fmt.Printf("  pixels at: %d\n", h.HeaderByteLength)

	keys := make([]string, 0, len(h.Extra))
	for k := range h.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-9s: %s\n", strings.ToLower(k), h.Extra[k])
	}
}
