package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kpfaulkner/radiance-go/core"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const DEFAULT_CONCURRENCY = 4

// Result is delivered once per Load, after fetch and decode have finished.
type Result struct {
	Location string
	Image    *core.HDRImage
	Err      error
}

type LoaderOption func(l *Loader) error

// WithDecoderOptions passes opts to every decode.
func WithDecoderOptions(opts ...core.HDRDecoderOption) LoaderOption {
	return func(l *Loader) error {
		l.decodeOpts = append(l.decodeOpts, opts...)
		return nil
	}
}

// WithConcurrency limits how many files LoadAll fetches and decodes at once.
func WithConcurrency(n int) LoaderOption {
	return func(l *Loader) error {
		if n <= 0 {
			return fmt.Errorf("concurrency must be positive, got %d", n)
		}
		l.concurrency = n
		return nil
	}
}

// Loader fetches and decodes HDR files off the caller's goroutine.
type Loader struct {
	fetcher     Fetcher
	decodeOpts  []core.HDRDecoderOption
	concurrency int
}

func NewLoader(fetcher Fetcher, opts ...LoaderOption) (*Loader, error) {
	if fetcher == nil {
		return nil, errors.New("loader requires a fetcher")
	}
	l := &Loader{fetcher: fetcher, concurrency: DEFAULT_CONCURRENCY}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Load starts loading location and returns a channel that receives exactly one
// Result and is then closed.
func (l *Loader) Load(ctx context.Context, location string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		img, err := l.LoadSync(ctx, location)
		ch <- Result{Location: location, Image: img, Err: err}
	}()
	return ch
}

// LoadSync fetches and decodes location on the calling goroutine.
func (l *Loader) LoadSync(ctx context.Context, location string) (*core.HDRImage, error) {
	start := time.Now()
	data, err := l.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := core.Decode(data, l.decodeOpts...)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", location, err)
	}

	log.WithFields(log.Fields{
		"location": location,
		"width":    img.Width,
		"height":   img.Height,
		"elapsed":  time.Since(start),
	}).Debug("loaded hdr")
	return img, nil
}

// LoadAll loads every location, at most the configured number at a time. Images
// are returned in the order of locations. The first failure cancels the rest.
func (l *Loader) LoadAll(ctx context.Context, locations []string) ([]*core.HDRImage, error) {
	images := make([]*core.HDRImage, len(locations))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i, location := range locations {
		g.Go(func() error {
			img, err := l.LoadSync(ctx, location)
			if err != nil {
				return err
			}
			images[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}
