package loader

import (
	"context"
	"errors"
	"sync"
)

// TEXTURE_FORMAT_RGBA is the only upload format: raw RGBE bytes in an 8-bit RGBA
// texture, the shared exponent is applied when sampling.
const TEXTURE_FORMAT_RGBA = "RGBA"

var ErrNoResult = errors.New("load finished without a result")

// TextureUploader hands pixel data to whatever owns the GPU.
type TextureUploader interface {
	Upload(width int, height int, pix []byte, format string) error
}

// Texture waits for a load to complete and uploads the decoded pixels.
type Texture struct {
	uploader TextureUploader

	lock   sync.Mutex
	ready  bool
	width  int
	height int
}

func NewTexture(uploader TextureUploader) *Texture {
	return &Texture{uploader: uploader}
}

// Await blocks until results delivers a Result or ctx is done. A successful
// result is uploaded, a failed one is returned without touching the uploader.
func (t *Texture) Await(ctx context.Context, results <-chan Result) error {
	var res Result
	var ok bool
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res, ok = <-results:
	}
	if !ok {
		return ErrNoResult
	}
	if res.Err != nil {
		return res.Err
	}

	rgba, err := res.Image.ToRGBA()
	if err != nil {
		return err
	}
	if err := t.uploader.Upload(res.Image.Width, res.Image.Height, rgba.Pix, TEXTURE_FORMAT_RGBA); err != nil {
		return err
	}

	t.lock.Lock()
	defer t.lock.Unlock()
	t.ready = true
	t.width = res.Image.Width
	t.height = res.Image.Height
	return nil
}

// Ready reports whether pixels have been uploaded.
func (t *Texture) Ready() bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.ready
}

func (t *Texture) Size() (int, int) {
	t.lock.Lock()
	defer t.lock.Unlock()
	return t.width, t.height
}
