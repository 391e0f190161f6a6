package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Fetcher returns the raw bytes stored at location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// FileFetcher reads locations as slash separated paths below Root.
type FileFetcher struct {
	Root string
}

func (f *FileFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(f.Root, filepath.FromSlash(location)))
}

// HTTPFetcher GETs BaseURL/location. Any non 2xx response is an error.
type HTTPFetcher struct {
	// Client defaults to http.DefaultClient when nil.
	Client  *http.Client
	BaseURL string
}

func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	url := strings.TrimSuffix(f.BaseURL, "/") + "/" + strings.TrimPrefix(location, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
