package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
)

// Fetcher retrieves map and tileset files by slash-separated path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FSFetcher reads from a file system, e.g. os.DirFS or the embedded maps.
type FSFetcher struct {
	FS fs.FS
}

func (f FSFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	data, err := fs.ReadFile(f.FS, strings.TrimPrefix(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", path, err)
	}
	return data, nil
}

// HTTPFetcher resolves paths against BaseURL.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	target, err := url.JoinPath(f.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("assets: url for %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("assets: request %s: %w", target, err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: get %s: %w", target, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assets: get %s: %s", target, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("assets: read body of %s: %w", target, err)
	}
	return data, nil
}

// Overlay tries each fetcher in turn and returns the first success, so a
// directory on disk can shadow the embedded maps.
type Overlay []Fetcher

func (o Overlay) Fetch(ctx context.Context, path string) ([]byte, error) {
	var errs []error
	for _, f := range o {
		data, err := f.Fetch(ctx, path)
		if err == nil {
			return data, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("assets: no fetcher for %s", path)
	}
	return nil, errors.Join(errs...)
}
