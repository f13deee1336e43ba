package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"devdocs/samplemap/internal/client"

	log "github.com/sirupsen/logrus"
)

// ErrUnavailable means neither the cache nor the network could produce the page.
var ErrUnavailable = errors.New("store: content unavailable")

// cacheFileName is the single file stored inside each mirrored URL path.
const cacheFileName = "index.html"

// ContentStore is a get-or-fetch byte cache keyed by URL. A cached copy is
// returned unconditionally; there is no freshness check and nothing ever
// expires.
type ContentStore interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

type mirrorStore struct {
	dir     string
	fetcher client.Fetcher
}

func NewMirrorStore(dir string, fetcher client.Fetcher) ContentStore {
	return &mirrorStore{
		dir:     dir,
		fetcher: fetcher,
	}
}

func (s *mirrorStore) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	cachePath, err := s.cachePath(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	if body, err := os.ReadFile(cachePath); err == nil {
		log.Debugf("Cache hit for %s", rawURL)
		return body, nil
	}

	body, err := s.fetcher.Get(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
	}

	// Best effort: a failed cache write must not fail the fetch.
	if err := writeAtomic(cachePath, body); err != nil {
		log.Warnf("Failed to cache %s: %v", rawURL, err)
	}

	return body, nil
}

// cachePath mirrors the URL's path component under the cache directory,
// with the page body stored as index.html inside it.
func (s *mirrorStore) cachePath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	clean := path.Clean("/" + u.Path)
	return filepath.Join(s.dir, filepath.FromSlash(clean), cacheFileName), nil
}

// writeAtomic writes to a temp file in the target directory and renames it
// into place, so concurrent writers of the same page cannot leave a torn file.
func writeAtomic(dest string, body []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, cacheFileName+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
