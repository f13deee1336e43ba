package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"devdocs/samplemap/internal/client"
	"devdocs/samplemap/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher() client.Fetcher {
	return client.NewFetcher(config.CrawlConfig{
		Timeout:              5,
		MaxRequestsPerSecond: 100,
	})
}

func TestFetch_SecondReadHitsCacheNotNetwork(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("<html>page one</html>"))
	}))
	defer server.Close()

	s := NewMirrorStore(t.TempDir(), newTestFetcher())
	ctx := context.Background()

	first, err := s.Fetch(ctx, server.URL+"/documentation/shapekit")
	require.NoError(t, err)

	second, err := s.Fetch(ctx, server.URL+"/documentation/shapekit")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetch_CacheSurvivesNetworkLoss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("cached forever"))
	}))

	s := NewMirrorStore(t.TempDir(), newTestFetcher())
	ctx := context.Background()

	url := server.URL + "/documentation/netkit"
	first, err := s.Fetch(ctx, url)
	require.NoError(t, err)

	server.Close()

	second, err := s.Fetch(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFetch_ErrorStatusBodyIsStillContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not really here"))
	}))
	defer server.Close()

	s := NewMirrorStore(t.TempDir(), newTestFetcher())

	body, err := s.Fetch(context.Background(), server.URL+"/gone")
	require.NoError(t, err)
	assert.Equal(t, []byte("not really here"), body)
}

func TestFetch_UnreachableIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	s := NewMirrorStore(t.TempDir(), newTestFetcher())

	_, err := s.Fetch(context.Background(), server.URL+"/anything")
	assert.ErrorIs(t, err, ErrUnavailable)
}
