package crawler

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"devdocs/samplemap/internal/classify"
	"devdocs/samplemap/internal/domain"
	"devdocs/samplemap/internal/store"
	"devdocs/samplemap/internal/visit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore serves a fixed site graph from memory and counts fetches per URL.
type fakeStore struct {
	mu      sync.Mutex
	pages   map[string]string
	fetches map[string]int
}

func newFakeStore(pages map[string]string) *fakeStore {
	return &fakeStore{
		pages:   pages,
		fetches: make(map[string]int),
	}
}

func (f *fakeStore) Fetch(_ context.Context, rawURL string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetches[rawURL]++
	body, ok := f.pages[rawURL]
	if !ok {
		return nil, store.ErrUnavailable
	}
	return []byte(body), nil
}

func (f *fakeStore) totalFetches() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	total := 0
	for _, n := range f.fetches {
		total += n
	}
	return total
}

func rootPage(links ...string) string {
	var b strings.Builder
	b.WriteString(`<div class="topictitle"><span class="eyebrow">Technologies</span></div>`)
	b.WriteString(`<section id="graphics-games">`)
	for _, l := range links {
		fmt.Fprintf(&b, `<a href="%s">x</a>`, l)
	}
	b.WriteString(`</section>`)
	return b.String()
}

func topicPage(eyebrow string, crumbs []string, links ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="topictitle"><span class="eyebrow">%s</span></div>`, eyebrow)
	b.WriteString(`<nav class="localnav"><ul class="breadcrumbs">`)
	for _, c := range crumbs {
		fmt.Fprintf(&b, `<li>%s</li>`, c)
	}
	b.WriteString(`</ul></nav><div id="topics">`)
	for _, l := range links {
		fmt.Fprintf(&b, `<a href="%s">x</a>`, l)
	}
	b.WriteString(`</div>`)
	return b.String()
}

const base = "https://docs.test"

func newTestCrawler(pages map[string]string) (*Crawler, *fakeStore) {
	fs := newFakeStore(pages)
	return New(fs, visit.NewMemoryGuard(), classify.NewClassifier(), 4), fs
}

func recordURLs(records []domain.Record) []string {
	urls := make([]string, 0, len(records))
	for _, r := range records {
		urls = append(urls, r.URL)
	}
	return urls
}

func TestCrawl_FetchesEachURLOnceDespiteMultipleReferrers(t *testing.T) {
	// /shapekit is linked from the root twice and from /netkit: one fetch.
	pages := map[string]string{
		base + "/":         rootPage("/shapekit", "/shapekit", "/netkit"),
		base + "/shapekit": topicPage("Framework", []string{"ShapeKit"}),
		base + "/netkit":   topicPage("Framework", []string{"NetKit"}, "/shapekit"),
	}
	c, fs := newTestCrawler(pages)

	records, err := c.Crawl(context.Background(), base+"/")
	require.NoError(t, err)

	assert.Equal(t, 1, fs.fetches[base+"/shapekit"])
	// Fetch count equals distinct discoverable URLs, not edges.
	assert.Equal(t, 3, fs.totalFetches())
	assert.ElementsMatch(t,
		[]string{base + "/", base + "/shapekit", base + "/netkit"},
		recordURLs(records))
}

func TestCrawl_TerminatesOnCycles(t *testing.T) {
	pages := map[string]string{
		base + "/":  rootPage("/a"),
		base + "/a": topicPage("Framework", []string{"A"}, "/b"),
		base + "/b": topicPage("Framework", []string{"A", "B"}, "/a", "/"),
	}
	c, fs := newTestCrawler(pages)

	records, err := c.Crawl(context.Background(), base+"/")
	require.NoError(t, err)

	assert.Equal(t, 3, fs.totalFetches())
	assert.Len(t, records, 3)
}

func TestCrawl_RejectionDropsExclusiveDescendants(t *testing.T) {
	// /odd has an unrecognized label; /odd/sample is only reachable
	// through it and must never be fetched or recorded.
	pages := map[string]string{
		base + "/":           rootPage("/kit", "/odd"),
		base + "/kit":        topicPage("Framework", []string{"Kit"}, "/kit/demo"),
		base + "/kit/demo":   topicPage("Sample Code", []string{"Kit", "Demo"}),
		base + "/odd":        topicPage("Tutorial", []string{"Odd"}, "/odd/sample"),
		base + "/odd/sample": topicPage("Sample Code", []string{"Odd", "Sample"}),
	}
	c, fs := newTestCrawler(pages)

	records, err := c.Crawl(context.Background(), base+"/")
	require.NoError(t, err)

	assert.Zero(t, fs.fetches[base+"/odd/sample"])
	assert.NotContains(t, recordURLs(records), base+"/odd")
	assert.NotContains(t, recordURLs(records), base+"/odd/sample")
	assert.Contains(t, recordURLs(records), base+"/kit/demo")
}

func TestCrawl_UnavailablePageIsSkipped(t *testing.T) {
	pages := map[string]string{
		base + "/":    rootPage("/kit", "/missing"),
		base + "/kit": topicPage("Framework", []string{"Kit"}),
	}
	c, _ := newTestCrawler(pages)

	records, err := c.Crawl(context.Background(), base+"/")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{base + "/", base + "/kit"}, recordURLs(records))
}

func TestCrawl_RelativeLinksResolveAgainstPage(t *testing.T) {
	pages := map[string]string{
		base + "/docs/":         rootPage("kit/"),
		base + "/docs/kit/":     topicPage("Framework", []string{"Kit"}, "demo"),
		base + "/docs/kit/demo": topicPage("Sample Code", []string{"Kit", "Demo"}),
	}
	c, _ := newTestCrawler(pages)

	records, err := c.Crawl(context.Background(), base+"/docs/")
	require.NoError(t, err)

	assert.Contains(t, recordURLs(records), base+"/docs/kit/demo")
}

func TestCrawl_RootFetchFailureIsFatal(t *testing.T) {
	c, _ := newTestCrawler(map[string]string{})

	_, err := c.Crawl(context.Background(), base+"/")
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestCrawl_RejectedRootYieldsNothing(t *testing.T) {
	pages := map[string]string{
		base + "/": topicPage("Tutorial", nil, "/kit"),
	}
	c, fs := newTestCrawler(pages)

	records, err := c.Crawl(context.Background(), base+"/")
	require.NoError(t, err)

	assert.Empty(t, records)
	assert.Equal(t, 1, fs.totalFetches())
}
