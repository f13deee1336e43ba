package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"devdocs/samplemap/internal/classify"
	"devdocs/samplemap/internal/domain"
	"devdocs/samplemap/internal/store"
	"devdocs/samplemap/internal/visit"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

// Crawler walks the documentation site breadth-wise from the root page and
// produces one Record per page that classified successfully. Unavailable
// pages, unparseable pages, rejected pages and broken links all contribute
// nothing and the crawl continues elsewhere; only the root page failing to
// fetch or parse is fatal.
type Crawler struct {
	store      store.ContentStore
	guard      visit.Guard
	classifier *classify.Classifier
	maxWorkers int
}

func New(contentStore store.ContentStore, guard visit.Guard, classifier *classify.Classifier, maxWorkers int) *Crawler {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Crawler{
		store:      contentStore,
		guard:      guard,
		classifier: classifier,
		maxWorkers: maxWorkers,
	}
}

// Crawl fetches the root synchronously, then fans discovered links out to a
// semaphore-bounded set of page workers. The guard is consumed before a
// worker is spawned, so every absolute URL is fetched at most once no matter
// how many pages link to it; a WaitGroup tracks in-flight pages so completion
// is the WaitGroup draining.
func (c *Crawler) Crawl(ctx context.Context, rootURL string) ([]domain.Record, error) {
	if _, err := url.Parse(rootURL); err != nil {
		return nil, fmt.Errorf("invalid root URL %q: %w", rootURL, err)
	}
	if !c.guard.TryVisit(ctx, rootURL) {
		log.Infof("Root %s already claimed by another worker", rootURL)
		return nil, nil
	}

	rootResult, err := c.visitPage(ctx, rootURL, true)
	if err != nil {
		if errors.Is(err, classify.ErrUnknownKind) {
			log.Warnf("Root page rejected: %v", err)
			return nil, nil
		}
		return nil, fmt.Errorf("root page failed: %w", err)
	}

	var (
		mu      sync.Mutex
		records []domain.Record
		wg      sync.WaitGroup
	)
	sem := make(chan struct{}, c.maxWorkers)

	var crawlPage func(pageURL string)
	crawlPage = func(pageURL string) {
		defer wg.Done()

		if ctx.Err() != nil {
			return
		}

		sem <- struct{}{}
		result, err := c.visitPage(ctx, pageURL, false)
		<-sem

		if err != nil {
			// The guard entry stays consumed: no retry within this crawl.
			log.Debugf("Skipping %s: %v", pageURL, err)
			return
		}

		for _, link := range c.resolveLinks(ctx, pageURL, result.Links) {
			wg.Add(1)
			go crawlPage(link)
		}

		mu.Lock()
		records = append(records, domain.Record{Type: result.Type, Path: result.Path, URL: pageURL})
		mu.Unlock()
	}

	records = append(records, domain.Record{Type: rootResult.Type, Path: rootResult.Path, URL: rootURL})
	for _, link := range c.resolveLinks(ctx, rootURL, rootResult.Links) {
		wg.Add(1)
		go crawlPage(link)
	}
	wg.Wait()

	log.Infof("Crawl finished with %d records", len(records))
	return records, nil
}

func (c *Crawler) visitPage(ctx context.Context, pageURL string, root bool) (*classify.Result, error) {
	body, err := c.store.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	return c.classifier.Classify(doc, root)
}

// resolveLinks turns discovered hrefs into absolute URLs and claims each one
// with the visit guard. Links that fail to parse, or that some page already
// claimed, are dropped here and never fetched.
func (c *Crawler) resolveLinks(ctx context.Context, pageURL string, links []string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	resolved := make([]string, 0, len(links))
	for _, href := range links {
		ref, err := url.Parse(href)
		if err != nil {
			log.Debugf("Dropping unparseable link %q on %s", href, pageURL)
			continue
		}
		abs := base.ResolveReference(ref).String()
		if !c.guard.TryVisit(ctx, abs) {
			continue
		}
		resolved = append(resolved, abs)
	}
	return resolved
}
