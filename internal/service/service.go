package service

import (
	"context"
	"io"

	"devdocs/samplemap/internal/domain"
	"devdocs/samplemap/internal/outline"
	"devdocs/samplemap/internal/repository"

	"golang.org/x/sync/errgroup"

	log "github.com/sirupsen/logrus"
)

// archiveWorkers bounds concurrent archive inserts.
const archiveWorkers = 4

// Crawler produces the flat list of classified records for a crawl root.
type Crawler interface {
	Crawl(ctx context.Context, rootURL string) ([]domain.Record, error)
}

// Service runs the whole pipeline: crawl, optionally archive the records,
// fold them into the outline tree, render it.
type Service struct {
	crawler    Crawler
	repository repository.RecordRepository // nil when archiving is disabled
	out        io.Writer
	siteName   string
	rootURL    string
}

func NewService(
	crawler Crawler,
	repository repository.RecordRepository,
	out io.Writer,
	siteName string,
	rootURL string,
) *Service {
	return &Service{
		crawler:    crawler,
		repository: repository,
		out:        out,
		siteName:   siteName,
		rootURL:    rootURL,
	}
}

func (s *Service) Run(ctx context.Context) error {
	log.Infof("Crawling %s", s.rootURL)

	records, err := s.crawler.Crawl(ctx, s.rootURL)
	if err != nil {
		return err
	}

	if s.repository != nil {
		s.archive(ctx, records)
	}

	tree := outline.Build(s.siteName, s.rootURL, records)
	outline.Render(s.out, tree, 1, 1)

	log.Infof("Rendered outline for %d sample pages", len(domain.SampleRecords(records)))
	return nil
}

// archive is best effort: a failed insert loses one archive row, not the run.
func (s *Service) archive(ctx context.Context, records []domain.Record) {
	g := new(errgroup.Group)
	g.SetLimit(archiveWorkers)

	for _, record := range records {
		g.Go(func() error {
			if err := s.repository.SaveRecord(ctx, record); err != nil {
				log.Errorf("Failed to archive record %s: %v", record.Key(), err)
			}
			return nil
		})
	}

	g.Wait()
}
