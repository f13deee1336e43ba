package outline

import (
	"devdocs/samplemap/internal/domain"
)

// Build reduces the flat crawl result into the outline tree. Only the
// breadcrumb ancestor chains of sample-code pages are materialized: for each
// sample record the path is walked from the root, descending into an existing
// child per segment or creating one from the record whose joined path prefix
// matches. A prefix with no classified record ends the walk early and the
// deeper segments are dropped for that record.
func Build(title, rootURL string, records []domain.Record) *domain.Node {
	root := &domain.Node{
		Title: title,
		URL:   rootURL,
		Type:  domain.ElementTypeRoot,
	}

	index := domain.IndexRecords(records)

	for _, sample := range domain.SampleRecords(records) {
		node := root
		for i, segment := range sample.Path {
			if child := node.FindChild(segment); child != nil {
				node = child
				continue
			}

			record, ok := index[domain.JoinPath(sample.Path[:i+1])]
			if !ok {
				break
			}

			node = node.AddChild(&domain.Node{
				Title: segment,
				URL:   record.URL,
				Type:  record.Type,
			})
		}
	}

	return root
}
