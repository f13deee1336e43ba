package domain

import "strings"

// pathSeparator joins breadcrumb segments into a lookup key. Breadcrumb
// labels on the site never contain a slash.
const pathSeparator = "/"

// Record is one successfully classified page. Records are immutable once
// the crawl has produced them.
type Record struct {
	Type ElementType `json:"type"`
	Path []string    `json:"path"` // breadcrumb labels, root to leaf
	URL  string      `json:"url"`  // canonical absolute URL the page was fetched from
}

// Key returns the joined breadcrumb path used as the record's identity.
func (r Record) Key() string {
	return JoinPath(r.Path)
}

// JoinPath builds the lookup key for a breadcrumb prefix.
func JoinPath(segments []string) string {
	return strings.Join(segments, pathSeparator)
}

// IndexRecords builds the path-keyed lookup map from a flat record list.
// Two pages producing the same joined path collapse last-write-wins.
func IndexRecords(records []Record) map[string]Record {
	index := make(map[string]Record, len(records))
	for _, r := range records {
		index[r.Key()] = r
	}
	return index
}

// SampleRecords filters the flat list down to sample-code pages, the only
// leaf type that drives outline inclusion.
func SampleRecords(records []Record) []Record {
	samples := make([]Record, 0)
	for _, r := range records {
		if r.Type == ElementTypeSample {
			samples = append(samples, r)
		}
	}
	return samples
}
