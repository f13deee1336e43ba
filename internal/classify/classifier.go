package classify

import (
	"errors"
	"fmt"
	"strings"

	"devdocs/samplemap/internal/domain"

	"github.com/PuerkitoBio/goquery"
)

// ErrUnknownKind rejects a page whose eyebrow label is outside the taxonomy.
// Rejection is deliberately a drop-subtree policy: the page contributes no
// record and none of its children are explored, so anything reachable only
// through it is excluded from the output.
var ErrUnknownKind = errors.New("classify: unknown page kind")

const (
	eyebrowSelector    = ".topictitle .eyebrow"
	breadcrumbSelector = ".localnav .breadcrumbs li"
)

// Result is what classification yields for an accepted page.
type Result struct {
	Type  domain.ElementType
	Links []string // outgoing child links, discovery order, possibly relative
	Path  []string // breadcrumb labels as rendered, root to leaf
}

type Classifier struct {
	index indexShape
	topic topicShape
}

func NewClassifier() *Classifier {
	return &Classifier{
		index: indexShape{categories: rootCategories},
	}
}

// Classify determines the page's taxonomy type, its child links, and its
// breadcrumb path. The root flag selects the page shape used for link
// extraction; type and breadcrumbs are read the same way everywhere.
func (c *Classifier) Classify(doc *goquery.Document, root bool) (*Result, error) {
	label := strings.TrimSpace(doc.Find(eyebrowSelector).First().Text())
	elementType, ok := domain.TypeForLabel(label)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, label)
	}

	var shape pageShape = c.topic
	if root {
		shape = c.index
	}

	return &Result{
		Type:  elementType,
		Links: shape.childLinks(doc),
		Path:  c.breadcrumbs(doc),
	}, nil
}

// breadcrumbs returns the rendered labels of the local navigation trail.
// A page without a trail yields an empty path.
func (c *Classifier) breadcrumbs(doc *goquery.Document) []string {
	var path []string
	doc.Find(breadcrumbSelector).Each(func(_ int, li *goquery.Selection) {
		if label := strings.TrimSpace(li.Text()); label != "" {
			path = append(path, label)
		}
	})
	return path
}
