package classify

import "github.com/PuerkitoBio/goquery"

// The site has exactly two structural page shapes. Each shape knows where its
// outgoing child links live; adding a shape means adding a type here, not
// branching in the classifier.
type pageShape interface {
	childLinks(doc *goquery.Document) []string
}

// rootCategories is the closed whitelist of top-level category containers on
// the technologies index page. Only links inside these sections are followed
// from the crawl root.
var rootCategories = []string{
	"app-frameworks",
	"app-services",
	"graphics-games",
	"media",
	"ml-vision",
	"system",
	"developer-tools",
}

// indexShape is the crawl-root page: child links come from the whitelisted
// category sections.
type indexShape struct {
	categories []string
}

func (s indexShape) childLinks(doc *goquery.Document) []string {
	var links []string
	for _, id := range s.categories {
		doc.Find("section#" + id + " a").Each(func(_ int, a *goquery.Selection) {
			if href, ok := a.Attr("href"); ok && href != "" {
				links = append(links, href)
			}
		})
	}
	return links
}

// topicShape is any non-root page: child links come from the generic topics
// listing region. A page without that region simply has no children.
type topicShape struct{}

func (topicShape) childLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("#topics a").Each(func(_ int, a *goquery.Selection) {
		if href, ok := a.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})
	return links
}
