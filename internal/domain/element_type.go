package domain

type ElementType string

func (e ElementType) String() string {
	return string(e)
}

const (
	ElementTypeRoot      ElementType = "root"      // Technologies index
	ElementTypeFramework ElementType = "framework" // Framework landing page
	ElementTypeArticle   ElementType = "article"   // Prose article
	ElementTypeSample    ElementType = "sample"    // Downloadable sample code
	ElementTypeOther     ElementType = "other"     // Collections and similar glue pages
)

// labelToType maps the eyebrow text rendered on a page to its taxonomy type.
// The mapping is closed: a label outside this set rejects the whole page.
var labelToType = map[string]ElementType{
	"Technologies":   ElementTypeRoot,
	"Framework":      ElementTypeFramework,
	"Article":        ElementTypeArticle,
	"Sample Code":    ElementTypeSample,
	"API Collection": ElementTypeOther,
	"Web Service":    ElementTypeOther,
}

// TypeForLabel resolves a page's eyebrow label to an ElementType.
// The second result is false for labels outside the known taxonomy.
func TypeForLabel(label string) (ElementType, bool) {
	t, ok := labelToType[label]
	return t, ok
}
