package outline

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"devdocs/samplemap/internal/domain"
)

// Render serializes the tree depth-first, pre-order, as nested Markdown.
// Children are visited in ascending case-sensitive title order at every
// level, so the output is deterministic for a given record set.
//
// Framework and collection nodes become linked headers at headerLevel, but
// only when they have children: a childless one is path glue and stays
// invisible. Article and sample nodes become linked list items indented by
// listLevel. The root node emits nothing itself. The initial call is
// Render(w, root, 1, 1).
func Render(w io.Writer, node *domain.Node, headerLevel, listLevel int) {
	switch node.Type {
	case domain.ElementTypeRoot:
		for _, child := range sortedChildren(node) {
			Render(w, child, headerLevel, listLevel)
		}

	case domain.ElementTypeFramework, domain.ElementTypeOther:
		if len(node.Children) == 0 {
			return
		}
		fmt.Fprintf(w, "%s [%s](%s)\n", strings.Repeat("#", headerLevel), node.Title, node.URL)
		for _, child := range sortedChildren(node) {
			Render(w, child, headerLevel+1, listLevel)
		}

	case domain.ElementTypeArticle, domain.ElementTypeSample:
		fmt.Fprintf(w, "%s* [%s](%s)\n", strings.Repeat("    ", listLevel), node.Title, node.URL)
		for _, child := range sortedChildren(node) {
			Render(w, child, headerLevel, listLevel+1)
		}
	}
}

// sortedChildren sorts a copy so rendering never mutates the tree.
func sortedChildren(node *domain.Node) []*domain.Node {
	children := make([]*domain.Node, len(node.Children))
	copy(children, node.Children)
	sort.Slice(children, func(i, j int) bool {
		return children[i].Title < children[j].Title
	})
	return children
}
