package domain

// Node is one node of the rendered outline tree. Children are mutated only
// while the tree is being built, never after rendering begins.
type Node struct {
	Title    string
	URL      string
	Type     ElementType
	Children []*Node
}

// FindChild returns the child with the given title, or nil. Titles are
// unique among siblings: duplicate-titled pages collapse into the node
// created first.
func (n *Node) FindChild(title string) *Node {
	for _, c := range n.Children {
		if c.Title == title {
			return c
		}
	}
	return nil
}

// AddChild appends a child node and returns it.
func (n *Node) AddChild(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}
