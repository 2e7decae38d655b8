package models

type MindMap struct {
	Title    string      `json:"title"`
	RootNode MindMapNode `json:"rootNode"`
}

// MindMapNode is one node of the tree; Level is its depth from the root.
type MindMapNode struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Level    int           `json:"level"`
	Children []MindMapNode `json:"children"`
}

// Walk visits n and every descendant depth-first.
func (n *MindMapNode) Walk(fn func(node *MindMapNode)) {
	fn(n)
	for i := range n.Children {
		n.Children[i].Walk(fn)
	}
}
