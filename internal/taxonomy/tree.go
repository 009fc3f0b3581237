package taxonomy

import (
	"fmt"
	"strings"

	taxonerrors "github.com/alexisbeaulieu97/taxon/pkg/errors"
)

// Node is a single category. Children keep the order they were declared in.
type Node struct {
	Name     string
	Count    int
	Children []*Node
}

// HasChildren reports whether the node has any sub-categories.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// Tree is the immutable category store rooted at an implicit root that holds
// the top-level categories.
type Tree struct {
	roots []*Node
	index map[Key]*Node
	depth int
}

// NewTree validates the supplied roots and indexes every node by path.
// Sibling names must be unique and non-empty and counts must not be negative.
func NewTree(roots []*Node) (*Tree, error) {
	t := &Tree{
		roots: roots,
		index: make(map[Key]*Node),
	}

	if err := t.indexLevel(nil, roots); err != nil {
		return nil, err
	}

	return t, nil
}

// MustTree is NewTree for fixtures that are known to be valid.
func MustTree(roots ...*Node) *Tree {
	t, err := NewTree(roots)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tree) indexLevel(parent Path, nodes []*Node) error {
	seen := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		if node == nil {
			return taxonerrors.NewValidationError(fieldFor(parent), "nil category", nil)
		}
		if strings.TrimSpace(node.Name) == "" {
			return taxonerrors.NewValidationError(fieldFor(parent), "category name is empty", nil)
		}
		path := parent.Append(node.Name)
		if ReservedInName(node.Name) {
			return taxonerrors.NewValidationError(fieldFor(parent), fmt.Sprintf("category name %q contains a control character", node.Name), nil)
		}
		if _, dup := seen[node.Name]; dup {
			return taxonerrors.NewValidationError(fieldFor(path), fmt.Sprintf("duplicate category %q", node.Name), nil)
		}
		if node.Count < 0 {
			return taxonerrors.NewValidationError(fieldFor(path), fmt.Sprintf("count %d is negative", node.Count), nil)
		}
		seen[node.Name] = struct{}{}
		t.index[path.Key()] = node
		if len(path) > t.depth {
			t.depth = len(path)
		}
		if err := t.indexLevel(path, node.Children); err != nil {
			return err
		}
	}
	return nil
}

func fieldFor(p Path) string {
	if len(p) == 0 {
		return "categories"
	}
	return "categories." + strings.Join(p, ".")
}

// Roots returns the top-level categories in declaration order.
func (t *Tree) Roots() []*Node {
	if t == nil {
		return nil
	}
	return t.roots
}

// Lookup finds the node at path.
func (t *Tree) Lookup(path Path) (*Node, bool) {
	if t == nil || len(path) == 0 {
		return nil, false
	}
	node, ok := t.index[path.Key()]
	return node, ok
}

// Contains reports whether path names a node reachable from the root.
func (t *Tree) Contains(path Path) bool {
	_, ok := t.Lookup(path)
	return ok
}

// Len returns the number of categories in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.index)
}

// Depth returns the length of the longest path.
func (t *Tree) Depth() int {
	if t == nil {
		return 0
	}
	return t.depth
}

// Total sums the counts of the top-level categories.
func (t *Tree) Total() int {
	total := 0
	for _, root := range t.Roots() {
		total += root.Count
	}
	return total
}

// Walk visits every node depth-first in pre-order. Returning false from fn
// skips the node's subtree.
func (t *Tree) Walk(fn func(path Path, node *Node) bool) {
	for _, root := range t.Roots() {
		walk(nil, root, fn)
	}
}

func walk(parent Path, node *Node, fn func(Path, *Node) bool) {
	path := parent.Append(node.Name)
	if !fn(path, node) {
		return
	}
	for _, child := range node.Children {
		walk(path, child, fn)
	}
}
