package navigator

import (
	"iter"

	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
)

// Row is one visible line of the tree.
type Row struct {
	Path        taxonomy.Path
	Name        string
	Count       int
	Depth       int
	HasChildren bool
	// Expanded is true when the row's children are being shown, either
	// because the user expanded it or because the search opened it.
	Expanded bool
	// AutoExpanded is true when only the search keeps the row open.
	AutoExpanded bool
	Selected     bool
	// Matched is true when the row's own name contains the query.
	Matched bool
}

// Rows walks the tree depth-first in pre-order and yields the visible rows.
//
// With an empty query a node's children are visited only if the node is in
// the expanded set. With a query, nodes whose subtree holds no match are
// skipped entirely and nodes with a matching descendant are opened even
// when collapsed.
func (n *Navigator) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		var hits map[taxonomy.Key]bool
		if n.Searching() {
			hits = n.descendantHits()
		}
		n.emit(nil, n.tree.Roots(), 0, hits, yield)
	}
}

// VisibleRows collects Rows into a slice.
func (n *Navigator) VisibleRows() []Row {
	var rows []Row
	for row := range n.Rows() {
		rows = append(rows, row)
	}
	return rows
}

func (n *Navigator) emit(parent taxonomy.Path, nodes []*taxonomy.Node, depth int, hits map[taxonomy.Key]bool, yield func(Row) bool) bool {
	for _, node := range nodes {
		path := parent.Append(node.Name)
		key := path.Key()

		matched := n.Matches(node.Name)
		descendant := false
		if hits != nil {
			descendant = hits[key]
			if !matched && !descendant {
				continue
			}
		}

		_, explicit := n.expanded[key]
		open := node.HasChildren() && (explicit || descendant)

		row := Row{
			Path:         path,
			Name:         node.Name,
			Count:        node.Count,
			Depth:        depth,
			HasChildren:  node.HasChildren(),
			Expanded:     open,
			AutoExpanded: open && !explicit,
			Selected:     path.Equal(n.selection),
			Matched:      hits != nil && matched,
		}
		if !yield(row) {
			return false
		}

		if open && !n.emit(path, node.Children, depth+1, hits, yield) {
			return false
		}
	}
	return true
}

// descendantHits records, for every node, whether any strict descendant
// matches the query. One post-order pass keeps rendering linear in tree size.
func (n *Navigator) descendantHits() map[taxonomy.Key]bool {
	hits := make(map[taxonomy.Key]bool, n.tree.Len())
	var visit func(parent taxonomy.Path, node *taxonomy.Node) bool
	visit = func(parent taxonomy.Path, node *taxonomy.Node) bool {
		path := parent.Append(node.Name)
		found := false
		for _, child := range node.Children {
			if visit(path, child) {
				found = true
			}
		}
		if found {
			hits[path.Key()] = true
		}
		return found || n.Matches(node.Name)
	}
	for _, root := range n.tree.Roots() {
		visit(nil, root)
	}
	return hits
}
