// Package navigator holds the interactive state of a category browser:
// which branches are expanded, which category is selected and what the
// search box contains. It turns that state plus an immutable taxonomy.Tree
// into the sequence of rows a view should draw.
//
// The navigator is single-threaded. Every operation runs to completion in
// the caller's goroutine, which is what an event loop such as bubbletea's
// Update expects.
package navigator

import (
	"strings"
	"text/template"

	"golang.org/x/text/cases"

	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
)

// State describes whether a category is currently selected.
type State int

const (
	Idle State = iota
	Selected
)

func (s State) String() string {
	switch s {
	case Selected:
		return "selected"
	default:
		return "idle"
	}
}

// Navigator combines the tree store with expansion, selection and search state.
type Navigator struct {
	tree      *taxonomy.Tree
	expanded  map[taxonomy.Key]struct{}
	selection taxonomy.Path
	query     string
	folded    string
	folder    cases.Caser

	marker      string
	description *template.Template
}

// Option customises a Navigator at construction time.
type Option func(*Navigator)

// WithMarker sets the separator drawn between breadcrumb badges.
func WithMarker(marker string) Option {
	return func(n *Navigator) {
		if marker != "" {
			n.marker = marker
		}
	}
}

// WithDescription replaces the detail panel template. A nil template is ignored.
func WithDescription(tmpl *template.Template) Option {
	return func(n *Navigator) {
		if tmpl != nil {
			n.description = tmpl
		}
	}
}

// New creates a navigator over tree with nothing expanded or selected.
func New(tree *taxonomy.Tree, opts ...Option) *Navigator {
	n := &Navigator{
		tree:        tree,
		expanded:    make(map[taxonomy.Key]struct{}),
		folder:      cases.Fold(),
		marker:      DefaultMarker,
		description: defaultDescription,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Tree returns the tree currently being navigated.
func (n *Navigator) Tree() *taxonomy.Tree {
	return n.tree
}

// Replace swaps in a reloaded tree. Expanded paths and a selection that no
// longer exist are dropped so no state refers to a missing node.
func (n *Navigator) Replace(tree *taxonomy.Tree) {
	n.tree = tree
	for key := range n.expanded {
		if !tree.Contains(taxonomy.ParseKey(key)) {
			delete(n.expanded, key)
		}
	}
	if len(n.selection) > 0 && !tree.Contains(n.selection) {
		n.selection = nil
	}
}

// Toggle flips whether path is expanded. Paths are expected to come from
// rendered rows; toggling an unknown path only records it in the set.
func (n *Navigator) Toggle(path taxonomy.Path) {
	key := path.Key()
	if _, ok := n.expanded[key]; ok {
		delete(n.expanded, key)
		return
	}
	n.expanded[key] = struct{}{}
}

// Expand marks path as expanded.
func (n *Navigator) Expand(path taxonomy.Path) {
	n.expanded[path.Key()] = struct{}{}
}

// Collapse removes path from the expanded set.
func (n *Navigator) Collapse(path taxonomy.Path) {
	delete(n.expanded, path.Key())
}

// IsExpanded reports whether path was explicitly expanded.
func (n *Navigator) IsExpanded(path taxonomy.Path) bool {
	_, ok := n.expanded[path.Key()]
	return ok
}

// Reveal expands every ancestor of path so the node itself becomes visible.
func (n *Navigator) Reveal(path taxonomy.Path) {
	for i := 1; i < len(path); i++ {
		n.Expand(path[:i])
	}
}

// ExpandAll expands every category that has children.
func (n *Navigator) ExpandAll() {
	n.tree.Walk(func(path taxonomy.Path, node *taxonomy.Node) bool {
		if node.HasChildren() {
			n.expanded[path.Key()] = struct{}{}
		}
		return true
	})
}

// CollapseAll empties the expanded set.
func (n *Navigator) CollapseAll() {
	clear(n.expanded)
}

// Expanded lists the expanded categories in tree order.
func (n *Navigator) Expanded() []taxonomy.Path {
	var out []taxonomy.Path
	n.tree.Walk(func(path taxonomy.Path, _ *taxonomy.Node) bool {
		if _, ok := n.expanded[path.Key()]; ok {
			out = append(out, path)
		}
		return true
	})
	return out
}

// Select makes path the active category, replacing any prior selection.
func (n *Navigator) Select(path taxonomy.Path) {
	n.selection = path.Clone()
}

// Clear drops the selection.
func (n *Navigator) Clear() {
	n.selection = nil
}

// Selection returns a copy of the selected path, empty when Idle.
func (n *Navigator) Selection() taxonomy.Path {
	return n.selection.Clone()
}

// HasSelection reports whether a category is selected.
func (n *Navigator) HasSelection() bool {
	return len(n.selection) > 0
}

// State reports Idle or Selected.
func (n *Navigator) State() State {
	if n.HasSelection() {
		return Selected
	}
	return Idle
}

// SetQuery updates the search filter. Leading and trailing whitespace is
// ignored. The expanded set is never touched by searching, so clearing the
// query shows exactly the pre-search expansion state.
func (n *Navigator) SetQuery(query string) {
	n.query = query
	n.folded = n.folder.String(strings.TrimSpace(query))
}

// Query returns the raw search text.
func (n *Navigator) Query() string {
	return n.query
}

// Searching reports whether a non-blank query is active.
func (n *Navigator) Searching() bool {
	return n.folded != ""
}

// Matches reports whether name contains the active query, ignoring case.
// Every name matches an empty query.
func (n *Navigator) Matches(name string) bool {
	if n.folded == "" {
		return true
	}
	return strings.Contains(n.folder.String(name), n.folded)
}

// MatchCount returns how many categories match the active query.
func (n *Navigator) MatchCount() int {
	if !n.Searching() {
		return 0
	}
	count := 0
	n.tree.Walk(func(_ taxonomy.Path, node *taxonomy.Node) bool {
		if n.Matches(node.Name) {
			count++
		}
		return true
	})
	return count
}
