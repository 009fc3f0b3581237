//go:build property
// +build property

package navigator

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
)

// TestNavigatorProperties checks the renderer and controllers against random trees.
func TestNavigatorProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	queries := gen.OneConstOf("", "web", "DESIGN", "ing", "1-", "zzz", " art ", "a")

	// Property: every visible row matches the query or has a matching descendant
	properties.Property("rows match query or lead to a match", prop.ForAll(
		func(seed int64, query string) bool {
			tree := randomTree(seed, 4)
			nav := New(tree)
			nav.ExpandAll()
			nav.SetQuery(query)

			needle := strings.ToLower(strings.TrimSpace(query))
			for row := range nav.Rows() {
				if needle == "" {
					continue
				}
				if strings.Contains(strings.ToLower(row.Name), needle) {
					continue
				}
				node, ok := tree.Lookup(row.Path)
				if !ok || !subtreeContains(node, needle) {
					return false
				}
			}
			return true
		},
		gen.Int64(),
		queries,
	))

	// Property: toggling any path twice restores the expanded set and the rows
	properties.Property("double toggle is identity", prop.ForAll(
		func(seed int64, pick int, query string) bool {
			tree := randomTree(seed, 4)
			paths := allPaths(tree)
			nav := New(tree)
			for i, p := range paths {
				if i%2 == 0 {
					nav.Expand(p)
				}
			}
			nav.SetQuery(query)

			before := nav.Expanded()
			rowsBefore := rowNames(nav.VisibleRows())

			target := paths[pick%len(paths)]
			nav.Toggle(target)
			nav.Toggle(target)

			return pathsEqual(before, nav.Expanded()) &&
				strings.Join(rowsBefore, "\n") == strings.Join(rowNames(nav.VisibleRows()), "\n")
		},
		gen.Int64(),
		gen.IntRange(0, 1000),
		queries,
	))

	// Property: select(p) then reading the selection yields p
	properties.Property("select then read yields the path", prop.ForAll(
		func(seed int64, pick int) bool {
			tree := randomTree(seed, 4)
			paths := allPaths(tree)
			nav := New(tree)
			target := paths[pick%len(paths)]
			nav.Select(target)
			return nav.Selection().Equal(target) && nav.State() == Selected &&
				strings.Join(nav.Detail().Breadcrumb, "\x00") == strings.Join(target, "\x00")
		},
		gen.Int64(),
		gen.IntRange(0, 1000),
	))

	// Property: searching never changes expansion or selection
	properties.Property("search leaves state untouched", prop.ForAll(
		func(seed int64, pick int, query string) bool {
			tree := randomTree(seed, 4)
			paths := allPaths(tree)
			nav := New(tree)
			target := paths[pick%len(paths)]
			nav.Reveal(target)
			nav.Select(target)

			expanded := nav.Expanded()
			nav.SetQuery(query)
			_ = nav.VisibleRows()
			nav.SetQuery("")

			return pathsEqual(expanded, nav.Expanded()) && nav.Selection().Equal(target)
		},
		gen.Int64(),
		gen.IntRange(0, 1000),
		queries,
	))

	properties.TestingRun(t)
}

func pathsEqual(a, b []taxonomy.Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
