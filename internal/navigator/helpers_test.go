package navigator

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
)

func contentTree() *taxonomy.Tree {
	return taxonomy.MustTree(
		&taxonomy.Node{Name: "Technology", Count: 245, Children: []*taxonomy.Node{
			{Name: "Web Development", Count: 89},
			{Name: "AI/ML", Count: 67, Children: []*taxonomy.Node{
				{Name: "Deep Learning", Count: 30},
				{Name: "Computer Vision", Count: 12},
			}},
		}},
		&taxonomy.Node{Name: "Design", Count: 120, Children: []*taxonomy.Node{
			{Name: "UI Design", Count: 45},
		}},
		&taxonomy.Node{Name: "Business", Count: 98},
	)
}

func rowNames(rows []Row) []string {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, strings.Repeat("  ", row.Depth)+row.Name)
	}
	return names
}

var vocabulary = []string{"Web", "Design", "Learning", "Data", "Cloud", "Mobile", "Security", "Art"}

// randomTree builds a deterministic tree from seed with up to maxDepth levels.
func randomTree(seed int64, maxDepth int) *taxonomy.Tree {
	rng := rand.New(rand.NewSource(seed))
	var build func(depth int) []*taxonomy.Node
	build = func(depth int) []*taxonomy.Node {
		if depth >= maxDepth {
			return nil
		}
		width := rng.Intn(4)
		if depth == 0 {
			width++
		}
		nodes := make([]*taxonomy.Node, 0, width)
		for i := 0; i < width; i++ {
			name := fmt.Sprintf("%s %d-%d", vocabulary[rng.Intn(len(vocabulary))], depth, i)
			nodes = append(nodes, &taxonomy.Node{
				Name:     name,
				Count:    rng.Intn(500),
				Children: build(depth + 1),
			})
		}
		return nodes
	}
	return taxonomy.MustTree(build(0)...)
}

func allPaths(tree *taxonomy.Tree) []taxonomy.Path {
	var paths []taxonomy.Path
	tree.Walk(func(path taxonomy.Path, _ *taxonomy.Node) bool {
		paths = append(paths, path)
		return true
	})
	return paths
}

func subtreeContains(node *taxonomy.Node, query string) bool {
	for _, child := range node.Children {
		if strings.Contains(strings.ToLower(child.Name), query) || subtreeContains(child, query) {
			return true
		}
	}
	return false
}
