package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
)

func TestOutline(t *testing.T) {
	t.Parallel()

	tree := taxonomy.MustTree(
		&taxonomy.Node{Name: "Technology", Count: 245, Children: []*taxonomy.Node{
			{Name: "AI/ML", Count: 67, Children: []*taxonomy.Node{{Name: "Deep Learning", Count: 30}}},
		}},
		&taxonomy.Node{Name: "Business", Count: 98},
	)

	want := "Technology (245)\n  AI/ML (67)\n    Deep Learning (30)\nBusiness (98)\n"
	assert.Equal(t, want, string(Outline(tree)))
	assert.Empty(t, Outline(nil))
}

func TestGenerateUnifiedDiffIdenticalContent(t *testing.T) {
	t.Parallel()

	content := []byte("line1\nline2\n")
	assert.Equal(t, "", GenerateUnifiedDiff(content, content, "a", "b"))
}

func TestGenerateUnifiedDiffSingleLineChange(t *testing.T) {
	t.Parallel()

	result := GenerateUnifiedDiff(
		[]byte("line1\nline2\nline3\n"),
		[]byte("line1\nmodified\nline3\n"),
		"before.yaml", "after.yaml",
	)

	want := strings.Join([]string{
		"--- before.yaml",
		"+++ after.yaml",
		"@@ -1,3 +1,3 @@",
		" line1",
		"-line2",
		"+modified",
		" line3",
		"",
	}, "\n")
	assert.Equal(t, want, result)
}

func TestGenerateUnifiedDiffOutlines(t *testing.T) {
	t.Parallel()

	before := taxonomy.MustTree(&taxonomy.Node{Name: "Design", Count: 120, Children: []*taxonomy.Node{{Name: "UI Design", Count: 45}}})
	after := taxonomy.MustTree(&taxonomy.Node{Name: "Design", Count: 121, Children: []*taxonomy.Node{{Name: "UI Design", Count: 45}, {Name: "Motion", Count: 1}}})

	result := GenerateUnifiedDiff(Outline(before), Outline(after), "old", "new")
	assert.Contains(t, result, "-Design (120)\n")
	assert.Contains(t, result, "+Design (121)\n")
	assert.Contains(t, result, "   UI Design (45)\n")
	assert.Contains(t, result, "+  Motion (1)\n")
}

func TestGenerateUnifiedDiffTruncatesLargeOutput(t *testing.T) {
	t.Parallel()

	var before, after strings.Builder
	for i := range maxDiffLines {
		fmt.Fprintf(&before, "old %d\n", i)
		fmt.Fprintf(&after, "new %d\n", i)
	}

	result := GenerateUnifiedDiff([]byte(before.String()), []byte(after.String()), "a", "b")
	require.True(t, strings.HasSuffix(result, truncateMessage+"\n"))
	assert.Equal(t, maxDiffLines+2, len(strings.Split(result, "\n")))
}
