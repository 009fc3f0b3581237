package components

import (
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
)

// TreeRow is one visible line of the category tree.
//
// Layout, in cells: cursor, space, two cells of indent per depth level,
// disclosure glyph, space, name, space, count.
type TreeRow struct {
	Name        string
	Count       int
	Depth       int
	HasChildren bool
	Expanded    bool
	Selected    bool
	Cursor      bool
	// Query is highlighted inside Name when set.
	Query string
}

// DisclosureColumn is the cell holding the disclosure glyph.
func (r TreeRow) DisclosureColumn() int {
	return 2 + 2*r.Depth
}

// LabelColumn is the first cell of the name.
func (r TreeRow) LabelColumn(theme Theme) int {
	return r.DisclosureColumn() + lipgloss.Width(r.glyph(theme)) + 1
}

func (r TreeRow) glyph(theme Theme) string {
	switch {
	case !r.HasChildren:
		return theme.Glyphs.Leaf
	case r.Expanded:
		return theme.Glyphs.Expanded
	default:
		return theme.Glyphs.Collapsed
	}
}

// Render draws the row, cut to width cells when width is positive.
func (r TreeRow) Render(theme Theme, width int) string {
	cursor := " "
	if r.Cursor {
		cursor = theme.Typography.Title.Render(theme.Glyphs.Cursor)
	}

	name := r.Name
	if width > 0 {
		room := width - r.LabelColumn(theme) - len(strconv.Itoa(r.Count)) - 1
		name = truncate(name, max(room, 1), theme.Glyphs.Ellipsis)
	}

	label := theme.Typography.Body
	if r.Selected {
		label = Apply(label.Bold(true), theme, Background(PalettePrimary))
	}

	var b strings.Builder
	b.WriteString(cursor)
	b.WriteString(" ")
	b.WriteString(strings.Repeat("  ", r.Depth))
	b.WriteString(theme.Typography.Muted.Render(r.glyph(theme)))
	b.WriteString(" ")
	b.WriteString(highlight(name, r.Query, label, theme.Typography.Match))
	b.WriteString(" ")
	b.WriteString(theme.Typography.Muted.Render(strconv.Itoa(r.Count)))
	return b.String()
}

// highlight renders the first occurrence of query in name with match.
// Both sides are case folded, so "STRASSE" finds "Straße".
func highlight(name, query string, base, match lipgloss.Style) string {
	i, j, ok := matchSpan(name, query)
	if !ok {
		return base.Render(name)
	}
	return base.Render(name[:i]) + match.Inherit(base).Render(name[i:j]) + base.Render(name[j:])
}

// matchSpan returns the byte range of name covering the first case-folded
// occurrence of query, widened to whole runes of name.
func matchSpan(name, query string) (int, int, bool) {
	folder := cases.Fold()
	needle := folder.String(query)
	if needle == "" {
		return 0, 0, false
	}

	var folded strings.Builder
	var origin, starts []int
	for i, r := range name {
		origin = append(origin, i)
		starts = append(starts, folded.Len())
		folded.WriteString(folder.String(string(r)))
	}

	at := strings.Index(folded.String(), needle)
	if at < 0 {
		return 0, 0, false
	}
	end := at + len(needle)

	first := sort.Search(len(starts), func(k int) bool { return starts[k] > at }) - 1
	last := sort.Search(len(starts), func(k int) bool { return starts[k] >= end })
	j := len(name)
	if last < len(origin) {
		j = origin[last]
	}
	return origin[first], j, true
}
