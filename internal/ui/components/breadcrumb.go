package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Breadcrumb renders a path as badges joined by a marker. The last segment
// is highlighted.
type Breadcrumb struct {
	Segments []string
	Marker   string
}

// NewBreadcrumb creates a breadcrumb for segments.
func NewBreadcrumb(marker string, segments ...string) Breadcrumb {
	return Breadcrumb{Segments: segments, Marker: marker}
}

// Render draws the breadcrumb. When width is positive and the full trail
// does not fit, leading segments collapse into an ellipsis badge.
func (b Breadcrumb) Render(theme Theme, width int) string {
	if len(b.Segments) == 0 {
		return ""
	}

	out := b.render(theme, b.Segments, false)
	if width <= 0 {
		return out
	}
	for drop := 1; lipgloss.Width(out) > width && drop < len(b.Segments); drop++ {
		out = b.render(theme, b.Segments[drop:], true)
	}
	return out
}

func (b Breadcrumb) render(theme Theme, segments []string, elided bool) string {
	parts := make([]string, 0, len(segments)+1)
	if elided {
		parts = append(parts, NewBadge(theme.Glyphs.Ellipsis).Render(theme))
	}
	for i, segment := range segments {
		badge := NewBadge(segment)
		if i == len(segments)-1 {
			badge = badge.WithVariant(BadgeVariantPrimary)
		}
		parts = append(parts, badge.Render(theme))
	}

	marker := theme.Typography.Muted.Render(b.Marker)
	return strings.Join(parts, " "+marker+" ")
}
