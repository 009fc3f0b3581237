package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/taxon/internal/navigator"
	"github.com/alexisbeaulieu97/taxon/internal/ui/components"
)

const noMatches = "No categories match the search."

// View renders the current model state.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.tooSmall() {
		return m.renderErrorBanner()
	}

	sections := []string{m.renderHeader(), m.renderSearch()}
	if m.showError {
		sections = append(sections, m.renderErrorBanner())
	}
	sections = append(sections,
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderTreePanel(), m.renderDetailPanel()),
		m.renderFooter(),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Typography.Title.Render("Taxon")
	tree := m.nav.Tree()

	stats := fmt.Sprintf("%d categories · %d items", tree.Len(), tree.Total())
	if m.nav.Searching() {
		stats += fmt.Sprintf(" · %d matching", m.nav.MatchCount())
	}

	parts := []string{title}
	if m.origin != "" {
		origin := components.Apply(m.theme.Typography.Subtitle, m.theme, components.Foreground(components.PaletteSecondary))
		parts = append(parts, origin.Render(m.origin))
	}
	parts = append(parts, m.theme.Typography.Muted.Render(stats))
	if badge, ok := m.reloadBadge(); ok {
		parts = append(parts, badge.Render(m.theme))
	}
	return truncateLine(strings.Join(parts, "  "), m.width)
}

// reloadBadge reports the state of the last reload, if there was one.
func (m Model) reloadBadge() (components.Badge, bool) {
	switch {
	case m.reloading:
		return components.NewBadge("reloading").WithVariant(components.BadgeVariantWarning), true
	case m.reloadFailed:
		return components.NewBadge("reload failed").WithVariant(components.BadgeVariantError), true
	case !m.lastReload.IsZero():
		return components.NewBadge("reloaded " + m.lastReload.Format("15:04:05")).WithVariant(components.BadgeVariantSuccess), true
	}
	return components.Badge{}, false
}

func (m Model) renderSearch() string {
	if m.focus == FocusSearch || m.nav.Query() != "" {
		return m.search.View()
	}
	return m.theme.Typography.Muted.Render("Press / to search")
}

func (m Model) renderErrorBanner() string {
	style := components.Apply(lipgloss.NewStyle().Bold(true).Padding(0, 1), m.theme, components.Background(components.PaletteDanger))
	text := m.errorMsg
	if !strings.HasPrefix(text, tooSmallPrefix) {
		text += "  (x to dismiss)"
	}
	return style.Render(truncateLine(text, max(m.width-2, 1)))
}

func (m Model) renderTreePanel() string {
	width := m.treeWidth()
	inner := width - 4

	rows := m.nav.VisibleRows()
	var body []string
	if len(rows) == 0 {
		msg := "This taxonomy has no categories."
		if m.nav.Searching() {
			msg = noMatches
		}
		body = append(body, m.theme.Typography.Muted.Render(msg))
	}

	end := min(m.scrollOffset+m.treeRows(), len(rows))
	for i := m.scrollOffset; i < end; i++ {
		body = append(body, m.treeRow(rows[i], i == m.cursor).Render(m.theme, inner))
	}

	title := "Categories"
	if m.scrollOffset > 0 || end < len(rows) {
		title = fmt.Sprintf("Categories (%d-%d of %d)", m.scrollOffset+1, end, len(rows))
	}

	return components.Panel{
		Title:   title,
		Body:    strings.Join(body, "\n"),
		Width:   width,
		Height:  m.panelHeight(),
		Focused: m.focus == FocusTree,
	}.Render(m.theme)
}

func (m Model) treeRow(row navigator.Row, cursor bool) components.TreeRow {
	return components.TreeRow{
		Name:        row.Name,
		Count:       row.Count,
		Depth:       row.Depth,
		HasChildren: row.HasChildren,
		Expanded:    row.Expanded,
		Selected:    row.Selected,
		Cursor:      cursor,
		Query:       strings.TrimSpace(m.nav.Query()),
	}
}

func (m Model) renderDetailPanel() string {
	width := m.detailWidth()
	inner := width - 4
	detail := m.nav.Detail()

	var body []string
	if detail.Empty {
		body = append(body, m.theme.Typography.Muted.Render(wrap(detail.Description, inner)))
	} else {
		body = append(body,
			components.NewBreadcrumb(detail.Marker, detail.Breadcrumb...).Render(m.theme, inner),
			"",
			m.theme.Typography.Emphasis.Render(detail.Title)+"  "+components.CountBadge(detail.Count).Render(m.theme),
			"",
			m.theme.Typography.Body.Render(wrap(detail.Description, inner)),
		)
	}

	return components.Panel{
		Title:  "Details",
		Body:   strings.Join(body, "\n"),
		Width:  width,
		Height: m.panelHeight(),
	}.Render(m.theme)
}

func (m Model) renderFooter() string {
	return m.help.View(m.keys)
}

func wrap(text string, width int) string {
	return lipgloss.NewStyle().Width(max(width, 1)).Render(text)
}

func truncateLine(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
