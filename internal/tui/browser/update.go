package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/taxon/internal/navigator"
	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
)

const tooSmallPrefix = "Terminal too small"

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.search.Width = max(msg.Width-len(m.search.Prompt)-2, 10)

		if m.tooSmall() {
			m.showError = true
			m.errorMsg = fmt.Sprintf("%s (%dx%d). Minimum size: %dx%d",
				tooSmallPrefix, m.width, m.height, minWidth, minHeight)
		} else if m.showError && strings.HasPrefix(m.errorMsg, tooSmallPrefix) {
			m.showError = false
			m.errorMsg = ""
		}
		m.ensureVisible()
		return m, nil

	case tea.KeyMsg:
		if m.focus == FocusSearch {
			return m.handleSearchKeys(msg)
		}
		return m.handleTreeKeys(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case FileChangedMsg:
		m.log.WithFields(map[string]any{"path": msg.Change.Path, "op": msg.Change.Op.String()}).Info("document changed, reloading")
		var cmds []tea.Cmd
		if m.watcher != nil {
			cmds = append(cmds, waitForChangeCmd(m.watcher))
		}
		if m.loader != nil && !m.reloading {
			m.reloading = true
			cmds = append(cmds, reloadCmd(m.loader))
		}
		if len(cmds) == 0 {
			return m, nil
		}
		return m, tea.Batch(cmds...)

	case WatchStoppedMsg:
		m.watcher = nil
		return m, nil

	case ReloadedMsg:
		path := m.currentPath()
		m.reloading = false
		m.reloadFailed = false
		m.nav.Replace(msg.Tree)
		if msg.Origin != "" {
			m.origin = msg.Origin
		}
		m.lastReload = msg.At
		m.follow(path)
		if m.showError && !strings.HasPrefix(m.errorMsg, tooSmallPrefix) {
			m.showError = false
			m.errorMsg = ""
		}
		m.log.WithFields(map[string]any{"nodes": msg.Tree.Len()}).Info("taxonomy reloaded")
		return m, nil

	case ReloadErrorMsg:
		m.reloading = false
		m.reloadFailed = true
		m.showError = true
		m.errorMsg = fmt.Sprintf("Reload failed: %v", msg.Err)
		m.log.Error(msg.Err, "reload failed")
		return m, nil

	case ErrorMsg:
		m.showError = true
		m.errorMsg = msg.Message
		return m, nil

	case ClearErrorMsg:
		m.showError = false
		m.errorMsg = ""
		return m, nil
	}

	// Anything else (cursor blink) belongs to the search box.
	if m.focus == FocusSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleTreeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		if m.showError {
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.MoveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.MoveCursor(-m.treeRows())
	case key.Matches(msg, m.keys.PageDown):
		m.MoveCursor(m.treeRows())
	case key.Matches(msg, m.keys.Home):
		m.setCursor(0, len(m.nav.VisibleRows()))
	case key.Matches(msg, m.keys.End):
		rows := len(m.nav.VisibleRows())
		m.setCursor(rows-1, rows)

	case key.Matches(msg, m.keys.Expand):
		m.expandOrDescend()
	case key.Matches(msg, m.keys.Collapse):
		m.collapseOrAscend()
	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.CurrentRow(); ok && row.HasChildren {
			m.nav.Toggle(row.Path)
			m.follow(row.Path)
		}
	case key.Matches(msg, m.keys.Select):
		if row, ok := m.CurrentRow(); ok {
			m.nav.Select(row.Path)
		}
	case key.Matches(msg, m.keys.ExpandAll):
		path := m.currentPath()
		m.nav.ExpandAll()
		m.follow(path)
	case key.Matches(msg, m.keys.CollapseAll):
		path := m.currentPath()
		m.nav.CollapseAll()
		m.follow(topLevel(path))

	case key.Matches(msg, m.keys.Search):
		m.focus = FocusSearch
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Back):
		switch {
		case m.nav.Searching():
			path := m.currentPath()
			m.search.SetValue("")
			m.nav.SetQuery("")
			m.follow(path)
		case m.nav.HasSelection():
			m.nav.Clear()
		}

	case key.Matches(msg, m.keys.Reload):
		if m.loader != nil && !m.reloading {
			m.reloading = true
			return m, reloadCmd(m.loader)
		}
	}

	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "enter":
		m.focus = FocusTree
		m.search.Blur()
		return m, nil
	case "up":
		m.MoveCursor(-1)
		return m, nil
	case "down":
		m.MoveCursor(1)
		return m, nil
	}

	path := m.currentPath()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.nav.Query() {
		m.nav.SetQuery(m.search.Value())
		m.follow(path)
	}
	return m, cmd
}

// expandOrDescend opens a collapsed branch, or steps into an open one.
func (m *Model) expandOrDescend() {
	row, ok := m.CurrentRow()
	if !ok || !row.HasChildren {
		return
	}
	if !row.Expanded {
		m.nav.Expand(row.Path)
		m.follow(row.Path)
		return
	}
	m.MoveCursor(1)
}

// collapseOrAscend closes a branch the user opened, otherwise jumps to the
// parent row. Branches held open by the search cannot be collapsed.
func (m *Model) collapseOrAscend() {
	row, ok := m.CurrentRow()
	if !ok {
		return
	}
	if row.Expanded && !row.AutoExpanded {
		m.nav.Collapse(row.Path)
		m.follow(row.Path)
		return
	}
	if parent := row.Path.Parent(); parent != nil {
		m.follow(parent)
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.MoveCursor(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.MoveCursor(1)
		return m, nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
	default:
		return m, nil
	}

	row, index, ok := m.rowAt(msg.Y)
	if !ok {
		return m, nil
	}
	// Columns inside the panel start after its border and padding.
	column := msg.X - 2
	if column < 0 || msg.X >= m.treeWidth() {
		return m, nil
	}

	m.setCursor(index, len(m.nav.VisibleRows()))
	cell := m.treeRow(row, false)
	switch {
	case column == cell.DisclosureColumn():
		if row.HasChildren {
			m.nav.Toggle(row.Path)
			m.follow(row.Path)
		}
	case column >= cell.LabelColumn(m.theme):
		m.nav.Select(row.Path)
	}
	return m, nil
}

// rowAt maps a screen line to a visible row.
func (m Model) rowAt(y int) (navigator.Row, int, bool) {
	line := y - m.panelTop() - panelChromeTop
	if line < 0 || line >= m.treeRows() {
		return navigator.Row{}, 0, false
	}
	index := m.scrollOffset + line
	rows := m.nav.VisibleRows()
	if index >= len(rows) {
		return navigator.Row{}, 0, false
	}
	return rows[index], index, true
}

func topLevel(path taxonomy.Path) taxonomy.Path {
	if len(path) == 0 {
		return nil
	}
	return path[:1]
}
