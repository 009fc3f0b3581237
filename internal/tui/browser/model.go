// Package browser is the interactive category tree navigator.
package browser

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/taxon/internal/logger"
	"github.com/alexisbeaulieu97/taxon/internal/navigator"
	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
	"github.com/alexisbeaulieu97/taxon/internal/ui/components"
	"github.com/alexisbeaulieu97/taxon/internal/watch"
)

// Focus is the widget receiving key presses.
type Focus int

const (
	FocusTree Focus = iota
	FocusSearch
)

const (
	minWidth  = 60
	minHeight = 12

	// Lines above the panels: title bar and search bar.
	headerLines = 2
	// Border and title line at the top of a panel, border at the bottom.
	panelChromeTop    = 2
	panelChromeBottom = 1
)

// Options configures a Model.
type Options struct {
	Theme   components.Theme
	Keys    *KeyMap
	Origin  string
	Loader  Loader
	Watcher *watch.Watcher
	Logger  *logger.Logger
}

// Model is the browser's bubbletea model. The navigator is shared by
// pointer, so copies of the model observe the same tree state.
type Model struct {
	nav    *navigator.Navigator
	keys   KeyMap
	help   help.Model
	search textinput.Model
	theme  components.Theme

	focus        Focus
	cursor       int
	scrollOffset int

	showError bool
	errorMsg  string

	origin       string
	loader       Loader
	watcher      *watch.Watcher
	log          *logger.Logger
	reloading    bool
	reloadFailed bool
	lastReload   time.Time

	width  int
	height int
}

// NewModel creates a browser around nav.
func NewModel(nav *navigator.Navigator, opts Options) Model {
	keys := DefaultKeyMap()
	if opts.Keys != nil {
		keys = *opts.Keys
	}
	theme := opts.Theme
	if theme.Name == "" {
		theme = components.DefaultTheme()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "type to filter categories"
	search.CharLimit = 120
	search.SetValue(nav.Query())

	return Model{
		nav:     nav,
		keys:    keys,
		help:    help.New(),
		search:  search,
		theme:   theme,
		origin:  opts.Origin,
		loader:  opts.Loader,
		watcher: opts.Watcher,
		log:     opts.Logger.Component("browser"),
		width:   80,
		height:  24,
	}
}

// Init starts listening to the watcher, when there is one.
func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForChangeCmd(m.watcher)
}

// Navigator exposes the underlying navigator.
func (m Model) Navigator() *navigator.Navigator {
	return m.nav
}

// Cursor returns the index of the highlighted row.
func (m Model) Cursor() int {
	return m.cursor
}

// Focus returns the focused widget.
func (m Model) Focus() Focus {
	return m.focus
}

// ErrorMessage returns the banner text, or "" when the banner is hidden.
func (m Model) ErrorMessage() string {
	if !m.showError {
		return ""
	}
	return m.errorMsg
}

// CurrentRow returns the highlighted row.
func (m Model) CurrentRow() (navigator.Row, bool) {
	rows := m.nav.VisibleRows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return navigator.Row{}, false
	}
	return rows[m.cursor], true
}

// MoveCursor moves the highlight by delta rows, stopping at either end.
func (m *Model) MoveCursor(delta int) {
	m.setCursor(m.cursor+delta, len(m.nav.VisibleRows()))
}

func (m *Model) setCursor(index, total int) {
	if total == 0 {
		m.cursor = 0
		m.scrollOffset = 0
		return
	}
	m.cursor = min(max(index, 0), total-1)
	m.ensureVisible()
}

// follow keeps the cursor on path after the visible rows changed. When
// path is gone the cursor stays at the same index, clamped.
func (m *Model) follow(path taxonomy.Path) {
	rows := m.nav.VisibleRows()
	for i, row := range rows {
		if row.Path.Equal(path) {
			m.setCursor(i, len(rows))
			return
		}
	}
	m.setCursor(m.cursor, len(rows))
}

func (m *Model) currentPath() taxonomy.Path {
	if row, ok := m.CurrentRow(); ok {
		return row.Path
	}
	return nil
}

func (m *Model) ensureVisible() {
	visible := m.treeRows()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// panelTop is the screen line of each panel's top border.
func (m Model) panelTop() int {
	top := headerLines
	if m.showError {
		top++
	}
	return top
}

func (m Model) panelHeight() int {
	footer := lipgloss.Height(m.help.View(m.keys))
	return max(m.height-m.panelTop()-footer, panelChromeTop+panelChromeBottom+1)
}

// treeRows is how many tree rows fit in the tree panel.
func (m Model) treeRows() int {
	return max(m.panelHeight()-panelChromeTop-panelChromeBottom, 1)
}

func (m Model) treeWidth() int {
	return max(m.width*11/20, 24)
}

func (m Model) detailWidth() int {
	return max(m.width-m.treeWidth(), 20)
}

func (m Model) tooSmall() bool {
	return m.width < minWidth || m.height < minHeight
}
