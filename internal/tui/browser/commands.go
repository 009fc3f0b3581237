package browser

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
	"github.com/alexisbeaulieu97/taxon/internal/watch"
)

// Loader produces the current tree and the origin it was read from.
type Loader func(ctx context.Context) (*taxonomy.Tree, string, error)

const reloadTimeout = 30 * time.Second

// reloadCmd runs loader asynchronously.
func reloadCmd(loader Loader) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reloadTimeout)
		defer cancel()

		tree, origin, err := loader(ctx)
		if err != nil {
			return ReloadErrorMsg{Err: err}
		}
		return ReloadedMsg{Tree: tree, Origin: origin, At: time.Now()}
	}
}

// waitForChangeCmd blocks until the watcher reports the next change.
func waitForChangeCmd(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		change, err := w.Next(context.Background())
		if err != nil {
			return WatchStoppedMsg{}
		}
		return FileChangedMsg{Change: change}
	}
}
