package browser

import (
	"time"

	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
	"github.com/alexisbeaulieu97/taxon/internal/watch"
)

// FileChangedMsg reports a debounced change of the watched document.
type FileChangedMsg struct {
	Change watch.Change
}

// WatchStoppedMsg is sent once the watcher has been closed.
type WatchStoppedMsg struct{}

// ReloadedMsg carries a freshly loaded tree.
type ReloadedMsg struct {
	Tree   *taxonomy.Tree
	Origin string
	At     time.Time
}

// ReloadErrorMsg reports a failed reload. The previous tree stays in use.
type ReloadErrorMsg struct {
	Err error
}

// ErrorMsg shows an arbitrary message in the error banner.
type ErrorMsg struct {
	Message string
}

// ClearErrorMsg dismisses the error banner.
type ClearErrorMsg struct{}
