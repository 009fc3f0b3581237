package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	taxonerrors "github.com/alexisbeaulieu97/taxon/pkg/errors"
)

// FileSource reads a document from the local filesystem.
type FileSource struct {
	Path string
}

// NewFileSource creates a file source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads the file.
func (s *FileSource) Load(ctx context.Context) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, s.Path, err
	}

	abs, err := filepath.Abs(s.Path)
	if err != nil {
		return nil, s.Path, taxonerrors.NewSourceError(s.Path, fmt.Errorf("resolve path: %w", err))
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, abs, taxonerrors.NewSourceError(s.Path, err)
	}
	if info.IsDir() {
		return nil, abs, taxonerrors.NewSourceError(s.Path, fmt.Errorf("%s is a directory", abs))
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, abs, taxonerrors.NewSourceError(s.Path, err)
	}
	return data, abs, nil
}

// Describe returns the file path.
func (s *FileSource) Describe() string {
	return s.Path
}

// WatchPath returns the absolute path to watch for live reload.
func (s *FileSource) WatchPath() (string, error) {
	return filepath.Abs(s.Path)
}
