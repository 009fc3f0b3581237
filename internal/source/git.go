package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	taxonerrors "github.com/alexisbeaulieu97/taxon/pkg/errors"
)

// GitSource reads a document from a path inside a git repository. The
// repository is cloned into a temporary directory that is removed after
// the read.
type GitSource struct {
	URL  string
	Ref  string
	Path string
}

// NewGitSource creates a git source.
func NewGitSource(url, ref, path string) *GitSource {
	return &GitSource{URL: url, Ref: ref, Path: path}
}

// Load clones the repository and reads the document.
func (s *GitSource) Load(ctx context.Context) ([]byte, string, error) {
	origin := s.Describe()

	if !filepath.IsLocal(filepath.FromSlash(s.Path)) {
		return nil, origin, taxonerrors.NewSourceError(origin, fmt.Errorf("document path %q must stay inside the repository", s.Path))
	}

	dir, err := os.MkdirTemp("", "taxon-git-*")
	if err != nil {
		return nil, origin, taxonerrors.NewSourceError(origin, err)
	}
	defer os.RemoveAll(dir)

	if _, err := git.PlainCloneContext(ctx, dir, false, s.cloneOptions()); err != nil {
		return nil, origin, taxonerrors.NewSourceError(origin, fmt.Errorf("failed to clone repository: %w", err))
	}

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(s.Path)))
	if err != nil {
		return nil, origin, taxonerrors.NewSourceError(origin, err)
	}
	return data, origin, nil
}

func (s *GitSource) cloneOptions() *git.CloneOptions {
	opts := &git.CloneOptions{
		URL: s.URL,
	}
	if isRemote(s.URL) {
		opts.Depth = 1
	}
	if s.Ref != "" {
		if strings.HasPrefix(s.Ref, "refs/") {
			opts.ReferenceName = plumbing.ReferenceName(s.Ref)
		} else {
			opts.ReferenceName = plumbing.NewBranchReferenceName(s.Ref)
		}
		opts.SingleBranch = true
	}
	return opts
}

// isRemote reports whether url needs a network transport. Shallow clones
// are only requested from remotes.
func isRemote(url string) bool {
	return strings.Contains(url, "://") && !strings.HasPrefix(url, "file://") ||
		strings.HasPrefix(url, "git@")
}

// Describe returns url#path, plus @ref when set.
func (s *GitSource) Describe() string {
	label := s.URL + "#" + s.Path
	if s.Ref != "" {
		label += "@" + s.Ref
	}
	return label
}
