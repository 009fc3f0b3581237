package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/taxon/internal/config"
	taxonerrors "github.com/alexisbeaulieu97/taxon/pkg/errors"
)

const document = "version: \"1.0\"\nname: Remote\ncategories:\n  Technology: 3\n"

func TestResolve(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		location string
		opts     Options
		check    func(t *testing.T, src Source)
	}{
		{
			name:     "local file",
			location: "./taxonomy.yaml",
			check: func(t *testing.T, src Source) {
				file, ok := src.(*FileSource)
				require.True(t, ok)
				require.Equal(t, "./taxonomy.yaml", file.Path)
			},
		},
		{
			name:     "https url",
			location: "https://example.com/taxonomy.yaml",
			check: func(t *testing.T, src Source) {
				_, ok := src.(*HTTPSource)
				require.True(t, ok)
				require.Equal(t, "https://example.com/taxonomy.yaml", src.Describe())
			},
		},
		{
			name:     "git url with fragment",
			location: "git+https://example.com/catalog.git#docs/taxonomy.yaml",
			opts:     Options{GitRef: "main"},
			check: func(t *testing.T, src Source) {
				g, ok := src.(*GitSource)
				require.True(t, ok)
				require.Equal(t, "https://example.com/catalog.git", g.URL)
				require.Equal(t, "docs/taxonomy.yaml", g.Path)
				require.Equal(t, "main", g.Ref)
				require.Equal(t, "https://example.com/catalog.git#docs/taxonomy.yaml@main", g.Describe())
			},
		},
		{
			name:     "git path flag forces git and defaults",
			location: "/srv/catalog",
			opts:     Options{GitPath: "cats.yaml"},
			check: func(t *testing.T, src Source) {
				g, ok := src.(*GitSource)
				require.True(t, ok)
				require.Equal(t, "/srv/catalog", g.URL)
				require.Equal(t, "cats.yaml", g.Path)
			},
		},
		{
			name:     "git without path uses default document",
			location: "git+https://example.com/catalog.git",
			check: func(t *testing.T, src Source) {
				g, ok := src.(*GitSource)
				require.True(t, ok)
				require.Equal(t, DefaultDocument, g.Path)
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			src, err := Resolve(tc.location, tc.opts)
			require.NoError(t, err)
			tc.check(t, src)
		})
	}

	_, err := Resolve("  ", Options{})
	require.Error(t, err)
}

func TestFileSourceLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))

	data, origin, err := NewFileSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, document, string(data))
	require.Equal(t, path, origin)

	_, _, err = NewFileSource(dir).Load(context.Background())
	var sourceErr *taxonerrors.SourceError
	require.ErrorAs(t, err, &sourceErr)
	require.Contains(t, err.Error(), "is a directory")

	_, _, err = NewFileSource(filepath.Join(dir, "missing.yaml")).Load(context.Background())
	require.ErrorAs(t, err, &sourceErr)
}

func TestFileSourceHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewFileSource("whatever.yaml").Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHTTPSourceLoad(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/taxonomy.yaml":
			if !strings.Contains(r.Header.Get("Accept"), "application/yaml") {
				http.Error(w, "unexpected accept header", http.StatusNotAcceptable)
				return
			}
			w.Header().Set("Content-Type", "application/yaml")
			_, _ = w.Write([]byte(document))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	data, origin, err := NewHTTPSource(server.URL+"/taxonomy.yaml", time.Second, 0).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, document, string(data))
	require.Equal(t, server.URL+"/taxonomy.yaml", origin)

	_, _, err = NewHTTPSource(server.URL+"/missing.yaml", time.Second, 0).Load(context.Background())
	var sourceErr *taxonerrors.SourceError
	require.ErrorAs(t, err, &sourceErr)
	require.Contains(t, err.Error(), "404")
}

func TestHTTPSourceKeepsBodyVerbatim(t *testing.T) {
	t.Parallel()

	indented := "  version: \"1.0\"\n  name: Remote\n  categories:\n    Technology: 3\n\n"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte(indented))
	}))
	t.Cleanup(server.Close)

	data, origin, err := NewHTTPSource(server.URL, time.Second, 0).Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, indented, string(data))

	doc, tree, err := config.LoadTree(data, origin)
	require.NoError(t, err)
	require.Equal(t, "Remote", doc.Name)
	require.Equal(t, 1, tree.Len())
}

func TestGitSourceLoad(t *testing.T) {
	t.Parallel()

	repoDir := initGitRepo(t, map[string]string{"docs/taxonomy.yaml": document})

	data, origin, err := NewGitSource(repoDir, "", "docs/taxonomy.yaml").Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, document, string(data))
	require.Equal(t, repoDir+"#docs/taxonomy.yaml", origin)

	_, _, err = NewGitSource(repoDir, "", "missing.yaml").Load(context.Background())
	var sourceErr *taxonerrors.SourceError
	require.ErrorAs(t, err, &sourceErr)

	_, _, err = NewGitSource(repoDir, "", "../outside.yaml").Load(context.Background())
	require.ErrorAs(t, err, &sourceErr)
	require.Contains(t, err.Error(), "inside the repository")
}

func TestGitSourceCloneOptions(t *testing.T) {
	t.Parallel()

	remote := NewGitSource("https://example.com/catalog.git", "refs/tags/v1", "taxonomy.yaml").cloneOptions()
	require.Equal(t, 1, remote.Depth)
	require.Equal(t, "refs/tags/v1", remote.ReferenceName.String())
	require.True(t, remote.SingleBranch)

	local := NewGitSource("/srv/catalog", "main", "taxonomy.yaml").cloneOptions()
	require.Zero(t, local.Depth)
	require.Equal(t, "refs/heads/main", local.ReferenceName.String())

	require.True(t, isRemote("git@example.com:catalog.git"))
	require.False(t, isRemote("file:///srv/catalog"))
}

func initGitRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)

	for name, contents := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(contents), 0o644))
		_, err = wt.Add(name)
		require.NoError(t, err)
	}

	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Taxon",
			Email: "taxon@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)

	return dir
}
