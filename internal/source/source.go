// Package source fetches raw taxonomy documents from the places a catalog
// can live: a local file, an HTTP endpoint or a path inside a git repository.
package source

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Source yields the bytes of a taxonomy document.
type Source interface {
	// Load fetches the document. origin names where it came from and is used
	// in parse errors.
	Load(ctx context.Context) (data []byte, origin string, err error)
	// Describe returns a short human-readable label.
	Describe() string
}

// Options tune how Resolve builds a source.
type Options struct {
	// GitRef is a branch name or a full reference such as refs/tags/v1.
	GitRef string
	// GitPath is the document path inside the repository. Setting it forces
	// a git source even for plain URLs.
	GitPath string
	// Timeout bounds HTTP requests.
	Timeout time.Duration
	// Retries is the number of HTTP retries after the first attempt.
	Retries int
}

// DefaultDocument is read from a git repository when no path is given.
const DefaultDocument = "taxonomy.yaml"

// Resolve picks a source for location:
//
//	git+https://host/repo.git#docs/taxonomy.yaml  git repository, path after '#'
//	https://host/taxonomy.yaml                   HTTP
//	./taxonomy.yaml                              local file
func Resolve(location string, opts Options) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("no taxonomy source given")
	}

	if strings.HasPrefix(location, "git+") || opts.GitPath != "" {
		url := strings.TrimPrefix(location, "git+")
		path := opts.GitPath
		if idx := strings.LastIndex(url, "#"); idx >= 0 {
			if path == "" {
				path = url[idx+1:]
			}
			url = url[:idx]
		}
		if path == "" {
			path = DefaultDocument
		}
		return NewGitSource(url, opts.GitRef, path), nil
	}

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, opts.Timeout, opts.Retries), nil
	}

	return NewFileSource(location), nil
}
