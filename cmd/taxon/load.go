package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/taxon/internal/config"
	"github.com/alexisbeaulieu97/taxon/internal/logger"
	"github.com/alexisbeaulieu97/taxon/internal/navigator"
	"github.com/alexisbeaulieu97/taxon/internal/source"
	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
	taxonerrors "github.com/alexisbeaulieu97/taxon/pkg/errors"
)

// defaultSource is read when no source argument is given.
const defaultSource = "taxonomy.yaml"

// loaded is a parsed taxonomy together with where it came from.
type loaded struct {
	src    source.Source
	doc    *config.Document
	tree   *taxonomy.Tree
	origin string
}

func loadTaxonomy(ctx context.Context, location string, opts source.Options, log *logger.Logger) (*loaded, error) {
	if location == "" {
		location = defaultSource
	}

	src, err := source.Resolve(location, opts)
	if err != nil {
		return nil, err
	}

	result, err := reload(ctx, src)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]any{
		"source": src.Describe(),
		"nodes":  result.tree.Len(),
		"depth":  result.tree.Depth(),
	}).Debug("taxonomy loaded")
	return result, nil
}

// reload reads and parses src again.
func reload(ctx context.Context, src source.Source) (*loaded, error) {
	data, origin, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	doc, tree, err := config.LoadTree(data, origin)
	if err != nil {
		return nil, err
	}

	return &loaded{src: src, doc: doc, tree: tree, origin: origin}, nil
}

// viewOptions is the initial navigator state requested on the command line.
type viewOptions struct {
	search    string
	expand    []string
	expandAll bool
	selection string
}

// newNavigator builds a navigator configured from settings and applies the
// requested initial state. Paths are written as "A/B/C".
func newNavigator(tree *taxonomy.Tree, settings *config.Settings, view viewOptions) (*navigator.Navigator, error) {
	tmpl, err := navigator.ParseDescription(settings.Detail.Template)
	if err != nil {
		return nil, taxonerrors.NewValidationError("detail.template", "invalid template", err)
	}

	nav := navigator.New(tree,
		navigator.WithMarker(settings.Breadcrumb.Marker),
		navigator.WithDescription(tmpl),
	)

	if view.expandAll {
		nav.ExpandAll()
	}
	for _, raw := range view.expand {
		path, err := resolvePath(tree, raw)
		if err != nil {
			return nil, err
		}
		nav.Reveal(path)
		if node, _ := tree.Lookup(path); node.HasChildren() {
			nav.Expand(path)
		}
	}
	if view.selection != "" {
		path, err := resolvePath(tree, view.selection)
		if err != nil {
			return nil, err
		}
		nav.Reveal(path)
		nav.Select(path)
	}
	nav.SetQuery(view.search)

	return nav, nil
}

// resolvePath matches a "/" separated path against the tree. Category names
// may contain "/" themselves, so longer names are tried first at each level
// and a shorter one is used when the longer choice leaves the rest unmatched.
func resolvePath(tree *taxonomy.Tree, raw string) (taxonomy.Path, error) {
	segments := taxonomy.SplitDisplay(raw, "/")
	if segments.IsEmpty() {
		return nil, taxonerrors.NewPathError(segments)
	}

	path, ok := resolveFrom(tree.Roots(), segments)
	if !ok {
		return nil, taxonerrors.NewPathError(segments)
	}
	return path, nil
}

func resolveFrom(nodes []*taxonomy.Node, segments []string) (taxonomy.Path, bool) {
	if len(segments) == 0 {
		return nil, true
	}
	for j := len(segments); j > 0; j-- {
		match := childNamed(nodes, strings.Join(segments[:j], "/"))
		if match == nil {
			continue
		}
		if rest, ok := resolveFrom(match.Children, segments[j:]); ok {
			return append(taxonomy.Path{match.Name}, rest...), true
		}
	}
	return nil, false
}

func childNamed(nodes []*taxonomy.Node, name string) *taxonomy.Node {
	for _, node := range nodes {
		if node.Name == name {
			return node
		}
	}
	return nil
}

func loadError(operation string, location string, err error) error {
	if location == "" {
		location = defaultSource
	}
	return newCommandError(operation, fmt.Sprintf("loading taxonomy from %s", location), err,
		"Check that the source exists and that the document is valid (run 'taxon validate').")
}
