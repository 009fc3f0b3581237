package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/taxon/internal/navigator"
	"github.com/alexisbeaulieu97/taxon/internal/ui/components"
)

type treeOptions struct {
	view       viewOptions
	jsonOutput bool
}

func newTreeCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &treeOptions{}

	cmd := &cobra.Command{
		Use:   "tree [source]",
		Short: "Print the visible category rows without the interactive browser",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, rootFlags, opts, args)
		},
	}

	addViewFlags(cmd, &opts.view)
	cmd.Flags().BoolVar(&opts.view.expandAll, "expand-all", false, "Expand every category")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output rows as JSON")

	return cmd
}

func addViewFlags(cmd *cobra.Command, view *viewOptions) {
	cmd.Flags().StringVarP(&view.search, "search", "s", "", "Only show categories whose name contains this text")
	cmd.Flags().StringArrayVarP(&view.expand, "expand", "e", nil, "Expand a category path such as \"Technology/AI\" (repeatable)")
	cmd.Flags().StringVar(&view.selection, "select", "", "Select a category path")
	cmd.Flags().String("marker", "", "Breadcrumb marker")
	cmd.Flags().String("template", "", "Detail description template (text/template)")
}

func runTree(cmd *cobra.Command, rootFlags *rootFlags, opts *treeOptions, args []string) error {
	app, err := newAppContext(cmd, rootFlags, false)
	if err != nil {
		return err
	}
	defer app.Close()

	location := argOrEmpty(args, 0)
	result, err := loadTaxonomy(cmd.Context(), location, rootFlags.sourceOptions(), app.log)
	if err != nil {
		return loadError("render tree", location, err)
	}

	nav, err := newNavigator(result.tree, app.settings, opts.view)
	if err != nil {
		return newCommandError("render tree", "applying the requested view", err, "Paths are written as \"Parent/Child\" and must exist in the taxonomy.")
	}

	if opts.jsonOutput {
		return renderRowsJSON(cmd.OutOrStdout(), nav)
	}
	glyphs := components.ASCIIGlyphs()
	if app.settings.Unicode && isTerminal(cmd.OutOrStdout()) {
		glyphs = components.UnicodeGlyphs()
	}
	return renderRowsText(cmd.OutOrStdout(), nav, glyphs)
}

func renderRowsText(out io.Writer, nav *navigator.Navigator, glyphs components.Glyphs) error {
	count := 0
	for row := range nav.Rows() {
		glyph := glyphs.Leaf
		if row.HasChildren {
			glyph = glyphs.Collapsed
			if row.Expanded {
				glyph = glyphs.Expanded
			}
		}
		marker := ""
		if row.Selected {
			marker = " *"
		}
		if _, err := fmt.Fprintf(out, "%s%s %s (%d)%s\n", strings.Repeat("  ", row.Depth), glyph, row.Name, row.Count, marker); err != nil {
			return err
		}
		count++
	}

	if count == 0 {
		if nav.Searching() {
			_, err := fmt.Fprintf(out, "No categories match %q.\n", strings.TrimSpace(nav.Query()))
			return err
		}
		_, err := fmt.Fprintln(out, "The taxonomy has no categories.")
		return err
	}

	if nav.HasSelection() {
		detail := nav.Detail()
		_, err := fmt.Fprintf(out, "\n%s\n%s\n", detail.BreadcrumbText(), detail.Description)
		return err
	}
	return nil
}

type rowJSON struct {
	Path         []string `json:"path"`
	Name         string   `json:"name"`
	Count        int      `json:"count"`
	Depth        int      `json:"depth"`
	HasChildren  bool     `json:"has_children"`
	Expanded     bool     `json:"expanded"`
	AutoExpanded bool     `json:"auto_expanded,omitempty"`
	Selected     bool     `json:"selected,omitempty"`
	Matched      bool     `json:"matched,omitempty"`
}

func renderRowsJSON(out io.Writer, nav *navigator.Navigator) error {
	rows := make([]rowJSON, 0)
	for row := range nav.Rows() {
		rows = append(rows, rowJSON{
			Path:         row.Path,
			Name:         row.Name,
			Count:        row.Count,
			Depth:        row.Depth,
			HasChildren:  row.HasChildren,
			Expanded:     row.Expanded,
			AutoExpanded: row.AutoExpanded,
			Selected:     row.Selected,
			Matched:      row.Matched && nav.Searching(),
		})
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func argOrEmpty(args []string, index int) string {
	if index < len(args) {
		return args[index]
	}
	return ""
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
