package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/taxon/internal/navigator"
)

type showOptions struct {
	jsonOutput bool
}

func newShowCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &showOptions{}

	cmd := &cobra.Command{
		Use:   "show [source] <path>",
		Short: "Show the details of a single category",
		Long: `Show the breadcrumb, count and description of a category. The path is
written as "Parent/Child"; when only one argument is given it is the path and
the default source is read.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			location, raw := "", args[0]
			if len(args) == 2 {
				location, raw = args[0], args[1]
			}
			return runShow(cmd, rootFlags, opts, location, raw)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output category details as JSON")
	cmd.Flags().String("marker", "", "Breadcrumb marker")
	cmd.Flags().String("template", "", "Detail description template (text/template)")

	return cmd
}

func runShow(cmd *cobra.Command, rootFlags *rootFlags, opts *showOptions, location, raw string) error {
	app, err := newAppContext(cmd, rootFlags, false)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := loadTaxonomy(cmd.Context(), location, rootFlags.sourceOptions(), app.log)
	if err != nil {
		return loadError("show", location, err)
	}

	nav, err := newNavigator(result.tree, app.settings, viewOptions{selection: raw})
	if err != nil {
		return newCommandError("show", fmt.Sprintf("looking up category %q", raw), err, "Run 'taxon tree --expand-all' to list every category path.")
	}

	detail := nav.Detail()
	if opts.jsonOutput {
		return renderShowJSON(cmd, detail)
	}
	return renderShowText(cmd, detail)
}

func renderShowText(cmd *cobra.Command, detail navigator.DetailView) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Path:        %s\n", detail.BreadcrumbText())
	fmt.Fprintf(out, "Category:    %s\n", detail.Title)
	fmt.Fprintf(out, "Count:       %d\n", detail.Count)
	if detail.HasChildren {
		fmt.Fprintln(out, "Children:    yes")
	} else {
		fmt.Fprintln(out, "Children:    no")
	}
	_, err := fmt.Fprintf(out, "\n%s\n", detail.Description)
	return err
}

type showJSON struct {
	Path        []string `json:"path"`
	Breadcrumb  string   `json:"breadcrumb"`
	Name        string   `json:"name"`
	Count       int      `json:"count"`
	HasChildren bool     `json:"has_children"`
	Description string   `json:"description"`
}

func renderShowJSON(cmd *cobra.Command, detail navigator.DetailView) error {
	payload := showJSON{
		Path:        detail.Breadcrumb,
		Breadcrumb:  detail.BreadcrumbText(),
		Name:        detail.Title,
		Count:       detail.Count,
		HasChildren: detail.HasChildren,
		Description: detail.Description,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
