package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/taxon/pkg/diff"
)

func newDiffCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <source> <source>",
		Short: "Compare the category outlines of two taxonomies",
		Long: `Diff loads both sources, renders every category fully expanded and prints a
unified diff of the two outlines.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, rootFlags, args[0], args[1])
		},
	}

	return cmd
}

func runDiff(cmd *cobra.Command, rootFlags *rootFlags, beforeLocation, afterLocation string) error {
	app, err := newAppContext(cmd, rootFlags, false)
	if err != nil {
		return err
	}
	defer app.Close()

	before, err := loadTaxonomy(cmd.Context(), beforeLocation, rootFlags.sourceOptions(), app.log)
	if err != nil {
		return loadError("diff", beforeLocation, err)
	}
	after, err := loadTaxonomy(cmd.Context(), afterLocation, rootFlags.sourceOptions(), app.log)
	if err != nil {
		return loadError("diff", afterLocation, err)
	}

	out := diff.GenerateUnifiedDiff(diff.Outline(before.tree), diff.Outline(after.tree), before.origin, after.origin)
	if out == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), "No differences.")
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}
