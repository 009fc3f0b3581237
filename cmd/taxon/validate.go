package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type validateOptions struct {
	quiet bool
}

func newValidateCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [source]",
		Short: "Check that a taxonomy document parses and is well formed",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootFlags, opts, args)
		},
	}

	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Print nothing on success")

	return cmd
}

func runValidate(cmd *cobra.Command, rootFlags *rootFlags, opts *validateOptions, args []string) error {
	app, err := newAppContext(cmd, rootFlags, false)
	if err != nil {
		return err
	}
	defer app.Close()

	location := argOrEmpty(args, 0)
	result, err := loadTaxonomy(cmd.Context(), location, rootFlags.sourceOptions(), app.log)
	if err != nil {
		return loadError("validate", location, err)
	}

	if opts.quiet {
		return nil
	}

	mark := "[OK]"
	if isTerminal(cmd.OutOrStdout()) && app.settings.Unicode {
		mark = "✓"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s is valid\n", mark, result.origin)
	fmt.Fprintf(out, "  Name:       %s\n", valueOrFallback(result.doc.Name, "(unnamed)"))
	fmt.Fprintf(out, "  Version:    %s\n", result.doc.Version)
	fmt.Fprintf(out, "  Categories: %d\n", result.tree.Len())
	fmt.Fprintf(out, "  Top level:  %d\n", len(result.tree.Roots()))
	fmt.Fprintf(out, "  Depth:      %d\n", result.tree.Depth())
	_, err = fmt.Fprintf(out, "  Items:      %d\n", result.tree.Total())
	return err
}
