package main

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/taxon/internal/source"
	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
	"github.com/alexisbeaulieu97/taxon/internal/tui/browser"
	"github.com/alexisbeaulieu97/taxon/internal/ui/components"
	"github.com/alexisbeaulieu97/taxon/internal/watch"
)

type browseOptions struct {
	view viewOptions
}

func newBrowseCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &browseOptions{}

	cmd := &cobra.Command{
		Use:   "browse [source]",
		Short: "Launch the interactive category browser",
		Long: `Launch the interactive browser. When standard output is not a terminal
the visible rows are printed instead, as with 'taxon tree'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, rootFlags, opts, args)
		},
	}

	addBrowseFlags(cmd, opts)
	return cmd
}

func addBrowseFlags(cmd *cobra.Command, opts *browseOptions) {
	addViewFlags(cmd, &opts.view)
	cmd.Flags().Bool("watch", false, "Reload the taxonomy when the file changes")
	cmd.Flags().String("theme", "", "Colour theme: auto, light or dark")
}

func runBrowse(cmd *cobra.Command, rootFlags *rootFlags, opts *browseOptions, args []string) error {
	if !isTerminal(cmd.OutOrStdout()) {
		return runTree(cmd, rootFlags, &treeOptions{view: opts.view}, args)
	}

	app, err := newAppContext(cmd, rootFlags, true)
	if err != nil {
		return err
	}
	defer app.Close()
	log := app.log.Component("browse")

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	location := argOrEmpty(args, 0)
	result, err := loadTaxonomy(ctx, location, rootFlags.sourceOptions(), app.log)
	if err != nil {
		return loadError("browse", location, err)
	}

	nav, err := newNavigator(result.tree, app.settings, opts.view)
	if err != nil {
		return newCommandError("browse", "applying the requested view", err, "Paths are written as \"Parent/Child\" and must exist in the taxonomy.")
	}

	theme, err := components.ThemeByName(app.settings.Theme)
	if err != nil {
		return newCommandError("browse", "selecting the theme", err, "Use --theme auto, light or dark.")
	}
	if !app.settings.Unicode {
		theme = theme.WithGlyphs(components.ASCIIGlyphs())
	}

	src := result.src
	modelOpts := browser.Options{
		Theme:  theme,
		Origin: result.origin,
		Logger: app.log,
		Loader: func(ctx context.Context) (*taxonomy.Tree, string, error) {
			fresh, err := reload(ctx, src)
			if err != nil {
				return nil, "", err
			}
			return fresh.tree, fresh.origin, nil
		},
	}

	if app.settings.Watch {
		w, err := startWatcher(ctx, src, app)
		if err != nil {
			return newCommandError("browse", "watching the taxonomy", err, "Live reload only works for local files.")
		}
		defer w.Close()
		modelOpts.Watcher = w
	}

	log.WithFields(map[string]any{"origin": result.origin, "theme": theme.Name}).Info("launching browser")

	program := tea.NewProgram(
		browser.NewModel(nav, modelOpts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		log.Error(err, "browser exited with error")
		return err
	}
	return nil
}

func startWatcher(ctx context.Context, src source.Source, app *appContext) (*watch.Watcher, error) {
	file, ok := src.(*source.FileSource)
	if !ok {
		return nil, errors.New("source is not a local file")
	}
	path, err := file.WatchPath()
	if err != nil {
		return nil, err
	}

	w, err := watch.New(path, watch.DefaultDelay, app.log)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			app.log.Error(err, "watcher stopped")
		}
	}()
	return w, nil
}
