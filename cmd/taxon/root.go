package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexisbeaulieu97/taxon/internal/config"
	"github.com/alexisbeaulieu97/taxon/internal/logger"
	"github.com/alexisbeaulieu97/taxon/internal/source"
)

type rootFlags struct {
	configPath string
	logLevel   string
	verbose    bool

	gitRef  string
	gitPath string
	timeout time.Duration
	retries int
}

func (f *rootFlags) sourceOptions() source.Options {
	return source.Options{
		GitRef:  f.gitRef,
		GitPath: f.gitPath,
		Timeout: f.timeout,
		Retries: f.retries,
	}
}

// settingsFlags maps command-line flags onto settings keys. Only flags the
// user actually set override the settings file.
var settingsFlags = map[string]string{
	"log-level": "log.level",
	"theme":     "theme",
	"watch":     "watch",
	"marker":    "breadcrumb.marker",
	"template":  "detail.template",
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	browse := &browseOptions{}

	cmd := &cobra.Command{
		Use:   "taxon [source]",
		Short: "Taxon browses category trees from the terminal",
		Long: `Taxon loads a taxonomy of categories and lets you expand, search and
select them interactively. A source is a local file, an http(s) URL, or a
git repository written as git+<url>#<path>.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, flags, browse, args)
		},
	}

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&flags.configPath, "config", "", "Settings file (default $XDG_CONFIG_HOME/taxon/config.yaml)")
	persistent.StringVar(&flags.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error or disabled")
	persistent.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")
	persistent.StringVar(&flags.gitRef, "git-ref", "", "Branch or reference to read from a git source")
	persistent.StringVar(&flags.gitPath, "git-path", "", "Document path inside a git source")
	persistent.DurationVar(&flags.timeout, "timeout", 30*time.Second, "Timeout for remote sources")
	persistent.IntVar(&flags.retries, "retries", 2, "Retries for HTTP sources")

	addBrowseFlags(cmd, browse)

	cmd.AddCommand(newBrowseCmd(flags))
	cmd.AddCommand(newTreeCmd(flags))
	cmd.AddCommand(newShowCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newDiffCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// appContext bundles what every command needs after flag parsing.
type appContext struct {
	settings *config.Settings
	log      *logger.Logger
}

func (a *appContext) Close() {
	_ = a.log.Close()
}

// newAppContext loads settings for cmd and opens a logger. Interactive
// sessions log to a file since the terminal belongs to the browser.
func newAppContext(cmd *cobra.Command, flags *rootFlags, interactive bool) (*appContext, error) {
	v := viper.New()
	if err := bindSettingsFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}

	settings, err := config.LoadSettings(v, flags.configPath)
	if err != nil {
		return nil, newCommandError("start", "loading settings", err, "Fix the settings file or pass --config with a valid file.")
	}

	level := settings.Log.Level
	if flags.verbose {
		level = "debug"
	}

	opts := logger.Options{Level: level, HumanReadable: true}
	if interactive {
		opts.File = settings.Log.File
		if opts.File == "" {
			opts.File = logger.DefaultFile()
		}
	} else {
		opts.Writer = cmd.ErrOrStderr()
	}

	log, err := logger.New(opts)
	if err != nil {
		return nil, newCommandError("start", "creating logger", err, "Check log.level and log.file in your settings.")
	}

	log.WithFields(map[string]any{"command": cmd.Name(), "config": v.ConfigFileUsed()}).Debug("settings loaded")
	return &appContext{settings: settings, log: log}, nil
}

func bindSettingsFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range settingsFlags {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return err
		}
	}
	return nil
}
