package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/strrl/unsplash-gallery/internal/config"
	"github.com/strrl/unsplash-gallery/internal/logging"
	"github.com/strrl/unsplash-gallery/internal/tui"
	"github.com/strrl/unsplash-gallery/internal/unsplash"
	"golang.org/x/term"
)

// globalFlags are shared by every subcommand
type globalFlags struct {
	configPath  string
	accessKey   string
	perPage     int
	orientation string
	logFile     string
	debug       bool
}

// app is the resolved runtime for one command invocation
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	client *unsplash.Client
	close  func() error
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "unsplash-gallery [query...]",
		Short: "Search and browse Unsplash photos in the terminal",
		Long: `unsplash-gallery is a TUI application for searching Unsplash and browsing
the results as a paginated grid. An optional query starts a search right away.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, flags, args)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Path to a YAML config file")
	pf.StringVar(&flags.accessKey, "access-key", "", "Unsplash access key (overrides UNSPLASH_ACCESS_KEY)")
	pf.IntVar(&flags.perPage, "per-page", unsplash.DefaultPerPage, "Results per page (1-30)")
	pf.StringVar(&flags.orientation, "orientation", "", "Filter by orientation: landscape, portrait or squarish")
	pf.StringVar(&flags.logFile, "log-file", "", "Write logs to this file")
	pf.BoolVar(&flags.debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(NewSearchCommand(flags))
	rootCmd.AddCommand(NewDebugCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig layers defaults, config file and environment, then applies
// any flags the user set explicitly
func loadConfig(cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	cfg, err := config.NewLoader().Load(flags.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	changed := cmd.Flags().Changed
	if changed("access-key") {
		cfg.Unsplash.AccessKey = flags.accessKey
	}
	if changed("per-page") {
		cfg.Unsplash.PerPage = flags.perPage
	}
	if changed("orientation") {
		cfg.Unsplash.Orientation = flags.orientation
	}
	if changed("log-file") {
		cfg.Log.File = flags.logFile
	}
	if changed("debug") {
		cfg.Log.Debug = flags.debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setup resolves config, logger and API client for a command that talks to
// Unsplash
func setup(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	if cfg.Unsplash.AccessKey == "" {
		return nil, fmt.Errorf("%w; access_key in the config file or --access-key also work", unsplash.ErrMissingAccessKey)
	}

	logger, closeLog, err := logging.New(logging.Options{File: cfg.Log.File, Debug: cfg.Log.Debug})
	if err != nil {
		return nil, err
	}

	opts := cfg.ClientOptions()
	opts.Logger = logger
	return &app{
		cfg:    cfg,
		log:    logger,
		client: unsplash.NewClient(opts),
		close:  closeLog,
	}, nil
}

func runTUI(cmd *cobra.Command, flags *globalFlags, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; use `unsplash-gallery search` for non-interactive output")
	}

	a, err := setup(cmd, flags)
	if err != nil {
		return err
	}
	defer func() { _ = a.close() }()

	a.log.Info("starting gallery", "per_page", a.cfg.Unsplash.PerPage, "columns", a.cfg.UI.Columns)
	err = tui.Run(cmd.Context(), tui.Options{
		Searcher:     a.client,
		Logger:       a.log,
		Columns:      a.cfg.UI.Columns,
		InitialQuery: strings.Join(args, " "),
	})
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
