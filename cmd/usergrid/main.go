package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"usergrid/cmd/usergrid/ui"
	"usergrid/internal/config"
	"usergrid/internal/logging"
	"usergrid/internal/refresh"
)

var (
	// Global flags
	verbose    bool
	configPath string
	endpoint   string
	locale     string
	maxLen     int

	// Root flags
	searchTerm string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "usergrid",
	Short: "Browse users and their posts from a GraphQL endpoint",
	Long: `usergrid fetches users and posts from a GraphQL endpoint and shows them
in a searchable grid. Hover or click a row's post count to see its posts.

Run without arguments to start the interactive grid.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}

		// The interactive grid owns the terminal, so it logs to a file.
		if cmd == cmd.Root() {
			lc := cfg.Logging
			if verbose {
				lc.DebugMode = true
				lc.Level = "debug"
			}
			dir, err := config.DefaultDir()
			if err != nil {
				return fmt.Errorf("failed to resolve config directory: %w", err)
			}
			if err := logging.Initialize(lc, dir); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = logging.Get(logging.CategoryBoot)
			return nil
		}

		logger, err = logging.Console(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Sync()
	},
	RunE: runGrid,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.usergrid/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "GraphQL endpoint URL")
	rootCmd.PersistentFlags().StringVar(&locale, "locale", "", "Locale for numbers and dates, e.g. en-US or de")
	rootCmd.PersistentFlags().IntVar(&maxLen, "max-len", 0, "Truncate cells longer than this many characters")

	rootCmd.Flags().StringVarP(&searchTerm, "search", "s", "", "Initial name filter")

	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(serveFixturesCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runGrid starts the interactive grid.
func runGrid(cmd *cobra.Command, args []string) error {
	f, err := newFormatter(cfg)
	if err != nil {
		return err
	}
	sched, err := refresh.Parse(cfg.API.Refresh)
	if err != nil {
		return err
	}
	if sched != nil {
		logging.Get(logging.CategoryRefresh).Info("auto-refresh enabled",
			zap.String("schedule", sched.String()),
			zap.Duration("first_in", sched.Delay(time.Now())))
	}
	client, closeClient, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer closeClient()

	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
	model := ui.NewTableModel(client, ui.Options{
		Search:          searchTerm,
		Endpoint:        client.Endpoint(),
		Formatter:       f,
		Styles:          &styles,
		HoverCloseDelay: cfg.UI.GetHoverCloseDelay(),
		SearchDebounce:  cfg.UI.GetSearchDebounce(),
		RenderMarkdown:  cfg.UI.RenderMarkdown,
		Refresh:         sched,
		Logger:          logging.Get(logging.CategoryUI),
	})

	logger.Info("starting grid",
		zap.String("endpoint", client.Endpoint()),
		zap.String("locale", cfg.UI.Locale),
		zap.String("refresh", sched.String()))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("grid exited: %w", err)
	}
	return nil
}
