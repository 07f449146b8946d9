package cli

import (
	"fmt"

	"github.com/launchforge/phaseline/internal/api"
	"github.com/launchforge/phaseline/internal/cache"
	"github.com/launchforge/phaseline/internal/config"
	"github.com/launchforge/phaseline/internal/logger"
	"github.com/launchforge/phaseline/internal/timeline"
	"github.com/launchforge/phaseline/internal/tui"
	"github.com/spf13/cobra"
)

var (
	logLevel   string
	logFile    string
	logConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "phaseline",
	Short: "Phaseline - Gantt timeline editor for incubator ideas",
	Long: `Phaseline is a terminal Gantt editor for startup incubator timelines:
phases, tasks, drag-and-drop scheduling, committee evaluations and
funding requests.

Run 'phaseline' without arguments to open the timeline editor for the
current idea (see 'phaseline use').`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config from file (or defaults if not exists)
		cfg, err := config.Load()
		if err != nil {
			logger.Warn("Failed to load config, using defaults", logger.F("error", err))
			cfg = config.DefaultConfig()
		}

		// Override with CLI flags if provided
		configChanged := false
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
			configChanged = true
		}
		if cmd.Flags().Changed("log-file") {
			cfg.LogFile = logFile
			configChanged = true
		}
		if cmd.Flags().Changed("log-console") {
			cfg.LogConsole = logConsole
			configChanged = true
		}

		// Save config if changed via CLI flags
		if configChanged {
			if err := cfg.Save(); err != nil {
				logger.Warn("Failed to save config", logger.F("error", err))
			}
		}

		logConfig := logger.Config{
			Level:      logger.ParseLevel(cfg.LogLevel),
			FilePath:   cfg.LogFile,
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxAge:     7,
			MaxBackups: 5,
			Console:    cfg.LogConsole,
		}

		if err := logger.Init(logConfig); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		logger.Info("Phaseline started", logger.F("command", cmd.Name()))
		return nil
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.CurrentIdea == "" {
			fmt.Println("No idea selected. Run 'phaseline ideas' to list yours, then 'phaseline use <id>'.")
			return nil
		}

		client, err := api.NewClient()
		if err != nil {
			return err
		}
		if !client.IsLoggedIn() {
			fmt.Println("Not logged in. Run 'phaseline auth login' first.")
			return nil
		}

		opts := []tui.Option{tui.WithViewMode(timeline.ParseViewMode(cfg.DefaultViewMode))}
		store, err := cache.OpenDefault()
		if err != nil {
			logger.Warn("Local cache unavailable", logger.F("error", err))
		} else {
			defer store.Close()
			opts = append(opts, tui.WithCache(store))
		}

		logger.Info("Launching timeline editor", logger.F("idea", cfg.CurrentIdea))
		m := tui.New(client, cfg.CurrentIdea, opts...)
		poller := api.NewPoller(client, cfg.CurrentIdea, m.EnqueueRefresh)

		if err := tui.Run(m, poller); err != nil {
			logger.Error("TUI error", logger.F("error", err))
			return fmt.Errorf("failed to run editor: %w", err)
		}

		logger.Info("Editor exited normally")
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Info("Phaseline exiting", logger.F("command", cmd.Name()))
		logger.Close()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Add logging flags
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to log file")
	rootCmd.PersistentFlags().BoolVar(&logConsole, "log-console", false, "Enable console logging")

	// Add subcommands
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(ideasCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(phasesCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(fundingCmd)
}
