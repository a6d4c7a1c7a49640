package main

import (
	"fmt"
	"time"

	"github.com/jwulff/cineai/internal/app"
	"github.com/jwulff/cineai/internal/classifier"
	"github.com/jwulff/cineai/internal/config"
	"github.com/jwulff/cineai/internal/logging"
	"github.com/jwulff/cineai/internal/predict"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	tea "github.com/charmbracelet/bubbletea"
)

var opts struct {
	configPath string
	endpoint   string
	timeout    time.Duration
	logFile    string
	debug      bool
}

var rootCmd = &cobra.Command{
	Use:           "cineai",
	Short:         "Film genre prediction client",
	Long:          `CineAI sends a Turkish film synopsis to the genre classification service and charts the ranked genres.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := logging.NewFile(cfg.LogFile, opts.debug)
		if err != nil {
			return err
		}
		defer logger.Sync()

		client, ctrl := newController(cfg, logger)
		logger.Info("starting tui", zap.String("endpoint", client.BaseURL()))

		p := tea.NewProgram(
			app.New(cmd.Context(), ctrl, client, client.BaseURL(), logger),
			tea.WithAltScreen(),
			tea.WithContext(cmd.Context()),
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run tui: %w", err)
		}
		return nil
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&opts.configPath, "config", "", "config file (default ~/.cineai/config.yaml)")
	f.StringVar(&opts.endpoint, "endpoint", "", "classification service base URL")
	f.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout")
	f.StringVar(&opts.logFile, "log-file", "", `log file path, or "off"`)
	f.BoolVar(&opts.debug, "debug", false, "enable debug logging")
}

// loadConfig resolves settings with flags taking precedence over the
// environment, the config file and defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = opts.endpoint
	}
	if flags.Changed("timeout") {
		if opts.timeout <= 0 {
			return nil, fmt.Errorf("--timeout must be positive, got %s", opts.timeout)
		}
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	return cfg, nil
}

func newController(cfg *config.Config, logger *zap.Logger) (*classifier.Client, *predict.Controller) {
	client := classifier.New(cfg.Endpoint, classifier.WithLogger(logger))
	ctrl := predict.NewController(client,
		predict.WithTimeout(cfg.Timeout),
		predict.WithLogger(logger),
	)
	return client, ctrl
}
