package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jwulff/cineai/internal/catalog"
	"github.com/jwulff/cineai/internal/logging"
	"github.com/jwulff/cineai/internal/stub"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var stubOpts struct {
	addr        string
	catalogPath string
}

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local stand-in for the classification service",
	Long:  `Stub serves /, /health and /predict on the classification service contract using a keyword scorer over the genre catalog.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Stub.Addr = stubOpts.addr
		}
		if cmd.Flags().Changed("catalog") {
			cfg.Stub.CatalogPath = stubOpts.catalogPath
		}
		if cfg.Stub.CatalogPath == "" {
			cfg.Stub.CatalogPath = catalog.MemoryPath
		}

		logger, err := logging.NewConsole(opts.debug)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if !opts.debug {
			gin.SetMode(gin.ReleaseMode)
		}

		store, err := catalog.Open(cfg.Stub.CatalogPath)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("genre catalog ready", zap.String("path", cfg.Stub.CatalogPath))

		return stub.New(store, logger).Run(cmd.Context(), cfg.Stub.Addr)
	},
}

func init() {
	stubCmd.Flags().StringVar(&stubOpts.addr, "addr", "", "listen address (default :8000)")
	stubCmd.Flags().StringVar(&stubOpts.catalogPath, "catalog", "", "SQLite catalog path (default in-memory)")
	rootCmd.AddCommand(stubCmd)
}
