package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/photo-color-mcp/internal/config"
	"github.com/ironsheep/photo-color-mcp/internal/logging"
	"github.com/ironsheep/photo-color-mcp/internal/photo"
	"github.com/ironsheep/photo-color-mcp/internal/server"
)

// app holds what every subcommand needs after PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "photo-color-mcp",
		Short: "Photo color analysis and correction over MCP, HTTP or the command line",
		Long: `photo-color-mcp measures a photo's brightness, saturation and hue balance,
explains what is off, suggests Lightroom adjustments, and produces a corrected copy.

Run without a subcommand to start the MCP server on stdin/stdout.
Configure it in your MCP client (e.g., Claude Desktop).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			server.Version = Version
			a.logger.Debug("starting MCP server",
				zap.String("version", Version),
				zap.String("build_time", BuildTime),
				zap.String("commit", GitCommit))
			srv := server.New(a.cfg, a.logger)
			if err := srv.Run(); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to a YAML config file (default $PHOTO_MCP_CONFIG)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (default $PHOTO_MCP_LOG_LEVEL or info)")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newAnalyzeCmd(a))

	return cmd
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) processor() *photo.Processor {
	return photo.New(photo.Options{
		JPEGQuality: a.cfg.JPEGQuality,
		AutoOrient:  a.cfg.AutoOrient,
	})
}
