package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jimmywalsh/portfolio/internal/config"
	"github.com/jimmywalsh/portfolio/internal/logger"
)

var (
	cfgFile  string
	logLevel string

	appConfig *config.Config
	log       zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal blog and portfolio site",
	Long: `portfolio loads Markdown articles from the content directory and either
builds them into a static site or serves them live while you write.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (overrides log.level)")
}

func initializeConfig(cmd *cobra.Command) error {
	cfg, used, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	appConfig = cfg
	log = logger.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	if used != "" {
		log.Debug().Str("file", used).Msg("Using config file")
	} else {
		log.Debug().Msg("No config file found, using defaults and environment")
	}
	return nil
}
