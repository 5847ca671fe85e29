package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notehub"
)

var (
	verbose    bool
	configPath string

	// logLevel is raised or lowered once the config is known.
	logLevel = new(slog.LevelVar)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notehub",
	Short: "A command line client for the NoteHub notes API",
	Long: `notehub lists, searches, creates and deletes notes stored in a NoteHub API.
Run "notehub browse" for an interactive session.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logLevel.Set(slog.LevelInfo)
		if verbose {
			logLevel.Set(slog.LevelDebug)
		}

		opts := &slog.HandlerOptions{
			Level: logLevel,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: nearest notehub.yaml)")
}

// loadConfig reads the settings and applies their log level unless -v was given.
func loadConfig() notehub.Config {
	cfg, err := notehub.LoadConfig(configPath)
	if err != nil {
		fatal("Error loading config", err)
	}
	if !verbose {
		if level, err := cfg.Level(); err == nil {
			logLevel.Set(level)
		}
	}
	if cfg.Token == "" {
		slog.Warn("no API token configured; requests will likely be rejected")
	}
	return cfg
}

// newClient loads the config and builds a client.
func newClient(opts ...notehub.Option) (*notehub.Client, notehub.Config) {
	cfg := loadConfig()
	opts = append([]notehub.Option{notehub.WithLogger(slog.Default())}, opts...)
	client, err := notehub.New(cfg, opts...)
	if err != nil {
		fatal("Error initializing client", err)
	}
	return client, cfg
}
