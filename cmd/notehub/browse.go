package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/notehub"
	"github.com/aretw0/notehub/pkg/config"
	"github.com/aretw0/notehub/pkg/notify"
	"github.com/aretw0/notehub/pkg/view"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse notes interactively",
	Long: `Browse opens an interactive session: search, page through, create and delete
notes. Type "help" for the commands. When a config file is in use it is
watched and a changed token is picked up without restarting.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tray := notify.NewTray(notify.DefaultTTL, nil)
		client, cfg := newClient(notehub.WithNotifier(notify.Multi(tray, notify.Logger(slog.Default()))))

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if cfg.Path != "" {
			sup := config.NewSupervisor(cfg.Path, func(c config.Config) {
				client.SetToken(c.Token)
				slog.Debug("token rotated from config")
			}, slog.Default())
			if err := sup.Start(ctx); err != nil {
				slog.Warn("config watcher not started", "error", err)
			} else {
				defer func() {
					stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					_ = sup.Stop(stopCtx)
				}()
			}
		}

		app := client.NewApp(tray)
		app.Start(ctx)
		defer app.Close()

		shell := view.NewShell(app, os.Stdin, os.Stdout)
		if err := shell.Run(ctx); err != nil {
			fatal("Error reading input", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
