package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
	"github.com/penwyp/go-survey-explorer/internal/presentation/web"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

var (
	serveListen string
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboards over HTTP",
	Long: `Loads both dashboards and serves them on the listen address:

  GET  /                  dashboard index
  GET  /{kind}            dashboard page (kind is wage or timeuse)
  GET  /{kind}/scene.svg  current scene
  GET  /{kind}/state      current state as JSON
  POST /{kind}/events     dispatch an interaction event (JSON)

A dashboard whose data fails to load is still served with an error banner.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListen, "listen", "",
		"Listen address (default \":7428\")")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false,
		"Reload a dashboard when its dataset changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	config, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		config.Listen = serveListen
	}
	if cmd.Flags().Changed("watch") {
		config.Watch = serveWatch
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	orchestrator, err := dashboard.NewOrchestrator(config, nil)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	if err := orchestrator.Load(ctx); err != nil {
		util.LogWarnf("Some dashboards failed to load: %v", err)
	}
	if config.Watch {
		go func() {
			if err := orchestrator.Watch(ctx); err != nil {
				util.LogErrorf("Dataset watcher stopped: %v", err)
			}
		}()
	}

	server, err := web.NewServer(config, orchestrator.Manager())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Serving dashboards on %s\n", config.Listen)
	return server.ListenAndServe(ctx)
}
