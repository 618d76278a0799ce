package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
	"github.com/penwyp/go-survey-explorer/internal/application/explore"
)

var (
	exploreDashboard string
	exploreWatch     bool
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Explore the dashboards in the terminal",
	Long: `Draws a dashboard in the terminal and drives it from the keyboard.
Press ? for the key bindings, Tab to switch dashboard and q to quit.`,
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)

	exploreCmd.Flags().StringVar(&exploreDashboard, "dashboard", "",
		"Dashboard to open first (wage, timeuse)")
	exploreCmd.Flags().BoolVar(&exploreWatch, "watch", false,
		"Reload a dashboard when its dataset changes")
}

func runExplore(cmd *cobra.Command, args []string) error {
	config, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	orchestrator, err := dashboard.NewOrchestrator(config, nil)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	return explore.Run(ctx, orchestrator, dashboard.Kind(exploreDashboard), exploreWatch || config.Watch)
}
