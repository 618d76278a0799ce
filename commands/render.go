package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
	"github.com/penwyp/go-survey-explorer/internal/presentation/svg"
)

var (
	renderDashboard string
	renderOut       string
	renderSelect    string
	renderSearch    string
	renderFilters   []string
	renderWidth     float64
	renderHeight    float64
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a dashboard to SVG",
	Long: `Loads a dashboard, applies the given selection, search and filters, settles
all transitions and writes the scene as SVG.

Filters are group=option pairs, e.g. --filter filter-gender=women.`,
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderDashboard, "dashboard", string(dashboard.KindWage),
		"Dashboard to render (wage, timeuse)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "-",
		"Output file, - for stdout")
	renderCmd.Flags().StringVar(&renderSelect, "select", "",
		"Occupation category to select (wage)")
	renderCmd.Flags().StringVar(&renderSearch, "search", "",
		"Activity search query (timeuse)")
	renderCmd.Flags().StringArrayVar(&renderFilters, "filter", nil,
		"Filter as group=option, repeatable")
	renderCmd.Flags().Float64Var(&renderWidth, "width", 0,
		"Canvas width, 0 keeps the configured width")
	renderCmd.Flags().Float64Var(&renderHeight, "height", 0,
		"Canvas height, 0 keeps the configured height")
}

func runRender(cmd *cobra.Command, args []string) error {
	config, err := setup(cmd)
	if err != nil {
		return err
	}
	orchestrator, err := dashboard.NewOrchestrator(config, nil)
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}

	kind := dashboard.Kind(renderDashboard)
	ctx := context.Background()
	switch kind {
	case dashboard.KindWage:
		err = orchestrator.LoadWage(ctx)
	case dashboard.KindTimeUse:
		err = orchestrator.LoadTimeUse(ctx)
	default:
		return fmt.Errorf("%w: %s", dashboard.ErrUnknownDashboard, kind)
	}
	if err != nil {
		return err
	}

	events, err := renderEvents()
	if err != nil {
		return err
	}
	m := orchestrator.Manager()
	for _, ev := range events {
		if _, err := m.Dispatch(kind, ev); err != nil {
			return fmt.Errorf("%s: %w", ev.Kind, err)
		}
	}
	snap, err := settled(m, kind)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if renderOut != "-" {
		f, err := os.Create(expandPath(renderOut))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", renderOut, err)
		}
		defer f.Close()
		out = f
	}
	return svg.Render(out, snap)
}

// renderEvents turns the flags into the events to dispatch, in order.
func renderEvents() ([]dashboard.Event, error) {
	var events []dashboard.Event
	if renderWidth > 0 || renderHeight > 0 {
		events = append(events, dashboard.Event{Kind: dashboard.EventResize, Width: renderWidth, Height: renderHeight})
	}
	for _, f := range renderFilters {
		group, option, ok := strings.Cut(f, "=")
		if !ok || group == "" || option == "" {
			return nil, fmt.Errorf("invalid filter %q, want group=option", f)
		}
		events = append(events, dashboard.Event{Kind: dashboard.EventFilter, Group: group, Option: option})
	}
	if renderSearch != "" {
		events = append(events,
			dashboard.Event{Kind: dashboard.EventSearchInput, Query: renderSearch},
			dashboard.Event{Kind: dashboard.EventSearchBlur})
	}
	if renderSelect != "" {
		events = append(events, dashboard.Event{Kind: dashboard.EventSelect, Key: renderSelect})
	}
	return events, nil
}
