package explore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
	"github.com/penwyp/go-survey-explorer/internal/presentation/interaction"
	"github.com/penwyp/go-survey-explorer/internal/presentation/terminal"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

// frameInterval paces redraws so fades are visible.
const frameInterval = 33 * time.Millisecond

// Run drives the explore session until the user quits or ctx is done.
func Run(ctx context.Context, orchestrator *dashboard.Orchestrator, kind dashboard.Kind, watch bool) error {
	util.LogInfo("Starting survey explorer...")

	if err := orchestrator.Load(ctx); err != nil {
		util.LogWarnf("Some dashboards failed to load: %v", err)
	}
	session, err := NewSession(orchestrator.Manager(), kind)
	if err != nil {
		return fmt.Errorf("no dashboard to explore: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if watch {
		go func() {
			if err := orchestrator.Watch(ctx); err != nil {
				util.LogErrorf("Dataset watcher stopped: %v", err)
			}
		}()
	}

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	defer keyboard.Close()

	display := terminal.NewDisplay(nil)
	display.EnterAlternateScreen()
	defer display.ExitAlternateScreen()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	draw := func() error {
		w, h := terminal.Size()
		return display.Draw(terminal.Render(session.View(), w, h))
	}
	if err := draw(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down survey explorer...")
			return nil

		case key, ok := <-keyboard.Events():
			if !ok {
				util.LogInfo("Keyboard input closed, leaving survey explorer")
				return nil
			}
			if err := session.Handle(key); err != nil {
				if errors.Is(err, ErrQuit) {
					return nil
				}
				return err
			}
			if err := draw(); err != nil {
				return err
			}

		case <-ticker.C:
			if err := draw(); err != nil {
				return err
			}
		}
	}
}
