// Package selection tracks which dataset is selected and which one is hovered,
// and turns each interaction into binder commands.
package selection

import "github.com/penwyp/go-survey-explorer/internal/core/model"

// Op is the kind of a Command.
type Op string

const (
	// OpBind binds the dataset named by Key to Tag. An empty Key binds nothing,
	// fading out whatever carries Tag.
	OpBind Op = "bind"
	// OpRetag moves every element tagged From to To without animation.
	OpRetag Op = "retag"
)

// Command is one instruction for the visual binder.
type Command struct {
	Op   Op                `json:"op"`
	Tag  model.VisualState `json:"tag,omitempty"`
	Key  string            `json:"key,omitempty"`
	From model.VisualState `json:"from,omitempty"`
	To   model.VisualState `json:"to,omitempty"`
}

func bind(tag model.VisualState, key string) Command {
	return Command{Op: OpBind, Tag: tag, Key: key}
}

func retag(from, to model.VisualState) Command {
	return Command{Op: OpRetag, From: from, To: to}
}

// State is the selection state of one dashboard. Keys name datasets, e.g. an
// occupation category code.
type State struct {
	Selected string `json:"selected"`
	Hovered  string `json:"hovered"`
}

// Hovering reports whether a mouseover overlay is shown.
func (s State) Hovering() bool {
	return s.Hovered != ""
}

// Mouseover overlays the dataset key on top of the selection, which moves to
// the background. Hovering the current selection or the current overlay is a
// no-op, except that entering the selection while another overlay is shown
// drops that overlay.
func (s State) Mouseover(key string) (State, []Command) {
	if key == "" || key == s.Hovered {
		return s, nil
	}
	if key == s.Selected {
		return s.Mouseout()
	}
	var cmds []Command
	if s.Hovering() {
		// the background layer already holds the selection
		s.Hovered = key
		return s, append(cmds, bind(model.StateMouseover, key))
	}
	s.Hovered = key
	cmds = append(cmds,
		retag(model.StateSelected, model.StateBackground),
		bind(model.StateMouseover, key),
	)
	return s, cmds
}

// Mouseout clears the overlay and brings the selection back to the front.
func (s State) Mouseout() (State, []Command) {
	if !s.Hovering() {
		return s, nil
	}
	s.Hovered = ""
	return s, []Command{
		bind(model.StateMouseover, ""),
		retag(model.StateBackground, model.StateSelected),
	}
}

// Select promotes the overlay for key to the selection. The previous
// selection is removed, not backgrounded.
func (s State) Select(key string) (State, []Command) {
	if key == s.Selected {
		return s.Mouseout()
	}
	s, cmds := s.Mouseover(key)
	cmds = append(cmds,
		bind(model.StateBackground, ""),
		retag(model.StateMouseover, model.StateSelected),
	)
	s.Selected = key
	s.Hovered = ""
	return s, cmds
}

// Rebind returns the commands that redraw the visible layers after the
// dataset behind their keys changed, e.g. on a filter change.
func (s State) Rebind() []Command {
	if s.Hovering() {
		return []Command{
			bind(model.StateBackground, s.Selected),
			bind(model.StateMouseover, s.Hovered),
		}
	}
	return []Command{bind(model.StateSelected, s.Selected)}
}
