// Package dashboard holds the application state of the wage and time-use
// dashboards. Every interaction is an Event dispatched into a dashboard,
// which updates its filters and selection and rebinds the scene graph.
package dashboard

import (
	"fmt"
	"time"

	"github.com/penwyp/go-survey-explorer/internal/core/binder"
	"github.com/penwyp/go-survey-explorer/internal/core/scene"
	"github.com/penwyp/go-survey-explorer/internal/core/selection"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

// Dashboard is one interactive view. Implementations are not safe for
// concurrent use; Manager serializes access.
type Dashboard interface {
	Kind() Kind
	Dispatch(ev Event) (Result, error)
	Snapshot() Snapshot
	// Advance evaluates transitions at now and drops finished exits.
	Advance(now time.Time)
	// Settle advances to the dashboard clock's current time.
	Settle()
}

// resolver turns a dataset key into the record ids to bind.
type resolver func(key string) []int

type base struct {
	cfg    *Config
	graph  *scene.Graph
	binder *binder.Binder
	hover  *binder.Hover
	width  float64
	height float64
	log    *util.ComponentLogger
}

func newBase(cfg *Config, component string) base {
	g := scene.New(cfg.Clock)
	return base{
		cfg:    cfg,
		graph:  g,
		binder: binder.New(g, cfg.FadeDuration),
		hover:  binder.NewHover(g),
		width:  cfg.Width,
		height: cfg.Height,
		log:    util.ForComponent(component),
	}
}

// run applies selection commands to the scene.
func (b *base) run(cmds []selection.Command, resolve resolver, res *Result) {
	for _, c := range cmds {
		switch c.Op {
		case selection.OpBind:
			res.addDiff(b.binder.BindIDs(resolve(c.Key), c.Tag))
		case selection.OpRetag:
			b.binder.Retag(c.From, c.To)
		}
		res.Commands = append(res.Commands, c)
	}
	b.dropStaleHover()
}

// dropStaleHover clears overlays of a hovered element that started fading.
func (b *base) dropStaleHover() {
	id := b.hover.Current()
	if id == 0 {
		return
	}
	if e, ok := b.graph.Find(id); !ok || e.Fading {
		b.hover.Out(id)
	}
}

func (b *base) Advance(now time.Time) {
	b.graph.Advance(now)
	b.dropStaleHover()
}

func (b *base) Settle() {
	b.Advance(b.graph.Clock().Now())
}

// resize changes the canvas size. A zero side keeps its current value.
func (b *base) resize(ev Event) error {
	if ev.Width < 0 || ev.Height < 0 || (ev.Width == 0 && ev.Height == 0) {
		return fmt.Errorf("invalid size %vx%v", ev.Width, ev.Height)
	}
	if ev.Width > 0 {
		b.width = ev.Width
	}
	if ev.Height > 0 {
		b.height = ev.Height
	}
	return nil
}

func (b *base) elements() []ElementView {
	all := b.graph.Elements()
	out := make([]ElementView, 0, len(all))
	for _, e := range all {
		out = append(out, ElementView{
			ID:       e.ID,
			RecordID: e.RecordID,
			Tag:      e.Tag,
			Fading:   e.Fading,
			Opacity:  e.Opacity,
			Hovered:  e.Hovered,
			Slot:     e.Slot,
		})
	}
	return out
}

func unsupported(kind Kind, ev Event) error {
	if !ev.Kind.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
	return fmt.Errorf("%w: %s on %s", ErrUnsupportedEvent, ev.Kind, kind)
}
