package dashboard

import (
	"fmt"
	"math"

	"github.com/penwyp/go-survey-explorer/internal/core/annotate"
	"github.com/penwyp/go-survey-explorer/internal/core/binder"
	"github.com/penwyp/go-survey-explorer/internal/core/filter"
	"github.com/penwyp/go-survey-explorer/internal/core/jitter"
	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/core/scale"
	"github.com/penwyp/go-survey-explorer/internal/core/scene"
	"github.com/penwyp/go-survey-explorer/internal/core/selection"
	"github.com/penwyp/go-survey-explorer/internal/core/store"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

// AllKey names the whole (subsampled) wage dataset.
const AllKey = "all"

const (
	chartMargin = 50
	xAxisShift  = 20
	yAxisShift  = 10

	pointRadius        = 2.25
	pointRadiusHovered = 4
)

// eduTicks spaces the education axis with wider gaps between school stages.
var eduTicks = []float64{1, 2, 3, 4, 6, 7, 8, 10, 11, 12}

var eduDomain = [2]float64{0.5, 12.5}

// Wage is the wage-by-education scatterplot.
type Wage struct {
	base

	store     *store.Store[*model.WageRecord]
	dict      *model.Dictionary
	registry  *filter.Registry[*model.WageRecord]
	subsample map[int]struct{}
	sel       selection.State

	categories []model.CodeLabel
	filtered   []*model.WageRecord
	badges     annotate.Annotations

	edu  scale.Linear
	wage scale.Linear
}

// NewWage builds the wage dashboard and binds the subsampled dataset.
func NewWage(cfg *Config, records []*model.WageRecord, dict *model.Dictionary) (*Wage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	src := jitter.New(cfg.JitterSeed)
	st, err := store.Load(records,
		store.TopCodeWage(cfg.WageCeiling),
		store.JitterEducation(src, cfg.JitterScale),
	)
	if err != nil {
		return nil, fmt.Errorf("load wage records: %w", err)
	}
	if dict == nil {
		dict = &model.Dictionary{}
	}

	w := &Wage{
		base:      newBase(cfg, "wage"),
		store:     st,
		dict:      dict,
		registry:  filter.NewRegistry[*model.WageRecord](),
		subsample: make(map[int]struct{}),
	}
	for _, g := range filter.WageGroups() {
		if err := w.registry.Register(g); err != nil {
			return nil, err
		}
	}
	for _, r := range st.All() {
		if src.Keep(r.ID, cfg.SubsampleRate) {
			w.subsample[r.ID] = struct{}{}
		}
	}
	w.categories = append([]model.CodeLabel{{Code: AllKey, Label: "All Occupations"}}, dict.CategoryList()...)
	w.layout()
	w.refilter()

	var res Result
	var cmds []selection.Command
	w.sel, cmds = w.sel.Select(AllKey)
	w.run(cmds, w.resolve, &res)

	w.log.Info("wage dashboard ready",
		util.F("records", st.Len()),
		util.F("subsample", len(w.subsample)),
		util.F("categories", len(w.categories)-1))
	return w, nil
}

func (w *Wage) Kind() Kind { return KindWage }

// Selection returns the current selection state.
func (w *Wage) Selection() selection.State { return w.sel }

func (w *Wage) layout() {
	w.edu = scale.NewLinear(eduDomain[0], eduDomain[1], chartMargin+xAxisShift, w.width-chartMargin)
	w.wage = scale.NewLinear(0, w.cfg.WageCeiling, w.height-chartMargin-yAxisShift, chartMargin)
}

func (w *Wage) refilter() {
	w.filtered = w.store.Filter(w.registry.Combined())
	items := annotate.GroupItems(w.registry.Groups())
	for _, c := range w.categories {
		if c.Code == AllKey {
			continue
		}
		items = append(items, annotate.Item[*model.WageRecord]{Key: categoryBadgeKey(c.Code), Predicate: filter.InCategory(c.Code)})
	}
	w.badges = annotate.Annotate(w.filtered, items)
}

func categoryBadgeKey(code string) string {
	return "catly:" + code
}

func (w *Wage) resolve(key string) []int {
	if key == "" {
		return nil
	}
	var ids []int
	for _, r := range w.filtered {
		if key == AllKey {
			if _, ok := w.subsample[r.ID]; ok {
				ids = append(ids, r.ID)
			}
		} else if r.CATLY == key {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

func (w *Wage) validKey(key string) error {
	for _, c := range w.categories {
		if c.Code == key {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Dispatch applies one interaction.
func (w *Wage) Dispatch(ev Event) (Result, error) {
	var res Result
	var cmds []selection.Command
	switch ev.Kind {
	case EventSelect:
		if err := w.validKey(ev.Key); err != nil {
			return res, err
		}
		w.sel, cmds = w.sel.Select(ev.Key)
		w.run(cmds, w.resolve, &res)

	case EventMouseover:
		if err := w.validKey(ev.Key); err != nil {
			return res, err
		}
		w.sel, cmds = w.sel.Mouseover(ev.Key)
		w.run(cmds, w.resolve, &res)

	case EventMouseout:
		w.sel, cmds = w.sel.Mouseout()
		w.run(cmds, w.resolve, &res)

	case EventFilter:
		if _, err := w.registry.SetActive(ev.Group, ev.Option); err != nil {
			return res, err
		}
		w.refilter()
		res.Refiltered = true
		w.run(w.sel.Rebind(), w.resolve, &res)

	case EventElementOver:
		return res, w.elementOver(ev.ElementID)

	case EventElementOut:
		w.hover.Out(ev.ElementID)

	case EventResize:
		if err := w.resize(ev); err != nil {
			return res, err
		}
		w.layout()

	default:
		return res, unsupported(KindWage, ev)
	}
	return res, nil
}

func (w *Wage) elementOver(id int) error {
	e, ok := w.graph.Find(id)
	if !ok {
		return fmt.Errorf("%w: %d", binder.ErrNoElement, id)
	}
	r, ok := w.store.ByID(e.RecordID)
	if !ok {
		return fmt.Errorf("%w: record %d", binder.ErrNoElement, e.RecordID)
	}
	x, y := w.position(r)
	return w.hover.Over(binder.HoverTarget{
		ElementID: id,
		Segment:   scene.NoSegment,
		Overlays: []scene.Overlay{{
			Name:  "infobox",
			Title: "Occupation",
			Lines: []string{w.dict.Occupation(r.OCCLY), "(" + util.FormatWage(r.INCWAGE) + ")"},
			X:     x,
			Y:     y,
		}},
	})
}

// eduPosition maps an EDUC2 code onto the tick layout. Codes outside the
// known levels sit at their raw value, clamped to the axis.
func eduPosition(code int) float64 {
	if code >= 0 && code < len(eduTicks) {
		return eduTicks[code]
	}
	return math.Max(eduDomain[0], math.Min(eduDomain[1], float64(code)))
}

func (w *Wage) position(r *model.WageRecord) (float64, float64) {
	return w.edu.Map(eduPosition(r.EDUC2) + r.EduJitter), w.wage.Map(r.INCWAGE)
}

// Snapshot renders the current state.
func (w *Wage) Snapshot() Snapshot {
	snap := Snapshot{
		Kind:    KindWage,
		Title:   "Wages by education",
		Width:   w.width,
		Height:  w.height,
		Results: len(w.filtered),
	}
	for _, gs := range w.registry.States() {
		fv := FilterView{ID: gs.ID, Name: gs.Name}
		for _, o := range gs.Options {
			fv.Options = append(fv.Options, OptionView{
				ID: o.ID, Label: o.Label, Active: o.Active,
				Badge: w.badges.Get(annotate.OptionKey(gs.ID, o.ID)),
			})
		}
		snap.Filters = append(snap.Filters, fv)
	}
	for _, c := range w.categories {
		cv := CategoryView{Key: c.Code, Label: c.Label}
		switch c.Code {
		case w.sel.Hovered:
			cv.State = model.StateMouseover
		case w.sel.Selected:
			cv.State = model.StateSelected
		}
		if c.Code == AllKey {
			cv.Badge = annotate.Count{Matches: w.badges.Total, Percent: annotate.Percent(w.badges.Total, w.badges.Total)}
		} else {
			cv.Badge = w.badges.Get(categoryBadgeKey(c.Code))
		}
		snap.Lists = append(snap.Lists, cv)
	}

	levels := w.dict.EducationLevels()
	for i, t := range eduTicks {
		label := ""
		if i < len(levels) {
			label = levels[i].Label
		}
		snap.XAxis = append(snap.XAxis, Tick{Pos: w.edu.Map(t), Label: label})
	}
	for _, v := range w.wage.Ticks(5) {
		snap.YAxis = append(snap.YAxis, Tick{Pos: w.wage.Map(v), Label: util.FormatWageShort(v)})
	}

	snap.Elements = w.elements()
	for i := range snap.Elements {
		ev := &snap.Elements[i]
		r, ok := w.store.ByID(ev.RecordID)
		if !ok {
			continue
		}
		ev.X, ev.Y = w.position(r)
		ev.R = pointRadius
		if ev.Hovered {
			ev.R = pointRadiusHovered
		}
	}
	snap.Overlays = w.graph.Overlays()
	return snap
}
