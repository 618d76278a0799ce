package dashboard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/penwyp/go-survey-explorer/internal/core/annotate"
	"github.com/penwyp/go-survey-explorer/internal/core/autocomplete"
	"github.com/penwyp/go-survey-explorer/internal/core/binder"
	"github.com/penwyp/go-survey-explorer/internal/core/filter"
	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/core/scale"
	"github.com/penwyp/go-survey-explorer/internal/core/scene"
	"github.com/penwyp/go-survey-explorer/internal/core/selection"
	"github.com/penwyp/go-survey-explorer/internal/core/store"
	"github.com/penwyp/go-survey-explorer/internal/core/timeline"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

// ResultsKey names the filtered respondent list.
const ResultsKey = "results"

const (
	timelineHeight       = 60
	timelineMarginBottom = 20
	timelineMarginX      = 10
	rectHeight           = 20
	rectHeightHovered    = 35
	labelOffset          = 5
	profileWidth         = 260
)

// ActivityColors colors timeline segments by category.
var ActivityColors = map[string]string{
	"Sleep":               "#EFEFEF",
	"Personal Care":       "#EFEFEF",
	"Housework & Errands": "#247BA0",
	"Work":                "#0D2C54",
	"Education":           "#69306D",
	"Caring for Others":   "#70C1B3",
	"Eating & drinking":   "#F77046",
	"Leisure":             "#FFB400",
	"Travel":              "#999999",
	"Missing data":        "#FFFFFF",
}

const defaultActivityColor = "#CCCCCC"

// TimeUse is the list of respondents' activity timelines.
type TimeUse struct {
	base

	store    *store.Store[*model.TimeUseRecord]
	registry *filter.Registry[*model.TimeUseRecord]
	rows     map[string]int
	search   *filter.ActivitySearch
	catalog  autocomplete.Catalog
	ac       autocomplete.State
	pager    *binder.Pager
	sel      selection.State

	filtered []*model.TimeUseRecord
	badges   annotate.Annotations

	window timeline.Window
	time   scale.Time
}

// NewTimeUse builds the time-use dashboard and binds the first page.
func NewTimeUse(cfg *Config, records []*model.TimeUseRecord, categories []model.CategoryActivities) (*TimeUse, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	window := timeline.Window{Start: timeline.DefaultWindowStart}
	st, err := store.Load(records, store.NormalizeTimeline(window))
	if err != nil {
		return nil, fmt.Errorf("load time-use records: %w", err)
	}

	t := &TimeUse{
		base:     newBase(cfg, "timeuse"),
		store:    st,
		registry: filter.NewRegistry[*model.TimeUseRecord](),
		rows:     make(map[string]int),
		search:   filter.NewActivitySearch(categories),
		catalog:  autocomplete.Catalog(categories),
		ac:       autocomplete.New(),
		pager:    binder.NewPager(cfg.PageSize, cfg.CompletionThreshold),
		window:   window,
	}
	for row, groups := range filter.TimeUseGroups() {
		for _, g := range groups {
			if err := t.registry.Register(g); err != nil {
				return nil, err
			}
			t.rows[g.ID] = row
		}
	}
	if err := t.registry.Register(filter.Group[*model.TimeUseRecord]{ID: filter.GroupSearch, Name: "Search"}); err != nil {
		return nil, err
	}
	t.layout()
	t.refilter(false)

	var res Result
	var cmds []selection.Command
	t.sel, cmds = t.sel.Select(ResultsKey)
	t.run(cmds, t.resolve, &res)

	t.log.Info("time-use dashboard ready",
		util.F("respondents", st.Len()),
		util.F("categories", len(categories)))
	return t, nil
}

func (t *TimeUse) Kind() Kind { return KindTimeUse }

// Search returns the search box state.
func (t *TimeUse) Search() autocomplete.State { return t.ac }

func (t *TimeUse) layout() {
	t.time = scale.NewTime(t.window, timelineMarginX, t.width-timelineMarginX)
}

// refilter recomputes the filtered list. Badges only follow demographic
// changes: they count the records before the search is applied.
func (t *TimeUse) refilter(searchOnly bool) {
	set := t.registry.Set()
	t.filtered = t.store.Filter(set.Predicate())
	t.pager.Reset(len(t.filtered))
	if searchOnly {
		return
	}
	preSearch := t.store.Filter(set.Without(filter.GroupSearch).Predicate())
	groups := t.registry.Groups()
	demographic := groups[:0:0]
	for _, g := range groups {
		if g.ID != filter.GroupSearch {
			demographic = append(demographic, g)
		}
	}
	t.badges = annotate.Merge(
		annotate.Annotate(preSearch, annotate.GroupItems(demographic)),
		annotate.Activities(preSearch, t.catalog),
	)
}

func (t *TimeUse) resolve(key string) []int {
	if key != ResultsKey {
		return nil
	}
	page := binder.Page(t.pager, t.filtered)
	ids := make([]int, len(page))
	for i, r := range page {
		ids[i] = r.ID
	}
	return ids
}

func (t *TimeUse) rebind(res *Result) {
	t.run(t.sel.Rebind(), t.resolve, res)
}

func (t *TimeUse) applySearch(res *Result) error {
	if _, err := t.registry.SetCustom(filter.GroupSearch, t.search.Option(t.ac.Query, t.ac.Picked)); err != nil {
		return err
	}
	t.refilter(true)
	res.Refiltered = true
	t.rebind(res)
	return nil
}

// Dispatch applies one interaction.
func (t *TimeUse) Dispatch(ev Event) (Result, error) {
	var res Result
	var eff autocomplete.Effect
	switch ev.Kind {
	case EventFilter:
		if ev.Group == filter.GroupSearch {
			return res, fmt.Errorf("%w: %s is set through search events", filter.ErrUnknownGroup, ev.Group)
		}
		if _, err := t.registry.SetActive(ev.Group, ev.Option); err != nil {
			return res, err
		}
		t.refilter(false)
		res.Refiltered = true
		t.rebind(&res)
		return res, nil

	case EventSearchFocus:
		t.ac, eff = t.ac.Focus(t.catalog)
	case EventSearchInput:
		t.ac, eff = t.ac.Input(t.catalog, ev.Query)
	case EventSearchKey:
		t.ac, eff = t.ac.Press(autocomplete.Key(ev.SearchKey))
	case EventSearchBlur:
		t.ac, eff = t.ac.Blur()

	case EventScroll:
		if t.pager.Scroll(ev.Position, ev.Extent) {
			res.PageAdded = true
			t.rebind(&res)
		}
		return res, nil

	case EventElementOver:
		return res, t.elementOver(ev.ElementID, ev.Segment)

	case EventElementOut:
		t.hover.Out(ev.ElementID)
		return res, nil

	case EventResize:
		if err := t.resize(ev); err != nil {
			return res, err
		}
		t.layout()
		return res, nil

	default:
		return res, unsupported(KindTimeUse, ev)
	}

	if eff.Refilter {
		return res, t.applySearch(&res)
	}
	return res, nil
}

func rowBaseline(slot int) float64 {
	return float64(slot*timelineHeight + timelineHeight - timelineMarginBottom)
}

func (t *TimeUse) elementOver(id, segment int) error {
	e, ok := t.graph.Find(id)
	if !ok {
		return fmt.Errorf("%w: %d", binder.ErrNoElement, id)
	}
	r, ok := t.store.ByID(e.RecordID)
	if !ok {
		return fmt.Errorf("%w: record %d", binder.ErrNoElement, e.RecordID)
	}
	if segment < 0 || segment >= len(r.Activities) {
		return fmt.Errorf("activity %d out of range for respondent %d", segment, r.ID)
	}
	act := r.Activities[segment]
	y := rowBaseline(e.Slot)
	return t.hover.Over(binder.HoverTarget{
		ElementID:     id,
		Segment:       segment,
		DetachSummary: true,
		Overlays: []scene.Overlay{
			{
				Name:  "label",
				Title: act.Name,
				Lines: []string{util.FormatHHMM(act.Begin) + " - " + util.FormatHHMM(act.End)},
				X:     t.time.Map(act.End) + labelOffset,
				Y:     y - rectHeightHovered,
			},
			{
				Name:  "profile",
				Title: r.Day,
				Lines: Profile(r),
				X:     t.width - profileWidth,
				Y:     y - timelineHeight + timelineMarginBottom,
			},
		},
	})
}

// Summary is the one-line demographic description of a respondent.
func Summary(r *model.TimeUseRecord) string {
	return fmt.Sprintf("%dyo %s %s", r.Age, r.Race, r.Sex)
}

// Profile lists the respondent details shown while hovering a timeline.
func Profile(r *model.TimeUseRecord) []string {
	employment := r.EmploymentStatus
	if r.FullPart != "" {
		employment += " (" + strings.ToLower(r.FullPart) + ")"
	}
	lines := []string{
		"Education: " + r.Education,
		"Employment: " + employment,
		"Marital status: " + r.MaritalStatus,
		"Household size: " + strconv.Itoa(r.HouseholdSize),
		"Family income: " + r.FamilyIncome,
		"Living with: " + LivingWith(r.LivingWith),
	}
	if r.Occupation != "" {
		lines = append(lines, "Occupation: "+r.Occupation)
	}
	return lines
}

// LivingWith describes the other household members.
func LivingWith(lw model.LivingWith) string {
	var parts []string
	if lw.Partner != "" {
		parts = append(parts, strings.ToLower(lw.Partner))
	}
	if n := len(lw.Children); n > 0 {
		parts = append(parts, plural(n, "child", "children")+" ("+ages(lw.Children)+")")
	}
	if n := len(lw.Grandchildren); n > 0 {
		parts = append(parts, plural(n, "grandchild", "grandchildren")+" ("+ages(lw.Grandchildren)+")")
	}
	if len(lw.Parents) > 0 {
		parts = append(parts, strings.Join(lw.Parents, " and "))
	}
	if lw.Siblings > 0 {
		parts = append(parts, plural(lw.Siblings, "sibling", "siblings"))
	}
	if lw.OtherRelatives > 0 {
		parts = append(parts, plural(lw.OtherRelatives, "other relative", "other relatives"))
	}
	if lw.Housemates > 0 {
		parts = append(parts, plural(lw.Housemates, "housemate", "housemates"))
	}
	if len(parts) == 0 {
		return "alone"
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

func ages(a []int) string {
	s := make([]string, len(a))
	for i, v := range a {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, ", ")
}

// Snapshot renders the current state.
func (t *TimeUse) Snapshot() Snapshot {
	snap := Snapshot{
		Kind:    KindTimeUse,
		Title:   "A day in the life",
		Width:   t.width,
		Height:  t.height,
		Results: len(t.filtered),
		Page:    &PageView{Shown: t.pager.Limit(), Total: len(t.filtered), More: t.pager.More()},
	}
	for _, gs := range t.registry.States() {
		if gs.ID == filter.GroupSearch {
			continue
		}
		fv := FilterView{ID: gs.ID, Name: gs.Name, Row: t.rows[gs.ID]}
		for _, o := range gs.Options {
			fv.Options = append(fv.Options, OptionView{
				ID: o.ID, Label: o.Label, Active: o.Active,
				Badge: t.badges.Get(annotate.OptionKey(gs.ID, o.ID)),
			})
		}
		snap.Filters = append(snap.Filters, fv)
	}

	sv := &SearchView{Open: t.ac.Open, Query: t.ac.Query, Selected: t.ac.Selected}
	for _, s := range t.ac.Suggestions {
		sv.Suggestions = append(sv.Suggestions, SuggestionView{Suggestion: s, Badge: t.badges.Get(s.Key())})
	}
	snap.Search = sv

	for _, d := range t.time.HourTicks(2) {
		snap.XAxis = append(snap.XAxis, Tick{Pos: t.time.Map(d), Label: util.FormatClock(d)})
	}

	snap.Elements = t.elements()
	for i := range snap.Elements {
		ev := &snap.Elements[i]
		r, ok := t.store.ByID(ev.RecordID)
		if !ok {
			continue
		}
		e, _ := t.graph.Find(ev.ID)
		ev.Y = rowBaseline(ev.Slot)
		ev.Day = r.Day
		if e == nil || !e.SummaryDetached {
			ev.Summary = Summary(r)
		}
		for j, a := range r.Activities {
			seg := SegmentView{
				X:        t.time.Map(a.Begin),
				Width:    t.time.Width(a.Begin, a.End),
				Height:   rectHeight,
				Color:    activityColor(a.Category),
				Activity: a.Name,
				Category: a.Category,
			}
			if e != nil && e.Hovered && e.Segment == j {
				seg.Height = rectHeightHovered
				seg.Highlighted = true
			}
			ev.Segments = append(ev.Segments, seg)
		}
	}
	sort.SliceStable(snap.Elements, func(i, j int) bool {
		return snap.Elements[i].Slot < snap.Elements[j].Slot
	})
	snap.Overlays = t.graph.Overlays()
	return snap
}

func activityColor(category string) string {
	if c, ok := ActivityColors[category]; ok {
		return c
	}
	return defaultActivityColor
}
