// Package explore drives the dashboards from the keyboard in a terminal.
package explore

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
	"github.com/penwyp/go-survey-explorer/internal/core/autocomplete"
	"github.com/penwyp/go-survey-explorer/internal/presentation/interaction"
	"github.com/penwyp/go-survey-explorer/internal/presentation/terminal"
)

// ErrQuit is returned by Handle when the user asks to leave.
var ErrQuit = errors.New("quit")

// Session is the keyboard state of one explore run. Keys are translated into
// dashboard events and dispatched through the manager.
type Session struct {
	manager *dashboard.Manager
	kinds   []dashboard.Kind
	current int

	cursor  int
	segment int
	hovered int
	typing  bool
	help    bool
	status  string
}

// NewSession starts on kind, or the first loaded dashboard when kind is empty.
func NewSession(m *dashboard.Manager, kind dashboard.Kind) (*Session, error) {
	kinds := m.Kinds()
	if len(kinds) == 0 {
		return nil, dashboard.ErrUnknownDashboard
	}
	s := &Session{manager: m, kinds: kinds}
	if kind != "" {
		found := false
		for i, k := range kinds {
			if k == kind {
				s.current, found = i, true
			}
		}
		if !found {
			return nil, errors.Join(dashboard.ErrUnknownDashboard, errors.New(string(kind)))
		}
	}
	return s, nil
}

// Kind returns the dashboard on screen.
func (s *Session) Kind() dashboard.Kind {
	return s.kinds[s.current]
}

// View returns the current frame input.
func (s *Session) View() terminal.View {
	snap, err := s.manager.Snapshot(s.Kind())
	status := s.status
	if err != nil {
		status = err.Error()
	}
	return terminal.View{
		Snapshot: snap,
		Cursor:   s.cursor,
		Segment:  s.segment,
		Status:   status,
		Help:     s.help,
		Typing:   s.typing,
	}
}

func (s *Session) dispatch(ev dashboard.Event) error {
	_, err := s.manager.Dispatch(s.Kind(), ev)
	if err != nil {
		s.status = err.Error()
	}
	return err
}

// Handle applies one key. Dispatch errors are reported on the status line
// rather than returned; only ErrQuit ends the session.
func (s *Session) Handle(k interaction.KeyEvent) error {
	if k.Type == interaction.KeyCtrlC {
		return ErrQuit
	}
	s.status = ""
	if s.typing {
		s.handleSearch(k)
		return nil
	}

	switch {
	case k.Type == interaction.KeyChar && k.Key == 'q':
		return ErrQuit
	case k.Type == interaction.KeyChar && k.Key == '?':
		s.help = !s.help
		return nil
	case k.Type == interaction.KeyTab:
		s.switchDashboard()
		return nil
	case k.Type == interaction.KeyChar && k.Key >= '1' && k.Key <= '9':
		s.cycleFilter(int(k.Key - '1'))
		return nil
	}

	switch s.Kind() {
	case dashboard.KindWage:
		s.handleWage(k)
	case dashboard.KindTimeUse:
		s.handleTimeUse(k)
	}
	return nil
}

func (s *Session) switchDashboard() {
	s.leaveElement()
	s.current = (s.current + 1) % len(s.kinds)
	s.cursor, s.segment = 0, 0
}

// cycleFilter activates the option after the active one in filter group n.
func (s *Session) cycleFilter(n int) {
	snap, err := s.manager.Snapshot(s.Kind())
	if err != nil || n >= len(snap.Filters) {
		return
	}
	f := snap.Filters[n]
	next := 0
	for i, o := range f.Options {
		if o.Active {
			next = (i + 1) % len(f.Options)
		}
	}
	s.leaveElement()
	if s.dispatch(dashboard.Event{Kind: dashboard.EventFilter, Group: f.ID, Option: f.Options[next].ID}) == nil {
		s.status = f.Name + ": " + f.Options[next].Label
	}
}

func isKey(k interaction.KeyEvent, t interaction.KeyType, alt rune) bool {
	return k.Type == t || (alt != 0 && k.Type == interaction.KeyChar && k.Key == alt)
}

func (s *Session) handleWage(k interaction.KeyEvent) {
	snap, err := s.manager.Snapshot(dashboard.KindWage)
	if err != nil || len(snap.Lists) == 0 {
		return
	}
	switch {
	case isKey(k, interaction.KeyUp, 'k'):
		s.cursor = (s.cursor - 1 + len(snap.Lists)) % len(snap.Lists)
		s.dispatch(dashboard.Event{Kind: dashboard.EventMouseover, Key: snap.Lists[s.cursor].Key})
	case isKey(k, interaction.KeyDown, 'j'):
		s.cursor = (s.cursor + 1) % len(snap.Lists)
		s.dispatch(dashboard.Event{Kind: dashboard.EventMouseover, Key: snap.Lists[s.cursor].Key})
	case k.Type == interaction.KeyChar && k.Key == ' ':
		s.dispatch(dashboard.Event{Kind: dashboard.EventMouseover, Key: snap.Lists[s.cursor].Key})
	case k.Type == interaction.KeyEnter:
		s.leaveElement()
		s.dispatch(dashboard.Event{Kind: dashboard.EventSelect, Key: snap.Lists[s.cursor].Key})
	case k.Type == interaction.KeyEscape:
		s.dispatch(dashboard.Event{Kind: dashboard.EventMouseout})
	case isKey(k, interaction.KeyLeft, 'h'):
		s.stepPoint(snap, -1)
	case isKey(k, interaction.KeyRight, 'l'):
		s.stepPoint(snap, 1)
	}
}

// stepPoint hovers the previous or next point that is not fading.
func (s *Session) stepPoint(snap dashboard.Snapshot, step int) {
	var ids []int
	at := -1
	for _, e := range snap.Elements {
		if e.Fading {
			continue
		}
		if e.ID == s.hovered {
			at = len(ids)
		}
		ids = append(ids, e.ID)
	}
	if len(ids) == 0 {
		return
	}
	next := 0
	if at >= 0 {
		next = (at + step + len(ids)) % len(ids)
	}
	s.hoverElement(ids[next], 0)
}

func (s *Session) hoverElement(id, segment int) {
	if s.dispatch(dashboard.Event{Kind: dashboard.EventElementOver, ElementID: id, Segment: segment}) == nil {
		s.hovered = id
	}
}

func (s *Session) leaveElement() {
	if s.hovered == 0 {
		return
	}
	s.dispatch(dashboard.Event{Kind: dashboard.EventElementOut, ElementID: s.hovered})
	s.hovered = 0
}

func (s *Session) handleTimeUse(k interaction.KeyEvent) {
	snap, err := s.manager.Snapshot(dashboard.KindTimeUse)
	if err != nil {
		return
	}
	rows := liveElements(snap)
	n := len(rows)
	if s.cursor >= n && n > 0 {
		s.cursor = n - 1
	}
	switch {
	case k.Type == interaction.KeyChar && k.Key == '/':
		s.typing = true
		s.dispatch(dashboard.Event{Kind: dashboard.EventSearchFocus})
	case isKey(k, interaction.KeyUp, 'k'):
		if s.cursor > 0 {
			s.moveTimeline(s.cursor - 1)
		}
	case isKey(k, interaction.KeyDown, 'j'):
		if s.cursor < n-1 {
			s.moveTimeline(s.cursor + 1)
		}
		s.dispatch(dashboard.Event{Kind: dashboard.EventScroll, Position: float64(s.cursor + 1), Extent: float64(n)})
	case k.Type == interaction.KeyPageDown:
		// No extent: treated as scrolled to the end.
		s.dispatch(dashboard.Event{Kind: dashboard.EventScroll})
	case isKey(k, interaction.KeyLeft, 'h'):
		s.stepSegment(rows, -1)
	case isKey(k, interaction.KeyRight, 'l'):
		s.stepSegment(rows, 1)
	case k.Type == interaction.KeyEscape:
		s.leaveElement()
	}
}

func (s *Session) moveTimeline(to int) {
	s.leaveElement()
	s.cursor, s.segment = to, 0
}

// liveElements drops elements that are fading out after a filter change.
func liveElements(snap dashboard.Snapshot) []dashboard.ElementView {
	rows := make([]dashboard.ElementView, 0, len(snap.Elements))
	for _, e := range snap.Elements {
		if !e.Fading {
			rows = append(rows, e)
		}
	}
	return rows
}

func (s *Session) stepSegment(rows []dashboard.ElementView, step int) {
	if s.cursor >= len(rows) {
		return
	}
	e := rows[s.cursor]
	if len(e.Segments) == 0 {
		return
	}
	if s.hovered == e.ID {
		s.segment = (s.segment + step + len(e.Segments)) % len(e.Segments)
	} else {
		s.leaveElement()
		s.segment = 0
	}
	s.hoverElement(e.ID, s.segment)
}

func (s *Session) handleSearch(k interaction.KeyEvent) {
	snap, err := s.manager.Snapshot(dashboard.KindTimeUse)
	if err != nil || snap.Search == nil {
		s.typing = false
		return
	}
	query := snap.Search.Query
	switch k.Type {
	case interaction.KeyChar:
		s.dispatch(dashboard.Event{Kind: dashboard.EventSearchInput, Query: query + string(k.Key)})
	case interaction.KeyBackspace:
		if query != "" {
			_, size := utf8.DecodeLastRuneInString(query)
			s.dispatch(dashboard.Event{Kind: dashboard.EventSearchInput, Query: query[:len(query)-size]})
		}
	case interaction.KeyUp:
		s.dispatch(dashboard.Event{Kind: dashboard.EventSearchKey, SearchKey: string(autocomplete.KeyUp)})
	case interaction.KeyDown:
		s.dispatch(dashboard.Event{Kind: dashboard.EventSearchKey, SearchKey: string(autocomplete.KeyDown)})
	case interaction.KeyEnter, interaction.KeyTab, interaction.KeyEscape:
		key := autocomplete.KeyEnter
		switch k.Type {
		case interaction.KeyTab:
			key = autocomplete.KeyTab
		case interaction.KeyEscape:
			key = autocomplete.KeyEscape
		}
		s.dispatch(dashboard.Event{Kind: dashboard.EventSearchKey, SearchKey: string(key)})
		s.typing = false
		s.cursor, s.segment = 0, 0
		if after, err := s.manager.Snapshot(dashboard.KindTimeUse); err == nil {
			s.status = strconv.Itoa(after.Results) + " results"
		}
	}
}
