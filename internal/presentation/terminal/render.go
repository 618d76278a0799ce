// Package terminal draws dashboard snapshots as text frames.
package terminal

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
	"github.com/penwyp/go-survey-explorer/internal/core/annotate"
	"github.com/penwyp/go-survey-explorer/internal/core/autocomplete"
	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/util"
)

// View is one frame's input.
type View struct {
	Snapshot dashboard.Snapshot
	// Cursor is the highlighted row: a category for the wage dashboard,
	// a timeline for the time-use dashboard, counting only rows not fading out.
	Cursor int
	// Segment is the highlighted activity of the cursor's timeline.
	Segment int
	Status  string
	Help    bool
	// Typing is set while keystrokes go to the search box.
	Typing bool
}

const (
	summaryWidth  = 28
	labelWidth    = 34
	maxSuggestion = 8
	minPlotHeight = 8
)

var pointGlyphs = map[model.VisualState]rune{
	model.StateBackground: '·',
	model.StateSelected:   '•',
	model.StateMouseover:  '●',
}

var pointColors = map[model.VisualState]string{
	model.StateBackground: "#888888",
	model.StateSelected:   "#247BA0",
	model.StateMouseover:  "#F77046",
}

// Render lays out v in a width x height character frame.
func Render(v View, width, height int) []string {
	s := v.Snapshot
	lines := []string{util.ColorBold + util.PadRight(s.Title, width-20) + util.ColorReset +
		fmt.Sprintf("%20s", util.FormatThousands(int64(s.Results))+" results")}
	if s.LoadError != "" {
		lines = append(lines, util.ColorRed+util.PadRight("Load error: "+s.LoadError, width)+util.ColorReset)
	}
	if v.Help {
		lines = append(lines, helpLines(s.Kind)...)
		return clip(lines, height)
	}
	lines = append(lines, filterLines(s)...)

	var body []string
	switch s.Kind {
	case dashboard.KindWage:
		body = wageLines(v, width, height-len(lines)-len(s.Overlays)*4-2)
	case dashboard.KindTimeUse:
		body = timeUseLines(v, width)
	}
	lines = append(lines, body...)
	lines = append(lines, overlayLines(s)...)

	footer := "? help  q quit"
	if v.Status != "" {
		footer = v.Status
	}
	lines = clip(lines, height-1)
	return append(lines, util.ColorDim+util.PadRight(footer, width)+util.ColorReset)
}

func clip(lines []string, n int) []string {
	if n >= 0 && len(lines) > n {
		return lines[:n]
	}
	return lines
}

func badge(c annotate.Count) string {
	return fmt.Sprintf("%s %s", util.FormatThousands(int64(c.Matches)), util.FormatPercent(c.Percent))
}

func filterLines(s dashboard.Snapshot) []string {
	rows := map[int][]string{}
	maxRow := 0
	for _, f := range s.Filters {
		var opts []string
		for _, o := range f.Options {
			label := o.Label + " " + util.FormatPercent(o.Badge.Percent)
			if o.Active {
				label = util.ColorBold + "[" + label + "]" + util.ColorReset
			}
			opts = append(opts, label)
		}
		rows[f.Row] = append(rows[f.Row], f.Name+": "+strings.Join(opts, " "))
		maxRow = max(maxRow, f.Row)
	}
	var out []string
	for r := 0; r <= maxRow; r++ {
		if len(rows[r]) > 0 {
			out = append(out, strings.Join(rows[r], "   "))
		}
	}
	return out
}

func stateMarker(st model.VisualState) string {
	switch st {
	case model.StateSelected:
		return "●"
	case model.StateMouseover:
		return "◆"
	}
	return " "
}

type cell struct {
	glyph rune
	color string
}

func wageLines(v View, width, room int) []string {
	s := v.Snapshot
	var out []string
	for i, c := range s.Lists {
		cursor := "  "
		if i == v.Cursor {
			cursor = "> "
		}
		out = append(out, cursor+stateMarker(c.State)+" "+util.PadRight(c.Label, labelWidth)+" "+badge(c.Badge))
	}

	plotH := max(room-len(out), minPlotHeight)
	plotW := max(width-2, 10)
	grid := make([][]cell, plotH)
	for r := range grid {
		grid[r] = make([]cell, plotW)
	}
	if s.Width > 0 && s.Height > 0 {
		for _, tag := range []model.VisualState{model.StateBackground, model.StateSelected, model.StateMouseover} {
			for _, e := range s.Elements {
				if e.Tag != tag || e.Fading {
					continue
				}
				col := int(e.X / s.Width * float64(plotW))
				row := int(e.Y / s.Height * float64(plotH))
				if col < 0 || col >= plotW || row < 0 || row >= plotH {
					continue
				}
				glyph := pointGlyphs[tag]
				if e.Hovered {
					glyph = '◉'
				}
				grid[row][col] = cell{glyph: glyph, color: pointColors[tag]}
			}
		}
	}
	for _, row := range grid {
		var b strings.Builder
		b.WriteString("│")
		for _, c := range row {
			if c.glyph == 0 {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(util.Foreground24(c.color))
			b.WriteRune(c.glyph)
			b.WriteString(util.ColorReset)
		}
		out = append(out, b.String())
	}
	out = append(out, "└"+strings.Repeat("─", plotW))
	out = append(out, axisLabels(s, plotW))
	return out
}

func axisLabels(s dashboard.Snapshot, w int) string {
	line := []rune(strings.Repeat(" ", w+1))
	if s.Width <= 0 {
		return string(line)
	}
	next := 0
	for _, t := range s.XAxis {
		col := 1 + int(t.Pos/s.Width*float64(w))
		label := []rune(runewidth.Truncate(t.Label, 10, ""))
		start := max(col-len(label)/2, next)
		if start+len(label) > len(line) {
			break
		}
		copy(line[start:], label)
		next = start + len(label) + 1
	}
	return string(line)
}

func timeUseLines(v View, width int) []string {
	s := v.Snapshot
	var out []string
	if s.Search != nil {
		out = append(out, searchLines(s.Search, v.Typing)...)
	}
	barW := max(width-summaryWidth-3, 10)
	if len(s.XAxis) > 1 {
		out = append(out, strings.Repeat(" ", summaryWidth+3)+hourRuler(s.XAxis, barW))
	}
	live := 0
	for _, e := range s.Elements {
		cursor := "  "
		if !e.Fading {
			if live == v.Cursor {
				cursor = "> "
			}
			live++
		}
		label := e.Summary
		if label == "" {
			label = e.Day
		}
		line := cursor + util.PadRight(label, summaryWidth) + " " + timelineBar(e, s.XAxis, barW)
		if e.Fading {
			line = util.ColorDim + line + util.ColorReset
		}
		out = append(out, line)
	}
	if p := s.Page; p != nil {
		msg := fmt.Sprintf("Showing %s of %s", util.FormatThousands(int64(p.Shown)), util.FormatThousands(int64(p.Total)))
		if p.More {
			msg += " (scroll down for more)"
		}
		out = append(out, util.ColorDim+msg+util.ColorReset)
	}
	return out
}

func searchLines(sv *dashboard.SearchView, typing bool) []string {
	caret := ""
	if typing {
		caret = "▏"
	}
	out := []string{"Search activities: " + sv.Query + caret}
	if !sv.Open {
		return out
	}
	for i, sg := range sv.Suggestions {
		if i >= maxSuggestion {
			out = append(out, fmt.Sprintf("    … %d more", len(sv.Suggestions)-maxSuggestion))
			break
		}
		indent := "    "
		if sg.Kind == autocomplete.KindActivity {
			indent = "      "
		}
		line := indent + util.PadRight(sg.Label, labelWidth) + " " + badge(sg.Badge)
		if i == sv.Selected {
			line = "\033[7m" + line + util.ColorReset
		}
		out = append(out, line)
	}
	return out
}

func span(axis []dashboard.Tick) (float64, float64) {
	return axis[0].Pos, axis[len(axis)-1].Pos
}

func hourRuler(axis []dashboard.Tick, w int) string {
	x0, x1 := span(axis)
	line := []rune(strings.Repeat(" ", w))
	next := 0
	for _, t := range axis {
		col := int((t.Pos - x0) / (x1 - x0) * float64(w-1))
		label := []rune(t.Label)
		if col < next || col+len(label) > w {
			continue
		}
		copy(line[col:], label)
		next = col + len(label) + 1
	}
	return string(line)
}

func timelineBar(e dashboard.ElementView, axis []dashboard.Tick, w int) string {
	if len(axis) < 2 {
		return ""
	}
	x0, x1 := span(axis)
	var b strings.Builder
	for c := 0; c < w; c++ {
		pos := x0 + (float64(c)+0.5)/float64(w)*(x1-x0)
		glyph, color := " ", ""
		for _, seg := range e.Segments {
			if pos >= seg.X && pos < seg.X+seg.Width {
				glyph, color = "█", seg.Color
				if seg.Highlighted {
					glyph = "▓"
				}
				break
			}
		}
		if color == "" {
			b.WriteString(glyph)
			continue
		}
		b.WriteString(util.Foreground24(color) + glyph + util.ColorReset)
	}
	return b.String()
}

func overlayLines(s dashboard.Snapshot) []string {
	var out []string
	for _, o := range s.Overlays {
		if o.Title != "" {
			out = append(out, "  "+util.ColorBold+o.Title+util.ColorReset)
		}
		for _, l := range o.Lines {
			out = append(out, "    "+l)
		}
	}
	return out
}

func helpLines(kind dashboard.Kind) []string {
	common := []string{
		"",
		"  ↑/↓ or k/j   move the cursor",
		"  ?            toggle this help",
		"  q, Ctrl+C    quit",
		"  1-9          cycle the options of filter group N",
		"  Tab          switch dashboard",
	}
	switch kind {
	case dashboard.KindWage:
		return append(common,
			"  Space        preview the category under the cursor",
			"  Enter        select the category under the cursor",
			"  h/l          hover the previous/next point")
	case dashboard.KindTimeUse:
		return append(common,
			"  /            search activities (Enter/Esc to finish)",
			"  h/l          hover the previous/next activity",
			"  PgDn         load the next page")
	}
	return common
}
