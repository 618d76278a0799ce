// Package svg renders dashboard snapshots as standalone SVG documents.
package svg

import (
	"fmt"
	"io"
	"math"
	"strconv"

	svgo "github.com/ajstarks/svgo"

	"github.com/penwyp/go-survey-explorer/internal/application/dashboard"
	"github.com/penwyp/go-survey-explorer/internal/core/model"
	"github.com/penwyp/go-survey-explorer/internal/core/scene"
)

// unit is the number of SVG user units per pixel. svgo takes integer
// coordinates, so everything is drawn at this resolution and scaled back.
const unit = 10

// TagColors fills scatterplot points by layer.
var TagColors = map[model.VisualState]string{
	model.StateSelected:   "#247BA0",
	model.StateMouseover:  "#F77046",
	model.StateBackground: "#CCCCCC",
}

const (
	defaultWidth  = 960
	defaultHeight = 600

	axisStyle  = "stroke:#888;stroke-width:10"
	labelStyle = `fill="#666"`
	fontStyle  = `font-family="Helvetica,Arial,sans-serif" font-size="120"`
)

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

func u(v float64) int {
	return int(math.Round(v * unit))
}

func opacity(v float64) string {
	return `opacity="` + strconv.FormatFloat(v, 'f', 3, 64) + `"`
}

// Render writes snap to w.
func Render(w io.Writer, snap dashboard.Snapshot) error {
	ew := &errWriter{w: w}
	canvas := svgo.New(ew)

	width, height := int(math.Ceil(snap.Width)), int(math.Ceil(snap.Height))
	if width <= 0 || height <= 0 {
		width, height = defaultWidth, defaultHeight
	}
	if snap.Kind == dashboard.KindTimeUse {
		height = timeUseHeight(snap)
	}
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width*unit, height*unit))
	canvas.Title(snap.Title)
	canvas.Group(fontStyle)

	if snap.LoadError != "" {
		canvas.Text(u(10), u(20), snap.LoadError, `fill="#C0392B"`)
	}

	switch snap.Kind {
	case dashboard.KindWage:
		renderWage(canvas, snap)
	case dashboard.KindTimeUse:
		renderTimeUse(canvas, snap)
	}
	renderOverlays(canvas, snap.Overlays)

	canvas.Gend()
	canvas.End()
	return ew.err
}

func timeUseHeight(snap dashboard.Snapshot) int {
	rows := 0
	for _, e := range snap.Elements {
		if e.Slot+1 > rows {
			rows = e.Slot + 1
		}
	}
	h := float64(rows)*60 + 30
	return int(math.Max(h, snap.Height))
}

func renderWage(canvas *svgo.SVG, snap dashboard.Snapshot) {
	if len(snap.XAxis) > 0 && len(snap.YAxis) > 0 {
		x0, x1 := snap.XAxis[0].Pos, snap.XAxis[len(snap.XAxis)-1].Pos
		yBase := snap.YAxis[0].Pos
		xLeft := x0 - 20
		canvas.Line(u(xLeft), u(yBase), u(x1+20), u(yBase), axisStyle)
		canvas.Line(u(xLeft), u(yBase), u(xLeft), u(snap.YAxis[len(snap.YAxis)-1].Pos), axisStyle)
		for _, t := range snap.XAxis {
			canvas.Text(u(t.Pos), u(yBase+16), t.Label, `text-anchor="middle"`, labelStyle)
		}
		for _, t := range snap.YAxis {
			canvas.Text(u(xLeft-6), u(t.Pos), t.Label, `text-anchor="end"`, `dy=".3em"`, labelStyle)
		}
	}

	// Background points go first so highlighted layers stay on top.
	for _, tag := range []model.VisualState{model.StateBackground, model.StateSelected, model.StateMouseover} {
		canvas.Gid(string(tag))
		for _, e := range snap.Elements {
			if e.Tag != tag {
				continue
			}
			canvas.Circle(u(e.X), u(e.Y), u(e.R),
				"fill:"+TagColors[tag],
				opacity(e.Opacity),
				fmt.Sprintf(`data-element="%d"`, e.ID))
		}
		canvas.Gend()
	}
}

func renderTimeUse(canvas *svgo.SVG, snap dashboard.Snapshot) {
	for _, t := range snap.XAxis {
		canvas.Text(u(t.Pos), u(12), t.Label, `text-anchor="middle"`, labelStyle)
	}
	for _, e := range snap.Elements {
		canvas.Group(opacity(e.Opacity), fmt.Sprintf(`data-element="%d"`, e.ID))
		for i, s := range e.Segments {
			if s.Width <= 0 {
				continue
			}
			attrs := []string{"fill:" + s.Color, fmt.Sprintf(`data-segment="%d"`, i)}
			if s.Highlighted {
				attrs = append(attrs, `stroke="#333"`, `stroke-width="10"`)
			}
			canvas.Rect(u(s.X), u(e.Y-s.Height), u(s.Width), u(s.Height), attrs...)
		}
		if e.Summary != "" {
			canvas.Text(u(10), u(e.Y+14), e.Summary+" ("+e.Day+")", labelStyle)
		}
		canvas.Gend()
	}
	if snap.Page != nil && snap.Page.More {
		y := timeUseHeight(snap) - 8
		canvas.Text(u(10), u(float64(y)), fmt.Sprintf("Showing %d of %d", snap.Page.Shown, snap.Page.Total), labelStyle)
	}
}

func renderOverlays(canvas *svgo.SVG, overlays []scene.Overlay) {
	for _, o := range overlays {
		canvas.Group(`class="overlay"`, `id="`+o.Name+`"`)
		lines := len(o.Lines)
		if o.Title != "" {
			lines++
		}
		canvas.Rect(u(o.X), u(o.Y), u(240), u(float64(lines)*16+8), "fill:#fff", `stroke="#333"`, `stroke-width="10"`, `fill-opacity="0.9"`)
		y := o.Y + 16
		if o.Title != "" {
			canvas.Text(u(o.X+8), u(y), o.Title, `font-weight="bold"`)
			y += 16
		}
		for _, l := range o.Lines {
			canvas.Text(u(o.X+8), u(y), l)
			y += 16
		}
		canvas.Gend()
	}
}
