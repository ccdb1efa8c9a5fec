package render

import (
	"image/color"

	"github.com/jtainer/vectorscope/internal/scope"
)

// Fixed theme matching the classic hardware scope look.
var (
	BackgroundColor = color.RGBA{A: 255}
	LineColor       = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// LineWidth is the stroke width of the trace in pixels.
const LineWidth = 2.0

// Trace draws the ring contents as one connected polyline, the classic
// vectorscope display: left channel drives X, right channel drives Y.
type Trace struct {
	ring      *scope.Ring
	lineWidth float64
	color     color.RGBA
}

// NewTrace creates a trace over the given ring using the fixed theme.
func NewTrace(ring *scope.Ring) *Trace {
	return &Trace{
		ring:      ring,
		lineWidth: LineWidth,
		color:     LineColor,
	}
}

// DrawFrame walks the ring once and draws every segment onto the canvas. The
// transform is derived from the current canvas size each call, so the trace
// stays centered and proportionally scaled across resizes: unit amplitude
// maps to half the minor dimension around the surface center.
//
// The whole walk happens inside the ring's exclusion window, so a frame never
// mixes pre- and post-overwrite samples. Trace keeps no state between calls.
func (t *Trace) DrawFrame(c Canvas) {
	w, h := c.Size()
	scale := float64(min(w, h)) / 2
	ox, oy := float64(w)/2, float64(h)/2

	t.ring.Walk(func(begin, end scope.Point) {
		x0, y0 := project(begin, scale, ox, oy)
		x1, y1 := project(end, scale, ox, oy)
		c.Line(x0, y0, x1, y1, t.lineWidth, t.color)
	})
}

// project maps a unit-amplitude sample point into pixel space.
func project(p scope.Point, scale, ox, oy float64) (float64, float64) {
	return float64(p.X)*scale + ox, float64(p.Y)*scale + oy
}
