package render

import (
	"image/color"
	"testing"

	"github.com/jtainer/vectorscope/internal/scope"
)

type fakeCanvas struct {
	w, h   int
	lines  [][4]float64
	widths []float64
	colors []color.RGBA
}

func (f *fakeCanvas) Size() (int, int) { return f.w, f.h }
func (f *fakeCanvas) Begin() error     { return nil }
func (f *fakeCanvas) Line(x0, y0, x1, y1, width float64, c color.RGBA) {
	f.lines = append(f.lines, [4]float64{x0, y0, x1, y1})
	f.widths = append(f.widths, width)
	f.colors = append(f.colors, c)
}
func (f *fakeCanvas) End() error          { return nil }
func (f *fakeCanvas) PollEvents() []Event { return nil }
func (f *fakeCanvas) SetTitle(string)     {}
func (f *fakeCanvas) ToggleFullscreen()   {}
func (f *fakeCanvas) Close() error        { return nil }

func TestProjectIdentityTransform(t *testing.T) {
	x, y := project(scope.Point{X: 0.25, Y: -0.5}, 1, 0, 0)
	if x != 0.25 || y != -0.5 {
		t.Fatalf("identity transform moved point: (%f, %f)", x, y)
	}
}

func TestProjectScalesAndOffsets(t *testing.T) {
	x, y := project(scope.Point{X: 1, Y: -1}, 50, 100, 100)
	if x != 150 || y != 50 {
		t.Fatalf("got (%f, %f) want (150, 50)", x, y)
	}
}

func TestDrawFrameSegmentCount(t *testing.T) {
	ring := scope.NewRing(16)
	canvas := &fakeCanvas{w: 100, h: 100}

	NewTrace(ring).DrawFrame(canvas)

	if len(canvas.lines) != 15 {
		t.Fatalf("lines=%d want=%d", len(canvas.lines), 15)
	}
}

func TestDrawFrameCentersOnMinorDimension(t *testing.T) {
	ring := scope.NewRing(4)
	canvas := &fakeCanvas{w: 200, h: 100}

	// scale = 50, offset = (100, 50); zero points land on the center.
	NewTrace(ring).DrawFrame(canvas)
	for i, line := range canvas.lines {
		if line != [4]float64{100, 50, 100, 50} {
			t.Fatalf("line %d not centered: %v", i, line)
		}
	}
}

func TestDrawFrameMapsAmplitudeToPixels(t *testing.T) {
	ring := scope.NewRing(4)
	ring.Append(scope.Point{X: 1, Y: -1})
	canvas := &fakeCanvas{w: 100, h: 100}

	NewTrace(ring).DrawFrame(canvas)

	last := canvas.lines[len(canvas.lines)-1]
	if last[2] != 100 || last[3] != 0 {
		t.Fatalf("full-scale point drawn at (%f, %f), want (100, 0)", last[2], last[3])
	}
}

func TestDrawFrameUsesFixedTheme(t *testing.T) {
	ring := scope.NewRing(4)
	canvas := &fakeCanvas{w: 64, h: 64}

	NewTrace(ring).DrawFrame(canvas)

	for i := range canvas.lines {
		if canvas.widths[i] != LineWidth {
			t.Fatalf("line %d width=%f want=%f", i, canvas.widths[i], float64(LineWidth))
		}
		if canvas.colors[i] != LineColor {
			t.Fatalf("line %d color=%v want=%v", i, canvas.colors[i], LineColor)
		}
	}
}

func TestDrawFrameFollowsResize(t *testing.T) {
	ring := scope.NewRing(4)
	ring.Append(scope.Point{X: 1, Y: 0})
	trace := NewTrace(ring)

	small := &fakeCanvas{w: 100, h: 100}
	trace.DrawFrame(small)
	big := &fakeCanvas{w: 400, h: 400}
	trace.DrawFrame(big)

	smallLast := small.lines[len(small.lines)-1]
	bigLast := big.lines[len(big.lines)-1]
	if smallLast[2] != 100 || bigLast[2] != 400 {
		t.Fatalf("trace did not rescale: small=%v big=%v", smallLast, bigLast)
	}
}
