package render

import (
	"image/color"
	"testing"
)

func testTermCanvas(cols, rows int) *TermCanvas {
	return &TermCanvas{
		cols:  cols,
		rows:  rows,
		cells: make([]uint8, cols*rows),
	}
}

func (c *TermCanvas) cellAt(x, y int) uint8 {
	return c.cells[y*c.cols+x]
}

func TestTermSizeReportsVirtualPixels(t *testing.T) {
	c := testTermCanvas(80, 24)
	w, h := c.Size()
	if w != 80 || h != 48 {
		t.Fatalf("Size()=(%d, %d) want=(80, 48)", w, h)
	}
}

func TestTermLineHitsBothEndpoints(t *testing.T) {
	c := testTermCanvas(20, 10)
	c.Line(2, 4, 16, 14, LineWidth, color.RGBA{})

	if c.cellAt(2, 2) == 0 {
		t.Fatalf("start cell not plotted")
	}
	if c.cellAt(16, 7) == 0 {
		t.Fatalf("end cell not plotted")
	}
}

func TestTermLineClipsOutOfBounds(t *testing.T) {
	c := testTermCanvas(10, 5)
	// Must not panic even when the segment leaves the grid entirely.
	c.Line(-50, -50, 200, 200, LineWidth, color.RGBA{})
}

func TestTermOverdrawBrightensUpToRampEnd(t *testing.T) {
	c := testTermCanvas(4, 2)
	for i := 0; i < len(traceRamp)+5; i++ {
		c.plot(1, 1)
	}
	if got := c.cellAt(1, 1); int(got) != len(traceRamp)-1 {
		t.Fatalf("hit count=%d want=%d", got, len(traceRamp)-1)
	}
}

func TestTermBeginClearsCells(t *testing.T) {
	c := testTermCanvas(4, 2)
	c.plot(0, 0)
	if err := c.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if c.cellAt(0, 0) != 0 {
		t.Fatalf("Begin left stale cells")
	}
}

func TestStatusBarPadding(t *testing.T) {
	if got := statusBar("abc", 6); got != "abc   " {
		t.Fatalf("statusBar pad: %q", got)
	}
	if got := statusBar("abcdef", 4); got != "abcd" {
		t.Fatalf("statusBar truncate: %q", got)
	}
	if got := statusBar("abc", 0); got != "abc" {
		t.Fatalf("statusBar zero width: %q", got)
	}
}

func TestPollEventsWithoutListenerIsEmpty(t *testing.T) {
	c := testTermCanvas(4, 2)
	if events := c.PollEvents(); len(events) != 0 {
		t.Fatalf("unexpected events: %v", events)
	}
}
