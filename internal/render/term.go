package render

import (
	"fmt"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"
)

// Brightness ramp for overdrawn cells: the more segments cross a cell, the
// hotter its glyph, which approximates the phosphor glow of a real scope.
var traceRamp = []rune(" .:+*#@")

const (
	defaultTermCols = 80
	defaultTermRows = 24
)

// TermCanvas renders the trace into a terminal cell grid using ANSI escapes.
// Each cell counts how many segments touched it and maps the count onto
// traceRamp. Cells are roughly twice as tall as wide, so the canvas exposes a
// virtual pixel grid of one cell by two pixels to keep circles round.
type TermCanvas struct {
	cols   int
	rows   int // drawable rows, excluding the status bar
	cells  []uint8
	status string

	events    chan Event
	quit      chan struct{}
	closeOnce sync.Once
	frame     strings.Builder
}

// NewTermCanvas sets up the alternate screen and starts the keyboard
// listener. The title is shown in the status bar.
func NewTermCanvas(title string) (*TermCanvas, error) {
	c := &TermCanvas{
		status: title,
		quit:   make(chan struct{}),
	}
	c.resize()

	fmt.Print("\x1b[?1049h") // alternate screen
	fmt.Print("\x1b[2J\x1b[H")
	fmt.Print("\x1b[?25l") // hide cursor

	c.startInputListener()
	return c, nil
}

func (c *TermCanvas) resize() {
	cols, rows := defaultTermCols, defaultTermRows
	if fd := int(os.Stdout.Fd()); fd >= 0 {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			cols, rows = w, h
		}
	}
	if rows > 1 {
		rows-- // reserve the status bar
	}
	if cols != c.cols || rows != c.rows {
		c.cols = cols
		c.rows = rows
		c.cells = make([]uint8, cols*rows)
	}
}

// Size reports the virtual pixel dimensions: one pixel per column, two per
// row.
func (c *TermCanvas) Size() (int, int) {
	return c.cols, c.rows * 2
}

// Begin re-reads the terminal size and clears the cell grid.
func (c *TermCanvas) Begin() error {
	c.resize()
	for i := range c.cells {
		c.cells[i] = 0
	}
	return nil
}

// Line plots a segment into the cell grid. Stroke width and color are fixed
// by the cell medium; brightness comes from overdraw instead.
func (c *TermCanvas) Line(x0, y0, x1, y1, _ float64, _ color.RGBA) {
	c.plotLine(int(x0), int(y0)/2, int(x1), int(y1)/2)
}

func (c *TermCanvas) plotLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *TermCanvas) plot(x, y int) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return
	}
	idx := y*c.cols + x
	if int(c.cells[idx]) < len(traceRamp)-1 {
		c.cells[idx]++
	}
}

// End flushes the cell grid and status bar to the terminal.
func (c *TermCanvas) End() error {
	b := &c.frame
	b.Reset()
	b.Grow(c.cols*c.rows + 64)
	b.WriteString("\x1b[H")
	for y := 0; y < c.rows; y++ {
		row := c.cells[y*c.cols : (y+1)*c.cols]
		for _, hits := range row {
			b.WriteRune(traceRamp[hits])
		}
		b.WriteByte('\n')
	}
	b.WriteString(statusBar(c.status, c.cols))
	fmt.Print(b.String())
	return nil
}

// PollEvents drains whatever the keyboard listener has queued.
func (c *TermCanvas) PollEvents() []Event {
	var events []Event
	for {
		select {
		case evt, ok := <-c.events:
			if !ok {
				return events
			}
			events = append(events, evt)
		default:
			return events
		}
	}
}

// SetTitle updates the status bar text.
func (c *TermCanvas) SetTitle(title string) {
	c.status = title
}

// ToggleFullscreen is a no-op: the terminal already owns its window.
func (c *TermCanvas) ToggleFullscreen() {}

// Close stops the keyboard listener and restores the terminal.
func (c *TermCanvas) Close() error {
	c.closeOnce.Do(func() {
		close(c.quit)
		_ = keyboard.Close()
		fmt.Print("\x1b[?25h")         // show cursor
		fmt.Print("\x1b[?1049l\x1b[0m") // leave alternate screen
	})
	return nil
}

func (c *TermCanvas) startInputListener() {
	if err := keyboard.Open(); err != nil {
		// Not a tty; run without input.
		return
	}

	events := make(chan Event, 16)
	c.events = events

	go func() {
		defer close(events)
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case <-c.quit:
				return
			default:
			}
			switch {
			case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || char == 'q' || char == 'Q':
				events <- EventQuit
				return
			case char == 'f' || char == 'F':
				events <- EventToggleFullscreen
			case key == keyboard.KeyArrowLeft:
				sendEvent(events, EventSeekBack)
			case key == keyboard.KeyArrowRight:
				sendEvent(events, EventSeekForward)
			}
		}
	}()
}

func sendEvent(events chan Event, evt Event) {
	select {
	case events <- evt:
	default:
	}
}

func statusBar(text string, width int) string {
	if width <= 0 {
		return text
	}
	if len(text) >= width {
		return text[:width]
	}
	return text + strings.Repeat(" ", width-len(text))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
