package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Event is a user input action reported by a canvas backend.
type Event int

const (
	EventQuit Event = iota
	EventToggleFullscreen
	EventSeekBack
	EventSeekForward
)

// Canvas is the drawing surface and input boundary shared by the SDL window
// and the terminal fallback. Coordinates are pixels with the origin at the
// top left; the terminal backend exposes a virtual pixel grid over its cells.
type Canvas interface {
	// Size returns the current drawable dimensions. Queried every frame so
	// the trace follows resizes and fullscreen toggles.
	Size() (width, height int)
	// Begin clears the surface to the background color.
	Begin() error
	// Line draws one segment with the given stroke width.
	Line(x0, y0, x1, y1, width float64, c color.RGBA)
	// End presents the finished frame.
	End() error
	// PollEvents drains pending input events.
	PollEvents() []Event
	// SetTitle updates the window title or status line.
	SetTitle(title string)
	// ToggleFullscreen switches between windowed and fullscreen display.
	ToggleFullscreen()
	Close() error
}

// NewCanvas selects a backend by name. "auto" prefers SDL when compiled in
// (build tag sdl) and falls back to the terminal otherwise.
func NewCanvas(backend string, width, height int, title string) (Canvas, error) {
	switch strings.ToLower(backend) {
	case "sdl":
		return newSDLCanvas(width, height, title)
	case "term", "terminal", "ascii":
		return NewTermCanvas(title)
	case "", "auto":
		if SupportsSDL() {
			return newSDLCanvas(width, height, title)
		}
		return NewTermCanvas(title)
	default:
		return nil, fmt.Errorf("unknown render backend %q (want auto, sdl, or term)", backend)
	}
}
