//go:build sdl

package render

import (
	"fmt"
	"image/color"

	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"
)

type sdlCanvas struct {
	window     *sdl.Window
	renderer   *sdl.Renderer
	title      string
	fullscreen bool
}

func newSDLCanvas(width, height int, title string) (Canvas, error) {
	if err := sdl.InitSubSystem(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("init SDL video: %w", err)
	}
	window, err := sdl.CreateWindow(
		title,
		sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(width), int32(height),
		sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE|sdl.WINDOW_ALLOW_HIGHDPI,
	)
	if err != nil {
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("create window: %w", err)
	}
	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		_ = window.Destroy()
		sdl.QuitSubSystem(sdl.INIT_VIDEO)
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	return &sdlCanvas{
		window:   window,
		renderer: renderer,
		title:    title,
	}, nil
}

func (c *sdlCanvas) Size() (int, int) {
	w, h, err := c.renderer.GetOutputSize()
	if err != nil {
		ww, wh := c.window.GetSize()
		return int(ww), int(wh)
	}
	return int(w), int(h)
}

func (c *sdlCanvas) Begin() error {
	bg := BackgroundColor
	if err := c.renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A); err != nil {
		return err
	}
	return c.renderer.Clear()
}

func (c *sdlCanvas) Line(x0, y0, x1, y1, width float64, col color.RGBA) {
	w := int32(width)
	if w < 1 {
		w = 1
	}
	gfx.ThickLineRGBA(c.renderer,
		int32(x0), int32(y0), int32(x1), int32(y1),
		w, col.R, col.G, col.B, col.A,
	)
}

func (c *sdlCanvas) End() error {
	c.renderer.Present()
	return nil
}

func (c *sdlCanvas) PollEvents() []Event {
	var events []Event
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			events = append(events, EventQuit)
		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN {
				continue
			}
			switch e.Keysym.Sym {
			case sdl.K_ESCAPE, sdl.K_q:
				if e.Repeat == 0 {
					events = append(events, EventQuit)
				}
			case sdl.K_f:
				if e.Repeat == 0 {
					events = append(events, EventToggleFullscreen)
				}
			case sdl.K_LEFT:
				// Held seek keys repeat.
				events = append(events, EventSeekBack)
			case sdl.K_RIGHT:
				events = append(events, EventSeekForward)
			}
		}
	}
	return events
}

func (c *sdlCanvas) SetTitle(title string) {
	if title != c.title {
		c.window.SetTitle(title)
		c.title = title
	}
}

func (c *sdlCanvas) ToggleFullscreen() {
	if c.fullscreen {
		_ = c.window.SetFullscreen(0)
	} else {
		_ = c.window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
	}
	c.fullscreen = !c.fullscreen
}

func (c *sdlCanvas) Close() error {
	if c.renderer != nil {
		_ = c.renderer.Destroy()
		c.renderer = nil
	}
	if c.window != nil {
		_ = c.window.Destroy()
		c.window = nil
	}
	sdl.QuitSubSystem(sdl.INIT_VIDEO)
	return nil
}

// SupportsSDL reports whether the SDL backend was compiled in.
func SupportsSDL() bool { return true }
