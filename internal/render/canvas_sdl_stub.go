//go:build !sdl

package render

import "errors"

func newSDLCanvas(width, height int, title string) (Canvas, error) {
	return nil, errors.New("SDL backend not enabled; rebuild with -tags sdl")
}

// SupportsSDL reports whether the SDL backend was compiled in.
func SupportsSDL() bool { return false }
