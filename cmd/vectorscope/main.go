// Command vectorscope plays a .wav or .mp3 file and draws its stereo field
// as a Lissajous trace: left channel on X, right channel on Y.
//
// Usage:
//
//	vectorscope [options] song.wav
//	vectorscope -synth             # no file, generated test figure
//	vectorscope -backend term song.mp3
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jtainer/vectorscope/internal/app"
	"github.com/jtainer/vectorscope/internal/audio"
	"github.com/jtainer/vectorscope/internal/scope"
)

func main() {
	var (
		width       = flag.Int("width", 1024, "Initial window width in pixels")
		height      = flag.Int("height", 1024, "Initial window height in pixels")
		targetFPS   = flag.Float64("fps", 120, "Target display frames per second")
		ringSize    = flag.Int("ring", scope.DefaultCapacity, "Number of sample points drawn each frame")
		backend     = flag.String("backend", "auto", "Render backend (auto|sdl|term)")
		seekStep    = flag.Duration("seek-step", 5*time.Second, "Seek increment for the arrow keys")
		listen      = flag.String("listen", "", "Optional address for the web monitor (e.g. :8080)")
		synth       = flag.Bool("synth", false, "Play a generated test signal instead of a file")
		synthLen    = flag.Duration("synth-duration", 30*time.Second, "Length of the generated test signal")
		profilePath = flag.String("profile", "", "Write per-frame timing CSV to this file")
		listDevs    = flag.Bool("list-audio-devices", false, "List available audio output devices and exit")
		debug       = flag.Bool("debug", false, "Enable verbose logging")
	)

	flag.Parse()

	if *width <= 0 || *height <= 0 {
		log.Fatalf("invalid dimensions: width=%d height=%d", *width, *height)
	}
	if *targetFPS <= 0 {
		log.Fatalf("fps must be positive (got %.2f)", *targetFPS)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New(os.Stderr, "[vectorscope] ", log.LstdFlags)
	if !*debug {
		logger.SetFlags(0)
	}

	if err := audio.Initialize(); err != nil {
		logger.Fatalf("failed to initialize PortAudio: %v", err)
	}
	defer audio.Terminate()

	if *listDevs {
		devices, err := audio.ListOutputDevices()
		if err != nil {
			logger.Fatalf("list devices: %v", err)
		}
		fmt.Printf("\n=== Audio Output Devices ===\n\n")
		for _, dev := range devices {
			markers := ""
			if dev.IsDefaultOutput {
				markers = " (default)"
			}
			fmt.Printf("- %s [%s]%s\n    outputs:%d sample:%.0f Hz\n",
				dev.Name, dev.HostAPI, markers, dev.MaxOutput, dev.DefaultSampleHz)
		}
		return
	}

	path := flag.Arg(0)
	if path == "" && !*synth {
		// Nothing to play; not an error.
		return
	}

	a, err := app.New(app.Config{
		Path:          path,
		Synth:         *synth,
		SynthDuration: *synthLen,
		Width:         *width,
		Height:        *height,
		TargetFPS:     *targetFPS,
		RingSize:      *ringSize,
		SeekStep:      *seekStep,
		Backend:       *backend,
		Listen:        *listen,
		ProfilePath:   *profilePath,
		Log:           logger,
	})
	if err != nil {
		// Unreadable or unsupported input is a quiet, clean exit.
		logger.Printf("cannot play %s: %v", path, err)
		return
	}
	defer func() {
		if err := a.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "cleanup error: %v\n", err)
		}
	}()

	if err := a.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Printf("runtime error: %v", err)
	}
}
