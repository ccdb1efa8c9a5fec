package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jtainer/vectorscope/internal/analyzer"
	"github.com/jtainer/vectorscope/internal/audio"
	"github.com/jtainer/vectorscope/internal/render"
	"github.com/jtainer/vectorscope/internal/scope"
	"github.com/jtainer/vectorscope/internal/web"
)

// State tracks the lifecycle of a playback session.
type State int

const (
	StateIdle State = iota
	StateLoaded
	StatePlaying
	StateStopped
)

// Source is the playback contract the main loop drives. *audio.Source
// implements it; tests substitute fakes.
type Source interface {
	AttachProcessor(audio.Processor)
	Play() error
	Advance()
	IsPlaying() bool
	Seek(time.Duration)
	Position() time.Duration
	Duration() time.Duration
	SampleRate() int
	Close() error
}

// Config configures the application runtime.
type Config struct {
	Path          string
	Synth         bool
	SynthDuration time.Duration
	Width         int
	Height        int
	TargetFPS     float64
	RingSize      int
	SeekStep      time.Duration
	Backend       string
	Listen        string
	ProfilePath   string
	Log           *log.Logger
}

// How often the status read-out is refreshed.
const statusInterval = 250 * time.Millisecond

// App wires the audio source, the shared sample ring, and the display loop.
type App struct {
	cfg      Config
	log      *log.Logger
	ring     *scope.Ring
	ingest   *scope.Ingest
	trace    *render.Trace
	analyzer *analyzer.Analyzer
	source   Source
	canvas   render.Canvas
	monitor  *web.Server
	prof     *profiler
	state    State

	lastTick   time.Time
	lastStatus time.Time
}

// New opens the audio source described by cfg and prepares the scope around
// it. A failed open leaves nothing to clean up besides the source itself.
func New(cfg Config) (*App, error) {
	var source Source
	var err error
	if cfg.Synth {
		source, err = audio.OpenSynth(cfg.SynthDuration)
	} else {
		source, err = audio.Open(cfg.Path)
	}
	if err != nil {
		return nil, err
	}
	return newApp(cfg, source), nil
}

// newApp wires an already-open source; split from New for testing.
func newApp(cfg Config, source Source) *App {
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = 120
	}
	if cfg.Width <= 0 {
		cfg.Width = 1024
	}
	if cfg.Height <= 0 {
		cfg.Height = 1024
	}
	if cfg.SeekStep <= 0 {
		cfg.SeekStep = 5 * time.Second
	}
	if cfg.Log == nil {
		cfg.Log = log.New(os.Stderr, "", log.LstdFlags)
	}

	ring := scope.NewRing(cfg.RingSize)
	return &App{
		cfg:      cfg,
		log:      cfg.Log,
		ring:     ring,
		ingest:   scope.NewIngest(ring),
		trace:    render.NewTrace(ring),
		analyzer: analyzer.New(float64(source.SampleRate())),
		source:   source,
		prof:     newProfiler(cfg.ProfilePath, cfg.Log),
		state:    StateLoaded,
	}
}

// State returns the current lifecycle state.
func (a *App) State() State {
	return a.state
}

// Run opens the display, attaches the ingest processor to the audio thread,
// and drives the draw loop until the stream ends, the user quits, or the
// context is canceled.
func (a *App) Run(ctx context.Context) error {
	if a.canvas == nil {
		canvas, err := render.NewCanvas(a.cfg.Backend, a.cfg.Width, a.cfg.Height, "vectorscope")
		if err != nil {
			return fmt.Errorf("open display: %w", err)
		}
		a.canvas = canvas
	}

	if a.cfg.Listen != "" {
		a.monitor = web.NewServer(a.ring, analyzer.New(float64(a.source.SampleRate())), a.log)
		if err := a.monitor.Start(a.cfg.Listen); err != nil {
			a.log.Printf("web monitor disabled: %v", err)
			a.monitor = nil
		}
	}

	// From here the audio thread feeds the ring while this thread drains it.
	a.source.AttachProcessor(a.ingest.Process)
	if err := a.source.Play(); err != nil {
		return err
	}
	a.state = StatePlaying
	a.lastTick = time.Now()

	frameDuration := time.Duration(float64(time.Second) / a.cfg.TargetFPS)
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.state = StateStopped
			return ctx.Err()
		case <-ticker.C:
			if quit := a.step(); quit || !a.source.IsPlaying() {
				a.state = StateStopped
				return nil
			}
		}
	}
}

// step runs one display tick and reports whether the user asked to quit.
func (a *App) step() bool {
	a.prof.beginFrame()
	a.source.Advance()

	quit := false
	for _, evt := range a.canvas.PollEvents() {
		switch evt {
		case render.EventQuit:
			quit = true
		case render.EventToggleFullscreen:
			a.canvas.ToggleFullscreen()
		case render.EventSeekBack:
			a.source.Seek(a.source.Position() - a.cfg.SeekStep)
		case render.EventSeekForward:
			a.source.Seek(a.source.Position() + a.cfg.SeekStep)
		}
	}
	a.prof.markSection("input")

	now := time.Now()
	delta := now.Sub(a.lastTick).Seconds()
	if delta <= 0 {
		delta = 1.0 / a.cfg.TargetFPS
	}
	a.lastTick = now

	if err := a.canvas.Begin(); err != nil {
		a.log.Printf("begin frame: %v", err)
		return quit
	}
	a.trace.DrawFrame(a.canvas)
	a.prof.markSection("draw")
	if err := a.canvas.End(); err != nil {
		a.log.Printf("present frame: %v", err)
	}
	a.prof.markSection("present")

	if now.Sub(a.lastStatus) >= statusInterval {
		a.lastStatus = now
		feat := a.analyzer.Analyze(a.ring.Snapshot())
		a.canvas.SetTitle(feat.Status(a.source.Position(), a.source.Duration(), 1.0/delta))
	}
	a.prof.endFrame()
	return quit
}

// Close tears the session down: the audio source first, so no sample batch
// can race into the ring while the rest is dismantled, then the display.
func (a *App) Close() error {
	err := a.source.Close()
	if a.monitor != nil {
		_ = a.monitor.Close()
	}
	if a.canvas != nil {
		_ = a.canvas.Close()
	}
	_ = a.prof.Close()
	a.state = StateStopped
	return err
}
