package audio

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"
)

const channels = 2

// Processor receives each batch of interleaved stereo samples as it is handed
// to the playback device. It is invoked on PortAudio's audio thread, so it
// must be brief and must not block, allocate, or perform I/O.
type Processor func(samples []float32, frames int)

// Source plays a decoded Track through the default PortAudio output device
// and mirrors every delivered batch to an attached Processor.
type Source struct {
	track  *Track
	stream *portaudio.Stream

	mu        sync.Mutex
	pos       int
	drained   bool
	processor Processor

	// touched only from the display thread
	stopped bool
}

// Open decodes the file at path and prepares a playback stream for it.
// PortAudio must already be initialized.
func Open(path string) (*Source, error) {
	track, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return newPlayback(track)
}

// OpenSynth prepares a playback stream for a generated test signal.
func OpenSynth(d time.Duration) (*Source, error) {
	return newPlayback(SynthTrack(d))
}

func newPlayback(track *Track) (*Source, error) {
	s := newSource(track)
	stream, err := portaudio.OpenDefaultStream(
		0, channels,
		float64(track.Rate),
		portaudio.FramesPerBufferUnspecified,
		s.callback,
	)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	s.stream = stream
	return s, nil
}

// newSource builds a Source without a device stream; tests drive the fill
// path directly through it.
func newSource(track *Track) *Source {
	return &Source{track: track}
}

// AttachProcessor registers the callback that observes played samples. Attach
// before Play; passing nil detaches, after which no further batches are
// delivered.
func (s *Source) AttachProcessor(p Processor) {
	s.mu.Lock()
	s.processor = p
	s.mu.Unlock()
}

// Play starts the playback device.
func (s *Source) Play() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	return nil
}

// callback runs on PortAudio's thread. The track cursor is advanced under the
// source lock; the processor is invoked outside it so the two locks (source
// and ring) are never held together.
func (s *Source) callback(out []float32) {
	frames, proc := s.fill(out)
	if proc != nil && frames > 0 {
		proc(out, frames)
	}
}

// fill copies up to len(out) samples from the track cursor into out, zeroes
// any tail past end of track, and returns the number of real frames written
// plus the processor to notify.
func (s *Source) fill(out []float32) (int, Processor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frames := len(out) / channels
	avail := s.track.Frames() - s.pos
	if frames > avail {
		frames = avail
	}
	if frames < 0 {
		frames = 0
	}
	copy(out[:frames*channels], s.track.Samples[s.pos*channels:(s.pos+frames)*channels])
	for i := frames * channels; i < len(out); i++ {
		out[i] = 0
	}
	s.pos += frames
	if s.pos >= s.track.Frames() {
		s.drained = true
	}
	return frames, s.processor
}

// IsPlaying reports whether unplayed track material remains.
func (s *Source) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.drained
}

// Advance performs per-tick playback bookkeeping: once the track has drained
// it stops the device so the callback goes quiet. Called from the display
// thread only.
func (s *Source) Advance() {
	if s.stopped || s.stream == nil {
		return
	}
	if s.IsPlaying() {
		return
	}
	if err := s.stream.Stop(); err == nil || isStoppedStreamErr(err) {
		s.stopped = true
	}
}

// Seek moves the playback position, clamped to [0, duration].
func (s *Source) Seek(to time.Duration) {
	frame := s.track.FrameAt(to)
	s.mu.Lock()
	s.pos = frame
	s.drained = frame >= s.track.Frames()
	s.mu.Unlock()
}

// Position returns the current playback position.
func (s *Source) Position() time.Duration {
	s.mu.Lock()
	pos := s.pos
	s.mu.Unlock()
	if s.track.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(pos) / float64(s.track.Rate) * float64(time.Second))
}

// Duration returns the total track length.
func (s *Source) Duration() time.Duration {
	return s.track.Duration()
}

// SampleRate returns the track sample rate in Hz.
func (s *Source) SampleRate() int {
	return s.track.Rate
}

// Close detaches the processor, stops the device, and releases the stream.
// The processor is detached first so no batch can be delivered mid-teardown.
func (s *Source) Close() error {
	s.AttachProcessor(nil)
	if s.stream == nil {
		return nil
	}
	if err := s.stream.Stop(); err != nil && !isStoppedStreamErr(err) {
		return err
	}
	return s.stream.Close()
}

// isStoppedStreamErr reports whether err stems from stopping an already
// stopped stream.
func isStoppedStreamErr(err error) bool {
	if err == nil {
		return false
	}
	const invalidStateMsg = "PaErrorCode -9986"
	return strings.Contains(err.Error(), invalidStateMsg)
}
