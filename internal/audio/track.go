package audio

import "time"

// Track holds a fully decoded piece of audio as interleaved stereo float32
// samples in [-1, 1]. Decoding once up front keeps the playback callback and
// seeking trivial: both are just cursor moves over this slice.
type Track struct {
	Samples []float32
	Rate    int
}

// Frames returns the number of stereo frames in the track.
func (t *Track) Frames() int {
	return len(t.Samples) / channels
}

// Duration returns the playable length of the track.
func (t *Track) Duration() time.Duration {
	if t.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(t.Frames()) / float64(t.Rate) * float64(time.Second))
}

// FrameAt converts a playback time to a frame index, clamped to the track.
func (t *Track) FrameAt(at time.Duration) int {
	if at < 0 {
		return 0
	}
	frame := int(at.Seconds() * float64(t.Rate))
	if frame > t.Frames() {
		frame = t.Frames()
	}
	return frame
}
