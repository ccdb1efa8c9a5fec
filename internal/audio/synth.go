package audio

import (
	"math"
	"time"
)

const (
	synthRate  = 44100
	synthFreqL = 220.0
	synthFreqR = 330.0
)

// SynthTrack generates a stereo sine pair at a 2:3 frequency ratio, which the
// scope traces as a stable Lissajous figure. Used when running without an
// input file.
func SynthTrack(d time.Duration) *Track {
	if d <= 0 {
		d = 30 * time.Second
	}
	frames := int(d.Seconds() * synthRate)
	track := &Track{
		Rate:    synthRate,
		Samples: make([]float32, 0, frames*channels),
	}

	stepL := synthFreqL / synthRate
	stepR := synthFreqR / synthRate
	var phaseL, phaseR float64
	for i := 0; i < frames; i++ {
		track.Samples = append(track.Samples,
			float32(math.Sin(2*math.Pi*phaseL)),
			float32(math.Sin(2*math.Pi*phaseR)),
		)
		_, phaseL = math.Modf(phaseL + stepL)
		_, phaseR = math.Modf(phaseR + stepR)
	}
	return track
}
