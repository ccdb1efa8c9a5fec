package scope

// Ingest converts batches of interleaved stereo float samples into ring
// points. The audio source invokes Process on its own thread in batches of a
// few hundred frames; if the display side falls behind, older points are
// simply overwritten, so staleness stays bounded without any queue.
type Ingest struct {
	ring *Ring
}

// NewIngest binds an ingestor to the ring it feeds.
func NewIngest(ring *Ring) *Ingest {
	return &Ingest{ring: ring}
}

// Process appends one point per stereo frame. It performs no allocation and
// no I/O; each append holds the ring lock only for a single slot write.
func (in *Ingest) Process(samples []float32, frames int) {
	if max := len(samples) / 2; frames > max {
		frames = max
	}
	for i := 0; i < frames; i++ {
		in.ring.Append(Point{X: samples[2*i], Y: samples[2*i+1]})
	}
}
