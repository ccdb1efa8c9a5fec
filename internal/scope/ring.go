package scope

import "sync"

// DefaultCapacity is the number of sample points retained for drawing.
// Low frequencies need many points to trace a whole cycle, low-end hardware
// may want fewer.
const DefaultCapacity = 2048

// Point is one stereo frame interpreted as a 2D position: left channel on X,
// right channel on Y, each nominally in [-1, 1].
type Point struct {
	X float32
	Y float32
}

// Ring is a fixed-capacity circular buffer of the most recently played sample
// points. The audio thread appends while the display thread walks the whole
// buffer once per frame, so a single mutex serializes both: an append touches
// one slot plus the cursor, a walk touches every slot, and any overlap
// between the two would show up on screen as a torn line segment.
type Ring struct {
	mu     sync.Mutex
	points []Point
	cursor int
}

// NewRing creates a zero-initialized ring. Capacities below two cannot form a
// line segment and fall back to DefaultCapacity.
func NewRing(capacity int) *Ring {
	if capacity < 2 {
		capacity = DefaultCapacity
	}
	return &Ring{points: make([]Point, capacity)}
}

// Capacity returns the fixed number of retained points.
func (r *Ring) Capacity() int {
	return len(r.points)
}

// Append overwrites the oldest retained point and advances the cursor.
// Safe to call from the audio thread concurrently with Walk; never fails.
func (r *Ring) Append(p Point) {
	r.mu.Lock()
	r.points[r.cursor] = p
	r.cursor = (r.cursor + 1) % len(r.points)
	r.mu.Unlock()
}

// Walk visits the capacity-1 line segments connecting the retained points in
// chronological order. The walk starts at the cursor, which is the oldest
// retained point, so the polyline is always traced oldest to newest and the
// trail stays continuous from frame to frame instead of jumping wherever the
// cursor happens to sit.
//
// The entire traversal runs under the ring lock: a concurrent Append is
// either fully visible or fully invisible to one walk, never half of each.
func (r *Ring) Walk(visit func(begin, end Point)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	begin := r.points[r.cursor]
	for i := 1; i < len(r.points); i++ {
		end := r.points[(r.cursor+i)%len(r.points)]
		visit(begin, end)
		begin = end
	}
}

// Snapshot returns a copy of the retained points, oldest first. The copy is
// taken under the same lock as Walk so it is equally tear-free; callers own
// the returned slice.
func (r *Ring) Snapshot() []Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := make([]Point, len(r.points))
	copy(cp, r.points[r.cursor:])
	copy(cp[len(r.points)-r.cursor:], r.points[:r.cursor])
	return cp
}
