package scope

import "testing"

func TestProcessExtractsStereoPairs(t *testing.T) {
	r := NewRing(4)
	in := NewIngest(r)

	in.Process([]float32{0.1, -0.1, 0.2, -0.2}, 2)

	got := r.Snapshot()
	want := []Point{{}, {}, {0.1, -0.1}, {0.2, -0.2}}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("slot %d: got=%v want=%v", i, got[i], want[i])
		}
	}
}

func TestProcessClampsFrameCountToBuffer(t *testing.T) {
	r := NewRing(8)
	in := NewIngest(r)

	// Claimed frame count exceeds what the buffer actually holds.
	in.Process([]float32{0.5, 0.5}, 100)

	got := r.Snapshot()
	if got[len(got)-1] != (Point{0.5, 0.5}) {
		t.Fatalf("expected single appended point, got %v", got[len(got)-1])
	}
	for _, p := range got[:len(got)-1] {
		if p != (Point{}) {
			t.Fatalf("unexpected extra append: %v", p)
		}
	}
}

func TestProcessEmptyBatchIsNoop(t *testing.T) {
	r := NewRing(2)
	in := NewIngest(r)
	in.Process(nil, 0)
	for _, p := range r.Snapshot() {
		if p != (Point{}) {
			t.Fatalf("ring mutated by empty batch: %v", p)
		}
	}
}
