package analyzer

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/jtainer/vectorscope/internal/scope"
)

func sinePoints(n int, freq, rate float64) []scope.Point {
	points := make([]scope.Point, n)
	for i := range points {
		v := float32(math.Sin(2 * math.Pi * freq * float64(i) / rate))
		points[i] = scope.Point{X: v, Y: v}
	}
	return points
}

func TestAnalyzeEmptyInput(t *testing.T) {
	if got := New(44100).Analyze(nil); got != (Features{}) {
		t.Fatalf("expected zero features, got %+v", got)
	}
}

func TestAnalyzeRMS(t *testing.T) {
	points := make([]scope.Point, 512)
	for i := range points {
		points[i] = scope.Point{X: 0.5, Y: -0.25}
	}
	feat := New(44100).Analyze(points)
	if math.Abs(feat.LeftRMS-0.5) > 1e-6 {
		t.Fatalf("LeftRMS=%f want=0.5", feat.LeftRMS)
	}
	if math.Abs(feat.RightRMS-0.25) > 1e-6 {
		t.Fatalf("RightRMS=%f want=0.25", feat.RightRMS)
	}
}

func TestAnalyzeCorrelation(t *testing.T) {
	mono := sinePoints(1024, 100, 44100)
	if got := New(44100).Analyze(mono).Correlation; math.Abs(got-1) > 1e-6 {
		t.Fatalf("mono correlation=%f want=1", got)
	}

	flipped := make([]scope.Point, len(mono))
	for i, p := range mono {
		flipped[i] = scope.Point{X: p.X, Y: -p.Y}
	}
	if got := New(44100).Analyze(flipped).Correlation; math.Abs(got+1) > 1e-6 {
		t.Fatalf("out-of-phase correlation=%f want=-1", got)
	}
}

func TestAnalyzeSilenceHasNoCorrelationOrPeak(t *testing.T) {
	feat := New(44100).Analyze(make([]scope.Point, 2048))
	if feat.Correlation != 0 {
		t.Fatalf("silence correlation=%f want=0", feat.Correlation)
	}
	if feat.PeakHz != 0 {
		t.Fatalf("silence peak=%f want=0", feat.PeakHz)
	}
}

func TestAnalyzePeakFrequency(t *testing.T) {
	// 64 cycles over 2048 samples at 2048 Hz puts the peak exactly on bin 64.
	feat := New(2048).Analyze(sinePoints(2048, 64, 2048))
	if math.Abs(feat.PeakHz-64) > 2 {
		t.Fatalf("PeakHz=%f want~=64", feat.PeakHz)
	}
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{
		0:   1,
		1:   1,
		2:   2,
		3:   4,
		5:   8,
		16:  16,
		31:  32,
		257: 512,
	}
	for input, want := range cases {
		if got := nextPow2(input); got != want {
			t.Fatalf("nextPow2(%d)=%d want=%d", input, got, want)
		}
	}
}

func TestToDBFloorsSilence(t *testing.T) {
	if got := toDB(0); got != silenceFloorDB {
		t.Fatalf("toDB(0)=%f want=%f", got, silenceFloorDB)
	}
	if got := toDB(1); math.Abs(got) > 1e-9 {
		t.Fatalf("toDB(1)=%f want=0", got)
	}
}

func TestStatusFormat(t *testing.T) {
	feat := Features{LeftRMS: 1, RightRMS: 1, Correlation: 0.5, PeakHz: 440}
	got := feat.Status(72*time.Second, 225*time.Second, 120)

	for _, part := range []string{"corr 0.50", "peak 440 Hz", "01:12/03:45", "fps 120"} {
		if !strings.Contains(got, part) {
			t.Fatalf("status %q missing %q", got, part)
		}
	}
}
