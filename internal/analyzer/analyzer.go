package analyzer

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/jtainer/vectorscope/internal/scope"
)

const (
	maxFFTSize = 2048
	minFFTSize = 256
)

// Analyzer extracts level, phase, and spectral cues from the scope's retained
// sample points for the status read-out.
type Analyzer struct {
	sampleRate float64
	buffer     []float64
}

// New creates an Analyzer for audio at the given sample rate.
func New(sampleRate float64) *Analyzer {
	if sampleRate <= 0 {
		sampleRate = 44_100
	}
	return &Analyzer{sampleRate: sampleRate}
}

// Analyze computes features over one snapshot of scope points. X is the left
// channel, Y the right.
func (a *Analyzer) Analyze(points []scope.Point) Features {
	if len(points) == 0 {
		return Features{}
	}

	var sumL, sumR, sumLL, sumRR, sumLR float64
	for _, p := range points {
		l, r := float64(p.X), float64(p.Y)
		sumL += l
		sumR += r
		sumLL += l * l
		sumRR += r * r
		sumLR += l * r
	}
	n := float64(len(points))

	feat := Features{
		LeftRMS:  math.Sqrt(sumLL / n),
		RightRMS: math.Sqrt(sumRR / n),
	}

	// Pearson correlation of the two channels: +1 mono, 0 decorrelated,
	// -1 out of phase.
	meanL, meanR := sumL/n, sumR/n
	varL := sumLL/n - meanL*meanL
	varR := sumRR/n - meanR*meanR
	if varL > 1e-12 && varR > 1e-12 {
		feat.Correlation = clamp((sumLR/n-meanL*meanR)/math.Sqrt(varL*varR), -1, 1)
	}

	feat.PeakHz = a.peakFrequency(points)
	return feat
}

// peakFrequency returns the dominant frequency of the mid (L+R) mix.
func (a *Analyzer) peakFrequency(points []scope.Point) float64 {
	size := nextPow2(min(len(points), maxFFTSize))
	if size < minFFTSize {
		size = minFFTSize
	}
	a.ensureWorkspace(size)

	buffer := a.buffer[:size]
	for i := range buffer {
		if i < len(points) {
			buffer[i] = (float64(points[i].X) + float64(points[i].Y)) / 2
			continue
		}
		buffer[i] = 0
	}
	window.Hann(buffer)

	spectrum := fft.FFTReal(buffer)

	peakBin := 0
	peakMag := 0.0
	for bin := 1; bin < size/2; bin++ {
		if mag := cmplxAbs(spectrum[bin]); mag > peakMag {
			peakMag = mag
			peakBin = bin
		}
	}
	if peakBin == 0 || peakMag < 1e-9 {
		return 0
	}
	return float64(peakBin) * a.sampleRate / float64(size)
}

func (a *Analyzer) ensureWorkspace(size int) {
	if len(a.buffer) < size {
		a.buffer = make([]float64, size)
	}
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func clamp(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
