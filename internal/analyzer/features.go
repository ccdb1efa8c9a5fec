package analyzer

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Features describes the stereo signal currently on the scope.
type Features struct {
	LeftRMS     float64 `json:"leftRMS"`
	RightRMS    float64 `json:"rightRMS"`
	Correlation float64 `json:"correlation"`
	PeakHz      float64 `json:"peakHz"`
}

const silenceFloorDB = -60.0

// Status renders the one-line read-out shown in the window title or terminal
// status bar.
func (f Features) Status(position, duration time.Duration, fps float64) string {
	var b strings.Builder
	b.Grow(96)
	b.WriteString("vectorscope | L ")
	appendFloat(&b, toDB(f.LeftRMS), 1)
	b.WriteString(" dB R ")
	appendFloat(&b, toDB(f.RightRMS), 1)
	b.WriteString(" dB corr ")
	appendFloat(&b, f.Correlation, 2)
	if f.PeakHz > 0 {
		b.WriteString(" peak ")
		appendFloat(&b, f.PeakHz, 0)
		b.WriteString(" Hz")
	}
	b.WriteString(" | ")
	writeClock(&b, position)
	b.WriteByte('/')
	writeClock(&b, duration)
	b.WriteString(" fps ")
	appendFloat(&b, fps, 0)
	return b.String()
}

// toDB converts an RMS level to decibels, floored for silence.
func toDB(rms float64) float64 {
	if rms <= 0 {
		return silenceFloorDB
	}
	db := 20 * math.Log10(rms)
	if db < silenceFloorDB {
		return silenceFloorDB
	}
	return db
}

func writeClock(b *strings.Builder, d time.Duration) {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	mins, secs := total/60, total%60
	if mins < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(mins))
	b.WriteByte(':')
	if secs < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(secs))
}

func appendFloat(b *strings.Builder, value float64, precision int) {
	var buf [32]byte
	b.Write(strconv.AppendFloat(buf[:0], value, 'f', precision, 64))
}
