// waveform.go - band-limited LFO waveform generator

package soxplugins

import "math"

const sineTableLength = 10000

var sineTable = buildSineTable()

// triangleTable holds the 4 equidistant points that make a
// linearly-interpolated triangle wave in [0,1], matching the sine
// table's own [0,1] range convention.
var triangleTable = []float64{0.5, 1.0, 0.5, 0.0}

func buildSineTable() []float64 {
	table := make([]float64, sineTableLength)
	for i := range table {
		table[i] = (math.Sin(2*math.Pi*float64(i)/float64(sineTableLength)) + 1) / 2
	}
	return table
}

// WaveformKind selects the shared wave table a WaveformGenerator reads.
type WaveformKind int

const (
	WaveformSine WaveformKind = iota
	WaveformTriangle
)

// WaveformGenerator drives LFO-style modulation from one of two shared,
// read-only wave tables. position is never accumulated sample-to-sample;
// it is recomputed from stepCount on every advance to avoid drift (§4.3).
type WaveformGenerator struct {
	kind          WaveformKind
	table         []float64
	firstPosition float64
	increment     float64
	stepCount     int64
	yMin, yMax    float64
	integerSnap   bool
}

func tableForKind(kind WaveformKind) []float64 {
	if kind == WaveformTriangle {
		return triangleTable
	}
	return sineTable
}

// Set (re)configures the generator. periodSamples is the modulation
// period expressed in samples (sr/frequency); phaseRad is the starting
// phase in radians.
func (w *WaveformGenerator) Set(periodSamples float64, kind WaveformKind, yMin, yMax, phaseRad float64, integerSnap bool) {
	w.kind = kind
	w.table = tableForKind(kind)
	l := float64(len(w.table))
	w.firstPosition = mod(l*phaseRad/(2*math.Pi), l)
	w.increment = l / periodSamples
	w.stepCount = 0
	w.yMin, w.yMax = yMin, yMax
	w.integerSnap = integerSnap
}

func (w *WaveformGenerator) position() float64 {
	l := float64(len(w.table))
	return mod(w.firstPosition+float64(w.stepCount)*w.increment, l)
}

func interpolateTable(table []float64, position float64) float64 {
	l := len(table)
	i0 := int(math.Floor(position)) % l
	i1 := (i0 + 1) % l
	frac := position - math.Floor(position)
	return table[i0] + (table[i1]-table[i0])*frac
}

// Current returns the generator's current value, scaled into [yMin,yMax]
// and optionally rounded to the nearest integer.
func (w *WaveformGenerator) Current() float64 {
	v := w.yMin + (w.yMax-w.yMin)*interpolateTable(w.table, w.position())
	if w.integerSnap {
		v = math.Round(v)
	}
	return v
}

// Advance moves the generator forward by exactly one sample, recomputing
// position from stepCount rather than accumulating increment.
func (w *WaveformGenerator) Advance() {
	w.stepCount++
}

// State returns the generator's step counter, for save/restore across a
// per-block LFO-state snapshot (§4.7, channel lock-step).
func (w *WaveformGenerator) State() int64 {
	return w.stepCount
}

// SetState restores a previously saved step counter.
func (w *WaveformGenerator) SetState(n int64) {
	w.stepCount = n
}

// PhaseByTime re-derives an LFO phase from transport time so modulation
// stays reproducible across host seeks: the fractional part of
// (tNow-t0)*f, expressed in radians modulo 2*pi.
func PhaseByTime(frequency, t0, tNow float64) float64 {
	delta := (tNow - t0) * frequency
	frac := delta - math.Floor(delta)
	return mod(frac*2*math.Pi, 2*math.Pi)
}
