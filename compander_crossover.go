// compander_crossover.go - Linkwitz-Riley 4th-order crossover

package soxplugins

import "math"

// lrFilter is a Linkwitz-Riley 4th-order filter realized as an order-5
// IIR filter: a biquad numerator/denominator triple squared by
// convolving it with itself (LR4 = Butterworth-2 cascaded with itself).
type lrFilter struct {
	IIRFilter
}

func newLRFilter() *lrFilter {
	return &lrFilter{IIRFilter: *NewIIRFilter(5)}
}

// adapt installs coefficientsA (numerator) squared against
// coefficientsB (denominator), producing the order-5 biquad-squared form.
func (f *lrFilter) adapt(coefficientsA, coefficientsB [3]float64) {
	set := func(c [3]float64, out []float64) {
		out[0] = c[0] * c[0]
		out[1] = 2 * c[0] * c[1]
		out[2] = 2*c[0]*c[2] + c[1]*c[1]
		out[3] = 2 * c[1] * c[2]
		out[4] = c[2] * c[2]
	}
	set(coefficientsA, f.coeff[0:5])
	set(coefficientsB, f.coeff[5:10])
}

// LRCrossoverFilter is a pair of Linkwitz-Riley filters sharing one
// cutoff frequency: one lowpass, one highpass, summing back to a flat
// response with a -6dB match at the crossover point.
type LRCrossoverFilter struct {
	lowpass  *lrFilter
	highpass *lrFilter
}

// NewLRCrossoverFilter returns a crossover initialized to identity
// (lowpass passes everything, highpass passes nothing) until Adapt is
// called.
func NewLRCrossoverFilter() *LRCrossoverFilter {
	f := &LRCrossoverFilter{lowpass: newLRFilter(), highpass: newLRFilter()}
	f.lowpass.SetIdentity(1)
	f.highpass.SetIdentity(0)
	return f
}

// Adapt (re)builds the crossover at frequency, given sampleRate. At or
// above Nyquist it degenerates to LP=identity, HP=zero (§4.5).
func (f *LRCrossoverFilter) Adapt(frequency, sampleRate float64) {
	if frequency >= sampleRate/2 {
		f.lowpass.SetIdentity(1)
		f.highpass.SetIdentity(0)
		return
	}

	w0 := 2 * math.Pi * frequency / sampleRate
	const filterQuality = math.Sqrt2 / 2 // sqrt(0.5)
	alpha := math.Sin(w0) / (2 * filterQuality)
	cosW0 := math.Cos(w0)

	lowpassNumerator := [3]float64{(1 - cosW0) / 2, 1 - cosW0, (1 - cosW0) / 2}
	highpassNumerator := [3]float64{(1 + cosW0) / 2, -1 - cosW0, (1 + cosW0) / 2}
	denominator := [3]float64{1 + alpha, -2 * cosW0, 1 - alpha}

	reference := 1 / denominator[0]
	for i := range lowpassNumerator {
		lowpassNumerator[i] *= reference
	}
	for i := range highpassNumerator {
		highpassNumerator[i] *= reference
	}
	for i := range denominator {
		denominator[i] *= reference
	}

	f.lowpass.adapt(lowpassNumerator, denominator)
	f.highpass.adapt(highpassNumerator, denominator)
}

// Apply runs both filters in parallel on the same input, writing into
// outLow and outHigh.
func (f *LRCrossoverFilter) Apply(in, outLow, outHigh *SampleRingBuffer) {
	f.lowpass.Apply(in, outLow)
	f.highpass.Apply(in, outHigh)
}
