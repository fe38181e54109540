// biquadfilter.go - biquad-family filter plug-in (§4.8)

package soxplugins

import "math"

// FilterKind selects which of the ten SoX biquad filters a
// BiquadFilterCore realizes.
type FilterKind int

const (
	FilterAllpass FilterKind = iota
	FilterBand
	FilterBandpass
	FilterBandreject
	FilterBass
	FilterBiquad
	FilterEqualizer
	FilterHighpass
	FilterLowpass
	FilterTreble
)

// FilterBandwidthUnit is the unit a filter's bandwidth parameter is
// expressed in.
type FilterBandwidthUnit int

const (
	BandwidthFrequency FilterBandwidthUnit = iota
	BandwidthOctaves
	BandwidthQuality
	BandwidthButterworth
	BandwidthSlope
)

// bandwidthToQ converts a bandwidth value, in any unit but Frequency,
// into the Q used by the RBJ cookbook formulas. Butterworth is the
// constant-Q special case Q=sqrt(1/2); see the original's own
// `butterworthQ` shortcut. BandwidthFrequency is handled directly by
// the caller (Q = f0/bandwidth) since it needs no trigonometric term.
func bandwidthToQ(unit FilterBandwidthUnit, value, w0, gainDB float64) float64 {
	switch unit {
	case BandwidthButterworth:
		return math.Sqrt(0.5)
	case BandwidthOctaves:
		return 1 / (2 * math.Sinh(math.Ln2/2*value*w0/math.Sin(w0)))
	case BandwidthSlope:
		a := math.Pow(10, gainDB/40)
		return 1 / math.Sqrt((a+1/a)*(1/value-1)+2)
	default: // BandwidthQuality
		return value
	}
}

// BiquadFilterCore computes RBJ-cookbook coefficients for one of the
// ten filter kinds and drives an order-3 IIRFilter per channel.
type BiquadFilterCore struct {
	kind       FilterKind
	filters    []*IIRFilter
	inputRings []*SampleRingBuffer
	outRings   []*SampleRingBuffer
}

// NewBiquadFilterCore returns a core of the given kind; call Resize and
// Adapt before processing.
func NewBiquadFilterCore(kind FilterKind) *BiquadFilterCore {
	return &BiquadFilterCore{kind: kind}
}

// Resize (re)allocates per-channel filters and ring buffers.
func (c *BiquadFilterCore) Resize(channelCount int) {
	c.filters = make([]*IIRFilter, channelCount)
	c.inputRings = make([]*SampleRingBuffer, channelCount)
	c.outRings = make([]*SampleRingBuffer, channelCount)
	for i := 0; i < channelCount; i++ {
		c.filters[i] = NewIIRFilter(3)
		c.inputRings[i] = NewSampleRingBuffer(3)
		c.outRings[i] = NewSampleRingBuffer(3)
	}
}

// Adapt computes (b0,b1,b2,a0,a1,a2) for the core's kind at the given
// frequency/bandwidth/gain and installs them into every channel's
// filter (§4.8).
func (c *BiquadFilterCore) Adapt(sampleRate, frequency float64, bandwidthUnit FilterBandwidthUnit, bandwidthValue, gainDB float64) {
	w0 := 2 * math.Pi * frequency / sampleRate
	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)

	var q float64
	if bandwidthUnit == BandwidthFrequency {
		q = frequency / bandwidthValue
	} else {
		q = bandwidthToQ(bandwidthUnit, bandwidthValue, w0, gainDB)
	}
	alpha := sinW0 / (2 * q)

	var b0, b1, b2, a0, a1, a2 float64

	switch c.kind {
	case FilterLowpass:
		b0 = (1 - cosW0) / 2
		b1 = 1 - cosW0
		b2 = (1 - cosW0) / 2
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha

	case FilterHighpass:
		b0 = (1 + cosW0) / 2
		b1 = -(1 + cosW0)
		b2 = (1 + cosW0) / 2
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha

	case FilterBandpass:
		b0 = alpha
		b1 = 0
		b2 = -alpha
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha

	case FilterBand:
		b0 = sinW0 / 2
		b1 = 0
		b2 = -sinW0 / 2
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha

	case FilterBandreject:
		b0 = 1
		b1 = -2 * cosW0
		b2 = 1
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha

	case FilterAllpass:
		b0 = 1 - alpha
		b1 = -2 * cosW0
		b2 = 1 + alpha
		a0 = 1 + alpha
		a1 = -2 * cosW0
		a2 = 1 - alpha

	case FilterEqualizer, FilterBiquad:
		a := math.Pow(10, gainDB/40)
		b0 = 1 + alpha*a
		b1 = -2 * cosW0
		b2 = 1 - alpha*a
		a0 = 1 + alpha/a
		a1 = -2 * cosW0
		a2 = 1 - alpha/a

	case FilterBass:
		a := math.Pow(10, gainDB/40)
		twoSqrtAAlpha := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) - (a-1)*cosW0 + twoSqrtAAlpha)
		b1 = 2 * a * ((a - 1) - (a+1)*cosW0)
		b2 = a * ((a + 1) - (a-1)*cosW0 - twoSqrtAAlpha)
		a0 = (a + 1) + (a-1)*cosW0 + twoSqrtAAlpha
		a1 = -2 * ((a - 1) + (a+1)*cosW0)
		a2 = (a + 1) + (a-1)*cosW0 - twoSqrtAAlpha

	case FilterTreble:
		a := math.Pow(10, gainDB/40)
		twoSqrtAAlpha := 2 * math.Sqrt(a) * alpha
		b0 = a * ((a + 1) + (a-1)*cosW0 + twoSqrtAAlpha)
		b1 = -2 * a * ((a - 1) + (a+1)*cosW0)
		b2 = a * ((a + 1) + (a-1)*cosW0 - twoSqrtAAlpha)
		a0 = (a + 1) - (a-1)*cosW0 + twoSqrtAAlpha
		a1 = 2 * ((a - 1) - (a+1)*cosW0)
		a2 = (a + 1) - (a-1)*cosW0 - twoSqrtAAlpha
	}

	for _, f := range c.filters {
		f.SetCoefficients3(b0, b1, b2, a0, a1, a2)
	}
}

// Apply filters one sample per channel in place, following the
// IIRFilter ShiftRight(0)+SetFirst calling convention (§4.2) rather
// than the literal "shift left" phrasing used for delay lines.
func (c *BiquadFilterCore) Apply(input, output []AudioSample) {
	for i, x := range input {
		in, out := c.inputRings[i], c.outRings[i]
		in.ShiftRight(0)
		in.SetFirst(x)
		out.ShiftRight(0)
		output[i] = c.filters[i].Apply(in, out)
	}
}
