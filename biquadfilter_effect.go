// biquadfilter_effect.go - Effect wiring for BiquadFilterCore (§4.8, §6)

package soxplugins

var filterKindNames = []string{
	"allpass", "band", "bandpass", "bandreject", "bass",
	"biquad", "equalizer", "highpass", "lowpass", "treble",
}

func filterKindByName(name string) FilterKind {
	for i, n := range filterKindNames {
		if n == name {
			return FilterKind(i)
		}
	}
	return FilterLowpass
}

var bandwidthUnitNames = []string{"frequency", "octaves", "quality", "butterworth", "slope"}

func bandwidthUnitByName(name string) FilterBandwidthUnit {
	for i, n := range bandwidthUnitNames {
		if n == name {
			return FilterBandwidthUnit(i)
		}
	}
	return BandwidthQuality
}

// FilterEffect exposes BiquadFilterCore as a single plug-in spanning
// all ten SoX filter kinds, switched via the "Kind" enum parameter
// (§4.8, §6).
type FilterEffect struct {
	EffectBase
	core         *BiquadFilterCore
	channelCount int
}

// NewFilterEffect returns a filter effect defaulted to a lowpass at
// 1kHz, Q=Butterworth.
func NewFilterEffect() *FilterEffect {
	e := &FilterEffect{EffectBase: NewEffectBase(), core: NewBiquadFilterCore(FilterLowpass)}

	e.Parameters.SetKindEnum("Kind", filterKindNames)
	e.Parameters.SetKindReal("Frequency [Hz]", 1, 24000, 1)
	e.Parameters.SetKindEnum("Bandwidth Unit", bandwidthUnitNames)
	e.Parameters.SetKindReal("Bandwidth", 0.001, 10000, 0.001)
	e.Parameters.SetKindReal("Gain [dB]", -40, 40, 0.01)

	e.SetDefaultValues()
	return e
}

func (e *FilterEffect) Name() string { return "Filter" }

func (e *FilterEffect) ParameterMap() *EffectParameterMap { return e.Parameters }

func (e *FilterEffect) SetDefaultValues() {
	e.Parameters.SetValue("Kind", "lowpass")
	e.Parameters.SetValue("Frequency [Hz]", "1000")
	e.Parameters.SetValue("Bandwidth Unit", "butterworth")
	e.Parameters.SetValue("Bandwidth", "1")
	e.Parameters.SetValue("Gain [dB]", "0")
	e.recalculate()
}

func (e *FilterEffect) Prepare(sampleRate float64) {
	e.EffectBase.Prepare(sampleRate, e.channelCount)
	e.recalculate()
}

func (e *FilterEffect) Release() {
	e.EffectBase.Release()
}

func (e *FilterEffect) recalculate() {
	trace(">> FilterEffect.recalculate")
	if e.SampleRate <= 0 || e.channelCount <= 0 {
		trace("<< FilterEffect.recalculate (not prepared yet)")
		return
	}
	e.core.kind = filterKindByName(e.Parameters.Value("Kind"))
	e.core.Resize(e.channelCount)
	e.core.Adapt(e.SampleRate,
		e.Parameters.RealValue("Frequency [Hz]"),
		bandwidthUnitByName(e.Parameters.Value("Bandwidth Unit")),
		e.Parameters.RealValue("Bandwidth"),
		e.Parameters.RealValue("Gain [dB]"))
	trace("<< FilterEffect.recalculate -> kind=%v", e.core.kind)
}

func (e *FilterEffect) SetValue(name, value string, suppressRecalc bool) ChangeKind {
	kind := e.EffectBase.SetValue(name, value, suppressRecalc)
	if kind != ChangeKindNone && !suppressRecalc {
		e.recalculate()
	}
	return kind
}

// Process resizes the core for the block's channel count on first use
// and runs every channel's samples through the selected filter.
func (e *FilterEffect) Process(timePosition float64, buffer [][]AudioSample) {
	e.UpdateTimePosition(timePosition)
	channelCount := len(buffer)
	if channelCount != e.channelCount {
		e.channelCount = channelCount
		e.recalculate()
	}
	if len(buffer) == 0 {
		return
	}
	sampleCount := len(buffer[0])
	input := make([]AudioSample, channelCount)
	output := make([]AudioSample, channelCount)
	for i := 0; i < sampleCount; i++ {
		for c := 0; c < channelCount; c++ {
			input[c] = buffer[c][i]
		}
		e.core.Apply(input, output)
		for c := 0; c < channelCount; c++ {
			buffer[c][i] = output[c]
		}
	}
}
