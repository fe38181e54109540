// compander_effect.go - Effect wiring for CompanderCore (§4.5, §6)

package soxplugins

import "fmt"

const maxCompanderBandCount = 10

// CompanderEffect exposes CompanderCore's multiband compander as a
// host-agnostic Effect with the paged parameter layout from §6: a
// global band count/index pair plus one parameter page per band.
type CompanderEffect struct {
	EffectBase
	core         *CompanderCore
	bandCount    int
	channelCount int
}

// NewCompanderEffect returns a compander effect with its full
// ten-page parameter map registered at default values.
func NewCompanderEffect() *CompanderEffect {
	e := &CompanderEffect{EffectBase: NewEffectBase(), core: NewCompanderCore()}

	e.Parameters.SetKindInt("-2#Band Count", 1, maxCompanderBandCount, 1)
	e.Parameters.SetKindInt("-1#Band Index", 1, maxCompanderBandCount, 1)

	for k := 1; k <= maxCompanderBandCount; k++ {
		prefix := fmt.Sprintf("%d#", k)
		e.Parameters.SetKindReal(prefix+"Attack [s]", 0.001, 1, 0.001)
		e.Parameters.SetKindReal(prefix+"Decay [s]", 0.001, 1, 0.001)
		e.Parameters.SetKindReal(prefix+"Knee [dB]", 0, 20, 0.01)
		e.Parameters.SetKindReal(prefix+"Threshold [dB]", -128, 0, 0.1)
		e.Parameters.SetKindReal(prefix+"Ratio", 0.001, 1000, 0.001)
		e.Parameters.SetKindReal(prefix+"Gain [dB]", -20, 20, 0.01)
		e.Parameters.SetKindReal(prefix+"Top Frequency [Hz]", 0, 25000, 1)
	}

	e.SetDefaultValues()
	return e
}

func (e *CompanderEffect) Name() string { return "Compander" }

func (e *CompanderEffect) ParameterMap() *EffectParameterMap { return e.Parameters }

// SetDefaultValues resets every page to a transparent single full-band
// compander: ratio 1 (no compression), 0dB gain, Nyquist top frequency.
func (e *CompanderEffect) SetDefaultValues() {
	e.Parameters.SetValue("-2#Band Count", "1")
	e.Parameters.SetValue("-1#Band Index", "1")
	for k := 1; k <= maxCompanderBandCount; k++ {
		prefix := fmt.Sprintf("%d#", k)
		e.Parameters.SetValue(prefix+"Attack [s]", "0.01")
		e.Parameters.SetValue(prefix+"Decay [s]", "0.01")
		e.Parameters.SetValue(prefix+"Knee [dB]", "0")
		e.Parameters.SetValue(prefix+"Threshold [dB]", "0")
		e.Parameters.SetValue(prefix+"Ratio", "1")
		e.Parameters.SetValue(prefix+"Gain [dB]", "0")
		e.Parameters.SetValue(prefix+"Top Frequency [Hz]", "25000")
	}
	e.Parameters.ChangeActivenessByPage(1)
	e.recalculate()
}

// Prepare stores the sample rate and rebuilds every band's crossover
// and envelope at the new rate.
func (e *CompanderEffect) Prepare(sampleRate float64) {
	e.EffectBase.Prepare(sampleRate, e.channelCount)
	e.recalculate()
}

func (e *CompanderEffect) Release() {
	e.EffectBase.Release()
}

func (e *CompanderEffect) recalculate() {
	trace(">> CompanderEffect.recalculate")
	e.bandCount = int(e.Parameters.RealValue("-2#Band Count"))
	if e.SampleRate <= 0 {
		trace("<< CompanderEffect.recalculate (not prepared yet)")
		return
	}
	e.core.Resize(e.bandCount, e.channelCount)
	e.core.SetEffectiveSize(e.bandCount)
	for k := 1; k <= e.bandCount; k++ {
		prefix := fmt.Sprintf("%d#", k)
		e.core.SetCompanderBandData(k-1, e.SampleRate,
			e.Parameters.RealValue(prefix+"Attack [s]"),
			e.Parameters.RealValue(prefix+"Decay [s]"),
			e.Parameters.RealValue(prefix+"Knee [dB]"),
			e.Parameters.RealValue(prefix+"Threshold [dB]"),
			e.Parameters.RealValue(prefix+"Ratio"),
			e.Parameters.RealValue(prefix+"Gain [dB]"),
			e.Parameters.RealValue(prefix+"Top Frequency [Hz]"))
	}
	trace("<< CompanderEffect.recalculate -> bandCount=%v", e.bandCount)
}

// SetValue handles the two global pager parameters directly (band
// count resizes the core, band index retargets which page is active)
// and delegates everything else to the parameter map, recalculating
// the affected band's crossover/envelope unless suppressed.
func (e *CompanderEffect) SetValue(name, value string, suppressRecalc bool) ChangeKind {
	kind := e.EffectBase.SetValue(name, value, suppressRecalc)
	if kind == ChangeKindNone {
		return kind
	}
	switch name {
	case "-2#Band Count":
		if !suppressRecalc {
			e.recalculate()
		}
	case "-1#Band Index":
		e.Parameters.ChangeActivenessByPage(int(e.Parameters.RealValue("-1#Band Index")))
	default:
		if !suppressRecalc {
			e.recalculate()
		}
	}
	return kind
}

// Process resizes the core for the block's channel count on first use
// and runs every channel's samples through the multiband compander.
func (e *CompanderEffect) Process(timePosition float64, buffer [][]AudioSample) {
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
