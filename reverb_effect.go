// reverb_effect.go - Effect wiring for ReverbCore (§4.6, §6)

package soxplugins

// ReverbEffect exposes ReverbCore as a host-agnostic Effect with the
// seven reverb parameters from §6.
type ReverbEffect struct {
	EffectBase
	core         *ReverbCore
	channelCount int
}

// NewReverbEffect returns a reverb effect with its parameter map
// registered at default values.
func NewReverbEffect() *ReverbEffect {
	e := &ReverbEffect{EffectBase: NewEffectBase(), core: NewReverbCore()}
	e.Parameters.SetKindEnum("isWetOnly?", []string{"false", "true"})
	e.Parameters.SetKindReal("Reverberance [%]", 0, 100, 0.1)
	e.Parameters.SetKindReal("HF Damping [%]", 0, 100, 0.1)
	e.Parameters.SetKindReal("Room Scale [%]", 0, 100, 0.1)
	e.Parameters.SetKindReal("Stereo Depth [%]", 0, 100, 0.1)
	e.Parameters.SetKindReal("Pre Delay [ms]", 0, 500, 0.1)
	e.Parameters.SetKindReal("Wet Gain [dB]", -10, 10, 0.01)
	e.SetDefaultValues()
	return e
}

func (e *ReverbEffect) Name() string { return "Reverb" }

func (e *ReverbEffect) ParameterMap() *EffectParameterMap { return e.Parameters }

// SetDefaultValues installs the original's own defaults: moderate
// reverberance, full room scale, no stereo spread, no predelay.
func (e *ReverbEffect) SetDefaultValues() {
	e.Parameters.SetValue("isWetOnly?", "false")
	e.Parameters.SetValue("Reverberance [%]", "50")
	e.Parameters.SetValue("HF Damping [%]", "50")
	e.Parameters.SetValue("Room Scale [%]", "100")
	e.Parameters.SetValue("Stereo Depth [%]", "0")
	e.Parameters.SetValue("Pre Delay [ms]", "0")
	e.Parameters.SetValue("Wet Gain [dB]", "0")
	e.recalculate()
}

func (e *ReverbEffect) Prepare(sampleRate float64) {
	e.EffectBase.Prepare(sampleRate, e.channelCount)
	e.recalculate()
}

func (e *ReverbEffect) Release() {
	e.EffectBase.Release()
}

func (e *ReverbEffect) recalculate() {
	trace(">> ReverbEffect.recalculate")
	wetOnly := e.Parameters.Value("isWetOnly?") == "true"
	e.core.SetParameters(
		e.Parameters.RealValue("Reverberance [%]"),
		e.Parameters.RealValue("HF Damping [%]"),
		e.Parameters.RealValue("Room Scale [%]"),
		e.Parameters.RealValue("Stereo Depth [%]"),
		e.Parameters.RealValue("Pre Delay [ms]")/1000,
		e.Parameters.RealValue("Wet Gain [dB]"),
		wetOnly)
	if e.SampleRate > 0 && e.channelCount > 0 {
		e.core.Prepare(e.SampleRate, e.channelCount)
	}
	trace("<< ReverbEffect.recalculate -> wetOnly=%v", wetOnly)
}

func (e *ReverbEffect) SetValue(name, value string, suppressRecalc bool) ChangeKind {
	kind := e.EffectBase.SetValue(name, value, suppressRecalc)
	if kind != ChangeKindNone && !suppressRecalc {
		e.recalculate()
	}
	return kind
}

// Process resizes the core for the block's channel count on first use
// and runs every channel's samples through the reverb.
func (e *ReverbEffect) Process(timePosition float64, buffer [][]AudioSample) {
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
