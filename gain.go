// gain.go - trivial single-parameter Gain effect

package soxplugins

import "math"

// GainEffect multiplies every sample by a dB gain factor. It is the
// simplest possible Effect, useful as a sanity check of EffectBase's
// lifecycle plumbing.
type GainEffect struct {
	EffectBase
	gainFactor float64
}

// NewGainEffect returns a Gain effect with its parameter map populated
// at the default value.
func NewGainEffect() *GainEffect {
	e := &GainEffect{EffectBase: NewEffectBase()}
	e.Parameters.SetKindReal("Gain [dB]", -10, 10, 0.01)
	e.SetDefaultValues()
	return e
}

func (e *GainEffect) Name() string { return "Gain" }

func (e *GainEffect) ParameterMap() *EffectParameterMap { return e.Parameters }

// SetDefaultValues resets Gain [dB] to 0 (unity).
func (e *GainEffect) SetDefaultValues() {
	e.Parameters.SetValue("Gain [dB]", "0")
	e.recalculate()
}

// Prepare stores the sample rate; Gain has no sample-rate-dependent
// state.
func (e *GainEffect) Prepare(sampleRate float64) {
	e.EffectBase.Prepare(sampleRate, e.ChannelCount)
}

// Release clears the transport cache.
func (e *GainEffect) Release() {
	e.EffectBase.Release()
}

func (e *GainEffect) recalculate() {
	trace(">> GainEffect.recalculate")
	dB := e.Parameters.RealValue("Gain [dB]")
	e.gainFactor = math.Pow(10, dB/20)
	trace("<< GainEffect.recalculate -> gainFactor=%v", e.gainFactor)
}

// SetValue applies the new gain and, unless suppressed, recomputes the
// cached linear gain factor.
func (e *GainEffect) SetValue(name, value string, suppressRecalc bool) ChangeKind {
	kind := e.EffectBase.SetValue(name, value, suppressRecalc)
	if kind != ChangeKindNone && !suppressRecalc {
		e.recalculate()
	}
	return kind
}

// Process multiplies every sample in every channel by the cached gain
// factor (§6 "Gain").
func (e *GainEffect) Process(timePosition float64, buffer [][]AudioSample) {
	e.UpdateTimePosition(timePosition)
	for c := range buffer {
		for i, x := range buffer[c] {
			buffer[c][i] = x * AudioSample(e.gainFactor)
		}
	}
}
