// modulator_effect.go - Effect wiring for Modulator (§4.7, §6)

package soxplugins

// ModulatorEffect exposes Modulator as a single Phaser/Tremolo plug-in:
// switching "Effect Kind" triggers a ChangeKindGlobal (§6). All
// parameters of both kinds stay registered and active whichever kind is
// selected; the inactive kind's parameters are simply not read.
type ModulatorEffect struct {
	EffectBase
	core         *Modulator
	channelCount int
}

// NewModulatorEffect returns a modulator effect defaulted to Tremolo.
func NewModulatorEffect() *ModulatorEffect {
	e := &ModulatorEffect{EffectBase: NewEffectBase(), core: NewModulator(ModulatorTremolo)}

	e.Parameters.SetKindEnum("Effect Kind", []string{"Tremolo", "Phaser"})
	e.Parameters.SetKindReal("Time Offset [s]", -1e9, 1e9, 1e-6)
	e.Parameters.SetKindReal("Modulation [Hz]", 0.1, 2, 0.01)
	e.Parameters.SetKindReal("Depth [%]", 0, 100, 0.1)
	e.Parameters.SetKindReal("In Gain [dB]", 0, 1, 0.01)
	e.Parameters.SetKindReal("Out Gain [dB]", 0, 1000, 0.01)
	e.Parameters.SetKindReal("Delay [ms]", 0, 5, 0.01)
	e.Parameters.SetKindReal("Decay", 0, 0.99, 0.01)
	e.Parameters.SetKindEnum("Waveform", []string{"Sine", "Triangle"})

	e.SetDefaultValues()
	return e
}

func (e *ModulatorEffect) Name() string { return "Phaser/Tremolo" }

func (e *ModulatorEffect) ParameterMap() *EffectParameterMap { return e.Parameters }

func (e *ModulatorEffect) SetDefaultValues() {
	e.Parameters.SetValue("Effect Kind", "Tremolo")
	e.Parameters.SetValue("Time Offset [s]", "0")
	e.Parameters.SetValue("Modulation [Hz]", "0.5")
	e.Parameters.SetValue("Depth [%]", "40")
	e.Parameters.SetValue("In Gain [dB]", "0.8")
	e.Parameters.SetValue("Out Gain [dB]", "0.74")
	e.Parameters.SetValue("Delay [ms]", "3")
	e.Parameters.SetValue("Decay", "0.4")
	e.Parameters.SetValue("Waveform", "Sine")
	e.recalculate()
}

func (e *ModulatorEffect) Prepare(sampleRate float64) {
	e.EffectBase.Prepare(sampleRate, e.channelCount)
	e.recalculate()
}

func (e *ModulatorEffect) Release() {
	e.EffectBase.Release()
}

func (e *ModulatorEffect) isPhaser() bool {
	return e.Parameters.Value("Effect Kind") == "Phaser"
}

func (e *ModulatorEffect) waveformKind() WaveformKind {
	if e.Parameters.Value("Waveform") == "Triangle" {
		return WaveformTriangle
	}
	return WaveformSine
}

func (e *ModulatorEffect) recalculate() {
	trace(">> ModulatorEffect.recalculate")
	if e.SampleRate <= 0 || e.channelCount <= 0 {
		trace("<< ModulatorEffect.recalculate (not prepared yet)")
		return
	}
	timeOffset := e.Parameters.RealValue("Time Offset [s]")
	frequency := e.Parameters.RealValue("Modulation [Hz]")
	now := e.CurrentTimePosition()

	if e.isPhaser() {
		e.core.SetupPhaser(frequency,
			e.Parameters.RealValue("Delay [ms]")/1000,
			e.Parameters.RealValue("In Gain [dB]"),
			e.Parameters.RealValue("Out Gain [dB]"),
			e.Parameters.RealValue("Decay"),
			timeOffset, e.SampleRate, now, e.waveformKind(), e.channelCount)
	} else {
		e.core.SetupTremolo(frequency, e.Parameters.RealValue("Depth [%]"), timeOffset, e.SampleRate, now)
	}
	trace("<< ModulatorEffect.recalculate -> isPhaser=%v", e.isPhaser())
}

func (e *ModulatorEffect) SetValue(name, value string, suppressRecalc bool) ChangeKind {
	kind := e.EffectBase.SetValue(name, value, suppressRecalc)
	if kind != ChangeKindNone && !suppressRecalc {
		e.recalculate()
	}
	return kind
}

// Process resizes the core for the block's channel count on first use
// (phaser only; tremolo is channel-count-agnostic) and runs the
// modulator over the block.
func (e *ModulatorEffect) Process(timePosition float64, buffer [][]AudioSample) {
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
		e.core.ApplyBlock(input, output)
		for c := 0; c < channelCount; c++ {
			buffer[c][i] = output[c]
		}
	}
}
