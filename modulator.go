// modulator.go - shared LFO engine driving phaser and tremolo

package soxplugins

import "math"

// ModulatorKind selects whether Modulator runs as a phaser (modulated
// delay line) or a tremolo (amplitude multiplier).
type ModulatorKind int

const (
	ModulatorTremolo ModulatorKind = iota
	ModulatorPhaser
)

// Modulator is the shared LFO engine behind both effects (§4.7). Per
// spec's Open Question #3, tremolo always runs a sine LFO with zero
// delay regardless of any configured waveform/delay — reproduced here
// exactly rather than "fixed".
type Modulator struct {
	kind ModulatorKind

	lfo         WaveformGenerator
	frequency   float64
	timeOffset  float64
	sampleRate  float64

	delayLength int
	inGain      float64
	outGain     float64
	decay       float64

	channels []*phaserChannelState
}

type phaserChannelState struct {
	delay     *SampleRingBuffer
	writeIdx  int
}

// NewModulator returns a modulator of the given kind.
func NewModulator(kind ModulatorKind) *Modulator {
	return &Modulator{kind: kind}
}

// SetupTremolo configures the tremolo path: depthPercent in [0,100],
// frequency in Hz.
func (m *Modulator) SetupTremolo(frequency, depthPercent, timeOffset, sampleRate, timeNow float64) {
	m.kind = ModulatorTremolo
	m.frequency = frequency
	m.timeOffset = timeOffset
	m.sampleRate = sampleRate

	periodSamples := sampleRate / frequency
	yMin := 1 - depthPercent/100
	phase := math.Pi/2 + PhaseByTime(frequency, timeOffset, timeNow)
	m.lfo.Set(periodSamples, WaveformSine, yMin, 1, phase, false)
}

// SetupPhaser configures the phaser path: delaySeconds up to 5ms,
// inGain/outGain/decay as in §6, waveformKind per the configured
// Waveform parameter.
func (m *Modulator) SetupPhaser(frequency, delaySeconds, inGain, outGain, decay, timeOffset, sampleRate, timeNow float64, waveformKind WaveformKind, channelCount int) {
	m.kind = ModulatorPhaser
	m.frequency = frequency
	m.timeOffset = timeOffset
	m.sampleRate = sampleRate
	m.inGain = inGain
	m.outGain = outGain
	m.decay = decay

	m.delayLength = maxInt(int(math.Round(delaySeconds*sampleRate)), 1)
	periodSamples := sampleRate / frequency
	phase := math.Pi/2 + PhaseByTime(frequency, timeOffset, timeNow)
	m.lfo.Set(periodSamples, waveformKind, 1, float64(m.delayLength), phase, true)

	m.channels = make([]*phaserChannelState, channelCount)
	for i := range m.channels {
		m.channels[i] = &phaserChannelState{delay: NewSampleRingBuffer(m.delayLength)}
	}
}

// ApplyBlock processes one sample in every channel, restoring the LFO's
// pre-block step-count snapshot before each channel so all channels
// advance through the identical LFO trajectory (§4.7, §5 ordering
// guarantees).
func (m *Modulator) ApplyBlock(input, output []AudioSample) {
	snapshot := m.lfo.State()
	for c := range input {
		m.lfo.SetState(snapshot)
		if m.kind == ModulatorTremolo {
			output[c] = m.applyTremoloSample(input[c])
		} else {
			output[c] = m.applyPhaserSample(c, input[c])
		}
	}
	m.lfo.SetState(snapshot)
	m.lfo.Advance()
}

func (m *Modulator) applyTremoloSample(in AudioSample) AudioSample {
	out := in * m.lfo.Current()
	return out
}

func (m *Modulator) applyPhaserSample(channel int, in AudioSample) AudioSample {
	st := m.channels[channel]
	idx := (st.writeIdx + int(math.Floor(m.lfo.Current()))) % m.delayLength
	if idx < 0 {
		idx += m.delayLength
	}
	y := in*m.inGain + st.delay.At(idx)*m.decay
	st.writeIdx = (st.writeIdx + 1) % m.delayLength
	st.delay.Set(st.writeIdx, y)
	return y * m.outGain
}
