// host.go - minimal reference host: test-tone generator feeding one Effect

package main

import (
	"math"
	"sync"

	"github.com/prof-spock/soxplugins-go"
)

// EffectHost drives a single Effect with an internal sine test-tone
// generator, standing in for the real audio input a production host
// would supply. It is the thin wrapper every backend (oto,
// headless) pulls samples through, mirroring the teacher's own split
// between the chip/DSP core and its output backends.
type EffectHost struct {
	mutex sync.Mutex

	effect     soxplugins.Effect
	sampleRate float64
	frequency  float64
	phase      float64

	timePosition float64
}

// NewEffectHost prepares effect for sampleRate and returns a host ready
// to be read from.
func NewEffectHost(effect soxplugins.Effect, sampleRate float64) *EffectHost {
	effect.SetDefaultValues()
	effect.Prepare(sampleRate)
	return &EffectHost{
		effect:     effect,
		sampleRate: sampleRate,
		frequency:  220,
	}
}

// SetValue forwards a parameter change to the wrapped effect, serialized
// against the audio-reading path (§5: set_value and process never
// overlap from the host's perspective).
func (h *EffectHost) SetValue(name, value string) soxplugins.ChangeKind {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return h.effect.SetValue(name, value, false)
}

// SetTestToneFrequency changes the synthetic input signal's frequency.
func (h *EffectHost) SetTestToneFrequency(frequency float64) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.frequency = frequency
}

// ReadSamples fills out with len(out) mono samples of the test tone run
// through the wrapped effect.
func (h *EffectHost) ReadSamples(out []float32) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	buffer := [][]soxplugins.AudioSample{make([]soxplugins.AudioSample, len(out))}
	increment := 2 * math.Pi * h.frequency / h.sampleRate
	for i := range buffer[0] {
		buffer[0][i] = soxplugins.AudioSample(math.Sin(h.phase))
		h.phase += increment
		if h.phase > 2*math.Pi {
			h.phase -= 2 * math.Pi
		}
	}

	h.effect.Process(h.timePosition, buffer)
	h.timePosition += float64(len(out)) / h.sampleRate

	for i, v := range buffer[0] {
		out[i] = float32(v)
	}
}

// Effect returns the wrapped effect, for console/scripting commands that
// need the parameter map or persistence helpers.
func (h *EffectHost) Effect() soxplugins.Effect {
	return h.effect
}
