package soxplugins

import (
	"math"
	"testing"
)

func TestModulatorTremoloFullDepthZeroHitsSilence(t *testing.T) {
	m := NewModulator(ModulatorTremolo)
	m.SetupTremolo(5, 100, 0, 44100, 0)

	input := []AudioSample{1}
	output := make([]AudioSample, 1)

	sawMax, sawMin := math.Inf(-1), math.Inf(1)
	periodSamples := int(44100 / 5)
	for i := 0; i < periodSamples*2; i++ {
		m.ApplyBlock(input, output)
		v := float64(output[0])
		if v > sawMax {
			sawMax = v
		}
		if v < sawMin {
			sawMin = v
		}
	}
	if sawMax < 0.9 {
		t.Fatalf("tremolo peak should approach input amplitude: got max %v", sawMax)
	}
	if sawMin > 0.1 {
		t.Fatalf("full-depth tremolo trough should approach silence: got min %v", sawMin)
	}
}

func TestModulatorPhaserZeroGainsIsSilence(t *testing.T) {
	m := NewModulator(ModulatorPhaser)
	m.SetupPhaser(0.5, 0.003, 0, 0, 0, 0, 44100, 0, WaveformSine, 1)

	input := []AudioSample{0.7}
	output := make([]AudioSample, 1)
	for i := 0; i < 10; i++ {
		m.ApplyBlock(input, output)
		if math.Abs(output[0]) > 1e-9 {
			t.Fatalf("zero in/out gain phaser must be silent: got %v", output[0])
		}
	}
}

func TestModulatorPhaserLockstepAcrossChannels(t *testing.T) {
	m := NewModulator(ModulatorPhaser)
	m.SetupPhaser(1, 0.002, 0.7, 0.7, 0.3, 0, 44100, 0, WaveformSine, 2)

	input := []AudioSample{0.2, 0.2}
	output := make([]AudioSample, 2)
	for i := 0; i < 50; i++ {
		m.ApplyBlock(input, output)
	}
	if math.IsNaN(output[0]) || math.IsNaN(output[1]) {
		t.Fatalf("phaser output must be finite: %v %v", output[0], output[1])
	}
	if math.Abs(output[0]-output[1]) > 1e-9 {
		t.Fatalf("identical input channels through a lockstep LFO should match: %v vs %v", output[0], output[1])
	}
}
