package soxplugins

import (
	"math"
	"testing"
)

func TestCompanderEffectProcessesWithoutPanicking(t *testing.T) {
	e := NewCompanderEffect()
	e.Prepare(44100)
	e.SetValue("-2#Band Count", "3", false)
	e.SetValue("1#Threshold [dB]", "-20", false)
	e.SetValue("1#Ratio", "4", false)

	buffer := [][]AudioSample{make([]AudioSample, 256), make([]AudioSample, 256)}
	for i := range buffer[0] {
		buffer[0][i] = AudioSample(math.Sin(float64(i) / 10))
		buffer[1][i] = buffer[0][i]
	}
	e.Process(0, buffer)
	for _, ch := range buffer {
		for _, v := range ch {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("compander effect produced non-finite output: %v", v)
			}
		}
	}
}

func TestReverbEffectPersistenceRoundTrip(t *testing.T) {
	e := NewReverbEffect()
	e.SetValue("Reverberance [%]", "75", false)
	e.SetValue("Wet Gain [dB]", "-3", false)

	block := Serialize(e.Name(), e.Parameters, e.Parameters.ParameterNameList())

	e2 := NewReverbEffect()
	Deserialize(block, e2.Name(), e2.Parameters)

	if e2.Parameters.Value("Reverberance [%]") != e.Parameters.Value("Reverberance [%]") {
		t.Fatalf("reverberance did not round-trip: got %v want %v", e2.Parameters.Value("Reverberance [%]"), e.Parameters.Value("Reverberance [%]"))
	}
}

func TestModulatorEffectSwitchingKindTriggersGlobalChange(t *testing.T) {
	e := NewModulatorEffect()
	kind := e.SetValue("Effect Kind", "Phaser", false)
	if kind != ChangeKindGlobal {
		t.Fatalf("switching Effect Kind should report a global change: got %v", kind)
	}

	e.Prepare(44100)
	buffer := [][]AudioSample{make([]AudioSample, 64)}
	buffer[0][0] = 1
	e.Process(0, buffer)
	for _, v := range buffer[0] {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("phaser output must be finite: %v", v)
		}
	}
}

func TestFilterEffectSwitchingKindRecalculates(t *testing.T) {
	e := NewFilterEffect()
	e.Prepare(44100)
	e.SetValue("Kind", "highpass", false)
	e.SetValue("Frequency [Hz]", "500", false)

	buffer := [][]AudioSample{make([]AudioSample, 32)}
	buffer[0][0] = 1
	e.Process(0, buffer)
	if math.IsNaN(buffer[0][0]) {
		t.Fatalf("filter effect produced NaN output")
	}
}
