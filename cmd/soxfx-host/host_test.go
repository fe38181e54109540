package main

import (
	"math"
	"testing"
)

func TestEffectHostReadSamplesIsFinite(t *testing.T) {
	host := NewEffectHost(newEffectByName("gain"), 44100)
	host.SetTestToneFrequency(440)

	buf := make([]float32, 512)
	host.ReadSamples(buf)

	for _, v := range buf {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("host produced non-finite sample: %v", v)
		}
	}
}

func TestDispatchConsoleLineSetAndQuit(t *testing.T) {
	host := NewEffectHost(newEffectByName("gain"), 44100)

	if quit := dispatchConsoleLine(host, "set Gain [dB] 3"); quit {
		t.Fatalf("set command should not quit the console")
	}
	if quit := dispatchConsoleLine(host, "quit"); !quit {
		t.Fatalf("quit command should end the console loop")
	}
}
