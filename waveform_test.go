package soxplugins

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestWaveformDriftFree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		period := rapid.Float64Range(2, 5000).Draw(t, "period")
		phase := rapid.Float64Range(0, 2*math.Pi).Draw(t, "phase")

		var w WaveformGenerator
		w.Set(period, WaveformSine, 0, 1, phase, false)

		const n = 1000000
		for i := 0; i < n; i++ {
			w.Advance()
		}

		l := float64(len(sineTable))
		want := mod(w.firstPosition+float64(n)*w.increment, l)
		if got := w.position(); math.Abs(got-want) > 1e-9 {
			t.Fatalf("drift after %d steps: got %v want %v", n, got, want)
		}
	})
}

func TestPhaseByTimeRestartability(t *testing.T) {
	if got := PhaseByTime(2, 0, 0); math.Abs(got) > 1e-12 {
		t.Fatalf("phase at t0 should be 0, got %v", got)
	}
	if got := PhaseByTime(2, 0, 0.5); math.Abs(got) > 1e-12 {
		t.Fatalf("phase after one full period should be 0, got %v", got)
	}
	if got, want := PhaseByTime(0.25, 0, 1), math.Pi/2; math.Abs(got-want) > 1e-12 {
		t.Fatalf("phase_by_time(0.25,0,1): got %v want %v", got, want)
	}
}

func TestWaveformTriangleInterpolatesExactly(t *testing.T) {
	var w WaveformGenerator
	w.Set(4, WaveformTriangle, -1, 1, 0, false)
	// position starts at 0, table = [0.5, 1.0, 0.5, 0.0] scaled to [-1,1]
	if got, want := w.Current(), 0.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("triangle at start: got %v want %v", got, want)
	}
	w.Advance()
	if got, want := w.Current(), 1.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("triangle at step 1: got %v want %v", got, want)
	}
}

func TestWaveformIntegerSnap(t *testing.T) {
	var w WaveformGenerator
	w.Set(100, WaveformSine, 0, 10, 0.1, true)
	v := w.Current()
	if v != math.Round(v) {
		t.Fatalf("expected integer-snapped value, got %v", v)
	}
}
