package soxplugins

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestTransferFunctionMonotonicAndClamped(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		knee := rapid.Float64Range(0, 20).Draw(t, "knee")
		threshold := rapid.Float64Range(-60, 0).Draw(t, "threshold")
		ratio := rapid.Float64Range(1, 20).Draw(t, "ratio")
		gain := rapid.Float64Range(-10, 10).Draw(t, "gain")

		var tf TransferFunction
		tf.Adapt(knee, threshold, ratio, gain)

		previous := tf.Apply(0)
		for i := 1; i <= 50; i++ {
			v := float64(i) / 50
			current := tf.Apply(v)
			if current < previous-1e-9 {
				t.Fatalf("transfer function not non-decreasing at v=%v: %v < %v", v, current, previous)
			}
			previous = current
		}

		if got := tf.Apply(tf.minimumLinearInValue / 2); got != tf.minimumLinearOutValue {
			t.Fatalf("below minimumLinearIn should return minimumLinearOut: got %v want %v", got, tf.minimumLinearOutValue)
		}
	})
}

func TestCompanderExpanderOffIsIdentity(t *testing.T) {
	var env companderEnvelope
	env.SetLength(1)
	env.channelsAggregated = false
	env.Adapt(44100, 0.001, 0.001, 0, 0, 1, 0)
	// force the envelope to have already settled to the input level
	env.volume[0] = 0.4

	in := []AudioSample{0.4}
	out := make([]AudioSample, 1)
	env.Apply(in, out, false)
	if math.Abs(out[0]-in[0]) > 1e-6 {
		t.Fatalf("ratio=1 compander should act as identity: got %v want %v", out[0], in[0])
	}
}

func TestCompanderCoreSingleBandBehavesLikeOneCompander(t *testing.T) {
	core := NewCompanderCore()
	core.Resize(1, 1)
	core.SetCompanderBandData(0, 44100, 0.001, 0.001, 0, 0, 1, 0, 25000)

	out := make([]AudioSample, 1)
	for i := 0; i < 100; i++ {
		core.Apply([]AudioSample{0.3}, out)
	}
	if math.Abs(out[0]-0.3) > 0.05 {
		t.Fatalf("single full-band identity compander should settle near input: got %v", out[0])
	}
}

func TestCompanderCoreTopBandFrequencyQuirk(t *testing.T) {
	core := NewCompanderCore()
	core.Resize(2, 1)
	core.SetCompanderBandData(0, 44100, 0.01, 0.01, 0, -20, 2, 0, 1000)
	core.SetCompanderBandData(1, 44100, 0.01, 0.01, 0, -20, 2, 0, 500)

	if got, want := core.TopFrequency(1), 500.0; got != want {
		t.Fatalf("stored top frequency must round-trip unchanged: got %v want %v", got, want)
	}
}
