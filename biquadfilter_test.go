package soxplugins

import (
	"math"
	"testing"
)

func feedBiquad(c *BiquadFilterCore, n int) []AudioSample {
	out := make([]AudioSample, n)
	input := []AudioSample{1}
	single := make([]AudioSample, 1)
	for i := 0; i < n; i++ {
		if i > 0 {
			input[0] = 0
		}
		c.Apply(input, single)
		out[i] = single[0]
	}
	return out
}

func TestBiquadLowpassDCGainIsUnity(t *testing.T) {
	c := NewBiquadFilterCore(FilterLowpass)
	c.Resize(1)
	c.Adapt(44100, 1000, BandwidthQuality, math.Sqrt(0.5), 0)

	impulse := feedBiquad(c, 2000)
	sum := AudioSample(0)
	for _, v := range impulse {
		sum += v
	}
	if math.Abs(sum-1) > 0.01 {
		t.Fatalf("lowpass DC gain should be unity: sum=%v", sum)
	}
}

func TestBiquadHighpassDCGainIsZero(t *testing.T) {
	c := NewBiquadFilterCore(FilterHighpass)
	c.Resize(1)
	c.Adapt(44100, 1000, BandwidthQuality, math.Sqrt(0.5), 0)

	impulse := feedBiquad(c, 2000)
	sum := AudioSample(0)
	for _, v := range impulse {
		sum += v
	}
	if math.Abs(sum) > 0.01 {
		t.Fatalf("highpass DC gain should be zero: sum=%v", sum)
	}
}

func TestBiquadAllpassUnityMagnitudeDC(t *testing.T) {
	c := NewBiquadFilterCore(FilterAllpass)
	c.Resize(1)
	c.Adapt(44100, 1000, BandwidthQuality, 1, 0)

	impulse := feedBiquad(c, 2000)
	sum := AudioSample(0)
	for _, v := range impulse {
		sum += v
	}
	if math.Abs(math.Abs(float64(sum))-1) > 0.01 {
		t.Fatalf("allpass DC magnitude should be unity: sum=%v", sum)
	}
}

func TestBiquadBandwidthUnitsAllProduceFiniteCoefficients(t *testing.T) {
	units := []FilterBandwidthUnit{BandwidthFrequency, BandwidthOctaves, BandwidthQuality, BandwidthButterworth, BandwidthSlope}
	for _, u := range units {
		c := NewBiquadFilterCore(FilterEqualizer)
		c.Resize(1)
		value := 1.0
		if u == BandwidthFrequency {
			value = 200
		}
		if u == BandwidthSlope {
			value = 0.5
		}
		c.Adapt(44100, 1000, u, value, 6)
		out := make([]AudioSample, 1)
		c.Apply([]AudioSample{1}, out)
		if math.IsNaN(out[0]) || math.IsInf(out[0], 0) {
			t.Fatalf("bandwidth unit %v produced non-finite output: %v", u, out[0])
		}
	}
}
