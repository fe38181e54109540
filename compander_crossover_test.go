package soxplugins

import (
	"math"
	"testing"
)

func runCrossover(f *LRCrossoverFilter, order int, input []AudioSample) (lo, hi []AudioSample) {
	in := NewSampleRingBuffer(order)
	outLo := NewSampleRingBuffer(order)
	outHi := NewSampleRingBuffer(order)
	lo = make([]AudioSample, len(input))
	hi = make([]AudioSample, len(input))
	for t, x := range input {
		in.ShiftRight(0)
		in.SetFirst(x)
		outLo.ShiftRight(0)
		outHi.ShiftRight(0)
		f.Apply(in, outLo, outHi)
		lo[t] = outLo.First()
		hi[t] = outHi.First()
	}
	return lo, hi
}

func TestCrossoverDegenerateAtNyquist(t *testing.T) {
	f := NewLRCrossoverFilter()
	f.Adapt(22050, 44100)
	lo, hi := runCrossover(f, 5, []AudioSample{1, 0, 0, 0, 0})
	if lo[0] != 1 {
		t.Fatalf("degenerate lowpass should be identity, got %v", lo[0])
	}
	for i, v := range hi {
		if v != 0 {
			t.Fatalf("degenerate highpass should be silent, sample %d = %v", i, v)
		}
	}
}

func TestCrossoverDCSumsToInput(t *testing.T) {
	f := NewLRCrossoverFilter()
	f.Adapt(1000, 44100)
	const n = 4000
	input := make([]AudioSample, n)
	for i := range input {
		input[i] = 1
	}
	lo, hi := runCrossover(f, 5, input)
	sum := lo[n-1] + hi[n-1]
	if math.Abs(sum-1) > 1e-3 {
		t.Fatalf("LP+HP at DC after settling: got %v, want ~1", sum)
	}
	if math.Abs(hi[n-1]) > 1e-2 {
		t.Fatalf("HP at DC should tend to 0, got %v", hi[n-1])
	}
}
