package soxplugins

import (
	"testing"

	"pgregory.net/rapid"
)

func TestRingBufferShiftLeftLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 16).Draw(t, "capacity")
		values := rapid.SliceOfN(rapid.Float64Range(-1, 1), capacity, 1024).Draw(t, "values")

		b := NewSampleRingBuffer(capacity)
		for _, x := range values {
			b.ShiftLeft(x)
		}

		n := len(values)
		if got, want := b.Last(), values[n-1]; got != want {
			t.Fatalf("last: got %v want %v", got, want)
		}
		if n >= capacity {
			if got, want := b.First(), values[n-capacity]; got != want {
				t.Fatalf("first: got %v want %v", got, want)
			}
		}
	})
}

func TestRingBufferShiftRightIsInverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		capacity := rapid.IntRange(1, 16).Draw(t, "capacity")
		x := rapid.Float64Range(-1, 1).Draw(t, "x")

		b := NewSampleRingBuffer(capacity)
		before := make([]AudioSample, capacity)
		b.ToArray(before)

		b.ShiftRight(x)
		if got := b.First(); got != x {
			t.Fatalf("first after ShiftRight: got %v want %v", got, x)
		}

		b.ShiftLeft(before[0])
		after := make([]AudioSample, capacity)
		b.ToArray(after)
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("ShiftRight then ShiftLeft did not restore index %d: %v != %v", i, before[i], after[i])
			}
		}
	})
}

func TestRingBufferBoundsPanics(t *testing.T) {
	b := NewSampleRingBuffer(4)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-bounds At")
		}
	}()
	b.At(4)
}

func TestRingBufferSetLengthZeroFills(t *testing.T) {
	b := NewSampleRingBuffer(8)
	b.SetLength(2)
	b.ShiftLeft(1)
	b.ShiftLeft(2)
	b.SetLength(4)
	if got := b.At(2); got != 0 {
		t.Fatalf("grown region not zero-filled: %v", got)
	}
	if got := b.At(3); got != 0 {
		t.Fatalf("grown region not zero-filled: %v", got)
	}
}
