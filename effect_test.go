package soxplugins

import (
	"math"
	"testing"
)

func TestEffectBasePrepareRejectsNonPositiveSampleRate(t *testing.T) {
	b := NewEffectBase()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non-positive sample rate")
		}
	}()
	b.Prepare(0, 2)
}

func TestEffectBaseFirstBlockAlwaysMoved(t *testing.T) {
	b := NewEffectBase()
	b.Prepare(44100, 1)
	b.UpdateTimePosition(0)
	if !b.TimePositionHasMoved() {
		t.Fatal("first block after prepare must count as moved")
	}
}

func TestEffectBaseDetectsSeek(t *testing.T) {
	b := NewEffectBase()
	b.Prepare(44100, 1)
	b.UpdateTimePosition(0)
	b.UpdateTimePosition(0.01)
	if b.TimePositionHasMoved() {
		t.Fatal("small forward advance should not count as a seek")
	}
	b.UpdateTimePosition(5.0)
	if !b.TimePositionHasMoved() {
		t.Fatal("large jump should count as a seek")
	}
}

func TestEffectBaseReleaseResetsTransport(t *testing.T) {
	b := NewEffectBase()
	b.Prepare(44100, 1)
	b.UpdateTimePosition(1)
	b.Release()
	if !math.IsInf(b.previousTimePosition, 1) {
		t.Fatal("release must reset previous time position to +inf")
	}
}
