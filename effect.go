// effect.go - host-agnostic effect trait and its shared lifecycle state

package soxplugins

import "math"

// Effect is the host-agnostic contract every DSP processor in this
// package implements. The host calls Prepare once, then repeatedly
// Process; SetValue may be called between Process calls, serialized by
// the host (§5: SetValue and Process never overlap).
type Effect interface {
	Name() string
	ParameterMap() *EffectParameterMap
	SetDefaultValues()
	Prepare(sampleRate float64)
	Release()
	Process(timePosition float64, buffer [][]AudioSample)
	SetValue(name, value string, suppressRecalc bool) ChangeKind
}

// EffectBase tracks the state shared by every concrete effect: sample
// rate, channel count, transport time, and the time-position-has-moved
// flag that lets an effect detect a host seek and re-lock its LFOs.
// Concrete effects embed it and call its lifecycle hooks from their own
// Prepare/Process/Release.
type EffectBase struct {
	SampleRate           float64
	ChannelCount         int
	Parameters           *EffectParameterMap
	currentTimePosition  float64
	previousTimePosition float64
	timePositionHasMoved bool
	isPrepared           bool
}

// NewEffectBase returns a base with an empty parameter map and the
// initial transport state the original gives its effects: previous time
// position at infinity so the very first block is always treated as a
// seek.
func NewEffectBase() EffectBase {
	return EffectBase{
		Parameters:           NewEffectParameterMap(),
		currentTimePosition:  math.Inf(1),
		previousTimePosition: math.Inf(1),
		timePositionHasMoved: true,
	}
}

// Prepare sets the sample rate and invalidates cached DSP state. A
// non-positive sample rate is a programmer error (§7 "Initialization").
func (b *EffectBase) Prepare(sampleRate float64, channelCount int) {
	trace(">> EffectBase.Prepare(sampleRate=%v, channelCount=%v)", sampleRate, channelCount)
	if sampleRate <= 0 {
		panic("soxplugins: prepare requires a positive sample rate")
	}
	b.SampleRate = sampleRate
	b.ChannelCount = channelCount
	b.previousTimePosition = math.Inf(1)
	b.isPrepared = true
	trace("<< EffectBase.Prepare")
}

// Release clears the per-playback transport cache.
func (b *EffectBase) Release() {
	trace(">> EffectBase.Release")
	b.previousTimePosition = math.Inf(1)
	b.isPrepared = false
	trace("<< EffectBase.Release")
}

// UpdateTimePosition advances the transport clock for one block and
// records, for TimePositionHasMoved, whether the new position counts as a
// seek: a jump of more than 0.1s forward, or any step backward, from the
// previous block.
func (b *EffectBase) UpdateTimePosition(timePosition float64) {
	difference := timePosition - b.previousTimePosition
	b.timePositionHasMoved = difference < 0 || difference > 0.1
	b.previousTimePosition = timePosition
	b.currentTimePosition = timePosition
}

// TimePositionHasMoved reports whether the most recent UpdateTimePosition
// call detected a transport seek.
func (b *EffectBase) TimePositionHasMoved() bool {
	return b.timePositionHasMoved
}

// CurrentTimePosition returns the transport time of the block currently
// being processed.
func (b *EffectBase) CurrentTimePosition() float64 {
	return b.currentTimePosition
}

// IsPrepared reports whether Prepare has been called since construction
// or the last Release.
func (b *EffectBase) IsPrepared() bool {
	return b.isPrepared
}

// SetValue applies the cycle-breaking rule shared by every effect: a
// value equal to the current one, or one the map rejects, leaves state
// untouched and returns ChangeKindNone; only a genuinely new, valid value
// is stored and reported. suppressRecalc lets callers (e.g. persistence
// loading) install many values before the caller recomputes cached DSP
// state once, instead of after every individual set.
func (b *EffectBase) SetValue(name, value string, suppressRecalc bool) ChangeKind {
	trace(">> EffectBase.SetValue(name=%q, value=%q)", name, value)
	kind := b.Parameters.SetValue(name, value)
	trace("<< EffectBase.SetValue -> %v", kind)
	return kind
}
