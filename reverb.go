// reverb.go - Freeverb-style comb/allpass reverb core

package soxplugins

import "math"

var combLengthTable = []int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
var allpassLengthTable = []int{225, 341, 441, 556}

// reverbDelayLength scales a base table length (at 44.1kHz) by the
// sample rate, a scale factor (room_scale for combs, 1 for allpasses)
// and an alternating-sign stereo spread (§4.6).
func reverbDelayLength(sampleRate float64, tableValue, scale, depth float64, index int) int {
	sign := 1.0
	if index%2 != 0 {
		sign = -1
	}
	length := sampleRate / 44100 * scale * (tableValue + 12*sign*depth)
	return int(math.Round(length))
}

// combFilter is a Schröder comb: a delay ring plus one damped feedback
// scalar.
type combFilter struct {
	ring       *SampleRingBuffer
	stored     AudioSample
	hfDamping  float64
	feedback   float64
}

func newCombFilter(length int) *combFilter {
	return &combFilter{ring: NewSampleRingBuffer(length)}
}

func (c *combFilter) apply(in AudioSample) AudioSample {
	out := c.ring.First()
	c.stored = out + (c.stored-out)*c.hfDamping
	c.ring.ShiftLeft(in + c.stored*c.feedback)
	return out
}

// allpassFilter is a Schröder allpass: a delay ring only.
type allpassFilter struct {
	ring *SampleRingBuffer
}

func newAllpassFilter(length int) *allpassFilter {
	return &allpassFilter{ring: NewSampleRingBuffer(length)}
}

func (a *allpassFilter) apply(in AudioSample) AudioSample {
	out := a.ring.First()
	a.ring.ShiftLeft(in + out*0.5)
	return out - in
}

// reverbLine is one Freeverb line: 8 combs in parallel, summed, feeding
// 4 allpasses in series, scaled by wetGain.
type reverbLine struct {
	combs    [8]*combFilter
	allpass  [4]*allpassFilter
	wetGain  float64
}

func newReverbLine(sampleRate, roomScale, depth, hfDamping, feedback, wetGain float64) *reverbLine {
	line := &reverbLine{wetGain: wetGain}
	for i, tableValue := range combLengthTable {
		length := reverbDelayLength(sampleRate, float64(tableValue), roomScale, depth, i)
		c := newCombFilter(length)
		c.hfDamping = hfDamping
		c.feedback = feedback
		line.combs[i] = c
	}
	for i, tableValue := range allpassLengthTable {
		length := reverbDelayLength(sampleRate, float64(tableValue), 1, depth, i)
		line.allpass[i] = newAllpassFilter(length)
	}
	return line
}

func (l *reverbLine) apply(in AudioSample) AudioSample {
	sum := AudioSample(0)
	for _, c := range l.combs {
		sum += c.apply(in)
	}
	for _, a := range l.allpass {
		sum = a.apply(sum)
	}
	return sum * AudioSample(l.wetGain)
}

// reverbChannel is one channel's predelay plus one or two reverb lines
// (two only when stereoDepth > 0). wetScratch is a reusable landing spot
// for each line's output, sized once in Prepare so Apply never allocates.
type reverbChannel struct {
	predelay   *SampleRingBuffer
	lines      []*reverbLine
	wetScratch []AudioSample
}

// ReverbCore implements the Freeverb topology: parallel comb / series
// allpass lines per channel with predelay and stereo cross-mix (§4.6).
type ReverbCore struct {
	sampleRate float64

	reverberancePercent float64
	hfDampingPercent    float64
	roomScalePercent    float64
	stereoDepthPercent  float64
	predelaySeconds     float64
	wetGainDB           float64
	wetOnly             bool

	channels   []*reverbChannel
	wetSamples [][]AudioSample // reusable per-channel scratch for Apply
}

// NewReverbCore returns a core with every control at zero; call
// SetParameters and Prepare before processing.
func NewReverbCore() *ReverbCore {
	return &ReverbCore{}
}

// SetParameters stores the user-facing controls; they take effect on the
// next Prepare.
func (r *ReverbCore) SetParameters(reverberancePercent, hfDampingPercent, roomScalePercent, stereoDepthPercent, predelaySeconds, wetGainDB float64, wetOnly bool) {
	r.reverberancePercent = reverberancePercent
	r.hfDampingPercent = hfDampingPercent
	r.roomScalePercent = roomScalePercent
	r.stereoDepthPercent = stereoDepthPercent
	r.predelaySeconds = predelaySeconds
	r.wetGainDB = wetGainDB
	r.wetOnly = wetOnly
}

func (r *ReverbCore) derivedParameters() (feedback, hfDamping, roomScale, stereoDepth, wetGain float64) {
	feedbackMin := -1 / math.Log(1-0.3)
	feedbackMax := 100 / (math.Log(1-0.98)*feedbackMin + 1)
	feedback = 1 - math.Exp((r.reverberancePercent-feedbackMax)/(feedbackMin*feedbackMax))
	hfDamping = r.hfDampingPercent/100*0.3 + 0.2
	roomScale = r.roomScalePercent/100*0.9 + 0.1
	stereoDepth = r.stereoDepthPercent / 100
	wetGain = math.Pow(10, r.wetGainDB/20) * 0.015
	return
}

// Prepare (re)allocates every channel's predelay and reverb lines for
// sampleRate and channelCount.
func (r *ReverbCore) Prepare(sampleRate float64, channelCount int) {
	r.sampleRate = sampleRate
	feedback, hfDamping, roomScale, stereoDepth, wetGain := r.derivedParameters()

	predelayLength := int(math.Round(r.predelaySeconds * sampleRate))

	r.channels = make([]*reverbChannel, channelCount)
	for c := range r.channels {
		ch := &reverbChannel{predelay: NewSampleRingBuffer(maxInt(predelayLength, 1))}
		ch.predelay.SetLength(predelayLength)

		lineCount := 1
		if stereoDepth > 0 {
			lineCount = 2
		}
		ch.lines = make([]*reverbLine, lineCount)
		for i := range ch.lines {
			depth := 0.0
			if i == 1 {
				depth = stereoDepth
			}
			ch.lines[i] = newReverbLine(sampleRate, roomScale, depth, hfDamping, feedback, wetGain)
		}
		ch.wetScratch = make([]AudioSample, lineCount)
		r.channels[c] = ch
	}
	r.wetSamples = make([][]AudioSample, channelCount)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (r *ReverbCore) applyPredelay(ch *reverbChannel, in AudioSample) AudioSample {
	if ch.predelay.Len() == 0 {
		return in
	}
	out := ch.predelay.First()
	ch.predelay.ShiftLeft(in)
	return out
}

// Apply processes one sample per channel. Stereo cross-mix only engages
// for exactly 2 channels with stereo depth > 0 (§4.6).
func (r *ReverbCore) Apply(input, output []AudioSample) {
	channelCount := len(input)

	for c := 0; c < channelCount; c++ {
		ch := r.channels[c]
		delayed := r.applyPredelay(ch, input[c])
		for i, line := range ch.lines {
			ch.wetScratch[i] = line.apply(delayed)
		}
		r.wetSamples[c] = ch.wetScratch
	}

	hasMultipleLines := channelCount == 2 && len(r.channels[0].lines) == 2

	for c := 0; c < channelCount; c++ {
		var wetOut AudioSample
		if hasMultipleLines {
			other := 1 - c
			wetOut = (r.wetSamples[c][c] + r.wetSamples[other][c]) / 2
		} else {
			wetOut = r.wetSamples[c][0]
		}
		if r.wetOnly {
			output[c] = wetOut
		} else {
			output[c] = wetOut + input[c]
		}
	}
}
