// compander.go - transfer function, envelope follower, multiband orchestration

package soxplugins

import (
	"fmt"
	"math"
)

// point2D is a point in the two-dimensional plane used while building a
// transfer function's segments.
type point2D struct{ x, y float64 }

func (p point2D) add(o point2D) point2D      { return point2D{p.x + o.x, p.y + o.y} }
func (p point2D) subtract(o point2D) point2D { return point2D{p.x - o.x, p.y - o.y} }
func (p point2D) scale(f float64) point2D    { return point2D{p.x * f, p.y * f} }
func (p point2D) distance(o point2D) float64 {
	return math.Sqrt((p.x-o.x)*(p.x-o.x) + (p.y-o.y)*(p.y-o.y))
}

// tfSegment is one piece of a transfer function: either a straight line
// (a2 == 0) or a quadratic fit across the knee.
type tfSegment struct {
	isStraightLine     bool
	start, end         point2D
	a1, a2             float64
}

func (s *tfSegment) domainContains(x float64) bool {
	return s.start.x <= x && x <= s.end.x
}

func (s *tfSegment) gradient() float64 {
	return (s.end.y - s.start.y) / (s.end.x - s.start.x)
}

func (s *tfSegment) length() float64 {
	return s.start.distance(s.end)
}

// adaptCoefficients fits a quadratic through start, end and an
// intermediate point so the curve passes through all three.
func (s *tfSegment) adaptCoefficients(p point2D) {
	if s.length() == 0 {
		s.a1, s.a2 = 0, 0
		return
	}
	inA := p.x - s.start.x
	outA := p.y - s.start.y
	inB := s.end.x - s.start.x
	outB := s.end.y - s.start.y
	s.a2 = (outB/inB - outA/inA) / (inB - inA)
	s.a1 = outA/inA - s.a2*inA
}

// interpolate returns the point at absolute distance position along the
// segment, measured from its start.
func (s *tfSegment) interpolate(position float64) point2D {
	segmentLength := s.length()
	relative := 0.0
	if segmentLength != 0 {
		relative = position / segmentLength
	}
	return s.end.subtract(s.start).scale(relative).add(s.start)
}

// TransferFunction is a compander's piecewise dB-domain gain curve: a
// straight segment below the knee, a quadratic fit across it, and a
// straight compression segment above the threshold, all expressed and
// evaluated in natural-log space (§4.5).
type TransferFunction struct {
	segments              [3]tfSegment
	minimumLinearInValue  float64
	minimumLinearOutValue float64
	dBGain                float64
	dBKnee                float64
}

const transferFunctionLeftDBOffset = 10.0

// Adapt (re)builds the three segments from the compander's user-facing
// controls. ratio is clamped to >= 1, dBThreshold to <= 0.
func (t *TransferFunction) Adapt(dBKnee, cDBThreshold, cRatio, dBGain float64) {
	ratio := math.Max(1, cRatio)
	dBThreshold := math.Min(0, cDBThreshold)
	t.dBKnee = math.Max(0, dBKnee)
	t.dBGain = dBGain

	t.segments[0].start = point2D{dBThreshold - transferFunctionLeftDBOffset, 0}
	t.segments[2].start = point2D{dBThreshold, 0}
	t.segments[2].end = point2D{0, (ratio - 1) * dBThreshold / ratio}

	t.updateSegmentList()

	firstSegmentStart := t.segments[1].start
	t.minimumLinearInValue = math.Exp(firstSegmentStart.x)
	t.minimumLinearOutValue = math.Exp(firstSegmentStart.y)
}

func (t *TransferFunction) updateSegmentList() {
	t.updateSegmentListKinds()
	t.updateSegmentListEnds()
	t.shiftScaleSegmentList()
	t.adaptCurvesInSegmentList()
}

func (t *TransferFunction) updateSegmentListKinds() {
	n := len(t.segments)
	isLastSegment := true
	for i := n - 1; i >= 0; i-- {
		segment := &t.segments[i]
		isStraightLine := i%2 == 0
		segment.isStraightLine = isStraightLine

		if !isStraightLine && !isLastSegment {
			segment.start = t.segments[i+1].start
		}
		isLastSegment = false
	}
}

func (t *TransferFunction) updateSegmentListEnds() {
	n := len(t.segments)
	for i := 0; i < n-1; i++ {
		t.segments[i].end = t.segments[i+1].start
	}
}

func (t *TransferFunction) shiftScaleSegmentList() {
	factor := math.Log(10) / 20
	for i := range t.segments {
		s := &t.segments[i]
		s.start.y += t.dBGain
		s.end.y += t.dBGain
		s.start = s.start.scale(factor)
		s.end = s.end.scale(factor)

		if s.isStraightLine {
			s.a2 = 0
			s.a1 = s.gradient()
		}
	}
}

func (t *TransferFunction) adaptCurvesInSegmentList() {
	radius := t.dBKnee * math.Log(10) / 20
	n := len(t.segments)
	if n < 2 {
		return
	}

	for i := 1; i < n-1; i++ {
		segment := &t.segments[i]
		if segment.isStraightLine {
			continue
		}
		previous := &t.segments[i-1]
		next := &t.segments[i+1]
		originalNextStart := next.start

		length := previous.length()
		position := math.Max(0, length-radius)
		segment.start = previous.interpolate(position)
		previous.end = segment.start

		length = next.length()
		position = math.Min(radius, length/2)
		segment.end = next.interpolate(position)
		next.start = segment.end

		intermediate := segment.start.add(segment.end).add(originalNextStart).scale(1.0 / 3.0)
		segment.adaptCoefficients(intermediate)
	}
}

// Apply evaluates the transfer function at a linear input value.
func (t *TransferFunction) Apply(cValue float64) float64 {
	if cValue <= t.minimumLinearInValue {
		return t.minimumLinearOutValue
	}

	value := math.Min(cValue, 1)
	lnValue := math.Log(value)

	for i := range t.segments {
		segment := &t.segments[i]
		if segment.domainContains(lnValue) {
			x := lnValue - segment.start.x
			lnResult := segment.start.y + x*(segment.a2*x+segment.a1)
			return math.Exp(lnResult)
		}
	}
	return value
}

/*====================*/
/* envelope follower   */
/*====================*/

// companderEnvelope is the attack/release envelope follower and transfer
// function pair shared by every compander band.
type companderEnvelope struct {
	transferFunction   TransferFunction
	channelsAggregated bool
	attackTime         []float64
	releaseTime        []float64
	volume             []float64
}

func newCompanderEnvelope() *companderEnvelope {
	c := &companderEnvelope{channelsAggregated: true}
	c.SetLength(maximumCompanderChannelCount)
	return c
}

const maximumCompanderChannelCount = 10

// adaptEnvelopeTime converts a time constant in seconds into a per-sample
// integration factor: min(1, 1 - exp(-1/(sr*t))).
func adaptEnvelopeTime(t, sampleRate float64) float64 {
	return math.Min(1, 1-math.Exp(-1/(sampleRate*t)))
}

func (c *companderEnvelope) Adapt(sampleRate, attack, release, dBKnee, dBThreshold, ratio, dBGain float64) {
	c.transferFunction.Adapt(dBKnee, dBThreshold, ratio, dBGain)
	c.channelsAggregated = true
	for i := range c.volume {
		c.volume[i] = 1
	}
	attackFactor := adaptEnvelopeTime(attack, sampleRate)
	releaseFactor := adaptEnvelopeTime(release, sampleRate)
	for i := range c.attackTime {
		c.attackTime[i] = attackFactor
	}
	for i := range c.releaseTime {
		c.releaseTime[i] = releaseFactor
	}
}

func (c *companderEnvelope) SetLength(channelCount int) {
	c.volume = resizeFloatSlice(c.volume, channelCount)
	c.attackTime = resizeFloatSlice(c.attackTime, channelCount)
	c.releaseTime = resizeFloatSlice(c.releaseTime, channelCount)
}

func resizeFloatSlice(s []float64, n int) []float64 {
	if len(s) == n {
		return s
	}
	out := make([]float64, n)
	copy(out, s)
	return out
}

func (c *companderEnvelope) integrateVolume(channel int, inputVolume float64) {
	volume := c.volume[channel]
	delta := inputVolume - volume
	increment := c.releaseTime[channel]
	if delta > 0 {
		increment = c.attackTime[channel]
	}
	volume += delta * increment

	if c.channelsAggregated {
		for i := range c.volume {
			c.volume[i] = volume
		}
	} else {
		c.volume[channel] = volume
	}
}

// Apply integrates the envelope from input (max-abs across channels when
// aggregated) and writes transfer-function-scaled samples into output,
// optionally summing into whatever output already holds.
func (c *companderEnvelope) Apply(input, output []AudioSample, outputValuesAreSummed bool) {
	channelCount := len(input)

	if c.channelsAggregated {
		c.integrateVolume(0, maxAbs(input))
	} else {
		for channel := 0; channel < channelCount; channel++ {
			c.integrateVolume(channel, input[channel])
		}
	}

	for channel := 0; channel < channelCount; channel++ {
		currentVolume := c.volume[channel]
		amplification := c.transferFunction.Apply(currentVolume)
		outputSample := input[channel] * amplification
		if outputValuesAreSummed {
			outputSample += output[channel]
		}
		output[channel] = outputSample
	}
}

/*========================*/
/* band orchestration      */
/*========================*/

type companderStreamKind int

const (
	streamInput companderStreamKind = iota
	streamLowOutput
	streamHighOutput
	companderStreamKindCount
)

// companderBand wires one compander envelope to a crossover filter and a
// set of shared ring buffers, one triple (input, low, high) per channel.
type companderBand struct {
	channelCount    int
	envelope        *companderEnvelope
	crossover       *LRCrossoverFilter
	topFrequencyHz  float64
	buffers         [][companderStreamKindCount]*SampleRingBuffer
	inputSampleList []AudioSample
}

func newCompanderBand() *companderBand {
	return &companderBand{envelope: newCompanderEnvelope(), crossover: NewLRCrossoverFilter(), topFrequencyHz: math.Inf(1)}
}

func (b *companderBand) adapt(sampleRate, attack, release, dBKnee, dBThreshold, ratio, dBGain, topFrequency float64) {
	b.envelope.Adapt(sampleRate, attack, release, dBKnee, dBThreshold, ratio, dBGain)
	b.crossover.Adapt(topFrequency, sampleRate)
	b.topFrequencyHz = topFrequency
}

func (b *companderBand) setChannelCount(channelCount int) {
	b.channelCount = channelCount
	b.buffers = make([][companderStreamKindCount]*SampleRingBuffer, channelCount)
	b.envelope.SetLength(channelCount)
	b.inputSampleList = make([]AudioSample, channelCount)
}

func (b *companderBand) setBuffer(channel int, stream companderStreamKind, buf *SampleRingBuffer) {
	b.buffers[channel][stream] = buf
}

func (b *companderBand) calculateCrossover() {
	for _, entry := range b.buffers {
		b.crossover.Apply(entry[streamInput], entry[streamLowOutput], entry[streamHighOutput])
	}
}

func (b *companderBand) apply(output []AudioSample) {
	for channel := 0; channel < b.channelCount; channel++ {
		b.inputSampleList[channel] = b.buffers[channel][streamLowOutput].First()
	}
	b.envelope.Apply(b.inputSampleList, output, true)
}

/*========================*/
/* CompanderCore           */
/*========================*/

const lrFilterOrder = 5

// CompanderCore is the multiband orchestrator (§4.5): a chain of bands
// sharing ring buffers so band k's high-frequency residue feeds band
// k+1's input. Buffers are arranged per channel as a flat matrix of
// 2*allocatedBandCount+1 columns; band k owns columns 2k (input),
// 2k+1 (low output), 2k+2 (high output, shared with band k+1's input).
type CompanderCore struct {
	allocatedBandCount int
	bandCount          int
	channelCount       int
	bands              []*companderBand
	ringBuffers        [][]*SampleRingBuffer // [channel][slot]
}

// NewCompanderCore returns an empty core; call Resize before use.
func NewCompanderCore() *CompanderCore {
	return &CompanderCore{}
}

// SetCompanderBandData reconfigures band bandIndex. The top active band
// (bandIndex == effective band count - 1) has its crossover forced to
// Nyquist regardless of topFrequency, reproducing the source quirk where
// the stored frequency still round-trips through persistence (Open
// Question #2) but never actually gates that band.
func (c *CompanderCore) SetCompanderBandData(bandIndex int, sampleRate, attack, release, dBKnee, dBThreshold, ratio, dBGain, topFrequency float64) {
	if bandIndex < 0 || bandIndex >= len(c.bands) {
		panic(fmt.Sprintf("soxplugins: compander band index %d out of range", bandIndex))
	}
	effectiveTopFrequency := topFrequency
	if bandIndex == c.bandCount-1 {
		effectiveTopFrequency = sampleRate
	}
	c.bands[bandIndex].adapt(sampleRate, attack, release, dBKnee, dBThreshold, ratio, dBGain, effectiveTopFrequency)
	c.bands[bandIndex].topFrequencyHz = topFrequency
}

// TopFrequency returns the stored (not necessarily effective) top
// frequency for bandIndex, the value persistence round-trips.
func (c *CompanderCore) TopFrequency(bandIndex int) float64 {
	return c.bands[bandIndex].topFrequencyHz
}

// Resize allocates bandCount band records and a shared ring-buffer
// matrix of 2*bandCount+1 buffers per channel, each of length
// lrFilterOrder.
func (c *CompanderCore) Resize(bandCount, channelCount int) {
	c.allocatedBandCount = bandCount
	if c.bandCount > bandCount || c.bandCount == 0 {
		c.bandCount = bandCount
	}
	c.channelCount = channelCount

	c.bands = make([]*companderBand, bandCount)
	for i := range c.bands {
		c.bands[i] = newCompanderBand()
		c.bands[i].setChannelCount(channelCount)
	}

	bufferCountPerChannel := bandCount*2 + 1
	c.ringBuffers = make([][]*SampleRingBuffer, channelCount)
	for channel := 0; channel < channelCount; channel++ {
		c.ringBuffers[channel] = make([]*SampleRingBuffer, bufferCountPerChannel)
		for j := range c.ringBuffers[channel] {
			c.ringBuffers[channel][j] = NewSampleRingBuffer(lrFilterOrder)
		}

		i := 0
		for _, band := range c.bands {
			band.setBuffer(channel, streamInput, c.ringBuffers[channel][i])
			band.setBuffer(channel, streamLowOutput, c.ringBuffers[channel][i+1])
			band.setBuffer(channel, streamHighOutput, c.ringBuffers[channel][i+2])
			i += 2
		}
	}
}

// SetEffectiveSize sets the live band count (1 <= n <= allocated) without
// reallocating.
func (c *CompanderCore) SetEffectiveSize(bandCount int) {
	if bandCount < 1 {
		bandCount = 1
	}
	if bandCount > c.allocatedBandCount {
		bandCount = c.allocatedBandCount
	}
	c.bandCount = bandCount
}

// EffectiveSize returns the live band count.
func (c *CompanderCore) EffectiveSize() int {
	return c.bandCount
}

// Apply processes one sample across all channels: rotate every band's
// buffers, write the input sample, run every band's crossover, then
// every band's compander, summing into output; finally park the output
// sample in the diagnostic last column.
func (c *CompanderCore) Apply(input, output []AudioSample) {
	for i := range output {
		output[i] = 0
	}

	bufferCountPerChannel := c.bandCount*2 + 1

	for channel := 0; channel < c.channelCount; channel++ {
		for j := 0; j < bufferCountPerChannel; j++ {
			c.ringBuffers[channel][j].ShiftRight(0)
		}
		c.ringBuffers[channel][0].SetFirst(input[channel])
	}

	for bandIndex := 0; bandIndex < c.bandCount; bandIndex++ {
		c.bands[bandIndex].calculateCrossover()
	}
	for bandIndex := 0; bandIndex < c.bandCount; bandIndex++ {
		c.bands[bandIndex].apply(output)
	}

	for channel := 0; channel < c.channelCount; channel++ {
		c.ringBuffers[channel][bufferCountPerChannel-1].SetFirst(output[channel])
	}
}
