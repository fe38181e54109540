// ringbuffer.go - fixed-capacity circular sample queue

package soxplugins

import "fmt"

// SampleRingBuffer is a fixed-capacity circular queue of AudioSamples with
// O(1) shift and first/last access. The logical-to-physical mapping is
// physical = (first + logical) mod capacity; capacity never changes after
// construction, only the active length does.
type SampleRingBuffer struct {
	data     []AudioSample
	length   int
	firstIdx int
}

// NewSampleRingBuffer allocates a buffer with the given capacity, fully
// zeroed and at full length.
func NewSampleRingBuffer(capacity int) *SampleRingBuffer {
	b := &SampleRingBuffer{data: make([]AudioSample, capacity)}
	b.length = capacity
	return b
}

// Cap returns the buffer's fixed capacity.
func (b *SampleRingBuffer) Cap() int {
	return len(b.data)
}

// Len returns the active length (0 <= Len() <= Cap()).
func (b *SampleRingBuffer) Len() int {
	return b.length
}

// SetLength resizes the active region to n <= Cap(), zero-filling any
// region that grows.
func (b *SampleRingBuffer) SetLength(n int) {
	if n < 0 || n > len(b.data) {
		panic(fmt.Sprintf("soxplugins: ring buffer length %d out of capacity %d", n, len(b.data)))
	}
	if n > b.length {
		for i := b.length; i < n; i++ {
			b.setPhysical(i, 0)
		}
	}
	b.length = n
}

// Zero fills the entire active region with silence.
func (b *SampleRingBuffer) Zero() {
	for i := 0; i < b.length; i++ {
		b.setPhysical(i, 0)
	}
}

func (b *SampleRingBuffer) physicalIndex(logical int) int {
	if len(b.data) == 0 {
		panic("soxplugins: ring buffer has zero capacity")
	}
	return (b.firstIdx + logical) % len(b.data)
}

func (b *SampleRingBuffer) setPhysical(logical int, v AudioSample) {
	b.data[b.physicalIndex(logical)] = v
}

func (b *SampleRingBuffer) checkBounds(i int) {
	if i < 0 || i >= b.length {
		panic(fmt.Sprintf("soxplugins: ring buffer index %d out of bounds (length %d)", i, b.length))
	}
}

// At returns the sample at logical index i.
func (b *SampleRingBuffer) At(i int) AudioSample {
	b.checkBounds(i)
	return b.data[b.physicalIndex(i)]
}

// Set writes the sample at logical index i.
func (b *SampleRingBuffer) Set(i int, s AudioSample) {
	b.checkBounds(i)
	b.setPhysical(i, s)
}

// First returns the oldest sample in the buffer.
func (b *SampleRingBuffer) First() AudioSample {
	return b.At(0)
}

// Last returns the newest sample in the buffer.
func (b *SampleRingBuffer) Last() AudioSample {
	return b.At(b.length - 1)
}

// SetFirst overwrites the oldest sample in place.
func (b *SampleRingBuffer) SetFirst(s AudioSample) {
	b.Set(0, s)
}

// SetLast overwrites the newest sample in place.
func (b *SampleRingBuffer) SetLast(s AudioSample) {
	b.Set(b.length-1, s)
}

// ShiftLeft discards the oldest sample, appends x as the new last sample,
// and keeps length constant. O(1): only the first-index cursor moves.
func (b *SampleRingBuffer) ShiftLeft(x AudioSample) {
	if b.length == 0 {
		return
	}
	b.firstIdx = (b.firstIdx + 1) % len(b.data)
	b.setPhysical(b.length-1, x)
}

// ShiftRight is the symmetric operation: discards the newest sample,
// prepends x as the new first sample.
func (b *SampleRingBuffer) ShiftRight(x AudioSample) {
	if b.length == 0 {
		return
	}
	b.firstIdx = (b.firstIdx - 1 + len(b.data)) % len(b.data)
	b.setPhysical(0, x)
}

// ToArray copies the active region, in logical order, into out. out must
// have length >= Len().
func (b *SampleRingBuffer) ToArray(out []AudioSample) {
	for i := 0; i < b.length; i++ {
		out[i] = b.At(i)
	}
}
