//go:build !headless

// audio_backend_oto.go - real audio output via ebitengine/oto v3

package main

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer drives an oto.Player whose io.Reader pulls samples from
// whichever EffectHost is currently installed. The host pointer is
// swapped atomically so Read, which oto calls from its own mixing
// goroutine, never blocks on the control-path mutex used by
// Start/Stop/Close.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	host   atomic.Pointer[EffectHost]
	scratch []float32

	mutex   sync.Mutex
	started bool
}

// NewOtoPlayer opens a mono, 32-bit-float oto context at sampleRate.
func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &OtoPlayer{ctx: ctx}, nil
}

// SetupPlayer wires host as this player's sample source and creates the
// underlying oto.Player, which begins calling Read once Start is called.
func (op *OtoPlayer) SetupPlayer(host *EffectHost) {
	op.mutex.Lock()
	defer op.mutex.Unlock()

	op.host.Store(host)
	op.player = op.ctx.NewPlayer(op)
	op.scratch = make([]float32, 4096)
}

// Read implements io.Reader for oto: it fills p with little-endian
// float32 samples drawn from the installed EffectHost. With no host
// installed it emits silence rather than blocking.
func (op *OtoPlayer) Read(p []byte) (n int, err error) {
	host := op.host.Load()
	if host == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}

	sampleCount := len(p) / 4
	if cap(op.scratch) < sampleCount {
		op.scratch = make([]float32, sampleCount)
	}
	samples := op.scratch[:sampleCount]
	host.ReadSamples(samples)

	for i, sample := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sample))
	}
	return len(p), nil
}

func (op *OtoPlayer) Start() {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if !op.started && op.player != nil {
		op.player.Play()
		op.started = true
	}
}

func (op *OtoPlayer) Stop() {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.started && op.player != nil {
		op.player.Close()
		op.started = false
	}
}

func (op *OtoPlayer) Close() {
	op.Stop()
	op.mutex.Lock()
	defer op.mutex.Unlock()
	if op.player != nil {
		op.player.Close()
		op.player = nil
	}
}

func (op *OtoPlayer) IsStarted() bool {
	op.mutex.Lock()
	defer op.mutex.Unlock()
	return op.started
}
