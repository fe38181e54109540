// bench.go - concurrent multi-instance soak test

package main

import (
	"golang.org/x/sync/errgroup"
)

const (
	benchInstanceCount = 8
	benchSampleCount   = 44100 * 10 // 10 seconds per instance
)

type soakResult struct {
	instanceCount int
	sampleCount   int
}

// soakBenchmark runs benchInstanceCount independent effect instances
// concurrently, each processing benchSampleCount samples, grounded on
// the teacher's coprocessor-worker fan-out (one goroutine per
// independent unit of work, synchronized by errgroup.Wait) generalized
// from CPU cores to independent effect instances.
func soakBenchmark(effectName string, sampleRate float64) (soakResult, error) {
	var g errgroup.Group

	for i := 0; i < benchInstanceCount; i++ {
		g.Go(func() error {
			effect := newEffectByName(effectName)
			host := NewEffectHost(effect, sampleRate)
			buf := make([]float32, 1024)
			remaining := benchSampleCount
			for remaining > 0 {
				n := len(buf)
				if n > remaining {
					n = remaining
				}
				host.ReadSamples(buf[:n])
				remaining -= n
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return soakResult{}, err
	}
	return soakResult{instanceCount: benchInstanceCount, sampleCount: benchSampleCount}, nil
}
