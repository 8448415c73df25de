package paging

import (
	"math/rand/v2"
)

// RandomReplacer evicts a uniformly chosen frame
type RandomReplacer struct {
	rng         *rand.Rand
	totalFrames uint32
}

// NewRandomReplacer creates a random replacer drawing from rng
func NewRandomReplacer(totalFrames uint32, rng *rand.Rand) *RandomReplacer {
	return &RandomReplacer{
		rng:         rng,
		totalFrames: totalFrames,
	}
}

// Victim draws a frame index in [0, totalFrames)
func (r *RandomReplacer) Victim(_ *FrameTable) uint32 {
	return r.rng.Uint32N(r.totalFrames)
}

// Name returns the algorithm name
func (r *RandomReplacer) Name() string {
	return AlgorithmRandom
}
