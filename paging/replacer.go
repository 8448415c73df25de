package paging

import (
	"math/rand/v2"
)

// Supported replacement algorithms
const (
	AlgorithmFIFO   = "fifo"
	AlgorithmLRU    = "lru"
	AlgorithmRandom = "random"
)

// Algorithms lists the replacement algorithms in report order
var Algorithms = []string{AlgorithmFIFO, AlgorithmLRU, AlgorithmRandom}

// Replacer interface for page replacement policies
type Replacer interface {
	// Victim selects the frame to evict from a full frame table
	Victim(ft *FrameTable) uint32

	// Name returns the algorithm name
	Name() string
}

// ParseAlgorithm validates an algorithm name. Names are case-sensitive.
func ParseAlgorithm(name string) (string, error) {
	switch name {
	case AlgorithmFIFO, AlgorithmLRU, AlgorithmRandom:
		return name, nil
	default:
		return "", ErrInvalidAlgorithm("ParseAlgorithm", name)
	}
}

// NewReplacer creates a replacer based on the specified algorithm.
// rng is only used by the random policy and may be nil otherwise.
func NewReplacer(algorithm string, totalFrames uint32, rng *rand.Rand) (Replacer, error) {
	switch algorithm {
	case AlgorithmFIFO:
		return NewFIFOReplacer(totalFrames), nil
	case AlgorithmLRU:
		return NewLRUReplacer(), nil
	case AlgorithmRandom:
		if rng == nil {
			return nil, ErrInvalidConfig("NewReplacer", "random policy requires a random source")
		}
		return NewRandomReplacer(totalFrames, rng), nil
	default:
		return nil, ErrInvalidAlgorithm("NewReplacer", algorithm)
	}
}

// NewSeededRand returns a PCG-backed source for the random policy
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
