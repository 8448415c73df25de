package paging

import "math"

// LRUReplacer implements LRU (Least Recently Used) replacement policy.
// It keeps no state of its own: recency lives in the frames and the
// victim is found by scanning them.
type LRUReplacer struct{}

// NewLRUReplacer creates a new LRU replacer
func NewLRUReplacer() *LRUReplacer {
	return &LRUReplacer{}
}

// Victim returns the frame with the smallest recency.
// Ties go to the lowest index: only a strictly smaller value replaces the
// current candidate.
func (r *LRUReplacer) Victim(ft *FrameTable) uint32 {
	var victim uint32
	minRecency := uint64(math.MaxUint64)

	for i := range ft.frames {
		if ft.frames[i].recency < minRecency {
			minRecency = ft.frames[i].recency
			victim = uint32(i)
		}
	}

	return victim
}

// Name returns the algorithm name
func (r *LRUReplacer) Name() string {
	return AlgorithmLRU
}
