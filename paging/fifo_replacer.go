package paging

// FIFOReplacer evicts frames in the order they were filled.
// The pointer advances once per eviction and is never moved by hits,
// so a page's place in line is fixed when it is loaded.
type FIFOReplacer struct {
	pointer     uint32
	totalFrames uint32
}

// NewFIFOReplacer creates a FIFO replacer over totalFrames slots
func NewFIFOReplacer(totalFrames uint32) *FIFOReplacer {
	return &FIFOReplacer{
		totalFrames: totalFrames,
	}
}

// Victim returns the frame under the pointer and advances it circularly
func (r *FIFOReplacer) Victim(_ *FrameTable) uint32 {
	victim := r.pointer
	r.pointer = (r.pointer + 1) % r.totalFrames
	return victim
}

// Pointer returns the next frame to be evicted
func (r *FIFOReplacer) Pointer() uint32 {
	return r.pointer
}

// Name returns the algorithm name
func (r *FIFOReplacer) Name() string {
	return AlgorithmFIFO
}
