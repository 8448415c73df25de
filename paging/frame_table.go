package paging

// MaxFrames bounds the frame table size (16384KB of memory in 2KB pages)
const MaxFrames = 8192

// Frame is one slot of simulated physical memory
type Frame struct {
	occupied   bool
	dirty      bool
	pageNumber uint32
	recency    uint64 // logical time of the last load or hit
	loadedAt   uint64 // logical time of the last load
}

// IsOccupied returns whether the frame holds a page
func (f Frame) IsOccupied() bool {
	return f.occupied
}

// IsDirty returns whether the resident page was written since it was loaded
func (f Frame) IsDirty() bool {
	return f.dirty
}

// PageNumber returns the resident page. Only meaningful if occupied.
func (f Frame) PageNumber() uint32 {
	return f.pageNumber
}

// Recency returns the logical time of the last access to this frame
func (f Frame) Recency() uint64 {
	return f.recency
}

// LoadedAt returns the logical time the resident page was loaded
func (f Frame) LoadedAt() uint64 {
	return f.loadedAt
}

// FrameTable is a fixed-capacity array of frames.
// Lookups are linear scans in index order; the table never exceeds
// MaxFrames, and scan order decides ties.
type FrameTable struct {
	frames   []Frame
	occupied uint32
}

// NewFrameTable allocates a frame table with all frames empty
func NewFrameTable(totalFrames uint32) (*FrameTable, error) {
	if totalFrames == 0 || totalFrames > MaxFrames {
		return nil, ErrAllocation("NewFrameTable", totalFrames)
	}
	return &FrameTable{
		frames: make([]Frame, totalFrames),
	}, nil
}

// Size returns the number of frames
func (ft *FrameTable) Size() uint32 {
	return uint32(len(ft.frames))
}

// Occupied returns the number of frames holding a page
func (ft *FrameTable) Occupied() uint32 {
	return ft.occupied
}

// IsFull reports whether every frame holds a page
func (ft *FrameTable) IsFull() bool {
	return ft.occupied == uint32(len(ft.frames))
}

// Frame returns a copy of the frame at idx
func (ft *FrameTable) Frame(idx uint32) Frame {
	return ft.frames[idx]
}

// Lookup returns the first occupied frame holding pageNumber
func (ft *FrameTable) Lookup(pageNumber uint32) (uint32, bool) {
	for i := range ft.frames {
		if ft.frames[i].occupied && ft.frames[i].pageNumber == pageNumber {
			return uint32(i), true
		}
	}
	return 0, false
}

// FindFree returns the first unoccupied frame
func (ft *FrameTable) FindFree() (uint32, bool) {
	if ft.IsFull() {
		return 0, false
	}
	for i := range ft.frames {
		if !ft.frames[i].occupied {
			return uint32(i), true
		}
	}
	return 0, false
}

// Load places pageNumber in frame idx, replacing whatever it held
func (ft *FrameTable) Load(idx, pageNumber uint32, dirty bool, clock uint64) {
	f := &ft.frames[idx]
	if !f.occupied {
		ft.occupied++
	}
	f.occupied = true
	f.pageNumber = pageNumber
	f.dirty = dirty
	f.recency = clock
	f.loadedAt = clock
}

// Touch records a hit on frame idx. A write marks the frame dirty;
// a read never clears it.
func (ft *FrameTable) Touch(idx uint32, write bool, clock uint64) {
	f := &ft.frames[idx]
	f.recency = clock
	if write {
		f.dirty = true
	}
}
