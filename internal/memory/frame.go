package memory

// Frame brackets a compiled function body's allocations (spec.md §4.2
// "Frame discipline"): opened at entry, accumulating the containers the
// body allocates; FrameEnd releases them. Arena-allocated values passing
// through a frame are transparent to this release — Heap.Release already
// no-ops on is_heap=0 containers, satisfying the spec's "is_heap check on
// every free path" requirement without a separate code path here.
type Frame struct {
	heap   *Heap
	allocs []Container
}

// NewFrame opens a frame against heap.
func NewFrame(heap *Heap) *Frame {
	return &Frame{heap: heap}
}

// Track records c as allocated within this frame.
func (f *Frame) Track(c Container) {
	f.allocs = append(f.allocs, c)
}

// End releases every container this frame tracked (frame_end in
// spec.md §4.2).
func (f *Frame) End() {
	for _, c := range f.allocs {
		f.heap.Release(c)
	}
	f.allocs = nil
}
