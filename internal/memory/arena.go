package memory

// Arena is an append-only, bulk-freed allocation region (spec.md §4.2
// item 1): "Used by input parsers: a parsed document... lives entirely
// in one arena with all its containers and strings; freed as one
// operation at arena end." Containers allocated this way set is_heap=0,
// so every ref-count operation on them in Heap is a no-op.
type Arena struct {
	allocs []Container
	freed  bool
}

func NewArena() *Arena {
	return &Arena{allocs: make([]Container, 0, 32)}
}

// Alloc registers c as arena-allocated (is_heap=0) and returns it.
func (a *Arena) Alloc(c Container) Container {
	if a.freed {
		panic("memory: alloc on a freed arena")
	}
	c.Head().IsHeap = false
	c.Head().RefCnt = 0
	a.allocs = append(a.allocs, c)
	return c
}

// Free releases the whole arena in one bulk operation (spec.md §4.2:
// "freed as one operation at arena end"). Individual containers are
// never independently freed; Go's GC reclaims them once the arena's
// slice reference is dropped here.
func (a *Arena) Free() {
	a.allocs = nil
	a.freed = true
}

// Len reports the number of live allocations, for diagnostics and tests.
func (a *Arena) Len() int { return len(a.allocs) }
