package memory

import "github.com/lambda-lang/lambda/internal/item"

// Heap implements individual allocation plus reference counting (spec.md
// §4.2 item 2): "heap_calloc(size, type) sets is_heap = 1, initializes
// ref_cnt = 0, and links into the heap's tracking list for leak
// detection."
type Heap struct {
	live map[Container]struct{}

	// Resolver looks a child Item back up to its Container so Release's
	// recursive free can walk grandchildren (spec.md §4.2 free_container:
	// "free at zero, recursively freeing children"). Heap itself has no
	// notion of a container registry — the owning runtime.Context wires
	// this to its shared registry at construction. Nil-safe: a Heap used
	// standalone (e.g. in tests) simply skips recursive child release.
	Resolver func(item.Item) (Container, bool)
}

func NewHeap() *Heap {
	return &Heap{live: make(map[Container]struct{})}
}

// Track registers c as heap-allocated: is_heap=1, ref_cnt=0, added to the
// leak-detection tracking list.
func (h *Heap) Track(c Container) {
	hdr := c.Head()
	hdr.IsHeap = true
	hdr.RefCnt = 0
	h.live[c] = struct{}{}
}

// Retain increments a heap container's ref count. A no-op on arena
// containers (is_heap=0), per spec.md §4.2.
func (h *Heap) Retain(c Container) {
	if c == nil || !c.Head().IsHeap {
		return
	}
	c.Head().RefCnt++
}

// Release decrements a heap container's ref count, freeing it and
// recursively releasing its children when the count reaches zero
// (spec.md §4.2 free_container: "decrement ref_cnt; free at zero,
// recursively freeing children"). A no-op on arena containers.
func (h *Heap) Release(c Container) {
	if c == nil {
		return
	}
	hdr := c.Head()
	if !hdr.IsHeap {
		return
	}
	hdr.RefCnt--
	if hdr.RefCnt > 0 {
		return
	}
	if h.Resolver != nil {
		for _, child := range c.Children() {
			if child.Tag().IsContainer() {
				if cc, ok := h.Resolver(child); ok {
					h.Release(cc)
				}
			}
		}
	}
	delete(h.live, c)
}

// LiveCount reports the number of currently tracked (unreleased) heap
// containers — used by tests asserting no leaks after a frame ends.
func (h *Heap) LiveCount() int { return len(h.live) }

// FreeItem inspects it's tag: a no-op for primitives, otherwise it calls
// Release on c (spec.md §4.2 free_item).
func (h *Heap) FreeItem(it item.Item, c Container) {
	if !it.Tag().IsContainer() {
		return
	}
	h.Release(c)
}
