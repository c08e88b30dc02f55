package memory

import "github.com/lambda-lang/lambda/internal/item"

// ConcatLists implements list ++ list (spec.md §8 scenario 6): it builds
// a single new backing buffer holding both operands' items and marks the
// result Inline, matching "arrays whose items buffer equals container+1
// (single-block allocation) must not be separately freed" (§3.2, §4.2).
// Release (heap.go) only ever frees the List struct as one unit, so the
// Inline flag here documents the invariant rather than gating a second
// free path — there is no separate buffer-free call to skip in this Go
// port, which is exactly what makes the double-free class of bug
// unreachable by construction.
func ConcatLists(heap *Heap, a, b *List) *List {
	items := make([]item.Item, 0, len(a.Items)+len(b.Items))
	items = append(items, a.Items...)
	items = append(items, b.Items...)
	result := &List{Items: items}
	result.Hdr.Inline = true
	heap.Track(result)
	heap.Retain(result)
	return result
}
