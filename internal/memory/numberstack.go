// Package memory implements Lambda's dual allocation model (spec.md §4.2):
// an append-only number stack for boxed scalars, bulk-freed arenas for
// parsed input, and a ref-counted heap for computed containers.
// Grounded on the teacher's append-only Chunk.Constants growth pattern
// (internal/vm/chunk.go AddConstant) — the same "append, return index"
// shape, generalized to boxed scalar storage.
package memory

import (
	"github.com/lambda-lang/lambda/internal/item"
)

// boxedSlot holds one boxed scalar's storage. Only one field is live,
// selected by the owning Item's tag.
type boxedSlot struct {
	i64 int64
	f64 float64
	dec string // decimal textual form, arbitrary precision via math/big at the call site
	dt  int64  // datetime, unix nanos
}

// NumberStack is the append-only arena backing boxed INT64/FLOAT/DECIMAL/
// DATETIME Items (spec.md §3.1, §4.5). An Item's payload is the slot
// INDEX into this stack, never a raw pointer — so growth/reallocation of
// the backing slice can never invalidate an outstanding Item, resolving
// the hazard spec.md §4.5 calls out ("payload pointers are invalidated
// if the number stack reallocates") by construction.
type NumberStack struct {
	slots []boxedSlot
}

// NewNumberStack returns an empty number stack with a small initial
// capacity, mirroring the teacher's NewChunk preallocation style.
func NewNumberStack() *NumberStack {
	return &NumberStack{slots: make([]boxedSlot, 0, 64)}
}

func (ns *NumberStack) push(s boxedSlot) uint64 {
	ns.slots = append(ns.slots, s)
	return uint64(len(ns.slots) - 1)
}

// BoxInt64 pushes v and returns the boxed INT64 Item.
func (ns *NumberStack) BoxInt64(v int64) item.Item {
	idx := ns.push(boxedSlot{i64: v})
	return item.Make(item.Int64, idx)
}

// BoxFloat pushes v and returns the boxed FLOAT Item.
func (ns *NumberStack) BoxFloat(v float64) item.Item {
	idx := ns.push(boxedSlot{f64: v})
	return item.Make(item.Float, idx)
}

// BoxDecimal pushes the arbitrary-precision textual value v (as produced
// by the runtime's decimal arithmetic context) and returns the boxed
// DECIMAL Item.
func (ns *NumberStack) BoxDecimal(v string) item.Item {
	idx := ns.push(boxedSlot{dec: v})
	return item.Make(item.Decimal, idx)
}

// BoxDatetime pushes v (unix nanoseconds) and returns the boxed DATETIME
// Item.
func (ns *NumberStack) BoxDatetime(v int64) item.Item {
	idx := ns.push(boxedSlot{dt: v})
	return item.Make(item.Datetime, idx)
}

// UnboxInt64 reads the storage behind a boxed INT64 Item.
func (ns *NumberStack) UnboxInt64(it item.Item) int64 {
	return ns.slots[it.Payload()].i64
}

// UnboxFloat reads the storage behind a boxed FLOAT Item.
func (ns *NumberStack) UnboxFloat(it item.Item) float64 {
	return ns.slots[it.Payload()].f64
}

// UnboxDecimal reads the textual decimal value behind a boxed DECIMAL Item.
func (ns *NumberStack) UnboxDecimal(it item.Item) string {
	return ns.slots[it.Payload()].dec
}

// UnboxDatetime reads the unix-nanosecond value behind a boxed DATETIME Item.
func (ns *NumberStack) UnboxDatetime(it item.Item) int64 {
	return ns.slots[it.Payload()].dt
}

// Len reports the current number of boxed slots, mainly for diagnostics
// and tests.
func (ns *NumberStack) Len() int { return len(ns.slots) }
