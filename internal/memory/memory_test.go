package memory

import (
	"testing"

	"github.com/lambda-lang/lambda/internal/item"
)

func TestNumberStackBoxUnboxRoundTrip(t *testing.T) {
	ns := NewNumberStack()

	i := ns.BoxInt64(9_999_999_999)
	if got := ns.UnboxInt64(i); got != 9_999_999_999 {
		t.Errorf("UnboxInt64 = %d, want 9999999999", got)
	}

	f := ns.BoxFloat(3.5)
	if got := ns.UnboxFloat(f); got != 3.5 {
		t.Errorf("UnboxFloat = %v, want 3.5", got)
	}
}

func TestNumberStackSurvivesGrowth(t *testing.T) {
	ns := NewNumberStack()
	first := ns.BoxInt64(1)
	for n := 0; n < 1000; n++ {
		ns.BoxInt64(int64(n))
	}
	if got := ns.UnboxInt64(first); got != 1 {
		t.Errorf("payload invalidated by growth: UnboxInt64(first) = %d, want 1", got)
	}
}

func TestArenaContainersAreNoOpOnRelease(t *testing.T) {
	arena := NewArena()
	heap := NewHeap()

	l := arena.Alloc(&List{Items: []item.Item{item.MakeInt(1)}}).(*List)
	if l.Hdr.IsHeap {
		t.Fatalf("arena-allocated container has IsHeap=true")
	}

	heap.Retain(l)
	if l.Hdr.RefCnt != 0 {
		t.Errorf("Retain on arena container mutated RefCnt: got %d, want 0", l.Hdr.RefCnt)
	}
	heap.Release(l)
	if l.Hdr.RefCnt != 0 {
		t.Errorf("Release on arena container mutated RefCnt: got %d, want 0", l.Hdr.RefCnt)
	}
}

func TestHeapRefCountFreesAtZero(t *testing.T) {
	heap := NewHeap()
	l := &List{Items: []item.Item{item.MakeInt(1), item.MakeInt(2)}}
	heap.Track(l)
	heap.Retain(l)

	if heap.LiveCount() != 1 {
		t.Fatalf("LiveCount = %d, want 1", heap.LiveCount())
	}

	heap.Release(l)
	if heap.LiveCount() != 0 {
		t.Errorf("LiveCount after release = %d, want 0 (freed at zero refcount)", heap.LiveCount())
	}
}

func TestConcatListsProducesInlineResult(t *testing.T) {
	heap := NewHeap()
	a := &List{Items: []item.Item{item.MakeInt(1), item.MakeInt(2), item.MakeInt(3)}}
	b := &List{Items: []item.Item{item.MakeInt(4), item.MakeInt(5), item.MakeInt(6)}}

	result := ConcatLists(heap, a, b)
	if !result.Hdr.Inline {
		t.Errorf("ConcatLists result is not marked Inline")
	}
	if len(result.Items) != 6 {
		t.Errorf("ConcatLists result has %d items, want 6", len(result.Items))
	}
	if heap.LiveCount() != 1 {
		t.Errorf("LiveCount = %d, want 1", heap.LiveCount())
	}

	heap.Release(result)
	if heap.LiveCount() != 0 {
		t.Errorf("LiveCount after release = %d, want 0 (no double free on inline buffer)", heap.LiveCount())
	}
}

func TestFrameEndReleasesTrackedAllocations(t *testing.T) {
	heap := NewHeap()
	frame := NewFrame(heap)

	l := &List{Items: []item.Item{item.MakeInt(1)}}
	heap.Track(l)
	heap.Retain(l)
	frame.Track(l)

	if heap.LiveCount() != 1 {
		t.Fatalf("LiveCount before frame end = %d, want 1", heap.LiveCount())
	}
	frame.End()
	if heap.LiveCount() != 0 {
		t.Errorf("LiveCount after frame end = %d, want 0", heap.LiveCount())
	}
}
