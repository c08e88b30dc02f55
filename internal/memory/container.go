package memory

import (
	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/typesystem"
)

// Header is the fixed layout shared by every container (spec.md §3.2:
// "All containers share a fixed header { type_id, flags, ref_cnt,
// is_heap bit }"). Go's GC reclaims the underlying struct regardless, but
// the Heap/Arena discipline below still enforces the spec's retain/
// release contract so cross-module sharing and leak-detection semantics
// match the original runtime (§9 design note: "model containers as
// handles into a typed arena + a heap with explicit retain/release").
type Header struct {
	TypeID int
	Flags  uint32
	RefCnt int32
	IsHeap bool

	// Inline reports whether this container's payload buffer was
	// allocated as a single block together with the header (spec.md
	// §3.2/§4.2 "inline buffer rule"): such a buffer must never be
	// freed independently of the header.
	Inline bool
}

// Container is the common interface every §3.2 variant implements.
type Container interface {
	Head() *Header
	Tag() item.Tag
	// Children returns the child Items that participate in refcount
	// propagation (spec.md §3.2: "Items inside a container that are
	// themselves containers participate in refcount propagation").
	Children() []item.Item
}

// List is the LIST container: a dynamic Item buffer.
type List struct {
	Hdr   Header
	Items []item.Item
}

func (l *List) Head() *Header         { return &l.Hdr }
func (l *List) Tag() item.Tag         { return item.List }
func (l *List) Children() []item.Item { return l.Items }

// Array is the typed LIST variant; its element shape is resolved through
// the active type registry (spec.md §3.2, §4.4.2).
type Array struct {
	Hdr       Header
	TypeIndex int
	Items     []item.Item
}

func (a *Array) Head() *Header        { return &a.Hdr }
func (a *Array) Tag() item.Tag         { return item.Array }
func (a *Array) Children() []item.Item { return a.Items }

// ArrayInt/ArrayInt64/ArrayFloat hold unboxed packed primitives and carry
// no children for refcounting purposes.
type ArrayInt struct {
	Hdr   Header
	Items []int32
}

func (a *ArrayInt) Head() *Header        { return &a.Hdr }
func (a *ArrayInt) Tag() item.Tag         { return item.ArrayInt }
func (a *ArrayInt) Children() []item.Item { return nil }

type ArrayInt64 struct {
	Hdr   Header
	Items []int64
}

func (a *ArrayInt64) Head() *Header        { return &a.Hdr }
func (a *ArrayInt64) Tag() item.Tag         { return item.ArrayInt64 }
func (a *ArrayInt64) Children() []item.Item { return nil }

type ArrayFloat struct {
	Hdr   Header
	Items []float64
}

func (a *ArrayFloat) Head() *Header        { return &a.Hdr }
func (a *ArrayFloat) Tag() item.Tag         { return item.ArrayFloat }
func (a *ArrayFloat) Children() []item.Item { return nil }

// Map is the MAP container: an ordered key->Item mapping with a shape
// reference into the type registry's TypeMap (spec.md §3.2).
// TypeMapIndex is only meaningful together with Registry: it is a
// module-local index, resolved against whichever TypeList was active at
// construction time (spec.md §4.4.2) — never against some other module's
// list.
type Map struct {
	Hdr          Header
	TypeMapIndex int
	Registry     *typesystem.TypeList
	Keys         []string
	Values       []item.Item
}

// Shape resolves this map's recorded type against the TypeList that was
// active when it was built.
func (m *Map) Shape() (typesystem.Type, bool) {
	if m.Registry == nil {
		return nil, false
	}
	return m.Registry.At(m.TypeMapIndex)
}

func (m *Map) Head() *Header         { return &m.Hdr }
func (m *Map) Tag() item.Tag         { return item.Map }
func (m *Map) Children() []item.Item { return m.Values }

func (m *Map) Get(key string) (item.Item, bool) {
	for i, k := range m.Keys {
		if k == key {
			return m.Values[i], true
		}
	}
	return item.UndefinedItem, false
}

func (m *Map) Set(key string, v item.Item) {
	for i, k := range m.Keys {
		if k == key {
			m.Values[i] = v
			return
		}
	}
	m.Keys = append(m.Keys, key)
	m.Values = append(m.Values, v)
}

// Element is MAP + ordered child list + tag name — a document-tree node
// (spec.md §3.2).
type Element struct {
	Hdr       Header
	TagName   string
	Attrs     *Map
	ChildList []item.Item
}

func (e *Element) Head() *Header { return &e.Hdr }
func (e *Element) Tag() item.Tag { return item.Element }
func (e *Element) Children() []item.Item {
	out := make([]item.Item, len(e.ChildList))
	copy(out, e.ChildList)
	return out
}

// Range is a lazy integer sequence: start, end, length (spec.md §3.2).
type Range struct {
	Hdr                Header
	Start, End, Length int64
}

func (r *Range) Head() *Header        { return &r.Hdr }
func (r *Range) Tag() item.Tag         { return item.Range }
func (r *Range) Children() []item.Item { return nil }

// ByteBlock is the shared representation for STRING/SYMBOL/BINARY: a
// length-prefixed, ref-counted byte block with inline character storage
// (spec.md §3.1).
type ByteBlock struct {
	Hdr  Header
	tag  item.Tag
	Data []byte
}

func (b *ByteBlock) Head() *Header        { return &b.Hdr }
func (b *ByteBlock) Tag() item.Tag         { return b.tag }
func (b *ByteBlock) Children() []item.Item { return nil }

// NewByteBlock constructs a ByteBlock carrying the given byte-class tag
// (STRING/SYMBOL/BINARY) — a constructor is required since tag is
// unexported (it must never be changed after construction: spec.md §3.1
// fixes one tag per byte-block instance).
func NewByteBlock(tag item.Tag, data []byte) *ByteBlock {
	return &ByteBlock{tag: tag, Data: data}
}
