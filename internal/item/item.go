// Package item implements Lambda's universal runtime value: a tagged
// 64-bit Item. The high byte carries a type tag; the low 56 bits carry
// either an immediate value or a tagged pointer into the heap/number
// stack. Grounded on the teacher's evaluator.Object tag enumeration
// (internal/evaluator/object.go) — reimplemented as a packed scalar
// rather than an interface, per spec.md §3.1/§4.1.
package item

// Tag identifies an Item's type class. Ordinal order is stable and part
// of the encoding: Tag values at or above List are heap-allocated
// containers (spec.md §3.1 invariant).
type Tag byte

const (
	RawPointer Tag = iota
	Null
	Undefined
	Bool
	Int
	Int64
	Float
	Decimal
	Number // abstract; never produced directly, used by type-registry lookups
	Datetime
	Symbol
	String
	Binary

	List
	Range
	ArrayInt
	ArrayInt64
	ArrayFloat
	Array
	Map
	Element

	Type
	Func
	Any
	Error
)

func (t Tag) String() string {
	switch t {
	case RawPointer:
		return "RAW_POINTER"
	case Null:
		return "NULL"
	case Undefined:
		return "UNDEFINED"
	case Bool:
		return "BOOL"
	case Int:
		return "INT"
	case Int64:
		return "INT64"
	case Float:
		return "FLOAT"
	case Decimal:
		return "DECIMAL"
	case Number:
		return "NUMBER"
	case Datetime:
		return "DATETIME"
	case Symbol:
		return "SYMBOL"
	case String:
		return "STRING"
	case Binary:
		return "BINARY"
	case List:
		return "LIST"
	case Range:
		return "RANGE"
	case ArrayInt:
		return "ARRAY_INT"
	case ArrayInt64:
		return "ARRAY_INT64"
	case ArrayFloat:
		return "ARRAY_FLOAT"
	case Array:
		return "ARRAY"
	case Map:
		return "MAP"
	case Element:
		return "ELEMENT"
	case Type:
		return "TYPE"
	case Func:
		return "FUNC"
	case Any:
		return "ANY"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// IsContainer reports whether tags of this class denote heap- or
// arena-allocated containers (spec.md §3.1: "Tags ≥ LIST denote
// heap-allocated containers").
func (t Tag) IsContainer() bool { return t >= List }

const (
	payloadBits = 56
	payloadMask = uint64(1)<<payloadBits - 1
	tagShift    = payloadBits
)

// Item is the universal 64-bit tagged value.
type Item uint64

// Make packs a tag and a 56-bit payload into an Item. The caller is
// responsible for ensuring payload fits in 56 bits; callers within this
// module always go through box/pointer helpers that uphold this.
func Make(t Tag, payload uint64) Item {
	return Item(uint64(t)<<tagShift | (payload & payloadMask))
}

// Tag returns the top-byte type tag of an Item.
func (it Item) Tag() Tag { return Tag(uint64(it) >> tagShift) }

// Payload returns the low 56 bits: an immediate value, or a pointer
// index into the heap/number stack for boxed and container Items.
func (it Item) Payload() uint64 { return uint64(it) & payloadMask }

// Pure immediate constructors — the payload IS the value, per spec.md §3.1.
var (
	NullItem      = Make(Null, 0)
	UndefinedItem = Make(Undefined, 0)
	ErrorItem     = Make(Error, 0)
)

// MakeBool returns the BOOL Item for v.
func MakeBool(v bool) Item {
	if v {
		return Make(Bool, 1)
	}
	return Make(Bool, 0)
}

// MakeInt returns the immediate 32-bit INT Item. Callers that may
// overflow 32 bits must use the overflow-checked arithmetic in the
// runtime package, which promotes to Decimal instead of calling this
// directly with an out-of-range value.
func MakeInt(v int32) Item {
	return Make(Int, uint64(uint32(v)))
}

// IsBool reports whether it is the BOOL tag.
func (it Item) IsBool() bool { return it.Tag() == Bool }

// BoolValue reads the payload of a BOOL Item as a Go bool.
func (it Item) BoolValue() bool { return it.Payload() != 0 }

// IntValue reads the payload of an INT Item as a Go int32.
func (it Item) IntValue() int32 { return int32(uint32(it.Payload())) }

// Truthy implements JS-style truthiness (spec.md §4.1 `item_truthy`).
// ERROR reports false here like NULL and UNDEFINED; callers that must
// keep an ERROR distinct from false use SafeBool, which preserves it.
func (it Item) Truthy() bool {
	switch it.Tag() {
	case Null, Undefined:
		return false
	case Bool:
		return it.BoolValue()
	case Int:
		return it.IntValue() != 0
	case Error:
		return false
	default:
		return true
	}
}

// IsError reports whether it is the ERROR sentinel tag.
func (it Item) IsError() bool { return it.Tag() == Error }

// SafeBool converts it to a BOOL Item unless it is already ERROR, in
// which case the ERROR tag is preserved rather than masked by a boolean
// conversion (spec.md §4.1 `safe_b2it`).
func SafeBool(it Item) Item {
	if it.IsError() {
		return it
	}
	return MakeBool(it.Truthy())
}

// Tristate is the {FALSE, TRUE, ERROR} result of a comparison (spec.md
// §4.1: "Comparisons return a tri-state {FALSE, TRUE, ERROR}").
func Tristate(ok bool, err bool) Item {
	if err {
		return ErrorItem
	}
	return MakeBool(ok)
}
