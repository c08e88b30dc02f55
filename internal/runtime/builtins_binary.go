package runtime

import (
	"github.com/funvibe/funbit/pkg/funbit"

	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/memory"
)

// BINARY container packing/unpacking (fn_pack/fn_unpack, backing the
// BINARY Item tag of spec.md §3.1) is implemented with the vendored
// funvibe/funbit bit-syntax library already present in the teacher's
// module graph (internal/evaluator/builtins_ws.go used it for websocket
// frame construction) — repurposed here as BINARY's structural codec:
// packing a list of integer fields into a byte block, and unpacking a
// byte block back into integer fields by size.

// PackField describes one fixed-width integer field of a pack/unpack
// layout, e.g. {Size: 16, Signed: false} for a big-endian uint16.
type PackField struct {
	Value  int64
	Size   uint
	Signed bool
}

// FnPack builds a BINARY ByteBlock from a sequence of integer fields
// (fn_pack), grounded on funbit's Builder/AddInteger API.
func (c *Context) FnPack(fields []PackField) (*memory.ByteBlock, error) {
	b := funbit.NewBuilder()
	for _, f := range fields {
		funbit.AddInteger(b, f.Value, funbit.WithSize(f.Size), funbit.WithSigned(f.Signed))
	}
	bs, err := funbit.Build(b)
	if err != nil {
		return nil, err
	}
	return memory.NewByteBlock(item.Binary, bs.ToBytes()), nil
}

// FnUnpack extracts a sequence of fixed-width integer fields from a
// BINARY ByteBlock (fn_unpack), grounded on funbit's Matcher/Integer API.
func (c *Context) FnUnpack(block *memory.ByteBlock, sizes []uint) ([]int64, item.Item) {
	bs := funbit.NewBitStringFromBytes(block.Data)
	m := funbit.NewMatcher()
	vars := make([]int64, len(sizes))
	for i, size := range sizes {
		funbit.Integer(m, &vars[i], funbit.WithSize(size))
	}
	if _, err := funbit.Match(m, bs); err != nil {
		return nil, item.ErrorItem
	}
	return vars, item.UndefinedItem
}
