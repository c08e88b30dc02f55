package runtime

import (
	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/memory"
)

// Container built-ins (fn_index, fn_member, fn_len) grounded on the
// teacher's builtins_list.go / builtins_map.go, ported to operate on
// this repository's memory.Container variants instead of evaluator's
// persistent Object trees.

func (c *Context) FnLen(container memory.Container) item.Item {
	switch v := container.(type) {
	case *memory.List:
		return item.MakeInt(int32(len(v.Items)))
	case *memory.Map:
		return item.MakeInt(int32(len(v.Keys)))
	case *memory.ArrayInt:
		return item.MakeInt(int32(len(v.Items)))
	case *memory.ArrayInt64:
		return item.MakeInt(int32(len(v.Items)))
	case *memory.ArrayFloat:
		return item.MakeInt(int32(len(v.Items)))
	case *memory.ByteBlock:
		return item.MakeInt(int32(len(v.Data)))
	default:
		return item.ErrorItem
	}
}

func (c *Context) FnIndex(container memory.Container, idx int) item.Item {
	switch v := container.(type) {
	case *memory.List:
		if idx < 0 || idx >= len(v.Items) {
			return item.ErrorItem
		}
		return v.Items[idx]
	case *memory.ArrayInt:
		if idx < 0 || idx >= len(v.Items) {
			return item.ErrorItem
		}
		return item.MakeInt(v.Items[idx])
	default:
		return item.ErrorItem
	}
}

func (c *Context) FnMember(container memory.Container, field string) item.Item {
	m, ok := container.(*memory.Map)
	if !ok {
		return item.ErrorItem
	}
	v, found := m.Get(field)
	if !found {
		return item.UndefinedItem
	}
	return v
}

// ConcatLists is re-exposed here (delegating to internal/memory) as the
// built-in behind the `++` operator over two LIST containers, so callers
// in this package need only internal/runtime, not internal/memory
// directly, to reach every container built-in.
func (c *Context) ConcatLists(a, b *memory.List) *memory.List {
	return memory.ConcatLists(c.Heap, a, b)
}
