// Package runtime is the process-wide execution context (component E,
// spec.md §3.4/§4.5): the heap, number stack, active module-local
// type registry, decimal arithmetic context, and the built-in
// operator library every compiled script calls into without an import.
// Grounded on the teacher's internal/evaluator builtins_*.go files,
// ported from Object-interface dispatch to item.Tag dispatch.
package runtime

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/memory"
	"github.com/lambda-lang/lambda/internal/runtime/session"
	"github.com/lambda-lang/lambda/internal/typesystem"
)

// Context is the singleton runtime state for one run (spec.md §3.4): the
// process-wide heap, number stack, decimal arithmetic context, and
// active module-local type registry every compiled script's VM shares
// instead of keeping its own.
type Context struct {
	ID session.ID

	Heap    *memory.Heap
	Numbers *memory.NumberStack
	Decimal *DecimalContext

	// Types tracks whichever module's type_list is currently in scope
	// (spec.md §4.4.2's save/swap/restore bracket); internal/jit.Context
	// brackets a call into an importee with Types.WithTypeList. (Constant
	// isolation needs no equivalent ActiveConsts field: each script's
	// bytecode chunk already owns its own constant pool directly, so
	// there is nothing process-wide to swap.)
	Types *typesystem.Context

	// Objects is the shared container registry every compiled script's
	// VM tracks its heap allocations into, keyed by an Item payload
	// index rather than a Go pointer — so a container built by one
	// module and handed back across a link-layer call (spec.md §4.4)
	// stays resolvable by the importer's VM.
	Objects []memory.Container

	Result item.Item
}

// New creates a fresh runtime Context with an empty heap, number stack,
// and type registry, and wires the heap's Resolver to ObjectOf.
func New() *Context {
	ctx := &Context{
		ID:      session.New(),
		Heap:    memory.NewHeap(),
		Numbers: memory.NewNumberStack(),
		Decimal: NewDecimalContext(),
		Types:   typesystem.NewContext(),
	}
	ctx.Heap.Resolver = ctx.ObjectOf
	return ctx
}

// TrackContainer registers c with the heap and the shared object
// registry, returning an Item whose payload is its registry index so a
// later OpIndex/OpMember/cross-module call can recover the concrete
// container from a plain Item.
func (c *Context) TrackContainer(ct memory.Container) item.Item {
	c.Heap.Track(ct)
	c.Heap.Retain(ct)
	c.Objects = append(c.Objects, ct)
	return item.Make(ct.Tag(), uint64(len(c.Objects)-1))
}

// ObjectOf resolves an Item previously returned by TrackContainer back to
// its Container.
func (c *Context) ObjectOf(it item.Item) (memory.Container, bool) {
	idx := int(it.Payload())
	if idx < 0 || idx >= len(c.Objects) {
		return nil, false
	}
	return c.Objects[idx], true
}

// DescribeHeap renders a human-readable summary of the current heap
// occupancy, grounded on the teacher's use of dustin/go-humanize for
// readable diagnostic output. Nothing in the command or the runtime
// calls it; the -trace-links flag does not print it.
func (c *Context) DescribeHeap() string {
	return fmt.Sprintf("session %s: %s live containers, %s boxed numbers",
		c.ID, humanize.Comma(int64(c.Heap.LiveCount())), humanize.Comma(int64(c.Numbers.Len())))
}
