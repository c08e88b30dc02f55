package jit

import (
	"fmt"
	"strconv"

	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/memory"
	"github.com/lambda-lang/lambda/internal/runtime"
	"github.com/lambda-lang/lambda/internal/typesystem"
)

// ImportResolver looks up a public value or callable exported by an
// imported module, given the importing script's alias for it. Backed by
// the link layer's ModuleStub (spec.md §4.4.1) once internal/link wires
// a concrete implementation in; kept as an interface here so this
// package never imports internal/link, mirroring the Compiler-callback
// cycle-avoidance already used between internal/script and internal/jit.
type ImportResolver interface {
	ResolveVar(alias, name string) (item.Item, error)
	ResolveCall(alias, name string, args []item.Item) (item.Item, error)
}

// VM is a stack-machine executor for one script's compiled protos.
// Grounded on the teacher's vm.VM.executeOneOp dispatch loop
// (internal/vm/vm_exec.go), retargeted from the teacher's evaluator
// Object model to this package's tagged item.Item values. Every VM
// shares its heap, number stack, built-in operator library, and active
// type registry through a single *runtime.Context (spec.md §3.4: "A
// single Context instance exists for a program run") rather than
// keeping private copies — that Context is what makes a container built
// by one compiled module resolvable by another module's VM across a
// link-layer call.
type VM struct {
	Protos  map[string]*FunctionProto
	Globals map[string]item.Item
	Runtime *runtime.Context
	Strings []string // runtime string table; parallel in spirit to Chunk.Strings
	Imports ImportResolver

	stack []item.Item
}

// NewVM builds a VM against a fresh, standalone runtime.Context — the
// convenience constructor for callers (tests, one-off scripts) that
// don't need to share state across several compiled modules. Production
// callers loading more than one script should build one runtime.Context
// themselves and use NewVMWithRuntime so every module's VM shares it.
func NewVM(protos map[string]*FunctionProto) *VM {
	return NewVMWithRuntime(protos, runtime.New())
}

// NewVMWithRuntime builds a VM against an already-constructed, possibly
// shared runtime.Context.
func NewVMWithRuntime(protos map[string]*FunctionProto, rc *runtime.Context) *VM {
	return &VM{
		Protos:  protos,
		Globals: make(map[string]item.Item),
		Runtime: rc,
	}
}

func (vm *VM) push(it item.Item) { vm.stack = append(vm.stack, it) }

func (vm *VM) pop() item.Item {
	n := len(vm.stack) - 1
	it := vm.stack[n]
	vm.stack = vm.stack[:n]
	return it
}

func (vm *VM) internString(s string) item.Item {
	vm.Strings = append(vm.Strings, s)
	return item.Make(item.String, uint64(len(vm.Strings)-1))
}

func (vm *VM) stringOf(it item.Item) string {
	idx := int(it.Payload())
	if idx < 0 || idx >= len(vm.Strings) {
		return ""
	}
	return vm.Strings[idx]
}

// trackObject registers c in the shared runtime Context's container
// registry and returns an Item whose payload is its registry index, so
// later OpIndex/OpMember instructions (possibly running in a different
// module's VM) can recover the concrete container from a plain Item.
func (vm *VM) trackObject(c memory.Container) item.Item {
	return vm.Runtime.TrackContainer(c)
}

func (vm *VM) objectOf(it item.Item) (memory.Container, bool) {
	return vm.Runtime.ObjectOf(it)
}

// Run executes "main" to completion and returns its final value
// (spec.md §4.3 step 7/§6: the script's CONTENT-class result).
func (vm *VM) Run() (item.Item, error) {
	main, ok := vm.Protos["main"]
	if !ok {
		return item.UndefinedItem, fmt.Errorf("jit: no main proto compiled")
	}
	return vm.callChunk(main.Chunk, nil)
}

// callChunk executes chunk with the given locals and returns the value
// left on the stack by its trailing OpReturn.
func (vm *VM) callChunk(chunk *Chunk, locals []item.Item) (item.Item, error) {
	ip := 0
	base := len(vm.stack)
	for ip < len(chunk.Code) {
		op := Opcode(chunk.Code[ip])
		ip++
		switch op {
		case OpConst:
			idx := chunk.ReadUint16(ip)
			ip += 2
			v := chunk.Constants[idx]
			s := chunk.Strings[idx]
			switch v.Tag() {
			case item.String:
				vm.push(vm.internString(s))
			case item.Float:
				f, _ := strconv.ParseFloat(s, 64)
				vm.push(vm.boxFloat(f))
			case item.Func:
				vm.push(vm.internString(s)) // payload doubles as the proto name key
			default:
				vm.push(v)
			}

		case OpNull:
			vm.push(item.NullItem)
		case OpUndefined:
			vm.push(item.UndefinedItem)
		case OpTrue:
			vm.push(item.MakeBool(true))
		case OpFalse:
			vm.push(item.MakeBool(false))
		case OpPop:
			vm.pop()

		case OpAdd, OpSub, OpMul, OpDiv, OpMod:
			b := vm.pop()
			a := vm.pop()
			res, err := vm.arith(op, a, b)
			if err != nil {
				return item.ErrorItem, err
			}
			vm.push(res)

		case OpBitAnd, OpBitOr, OpBitXor:
			b := vm.pop()
			a := vm.pop()
			vm.push(vm.bitwise(op, a, b))

		case OpConcat:
			b := vm.pop()
			a := vm.pop()
			vm.push(vm.internString(vm.stringOf(a) + vm.stringOf(b)))

		case OpLogAnd:
			b := vm.pop()
			a := vm.pop()
			vm.push(item.MakeBool(a.Truthy() && b.Truthy()))
		case OpLogOr:
			b := vm.pop()
			a := vm.pop()
			vm.push(item.MakeBool(a.Truthy() || b.Truthy()))

		case OpEq:
			b := vm.pop()
			a := vm.pop()
			vm.push(item.MakeBool(vm.equal(a, b)))
		case OpNotEq:
			b := vm.pop()
			a := vm.pop()
			vm.push(item.MakeBool(!vm.equal(a, b)))
		case OpLt, OpGt, OpLte, OpGte:
			b := vm.pop()
			a := vm.pop()
			vm.push(vm.compare(op, a, b))

		case OpNeg:
			a := vm.pop()
			if a.Tag() == item.Int {
				vm.push(item.MakeInt(-a.IntValue()))
			} else {
				vm.push(vm.boxFloat(-vm.unboxFloat(a)))
			}
		case OpNot:
			a := vm.pop()
			vm.push(item.SafeBool(item.MakeBool(!a.Truthy())))

		case OpDefineGlobal, OpSetGlobal:
			idx := chunk.ReadUint16(ip)
			ip += 2
			name := chunk.Strings[idx]
			vm.Globals[name] = vm.pop()

		case OpGetGlobal:
			idx := chunk.ReadUint16(ip)
			ip += 2
			name := chunk.Strings[idx]
			vm.push(vm.Globals[name])

		case OpGetLocal:
			idx := chunk.ReadUint16(ip)
			ip += 2
			vm.push(locals[idx])

		case OpSetLocal:
			idx := chunk.ReadUint16(ip)
			ip += 2
			locals[idx] = vm.pop()

		case OpJump:
			target := int(chunk.ReadUint16(ip))
			ip = target

		case OpJumpIfFalse:
			target := int(chunk.ReadUint16(ip))
			ip += 2
			cond := vm.pop()
			if !cond.Truthy() {
				ip = target
			}

		case OpMakeList:
			n := int(chunk.ReadUint16(ip))
			ip += 2
			items := make([]item.Item, n)
			copy(items, vm.stack[len(vm.stack)-n:])
			vm.stack = vm.stack[:len(vm.stack)-n]
			lst := &memory.List{Items: items}
			vm.push(vm.trackObject(lst))

		case OpMakeMap:
			n := int(chunk.ReadUint16(ip))
			ip += 2
			m := &memory.Map{}
			shape := typesystem.TypeMapShape{}
			pairs := vm.stack[len(vm.stack)-2*n:]
			for i := 0; i < n; i++ {
				k := pairs[2*i]
				v := pairs[2*i+1]
				key := vm.stringOf(k)
				m.Set(key, v)
				shape.Fields = append(shape.Fields, typesystem.FieldShape{Name: key, Type: typesystem.TCon{Name: "Any"}})
			}
			vm.stack = vm.stack[:len(vm.stack)-2*n]
			// Register this literal's shape into whichever type_list is
			// currently active (spec.md §4.4.2) rather than a bare,
			// unregistered struct, so two structurally identical map
			// literals built under different active modules land at
			// different module-local indices.
			m.Registry = vm.Runtime.Types.Active
			m.TypeMapIndex = vm.Runtime.Types.Active.Add(shape.AsRecord())
			vm.push(vm.trackObject(m))

		case OpIndex:
			idxIt := vm.pop()
			recv := vm.pop()
			cont, ok := vm.objectOf(recv)
			if !ok {
				vm.push(item.UndefinedItem)
				break
			}
			switch c := cont.(type) {
			case *memory.List:
				i := int(idxIt.IntValue())
				if i < 0 || i >= len(c.Items) {
					vm.push(item.UndefinedItem)
				} else {
					vm.push(c.Items[i])
				}
			case *memory.Map:
				v, found := c.Get(vm.stringOf(idxIt))
				if !found {
					vm.push(item.UndefinedItem)
				} else {
					vm.push(v)
				}
			default:
				vm.push(item.UndefinedItem)
			}

		case OpMember:
			idx := chunk.ReadUint16(ip)
			ip += 2
			field := chunk.Strings[idx]
			recv := vm.pop()
			cont, ok := vm.objectOf(recv)
			if !ok {
				vm.push(item.UndefinedItem)
				break
			}
			if m, ok := cont.(*memory.Map); ok {
				if v, found := m.Get(field); found {
					vm.push(v)
					break
				}
			}
			vm.push(item.UndefinedItem)

		case OpCall:
			idx := chunk.ReadUint16(ip)
			ip += 2
			n := int(chunk.ReadUint16(ip))
			ip += 2
			name := chunk.Strings[idx]
			args := append([]item.Item(nil), vm.stack[len(vm.stack)-n:]...)
			vm.stack = vm.stack[:len(vm.stack)-n]
			res, err := vm.callNamed(name, args)
			if err != nil {
				return item.ErrorItem, err
			}
			vm.push(res)

		case OpCallImport:
			aidx := chunk.ReadUint16(ip)
			ip += 2
			nidx := chunk.ReadUint16(ip)
			ip += 2
			n := int(chunk.ReadUint16(ip))
			ip += 2
			alias := chunk.Strings[aidx]
			name := chunk.Strings[nidx]
			args := append([]item.Item(nil), vm.stack[len(vm.stack)-n:]...)
			vm.stack = vm.stack[:len(vm.stack)-n]
			if vm.Imports == nil {
				return item.ErrorItem, fmt.Errorf("jit: no import resolver bound for %s.%s", alias, name)
			}
			res, err := vm.Imports.ResolveCall(alias, name, args)
			if err != nil {
				return item.ErrorItem, err
			}
			vm.push(res)

		case OpGetImportVar:
			aidx := chunk.ReadUint16(ip)
			ip += 2
			nidx := chunk.ReadUint16(ip)
			ip += 2
			alias := chunk.Strings[aidx]
			name := chunk.Strings[nidx]
			if vm.Imports == nil {
				vm.push(item.UndefinedItem)
				break
			}
			res, err := vm.Imports.ResolveVar(alias, name)
			if err != nil {
				return item.ErrorItem, err
			}
			vm.push(res)

		case OpReturn:
			if len(vm.stack) <= base {
				return item.UndefinedItem, nil
			}
			return vm.pop(), nil

		default:
			return item.ErrorItem, fmt.Errorf("jit: unknown opcode %d", op)
		}
	}
	return item.UndefinedItem, nil
}

// callNamed dispatches a call by name: first a compiled local function
// proto, then (spec.md §4.5) one of the runtime's built-in operator
// functions, finally an undefined-function error.
func (vm *VM) callNamed(name string, args []item.Item) (item.Item, error) {
	if proto, ok := vm.Protos[name]; ok {
		locals := make([]item.Item, len(proto.Params))
		copy(locals, args)
		return vm.callChunk(proto.Chunk, locals)
	}
	if res, ok, err := vm.callBuiltin(name, args); ok {
		return res, err
	}
	return item.ErrorItem, fmt.Errorf("jit: call to undefined function %q", name)
}

func (vm *VM) boxFloat(f float64) item.Item {
	return vm.Runtime.Numbers.BoxFloat(f)
}

func (vm *VM) unboxFloat(it item.Item) float64 {
	if it.Tag() == item.Int {
		return float64(it.IntValue())
	}
	return vm.Runtime.Numbers.UnboxFloat(it)
}

// arith dispatches +/-/*// /% to the runtime's built-in operator library
// (spec.md §4.5) instead of re-deriving overflow/div-by-zero/promotion
// rules locally, so e.g. an INT+INT overflow promotes to DECIMAL exactly
// the way a direct fn_add call would.
func (vm *VM) arith(op Opcode, a, b item.Item) (item.Item, error) {
	var res item.Item
	switch op {
	case OpAdd:
		res = vm.Runtime.FnAdd(a, b)
	case OpSub:
		res = vm.Runtime.FnSub(a, b)
	case OpMul:
		res = vm.Runtime.FnMul(a, b)
	case OpDiv:
		res = vm.Runtime.FnDiv(a, b)
	case OpMod:
		res = vm.Runtime.FnMod(a, b)
	default:
		return item.ErrorItem, fmt.Errorf("jit: unsupported arithmetic opcode %d", op)
	}
	if res.IsError() {
		return item.ErrorItem, fmt.Errorf("jit: arithmetic error evaluating opcode %d", op)
	}
	return res, nil
}

func (vm *VM) bitwise(op Opcode, a, b item.Item) item.Item {
	x, y := a.IntValue(), b.IntValue()
	switch op {
	case OpBitAnd:
		return item.MakeInt(x & y)
	case OpBitOr:
		return item.MakeInt(x | y)
	default:
		return item.MakeInt(x ^ y)
	}
}

func (vm *VM) equal(a, b item.Item) bool {
	if a.Tag() != b.Tag() {
		return false
	}
	switch a.Tag() {
	case item.String:
		return vm.stringOf(a) == vm.stringOf(b)
	case item.Float:
		return vm.unboxFloat(a) == vm.unboxFloat(b)
	default:
		return a == b
	}
}

// compare implements spec.md §4.1's tri-state comparison result: ERROR
// when operands are not order-comparable, otherwise TRUE/FALSE.
func (vm *VM) compare(op Opcode, a, b item.Item) item.Item {
	numeric := func(it item.Item) (float64, bool) {
		switch it.Tag() {
		case item.Int:
			return float64(it.IntValue()), true
		case item.Float:
			return vm.unboxFloat(it), true
		default:
			return 0, false
		}
	}
	x, xok := numeric(a)
	y, yok := numeric(b)
	if !xok || !yok {
		return item.Tristate(false, true)
	}
	switch op {
	case OpLt:
		return item.Tristate(x < y, false)
	case OpGt:
		return item.Tristate(x > y, false)
	case OpLte:
		return item.Tristate(x <= y, false)
	default:
		return item.Tristate(x >= y, false)
	}
}
