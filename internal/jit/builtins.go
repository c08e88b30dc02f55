package jit

import (
	"fmt"

	"github.com/lambda-lang/lambda/internal/config"
	"github.com/lambda-lang/lambda/internal/item"
	"github.com/lambda-lang/lambda/internal/memory"
	"github.com/lambda-lang/lambda/internal/runtime"
)

// callBuiltin resolves a call to one of the runtime's operator-library
// functions (spec.md §4.5) that has no dedicated opcode — the VM layer
// owns string interning and container lookup, so this is where an Item
// argument gets unpacked into the plain Go value internal/runtime's
// builtins expect, and the Go return value gets reboxed into an Item.
// Reports ok=false when name isn't one of these built-ins at all, so the
// caller can fall through to its own "undefined function" error.
func (vm *VM) callBuiltin(name string, args []item.Item) (result item.Item, ok bool, err error) {
	arg := func(i int) (item.Item, bool) {
		if i < 0 || i >= len(args) {
			return item.Item(0), false
		}
		return args[i], true
	}
	wrongArgs := func() (item.Item, bool, error) {
		return item.ErrorItem, true, fmt.Errorf("jit: %s called with %d arguments", name, len(args))
	}

	switch name {
	case config.StrcatFuncName:
		parts := make([]string, len(args))
		for i, a := range args {
			parts[i] = vm.stringOf(a)
		}
		return vm.internString(vm.Runtime.FnStrcat(parts...)), true, nil

	case config.LenFuncName:
		a, aok := arg(0)
		if !aok {
			return wrongArgs()
		}
		if a.Tag() == item.String {
			return vm.Runtime.FnStrLen(vm.stringOf(a)), true, nil
		}
		cont, cok := vm.objectOf(a)
		if !cok {
			return item.ErrorItem, true, nil
		}
		return vm.Runtime.FnLen(cont), true, nil

	case config.SubstringFuncName:
		s, sok := arg(0)
		start, stok := arg(1)
		end, eok := arg(2)
		if !sok || !stok || !eok {
			return wrongArgs()
		}
		out, ok2 := vm.Runtime.FnSubstring(vm.stringOf(s), int(start.IntValue()), int(end.IntValue()))
		if !ok2 {
			return item.ErrorItem, true, nil
		}
		return vm.internString(out), true, nil

	case config.ContainsFuncName:
		s, sok := arg(0)
		needle, nok := arg(1)
		if !sok || !nok {
			return wrongArgs()
		}
		return vm.Runtime.FnContains(vm.stringOf(s), vm.stringOf(needle)), true, nil

	case config.IndexFuncName:
		recv, rok := arg(0)
		idx, iok := arg(1)
		if !rok || !iok {
			return wrongArgs()
		}
		cont, cok := vm.objectOf(recv)
		if !cok {
			return item.ErrorItem, true, nil
		}
		return vm.Runtime.FnIndex(cont, int(idx.IntValue())), true, nil

	case config.MemberFuncName:
		recv, rok := arg(0)
		field, fok := arg(1)
		if !rok || !fok {
			return wrongArgs()
		}
		cont, cok := vm.objectOf(recv)
		if !cok {
			return item.ErrorItem, true, nil
		}
		return vm.Runtime.FnMember(cont, vm.stringOf(field)), true, nil

	case config.PrintFuncName:
		s, sok := arg(0)
		if !sok {
			return wrongArgs()
		}
		return vm.Runtime.FnPrint(vm.stringOf(s)), true, nil

	case config.InputFuncName:
		prompt := ""
		if p, pok := arg(0); pok {
			prompt = vm.stringOf(p)
		}
		line, status := vm.Runtime.FnInput(prompt)
		if status.IsError() {
			return status, true, nil
		}
		return vm.internString(line), true, nil

	case config.FormatFuncName:
		f, fok := arg(0)
		if !fok {
			return wrongArgs()
		}
		rest := make([]any, len(args)-1)
		for i, a := range args[1:] {
			rest[i] = vm.itemToAny(a)
		}
		return vm.internString(vm.Runtime.FnFormat(vm.stringOf(f), rest...)), true, nil

	case config.DatetimeName:
		dt, dok := arg(0)
		layout, lok := arg(1)
		if !dok || !lok {
			return wrongArgs()
		}
		out, derr := vm.Runtime.FnDatetime(dt, vm.stringOf(layout))
		if derr != nil {
			return item.ErrorItem, true, nil
		}
		return vm.internString(out), true, nil

	case config.PackFuncName:
		// Calling convention: alternating (value, bit-size) pairs, e.g.
		// fn_pack(a, 8, b, 16) packs a into an unsigned 8-bit field
		// followed by b into an unsigned 16-bit field.
		if len(args)%2 != 0 {
			return wrongArgs()
		}
		fields := make([]runtime.PackField, len(args)/2)
		for i := range fields {
			fields[i].Value = int64(args[2*i].IntValue())
			fields[i].Size = uint(args[2*i+1].IntValue())
		}
		block, perr := vm.Runtime.FnPack(fields)
		if perr != nil {
			return item.ErrorItem, true, nil
		}
		return vm.trackObject(block), true, nil

	case config.UnpackFuncName:
		recv, rok := arg(0)
		if !rok {
			return wrongArgs()
		}
		cont, cok := vm.objectOf(recv)
		if !cok {
			return item.ErrorItem, true, nil
		}
		block, isBlock := cont.(*memory.ByteBlock)
		if !isBlock {
			return item.ErrorItem, true, nil
		}
		sizes := make([]uint, len(args)-1)
		for i, a := range args[1:] {
			sizes[i] = uint(a.IntValue())
		}
		vars, status := vm.Runtime.FnUnpack(block, sizes)
		if status.IsError() {
			return status, true, nil
		}
		items := make([]item.Item, len(vars))
		for i, v := range vars {
			if v >= -(1<<31) && v <= (1<<31-1) {
				items[i] = item.MakeInt(int32(v))
			} else {
				items[i] = vm.Runtime.Numbers.BoxInt64(v)
			}
		}
		return vm.trackObject(&memory.List{Items: items}), true, nil
	}

	return item.Item(0), false, nil
}

// itemToAny converts an Item to the plain Go value fn_format's
// fmt.Sprintf pass-through expects.
func (vm *VM) itemToAny(it item.Item) any {
	switch it.Tag() {
	case item.String:
		return vm.stringOf(it)
	case item.Int:
		return it.IntValue()
	case item.Float:
		return vm.Runtime.Numbers.UnboxFloat(it)
	case item.Bool:
		return it.BoolValue()
	case item.Null, item.Undefined:
		return nil
	default:
		return it
	}
}
