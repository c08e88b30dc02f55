package runtime

import (
	"math"
	"strconv"

	"github.com/lambda-lang/lambda/internal/item"
)

// Arithmetic built-ins dispatch on item.Tag the way the teacher's
// builtins_math.go dispatches on evaluator.Object's concrete type —
// here a type switch over the tag byte instead of a Go type switch,
// per spec.md §4.5's "tag-dispatch" contract.

func (c *Context) asFloat(it item.Item) (float64, bool) {
	switch it.Tag() {
	case item.Int:
		return float64(it.IntValue()), true
	case item.Int64:
		return float64(c.Numbers.UnboxInt64(it)), true
	case item.Float:
		return c.Numbers.UnboxFloat(it), true
	case item.Decimal:
		return c.Decimal.ToFloat(c.Numbers.UnboxDecimal(it))
	default:
		return 0, false
	}
}

// promoteOverflow boxes an INT+INT result that no longer fits in 32 bits
// as a DECIMAL rather than a FLOAT (spec.md §3.1/§4.1: INT arithmetic
// that overflows promotes to the arbitrary-precision DECIMAL tag, since a
// FLOAT would silently lose precision a bignum wouldn't). op runs through
// the shared DecimalContext so the promoted value is exact, not a float
// round-trip.
func (c *Context) promoteOverflow(op func(a, b string) (string, error), a, b int64) item.Item {
	s, err := op(strconv.FormatInt(a, 10), strconv.FormatInt(b, 10))
	if err != nil {
		return item.ErrorItem
	}
	return c.Numbers.BoxDecimal(s)
}

// FnAdd implements fn_add (spec.md config.AddFuncName): INT+INT stays
// INT unless it overflows 32 bits, in which case it promotes to a boxed
// DECIMAL via the shared DecimalContext, mirroring the teacher's
// int->bignum promotion-on-overflow rule.
func (c *Context) FnAdd(a, b item.Item) item.Item {
	if a.Tag() == item.Int && b.Tag() == item.Int {
		x, y := int64(a.IntValue()), int64(b.IntValue())
		sum := x + y
		if sum >= math.MinInt32 && sum <= math.MaxInt32 {
			return item.MakeInt(int32(sum))
		}
		return c.promoteOverflow(c.Decimal.Add, x, y)
	}
	x, xok := c.asFloat(a)
	y, yok := c.asFloat(b)
	if !xok || !yok {
		return item.ErrorItem
	}
	return c.Numbers.BoxFloat(x + y)
}

func (c *Context) FnSub(a, b item.Item) item.Item {
	if a.Tag() == item.Int && b.Tag() == item.Int {
		x, y := int64(a.IntValue()), int64(b.IntValue())
		diff := x - y
		if diff >= math.MinInt32 && diff <= math.MaxInt32 {
			return item.MakeInt(int32(diff))
		}
		return c.promoteOverflow(c.Decimal.Sub, x, y)
	}
	x, xok := c.asFloat(a)
	y, yok := c.asFloat(b)
	if !xok || !yok {
		return item.ErrorItem
	}
	return c.Numbers.BoxFloat(x - y)
}

func (c *Context) FnMul(a, b item.Item) item.Item {
	if a.Tag() == item.Int && b.Tag() == item.Int {
		x, y := int64(a.IntValue()), int64(b.IntValue())
		prod := x * y
		if prod >= math.MinInt32 && prod <= math.MaxInt32 {
			return item.MakeInt(int32(prod))
		}
		return c.promoteOverflow(c.Decimal.Mul, x, y)
	}
	x, xok := c.asFloat(a)
	y, yok := c.asFloat(b)
	if !xok || !yok {
		return item.ErrorItem
	}
	return c.Numbers.BoxFloat(x * y)
}

// FnDiv always produces a FLOAT result (spec.md §4.5: "/ always widens
// to float, unlike idiv"); division by zero is an ERROR Item, never a Go
// panic or error return.
func (c *Context) FnDiv(a, b item.Item) item.Item {
	x, xok := c.asFloat(a)
	y, yok := c.asFloat(b)
	if !xok || !yok || y == 0 {
		return item.ErrorItem
	}
	return c.Numbers.BoxFloat(x / y)
}

// FnIDiv is integer division (fn_idiv): truncates toward zero, stays INT.
func (c *Context) FnIDiv(a, b item.Item) item.Item {
	if a.Tag() != item.Int || b.Tag() != item.Int || b.IntValue() == 0 {
		return item.ErrorItem
	}
	return item.MakeInt(a.IntValue() / b.IntValue())
}

func (c *Context) FnMod(a, b item.Item) item.Item {
	if a.Tag() != item.Int || b.Tag() != item.Int || b.IntValue() == 0 {
		return item.ErrorItem
	}
	return item.MakeInt(a.IntValue() % b.IntValue())
}

func (c *Context) FnPow(a, b item.Item) item.Item {
	x, xok := c.asFloat(a)
	y, yok := c.asFloat(b)
	if !xok || !yok {
		return item.ErrorItem
	}
	return c.Numbers.BoxFloat(math.Pow(x, y))
}

func (c *Context) FnAbs(a item.Item) item.Item {
	if a.Tag() == item.Int {
		v := a.IntValue()
		if v < 0 {
			v = -v
		}
		return item.MakeInt(v)
	}
	x, ok := c.asFloat(a)
	if !ok {
		return item.ErrorItem
	}
	return c.Numbers.BoxFloat(math.Abs(x))
}

func (c *Context) FnRound(a item.Item) item.Item {
	x, ok := c.asFloat(a)
	if !ok {
		return item.ErrorItem
	}
	return c.Numbers.BoxFloat(math.Round(x))
}

func (c *Context) FnFloor(a item.Item) item.Item {
	x, ok := c.asFloat(a)
	if !ok {
		return item.ErrorItem
	}
	return c.Numbers.BoxFloat(math.Floor(x))
}

func (c *Context) FnCeil(a item.Item) item.Item {
	x, ok := c.asFloat(a)
	if !ok {
		return item.ErrorItem
	}
	return c.Numbers.BoxFloat(math.Ceil(x))
}

func (c *Context) FnMin(a, b item.Item) item.Item {
	x, xok := c.asFloat(a)
	y, yok := c.asFloat(b)
	if !xok || !yok {
		return item.ErrorItem
	}
	if x <= y {
		return a
	}
	return b
}

func (c *Context) FnMax(a, b item.Item) item.Item {
	x, xok := c.asFloat(a)
	y, yok := c.asFloat(b)
	if !xok || !yok {
		return item.ErrorItem
	}
	if x >= y {
		return a
	}
	return b
}

// FnSum/FnAvg reduce a slice of numeric items, mirroring the teacher's
// builtins_math.go reduce-style helpers.
func (c *Context) FnSum(values []item.Item) item.Item {
	total := 0.0
	for _, v := range values {
		x, ok := c.asFloat(v)
		if !ok {
			return item.ErrorItem
		}
		total += x
	}
	return c.Numbers.BoxFloat(total)
}

func (c *Context) FnAvg(values []item.Item) item.Item {
	if len(values) == 0 {
		return item.ErrorItem
	}
	sum := c.FnSum(values)
	if sum.IsError() {
		return sum
	}
	total, _ := c.asFloat(sum)
	return c.Numbers.BoxFloat(total / float64(len(values)))
}

// FnNot/FnAnd/FnOr are the boolean built-ins behind the `!`/`&&`/`||`
// operators. Each checks IsError on its operands first and returns the
// ERROR item rather than coercing it to a boolean (spec.md §4.1
// safe_b2it).
func (c *Context) FnNot(a item.Item) item.Item {
	if a.IsError() {
		return a
	}
	return item.MakeBool(!a.Truthy())
}

func (c *Context) FnAnd(a, b item.Item) item.Item {
	if a.IsError() || b.IsError() {
		return item.ErrorItem
	}
	return item.MakeBool(a.Truthy() && b.Truthy())
}

func (c *Context) FnOr(a, b item.Item) item.Item {
	if a.IsError() || b.IsError() {
		return item.ErrorItem
	}
	return item.MakeBool(a.Truthy() || b.Truthy())
}

// FnIs/FnTo back the `is`/`to` keyword operators: type test and
// conversion respectively. There is no membership built-in for `in`.
func (c *Context) FnIs(a item.Item, tag item.Tag) item.Item {
	return item.MakeBool(a.Tag() == tag)
}

func (c *Context) FnTo(a item.Item, tag item.Tag) item.Item {
	switch tag {
	case item.Float:
		x, ok := c.asFloat(a)
		if !ok {
			return item.ErrorItem
		}
		return c.Numbers.BoxFloat(x)
	case item.Int:
		x, ok := c.asFloat(a)
		if !ok {
			return item.ErrorItem
		}
		return item.MakeInt(int32(x))
	default:
		return item.ErrorItem
	}
}
