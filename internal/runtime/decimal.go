package runtime

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
	"modernc.org/mathutil"
)

// DecimalContext backs the DECIMAL Item tag with arbitrary-precision
// rational arithmetic, grounded on the teacher's Rational/BigInt types
// (internal/evaluator/object.go) and its remyoudompheng/bigfft +
// modernc.org/mathutil dependencies.
type DecimalContext struct{}

func NewDecimalContext() *DecimalContext { return &DecimalContext{} }

// Add returns a+b as a normalized decimal string, boxed by the caller
// into a NumberStack slot.
func (d *DecimalContext) Add(a, b string) (string, error) {
	x, y, err := d.parsePair(a, b)
	if err != nil {
		return "", err
	}
	return new(big.Rat).Add(x, y).RatString(), nil
}

func (d *DecimalContext) Sub(a, b string) (string, error) {
	x, y, err := d.parsePair(a, b)
	if err != nil {
		return "", err
	}
	return new(big.Rat).Sub(x, y).RatString(), nil
}

// Mul multiplies two decimals. When either numerator is wider than
// 2048 bits, the product of the numerators is computed via bigfft's
// accelerated multiply instead of math/big's default algorithm; the
// denominators are always multiplied with math/big. This matches the
// teacher's use of bigfft for wide Rational promotion results.
func (d *DecimalContext) Mul(a, b string) (string, error) {
	x, y, err := d.parsePair(a, b)
	if err != nil {
		return "", err
	}
	const wideBitsThreshold = 2048
	xn, xd := x.Num(), x.Denom()
	yn, yd := y.Num(), y.Denom()
	var num, den *big.Int
	if xn.BitLen() > wideBitsThreshold || yn.BitLen() > wideBitsThreshold {
		num = bigfft.Mul(xn, yn)
	} else {
		num = new(big.Int).Mul(xn, yn)
	}
	den = new(big.Int).Mul(xd, yd)
	result := new(big.Rat).SetFrac(num, den)
	return result.RatString(), nil
}

// Normalize reduces n/d to lowest terms using mathutil's GCD helper.
// The INT→DECIMAL promotion path does not call it; promoted values are
// reduced by math/big's Rat instead.
func (d *DecimalContext) Normalize(n, den int64) (int64, int64) {
	if den == 0 {
		return n, den
	}
	g := int64(mathutil.GCDUint64(absInt64(n), absInt64(den)))
	if g == 0 {
		return n, den
	}
	return n / g, den / g
}

// ToFloat approximates a decimal string as a float64, letting DECIMAL
// operands flow into the FLOAT-only built-ins (fn_round, fn_floor, ...)
// without each of them needing to know math/big.
func (d *DecimalContext) ToFloat(s string) (float64, bool) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return 0, false
	}
	f, _ := r.Float64()
	return f, true
}

func absInt64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

func (d *DecimalContext) parsePair(a, b string) (*big.Rat, *big.Rat, error) {
	x, ok := new(big.Rat).SetString(a)
	if !ok {
		return nil, nil, &DecimalParseError{Value: a}
	}
	y, ok := new(big.Rat).SetString(b)
	if !ok {
		return nil, nil, &DecimalParseError{Value: b}
	}
	return x, y, nil
}

type DecimalParseError struct{ Value string }

func (e *DecimalParseError) Error() string {
	return "runtime: invalid decimal literal " + e.Value
}
