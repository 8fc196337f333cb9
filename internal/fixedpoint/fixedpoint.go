// Package fixedpoint implements wide fixed-point arithmetic for rotation
// angles and accumulated error probabilities. Per-instruction physical
// error rates run as small as 1e-39; float64's ~15 significant decimal
// digits is not enough headroom to accumulate thousands of such terms
// without the smallest ones vanishing into rounding noise, so both
// quantities are carried as big.Int mantissas scaled by 2^96.
package fixedpoint

import (
	"math/big"

	"github.com/pkg/errors"
)

// FracBits is the number of fractional bits carried below the binary
// point.
const FracBits = 96

var one = new(big.Int).Lsh(big.NewInt(1), FracBits)

func scaledFromString(s string) (*big.Int, error) {
	f, _, err := big.ParseFloat(s, 10, 256, big.ToNearestEven)
	if err != nil {
		return nil, errors.Wrapf(err, "fixedpoint: parsing %q", s)
	}
	f.Mul(f, new(big.Float).SetInt(one))
	scaled, _ := f.Int(nil)
	return scaled, nil
}

func scaledToFloat64(v *big.Int) float64 {
	f := new(big.Float).SetPrec(256).SetInt(v)
	f.Quo(f, new(big.Float).SetInt(one))
	out, _ := f.Float64()
	return out
}

func scaledToString(v *big.Int) string {
	f := new(big.Float).SetPrec(256).SetInt(v)
	f.Quo(f, new(big.Float).SetInt(one))
	return f.Text('g', 18)
}

// Angle is a signed fixed-point number, used for rotation angles measured
// in radians.
type Angle struct{ v *big.Int }

// AngleZero is the zero angle.
var AngleZero = Angle{v: big.NewInt(0)}

// AngleFromString parses a signed decimal literal into an Angle.
func AngleFromString(s string) (Angle, error) {
	v, err := scaledFromString(s)
	if err != nil {
		return Angle{}, err
	}
	return Angle{v: v}, nil
}

// MustAngleFromString panics on a malformed literal; intended for
// compile-time constants.
func MustAngleFromString(s string) Angle {
	a, err := AngleFromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AngleFromFloat64 converts a float64 directly (loses precision beyond
// float64's own range; prefer AngleFromString for literal constants).
func AngleFromFloat64(f float64) Angle {
	bf := new(big.Float).SetFloat64(f)
	bf.Mul(bf, new(big.Float).SetInt(one))
	v, _ := bf.Int(nil)
	return Angle{v: v}
}

func (a Angle) raw() *big.Int {
	if a.v == nil {
		return big.NewInt(0)
	}
	return a.v
}

// Add returns a+b.
func (a Angle) Add(b Angle) Angle { return Angle{v: new(big.Int).Add(a.raw(), b.raw())} }

// Sub returns a-b.
func (a Angle) Sub(b Angle) Angle { return Angle{v: new(big.Int).Sub(a.raw(), b.raw())} }

// Neg returns -a.
func (a Angle) Neg() Angle { return Angle{v: new(big.Int).Neg(a.raw())} }

// Abs returns |a|.
func (a Angle) Abs() Angle { return Angle{v: new(big.Int).Abs(a.raw())} }

// IsNegative reports whether a < 0.
func (a Angle) IsNegative() bool { return a.raw().Sign() < 0 }

// Cmp compares a and b as big.Int.Cmp does.
func (a Angle) Cmp(b Angle) int { return a.raw().Cmp(b.raw()) }

// Equal reports whether a and b represent the same value.
func (a Angle) Equal(b Angle) bool { return a.Cmp(b) == 0 }

// Float64 returns a floating-point approximation, for display or charting.
func (a Angle) Float64() float64 { return scaledToFloat64(a.raw()) }

// String renders a as a decimal literal.
func (a Angle) String() string { return scaledToString(a.raw()) }

// Error is an unsigned fixed-point number, used for accumulated physical
// error probabilities.
type Error struct{ v *big.Int }

// ErrorZero is the zero error rate.
var ErrorZero = Error{v: big.NewInt(0)}

// ErrorFromString parses a non-negative decimal literal into an Error.
func ErrorFromString(s string) (Error, error) {
	v, err := scaledFromString(s)
	if err != nil {
		return Error{}, err
	}
	if v.Sign() < 0 {
		return Error{}, errors.Errorf("fixedpoint: error rate %q must not be negative", s)
	}
	return Error{v: v}, nil
}

// MustErrorFromString panics on a malformed or negative literal; intended
// for compile-time constants.
func MustErrorFromString(s string) Error {
	e, err := ErrorFromString(s)
	if err != nil {
		panic(err)
	}
	return e
}

func (e Error) raw() *big.Int {
	if e.v == nil {
		return big.NewInt(0)
	}
	return e.v
}

// Add returns e+o.
func (e Error) Add(o Error) Error { return Error{v: new(big.Int).Add(e.raw(), o.raw())} }

// MulUint64 returns e*n, for scaling a per-cycle error by a cycle count.
func (e Error) MulUint64(n uint64) Error {
	return Error{v: new(big.Int).Mul(e.raw(), new(big.Int).SetUint64(n))}
}

// Cmp compares e and o as big.Int.Cmp does.
func (e Error) Cmp(o Error) int { return e.raw().Cmp(o.raw()) }

// IsZero reports whether e is exactly zero.
func (e Error) IsZero() bool { return e.raw().Sign() == 0 }

// Float64 returns a floating-point approximation, for display or charting.
func (e Error) Float64() float64 { return scaledToFloat64(e.raw()) }

// String renders e as a decimal literal.
func (e Error) String() string { return scaledToString(e.raw()) }
