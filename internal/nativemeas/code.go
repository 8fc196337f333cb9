package nativemeas

import "github.com/pkg/errors"

// Code identifies which bivariate-bicycle code a native measurement
// catalog is built for.
type Code int

const (
	// Gross is the [[144,12,12]] bivariate-bicycle code (l=12, m=6,
	// A=x^3+y+y^2, B=y^3+x+x^2).
	Gross Code = iota
	// TwoGross is the [[288,12,18]] code (l=12, m=12, same A, B).
	TwoGross
)

func (c Code) String() string {
	switch c {
	case Gross:
		return "gross"
	case TwoGross:
		return "two_gross"
	default:
		return "unknown_code"
	}
}

// ParseCode accepts the CLI spellings "gross" and "two-gross" (also
// tolerating the underscored form matching String).
func ParseCode(s string) (Code, error) {
	switch s {
	case "gross":
		return Gross, nil
	case "two-gross", "two_gross":
		return TwoGross, nil
	default:
		return 0, errors.Errorf("nativemeas: unknown code %q (want gross or two-gross)", s)
	}
}

// CodeMeasurement holds the two 6x6 GF(2) generator matrices encoding how
// the code's Z6 x Z6 shift automorphisms act on logical Pauli support.
type CodeMeasurement struct {
	Mx, My Mat6
}

// grossMeasurement is the exact action matrices for the gross code,
// ported from the reference decomposition tables.
var grossMeasurement = CodeMeasurement{
	Mx: Mat6{
		{0, 1, 0, 1, 0, 0},
		{0, 1, 0, 0, 0, 1},
		{0, 0, 1, 1, 0, 0},
		{1, 1, 0, 1, 1, 0},
		{0, 1, 0, 0, 1, 0},
		{1, 1, 1, 1, 0, 1},
	},
	My: Mat6{
		{1, 0, 0, 0, 0, 1},
		{1, 1, 1, 0, 0, 1},
		{0, 0, 0, 0, 1, 0},
		{0, 1, 0, 0, 0, 0},
		{0, 1, 1, 0, 0, 1},
		{0, 0, 1, 1, 0, 1},
	},
}

// twoGrossMeasurement is the exact action matrices for the two-gross code.
var twoGrossMeasurement = CodeMeasurement{
	Mx: Mat6{
		{0, 1, 1, 1, 0, 1},
		{1, 0, 1, 0, 1, 1},
		{1, 0, 1, 0, 1, 0},
		{1, 0, 1, 1, 1, 1},
		{0, 1, 1, 1, 1, 1},
		{1, 0, 0, 1, 1, 0},
	},
	My: Mat6{
		{1, 1, 1, 1, 1, 0},
		{1, 1, 0, 1, 1, 1},
		{0, 1, 1, 0, 0, 0},
		{1, 0, 0, 0, 1, 0},
		{1, 0, 0, 1, 1, 1},
		{1, 0, 0, 0, 0, 1},
	},
}

// MeasurementFor returns the action matrices for a code.
func MeasurementFor(c Code) CodeMeasurement {
	switch c {
	case TwoGross:
		return twoGrossMeasurement
	default:
		return grossMeasurement
	}
}
