// Package isa defines the Bicycle ISA: the instruction set emitted by the
// compiler, plus the small value types (TwoBases, AutomorphismData) that
// parameterize individual instructions.
package isa

import (
	"fmt"

	"bicycle/internal/pauli"

	"github.com/pkg/errors"
)

// TwoBases names the bases measured on the two pivot qubits (1 and 7) of a
// joint or single-block measurement. At least one of the two must be
// non-identity.
type TwoBases struct {
	P1, P7 pauli.Symbol
}

// NewTwoBases validates that p1 and p7 are not both identity.
func NewTwoBases(p1, p7 pauli.Symbol) (TwoBases, error) {
	if p1 == pauli.I && p7 == pauli.I {
		return TwoBases{}, errors.New("isa: TwoBases requires at least one non-identity Pauli")
	}
	return TwoBases{P1: p1, P7: p7}, nil
}

func (t TwoBases) String() string {
	return fmt.Sprintf("(%s,%s)", t.P1, t.P7)
}

// AutomorphismData is an element of the code's Z6 x Z6 shift-automorphism
// group.
type AutomorphismData struct {
	X, Y uint8
}

// NewAutomorphism reduces x and y modulo 6.
func NewAutomorphism(x, y int) AutomorphismData {
	return AutomorphismData{X: uint8(mod6(x)), Y: uint8(mod6(y))}
}

func mod6(v int) int {
	v %= 6
	if v < 0 {
		v += 6
	}
	return v
}

// IdentityAutomorphism is the (0,0) group element.
var IdentityAutomorphism = AutomorphismData{0, 0}

// Mul composes two automorphisms (component-wise addition mod 6).
func (a AutomorphismData) Mul(b AutomorphismData) AutomorphismData {
	return NewAutomorphism(int(a.X)+int(b.X), int(a.Y)+int(b.Y))
}

// Inv returns the inverse automorphism.
func (a AutomorphismData) Inv() AutomorphismData {
	return NewAutomorphism(-int(a.X), -int(a.Y))
}

// IsIdentity reports whether a is the (0,0) element.
func (a AutomorphismData) IsIdentity() bool { return a == IdentityAutomorphism }

// NrGenerators returns the number of elementary generators needed to
// realize this automorphism: 0 for identity, 1 for (3,3) and any element
// with both components nonzero-and-not-3, 2 for (3,k!=0,3) or (k,3).
func (a AutomorphismData) NrGenerators() uint64 {
	x, y := a.X, a.Y
	switch {
	case x == 0 && y == 0:
		return 0
	case x == 3 && y == 3:
		return 1
	case x == 3 || y == 3:
		return 2
	default:
		return 1
	}
}

func (a AutomorphismData) String() string {
	return fmt.Sprintf("aut(%d,%d)", a.X, a.Y)
}
