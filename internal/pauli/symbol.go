// Package pauli implements the single-qubit Pauli group and the packed
// 12-qubit PauliString representation used throughout the compiler.
package pauli

import "fmt"

// Symbol is one of the four single-qubit Pauli operators, modulo phase.
type Symbol byte

const (
	I Symbol = iota
	X
	Z
	Y
)

func (s Symbol) String() string {
	switch s {
	case I:
		return "I"
	case X:
		return "X"
	case Z:
		return "Z"
	case Y:
		return "Y"
	default:
		return fmt.Sprintf("Symbol(%d)", byte(s))
	}
}

// ParseSymbol converts a single character ("I", "X", "Z", "Y", case
// insensitive) to a Symbol.
func ParseSymbol(c byte) (Symbol, error) {
	switch c {
	case 'i', 'I':
		return I, nil
	case 'x', 'X':
		return X, nil
	case 'z', 'Z':
		return Z, nil
	case 'y', 'Y':
		return Y, nil
	default:
		return I, fmt.Errorf("cannot convert %q to a Pauli symbol", c)
	}
}

// Anticommuting returns the two Paulis that anticommute with s, ordered as
// the original implementation emits them (X -> Z,Y; Z -> X,Y; Y -> X,Z).
// Returns false for I, which commutes with everything.
func (s Symbol) Anticommuting() (Symbol, Symbol, bool) {
	switch s {
	case X:
		return Z, Y, true
	case Z:
		return X, Y, true
	case Y:
		return X, Z, true
	default:
		return I, I, false
	}
}

// Mul multiplies two Pauli symbols modulo phase (XOR on the (x,z) bit pair).
func (s Symbol) Mul(o Symbol) Symbol {
	sx, sz := s.bits()
	ox, oz := o.bits()
	return fromBits(sx != ox, sz != oz)
}

func (s Symbol) bits() (x, z bool) {
	switch s {
	case X:
		return true, false
	case Z:
		return false, true
	case Y:
		return true, true
	default:
		return false, false
	}
}

func fromBits(x, z bool) Symbol {
	switch {
	case x && z:
		return Y
	case x:
		return X
	case z:
		return Z
	default:
		return I
	}
}
