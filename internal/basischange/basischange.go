// Package basischange implements relabeling of which physical Pauli
// basis realizes each of the logical {X,Y,Z} symbols on a pivot qubit,
// used when compiling a rotation whose natural pivot basis differs from
// whichever basis a native measurement or T-gate injection actually
// supports.
package basischange

import (
	"bicycle/internal/isa"
	"bicycle/internal/pauli"

	"github.com/pkg/errors"
)

// BasisChanger is a relabeling of {X,Y,Z}: X maps to X, Y maps to Y, Z
// maps to Z under the respective field. Identity (pauli.I) is always
// fixed.
type BasisChanger struct {
	X, Y, Z pauli.Symbol
}

// Identity is the no-op basis changer.
var Identity = BasisChanger{X: pauli.X, Y: pauli.Y, Z: pauli.Z}

// New validates that x, y, and z are a permutation of {X,Y,Z}: pairwise
// distinct and none of them identity.
func New(x, y, z pauli.Symbol) (BasisChanger, error) {
	if x == pauli.I || y == pauli.I || z == pauli.I {
		return BasisChanger{}, errors.New("basischange: targets must not be identity")
	}
	if x == y || y == z || x == z {
		return BasisChanger{}, errors.New("basischange: targets must be unique")
	}
	return BasisChanger{X: x, Y: y, Z: z}, nil
}

// ChangePauli maps a single Pauli symbol through the relabeling.
// Identity always maps to identity.
func (c BasisChanger) ChangePauli(p pauli.Symbol) pauli.Symbol {
	switch p {
	case pauli.X:
		return c.X
	case pauli.Y:
		return c.Y
	case pauli.Z:
		return c.Z
	default:
		return pauli.I
	}
}

// changeTwoBases relabels only the first pivot basis (p1); the second
// pivot (p7) is untouched, matching the reference decomposition's
// convention that basis changers act solely on the primary pivot
// coordinate of an instruction.
func (c BasisChanger) changeTwoBases(tb isa.TwoBases) (isa.TwoBases, error) {
	return isa.NewTwoBases(c.ChangePauli(tb.P1), tb.P7)
}

// ChangeISA applies the relabeling to a single Bicycle ISA instruction.
// Automorphisms pass through unchanged (they carry no basis information);
// Measure, JointMeasure, and TGate have their primary basis relabeled.
// Any other instruction kind is not meaningfully basis-changeable and
// returns an error.
func (c BasisChanger) ChangeISA(instr isa.Instruction) (isa.Instruction, error) {
	switch v := instr.(type) {
	case isa.Automorphism:
		return v, nil
	case isa.Measure:
		tb, err := c.changeTwoBases(v.Bases)
		if err != nil {
			return nil, errors.Wrap(err, "basischange: Measure")
		}
		return isa.Measure{Bases: tb}, nil
	case isa.JointMeasure:
		tb, err := c.changeTwoBases(v.Bases)
		if err != nil {
			return nil, errors.Wrap(err, "basischange: JointMeasure")
		}
		return isa.JointMeasure{Bases: tb}, nil
	case isa.TGate:
		tg, err := isa.NewTGate(c.ChangePauli(v.Basis), v.Primed, v.Adjoint)
		if err != nil {
			return nil, errors.Wrap(err, "basischange: TGate")
		}
		return tg, nil
	default:
		return nil, errors.Errorf("basischange: %s cannot be basis-changed", instr.Kind())
	}
}
