// Package nativemeas enumerates the native measurements a bivariate-bicycle
// code block can perform directly (one shift automorphism, one two-pivot
// logical measurement, the inverse automorphism) and computes the physical
// 12-qubit support each one touches.
package nativemeas

import (
	"bicycle/internal/isa"
	"bicycle/internal/pauli"
)

// NativeMeasurement is a single automorphism-conjugated logical
// measurement: apply the automorphism, measure the two named pivot
// bases, undo the automorphism.
type NativeMeasurement struct {
	Logical      isa.TwoBases
	Automorphism isa.AutomorphismData
}

// AllBases returns the 15 distinct TwoBases combinations (4x4 Pauli pairs
// minus the excluded (I,I)).
func AllBases() []isa.TwoBases {
	syms := [4]pauli.Symbol{pauli.I, pauli.X, pauli.Z, pauli.Y}
	out := make([]isa.TwoBases, 0, 15)
	for _, p1 := range syms {
		for _, p7 := range syms {
			tb, err := isa.NewTwoBases(p1, p7)
			if err != nil {
				continue
			}
			out = append(out, tb)
		}
	}
	return out
}

// All returns the full catalog of 540 native measurements (36 automorphism
// group elements x 15 basis pairs) for a given code. The code parameter is
// accepted for symmetry with Measures even though the catalog's shape does
// not depend on it; only the physical support computed by Measures does.
func All(_ Code) []NativeMeasurement {
	bases := AllBases()
	out := make([]NativeMeasurement, 0, 36*len(bases))
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			aut := isa.NewAutomorphism(x, y)
			for _, b := range bases {
				out = append(out, NativeMeasurement{Logical: b, Automorphism: aut})
			}
		}
	}
	return out
}

// Implementation expands a native measurement into its three-instruction
// realization: conjugate by the automorphism, measure, conjugate back.
func (nm NativeMeasurement) Implementation() [3]isa.Instruction {
	return [3]isa.Instruction{
		isa.Automorphism{Data: nm.Automorphism},
		isa.Measure{Bases: nm.Logical},
		isa.Automorphism{Data: nm.Automorphism.Inv()},
	}
}

func symbolXVec(s pauli.Symbol) Vec6 {
	if s == pauli.X || s == pauli.Y {
		return allOnes6
	}
	return zero6
}

func symbolZVec(s pauli.Symbol) Vec6 {
	if s == pauli.Z || s == pauli.Y {
		return allOnes6
	}
	return zero6
}

// action computes mx^x * my^y, the GF(2) matrix implementing a single
// automorphism group element.
func action(cm CodeMeasurement, a isa.AutomorphismData) Mat6 {
	return mulMat(pow(cm.Mx, int(a.X)), pow(cm.My, int(a.Y)))
}

// Measures computes the physical 12-qubit PauliString support of the
// native measurement's conjugated logical operator on the given code: the
// X-support on qubits 0-5 and 6-11 transforms by the automorphism's
// action matrix, the Z-support on the same two halves transforms by the
// inverse's action matrix, matching the code's block-diagonal
// diag(aut,aut,inv,inv) representation on the stacked [x1;x7;z1;z7]
// vector.
func Measures(code Code, nm NativeMeasurement) pauli.String {
	cm := MeasurementFor(code)
	aut := action(cm, nm.Automorphism)
	inv := action(cm, nm.Automorphism.Inv())

	x1 := mulVec(aut, symbolXVec(nm.Logical.P1))
	x7 := mulVec(aut, symbolXVec(nm.Logical.P7))
	z1 := mulVec(inv, symbolZVec(nm.Logical.P1))
	z7 := mulVec(inv, symbolZVec(nm.Logical.P7))

	var v uint32
	for i := 0; i < 6; i++ {
		if x1[i] != 0 {
			v |= 1 << uint(i)
		}
		if x7[i] != 0 {
			v |= 1 << uint(i+6)
		}
		if z1[i] != 0 {
			v |= 1 << uint(i+12)
		}
		if z7[i] != 0 {
			v |= 1 << uint(i+18)
		}
	}
	return pauli.FromValue(v)
}
