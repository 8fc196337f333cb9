// Package smallangle turns an arbitrary rotation angle into a sequence of
// single-qubit T-gate rotations interleaved with Clifford corrections, by
// shelling out to an external Matsumoto-Amano gate synthesizer
// ("gridsynth") and parsing its output.
package smallangle

import (
	"bicycle/internal/pauli"

	"github.com/pkg/errors"
)

// SingleRotation is one T (or T-dagger) rotation about the Z or X axis.
type SingleRotation struct {
	Basis  pauli.Symbol // pauli.Z or pauli.X
	Dagger bool
}

// TakeDagger flips the dagger flag in place.
func (r *SingleRotation) TakeDagger() { r.Dagger = !r.Dagger }

// SwitchBasis returns a copy of r with Z and X swapped.
func (r SingleRotation) SwitchBasis() SingleRotation {
	out := r
	if r.Basis == pauli.Z {
		out.Basis = pauli.X
	} else {
		out.Basis = pauli.Z
	}
	return out
}

// CliffordGate is one of the four single-qubit Clifford generators
// produced as synthesis byproduct.
type CliffordGate byte

const (
	CliffordS CliffordGate = iota
	CliffordH
	CliffordX
	CliffordW
)

func (g CliffordGate) String() string {
	switch g {
	case CliffordS:
		return "S"
	case CliffordH:
		return "H"
	case CliffordX:
		return "X"
	case CliffordW:
		return "W"
	default:
		return "?"
	}
}

// ParseCliffordGate converts a single character ('S','H','X','W') into a
// CliffordGate.
func ParseCliffordGate(c byte) (CliffordGate, error) {
	switch c {
	case 'S':
		return CliffordS, nil
	case 'H':
		return CliffordH, nil
	case 'X':
		return CliffordX, nil
	case 'W':
		return CliffordW, nil
	default:
		return 0, errors.Errorf("smallangle: %q is not a Clifford gate letter", c)
	}
}

// compileRots parses a Matsumoto-Amano normal-form gate string (as
// emitted by gridsynth: an optional leading bare T, then a run of HT/SHT
// blocks, then a trailing run of Clifford letters) into the rotation
// sequence and trailing Clifford correction it represents.
//
// The gate string is read left to right against an implicit "currently
// in Z basis" state. A bare leading T rotates directly in Z. Each
// subsequent HT block toggles the active basis (the H conjugates
// Z<->X) and emits one rotation in the new basis. Each SHT block does
// the same, but the S is absorbed: if a rotation has already been
// emitted, S retroactively dags it (S T = T-dagger S up to the global
// phase this compiler doesn't track); if none has, the S is deferred to
// the very end of the trailing Clifford list. Finally, if the basis
// walk ends in X, an extra H is needed to return to Z — consumed from
// the clifford tail if already present there, else prepended.
func compileRots(gates string) ([]SingleRotation, []CliffordGate, error) {
	i := 0
	var rotations []SingleRotation
	zBasis := true
	sStart := false

	if i < len(gates) && gates[i] == 'T' {
		rotations = append(rotations, SingleRotation{Basis: pauli.Z, Dagger: false})
		i++
	}

mainLoop:
	for i < len(gates) {
		switch {
		case i+3 <= len(gates) && gates[i:i+3] == "SHT":
			if len(rotations) > 0 {
				rotations[len(rotations)-1].TakeDagger()
			} else {
				sStart = true
			}
			zBasis = !zBasis
			rotations = append(rotations, nextRotation(zBasis))
			i += 3
		case i+2 <= len(gates) && gates[i:i+2] == "HT":
			zBasis = !zBasis
			rotations = append(rotations, nextRotation(zBasis))
			i += 2
		default:
			break mainLoop
		}
	}
	cliffordStr := gates[i:]
	var cliffords []CliffordGate
	if !zBasis {
		if len(cliffordStr) > 0 && cliffordStr[0] == 'H' {
			cliffordStr = cliffordStr[1:]
		} else {
			cliffords = append(cliffords, CliffordH)
		}
	}
	for j := 0; j < len(cliffordStr); j++ {
		g, err := ParseCliffordGate(cliffordStr[j])
		if err != nil {
			return nil, nil, err
		}
		cliffords = append(cliffords, g)
	}
	if sStart {
		cliffords = append(cliffords, CliffordS)
	}
	return rotations, cliffords, nil
}

func nextRotation(zBasis bool) SingleRotation {
	if zBasis {
		return SingleRotation{Basis: pauli.Z, Dagger: false}
	}
	return SingleRotation{Basis: pauli.X, Dagger: false}
}
