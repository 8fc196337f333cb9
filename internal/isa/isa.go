package isa

import "bicycle/internal/pauli"

// Kind tags the concrete variant of a BicycleISA instruction, matching the
// external JSON tag used for serialized programs.
type Kind string

const (
	KindSyndromeCycle      Kind = "SyndromeCycle"
	KindCSSInitZero        Kind = "CSSInitZero"
	KindCSSInitPlus        Kind = "CSSInitPlus"
	KindDestructiveZ       Kind = "DestructiveZ"
	KindDestructiveX       Kind = "DestructiveX"
	KindAutomorphism       Kind = "Automorphism"
	KindMeasure            Kind = "Measure"
	KindJointMeasure       Kind = "JointMeasure"
	KindParallelMeasure    Kind = "ParallelMeasure"
	KindJointBellInit      Kind = "JointBellInit"
	KindJointTransversalCX Kind = "JointTransversalCX"
	KindInitT              Kind = "InitT"
	KindTGate              Kind = "TGate"
)

// Instruction is the closed set of Bicycle ISA operations a single code
// block (or pair of adjacent blocks, for the Joint* variants) can execute
// in one timestep. All concrete variants are plain comparable structs, so
// Instruction values support == directly.
type Instruction interface {
	Kind() Kind
	isInstruction()
}

type baseInstruction struct{}

func (baseInstruction) isInstruction() {}

// SyndromeCycle runs one round of stabilizer measurement with no logical
// effect.
type SyndromeCycle struct{ baseInstruction }

func (SyndromeCycle) Kind() Kind { return KindSyndromeCycle }

// CSSInitZero initializes a block in the logical |0> state.
type CSSInitZero struct{ baseInstruction }

func (CSSInitZero) Kind() Kind { return KindCSSInitZero }

// CSSInitPlus initializes a block in the logical |+> state.
type CSSInitPlus struct{ baseInstruction }

func (CSSInitPlus) Kind() Kind { return KindCSSInitPlus }

// DestructiveZ measures out a block destructively in the Z basis.
type DestructiveZ struct{ baseInstruction }

func (DestructiveZ) Kind() Kind { return KindDestructiveZ }

// DestructiveX measures out a block destructively in the X basis.
type DestructiveX struct{ baseInstruction }

func (DestructiveX) Kind() Kind { return KindDestructiveX }

// Automorphism applies a shift automorphism of the code to the block.
type Automorphism struct {
	baseInstruction
	Data AutomorphismData
}

func (Automorphism) Kind() Kind { return KindAutomorphism }

// Measure performs a single-block two-pivot logical Pauli measurement.
type Measure struct {
	baseInstruction
	Bases TwoBases
}

func (Measure) Kind() Kind { return KindMeasure }

// JointMeasure performs a joint logical Pauli measurement between two
// adjacent blocks.
type JointMeasure struct {
	baseInstruction
	Bases TwoBases
}

func (JointMeasure) Kind() Kind { return KindJointMeasure }

// ParallelMeasure measures a single basis (X or Z only) in parallel across
// a block's data qubits.
type ParallelMeasure struct {
	baseInstruction
	Basis pauli.Symbol
}

func (ParallelMeasure) Kind() Kind { return KindParallelMeasure }

// JointBellInit initializes a Bell pair spanning two adjacent blocks.
type JointBellInit struct{ baseInstruction }

func (JointBellInit) Kind() Kind { return KindJointBellInit }

// JointTransversalCX applies a transversal CNOT between two adjacent
// blocks.
type JointTransversalCX struct{ baseInstruction }

func (JointTransversalCX) Kind() Kind { return KindJointTransversalCX }

// InitT injects a logical |T> magic state.
type InitT struct{ baseInstruction }

func (InitT) Kind() Kind { return KindInitT }

// TGate consumes an injected |T> state to apply a (possibly primed or
// adjoint) T rotation to the given basis.
type TGate struct {
	baseInstruction
	Basis   pauli.Symbol
	Primed  bool
	Adjoint bool
}

func (TGate) Kind() Kind { return KindTGate }

// NewTGate validates that basis is not identity.
func NewTGate(basis pauli.Symbol, primed, adjoint bool) (TGate, error) {
	if basis == pauli.I {
		return TGate{}, errNotIdentityBasis
	}
	return TGate{Basis: basis, Primed: primed, Adjoint: adjoint}, nil
}

// NewParallelMeasure validates that basis is X or Z.
func NewParallelMeasure(basis pauli.Symbol) (ParallelMeasure, error) {
	if basis != pauli.X && basis != pauli.Z {
		return ParallelMeasure{}, errParallelMeasureBasis
	}
	return ParallelMeasure{Basis: basis}, nil
}
