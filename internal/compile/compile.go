// Package compile implements the per-operation compile core: turning a
// single PbcOperation (a destructive Pauli measurement or a small-angle
// Pauli rotation) into the sequence of Bicycle ISA Operations that realize
// it on a PathArchitecture.
package compile

import (
	"fmt"

	"bicycle/internal/arch"
	"bicycle/internal/basischange"
	"bicycle/internal/fixedpoint"
	"bicycle/internal/isa"
	"bicycle/internal/pauli"
	"bicycle/internal/program"
	"bicycle/internal/synthesis"

	"github.com/pkg/errors"
)

const qubitsPerBlock = 11

var (
	x1I = mustTwoBases(pauli.X, pauli.I)
	y1I = mustTwoBases(pauli.Y, pauli.I)
	z1I = mustTwoBases(pauli.Z, pauli.I)
)

func mustTwoBases(p1, p7 pauli.Symbol) isa.TwoBases {
	tb, err := isa.NewTwoBases(p1, p7)
	if err != nil {
		panic(err)
	}
	return tb
}

// Compile dispatches a PbcOperation to CompileMeasurement or
// CompileRotation.
func Compile(op program.PbcOperation, architecture arch.PathArchitecture, table *synthesis.CompleteMeasurementTable, accuracy fixedpoint.Error) ([]program.Operation, error) {
	switch v := op.(type) {
	case program.Measurement:
		return CompileMeasurement(architecture, table, v.BasisPaulis)
	case program.Rotation:
		return CompileRotation(architecture, table, v.BasisPaulis, v.Angle, accuracy)
	default:
		return nil, errors.Errorf("compile: unknown PbcOperation variant %T", op)
	}
}

// blockPlan is the result of common preprocessing for one 11-qubit block
// slice: either trivial (identity on all data qubits) or resolved to a
// decomposition via the synthesis table's min_data search.
type blockPlan struct {
	trivial bool
	impl    synthesis.MeasurementImpl
	pivot   pauli.Symbol
}

// extendBasis pads basis with Pauli.I until its length is a positive
// multiple of 11.
func extendBasis(basis []pauli.Symbol) []pauli.Symbol {
	out := append([]pauli.Symbol(nil), basis...)
	for len(out) == 0 || len(out)%qubitsPerBlock != 0 {
		out = append(out, pauli.I)
	}
	return out
}

// planBlocks extends basis, slices it into per-block 11-Pauli chunks, and
// resolves each non-trivial chunk through the synthesis table.
func planBlocks(table *synthesis.CompleteMeasurementTable, basis []pauli.Symbol) ([]blockPlan, error) {
	if len(basis) == 0 {
		return nil, errors.New("compile: basis must not be empty")
	}
	extended := extendBasis(basis)
	n := len(extended) / qubitsPerBlock
	plans := make([]blockPlan, n)
	for b := 0; b < n; b++ {
		slice := extended[b*qubitsPerBlock : (b+1)*qubitsPerBlock]
		full := make([]pauli.Symbol, 0, 12)
		full = append(full, pauli.I)
		full = append(full, slice...)
		p, err := pauli.FromPauliSlice(full)
		if err != nil {
			return nil, errors.Wrapf(err, "compile: encoding block %d", b)
		}
		if !p.HasLogicalSupport() {
			plans[b] = blockPlan{trivial: true}
			continue
		}
		_, impl, err := table.MinData(p)
		if err != nil {
			return nil, errors.Wrapf(err, "compile: decomposing block %d", b)
		}
		plans[b] = blockPlan{impl: impl, pivot: impl.Measures.GetPauli(0)}
	}
	return plans, nil
}

// nonTrivialRange returns the tightest [first, last] interval covering
// every non-trivial block, and whether any exist.
func nonTrivialRange(plans []blockPlan) (first, last int, any bool) {
	first, last = -1, -1
	for i, p := range plans {
		if p.trivial {
			continue
		}
		if first == -1 {
			first = i
		}
		last = i
	}
	return first, last, first != -1
}

func single(block int, instr isa.Instruction) program.Operation {
	return program.Operation{{Block: block, Instr: instr}}
}

// jointZ builds the length-2 JointMeasure(Z,I) op shared by both blocks of
// a GHZ weaving edge.
func jointZ(a, b int) program.Operation {
	return program.Operation{
		{Block: a, Instr: isa.JointMeasure{Bases: z1I}},
		{Block: b, Instr: isa.JointMeasure{Bases: z1I}},
	}
}

// ghzWeave emits JointMeasure(Z,I) pairs on adjacent blocks across
// [first, last], even-indexed edges first, then odd-indexed edges.
func ghzWeave(first, last int) []program.Operation {
	var ops []program.Operation
	for r := first; r < last; r += 2 {
		ops = append(ops, jointZ(r, r+1))
	}
	for r := first + 1; r < last; r += 2 {
		ops = append(ops, jointZ(r, r+1))
	}
	return ops
}

// rotationInstructions expands one NativeMeasurementImpl used as a
// rotation conjugation into its five-step ISA sequence.
func rotationInstructions(nmi synthesis.NativeMeasurementImpl) ([]isa.Instruction, error) {
	pivot := nmi.Measures.GetPauli(0)
	p0, p1, ok := pivot.Anticommuting()
	if !ok {
		return nil, errors.New("compile: a native rotation's pivot Pauli must not be identity")
	}
	m0, err := isa.NewTwoBases(p0, pauli.I)
	if err != nil {
		return nil, errors.Wrap(err, "compile: building rotation's first flank measurement")
	}
	m1, err := isa.NewTwoBases(p1, pauli.I)
	if err != nil {
		return nil, errors.Wrap(err, "compile: building rotation's second flank measurement")
	}
	logical := nmi.Native.Implementation()
	return []isa.Instruction{
		isa.Measure{Bases: m0},
		logical[0],
		logical[1],
		logical[2],
		isa.Measure{Bases: m1},
	}, nil
}

// expandRotations emits the five-step expansion of every rotation in
// rotations, in listed order, on block.
func expandRotations(block int, rotations []synthesis.NativeMeasurementImpl) ([]program.Operation, error) {
	var ops []program.Operation
	for _, r := range rotations {
		instrs, err := rotationInstructions(r)
		if err != nil {
			return nil, err
		}
		for _, instr := range instrs {
			ops = append(ops, single(block, instr))
		}
	}
	return ops, nil
}

// emitRotationsAllBlocks emits pre- (or, called again, post-) rotations for
// every non-trivial block, in block order.
func emitRotationsAllBlocks(plans []blockPlan) ([]program.Operation, error) {
	var ops []program.Operation
	for b, plan := range plans {
		if plan.trivial {
			continue
		}
		rots, err := expandRotations(b, plan.impl.Rotations)
		if err != nil {
			return nil, err
		}
		ops = append(ops, rots...)
	}
	return ops, nil
}

// emitBaseMeasurements emits, for every non-trivial block, its base
// measurement's three-step native implementation without basis-change.
func emitBaseMeasurements(plans []blockPlan) []program.Operation {
	var ops []program.Operation
	for b, plan := range plans {
		if plan.trivial {
			continue
		}
		for _, instr := range plan.impl.Base.Native.Implementation() {
			ops = append(ops, single(b, instr))
		}
	}
	return ops
}

// selectBasisChanger implements the basis-change selection table: identity
// when the expected and actual pivot Paulis already agree, otherwise the
// transposition swapping them while fixing the third symbol. (Z, Y) is
// asserted unreachable rather than silently defaulted, since min_data's
// pivot preference order (X, Z, Y) combined with measurement always
// expecting Y and rotation's magic block always expecting X together rule
// it out.
func selectBasisChanger(pExpected, pPivot pauli.Symbol) (basischange.BasisChanger, error) {
	if pExpected == pPivot {
		return basischange.Identity, nil
	}
	if pExpected == pauli.Z && pPivot == pauli.Y {
		return basischange.BasisChanger{}, errors.New("compile: basis-change selection table has no entry for (expected Z, pivot Y)")
	}
	third := thirdSymbol(pExpected, pPivot)
	x := changedSymbol(pauli.X, pExpected, pPivot, third)
	y := changedSymbol(pauli.Y, pExpected, pPivot, third)
	z := changedSymbol(pauli.Z, pExpected, pPivot, third)
	return basischange.New(x, y, z)
}

func changedSymbol(s, pExpected, pPivot, third pauli.Symbol) pauli.Symbol {
	switch s {
	case pExpected:
		return pPivot
	case pPivot:
		return pExpected
	default:
		return third
	}
}

func thirdSymbol(a, b pauli.Symbol) pauli.Symbol {
	for _, s := range [3]pauli.Symbol{pauli.X, pauli.Y, pauli.Z} {
		if s != a && s != b {
			return s
		}
	}
	panic("compile: no third Pauli symbol distinct from both arguments")
}

// blockChanger resolves the basis-changer for one block: identity for a
// trivial block (nothing was measured differently there), otherwise the
// table lookup keyed by the block's own pivot Pauli.
func blockChanger(plan blockPlan, pExpected pauli.Symbol) (basischange.BasisChanger, error) {
	if plan.trivial {
		return basischange.Identity, nil
	}
	return selectBasisChanger(pExpected, plan.pivot)
}

// applyChange basis-changes every instruction of op.
func applyChange(c basischange.BasisChanger, op program.Operation) (program.Operation, error) {
	out := make(program.Operation, len(op))
	for i, bi := range op {
		instr, err := c.ChangeISA(bi.Instr)
		if err != nil {
			return nil, err
		}
		out[i] = program.BlockInstruction{Block: bi.Block, Instr: instr}
	}
	return out, nil
}

// validateOperations panics if any emitted op is not realizable on
// architecture: a compiler bug, not a recoverable condition.
func validateOperations(architecture arch.PathArchitecture, ops []program.Operation) {
	for _, op := range ops {
		indices := make([]int, len(op))
		for i, bi := range op {
			indices[i] = bi.Block
		}
		if !architecture.ValidateOperation(indices) {
			panic(fmt.Sprintf("compile: operation %s is not realizable on this architecture", op.String()))
		}
	}
}
