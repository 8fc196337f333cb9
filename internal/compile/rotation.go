package compile

import (
	"bicycle/internal/arch"
	"bicycle/internal/basischange"
	"bicycle/internal/fixedpoint"
	"bicycle/internal/isa"
	"bicycle/internal/pauli"
	"bicycle/internal/program"
	"bicycle/internal/smallangle"
	"bicycle/internal/synthesis"

	"github.com/pkg/errors"
)

// CompileRotation realizes exp(i*angle*basis), accurate to accuracy, on
// architecture. The final block in the extended basis is the T-injection
// ("magic") block: its pivot is brought through a GHZ chain spanning every
// non-trivial block and the magic block itself, the synthesized rotation
// is injected there as a run of TGates, and the chain is uncomputed.
func CompileRotation(architecture arch.PathArchitecture, table *synthesis.CompleteMeasurementTable, basis []pauli.Symbol, angle fixedpoint.Angle, accuracy fixedpoint.Error) ([]program.Operation, error) {
	plans, err := planBlocks(table, basis)
	if err != nil {
		return nil, err
	}
	n := len(plans)
	if n != architecture.DataBlocks {
		return nil, errors.Errorf("compile: basis spans %d blocks but architecture has %d", n, architecture.DataBlocks)
	}
	magic := n - 1

	changers := make([]basischange.BasisChanger, n)
	for b, plan := range plans {
		expected := pauli.Y
		if b == magic {
			expected = pauli.X
		}
		c, err := blockChanger(plan, expected)
		if err != nil {
			return nil, errors.Wrapf(err, "compile: block %d basis-change selection", b)
		}
		changers[b] = c
	}

	var ops []program.Operation

	// 1. pre-rotations
	pre, err := emitRotationsAllBlocks(plans)
	if err != nil {
		return nil, err
	}
	ops = append(ops, pre...)

	// 2. prepare blocks 0..N-2 with Measure(X,I), block N-1 with Measure(Y,I)
	for b := 0; b < n; b++ {
		prep := x1I
		if b == magic {
			prep = y1I
		}
		changed, err := applyChange(changers[b], single(b, isa.Measure{Bases: prep}))
		if err != nil {
			return nil, errors.Wrapf(err, "compile: block %d prep", b)
		}
		ops = append(ops, changed...)
	}

	// 3. base measurement, unchanged
	ops = append(ops, emitBaseMeasurements(plans)...)

	// 4. GHZ weaving from the first non-trivial block through the magic block
	firstNonTrivial := magic
	if first, _, any := nonTrivialRange(plans); any {
		firstNonTrivial = first
	}
	ops = append(ops, ghzWeave(firstNonTrivial, magic)...)

	// 5. small-angle injection on the magic block, basis-changed
	rotations, _, err := smallangle.SynthesizeAngle(angle, accuracy)
	if err != nil {
		return nil, errors.Wrap(err, "compile: synthesizing rotation angle")
	}
	for _, r := range rotations {
		tg, err := isa.NewTGate(r.Basis, false, r.Dagger)
		if err != nil {
			return nil, errors.Wrap(err, "compile: building injected TGate")
		}
		changed, err := applyChange(changers[magic], single(magic, tg))
		if err != nil {
			return nil, errors.Wrap(err, "compile: basis-changing injected TGate")
		}
		ops = append(ops, changed...)
	}

	// 6. uncompute GHZ
	for b := 0; b < magic; b++ {
		readout := y1I
		if plans[b].trivial {
			readout = x1I
		}
		changed, err := applyChange(changers[b], single(b, isa.Measure{Bases: readout}))
		if err != nil {
			return nil, errors.Wrapf(err, "compile: block %d uncompute", b)
		}
		ops = append(ops, changed...)
	}
	changedMagic, err := applyChange(changers[magic], single(magic, isa.Measure{Bases: z1I}))
	if err != nil {
		return nil, errors.Wrap(err, "compile: magic block uncompute")
	}
	ops = append(ops, changedMagic...)

	// 7. post-rotations, mirroring step 1
	post, err := emitRotationsAllBlocks(plans)
	if err != nil {
		return nil, err
	}
	ops = append(ops, post...)

	validateOperations(architecture, ops)
	return ops, nil
}
