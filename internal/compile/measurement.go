package compile

import (
	"bicycle/internal/arch"
	"bicycle/internal/basischange"
	"bicycle/internal/isa"
	"bicycle/internal/pauli"
	"bicycle/internal/program"
	"bicycle/internal/synthesis"

	"github.com/pkg/errors"
)

// CompileMeasurement realizes a destructive Pauli measurement of basis on
// architecture, decomposing each block's contribution through table.
func CompileMeasurement(architecture arch.PathArchitecture, table *synthesis.CompleteMeasurementTable, basis []pauli.Symbol) ([]program.Operation, error) {
	plans, err := planBlocks(table, basis)
	if err != nil {
		return nil, err
	}
	n := len(plans)
	if n != architecture.DataBlocks {
		return nil, errors.Errorf("compile: basis spans %d blocks but architecture has %d", n, architecture.DataBlocks)
	}

	changers := make([]basischange.BasisChanger, n)
	for b, plan := range plans {
		c, err := blockChanger(plan, pauli.Y)
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

	// 2. prepare every block in |+>, basis-changed
	for b := 0; b < n; b++ {
		changed, err := applyChange(changers[b], single(b, isa.Measure{Bases: x1I}))
		if err != nil {
			return nil, errors.Wrapf(err, "compile: block %d prep", b)
		}
		ops = append(ops, changed...)
	}

	// 3. base measurement, unchanged
	ops = append(ops, emitBaseMeasurements(plans)...)

	// 4. GHZ weaving over the non-trivial interval
	if first, last, any := nonTrivialRange(plans); any {
		ops = append(ops, ghzWeave(first, last)...)
	}

	// 5. per-block readout, basis-changed
	for b, plan := range plans {
		readout := y1I
		if plan.trivial {
			readout = x1I
		}
		changed, err := applyChange(changers[b], single(b, isa.Measure{Bases: readout}))
		if err != nil {
			return nil, errors.Wrapf(err, "compile: block %d readout", b)
		}
		ops = append(ops, changed...)
	}

	// 6. post-rotations, mirroring step 1
	post, err := emitRotationsAllBlocks(plans)
	if err != nil {
		return nil, err
	}
	ops = append(ops, post...)

	validateOperations(architecture, ops)
	return ops, nil
}
