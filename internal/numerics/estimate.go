package numerics

import (
	"bicycle/internal/arch"
	"bicycle/internal/fixedpoint"
	"bicycle/internal/isa"
	"bicycle/internal/program"

	"github.com/pkg/errors"
)

// Estimator walks a stream of operation-groups (the compiled Operations
// for one PBC operation at a time) and accumulates, per block, a
// measurement depth and a cumulative time, plus a running physical error
// budget across the whole architecture.
type Estimator struct {
	Model Model

	depths []uint64
	times  []uint64

	TInjections       uint64
	Automorphisms     uint64
	Measurements      uint64
	JointMeasurements uint64
	Idles             uint64
	TotalError        fixedpoint.Error
}

// NewEstimator starts a fresh accumulation over an architecture with the
// given block count, under model m.
func NewEstimator(m Model, a arch.PathArchitecture) *Estimator {
	return &Estimator{
		Model:      m,
		depths:     make([]uint64, a.DataBlocks),
		times:      make([]uint64, a.DataBlocks),
		TotalError: fixedpoint.ErrorZero,
	}
}

// Step processes one operation-group: every Operation compiled from a
// single PbcOperation.
func (est *Estimator) Step(group []program.Operation) error {
	for _, op := range group {
		if len(op) == 0 {
			continue
		}
		first := op[0].Instr

		switch instr := first.(type) {
		case isa.TGate:
			est.TInjections++
		case isa.Automorphism:
			est.Automorphisms += instr.Data.NrGenerators()
		case isa.Measure:
			est.Measurements++
		case isa.JointMeasure:
			est.JointMeasurements++
		default:
			return errors.Errorf("numerics: %s cannot appear in a compiled stream", first.Kind())
		}

		var maxDepth, maxTime uint64
		for _, bi := range op {
			if est.depths[bi.Block] > maxDepth {
				maxDepth = est.depths[bi.Block]
			}
			if est.times[bi.Block] > maxTime {
				maxTime = est.times[bi.Block]
			}
		}

		for _, bi := range op {
			switch bi.Instr.(type) {
			case isa.Measure, isa.JointMeasure:
				est.depths[bi.Block] = maxDepth + 1
			default:
				est.depths[bi.Block] = maxDepth
			}

			slack := maxTime - est.times[bi.Block]
			cycles, err := est.Model.InstructionTiming(bi.Instr)
			if err != nil {
				return err
			}
			est.TotalError = est.TotalError.Add(est.Model.IdlingError(slack))
			est.Idles += ceilDiv(slack, est.Model.Timing.Idle)
			est.times[bi.Block] = maxTime + cycles
		}

		errRate, err := est.Model.InstructionError(first)
		if err != nil {
			return err
		}
		est.TotalError = est.TotalError.Add(errRate)
	}
	return nil
}

// maxUint64 returns the largest value across a slice, or 0 for an empty
// architecture.
func maxUint64(vs []uint64) uint64 {
	var m uint64
	for _, v := range vs {
		if v > m {
			m = v
		}
	}
	return m
}

// Row produces this estimator's current totals as a reportable row.
func (est *Estimator) Row() OutputRow {
	return OutputRow{
		TInjections:       est.TInjections,
		Automorphisms:     est.Automorphisms,
		Measurements:      est.Measurements,
		JointMeasurements: est.JointMeasurements,
		Idles:             est.Idles,
		MaxDepth:          maxUint64(est.depths),
		MaxTime:           maxUint64(est.times),
		TotalError:        est.TotalError,
	}
}
