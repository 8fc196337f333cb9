// Package numerics estimates the physical resources (wall-clock cycles,
// accumulated logical error) a compiled Bicycle ISA program consumes
// under one of several named noise/timing models.
package numerics

import (
	"bicycle/internal/fixedpoint"
	"bicycle/internal/isa"

	"github.com/pkg/errors"
)

// TimingModel gives the cycle cost of each instruction kind that
// contributes wall-clock time.
type TimingModel struct {
	Idle           uint64
	Shift          uint64
	InModule       uint64
	IntermoduleOp  uint64
	TInjection     uint64
}

// ErrorModel gives the per-instruction physical error probability for
// each instruction kind.
type ErrorModel struct {
	Idle          fixedpoint.Error
	Shift         fixedpoint.Error
	InModule      fixedpoint.Error
	IntermoduleOp fixedpoint.Error
	TInjection    fixedpoint.Error
}

// Model names a complete noise/timing profile for one code at one
// physical error rate target.
type Model struct {
	Name   string
	Timing TimingModel
	Error  ErrorModel
}

func e(s string) fixedpoint.Error { return fixedpoint.MustErrorFromString(s) }

// GrossSparse is the gross code at a 1e-3 physical error rate.
var GrossSparse = Model{
	Name:   "gross_1e3",
	Timing: TimingModel{Idle: 8, Shift: 12, InModule: 120, IntermoduleOp: 120, TInjection: 351 + 120},
	Error: ErrorModel{
		Idle: e("1.61e-9"), Shift: e("4.01e-7"), InModule: e("1.11e-5"),
		IntermoduleOp: e("2.01e-3"), TInjection: e("2.01e-3"),
	},
}

// GrossPrecise is the gross code at a 1e-4 physical error rate.
var GrossPrecise = Model{
	Name:   "gross_1e4",
	Timing: TimingModel{Idle: 8, Shift: 12, InModule: 120, IntermoduleOp: 120, TInjection: 109 + 120},
	Error: ErrorModel{
		Idle: e("1.44e-15"), Shift: e("6.07e-14"), InModule: e("1.01e-09"),
		IntermoduleOp: e("4.81e-8"), TInjection: e("8.79e-7"),
	},
}

// TwoGrossSparse is the two-gross code at a 1e-3 physical error rate.
var TwoGrossSparse = Model{
	Name:   "two_gross_1e3",
	Timing: TimingModel{Idle: 8, Shift: 12, InModule: 216, IntermoduleOp: 216, TInjection: 2167 + 216},
	Error: ErrorModel{
		Idle: e("8.20e-21"), Shift: e("3.25e-15"), InModule: e("1e-11"),
		IntermoduleOp: e("1e-9"), TInjection: e("2.10e-8"),
	},
}

// TwoGrossPrecise is the two-gross code at a 1e-4 physical error rate.
var TwoGrossPrecise = Model{
	Name:   "two_gross_1e4",
	Timing: TimingModel{Idle: 8, Shift: 12, InModule: 216, IntermoduleOp: 216, TInjection: 407 + 216},
	Error: ErrorModel{
		Idle: e("5.29e-39"), Shift: e("1.34e-37"), InModule: e("1e-20"),
		IntermoduleOp: e("1e-18"), TInjection: e("1e-18"),
	},
}

// FakeSlow has zero physical error (useful for pure-timing studies) but
// the slowest (two-gross 1e-3) timing profile.
var FakeSlow = Model{
	Name:   "fake_slow",
	Timing: TimingModel{Idle: 8, Shift: 12, InModule: 216, IntermoduleOp: 216, TInjection: 2167 + 216},
	Error:  ErrorModel{},
}

// Models lists every named model, in a stable order, for CLI enumeration.
var Models = []Model{GrossSparse, GrossPrecise, TwoGrossSparse, TwoGrossPrecise, FakeSlow}

// ByName looks up a model by its Name field.
func ByName(name string) (Model, error) {
	for _, m := range Models {
		if m.Name == name {
			return m, nil
		}
	}
	return Model{}, errors.Errorf("numerics: unknown model %q", name)
}

// InstructionTiming returns the cycle cost of a single instruction.
func (m Model) InstructionTiming(instr isa.Instruction) (uint64, error) {
	switch instr.(type) {
	case isa.TGate:
		return m.Timing.TInjection, nil
	case isa.Automorphism:
		return 2 * m.Timing.Shift, nil
	case isa.Measure:
		return m.Timing.InModule, nil
	case isa.JointMeasure:
		return m.Timing.IntermoduleOp, nil
	default:
		return 0, errors.Errorf("numerics: %s has no timing model", instr.Kind())
	}
}

// InstructionError returns the physical error probability of a single
// instruction.
func (m Model) InstructionError(instr isa.Instruction) (fixedpoint.Error, error) {
	switch instr.(type) {
	case isa.TGate:
		return m.Error.TInjection, nil
	case isa.Automorphism:
		return m.Error.Shift.MulUint64(2), nil
	case isa.Measure:
		return m.Error.InModule, nil
	case isa.JointMeasure:
		return m.Error.IntermoduleOp, nil
	default:
		return fixedpoint.ErrorZero, errors.Errorf("numerics: %s has no error model", instr.Kind())
	}
}

// IdlingError returns the error accumulated by a block sitting idle for
// the given number of cycles, rounding up to whole syndrome-cycle
// periods.
func (m Model) IdlingError(cycles uint64) fixedpoint.Error {
	if m.Timing.Idle == 0 {
		return fixedpoint.ErrorZero
	}
	idleCycles := ceilDiv(cycles, m.Timing.Idle)
	return m.Error.Idle.MulUint64(idleCycles)
}

func ceilDiv(a, b uint64) uint64 {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
