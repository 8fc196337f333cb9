package compile

import (
	"reflect"
	"testing"

	"bicycle/internal/arch"
	"bicycle/internal/fixedpoint"
	"bicycle/internal/isa"
	"bicycle/internal/nativemeas"
	"bicycle/internal/pauli"
	"bicycle/internal/program"
	"bicycle/internal/synthesis"
)

// buildTable runs the full BFS for the gross code. Expensive, but this
// suite is meant to be read rather than run under time pressure, matching
// the convention established in internal/synthesis's own tests.
func buildTable(t *testing.T) *synthesis.CompleteMeasurementTable {
	t.Helper()
	b := synthesis.NewMeasurementTableBuilder(nativemeas.Gross)
	b.Build()
	table, err := b.Complete()
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	return table
}

func oneBlockBasis() []pauli.Symbol {
	return []pauli.Symbol{pauli.X, pauli.Z, pauli.I, pauli.I, pauli.I, pauli.I, pauli.I, pauli.I, pauli.I, pauli.I, pauli.I}
}

func twoBlockBasis() []pauli.Symbol {
	out := []pauli.Symbol{pauli.X, pauli.Z}
	for i := 0; i < 9; i++ {
		out = append(out, pauli.I)
	}
	out = append(out, pauli.Z, pauli.X)
	for i := 0; i < 9; i++ {
		out = append(out, pauli.I)
	}
	return out
}

func threeBlockBasis() []pauli.Symbol {
	out := []pauli.Symbol{pauli.X, pauli.Y}
	for i := 0; i < 9; i++ {
		out = append(out, pauli.I)
	}
	out = append(out, pauli.Z, pauli.X)
	for i := 0; i < 9; i++ {
		out = append(out, pauli.I)
	}
	out = append(out, pauli.Z, pauli.Y)
	for i := 0; i < 9; i++ {
		out = append(out, pauli.I)
	}
	return out
}

func countJointMeasures(ops []program.Operation) int {
	n := 0
	for _, op := range ops {
		if len(op) == 2 {
			if _, ok := op[0].Instr.(isa.JointMeasure); ok {
				n++
			}
		}
	}
	return n
}

// Scenario 1 (spec.md section 8): a single-block measurement never needs a
// JointMeasure.
func TestCompileMeasurementSingleBlockNoJoint(t *testing.T) {
	table := buildTable(t)
	ops, err := CompileMeasurement(arch.PathArchitecture{DataBlocks: 1}, table, oneBlockBasis())
	if err != nil {
		t.Fatalf("CompileMeasurement: %v", err)
	}
	if len(ops) == 0 {
		t.Fatalf("expected a non-empty compiled stream")
	}
	if countJointMeasures(ops) != 0 {
		t.Errorf("a single block should never need a JointMeasure")
	}
}

// Scenario 2: a two-block measurement needs at least one JointMeasure to
// weave the two blocks' pivots together.
func TestCompileMeasurementTwoBlocksHasJoint(t *testing.T) {
	table := buildTable(t)
	ops, err := CompileMeasurement(arch.PathArchitecture{DataBlocks: 2}, table, twoBlockBasis())
	if err != nil {
		t.Fatalf("CompileMeasurement: %v", err)
	}
	if countJointMeasures(ops) < 1 {
		t.Errorf("expected at least one JointMeasure across two blocks")
	}
}

// Scenario 3: a three-block measurement needs at least two JointMeasure
// edges to span all three pivots.
func TestCompileMeasurementThreeBlocksAtLeastTwoJoint(t *testing.T) {
	table := buildTable(t)
	ops, err := CompileMeasurement(arch.PathArchitecture{DataBlocks: 3}, table, threeBlockBasis())
	if err != nil {
		t.Fatalf("CompileMeasurement: %v", err)
	}
	if countJointMeasures(ops) < 2 {
		t.Errorf("expected at least two JointMeasure edges across three blocks, got %d", countJointMeasures(ops))
	}
}

// Scenario 4: a rotation emits TGate steps on the final (magic) block,
// bracketed by GHZ prep and uncompute. The angle is pi/4 exactly rather
// than the spec's illustrative 0.125, so the small-angle shortcut fires
// and this test needs no external gridsynth binary.
func TestCompileRotationEmitsTGatesOnMagicBlock(t *testing.T) {
	table := buildTable(t)
	basis := []pauli.Symbol{pauli.X, pauli.X}
	for i := 0; i < 9; i++ {
		basis = append(basis, pauli.I)
	}
	basis = append(basis, pauli.Y)
	angle := fixedpoint.MustAngleFromString("0.78539816339744830961566084582")
	accuracy := fixedpoint.MustErrorFromString("1e-6")

	ops, err := CompileRotation(arch.PathArchitecture{DataBlocks: 2}, table, basis, angle, accuracy)
	if err != nil {
		t.Fatalf("CompileRotation: %v", err)
	}

	// The magic block sees exactly one weaving phase (the prep GHZ, step
	// 4): the later "uncompute" step emits a lone Measure(Z,I) readout on
	// the magic block, not a second JointMeasure edge.
	magic := 1
	firstTGate, lastTGate := -1, -1
	firstJoint := -1
	lastMagicMeasure := -1
	for i, op := range ops {
		if len(op) == 1 {
			if _, ok := op[0].Instr.(isa.TGate); ok && op[0].Block == magic {
				if firstTGate == -1 {
					firstTGate = i
				}
				lastTGate = i
			}
			if _, ok := op[0].Instr.(isa.Measure); ok && op[0].Block == magic {
				lastMagicMeasure = i
			}
		}
		if jointMeasureTouches(op, magic) && firstJoint == -1 {
			firstJoint = i
		}
	}
	if firstTGate == -1 {
		t.Fatalf("expected at least one TGate on the magic block %d", magic)
	}
	if firstJoint == -1 {
		t.Fatalf("expected at least one JointMeasure touching the magic block")
	}
	if firstJoint >= firstTGate {
		t.Errorf("GHZ weaving touching the magic block must precede its TGate injection")
	}
	if lastMagicMeasure <= lastTGate {
		t.Errorf("the magic block's uncompute readout must follow its TGate injection")
	}
}

func jointMeasureTouches(op program.Operation, block int) bool {
	for _, bi := range op {
		if bi.Block != block {
			continue
		}
		if _, ok := bi.Instr.(isa.JointMeasure); ok {
			return true
		}
	}
	return false
}

func TestCompileMeasurementBlockIndicesInRange(t *testing.T) {
	table := buildTable(t)
	ops, err := CompileMeasurement(arch.PathArchitecture{DataBlocks: 3}, table, threeBlockBasis())
	if err != nil {
		t.Fatalf("CompileMeasurement: %v", err)
	}
	for _, op := range ops {
		for _, bi := range op {
			if bi.Block < 0 || bi.Block >= 3 {
				t.Fatalf("block index %d out of range [0,3)", bi.Block)
			}
		}
		if len(op) == 2 {
			if _, ok := op[0].Instr.(isa.JointMeasure); ok {
				diff := op[0].Block - op[1].Block
				if diff != 1 && diff != -1 {
					t.Errorf("JointMeasure op spans non-adjacent blocks %d,%d", op[0].Block, op[1].Block)
				}
			}
		}
	}
}

func TestCompileMeasurementDeterministic(t *testing.T) {
	table := buildTable(t)
	a := arch.PathArchitecture{DataBlocks: 2}
	ops1, err := CompileMeasurement(a, table, twoBlockBasis())
	if err != nil {
		t.Fatalf("CompileMeasurement: %v", err)
	}
	ops2, err := CompileMeasurement(a, table, twoBlockBasis())
	if err != nil {
		t.Fatalf("CompileMeasurement: %v", err)
	}
	if !reflect.DeepEqual(ops1, ops2) {
		t.Fatalf("two compilations of the same input diverged")
	}
}

func TestExtendBasisPadsToMultipleOfEleven(t *testing.T) {
	got := extendBasis([]pauli.Symbol{pauli.X, pauli.Z})
	if len(got)%qubitsPerBlock != 0 {
		t.Fatalf("extendBasis length %d is not a multiple of %d", len(got), qubitsPerBlock)
	}
	if got[0] != pauli.X || got[1] != pauli.Z {
		t.Fatalf("extendBasis must preserve the original prefix, got %v", got)
	}
	for _, s := range got[2:] {
		if s != pauli.I {
			t.Fatalf("extendBasis padding must be identity, got %v", got)
		}
	}
}

func TestExtendBasisNeverEmpty(t *testing.T) {
	got := extendBasis(nil)
	if len(got) != qubitsPerBlock {
		t.Fatalf("extendBasis(nil) = %v, want %d identities", got, qubitsPerBlock)
	}
}

func TestGhzWeaveEvenThenOddEdges(t *testing.T) {
	ops := ghzWeave(0, 4)
	want := [][2]int{{0, 1}, {2, 3}, {1, 2}, {3, 4}}
	if len(ops) != len(want) {
		t.Fatalf("got %d weave ops, want %d", len(ops), len(want))
	}
	for i, op := range ops {
		if op[0].Block != want[i][0] || op[1].Block != want[i][1] {
			t.Errorf("edge %d: got (%d,%d), want (%d,%d)", i, op[0].Block, op[1].Block, want[i][0], want[i][1])
		}
	}
}

func TestGhzWeaveSingleBlockRangeIsEmpty(t *testing.T) {
	ops := ghzWeave(2, 2)
	if len(ops) != 0 {
		t.Fatalf("a single-block range should weave nothing, got %v", ops)
	}
}

func TestSelectBasisChangerIdentityWhenAlreadyExpected(t *testing.T) {
	c, err := selectBasisChanger(pauli.Y, pauli.Y)
	if err != nil {
		t.Fatal(err)
	}
	if c.ChangePauli(pauli.X) != pauli.X || c.ChangePauli(pauli.Y) != pauli.Y || c.ChangePauli(pauli.Z) != pauli.Z {
		t.Errorf("expected identity changer, got %+v", c)
	}
}

func TestSelectBasisChangerSwapsExpectedAndPivot(t *testing.T) {
	c, err := selectBasisChanger(pauli.Y, pauli.X)
	if err != nil {
		t.Fatal(err)
	}
	if c.ChangePauli(pauli.Y) != pauli.X || c.ChangePauli(pauli.X) != pauli.Y || c.ChangePauli(pauli.Z) != pauli.Z {
		t.Errorf("expected y<->x swap fixing z, got %+v", c)
	}
}

func TestSelectBasisChangerForbidsZPivotY(t *testing.T) {
	if _, err := selectBasisChanger(pauli.Z, pauli.Y); err == nil {
		t.Fatalf("expected (Z,Y) to be rejected as unreachable")
	}
}

func TestCompileMeasurementRejectsEmptyBasis(t *testing.T) {
	table := buildTable(t)
	if _, err := CompileMeasurement(arch.PathArchitecture{DataBlocks: 1}, table, nil); err == nil {
		t.Fatalf("expected an error for an empty basis")
	}
}
