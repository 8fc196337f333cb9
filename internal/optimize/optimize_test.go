package optimize

import (
	"testing"

	"bicycle/internal/isa"
	"bicycle/internal/pauli"
	"bicycle/internal/program"
)

func meas(block int, p1, p7 pauli.Symbol) program.Operation {
	tb, err := isa.NewTwoBases(p1, p7)
	if err != nil {
		panic(err)
	}
	return program.Operation{{Block: block, Instr: isa.Measure{Bases: tb}}}
}

func TestRemoveDuplicateMeasurementsDropsImmediateRepeat(t *testing.T) {
	m := meas(3, pauli.X, pauli.Z)
	chunks := [][]program.Operation{{m}, {m}}

	got := RemoveDuplicateMeasurementsChunked(chunks)

	if len(got) != 2 {
		t.Fatalf("expected 2 chunks preserved, got %d", len(got))
	}
	if len(got[0]) != 1 {
		t.Errorf("first chunk should keep its operation, got %d", len(got[0]))
	}
	if len(got[1]) != 0 {
		t.Errorf("second chunk's repeated measurement should be dropped, got %d ops", len(got[1]))
	}
}

func TestRemoveDuplicateMeasurementsKeepsDifferentBlock(t *testing.T) {
	m := meas(3, pauli.X, pauli.Z)
	other := meas(0, pauli.X, pauli.Z)
	chunks := [][]program.Operation{{m}, {other}, {m}}

	got := RemoveDuplicateMeasurementsChunked(chunks)

	if len(got[0]) != 1 || len(got[1]) != 1 || len(got[2]) != 0 {
		t.Fatalf("expected block 0's measurement kept and block 3's repeat dropped (a different block resets nothing), got %v", got)
	}
}

func TestRemoveDuplicateMeasurementsKeepsRepeatedJoint(t *testing.T) {
	tb, _ := isa.NewTwoBases(pauli.Z, pauli.I)
	joint := program.Operation{
		{Block: 0, Instr: isa.JointMeasure{Bases: tb}},
		{Block: 1, Instr: isa.JointMeasure{Bases: tb}},
	}
	chunks := [][]program.Operation{{joint}, {joint}}

	got := RemoveDuplicateMeasurementsChunked(chunks)

	if len(got[1]) != 1 {
		t.Errorf("a repeated JointMeasure is not a Measure and should be kept, got %d ops", len(got[1]))
	}
}

func TestRemoveTrivialAutomorphismsDropsIdentityOnly(t *testing.T) {
	nontrivial := program.Operation{{Block: 5, Instr: isa.Automorphism{Data: isa.NewAutomorphism(3, 4)}}}
	trivial := program.Operation{{Block: 2, Instr: isa.Automorphism{Data: isa.IdentityAutomorphism}}}
	measurement := meas(10, pauli.X, pauli.Y)

	ops := []program.Operation{nontrivial, trivial, measurement}
	got := RemoveTrivialAutomorphisms(ops)

	if len(got) != 2 {
		t.Fatalf("expected 2 ops after dropping the trivial automorphism, got %d", len(got))
	}
	if got[0][0].Block != 5 || got[1][0].Block != 10 {
		t.Errorf("unexpected surviving ops: %v", got)
	}
}
