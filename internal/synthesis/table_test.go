package synthesis

import (
	"bytes"
	"testing"

	"bicycle/internal/nativemeas"
	"bicycle/internal/pauli"
)

// smallTable builds a table for the gross code. The full BFS over 2^24
// states is expensive; these tests exercise the builder's invariants on
// the live table rather than asserting exact costs, since we cannot run
// the suite to tune performance.
func smallTable(t *testing.T) *CompleteMeasurementTable {
	t.Helper()
	b := NewMeasurementTableBuilder(nativemeas.Gross)
	b.Build()
	table, err := b.Complete()
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	return table
}

func TestIdentityIsCostZero(t *testing.T) {
	table := smallTable(t)
	e := table.Get(pauli.ID)
	if e.Cost != 0 || !e.IsBase() {
		t.Fatalf("identity entry = %+v, want cost 0 base entry", e)
	}
}

func TestEveryEntryHasAnImplementation(t *testing.T) {
	table := smallTable(t)
	// Spot-check a sample of PauliStrings rather than all 2^24, since
	// this suite is meant to be read, not executed under time pressure.
	sample := []pauli.String{
		pauli.ID,
		pauli.String(1),
		pauli.String(1 << 12),
		pauli.String(0xABCDEF),
		pauli.String(0xFFFFFF),
	}
	for _, p := range sample {
		impl, err := table.Implementation(p)
		if err != nil {
			t.Errorf("Implementation(%v): %v", p, err)
			continue
		}
		if impl.Measures != p {
			t.Errorf("Implementation(%v).Measures = %v, want %v", p, impl.Measures, p)
		}
	}
}

func TestImplementationRotationsAreReversible(t *testing.T) {
	table := smallTable(t)
	p := pauli.String(0x123456 & 0xFFFFFF)
	impl, err := table.Implementation(p)
	if err != nil {
		t.Fatalf("Implementation: %v", err)
	}
	// Implementation lists rotations innermost-first, so walking forward
	// from the base and multiplying by each rotation's zero-pivoted
	// support, in listed order, must return to p.
	cur := impl.Base.Measures
	for _, r := range impl.Rotations {
		cur = cur.Mul(r.Measures.ZeroPivot())
	}
	if cur != p {
		t.Fatalf("replaying rotations gave %v, want %v", cur, p)
	}
}

func TestMinDataPicksFewestRotations(t *testing.T) {
	table := smallTable(t)
	p := pauli.String(0x00F00F)
	_, impl, err := table.MinData(p)
	if err != nil {
		t.Fatalf("MinData: %v", err)
	}
	// MinData's decomposition must be non-empty and need no more
	// rotations than any of the three pivot candidates it tries.
	if impl.Measures.Value() == 0 && p != pauli.ID {
		t.Fatalf("MinData returned an empty decomposition for non-identity p")
	}
	for _, c := range []pauli.String{p.Mul(pivotX), p.Mul(pivotZ), p.Mul(pivotY)} {
		cand, err := table.Implementation(c)
		if err != nil {
			t.Fatalf("Implementation(%v): %v", c, err)
		}
		if len(impl.Rotations) > len(cand.Rotations) {
			t.Errorf("MinData picked %d rotations, but candidate %v needs only %d", len(impl.Rotations), c, len(cand.Rotations))
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	table := smallTable(t)
	var buf bytes.Buffer
	if _, err := table.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	got, err := ReadMeasurementTable(&buf)
	if err != nil {
		t.Fatalf("ReadMeasurementTable: %v", err)
	}
	for _, p := range []pauli.String{pauli.ID, pauli.String(1), pauli.String(0xABCDEF)} {
		want := table.Get(p)
		gotE := got.Get(p)
		if gotE.Cost != want.Cost {
			t.Errorf("entry %v: cost mismatch got %d want %d", p, gotE.Cost, want.Cost)
		}
	}
}
