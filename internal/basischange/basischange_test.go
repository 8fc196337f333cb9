package basischange

import (
	"testing"

	"bicycle/internal/isa"
	"bicycle/internal/pauli"
)

func TestNewRejectsNonUniqueTargets(t *testing.T) {
	if _, err := New(pauli.X, pauli.X, pauli.Z); err == nil {
		t.Fatalf("expected error for repeated target")
	}
}

func TestNewRejectsIdentityTarget(t *testing.T) {
	if _, err := New(pauli.I, pauli.Y, pauli.Z); err == nil {
		t.Fatalf("expected error for identity target")
	}
}

func TestIdentityChangerIsNoOp(t *testing.T) {
	for _, s := range []pauli.Symbol{pauli.I, pauli.X, pauli.Y, pauli.Z} {
		if got := Identity.ChangePauli(s); got != s {
			t.Errorf("Identity.ChangePauli(%v) = %v, want %v", s, got, s)
		}
	}
}

func TestChangeISAMeasureOnlyTouchesP1(t *testing.T) {
	c, err := New(pauli.Z, pauli.Y, pauli.X) // swap X<->Z, fix Y
	if err != nil {
		t.Fatal(err)
	}
	bases, _ := isa.NewTwoBases(pauli.X, pauli.Z)
	got, err := c.ChangeISA(isa.Measure{Bases: bases})
	if err != nil {
		t.Fatal(err)
	}
	m, ok := got.(isa.Measure)
	if !ok {
		t.Fatalf("expected Measure, got %T", got)
	}
	if m.Bases.P1 != pauli.Z {
		t.Errorf("P1 should be relabeled to Z, got %v", m.Bases.P1)
	}
	if m.Bases.P7 != pauli.Z {
		t.Errorf("P7 should be untouched, got %v", m.Bases.P7)
	}
}

func TestChangeISAAutomorphismPassesThrough(t *testing.T) {
	c, _ := New(pauli.Y, pauli.Z, pauli.X)
	aut := isa.Automorphism{Data: isa.NewAutomorphism(1, 2)}
	got, err := c.ChangeISA(aut)
	if err != nil {
		t.Fatal(err)
	}
	if got != isa.Instruction(aut) {
		t.Errorf("automorphism should pass through unchanged")
	}
}

func TestChangeISARejectsUnsupportedInstruction(t *testing.T) {
	c, _ := New(pauli.Y, pauli.Z, pauli.X)
	if _, err := c.ChangeISA(isa.SyndromeCycle{}); err == nil {
		t.Fatalf("expected error for unsupported instruction")
	}
}

func TestChangeISATGate(t *testing.T) {
	c, _ := New(pauli.Z, pauli.X, pauli.Y) // X->Z, Y->X, Z->Y
	tg, _ := isa.NewTGate(pauli.X, false, true)
	got, err := c.ChangeISA(tg)
	if err != nil {
		t.Fatal(err)
	}
	out, ok := got.(isa.TGate)
	if !ok {
		t.Fatalf("expected TGate, got %T", got)
	}
	if out.Basis != pauli.Z {
		t.Errorf("basis should be relabeled to Z, got %v", out.Basis)
	}
	if out.Adjoint != true || out.Primed != false {
		t.Errorf("adjoint/primed flags should be preserved")
	}
}
