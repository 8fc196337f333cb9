package paritycheck

import (
	"testing"

	"bicycle/internal/nativemeas"
)

func TestGrossShape(t *testing.T) {
	c := Build(nativemeas.Gross)
	if c.NumQubits() != 144 {
		t.Errorf("gross: got %d qubits, want 144", c.NumQubits())
	}
	if c.NumChecks() != 72 {
		t.Errorf("gross: got %d checks, want 72", c.NumChecks())
	}
	if len(c.Hx) != 72 || len(c.Hx[0]) != 144 {
		t.Errorf("gross: Hx shape = %dx%d, want 72x144", len(c.Hx), len(c.Hx[0]))
	}
	if len(c.Hz) != 72 || len(c.Hz[0]) != 144 {
		t.Errorf("gross: Hz shape = %dx%d, want 72x144", len(c.Hz), len(c.Hz[0]))
	}
}

func TestTwoGrossShape(t *testing.T) {
	c := Build(nativemeas.TwoGross)
	if c.NumQubits() != 288 {
		t.Errorf("two_gross: got %d qubits, want 288", c.NumQubits())
	}
	if c.NumChecks() != 144 {
		t.Errorf("two_gross: got %d checks, want 144", c.NumChecks())
	}
}

func TestCheckAndQubitWeights(t *testing.T) {
	for _, code := range []nativemeas.Code{nativemeas.Gross, nativemeas.TwoGross} {
		c := Build(code)
		hxRows, hzRows := c.CheckWeights()
		for i, w := range hxRows {
			if w != 6 {
				t.Errorf("%v: Hx row %d weight = %d, want 6", code, i, w)
			}
		}
		for i, w := range hzRows {
			if w != 6 {
				t.Errorf("%v: Hz row %d weight = %d, want 6", code, i, w)
			}
		}
		hxCols, hzCols := c.QubitWeights()
		for j, w := range hxCols {
			if w != 3 {
				t.Errorf("%v: Hx col %d weight = %d, want 3", code, j, w)
			}
		}
		for j, w := range hzCols {
			if w != 3 {
				t.Errorf("%v: Hz col %d weight = %d, want 3", code, j, w)
			}
		}
	}
}

func TestFingerprintStableAndDistinctPerCode(t *testing.T) {
	g1 := Build(nativemeas.Gross).Fingerprint()
	g2 := Build(nativemeas.Gross).Fingerprint()
	if g1 != g2 {
		t.Fatalf("fingerprint should be deterministic")
	}
	tg := Build(nativemeas.TwoGross).Fingerprint()
	if g1 == tg {
		t.Fatalf("gross and two_gross should have distinct fingerprints")
	}
}
