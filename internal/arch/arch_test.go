package arch

import "testing"

func TestForQubitsRoundsUp(t *testing.T) {
	cases := []struct {
		qubits int
		blocks int
	}{
		{1, 1}, {11, 1}, {12, 2}, {22, 2}, {23, 3},
	}
	for _, c := range cases {
		if got := ForQubits(c.qubits).DataBlocks; got != c.blocks {
			t.Errorf("ForQubits(%d).DataBlocks = %d, want %d", c.qubits, got, c.blocks)
		}
	}
}

func TestValidateOperation(t *testing.T) {
	a := PathArchitecture{DataBlocks: 4}
	if !a.ValidateOperation([]int{2}) {
		t.Errorf("single index should always validate")
	}
	if !a.ValidateOperation([]int{1, 2}) {
		t.Errorf("adjacent indices should validate")
	}
	if !a.ValidateOperation([]int{2, 1}) {
		t.Errorf("adjacent indices should validate regardless of order")
	}
	if a.ValidateOperation([]int{0, 2}) {
		t.Errorf("non-adjacent indices should not validate")
	}
	if a.ValidateOperation([]int{0, 1, 2}) {
		t.Errorf("more than two indices should not validate")
	}
}
