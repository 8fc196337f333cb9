package smallangle

import (
	"testing"

	"bicycle/internal/pauli"
)

func TestCompileRotsTHTSW(t *testing.T) {
	rotations, cliffords, err := compileRots("THTSW")
	if err != nil {
		t.Fatal(err)
	}
	wantRot := []SingleRotation{{Basis: pauli.Z}, {Basis: pauli.X}}
	if !rotationsEqual(rotations, wantRot) {
		t.Errorf("rotations = %+v, want %+v", rotations, wantRot)
	}
	wantClifford := []CliffordGate{CliffordH, CliffordS, CliffordW}
	if !cliffordsEqual(cliffords, wantClifford) {
		t.Errorf("cliffords = %v, want %v", cliffords, wantClifford)
	}
}

func TestCompileRotsSHTSHTXW(t *testing.T) {
	rotations, cliffords, err := compileRots("SHTSHTXW")
	if err != nil {
		t.Fatal(err)
	}
	wantRot := []SingleRotation{{Basis: pauli.X, Dagger: true}, {Basis: pauli.Z}}
	if !rotationsEqual(rotations, wantRot) {
		t.Errorf("rotations = %+v, want %+v", rotations, wantRot)
	}
	wantClifford := []CliffordGate{CliffordX, CliffordW, CliffordS}
	if !cliffordsEqual(cliffords, wantClifford) {
		t.Errorf("cliffords = %v, want %v", cliffords, wantClifford)
	}
}

func TestCompileRotsTSSS(t *testing.T) {
	rotations, cliffords, err := compileRots("TSSS")
	if err != nil {
		t.Fatal(err)
	}
	wantRot := []SingleRotation{{Basis: pauli.Z}}
	if !rotationsEqual(rotations, wantRot) {
		t.Errorf("rotations = %+v, want %+v", rotations, wantRot)
	}
	wantClifford := []CliffordGate{CliffordS, CliffordS, CliffordS}
	if !cliffordsEqual(cliffords, wantClifford) {
		t.Errorf("cliffords = %v, want %v", cliffords, wantClifford)
	}
}

func TestSynthesizeAngleTAngleShortcut(t *testing.T) {
	rotations, cliffords, err := SynthesizeAngle(tAngle, maxAccuracy)
	if err != nil {
		t.Fatal(err)
	}
	if len(rotations) != 1 || rotations[0].Basis != pauli.Z || rotations[0].Dagger {
		t.Errorf("got %+v, want single non-dagger Z rotation", rotations)
	}
	if len(cliffords) != 0 {
		t.Errorf("expected no Clifford correction, got %v", cliffords)
	}

	neg := tAngle.Neg()
	rotations, _, err = SynthesizeAngle(neg, maxAccuracy)
	if err != nil {
		t.Fatal(err)
	}
	if !rotations[0].Dagger {
		t.Errorf("negative pi/4 should yield a dagger rotation")
	}
}

func TestSynthesizeAngleRejectsLargeAccuracy(t *testing.T) {
	tooLoose := tAngle.Add(tAngle) // arbitrary angle != pi/4 shortcut
	badAccuracy := maxAccuracy.Add(maxAccuracy)
	if _, _, err := SynthesizeAngle(tooLoose, badAccuracy); err == nil {
		t.Fatalf("expected error for accuracy > 0.1")
	}
}

func rotationsEqual(a, b []SingleRotation) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cliffordsEqual(a, b []CliffordGate) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
