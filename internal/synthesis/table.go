// Package synthesis builds and queries the complete measurement-
// decomposition table: for every one of the 2^24 possible 12-qubit
// PauliStrings, a cost-minimal recipe for measuring it using only native
// code-block measurements and automorphisms.
package synthesis

import (
	"sort"

	"bicycle/internal/logging"
	"bicycle/internal/nativemeas"
	"bicycle/internal/pauli"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

const tableSize = 1 << 24

// pivot-qubit (qubit 0) basis elements, used by MinData to try each
// non-identity Pauli on the pivot.
var (
	pivotX = pauli.String(1)
	pivotZ = pauli.String(1 << 12)
	pivotY = pivotX.Mul(pivotZ)
)

// MeasurementTableEntry describes how a single PauliString is measured:
// either directly (ConjugatedWith is nil, and Measurement names the
// PauliString actually handed to a native measurement — the identity or
// a native support), or by first conjugating with a cheaper rotation
// (ConjugatedWith holds that rotation) and recursing.
type MeasurementTableEntry struct {
	Measurement   pauli.String
	ConjugatedWith *pauli.String
	Cost          uint32
}

// IsBase reports whether this entry is directly implementable (no further
// conjugation needed).
func (e MeasurementTableEntry) IsBase() bool { return e.ConjugatedWith == nil }

// NativeMeasurementImpl pairs a native measurement with the PauliString it
// was chosen to realize.
type NativeMeasurementImpl struct {
	Native   nativemeas.NativeMeasurement
	Measures pauli.String
}

// MeasurementImpl is the fully expanded recipe for measuring a
// PauliString: a chain of rotation conjugations (applied in listed
// order, then undone in reverse at the end) around one base native
// measurement.
type MeasurementImpl struct {
	Base     NativeMeasurementImpl
	Rotations []NativeMeasurementImpl
	Measures  pauli.String
}

// CompleteMeasurementTable is a fully populated decomposition table: every
// PauliString has an entry.
type CompleteMeasurementTable struct {
	Code              nativemeas.Code
	Measurements      []MeasurementTableEntry
	NativeMeasurements map[pauli.String]nativemeas.NativeMeasurement
}

// Get looks up the entry for p.
func (t *CompleteMeasurementTable) Get(p pauli.String) MeasurementTableEntry {
	return t.Measurements[p.Value()]
}

// Implementation walks the conjugation chain for p down to its base
// native measurement (or the identity, for a trivial Pauli), returning
// the rotations in the order they must be applied (innermost first).
func (t *CompleteMeasurementTable) Implementation(p pauli.String) (MeasurementImpl, error) {
	var rotations []pauli.String
	cur := p
	for {
		entry := t.Measurements[cur.Value()]
		if entry.IsBase() {
			var base NativeMeasurementImpl
			if cur != pauli.ID {
				nm, ok := t.NativeMeasurements[cur]
				if !ok {
					return MeasurementImpl{}, errors.Errorf("synthesis: base PauliString %v has no native measurement", cur)
				}
				base = NativeMeasurementImpl{Native: nm, Measures: cur}
			}
			// reverse so rotations are listed innermost-first
			for i, j := 0, len(rotations)-1; i < j; i, j = i+1, j-1 {
				rotations[i], rotations[j] = rotations[j], rotations[i]
			}
			impls := make([]NativeMeasurementImpl, len(rotations))
			for i, r := range rotations {
				nm, ok := t.NativeMeasurements[r]
				if !ok {
					return MeasurementImpl{}, errors.Errorf("synthesis: rotation %v has no native measurement", r)
				}
				impls[i] = NativeMeasurementImpl{Native: nm, Measures: r}
			}
			return MeasurementImpl{Base: base, Rotations: impls, Measures: p}, nil
		}
		r := *entry.ConjugatedWith
		rotations = append(rotations, r)
		// Conjugating resets the pivot: the rotation's own pivot Pauli never
		// appears in the product.
		cur = cur.Mul(r.ZeroPivot())
	}
}

// MinData tries multiplying p by each of the pivot qubit's three
// non-identity Paulis (X, Z, Y, tried in that order) and returns the
// decomposition with the fewest rotation steps, preferring the
// earliest-tried candidate on a tie.
func (t *CompleteMeasurementTable) MinData(p pauli.String) (pauli.String, MeasurementImpl, error) {
	candidates := []pauli.String{p.Mul(pivotX), p.Mul(pivotZ), p.Mul(pivotY)}
	var bestP pauli.String
	var best MeasurementImpl
	bestLen := -1
	for _, c := range candidates {
		impl, err := t.Implementation(c)
		if err != nil {
			return pauli.ID, MeasurementImpl{}, err
		}
		if bestLen == -1 || len(impl.Rotations) < bestLen {
			bestLen = len(impl.Rotations)
			best = impl
			bestP = c
		}
	}
	return bestP, best, nil
}

// MeasurementTableBuilder runs the cost-weighted BFS that populates a
// CompleteMeasurementTable.
type MeasurementTableBuilder struct {
	code         nativemeas.Code
	measurements []*MeasurementTableEntry
	native       map[pauli.String]nativemeas.NativeMeasurement
	filled       int
}

// NewMeasurementTableBuilder seeds the table with the identity at cost 0
// and every distinct native-measurement support at cost 1.
func NewMeasurementTableBuilder(code nativemeas.Code) *MeasurementTableBuilder {
	b := &MeasurementTableBuilder{
		code:         code,
		measurements: make([]*MeasurementTableEntry, tableSize),
		native:       make(map[pauli.String]nativemeas.NativeMeasurement),
	}
	b.set(pauli.ID, MeasurementTableEntry{Measurement: pauli.ID, Cost: 0})
	for _, nm := range nativemeas.All(code) {
		support := nativemeas.Measures(code, nm)
		if b.measurements[support.Value()] != nil {
			continue
		}
		b.set(support, MeasurementTableEntry{Measurement: support, Cost: 1})
		b.native[support] = nm
	}
	return b
}

func (b *MeasurementTableBuilder) set(p pauli.String, e MeasurementTableEntry) {
	if b.measurements[p.Value()] == nil {
		b.filled++
	}
	entry := e
	b.measurements[p.Value()] = &entry
}

// baseRotations returns the distinct, pivot-supporting native supports
// discovered at cost 1: these are the only rotations usable to conjugate
// one measurable PauliString into another, since a conjugation gadget
// must act through the pivot qubit.
func (b *MeasurementTableBuilder) baseRotations() []pauli.String {
	var rots []pauli.String
	seen := make(map[pauli.String]bool)
	for support := range b.native {
		if seen[support] {
			continue
		}
		if !support.HasPivotSupport() {
			continue
		}
		seen[support] = true
		rots = append(rots, support)
	}
	sort.Slice(rots, func(i, j int) bool { return rots[i].Less(rots[j]) })
	return rots
}

// Build runs the BFS to cost-minimally populate every reachable
// PauliString.
func (b *MeasurementTableBuilder) Build() {
	rots := b.baseRotations()

	level := make(map[pauli.String]bool)
	for p, e := range b.measurements {
		if e != nil {
			level[pauli.FromValue(uint32(p))] = true
		}
	}

	for cur := uint32(2); b.filled < tableSize; cur++ {
		next := make(map[pauli.String]bool)
		for p := range level {
			prevCost := b.measurements[p.Value()].Cost
			if prevCost != cur-1 {
				continue
			}
			for _, r := range rots {
				rz := r.ZeroPivot()
				if p.CommutesWith(rz) {
					continue
				}
				q := p.Mul(rz)
				existing := b.measurements[q.Value()]
				if existing != nil && existing.Cost <= cur {
					continue
				}
				rr := r
				b.set(q, MeasurementTableEntry{ConjugatedWith: &rr, Cost: cur})
				next[q] = true
			}
		}
		if len(next) == 0 {
			break
		}
		logging.Debugf("synthesis: cost %d reached %s/%s entries", cur, humanize.Comma(int64(b.filled)), humanize.Comma(int64(tableSize)))
		level = next
	}
}

// Complete converts the builder's (possibly incomplete) working table
// into a CompleteMeasurementTable, erroring if any PauliString was never
// reached.
func (b *MeasurementTableBuilder) Complete() (*CompleteMeasurementTable, error) {
	out := make([]MeasurementTableEntry, tableSize)
	for i, e := range b.measurements {
		if e == nil {
			return nil, errors.Errorf("synthesis: PauliString %d has no measurement decomposition", i)
		}
		out[i] = *e
	}
	return &CompleteMeasurementTable{
		Code:              b.code,
		Measurements:      out,
		NativeMeasurements: b.native,
	}, nil
}

// BuildCompleteMeasurementTable is a convenience wrapper running the full
// new-build-complete pipeline for a code.
func BuildCompleteMeasurementTable(code nativemeas.Code) (*CompleteMeasurementTable, error) {
	b := NewMeasurementTableBuilder(code)
	b.Build()
	return b.Complete()
}
