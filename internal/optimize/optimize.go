// Package optimize thins a compiled instruction stream: it drops
// measurements a block has already just performed, and elides
// automorphisms that apply a zero shift.
package optimize

import (
	"bicycle/internal/isa"
	"bicycle/internal/program"
)

// RemoveDuplicateMeasurementsChunked drops any Operation whose every
// (block, instruction) entry is a Measure identical to that block's most
// recently recorded instruction, using one running per-block history
// shared across all chunks. An Operation survives, and updates history,
// as soon as any one of its entries is not a matching repeat; an
// Operation with any non-Measure entry, such as a JointMeasure, is never
// dropped.
// Chunk boundaries (the grouping of the input slice-of-slices) are
// preserved in the output.
func RemoveDuplicateMeasurementsChunked(chunks [][]program.Operation) [][]program.Operation {
	history := make(map[int]isa.Instruction)

	out := make([][]program.Operation, 0, len(chunks))
	for _, chunk := range chunks {
		filtered := make([]program.Operation, 0, len(chunk))
		for _, op := range chunk {
			if isRepeatedMeasurement(op, history) {
				continue
			}
			filtered = append(filtered, op)
			for _, bi := range op {
				history[bi.Block] = bi.Instr
			}
		}
		out = append(out, filtered)
	}
	return out
}

// RemoveDuplicateMeasurements is the unchunked convenience form: every
// Operation is treated as its own chunk.
func RemoveDuplicateMeasurements(ops []program.Operation) []program.Operation {
	chunks := make([][]program.Operation, len(ops))
	for i, op := range ops {
		chunks[i] = []program.Operation{op}
	}
	filtered := RemoveDuplicateMeasurementsChunked(chunks)
	out := make([]program.Operation, 0, len(ops))
	for _, chunk := range filtered {
		out = append(out, chunk...)
	}
	return out
}

// isRepeatedMeasurement reports whether every entry of op is a Measure
// identical to the block's recorded history entry.
func isRepeatedMeasurement(op program.Operation, history map[int]isa.Instruction) bool {
	if len(op) == 0 {
		return false
	}
	for _, bi := range op {
		if _, ok := bi.Instr.(isa.Measure); !ok {
			return false
		}
		prev, ok := history[bi.Block]
		if !ok || prev != bi.Instr {
			return false
		}
	}
	return true
}

// RemoveTrivialAutomorphisms drops any length-1 Operation whose sole
// instruction is an Automorphism applying the identity (0,0) shift.
func RemoveTrivialAutomorphisms(ops []program.Operation) []program.Operation {
	out := make([]program.Operation, 0, len(ops))
	for _, op := range ops {
		if len(op) == 1 {
			if aut, ok := op[0].Instr.(isa.Automorphism); ok && aut.Data.IsIdentity() {
				continue
			}
		}
		out = append(out, op)
	}
	return out
}
