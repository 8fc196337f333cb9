// Package arch models the target architecture: how many code blocks are
// available and which operations (single-block vs. two-adjacent-block
// joint operations) are realizable on it.
package arch

// PathArchitecture lays code blocks out on a line; a joint operation is
// realizable only between index-adjacent blocks.
type PathArchitecture struct {
	DataBlocks int
}

// qubitsPerBlock is the number of data qubits (1..11) a single code block
// exposes to the compiler, excluding the pivot.
const qubitsPerBlock = 11

// ForQubits returns the smallest PathArchitecture with enough blocks to
// hold the given number of logical qubits.
func ForQubits(qubits int) PathArchitecture {
	blocks := (qubits + qubitsPerBlock - 1) / qubitsPerBlock
	if blocks < 1 {
		blocks = 1
	}
	return PathArchitecture{DataBlocks: blocks}
}

// Qubits returns the total logical qubit capacity of the architecture.
func (a PathArchitecture) Qubits() int { return a.DataBlocks * qubitsPerBlock }

// Operand pairs a block index with whatever is being asked of it; callers
// pass their own per-block payload type, so ValidateOperation only looks
// at the index.
type Operand struct {
	BlockIndex int
}

// ValidateOperation reports whether the given block indices can be
// realized in a single instruction: any single block index is always
// valid, and a pair of indices is valid only if they are adjacent.
func (a PathArchitecture) ValidateOperation(indices []int) bool {
	if len(indices) == 1 {
		return true
	}
	if len(indices) != 2 {
		return false
	}
	diff := indices[0] - indices[1]
	if diff < 0 {
		diff = -diff
	}
	return diff == 1
}
