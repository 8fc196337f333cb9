// Package program holds the wire-level types the compiler reads and
// writes: PBC operations on input, compiled ISA operation streams on
// output.
package program

import (
	"bytes"
	"encoding/json"
	"fmt"

	"bicycle/internal/isa"

	"github.com/pkg/errors"
)

// BlockInstruction pairs a block index with the ISA instruction it
// executes in one timestep.
type BlockInstruction struct {
	Block int
	Instr isa.Instruction
}

// Operation is one indivisible group of per-block instructions: a single
// block acting alone, or two adjacent blocks executing a joint
// instruction together.
type Operation []BlockInstruction

// Operations wraps a sequence of Operation for pretty-printing, mirroring
// the reference implementation's display wrapper.
type Operations []Operation

func (op Operation) String() string {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, bi := range op {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "(%d,%s)", bi.Block, bi.Instr.Kind())
	}
	buf.WriteByte(']')
	return buf.String()
}

func (bi BlockInstruction) MarshalJSON() ([]byte, error) {
	instrJSON, err := isa.MarshalJSON(bi.Instr)
	if err != nil {
		return nil, errors.Wrap(err, "program: marshaling block instruction")
	}
	var buf bytes.Buffer
	buf.WriteByte('[')
	blockJSON, err := json.Marshal(bi.Block)
	if err != nil {
		return nil, errors.Wrap(err, "program: marshaling block index")
	}
	buf.Write(blockJSON)
	buf.WriteByte(',')
	buf.Write(instrJSON)
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func (bi *BlockInstruction) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "program: decoding block instruction pair")
	}
	var block int
	if err := json.Unmarshal(raw[0], &block); err != nil {
		return errors.Wrap(err, "program: decoding block index")
	}
	instr, err := isa.UnmarshalJSON(raw[1])
	if err != nil {
		return errors.Wrap(err, "program: decoding instruction")
	}
	bi.Block = block
	bi.Instr = instr
	return nil
}
