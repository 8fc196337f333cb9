package isa

import (
	"encoding/json"

	"bicycle/internal/pauli"

	"github.com/pkg/errors"
)

// MarshalJSON renders an Instruction as either a bare string (for the
// zero-field variants) or a single-key object whose key is the Kind and
// whose value is the variant's payload.
func MarshalJSON(instr Instruction) ([]byte, error) {
	switch v := instr.(type) {
	case SyndromeCycle, CSSInitZero, CSSInitPlus, DestructiveZ, DestructiveX,
		JointBellInit, JointTransversalCX, InitT:
		return json.Marshal(string(instr.Kind()))
	case Automorphism:
		return json.Marshal(map[string]automorphismWire{
			string(KindAutomorphism): {X: v.Data.X, Y: v.Data.Y},
		})
	case Measure:
		return json.Marshal(map[string]twoBasesWire{
			string(KindMeasure): {P1: v.Bases.P1.String(), P7: v.Bases.P7.String()},
		})
	case JointMeasure:
		return json.Marshal(map[string]twoBasesWire{
			string(KindJointMeasure): {P1: v.Bases.P1.String(), P7: v.Bases.P7.String()},
		})
	case ParallelMeasure:
		return json.Marshal(map[string]string{
			string(KindParallelMeasure): v.Basis.String(),
		})
	case TGate:
		return json.Marshal(map[string]tGateWire{
			string(KindTGate): {Basis: v.Basis.String(), Primed: v.Primed, Adjoint: v.Adjoint},
		})
	default:
		return nil, errors.Errorf("isa: unknown instruction type %T", instr)
	}
}

type automorphismWire struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

type twoBasesWire struct {
	P1 string `json:"p1"`
	P7 string `json:"p7"`
}

type tGateWire struct {
	Basis   string `json:"basis"`
	Primed  bool   `json:"primed"`
	Adjoint bool   `json:"adjoint"`
}

// UnmarshalJSON parses an Instruction from either bare-string or tagged
// single-key-object form.
func UnmarshalJSON(data []byte) (Instruction, error) {
	var bare string
	if err := json.Unmarshal(data, &bare); err == nil {
		switch Kind(bare) {
		case KindSyndromeCycle:
			return SyndromeCycle{}, nil
		case KindCSSInitZero:
			return CSSInitZero{}, nil
		case KindCSSInitPlus:
			return CSSInitPlus{}, nil
		case KindDestructiveZ:
			return DestructiveZ{}, nil
		case KindDestructiveX:
			return DestructiveX{}, nil
		case KindJointBellInit:
			return JointBellInit{}, nil
		case KindJointTransversalCX:
			return JointTransversalCX{}, nil
		case KindInitT:
			return InitT{}, nil
		default:
			return nil, errors.Errorf("isa: unknown bare instruction tag %q", bare)
		}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, errors.Wrap(err, "isa: decoding tagged instruction")
	}
	if len(obj) != 1 {
		return nil, errors.Errorf("isa: tagged instruction object must have exactly one key, got %d", len(obj))
	}
	for tag, payload := range obj {
		switch Kind(tag) {
		case KindAutomorphism:
			var w automorphismWire
			if err := json.Unmarshal(payload, &w); err != nil {
				return nil, errors.Wrap(err, "isa: decoding Automorphism")
			}
			return Automorphism{Data: AutomorphismData{X: w.X % 6, Y: w.Y % 6}}, nil
		case KindMeasure:
			b, err := decodeTwoBases(payload)
			if err != nil {
				return nil, errors.Wrap(err, "isa: decoding Measure")
			}
			return Measure{Bases: b}, nil
		case KindJointMeasure:
			b, err := decodeTwoBases(payload)
			if err != nil {
				return nil, errors.Wrap(err, "isa: decoding JointMeasure")
			}
			return JointMeasure{Bases: b}, nil
		case KindParallelMeasure:
			var s string
			if err := json.Unmarshal(payload, &s); err != nil {
				return nil, errors.Wrap(err, "isa: decoding ParallelMeasure")
			}
			sym, err := pauli.ParseSymbol(s[0])
			if err != nil {
				return nil, err
			}
			pm, err := NewParallelMeasure(sym)
			if err != nil {
				return nil, err
			}
			return pm, nil
		case KindTGate:
			var w tGateWire
			if err := json.Unmarshal(payload, &w); err != nil {
				return nil, errors.Wrap(err, "isa: decoding TGate")
			}
			sym, err := pauli.ParseSymbol(w.Basis[0])
			if err != nil {
				return nil, err
			}
			tg, err := NewTGate(sym, w.Primed, w.Adjoint)
			if err != nil {
				return nil, err
			}
			return tg, nil
		default:
			return nil, errors.Errorf("isa: unknown tagged instruction %q", tag)
		}
	}
	panic("unreachable")
}

func decodeTwoBases(payload json.RawMessage) (TwoBases, error) {
	var w twoBasesWire
	if err := json.Unmarshal(payload, &w); err != nil {
		return TwoBases{}, err
	}
	p1, err := pauli.ParseSymbol(w.P1[0])
	if err != nil {
		return TwoBases{}, err
	}
	p7, err := pauli.ParseSymbol(w.P7[0])
	if err != nil {
		return TwoBases{}, err
	}
	return NewTwoBases(p1, p7)
}
