package program

import (
	"encoding/json"

	"bicycle/internal/fixedpoint"
	"bicycle/internal/pauli"

	"github.com/pkg/errors"
)

// PbcOperation is one operation of a Pauli-based computation program: a
// destructive Pauli measurement, or a small-angle Pauli rotation.
type PbcOperation interface {
	Basis() []pauli.Symbol
	isPbcOperation()
}

// Measurement destructively measures the given Pauli basis.
type Measurement struct {
	BasisPaulis []pauli.Symbol
	FlipResult  bool
}

func (m Measurement) Basis() []pauli.Symbol { return m.BasisPaulis }
func (Measurement) isPbcOperation()         {}

// Rotation applies exp(i * Angle * (Pauli string named by Basis)).
type Rotation struct {
	BasisPaulis []pauli.Symbol
	Angle       fixedpoint.Angle
}

func (r Rotation) Basis() []pauli.Symbol { return r.BasisPaulis }
func (Rotation) isPbcOperation()         {}

func marshalBasis(basis []pauli.Symbol) []string {
	out := make([]string, len(basis))
	for i, p := range basis {
		out[i] = p.String()
	}
	return out
}

func unmarshalBasis(raw []string) ([]pauli.Symbol, error) {
	out := make([]pauli.Symbol, len(raw))
	for i, s := range raw {
		if len(s) != 1 {
			return nil, errors.Errorf("program: invalid Pauli literal %q", s)
		}
		p, err := pauli.ParseSymbol(s[0])
		if err != nil {
			return nil, errors.Wrap(err, "program: parsing basis")
		}
		out[i] = p
	}
	return out, nil
}

type measurementWire struct {
	Basis      []string `json:"basis"`
	FlipResult bool     `json:"flip_result"`
}

type rotationWire struct {
	Basis []string `json:"basis"`
	Angle string   `json:"angle"`
}

// MarshalPbcOperation renders op in the externally-tagged wire form
// ({"Measurement":{...}} or {"Rotation":{...}}).
func MarshalPbcOperation(op PbcOperation) ([]byte, error) {
	switch v := op.(type) {
	case Measurement:
		payload, err := json.Marshal(measurementWire{Basis: marshalBasis(v.BasisPaulis), FlipResult: v.FlipResult})
		if err != nil {
			return nil, errors.Wrap(err, "program: marshaling Measurement")
		}
		return json.Marshal(map[string]json.RawMessage{"Measurement": payload})
	case Rotation:
		payload, err := json.Marshal(rotationWire{Basis: marshalBasis(v.BasisPaulis), Angle: v.Angle.String()})
		if err != nil {
			return nil, errors.Wrap(err, "program: marshaling Rotation")
		}
		return json.Marshal(map[string]json.RawMessage{"Rotation": payload})
	default:
		return nil, errors.Errorf("program: unknown PbcOperation variant %T", op)
	}
}

// UnmarshalPbcOperation decodes one externally-tagged PbcOperation value.
func UnmarshalPbcOperation(data []byte) (PbcOperation, error) {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return nil, errors.Wrap(err, "program: decoding PbcOperation")
	}
	if payload, ok := tagged["Measurement"]; ok {
		var w measurementWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return nil, errors.Wrap(err, "program: decoding Measurement")
		}
		basis, err := unmarshalBasis(w.Basis)
		if err != nil {
			return nil, err
		}
		return Measurement{BasisPaulis: basis, FlipResult: w.FlipResult}, nil
	}
	if payload, ok := tagged["Rotation"]; ok {
		var w rotationWire
		if err := json.Unmarshal(payload, &w); err != nil {
			return nil, errors.Wrap(err, "program: decoding Rotation")
		}
		basis, err := unmarshalBasis(w.Basis)
		if err != nil {
			return nil, err
		}
		angle, err := fixedpoint.AngleFromString(w.Angle)
		if err != nil {
			return nil, errors.Wrap(err, "program: parsing rotation angle")
		}
		return Rotation{BasisPaulis: basis, Angle: angle}, nil
	}
	return nil, errors.Errorf("program: unrecognized PbcOperation tag in %s", string(data))
}
