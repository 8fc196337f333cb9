package program

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// ReadPbcOperations decodes a whitespace-separated stream of PbcOperation
// JSON values, invoking fn for each one in order. It stops and returns
// fn's error immediately if fn returns a non-nil error, and returns io.EOF
// wrapped as nil (a clean end of stream) otherwise.
func ReadPbcOperations(r io.Reader, fn func(PbcOperation) error) error {
	dec := json.NewDecoder(r)
	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return errors.Wrap(err, "program: decoding PbcOperation stream")
		}
		op, err := UnmarshalPbcOperation(raw)
		if err != nil {
			return err
		}
		if err := fn(op); err != nil {
			return err
		}
	}
}

// WriteOperations writes one JSON array (the Operations compiled from a
// single PbcOperation) as a single line of output.
func WriteOperations(w io.Writer, ops Operations) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(ops); err != nil {
		return errors.Wrap(err, "program: writing compiled operations")
	}
	return nil
}
