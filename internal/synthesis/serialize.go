package synthesis

import (
	"encoding/binary"
	"io"

	"bicycle/internal/nativemeas"
	"bicycle/internal/pauli"
	"bicycle/internal/paritycheck"

	"github.com/pkg/errors"
)

var fileMagic = [4]byte{'B', 'I', 'C', 'Y'}

const fileVersion = 1

const noRotation = 0xFFFFFFFF

// WriteTo serializes a CompleteMeasurementTable as a compact
// little-endian binary blob: a 4-byte magic, a code-identity byte, a
// version byte, the SHA-256 fingerprint of the code's parity-check
// matrices, and then one 8-byte record per PauliString (a
// conjugated-with rotation, or the all-ones sentinel for a base entry,
// followed by its cost).
func (t *CompleteMeasurementTable) WriteTo(w io.Writer) (int64, error) {
	var written int64

	if _, err := w.Write(fileMagic[:]); err != nil {
		return written, errors.Wrap(err, "synthesis: writing magic")
	}
	written += int64(len(fileMagic))

	header := []byte{codeByte(t.Code), fileVersion}
	if _, err := w.Write(header); err != nil {
		return written, errors.Wrap(err, "synthesis: writing header")
	}
	written += int64(len(header))

	fp := paritycheck.For(t.Code).Fingerprint()
	if _, err := w.Write(fp[:]); err != nil {
		return written, errors.Wrap(err, "synthesis: writing fingerprint")
	}
	written += int64(len(fp))

	buf := make([]byte, 8)
	for _, e := range t.Measurements {
		if e.ConjugatedWith == nil {
			binary.LittleEndian.PutUint32(buf[0:4], noRotation)
		} else {
			binary.LittleEndian.PutUint32(buf[0:4], e.ConjugatedWith.Value())
		}
		binary.LittleEndian.PutUint32(buf[4:8], e.Cost)
		n, err := w.Write(buf)
		if err != nil {
			return written, errors.Wrap(err, "synthesis: writing record")
		}
		written += int64(n)
	}
	return written, nil
}

// ReadMeasurementTable parses a blob produced by WriteTo, verifying the
// magic, version, and code-identity fingerprint before trusting the
// records.
func ReadMeasurementTable(r io.Reader) (*CompleteMeasurementTable, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, errors.Wrap(err, "synthesis: reading magic")
	}
	if magic != fileMagic {
		return nil, errors.New("synthesis: bad file magic")
	}

	header := make([]byte, 2)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, errors.Wrap(err, "synthesis: reading header")
	}
	code, err := codeFromByte(header[0])
	if err != nil {
		return nil, err
	}
	if header[1] != fileVersion {
		return nil, errors.Errorf("synthesis: unsupported table version %d", header[1])
	}

	var storedFP [32]byte
	if _, err := io.ReadFull(r, storedFP[:]); err != nil {
		return nil, errors.Wrap(err, "synthesis: reading fingerprint")
	}
	wantFP := paritycheck.For(code).Fingerprint()
	if storedFP != wantFP {
		return nil, errors.New("synthesis: code fingerprint mismatch; table was built for a different code")
	}

	b := NewMeasurementTableBuilder(code)
	buf := make([]byte, 8)
	for i := 0; i < tableSize; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrapf(err, "synthesis: reading record %d", i)
		}
		rotValue := binary.LittleEndian.Uint32(buf[0:4])
		cost := binary.LittleEndian.Uint32(buf[4:8])
		p := pauli.FromValue(uint32(i))
		if rotValue == noRotation {
			b.measurements[p.Value()] = &MeasurementTableEntry{Measurement: p, Cost: cost}
		} else {
			r := pauli.FromValue(rotValue)
			b.measurements[p.Value()] = &MeasurementTableEntry{ConjugatedWith: &r, Cost: cost}
		}
	}
	b.filled = tableSize
	return b.Complete()
}

func codeByte(c nativemeas.Code) byte {
	if c == nativemeas.TwoGross {
		return 1
	}
	return 0
}

func codeFromByte(b byte) (nativemeas.Code, error) {
	switch b {
	case 0:
		return nativemeas.Gross, nil
	case 1:
		return nativemeas.TwoGross, nil
	default:
		return 0, errors.Errorf("synthesis: unknown code byte %d", b)
	}
}
