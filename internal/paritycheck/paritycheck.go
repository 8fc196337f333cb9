// Package paritycheck builds the bivariate-bicycle parity-check matrices
// for the gross and two-gross codes, and derives a stable fingerprint
// identifying which code a persisted measurement table belongs to.
//
// This is a from-scratch, minimal-but-concrete construction: qubits are
// indexed by Z_l x Z_m, X := shift-by-1 in the first coordinate and
// Y := shift-by-1 in the second, and A = X^3+Y+Y^2, B = Y^3+X+X^2 (all
// sums over GF(2)), giving Hx = [A|B] and Hz = [B^T|A^T]. The resulting
// SHA-256 fingerprints are not claimed to match any particular reference
// implementation's byte layout; they only need to be stable and unique
// per code so a persisted table can be checked against the code it was
// built for.
package paritycheck

import (
	"crypto/sha256"
	"io"

	"bicycle/internal/nativemeas"
)

// Params are the bivariate-bicycle code parameters: A = X^AX + Y^AY[0] +
// Y^AY[1], B = Y^BY + X^BX[0] + X^BX[1], over Z_L x Z_M.
type Params struct {
	L, M int
	AX   int
	AY   [2]int
	BY   int
	BX   [2]int
}

// GrossParams is the [[144,12,12]] gross code (l=12, m=6), with
// A = x^3+y+y^2, B = y^3+x+x^2.
var GrossParams = Params{L: 12, M: 6, AX: 3, AY: [2]int{1, 2}, BY: 3, BX: [2]int{1, 2}}

// TwoGrossParams is the [[288,12,18]] two-gross code (l=12, m=12), same
// A, B as the gross code.
var TwoGrossParams = Params{L: 12, M: 12, AX: 3, AY: [2]int{1, 2}, BY: 3, BX: [2]int{1, 2}}

// ParamsFor returns the construction parameters for a code.
func ParamsFor(c nativemeas.Code) Params {
	if c == nativemeas.TwoGross {
		return TwoGrossParams
	}
	return GrossParams
}

// matrix is a dense GF(2) matrix, one byte (0/1) per entry.
type matrix [][]byte

func newMatrix(rows, cols int) matrix {
	m := make(matrix, rows)
	for i := range m {
		m[i] = make([]byte, cols)
	}
	return m
}

func identity(size int) matrix {
	m := newMatrix(size, size)
	for i := 0; i < size; i++ {
		m[i][i] = 1
	}
	return m
}

// shiftBy is the size x size cyclic shift-by-k permutation matrix.
func shiftBy(size, k int) matrix {
	m := newMatrix(size, size)
	for i := 0; i < size; i++ {
		j := ((i+k)%size + size) % size
		m[i][j] = 1
	}
	return m
}

func kron(a, b matrix) matrix {
	ar, ac := len(a), len(a[0])
	br, bc := len(b), len(b[0])
	out := newMatrix(ar*br, ac*bc)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if a[i][j] == 0 {
				continue
			}
			for bi := 0; bi < br; bi++ {
				for bj := 0; bj < bc; bj++ {
					out[i*br+bi][j*bc+bj] = b[bi][bj]
				}
			}
		}
	}
	return out
}

func xorInto(dst, src matrix) {
	for i := range dst {
		for j := range dst[i] {
			dst[i][j] ^= src[i][j]
		}
	}
}

func transpose(a matrix) matrix {
	out := newMatrix(len(a[0]), len(a))
	for i := range a {
		for j := range a[i] {
			out[j][i] = a[i][j]
		}
	}
	return out
}

func hconcat(a, b matrix) matrix {
	out := newMatrix(len(a), len(a[0])+len(b[0]))
	for i := range a {
		copy(out[i], a[i])
		copy(out[i][len(a[0]):], b[i])
	}
	return out
}

// Code holds the realized parity-check matrices for one bivariate-bicycle
// code instance.
type Code struct {
	Params Params
	Hx, Hz matrix
}

// Build constructs the parity-check matrices for the given code.
func Build(c nativemeas.Code) Code {
	p := ParamsFor(c)
	idL, idM := identity(p.L), identity(p.M)

	a := kron(shiftBy(p.L, p.AX), idM)
	xorInto(a, kron(idL, shiftBy(p.M, p.AY[0])))
	xorInto(a, kron(idL, shiftBy(p.M, p.AY[1])))

	b := kron(idL, shiftBy(p.M, p.BY))
	xorInto(b, kron(shiftBy(p.L, p.BX[0]), idM))
	xorInto(b, kron(shiftBy(p.L, p.BX[1]), idM))

	hx := hconcat(a, b)
	hz := hconcat(transpose(b), transpose(a))
	return Code{Params: p, Hx: hx, Hz: hz}
}

// For is a convenience alias for Build.
func For(c nativemeas.Code) Code { return Build(c) }

// NumQubits returns the block length n = 2*l*m.
func (c Code) NumQubits() int { return 2 * c.Params.L * c.Params.M }

// NumChecks returns the number of X (equivalently Z) stabilizer checks,
// l*m.
func (c Code) NumChecks() int { return c.Params.L * c.Params.M }

// RowWeight returns the Hamming weight of row i of m.
func rowWeight(m matrix, i int) int {
	w := 0
	for _, v := range m[i] {
		w += int(v)
	}
	return w
}

// ColWeight returns the Hamming weight of column j of m.
func colWeight(m matrix, j int) int {
	w := 0
	for i := range m {
		w += int(m[i][j])
	}
	return w
}

// CheckWeights reports every row weight of Hx and Hz. Each row is the
// concatenation of a row of a 3-term A (or B) block with a row of a
// 3-term B (or A) block, so every check has weight 6.
func (c Code) CheckWeights() (hx, hz []int) {
	hx = make([]int, len(c.Hx))
	for i := range c.Hx {
		hx[i] = rowWeight(c.Hx, i)
	}
	hz = make([]int, len(c.Hz))
	for i := range c.Hz {
		hz[i] = rowWeight(c.Hz, i)
	}
	return hx, hz
}

// QubitWeights reports every column weight of Hx and Hz: a
// bivariate-bicycle code's qubits each participate in exactly 3 X-checks
// and 3 Z-checks.
func (c Code) QubitWeights() (hx, hz []int) {
	hx = make([]int, len(c.Hx[0]))
	for j := range c.Hx[0] {
		hx[j] = colWeight(c.Hx, j)
	}
	hz = make([]int, len(c.Hz[0]))
	for j := range c.Hz[0] {
		hz[j] = colWeight(c.Hz, j)
	}
	return hx, hz
}

// Fingerprint is the SHA-256 hash of Hx followed by Hz, serialized
// row-major as one byte per entry, prefixed by l and m as little-endian
// 32-bit integers so codes with the same matrices but different block
// dimensions never collide.
func (c Code) Fingerprint() [32]byte {
	h := sha256.New()
	writeUint32(h, uint32(c.Params.L))
	writeUint32(h, uint32(c.Params.M))
	for _, row := range c.Hx {
		h.Write(row)
	}
	for _, row := range c.Hz {
		h.Write(row)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func writeUint32(w io.Writer, v uint32) {
	buf := []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	w.Write(buf)
}
