package rm

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Vector is a GF(2) row; every entry is 0 or 1.
type Vector []uint8

// Matrix is an ordered list of rows of equal length.
type Matrix []Vector

// Weight returns the number of ones in v.
func (v Vector) Weight() int {
	w := 0
	for _, b := range v {
		w += int(b & 1)
	}
	return w
}

// Indexes returns the positions of the nonzero entries, ascending.
func (v Vector) Indexes() []int {
	out := make([]int, 0, len(v))
	for i, b := range v {
		if b&1 == 1 {
			out = append(out, i)
		}
	}
	return out
}

// Key renders v as a string usable as a map key.
func (v Vector) Key() string {
	b := make([]byte, len(v))
	for i, x := range v {
		b[i] = '0' + x&1
	}
	return string(b)
}

// Concat returns v followed by w.
func (v Vector) Concat(w Vector) Vector {
	out := make(Vector, 0, len(v)+len(w))
	return append(append(out, v...), w...)
}

// Zero returns the all-zero vector of length n.
func Zero(n int) Vector { return make(Vector, n) }

// LeadingBitIndex returns the index of the first nonzero entry of row.
func LeadingBitIndex(row Vector) (int, error) {
	for i, b := range row {
		if b&1 == 1 {
			return i, nil
		}
	}
	return -1, errors.WithStack(ErrDegenerateRow)
}

// Xor returns v+w over GF(2).
func (v Vector) Xor(w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = (v[i] ^ w[i]) & 1
	}
	return out
}

// Equal reports whether v and w have the same entries.
func (v Vector) Equal(w Vector) bool {
	if len(v) != len(w) {
		return false
	}
	for i := range v {
		if v[i]&1 != w[i]&1 {
			return false
		}
	}
	return true
}

// Equal reports row-by-row equality.
func (a Matrix) Equal(b Matrix) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Columns returns the row length, or 0 for an empty matrix.
func (a Matrix) Columns() int {
	if len(a) == 0 {
		return 0
	}
	return len(a[0])
}

// FullMatrix returns the m-fold Kronecker power of [[1,1],[0,1]].
// Row i evaluates the monomial whose variables are the set bits of i,
// so its support is {j : i&j == i} and its leading one sits at column i.
func FullMatrix(m int) (Matrix, error) {
	if err := checkM(m); err != nil {
		return nil, err
	}
	G := Matrix{Vector{1}}
	for step := 0; step < m; step++ {
		a := len(G)
		NG := make(Matrix, 2*a)
		for i := range NG {
			NG[i] = make(Vector, 2*a)
		}
		for i := 0; i < a; i++ {
			for j := 0; j < a; j++ {
				v := G[i][j]
				NG[i][j] = v
				NG[i][a+j] = v
				NG[a+i][a+j] = v
			}
		}
		G = NG
	}
	return G, nil
}

// Row builds row i of FullMatrix(m) directly.
func Row(i, m int) Vector {
	n := 1 << m
	v := make(Vector, n)
	for j := i; j < n; j = (j + 1) | i {
		v[j] = 1
	}
	return v
}

// Degree is the degree of the monomial indexed by i.
func Degree(i int) int { return bits.OnesCount(uint(i)) }

// Monomials lists, ascending, the row indices of FullMatrix(m) whose degree lies in [lo,hi].
// An empty band yields an empty slice.
func Monomials(lo, hi, m int) []int {
	if lo < 0 {
		lo = 0
	}
	if hi > m {
		hi = m
	}
	if lo > hi || m < 0 {
		return []int{}
	}
	out := make([]int, 0, binomSum(m, lo, hi))
	for i := 0; i < 1<<m; i++ {
		if d := Degree(i); d >= lo && d <= hi {
			out = append(out, i)
		}
	}
	return out
}

func band(lo, hi, m int) (Matrix, error) {
	if err := checkM(m); err != nil {
		return nil, err
	}
	idx := Monomials(lo, hi, m)
	out := make(Matrix, len(idx))
	for k, i := range idx {
		out[k] = Row(i, m)
	}
	return out, nil
}

// Grm returns the generator of RM(r,m): rows of FullMatrix(m) of weight at least 2^(m-r).
// r < 0 gives an empty matrix and r >= m gives every row.
func Grm(r, m int) (Matrix, error) {
	return band(0, r, m)
}

// Hrm returns the parity-check matrix of RM(r,m): rows of weight at least 2^(r+1).
func Hrm(r, m int) (Matrix, error) {
	return band(0, m-r-1, m)
}

// Hqrm stacks Hrm(r,m) as X checks (H|0) followed by Z checks (0|H).
func Hqrm(r, m int) (Matrix, error) {
	h, err := Hrm(r, m)
	if err != nil {
		return nil, err
	}
	n := 1 << m
	out := make(Matrix, 0, 2*len(h))
	for _, row := range h {
		out = append(out, row.Concat(Zero(n)))
	}
	for _, row := range h {
		out = append(out, Zero(n).Concat(row))
	}
	return out, nil
}

// GeneratorsR1R2 keeps the rows of degree in [r1,r2].
func GeneratorsR1R2(r1, r2, m int) (Matrix, error) {
	if r1 > r2+1 {
		return nil, errors.Wrapf(ErrInvalidParameters, "GeneratorsR1R2(r1=%d, r2=%d)", r1, r2)
	}
	return band(r1, r2, m)
}

// GeneratorQuotient returns the rows of Grm(r1,m) not in Grm(r2,m), i.e. degree in (r2,r1].
func GeneratorQuotient(r1, r2, m int) (Matrix, error) {
	if r2 > r1 {
		return nil, errors.Wrapf(ErrInvalidParameters, "GeneratorQuotient(r1=%d, r2=%d)", r1, r2)
	}
	return band(r2+1, r1, m)
}

// QRMGenerator splits Grm(r1,m1) for the CSS pair built from RM(r1,m1) and RM(r2,m2).
// gperp is Hrm(r2,m2) (degree <= m-r2-1); glogical keeps the rows of weight 2^i with
// m1-r1 <= i <= r2, i.e. degree in [m-r2, r1]. The two parts are disjoint and together
// give Grm(r1,m1).
func QRMGenerator(r1, m1, r2, m2 int) (gperp, glogical Matrix, err error) {
	if m1 != m2 || r1 < 0 || r2 < 0 || r1 > m1 || r2 > m2 || m2-r2-1 > r1 {
		return nil, nil, errors.Wrapf(ErrInvalidParameters, "QRMGenerator((%d,%d),(%d,%d))", r1, m1, r2, m2)
	}
	m := m1
	if gperp, err = band(0, m-r2-1, m); err != nil {
		return nil, nil, err
	}
	if glogical, err = band(m-r2, r1, m); err != nil {
		return nil, nil, err
	}
	return gperp, glogical, nil
}

// Binom returns n choose k, zero outside 0 <= k <= n.
func Binom(n, k int) int {
	if k < 0 || n < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	c := 1
	for i := 0; i < k; i++ {
		c = c * (n - i) / (i + 1)
	}
	return c
}

// BinomSum returns sum_{i=lo..hi} C(n,i).
func BinomSum(n, lo, hi int) (int, error) {
	if lo < 0 || lo > hi || hi > n {
		return 0, errors.Wrapf(ErrInvalidParameters, "BinomSum(%d, %d, %d)", n, lo, hi)
	}
	return binomSum(n, lo, hi), nil
}

func binomSum(n, lo, hi int) int {
	s := 0
	for i := lo; i <= hi; i++ {
		s += Binom(n, i)
	}
	return s
}
