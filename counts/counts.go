// Package counts predicts the gate counts of the synth encoders from (r, m) alone.
package counts

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/rm"
)

// MaxM bounds m so that every count fits in an int64.
const MaxM = 40

type fn uint8

const (
	fnUrr fn = iota
	fnUrm
	fnNo1
	fnQuantum
	fnPunctured
)

type key struct {
	fn      fn
	a, b, c int
	flag    bool
}

var memo *lru.Cache[key, int]

func init() {
	var err error
	if memo, err = lru.New[key, int](4096); err != nil {
		panic(err)
	}
}

func cached(k key, f func() int) int {
	if v, ok := memo.Get(k); ok {
		return v
	}
	v := f()
	memo.Add(k, v)
	return v
}

func invalid(format string, args ...any) error {
	return errors.Wrapf(rm.ErrInvalidParameters, format, args...)
}

func checkM(m int) error {
	if m < 0 || m > MaxM {
		return invalid("m=%d outside [0,%d]", m, MaxM)
	}
	return nil
}

// BinomSum is sum_{i=lo..hi} C(m,i).
func BinomSum(m, lo, hi int) (int, error) {
	return rm.BinomSum(m, lo, hi)
}

// binomSum is BinomSum with an empty range summing to zero and hi clamped to m.
func binomSum(m, lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if hi > m {
		hi = m
	}
	s := 0
	for i := lo; i <= hi; i++ {
		s += rm.Binom(m, i)
	}
	return s
}

func symmetric(r, m int) error {
	if err := checkM(m); err != nil {
		return err
	}
	if r < 0 || r > m || r < m-r-1 {
		return invalid("r=%d m=%d needs 0 <= r <= m and r >= m-r-1", r, m)
	}
	return nil
}

// Naive counts the flat encoder on untransformed rows: every row of Grm(r,m) fans out
// from its leading qubit to the rest of its support.
func Naive(r, m int) (int, error) {
	if err := symmetric(r, m); err != nil {
		return 0, err
	}
	n := 0
	for i := 0; i <= r; i++ {
		n += rm.Binom(m, i) * (1<<(m-i) - 1)
	}
	return n, nil
}

// Standard counts the flat encoder on minimum-weight rows.
func Standard(r, m int) (int, error) {
	if err := symmetric(r, m); err != nil {
		return 0, err
	}
	s := m - r - 1
	if r == m {
		return 0, nil
	}
	if r == s {
		return binomSum(m, 0, s) * (1<<(r+1) - 1), nil
	}
	return binomSum(m, m-r, r)*(1<<(m-r)-1) + binomSum(m, 0, s)*(1<<(r+1)-1), nil
}

// Urr counts the basis encoder of the full space on 2^r qubits.
func Urr(r int) (int, error) {
	if err := checkM(r); err != nil {
		return 0, err
	}
	return urr(r), nil
}

func urr(r int) int {
	if r <= 0 {
		return 0
	}
	return cached(key{fn: fnUrr, a: r}, func() int { return 1<<(r-1) + 2*urr(r-1) })
}

// Recursive counts the symmetric Plotkin encoder.
func Recursive(r, m int) (int, error) {
	if err := symmetric(r, m); err != nil {
		return 0, err
	}
	return recursive(r, m), nil
}

func recursive(r, m int) int {
	if r == m {
		return urr(r)
	}
	s := m - r - 1
	if s == r {
		return rm.Binom(m-1, s) + 2*recursive(r, m-1)
	}
	return binomSum(m-1, m-r, r) + rm.Binom(m-1, s) + 2*recursive(r, m-1)
}

// Urm counts the basis encoder of RM(r,m).
func Urm(r, m int) (int, error) {
	if err := checkM(m); err != nil {
		return 0, err
	}
	if r < -1 || r > m {
		return 0, invalid("Urm needs -1 <= r <= m, got r=%d m=%d", r, m)
	}
	return urm(r, m), nil
}

func urm(r, m int) int {
	switch {
	case r < 0:
		return 0
	case r >= m:
		return urr(m)
	case r == 0:
		return 1<<m - 1
	}
	return cached(key{fn: fnUrm, a: r, b: m}, func() int { return binomSum(m-1, 0, r) + 2*urm(r, m-1) })
}

// quantum counts a node with stabilizer degree s and logical degree t on m variables.
func quantum(s, t, m int) int {
	if s < 0 {
		return urm(t, m)
	}
	if m == 0 {
		return 0
	}
	return cached(key{fn: fnQuantum, a: s, b: t, c: m}, func() int {
		hi := t
		if hi > m-1 {
			hi = m - 1
		}
		return binomSum(m-1, s, hi) + 2*quantum(s-1, t, m-1)
	})
}

// Asymmetric counts the encoder with X stabilizers RM(r,m) and logical span RM(rIn,m).
func Asymmetric(r, m, rIn int) (int, error) {
	if err := checkM(m); err != nil {
		return 0, err
	}
	if r < -1 || r > rIn || rIn > m {
		return 0, invalid("Asymmetric needs -1 <= r <= rIn <= m, got r=%d rIn=%d m=%d", r, rIn, m)
	}
	return quantum(r, rIn, m), nil
}

// PuncturedNo1 counts the basis encoder of every row but the all-ones one, punctured at 0.
func PuncturedNo1(m int) (int, error) {
	if err := checkM(m); err != nil {
		return 0, err
	}
	return no1(m), nil
}

func no1(m int) int {
	if m <= 1 {
		return 0
	}
	return cached(key{fn: fnNo1, a: m}, func() int { return 1<<(m-1) - 1 + no1(m-1) + urr(m-1) })
}

// Punctured counts the punctured encoder. statePrep drops the all-ones logical and the
// fan-out that prepares it.
func Punctured(r, m int, statePrep bool) (int, error) {
	if err := checkM(m); err != nil {
		return 0, err
	}
	if r >= m || r < m-r-1 {
		return 0, invalid("Punctured needs r < m and r >= m-r-1, got r=%d m=%d", r, m)
	}
	return punctured(m-r-1, r, m, statePrep), nil
}

func punctured(s, t, m int, statePrep bool) int {
	if s == 0 {
		if statePrep {
			return no1(m)
		}
		return no1(m) + 1<<m - 2
	}
	return cached(key{fn: fnPunctured, a: s, b: t, c: m, flag: statePrep}, func() int {
		return binomSum(m-1, s, t) + punctured(s-1, t, m-1, statePrep) + quantum(s-1, t, m-1)
	})
}
