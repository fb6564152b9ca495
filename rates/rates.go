// Package rates evaluates the code rates of two-product (TPC) constructions built from
// Reed-Muller codes, and the range of m covered by the Theorem 3 bound.
package rates

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/qrm-go/qrm/rm"
)

// MaxM bounds m1+m2 so that 2^(m1+m2) fits in 256 bits.
const MaxM = 255

// ErrOverflow is returned when an exact intermediate leaves 256 bits.
var ErrOverflow = errors.New("rates: 256-bit overflow")

// Precision is the number of decimal places kept by Rate.Decimal.
var Precision int32 = 24

// Rate is an exact signed fraction Num/Den.
type Rate struct {
	Neg bool
	Num *uint256.Int
	Den *uint256.Int
}

// Decimal renders r rounded to Precision places.
func (r Rate) Decimal() decimal.Decimal {
	n := decimal.NewFromBigInt(r.Num.ToBig(), 0)
	if r.Neg {
		n = n.Neg()
	}
	return n.DivRound(decimal.NewFromBigInt(r.Den.ToBig(), 0), Precision)
}

// Float64 approximates r.
func (r Rate) Float64() float64 {
	f, _ := r.Decimal().Float64()
	return f
}

// Positive reports r > 0.
func (r Rate) Positive() bool {
	return !r.Neg && !r.Num.IsZero()
}

func (r Rate) String() string {
	return r.Decimal().StringFixed(8)
}

func binom(m, k int) (*uint256.Int, error) {
	if k < 0 || k > m {
		return new(uint256.Int), nil
	}
	if k > m-k {
		k = m - k
	}
	c := uint256.NewInt(1)
	for i := 0; i < k; i++ {
		if _, of := c.MulOverflow(c, uint256.NewInt(uint64(m-i))); of {
			return nil, errors.Wrapf(ErrOverflow, "C(%d,%d)", m, k)
		}
		c.Div(c, uint256.NewInt(uint64(i+1)))
	}
	return c, nil
}

// binomSum is sum_{i=lo..hi} C(m,i); an empty range sums to zero.
func binomSum(m, lo, hi int) (*uint256.Int, error) {
	s := new(uint256.Int)
	for i := lo; i <= hi; i++ {
		c, err := binom(m, i)
		if err != nil {
			return nil, err
		}
		if _, of := s.AddOverflow(s, c); of {
			return nil, errors.Wrapf(ErrOverflow, "sum C(%d,%d..%d)", m, lo, hi)
		}
	}
	return s, nil
}

func pow2(n int) (*uint256.Int, error) {
	if n < 0 || n > MaxM {
		return nil, errors.Wrapf(rm.ErrInvalidParameters, "2^%d", n)
	}
	return new(uint256.Int).Lsh(uint256.NewInt(1), uint(n)), nil
}

func mul(a, b *uint256.Int) (*uint256.Int, error) {
	z, of := new(uint256.Int).MulOverflow(a, b)
	if of {
		return nil, ErrOverflow
	}
	return z, nil
}

// signed returns a+b-c as a Rate numerator over den.
func signed(a, b, c, den *uint256.Int) (Rate, error) {
	pos, of := new(uint256.Int).AddOverflow(a, b)
	if of {
		return Rate{}, ErrOverflow
	}
	r := Rate{Den: den}
	if pos.Lt(c) {
		r.Neg = true
		r.Num = new(uint256.Int).Sub(c, pos)
	} else {
		r.Num = new(uint256.Int).Sub(pos, c)
	}
	return r, nil
}

func checkPair(r1, r2, m1, m2 int) error {
	if m1 < 0 || m2 < 0 || m1+m2 > MaxM {
		return errors.Wrapf(rm.ErrInvalidParameters, "m1=%d m2=%d", m1, m2)
	}
	if r1 < -1 || r1 > m1 || r2 < -1 || r2 > m2 {
		return errors.Wrapf(rm.ErrInvalidParameters, "r1=%d r2=%d for m1=%d m2=%d", r1, r2, m1, m2)
	}
	return nil
}

// tpc returns 2^(m1+m2), the stabilizer overlap 2*|Hrm1|*|Hrm2| and the shared
// entanglement term |RM(r1+1..m1-r1-1)|*|RM(r2+1..m2-r2-1)|.
func tpc(r1, r2, m1, m2 int) (n, stab, ea *uint256.Int, err error) {
	if err = checkPair(r1, r2, m1, m2); err != nil {
		return nil, nil, nil, err
	}
	if n, err = pow2(m1 + m2); err != nil {
		return nil, nil, nil, err
	}
	h1, err := binomSum(m1, 0, m1-r1-1)
	if err != nil {
		return nil, nil, nil, err
	}
	h2, err := binomSum(m2, 0, m2-r2-1)
	if err != nil {
		return nil, nil, nil, err
	}
	if stab, err = mul(h1, h2); err != nil {
		return nil, nil, nil, err
	}
	if stab, err = mul(stab, uint256.NewInt(2)); err != nil {
		return nil, nil, nil, err
	}
	e1, err := binomSum(m1, r1+1, m1-r1-1)
	if err != nil {
		return nil, nil, nil, err
	}
	e2, err := binomSum(m2, r2+1, m2-r2-1)
	if err != nil {
		return nil, nil, nil, err
	}
	if ea, err = mul(e1, e2); err != nil {
		return nil, nil, nil, err
	}
	return n, stab, ea, nil
}

// CatalyticAsym is the catalytic rate of the product of RM(r1,m1) and RM(r2,m2).
func CatalyticAsym(r1, r2, m1, m2 int) (Rate, error) {
	n, stab, _, err := tpc(r1, r2, m1, m2)
	if err != nil {
		return Rate{}, err
	}
	return signed(n, new(uint256.Int), stab, n)
}

// Catalytic is CatalyticAsym with both factors RM(r,m).
func Catalytic(r, m int) (Rate, error) {
	return CatalyticAsym(r, r, m, m)
}

// EA is the entanglement-assisted rate of the product of RM(r1,m1) and RM(r2,m2).
func EA(r1, r2, m1, m2 int) (Rate, error) {
	n, stab, ea, err := tpc(r1, r2, m1, m2)
	if err != nil {
		return Rate{}, err
	}
	return signed(n, ea, stab, n)
}

// CatalyticRM is (2|RM(r,m)| - 2^m) / 2^m.
func CatalyticRM(r, m int) (Rate, error) {
	if m < 0 || m > MaxM || r < -1 || r > m {
		return Rate{}, errors.Wrapf(rm.ErrInvalidParameters, "r=%d m=%d", r, m)
	}
	n, err := pow2(m)
	if err != nil {
		return Rate{}, err
	}
	k, err := binomSum(m, 0, r)
	if err != nil {
		return Rate{}, err
	}
	k2, err := mul(k, uint256.NewInt(2))
	if err != nil {
		return Rate{}, err
	}
	return signed(k2, new(uint256.Int), n, n)
}
