package rates

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/rm"
)

// maxBoundM keeps 2*|RM(r,m)|^2 inside 256 bits.
const maxBoundM = 127

// belowBound reports k <= 2^m/(2+sqrt 2), decided exactly as
// 2^m - 2k >= 0 and 2k^2 <= (2^m - 2k)^2.
func belowBound(k *uint256.Int, m int) (bool, error) {
	if m > maxBoundM {
		return false, errors.Wrapf(ErrOverflow, "bound at m=%d", m)
	}
	n, err := pow2(m)
	if err != nil {
		return false, err
	}
	k2 := new(uint256.Int).Lsh(k, 1)
	if n.Lt(k2) {
		return false, nil
	}
	d := new(uint256.Int).Sub(n, k2)
	lhs, err := mul(k, k2)
	if err != nil {
		return false, err
	}
	rhs, err := mul(d, d)
	if err != nil {
		return false, err
	}
	return !rhs.Lt(lhs), nil
}

// LR returns l(r): the count of m in 2r+1, 2r+2, ... before |RM(r,m)| first drops to
// 2^m/(2+sqrt 2). The binomials C(2r+i, u) are advanced by iterated products.
func LR(r int) (int, error) {
	if r < 0 {
		return 0, errors.Wrapf(rm.ErrInvalidParameters, "r=%d", r)
	}
	prods := make([]*uint256.Int, r+1)
	for u := range prods {
		c, err := binom(2*r, u)
		if err != nil {
			return 0, err
		}
		prods[u] = c
	}
	for i := 1; ; i++ {
		n := uint64(2*r + i)
		sum := new(uint256.Int)
		for u, p := range prods {
			if _, of := p.MulOverflow(p, uint256.NewInt(n)); of {
				return 0, errors.Wrapf(ErrOverflow, "l(%d) at i=%d", r, i)
			}
			p.Div(p, uint256.NewInt(n-uint64(u)))
			sum.Add(sum, p)
		}
		ok, err := belowBound(sum, 2*r+i)
		if err != nil {
			return 0, err
		}
		if ok {
			return i - 1, nil
		}
	}
}

// ObtainLR returns the largest m > 2r for which |RM(r,m)| exceeds 2^m/(2+sqrt 2),
// searching m directly. It equals 2r + LR(r).
func ObtainLR(r int) (int, error) {
	if r < 0 {
		return 0, errors.Wrapf(rm.ErrInvalidParameters, "r=%d", r)
	}
	for m := 2*r + 1; ; m++ {
		k, err := binomSum(m, 0, r)
		if err != nil {
			return 0, err
		}
		ok, err := belowBound(k, m)
		if err != nil {
			return 0, err
		}
		if ok {
			return m - 1, nil
		}
	}
}

// Point is one (r, m) with a positive catalytic rate and a code that is not
// self-dual containing.
type Point struct {
	R, M      int
	Catalytic Rate
	EA        Rate
	// Bound marks points inside the Theorem 3 range 2r < m <= 2r+l(r).
	Bound bool
}

// Points scans 1 <= m <= mMax and 0 <= r <= (m-1)/2.
func Points(mMax int) ([]Point, error) {
	if mMax < 1 || 2*mMax > MaxM {
		return nil, errors.Wrapf(rm.ErrInvalidParameters, "mMax=%d", mMax)
	}
	var out []Point
	lr := map[int]int{}
	for m := 1; m <= mMax; m++ {
		for r := 0; r <= (m-1)/2; r++ {
			if 2*(m-r-1) < m {
				continue
			}
			c, err := Catalytic(r, m)
			if err != nil {
				return nil, err
			}
			if !c.Positive() {
				continue
			}
			ea, err := EA(r, r, m, m)
			if err != nil {
				return nil, err
			}
			l, ok := lr[r]
			if !ok {
				if l, err = LR(r); err != nil {
					return nil, err
				}
				lr[r] = l
			}
			out = append(out, Point{R: r, M: m, Catalytic: c, EA: ea, Bound: m <= 2*r+l})
		}
	}
	return out, nil
}
