package rm

import (
	"math/bits"
	"sort"

	"github.com/pkg/errors"
)

// Set is a sorted subset of the variables {0..m-1}.
type Set []int

// Orientation fixes how bit positions of a row index map to variables.
type Orientation uint8

const (
	// MSBFirst maps bit n of an index to variable m-1-n.
	MSBFirst Orientation = iota
	// LSBFirst maps bit n of an index to variable n.
	LSBFirst
)

func (o Orientation) variable(bit, m int) int {
	if o == LSBFirst {
		return bit
	}
	return m - 1 - bit
}

// IntSet returns the variables selected by the set bits of i.
func IntSet(i, m int, o Orientation) Set {
	s := make(Set, 0, bits.OnesCount(uint(i)))
	for n := 0; n < m; n++ {
		if i>>n&1 == 1 {
			s = append(s, o.variable(n, m))
		}
	}
	sort.Ints(s)
	return s
}

// SetInt is the inverse of IntSet for the same orientation.
func SetInt(s Set, m int, o Orientation) int {
	i := 0
	for _, v := range s {
		i |= 1 << o.variable(v, m)
	}
	return i
}

// EvalSet returns the variable set of the monomial whose evaluation is row,
// read off the row's leading one.
func EvalSet(row Vector, o Orientation) (Set, error) {
	m := bits.TrailingZeros(uint(len(row)))
	if len(row) == 0 || 1<<m != len(row) {
		return nil, errors.Wrapf(ErrInvalidParameters, "row length %d is not a power of two", len(row))
	}
	lead, err := LeadingBitIndex(row)
	if err != nil {
		return nil, err
	}
	return IntSet(lead, m, o), nil
}

// MinSet grows se by the smallest variables it lacks until it has target elements.
// Every set se ∪ T, T a subset of the added variables, is returned; sets that
// contain a later addition come first and se itself is last.
func MinSet(se Set, target int) []Set {
	ind := make(map[int]bool, target)
	for _, v := range se {
		ind[v] = true
	}
	out := []Set{append(Set{}, se...)}
	size := len(se)
	for i := 0; size < target; i++ {
		if ind[i] {
			continue
		}
		grown := make([]Set, 0, 2*len(out))
		for _, s := range out {
			grown = append(grown, append(append(Set{}, s...), i))
		}
		out = append(grown, out...)
		ind[i] = true
		size++
	}
	for _, s := range out {
		sort.Ints(s)
	}
	return out
}

// MinSetInts maps MinSet(se, target) back to row indices.
func MinSetInts(se Set, target, m int, o Orientation) []int {
	sets := MinSet(se, target)
	out := make([]int, len(sets))
	for k, s := range sets {
		out[k] = SetInt(s, m, o)
	}
	return out
}
