// Package partition routes the qubit labels of one recursion level into the two
// Plotkin halves.
package partition

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/rm"
)

// Spec selects the splitting variable at one level and, optionally, at the levels below.
// A nil Spec or nil child means the standard split (Index 0).
type Spec struct {
	Index int
	Sub1  *Spec
	Sub2  *Spec
}

// Partition is the outcome of one split.
type Partition struct {
	Q1, Q2     []int
	Sub1, Sub2 *Spec
}

// SplitRow returns the degree-one row at position m-splitIndex-1 of
// GeneratorsR1R2(1,1,m); labels under its ones form the second half.
func SplitRow(m, splitIndex int) (rm.Vector, error) {
	if m < 1 || splitIndex < 0 || splitIndex >= m {
		return nil, errors.Wrapf(rm.ErrInvalidParameters, "split index %d for m=%d", splitIndex, m)
	}
	rows, err := rm.GeneratorsR1R2(1, 1, m)
	if err != nil {
		return nil, err
	}
	return rows[m-splitIndex-1], nil
}

func route(labels []int, row rm.Vector) (q1, q2 []int, err error) {
	if len(labels) != len(row) {
		return nil, nil, errors.Wrapf(rm.ErrInvalidParameters, "%d labels for a row of length %d", len(labels), len(row))
	}
	q1 = make([]int, 0, len(row)/2+1)
	q2 = make([]int, 0, len(row)/2+1)
	for i, b := range row {
		if b == 1 {
			q2 = append(q2, labels[i])
		} else {
			q1 = append(q1, labels[i])
		}
	}
	return q1, q2, nil
}

// Split routes 2^m labels into two halves of 2^(m-1), keeping relative order.
func Split(labels []int, splitIndex, m int) (q1, q2 []int, err error) {
	row, err := SplitRow(m, splitIndex)
	if err != nil {
		return nil, nil, err
	}
	return route(labels, row)
}

// SplitPunctured routes the labels left after removing the dropped positions of a
// 2^m layout. dropped indexes the full layout.
func SplitPunctured(labels []int, splitIndex, m int, dropped ...int) (q1, q2 []int, err error) {
	row, err := SplitRow(m, splitIndex)
	if err != nil {
		return nil, nil, err
	}
	if row, err = rm.Puncture(row, dropped...); err != nil {
		return nil, nil, err
	}
	return route(labels, row)
}

func index(spec *Spec) (int, *Spec, *Spec) {
	if spec == nil {
		return 0, nil, nil
	}
	return spec.Index, spec.Sub1, spec.Sub2
}

// Apply splits labels according to spec.
func Apply(spec *Spec, labels []int, m int) (*Partition, error) {
	idx, s1, s2 := index(spec)
	q1, q2, err := Split(labels, idx, m)
	if err != nil {
		return nil, err
	}
	return &Partition{Q1: q1, Q2: q2, Sub1: s1, Sub2: s2}, nil
}

// ApplyPunctured is Apply for a layout whose evaluation point 0 has been dropped.
// Point 0 lies in the first half for every split, so the first half is the shorter one.
func ApplyPunctured(spec *Spec, labels []int, m int) (*Partition, error) {
	idx, s1, s2 := index(spec)
	q1, q2, err := SplitPunctured(labels, idx, m, 0)
	if err != nil {
		return nil, err
	}
	return &Partition{Q1: q1, Q2: q2, Sub1: s1, Sub2: s2}, nil
}

// Validate checks every index in spec against the depth it will be used at.
func (s *Spec) Validate(m int) error {
	if s == nil {
		return nil
	}
	if s.Index < 0 || s.Index >= m {
		return errors.Wrapf(rm.ErrInvalidParameters, "split index %d at m=%d", s.Index, m)
	}
	if err := s.Sub1.Validate(m - 1); err != nil {
		return err
	}
	return s.Sub2.Validate(m - 1)
}

// Uniform returns a spec that splits on the same index at every level, clamped to the
// variables left at that depth.
func Uniform(index, m int) *Spec {
	if m <= 0 {
		return nil
	}
	i := index
	if i >= m {
		i = m - 1
	}
	return &Spec{Index: i, Sub1: Uniform(index, m-1), Sub2: Uniform(index, m-1)}
}

// Random draws an independent split index for every node of an m-level recursion.
func Random(rng *rand.Rand, m int) *Spec {
	if m <= 0 {
		return nil
	}
	return &Spec{Index: rng.Intn(m), Sub1: Random(rng, m-1), Sub2: Random(rng, m-1)}
}
