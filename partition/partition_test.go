package partition

import (
	"math/rand"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/qrm-go/qrm/rm"
)

func labels(n, offset int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + offset
	}
	return out
}

func TestSplitStandard(t *testing.T) {
	q1, q2, err := Split(labels(8, 0), 0, 3)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, q1)
	require.Equal(t, []int{4, 5, 6, 7}, q2)

	q1, q2, err = Split(labels(8, 0), 2, 3)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 4, 6}, q1)
	require.Equal(t, []int{1, 3, 5, 7}, q2)
}

func TestSplitInvalid(t *testing.T) {
	_, _, err := Split(labels(8, 0), 3, 3)
	require.True(t, errors.Is(err, rm.ErrInvalidParameters))
	_, _, err = Split(labels(7, 0), 0, 3)
	require.Error(t, err)
}

func TestSplitDisjointCover(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for m := 1; m <= 6; m++ {
		ql := rng.Perm(1 << m)
		for s := 0; s < m; s++ {
			q1, q2, err := Split(ql, s, m)
			require.NoError(t, err)
			require.Len(t, q1, 1<<(m-1))
			require.Len(t, q2, 1<<(m-1))
			a := mapset.NewSet(q1...)
			b := mapset.NewSet(q2...)
			require.Zero(t, a.Intersect(b).Cardinality())
			require.True(t, a.Union(b).Equal(mapset.NewSet(ql...)))
			require.Equal(t, ql[0], q1[0])
		}
	}
}

func TestSplitPunctured(t *testing.T) {
	q1, q2, err := SplitPunctured(labels(7, 1), 0, 3, 0)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, q1)
	require.Equal(t, []int{4, 5, 6, 7}, q2)

	p, err := ApplyPunctured(&Spec{Index: 1}, labels(7, 1), 3)
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 5}, p.Q1)
	require.Equal(t, []int{2, 3, 6, 7}, p.Q2)
}

func TestApplyNested(t *testing.T) {
	spec := &Spec{Index: 1, Sub2: &Spec{Index: 1}}
	require.NoError(t, spec.Validate(3))
	p, err := Apply(spec, labels(8, 0), 3)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 4, 5}, p.Q1)
	require.Nil(t, p.Sub1)
	require.Equal(t, 1, p.Sub2.Index)

	require.Error(t, (&Spec{Index: 0, Sub1: &Spec{Index: 2}}).Validate(3))
}

func TestUniform(t *testing.T) {
	s := Uniform(2, 3)
	require.NoError(t, s.Validate(3))
	require.Equal(t, 2, s.Index)
	require.Equal(t, 1, s.Sub1.Index)
	require.Equal(t, 0, s.Sub1.Sub2.Index)
	require.Nil(t, s.Sub1.Sub2.Sub1)
}

func TestRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for m := 0; m <= 6; m++ {
		s := Random(rng, m)
		require.NoError(t, s.Validate(m))
		if m == 0 {
			require.Nil(t, s)
			continue
		}
		depth := 0
		for n := s; n != nil; n = n.Sub2 {
			depth++
		}
		require.Equal(t, m, depth)
	}
}
