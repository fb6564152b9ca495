package perm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qrm-go/qrm/circuit"
)

func mustMap(t *testing.T, m map[int]int) *Permutation {
	t.Helper()
	p, err := FromMap(m)
	require.NoError(t, err)
	return p
}

func TestSetRejectsCollisions(t *testing.T) {
	p := New()
	require.NoError(t, p.Set(1, 2))
	require.NoError(t, p.Set(1, 2))
	require.ErrorIs(t, p.Set(1, 3), ErrOverlap)
	require.ErrorIs(t, p.Set(4, 2), ErrNotInjective)

	var zero Permutation
	require.NoError(t, zero.Set(0, 5))
	v, ok := zero.Get(0)
	require.True(t, ok)
	require.Equal(t, 5, v)
}

func TestUnionOverlap(t *testing.T) {
	a := mustMap(t, map[int]int{0: 1, 1: 0})
	b := mustMap(t, map[int]int{2: 3, 3: 2})
	u, err := Union(a, b)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, u.Keys())

	_, err = Union(a, mustMap(t, map[int]int{1: 5}))
	require.ErrorIs(t, err, ErrOverlap)
}

func TestFillPostcondition(t *testing.T) {
	labels := []int{10, 11, 12, 13, 14}
	p := mustMap(t, map[int]int{10: 13, 12: 10})
	require.NoError(t, p.Fill(labels))
	require.True(t, p.IsBijection(labels))
	require.Equal(t, labels, p.Keys())
	require.Equal(t, labels, p.Values())
	// Free keys 11,13,14 meet free values 11,12,14 in order.
	v, _ := p.Get(13)
	require.Equal(t, 12, v)

	bad := mustMap(t, map[int]int{10: 99})
	require.ErrorIs(t, bad.Fill(labels), ErrNotInDomain)
	stray := mustMap(t, map[int]int{5: 9})
	require.ErrorIs(t, stray.Fill([]int{0, 1}), ErrNotInDomain)
	require.Equal(t, 1, stray.Len())
}

func TestComposeAssociative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	labels := []int{0, 1, 2, 3, 4, 5, 6, 7}
	random := func() *Permutation {
		p, err := FromVector(rng.Perm(len(labels)))
		require.NoError(t, err)
		return p
	}
	for i := 0; i < 20; i++ {
		p, q, r := random(), random(), random()
		pq, err := Compose(p, q)
		require.NoError(t, err)
		left, err := Compose(pq, r)
		require.NoError(t, err)
		qr, err := Compose(q, r)
		require.NoError(t, err)
		right, err := Compose(p, qr)
		require.NoError(t, err)
		require.True(t, left.Equal(right))

		chained, err := Chain(r, q, p)
		require.NoError(t, err)
		require.True(t, chained.Equal(left))
	}
}

func TestComposeMissingKey(t *testing.T) {
	p := mustMap(t, map[int]int{0: 1})
	q := mustMap(t, map[int]int{5: 2})
	_, err := Compose(p, q)
	require.ErrorIs(t, err, ErrNotInDomain)
}

func TestInverseAndPermute(t *testing.T) {
	p, err := FromVector([]int{2, 0, 1})
	require.NoError(t, err)
	inv := p.Inverse()
	id, err := Compose(inv, p)
	require.NoError(t, err)
	require.True(t, id.Equal(Identity([]int{0, 1, 2})))

	out, err := p.Permute([]int{0, 1})
	require.NoError(t, err)
	require.Equal(t, []int{2, 0}, out)
	back, err := p.InvPermute(out)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, back)
}

func TestFillToMax(t *testing.T) {
	p := mustMap(t, map[int]int{0: 3})
	require.NoError(t, p.FillToMax())
	require.True(t, p.IsBijection([]int{0, 1, 2, 3}))
}

func TestConcatenate(t *testing.T) {
	swap, err := FromVector([]int{1, 0})
	require.NoError(t, err)
	p, err := Concatenate([]*Permutation{swap, swap}, [][]int{{4, 7}, {5, 6}})
	require.NoError(t, err)
	require.Equal(t, map[int]int{4: 7, 7: 4, 5: 6, 6: 5}, p.Map())

	_, err = Concatenate([]*Permutation{swap, swap}, [][]int{{4, 7}, {7, 6}})
	require.ErrorIs(t, err, ErrOverlap)
}

func TestConjugateCircuit(t *testing.T) {
	p := mustMap(t, map[int]int{0: 5, 1: 6, 2: 7})
	c, err := p.ConjugateCircuit(circuit.New().H(0).CNOT(0, 1, 2))
	require.NoError(t, err)
	require.Equal(t, []int{5, 6, 7}, c.Qubits())
	require.Equal(t, 5, c.Gate(1).Control)

	_, err = p.ConjugateCircuit(circuit.New().H(3))
	require.ErrorIs(t, err, ErrNotInDomain)
}
