// Package perm implements partial injective maps between qubit labels.
package perm

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/circuit"
)

var (
	// ErrOverlap reports two permutations whose domains intersect.
	ErrOverlap = errors.New("permutation domains overlap")
	// ErrNotInjective reports two keys mapped to the same value.
	ErrNotInjective = errors.New("permutation is not injective")
	// ErrNotInDomain reports a lookup of a label the permutation does not map.
	ErrNotInDomain = errors.New("label not in permutation domain")
)

// Permutation is a partial injective map on integer labels with inverse lookup.
// The zero value is the empty permutation.
type Permutation struct {
	fwd map[int]int
	inv map[int]int
}

// New returns an empty permutation.
func New() *Permutation {
	return &Permutation{fwd: map[int]int{}, inv: map[int]int{}}
}

// Identity maps every label to itself.
func Identity(labels []int) *Permutation {
	p := New()
	for _, l := range labels {
		p.fwd[l] = l
		p.inv[l] = l
	}
	return p
}

// FromMap copies m, rejecting repeated values.
func FromMap(m map[int]int) (*Permutation, error) {
	p := New()
	for k, v := range m {
		if err := p.Set(k, v); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// FromVector maps position i to v[i].
func FromVector(v []int) (*Permutation, error) {
	p := New()
	for i, x := range v {
		if err := p.Set(i, x); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Permutation) init() {
	if p.fwd == nil {
		p.fwd = map[int]int{}
		p.inv = map[int]int{}
	}
}

// Set adds k -> v. Rebinding a key or reusing a value is an error.
func (p *Permutation) Set(k, v int) error {
	p.init()
	if old, ok := p.fwd[k]; ok {
		if old == v {
			return nil
		}
		return errors.Wrapf(ErrOverlap, "key %d already maps to %d", k, old)
	}
	if old, ok := p.inv[v]; ok {
		return errors.Wrapf(ErrNotInjective, "value %d already image of %d", v, old)
	}
	p.fwd[k] = v
	p.inv[v] = k
	return nil
}

// Get returns the image of k.
func (p *Permutation) Get(k int) (int, bool) {
	v, ok := p.fwd[k]
	return v, ok
}

// Inv returns the preimage of v.
func (p *Permutation) Inv(v int) (int, bool) {
	k, ok := p.inv[v]
	return k, ok
}

// Apply is Get with an error for labels outside the domain.
func (p *Permutation) Apply(k int) (int, error) {
	v, ok := p.fwd[k]
	if !ok {
		return 0, errors.Wrapf(ErrNotInDomain, "label %d", k)
	}
	return v, nil
}

// Len is the size of the domain.
func (p *Permutation) Len() int { return len(p.fwd) }

// Keys returns the domain, ascending.
func (p *Permutation) Keys() []int {
	out := make([]int, 0, len(p.fwd))
	for k := range p.fwd {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// Values returns the image, ascending.
func (p *Permutation) Values() []int {
	out := make([]int, 0, len(p.inv))
	for v := range p.inv {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Map returns a copy of the forward map.
func (p *Permutation) Map() map[int]int {
	out := make(map[int]int, len(p.fwd))
	for k, v := range p.fwd {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy.
func (p *Permutation) Clone() *Permutation {
	q := New()
	for k, v := range p.fwd {
		q.fwd[k] = v
		q.inv[v] = k
	}
	return q
}

// Inverse swaps keys and values.
func (p *Permutation) Inverse() *Permutation {
	q := New()
	for k, v := range p.fwd {
		q.fwd[v] = k
		q.inv[k] = v
	}
	return q
}

// Equal compares forward maps.
func (p *Permutation) Equal(q *Permutation) bool {
	if p.Len() != q.Len() {
		return false
	}
	for k, v := range p.fwd {
		if w, ok := q.fwd[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// IsBijection reports whether p maps labels onto labels.
func (p *Permutation) IsBijection(labels []int) bool {
	if p.Len() != len(labels) {
		return false
	}
	for _, l := range labels {
		if _, ok := p.fwd[l]; !ok {
			return false
		}
		if _, ok := p.inv[l]; !ok {
			return false
		}
	}
	return true
}

// Union merges two permutations with disjoint domains and images.
func Union(p, q *Permutation) (*Permutation, error) {
	out := p.Clone()
	for _, k := range q.Keys() {
		if _, ok := out.fwd[k]; ok {
			return nil, errors.Wrapf(ErrOverlap, "label %d in both domains", k)
		}
		if err := out.Set(k, q.fwd[k]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Compose returns k -> p(q(k)) over q's domain.
func Compose(p, q *Permutation) (*Permutation, error) {
	out := New()
	for _, k := range q.Keys() {
		v, err := p.Apply(q.fwd[k])
		if err != nil {
			return nil, errors.Wrapf(err, "compose at key %d", k)
		}
		if err := out.Set(k, v); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Chain applies perms in order: the result sends k to perms[n-1](...perms[0](k)).
func Chain(perms ...*Permutation) (*Permutation, error) {
	if len(perms) == 0 {
		return New(), nil
	}
	out := perms[0].Clone()
	for _, p := range perms[1:] {
		var err error
		if out, err = Compose(p, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Fill completes p to a bijection of labels: labels missing from the domain are paired,
// in ascending order, with labels missing from the image. Keys or values already outside
// labels make the completion impossible.
func (p *Permutation) Fill(labels []int) error {
	p.init()
	in := make(map[int]bool, len(labels))
	for _, l := range labels {
		in[l] = true
	}
	for k, v := range p.fwd {
		if !in[k] || !in[v] {
			return errors.Wrapf(ErrNotInDomain, "fill: %d -> %d leaves the label set", k, v)
		}
	}
	keys := make([]int, 0)
	vals := make([]int, 0)
	for _, l := range sortedCopy(labels) {
		if _, ok := p.fwd[l]; !ok {
			keys = append(keys, l)
		}
		if _, ok := p.inv[l]; !ok {
			vals = append(vals, l)
		}
	}
	if len(keys) != len(vals) {
		return errors.Wrapf(ErrNotInjective, "fill: %d free keys against %d free values", len(keys), len(vals))
	}
	for i, k := range keys {
		p.fwd[k] = vals[i]
		p.inv[vals[i]] = k
	}
	return nil
}

// FillToMax fills over 0..max, max being the largest key or value.
func (p *Permutation) FillToMax() error {
	hi := -1
	for k, v := range p.fwd {
		if k > hi {
			hi = k
		}
		if v > hi {
			hi = v
		}
	}
	labels := make([]int, hi+1)
	for i := range labels {
		labels[i] = i
	}
	return p.Fill(labels)
}

// Permute maps every label of vec.
func (p *Permutation) Permute(vec []int) ([]int, error) {
	out := make([]int, len(vec))
	for i, x := range vec {
		v, err := p.Apply(x)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// InvPermute maps every label of vec through the inverse.
func (p *Permutation) InvPermute(vec []int) ([]int, error) {
	out := make([]int, len(vec))
	for i, x := range vec {
		k, ok := p.inv[x]
		if !ok {
			return nil, errors.Wrapf(ErrNotInDomain, "label %d not an image", x)
		}
		out[i] = k
	}
	return out, nil
}

// Concatenate lays positional permutations side by side: perms[i] acts on the positions
// of vecs[i], so vecs[i][j] is sent to vecs[i][perms[i](j)].
func Concatenate(perms []*Permutation, vecs [][]int) (*Permutation, error) {
	if len(perms) != len(vecs) {
		return nil, errors.Errorf("concatenate: %d permutations for %d vectors", len(perms), len(vecs))
	}
	out := New()
	for i, p := range perms {
		for _, j := range p.Keys() {
			t := p.fwd[j]
			if j < 0 || j >= len(vecs[i]) || t < 0 || t >= len(vecs[i]) {
				return nil, errors.Wrapf(ErrNotInDomain, "concatenate: position %d->%d outside vector %d", j, t, i)
			}
			k := vecs[i][j]
			if _, ok := out.fwd[k]; ok {
				return nil, errors.Wrapf(ErrOverlap, "label %d shared by two vectors", k)
			}
			if err := out.Set(k, vecs[i][t]); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// ConjugateCircuit relabels every qubit of c through p.
func (p *Permutation) ConjugateCircuit(c circuit.Circuit) (circuit.Circuit, error) {
	return c.Relabel(p.Apply)
}

func sortedCopy(v []int) []int {
	out := append([]int(nil), v...)
	sort.Ints(out)
	return out
}
