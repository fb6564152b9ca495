package sim

import (
	"math/rand"
	"sort"

	"github.com/qrm-go/qrm/circuit"
)

// Bernoulli flips each qubit independently with probability p.
type Bernoulli struct {
	p   float64
	rng *rand.Rand
}

func NewBernoulli(p float64, rng *rand.Rand) *Bernoulli { return &Bernoulli{p: p, rng: rng} }

func (b *Bernoulli) Flip() bool {
	if b.p <= 0 {
		return false
	}
	if b.p >= 1 {
		return true
	}
	return b.rng.Float64() < b.p
}

// Inject picks the qubits hit by an X error.
func (b *Bernoulli) Inject(qubits []int) []int {
	var hit []int
	for _, q := range qubits {
		if b.Flip() {
			hit = append(hit, q)
		}
	}
	return hit
}

// PropagateX pushes X errors through a CNOT network: an X on a control copies onto
// every target of later CNOTs. Hadamards are ignored. The result is sorted.
func PropagateX(c circuit.Circuit, errs []int) []int {
	on := make(map[int]bool, len(errs))
	for _, q := range errs {
		on[q] = true
	}
	for _, g := range c.Expand().Gates() {
		if g.Kind == circuit.KindCNOT && on[g.Control] {
			t := g.Targets[0]
			on[t] = !on[t]
		}
	}
	out := make([]int, 0, len(on))
	for q, v := range on {
		if v {
			out = append(out, q)
		}
	}
	sort.Ints(out)
	return out
}
