package circuit

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// Connectivity describes how far errors spread through a CNOT circuit.
// Controls[q] is the set of qubits an X error on q reaches, Targets[q] the set of
// qubits whose Z errors reach q. Ed is the mean size of their union.
type Connectivity struct {
	Controls map[int]mapset.Set[int]
	Targets  map[int]mapset.Set[int]
	Ed       float64
}

// Connectivity walks the expanded circuit from its last gate to its first, growing
// the control reach of each control and the target reach of each target. Ed averages
// over qubits, or over c.Qubits() when qubits is nil.
func (c Circuit) Connectivity(qubits []int) (*Connectivity, error) {
	if qubits == nil {
		qubits = c.Qubits()
	}
	x := make(map[int]mapset.Set[int], len(qubits))
	z := make(map[int]mapset.Set[int], len(qubits))
	get := func(m map[int]mapset.Set[int], q int) mapset.Set[int] {
		s, ok := m[q]
		if !ok {
			s = mapset.NewThreadUnsafeSet[int]()
			m[q] = s
		}
		return s
	}
	gates := c.Expand().gates
	for i := len(gates) - 1; i >= 0; i-- {
		g := gates[i]
		if g.Kind != KindCNOT {
			return nil, errors.Wrapf(ErrInvalidGate, "connectivity needs a CNOT-only circuit, gate %d is %s", i, g.Kind)
		}
		ctl, tgt := g.Control, g.Targets[0]
		xs := get(x, ctl).Union(get(x, tgt))
		xs.Add(tgt)
		x[ctl] = xs
		zs := get(z, tgt).Union(get(z, ctl))
		zs.Add(ctl)
		z[tgt] = zs
	}
	out := &Connectivity{Controls: x, Targets: z}
	if len(qubits) == 0 {
		return out, nil
	}
	total := 0
	for _, q := range qubits {
		total += get(x, q).Union(get(z, q)).Cardinality()
	}
	out.Ed = float64(total) / float64(len(qubits))
	return out, nil
}
