// Package circuit holds the H/CNOT gate lists produced by the encoders.
package circuit

import (
	"sort"

	"github.com/pkg/errors"
)

//go:generate stringer -type=Kind -trimprefix=Kind

// Kind is the gate type.
type Kind uint8

const (
	KindH Kind = iota
	KindCNOT
)

// ErrInvalidGate reports a gate whose qubits are malformed.
var ErrInvalidGate = errors.New("invalid gate")

// Gate is either H on Targets[0] or a CNOT fanning out from Control to every target.
type Gate struct {
	Kind    Kind
	Control int
	Targets []int
}

// Qubits returns the qubits the gate acts on, control first.
func (g Gate) Qubits() []int {
	if g.Kind == KindH {
		return append([]int(nil), g.Targets...)
	}
	return append([]int{g.Control}, g.Targets...)
}

func (g Gate) clone() Gate {
	g.Targets = append([]int(nil), g.Targets...)
	return g
}

// Circuit is an immutable gate list. Every method returns a fresh value.
type Circuit struct {
	gates []Gate
}

// New returns the empty circuit.
func New() Circuit { return Circuit{} }

// Len is the number of stored gates; a fan-out CNOT counts once.
func (c Circuit) Len() int { return len(c.gates) }

// Empty reports whether c has no gates.
func (c Circuit) Empty() bool { return len(c.gates) == 0 }

// Gate returns a copy of gate i.
func (c Circuit) Gate(i int) Gate { return c.gates[i].clone() }

// Gates returns a copy of the gate list.
func (c Circuit) Gates() []Gate {
	out := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		out[i] = g.clone()
	}
	return out
}

// Append returns c followed by g.
func (c Circuit) Append(g Gate) Circuit {
	out := make([]Gate, len(c.gates), len(c.gates)+1)
	copy(out, c.gates)
	return Circuit{gates: append(out, g.clone())}
}

// H appends one Hadamard per qubit.
func (c Circuit) H(qubits ...int) Circuit {
	var b Builder
	b.Append(c)
	b.H(qubits...)
	return b.Circuit()
}

// CNOT appends a fan-out CNOT. A CNOT with no targets is dropped.
func (c Circuit) CNOT(control int, targets ...int) Circuit {
	if len(targets) == 0 {
		return c
	}
	return c.Append(Gate{Kind: KindCNOT, Control: control, Targets: targets})
}

// Concat returns c followed by each of others.
func (c Circuit) Concat(others ...Circuit) Circuit {
	return Concat(append([]Circuit{c}, others...)...)
}

// Concat joins circuits in order with a single allocation.
func Concat(cs ...Circuit) Circuit {
	n := 0
	for _, c := range cs {
		n += len(c.gates)
	}
	out := make([]Gate, 0, n)
	for _, c := range cs {
		out = append(out, c.gates...)
	}
	return Circuit{gates: out}
}

// Builder accumulates gates in place; Circuit hands out an independent snapshot.
type Builder struct {
	gates []Gate
}

// H appends one Hadamard per qubit.
func (b *Builder) H(qubits ...int) {
	for _, q := range qubits {
		b.gates = append(b.gates, Gate{Kind: KindH, Targets: []int{q}})
	}
}

// CNOT appends a fan-out CNOT; empty fan-outs are skipped.
func (b *Builder) CNOT(control int, targets ...int) {
	if len(targets) == 0 {
		return
	}
	b.gates = append(b.gates, Gate{Kind: KindCNOT, Control: control, Targets: append([]int(nil), targets...)})
}

// Append copies every gate of c onto the builder.
func (b *Builder) Append(c Circuit) {
	for _, g := range c.gates {
		b.gates = append(b.gates, g.clone())
	}
}

// Len is the number of gates so far.
func (b *Builder) Len() int { return len(b.gates) }

// Circuit returns the gates built so far.
func (b *Builder) Circuit() Circuit {
	out := make([]Gate, len(b.gates))
	copy(out, b.gates)
	return Circuit{gates: out}
}

// CNOTCount counts simple two-qubit CNOTs, expanding fan-outs.
func (c Circuit) CNOTCount() int {
	n := 0
	for _, g := range c.gates {
		if g.Kind == KindCNOT {
			n += len(g.Targets)
		}
	}
	return n
}

// HCount counts Hadamards.
func (c Circuit) HCount() int {
	n := 0
	for _, g := range c.gates {
		if g.Kind == KindH {
			n += len(g.Targets)
		}
	}
	return n
}

// Size is HCount + CNOTCount.
func (c Circuit) Size() int { return c.HCount() + c.CNOTCount() }

// Qubits returns every qubit touched by c, ascending.
func (c Circuit) Qubits() []int {
	seen := make(map[int]bool)
	for _, g := range c.gates {
		for _, q := range g.Qubits() {
			seen[q] = true
		}
	}
	out := make([]int, 0, len(seen))
	for q := range seen {
		out = append(out, q)
	}
	sort.Ints(out)
	return out
}

// Expand splits every fan-out into simple CNOTs with the same order of targets.
func (c Circuit) Expand() Circuit {
	out := make([]Gate, 0, c.Size())
	for _, g := range c.gates {
		if g.Kind == KindH {
			for _, q := range g.Targets {
				out = append(out, Gate{Kind: KindH, Targets: []int{q}})
			}
			continue
		}
		for _, q := range g.Targets {
			out = append(out, Gate{Kind: KindCNOT, Control: g.Control, Targets: []int{q}})
		}
	}
	return Circuit{gates: out}
}

// Reverse returns the gates in reverse order with fan-outs expanded, which is
// the inverse circuit since H and CNOT are self-inverse.
func (c Circuit) Reverse() Circuit {
	e := c.Expand()
	n := len(e.gates)
	out := make([]Gate, n)
	for i, g := range e.gates {
		out[n-1-i] = g
	}
	return Circuit{gates: out}
}

// Depth is the number of layers of an as-soon-as-possible schedule of the expanded circuit.
func (c Circuit) Depth() int {
	level := make(map[int]int)
	depth := 0
	for _, g := range c.Expand().gates {
		qs := g.Qubits()
		d := 0
		for _, q := range qs {
			if level[q] > d {
				d = level[q]
			}
		}
		d++
		for _, q := range qs {
			level[q] = d
		}
		if d > depth {
			depth = d
		}
	}
	return depth
}

// Relabel maps every qubit through f.
func (c Circuit) Relabel(f func(int) (int, error)) (Circuit, error) {
	out := make([]Gate, len(c.gates))
	for i, g := range c.gates {
		ng := Gate{Kind: g.Kind, Targets: make([]int, len(g.Targets))}
		if g.Kind == KindCNOT {
			q, err := f(g.Control)
			if err != nil {
				return Circuit{}, errors.Wrapf(err, "gate %d control", i)
			}
			ng.Control = q
		}
		for k, t := range g.Targets {
			q, err := f(t)
			if err != nil {
				return Circuit{}, errors.Wrapf(err, "gate %d target", i)
			}
			ng.Targets[k] = q
		}
		out[i] = ng
	}
	return Circuit{gates: out}, nil
}

// Validate rejects gates with no targets, repeated qubits or unknown kinds.
func (c Circuit) Validate() error {
	for i, g := range c.gates {
		if g.Kind > KindCNOT {
			return errors.Wrapf(ErrInvalidGate, "gate %d: kind %d", i, g.Kind)
		}
		if len(g.Targets) == 0 {
			return errors.Wrapf(ErrInvalidGate, "gate %d: no targets", i)
		}
		if g.Kind == KindH && len(g.Targets) != 1 {
			return errors.Wrapf(ErrInvalidGate, "gate %d: H on %d qubits", i, len(g.Targets))
		}
		seen := make(map[int]bool, len(g.Targets)+1)
		for _, q := range g.Qubits() {
			if q < 0 || seen[q] {
				return errors.Wrapf(ErrInvalidGate, "gate %d: qubit %d", i, q)
			}
			seen[q] = true
		}
	}
	return nil
}

// Equal compares gate lists exactly.
func (c Circuit) Equal(o Circuit) bool {
	if len(c.gates) != len(o.gates) {
		return false
	}
	for i := range c.gates {
		a, b := c.gates[i], o.gates[i]
		if a.Kind != b.Kind || len(a.Targets) != len(b.Targets) {
			return false
		}
		if a.Kind == KindCNOT && a.Control != b.Control {
			return false
		}
		for k := range a.Targets {
			if a.Targets[k] != b.Targets[k] {
				return false
			}
		}
	}
	return true
}
