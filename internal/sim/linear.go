// Package sim checks finished circuits: a GF(2) view of the CNOT network and a small
// state-vector simulator.
package sim

import (
	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/circuit"
	"github.com/qrm-go/qrm/rm"
)

var (
	// ErrHadamardNotFirst reports a Hadamard on a qubit some earlier gate already touched.
	ErrHadamardNotFirst = errors.New("hadamard after another gate on the same qubit")
	// ErrUnknownQubit reports a gate on a qubit outside the analysed register.
	ErrUnknownQubit = errors.New("qubit outside register")
)

// Analysis is the linear map of an encoder whose Hadamards all act on fresh qubits:
// wire j ends up holding the XOR of the inputs selected by wires[j].
type Analysis struct {
	Qubits    []int
	Hadamards []int
	pos       map[int]int
	wires     [][]uint64
}

func positions(qubits []int) map[int]int {
	pos := make(map[int]int, len(qubits))
	for i, q := range qubits {
		pos[q] = i
	}
	return pos
}

// Analyze runs c symbolically over qubits.
func Analyze(c circuit.Circuit, qubits []int) (*Analysis, error) {
	n := len(qubits)
	w := (n + 63) / 64
	a := &Analysis{Qubits: append([]int(nil), qubits...), pos: positions(qubits), wires: make([][]uint64, n)}
	for i := range a.wires {
		a.wires[i] = make([]uint64, w)
		a.wires[i][i>>6] = 1 << (uint(i) & 63)
	}
	touched := make([]bool, n)
	for gi, g := range c.Expand().Gates() {
		idx := make([]int, 0, 2)
		for _, q := range g.Qubits() {
			p, ok := a.pos[q]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownQubit, "gate %d qubit %d", gi, q)
			}
			idx = append(idx, p)
		}
		if g.Kind == circuit.KindH {
			if touched[idx[0]] {
				return nil, errors.Wrapf(ErrHadamardNotFirst, "gate %d on qubit %d", gi, g.Targets[0])
			}
			touched[idx[0]] = true
			a.Hadamards = append(a.Hadamards, g.Targets[0])
			continue
		}
		ctl, tgt := idx[0], idx[1]
		for k := range a.wires[tgt] {
			a.wires[tgt][k] ^= a.wires[ctl][k]
		}
		touched[ctl], touched[tgt] = true, true
	}
	return a, nil
}

// Image is the output pattern produced by a one on input qubit q, indexed like Qubits.
func (a *Analysis) Image(q int) (rm.Vector, error) {
	p, ok := a.pos[q]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownQubit, "qubit %d", q)
	}
	out := make(rm.Vector, len(a.wires))
	for j, w := range a.wires {
		out[j] = uint8(w[p>>6] >> (uint(p) & 63) & 1)
	}
	return out, nil
}

// Images stacks Image for every qubit of qs.
func (a *Analysis) Images(qs []int) (rm.Matrix, error) {
	out := make(rm.Matrix, len(qs))
	for i, q := range qs {
		v, err := a.Image(q)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// StabilizerImages are the images of the Hadamard targets.
func (a *Analysis) StabilizerImages() (rm.Matrix, error) {
	return a.Images(a.Hadamards)
}
