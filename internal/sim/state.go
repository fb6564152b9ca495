package sim

import (
	"math"

	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/circuit"
)

// MaxQubits bounds the state-vector register.
const MaxQubits = 20

// State is a real amplitude vector; H and CNOT never leave the reals.
// Qubit Qubits[k] is bit k of the basis index.
type State struct {
	Qubits []int
	pos    map[int]int
	amp    []float64
}

// NewState returns |0...0> over qubits.
func NewState(qubits []int) (*State, error) {
	if len(qubits) > MaxQubits {
		return nil, errors.Errorf("state vector over %d qubits exceeds %d", len(qubits), MaxQubits)
	}
	s := &State{Qubits: append([]int(nil), qubits...), pos: positions(qubits), amp: make([]float64, 1<<len(qubits))}
	s.amp[0] = 1
	return s, nil
}

// Basis resets the state to the basis vector whose set bits are the given qubits.
func (s *State) Basis(ones ...int) error {
	idx := 0
	for _, q := range ones {
		p, ok := s.pos[q]
		if !ok {
			return errors.Wrapf(ErrUnknownQubit, "qubit %d", q)
		}
		idx |= 1 << p
	}
	for i := range s.amp {
		s.amp[i] = 0
	}
	s.amp[idx] = 1
	return nil
}

// Amplitude of basis index i.
func (s *State) Amplitude(i int) float64 { return s.amp[i] }

// Apply runs c on the state.
func (s *State) Apply(c circuit.Circuit) error {
	for gi, g := range c.Expand().Gates() {
		switch g.Kind {
		case circuit.KindH:
			p, ok := s.pos[g.Targets[0]]
			if !ok {
				return errors.Wrapf(ErrUnknownQubit, "gate %d qubit %d", gi, g.Targets[0])
			}
			s.hadamard(p)
		case circuit.KindCNOT:
			cp, ok1 := s.pos[g.Control]
			tp, ok2 := s.pos[g.Targets[0]]
			if !ok1 || !ok2 {
				return errors.Wrapf(ErrUnknownQubit, "gate %d", gi)
			}
			s.cnot(cp, tp)
		}
	}
	return nil
}

func (s *State) hadamard(p int) {
	bit := 1 << p
	for i := range s.amp {
		if i&bit != 0 {
			continue
		}
		a, b := s.amp[i], s.amp[i|bit]
		s.amp[i] = (a + b) / math.Sqrt2
		s.amp[i|bit] = (a - b) / math.Sqrt2
	}
}

func (s *State) cnot(c, t int) {
	cb, tb := 1<<c, 1<<t
	for i := range s.amp {
		if i&cb != 0 && i&tb == 0 {
			s.amp[i], s.amp[i|tb] = s.amp[i|tb], s.amp[i]
		}
	}
}

// Equal compares amplitudes within tol.
func (s *State) Equal(o *State, tol float64) bool {
	if len(s.amp) != len(o.amp) {
		return false
	}
	for i := range s.amp {
		if math.Abs(s.amp[i]-o.amp[i]) > tol {
			return false
		}
	}
	return true
}

// Support lists the basis indices with amplitude above tol in magnitude.
func (s *State) Support(tol float64) []int {
	var out []int
	for i, a := range s.amp {
		if math.Abs(a) > tol {
			out = append(out, i)
		}
	}
	return out
}

// Run applies c to |0...0>.
func Run(c circuit.Circuit, qubits []int) (*State, error) {
	s, err := NewState(qubits)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(c); err != nil {
		return nil, err
	}
	return s, nil
}

// SameState reports whether a and b prepare the same state from |0...0>.
func SameState(a, b circuit.Circuit, qubits []int, tol float64) (bool, error) {
	sa, err := Run(a, qubits)
	if err != nil {
		return false, err
	}
	sb, err := Run(b, qubits)
	if err != nil {
		return false, err
	}
	return sa.Equal(sb, tol), nil
}

// RoundTrip applies c and then its reverse to |0...0> and checks the register is back at zero.
func RoundTrip(c circuit.Circuit, qubits []int, tol float64) (bool, error) {
	s, err := Run(circuit.Concat(c, c.Reverse()), qubits)
	if err != nil {
		return false, err
	}
	zero, err := NewState(qubits)
	if err != nil {
		return false, err
	}
	return s.Equal(zero, tol), nil
}
