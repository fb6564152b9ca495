package wire

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/circuit"
)

// ErrTruncated is returned when a gate stream ends mid-gate.
var ErrTruncated = errors.New("wire: truncated gate stream")

// AppendGates appends the gate stream of c to b. Each gate is a kind byte followed by
// its qubit for H, or by control, target count and targets for CNOT, all as uvarints.
func AppendGates(b []byte, c circuit.Circuit) []byte {
	for i := 0; i < c.Len(); i++ {
		g := c.Gate(i)
		b = append(b, uint8(g.Kind))
		if g.Kind == circuit.KindH {
			b = binary.AppendUvarint(b, uint64(g.Targets[0]))
			continue
		}
		b = binary.AppendUvarint(b, uint64(g.Control))
		b = binary.AppendUvarint(b, uint64(len(g.Targets)))
		for _, t := range g.Targets {
			b = binary.AppendUvarint(b, uint64(t))
		}
	}
	return b
}

type reader struct {
	b   []byte
	off int
}

func (r *reader) uvarint() (int, error) {
	v, n := binary.Uvarint(r.b[r.off:])
	if n <= 0 {
		return 0, errors.Wrapf(ErrTruncated, "uvarint at %d", r.off)
	}
	if v > math.MaxInt32 {
		return 0, errors.Wrapf(ErrBadFrame, "uvarint %d at %d out of range", v, r.off)
	}
	r.off += n
	return int(v), nil
}

// ReadGates decodes exactly n gates from b.
func ReadGates(b []byte, n int) (circuit.Circuit, error) {
	r := &reader{b: b}
	var cb circuit.Builder
	for i := 0; i < n; i++ {
		if r.off >= len(b) {
			return circuit.Circuit{}, errors.Wrapf(ErrTruncated, "gate %d of %d", i, n)
		}
		kind := circuit.Kind(b[r.off])
		r.off++
		switch kind {
		case circuit.KindH:
			q, err := r.uvarint()
			if err != nil {
				return circuit.Circuit{}, err
			}
			cb.H(q)
		case circuit.KindCNOT:
			ctl, err := r.uvarint()
			if err != nil {
				return circuit.Circuit{}, err
			}
			k, err := r.uvarint()
			if err != nil {
				return circuit.Circuit{}, err
			}
			if k == 0 {
				return circuit.Circuit{}, errors.Wrapf(circuit.ErrInvalidGate, "gate %d: empty fan-out", i)
			}
			if k > len(b)-r.off {
				return circuit.Circuit{}, errors.Wrapf(ErrTruncated, "fan-out of %d", k)
			}
			targets := make([]int, k)
			for j := range targets {
				if targets[j], err = r.uvarint(); err != nil {
					return circuit.Circuit{}, err
				}
			}
			cb.CNOT(ctl, targets...)
		default:
			return circuit.Circuit{}, errors.Wrapf(circuit.ErrInvalidGate, "kind %d", kind)
		}
	}
	if r.off != len(b) {
		return circuit.Circuit{}, errors.Errorf("wire: %d trailing bytes", len(b)-r.off)
	}
	c := cb.Circuit()
	if err := c.Validate(); err != nil {
		return circuit.Circuit{}, err
	}
	return c, nil
}
