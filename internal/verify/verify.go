// Package verify checks synthesized encoders against the codes they claim to encode.
package verify

import (
	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/internal/sim"
	"github.com/qrm-go/qrm/rm"
	"github.com/qrm-go/qrm/synth"
)

// ErrWrongCode is returned when an encoder spans the wrong space.
var ErrWrongCode = errors.New("encoder spans the wrong code")

// Tolerance for amplitude comparisons.
const Tolerance = 1e-9

func rows(idx []int, m int) rm.Matrix {
	out := make(rm.Matrix, len(idx))
	for k, i := range idx {
		out[k] = rm.Row(i, m)
	}
	return out
}

// expected returns the stabilizer and full code generators of cfg over the encoder's
// evaluation points.
func expected(cfg *synth.Config) (stab, code rm.Matrix, err error) {
	r, m := cfg.R, cfg.M
	switch cfg.Variant {
	case synth.Standard, synth.Recursive:
		return rows(rm.Monomials(0, m-r-1, m), m), rows(rm.Monomials(0, r, m), m), nil
	case synth.Basis:
		return nil, rows(rm.Monomials(0, r, m), m), nil
	case synth.Asymmetric:
		return rows(rm.Monomials(0, r, m), m), rows(rm.Monomials(0, cfg.RIn, m), m), nil
	case synth.Punctured:
		stab = rows(rm.Monomials(1, m-r-1, m), m)
		lo := 0
		if cfg.StatePrep {
			lo = 1
		}
		code = rows(rm.Monomials(lo, r, m), m)
		if stab, err = rm.PunctureMatrix(stab, 0); err != nil {
			return nil, nil, err
		}
		if code, err = rm.PunctureMatrix(code, 0); err != nil {
			return nil, nil, err
		}
		return stab, code, nil
	}
	return nil, nil, errors.Wrapf(rm.ErrInvalidParameters, "unknown variant %d", cfg.Variant)
}

// Code checks on the GF(2) level that the Hadamard inputs generate exactly the X
// stabilizers and, together with the message inputs, exactly the code.
func Code(cfg *synth.Config, res *synth.Result) error {
	if cfg.M == 0 {
		return nil
	}
	if err := res.Circuit.Validate(); err != nil {
		return err
	}
	qubits := res.Qubits
	if cfg.Variant == synth.Punctured {
		qubits = qubits[1:]
	}
	a, err := sim.Analyze(res.Circuit, qubits)
	if err != nil {
		return err
	}
	stab, err := a.Images(res.EntangledQubits)
	if err != nil {
		return err
	}
	msg, err := a.Images(res.MessageQubits)
	if err != nil {
		return err
	}
	wantStab, wantCode, err := expected(cfg)
	if err != nil {
		return err
	}
	if rm.Rank(stab) != len(stab) || !rm.SpanEqual(stab, wantStab) {
		return errors.Wrapf(ErrWrongCode, "%s r=%d m=%d: stabilizers", cfg.Variant, cfg.R, cfg.M)
	}
	code := append(append(rm.Matrix{}, stab...), msg...)
	if rm.Rank(code) != len(code) || !rm.SpanEqual(code, wantCode) {
		return errors.Wrapf(ErrWrongCode, "%s r=%d m=%d: code", cfg.Variant, cfg.R, cfg.M)
	}
	return nil
}

// State checks that the encoder returns to |0...0> when undone and, when ref is
// non-nil, that both prepare the same state from |0...0>.
func State(res, ref *synth.Result) error {
	ok, err := sim.RoundTrip(res.Circuit, res.Qubits, Tolerance)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(ErrWrongCode, "round trip does not return to zero")
	}
	if ref == nil {
		return nil
	}
	same, err := sim.SameState(res.Circuit, ref.Circuit, res.Qubits, Tolerance)
	if err != nil {
		return err
	}
	if !same {
		return errors.Wrapf(ErrWrongCode, "%s and %s prepare different states", res.Variant, ref.Variant)
	}
	return nil
}
