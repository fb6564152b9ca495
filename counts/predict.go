package counts

import (
	"github.com/qrm-go/qrm/synth"
)

// Hadamards counts the Hadamards an encoder emits.
func Hadamards(cfg *synth.Config) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if cfg.OnlyCNOTs || cfg.M == 0 {
		return 0, nil
	}
	r, m := cfg.R, cfg.M
	switch cfg.Variant {
	case synth.Standard, synth.Recursive:
		return binomSum(m, 0, m-r-1), nil
	case synth.Basis:
		return 0, nil
	case synth.Asymmetric:
		return binomSum(m, 0, r), nil
	case synth.Punctured:
		return binomSum(m, 1, m-r-1), nil
	}
	return 0, invalid("unknown variant %d", cfg.Variant)
}

// Predict predicts the CNOT count of Synthesize(cfg) without building the circuit.
func Predict(cfg *synth.Config) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	r, m := cfg.R, cfg.M
	if m == 0 {
		return 0, nil
	}
	switch cfg.Variant {
	case synth.Standard:
		if !cfg.TransformRows {
			return Naive(r, m)
		}
		return Standard(r, m)
	case synth.Recursive:
		return Recursive(r, m)
	case synth.Basis:
		return Urm(r, m)
	case synth.Asymmetric:
		return Asymmetric(r, m, cfg.RIn)
	case synth.Punctured:
		return Punctured(r, m, cfg.StatePrep)
	}
	return 0, invalid("unknown variant %d", cfg.Variant)
}
