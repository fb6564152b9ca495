package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qrm-go/qrm/circuit"
	"github.com/qrm-go/qrm/synth"
)

func encode(t *testing.T, v synth.Variant, r, m int, opts ...synth.Option) (*synth.Config, *synth.Result) {
	t.Helper()
	cfg, err := synth.NewConfig(v, r, m, opts...)
	require.NoError(t, err)
	res, err := synth.Synthesize(cfg)
	require.NoError(t, err)
	return cfg, res
}

func TestCodeAcceptsEveryVariant(t *testing.T) {
	for m := 1; m <= 5; m++ {
		for r := -1; r <= m; r++ {
			for _, v := range synth.Variants {
				for _, opts := range [][]synth.Option{nil, {synth.WithStatePrep()}, {synth.WithOnlyCNOTs()}} {
					cfg, err := synth.NewConfig(v, r, m, opts...)
					if err != nil {
						continue
					}
					res, err := synth.Synthesize(cfg)
					require.NoError(t, err)
					require.NoError(t, Code(cfg, res), "%s r=%d m=%d", v, r, m)
				}
			}
		}
	}
}

func TestCodeRejectsTamperedEncoder(t *testing.T) {
	cfg, res := encode(t, synth.Recursive, 1, 3)
	res.Circuit = res.Circuit.CNOT(res.MessageQubits[0], res.EntangledQubits[0])
	require.ErrorIs(t, Code(cfg, res), ErrWrongCode)

	cfg, res = encode(t, synth.Recursive, 1, 3)
	res.Circuit = circuit.New()
	require.ErrorIs(t, Code(cfg, res), ErrWrongCode)
}

func TestState(t *testing.T) {
	_, rec := encode(t, synth.Recursive, 1, 3)
	_, flat := encode(t, synth.Standard, 1, 3)
	require.NoError(t, State(rec, flat))
	require.NoError(t, State(rec, nil))

	_, other := encode(t, synth.Recursive, 2, 3)
	require.ErrorIs(t, State(rec, other), ErrWrongCode)
}
