package counts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qrm-go/qrm/rm"
	"github.com/qrm-go/qrm/synth"
)

func TestKnownValues(t *testing.T) {
	for _, tc := range []struct {
		r, m          int
		std, rec, nav int
	}{
		{0, 1, 1, 1, 1},
		{1, 2, 5, 4, 5},
		{1, 3, 12, 10, 16},
		{2, 3, 13, 12, 19},
	} {
		std, err := Standard(tc.r, tc.m)
		require.NoError(t, err)
		require.Equal(t, tc.std, std, "standard r=%d m=%d", tc.r, tc.m)
		rec, err := Recursive(tc.r, tc.m)
		require.NoError(t, err)
		require.Equal(t, tc.rec, rec, "recursive r=%d m=%d", tc.r, tc.m)
		nav, err := Naive(tc.r, tc.m)
		require.NoError(t, err)
		require.Equal(t, tc.nav, nav, "naive r=%d m=%d", tc.r, tc.m)
	}
}

func TestBaseCases(t *testing.T) {
	for r, want := range []int{0, 1, 4, 12, 32} {
		got, err := Urr(r)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	for m := 0; m <= 8; m++ {
		got, err := Urm(0, m)
		require.NoError(t, err)
		require.Equal(t, 1<<m-1, got)
		full, err := Urm(m, m)
		require.NoError(t, err)
		u, err := Urr(m)
		require.NoError(t, err)
		require.Equal(t, u, full)
	}
	for m, want := range []int{0, 0, 2, 9, 28} {
		got, err := PuncturedNo1(m)
		require.NoError(t, err)
		require.Equal(t, want, got, "m=%d", m)
	}
}

// The closed recursion for the symmetric encoder is the unified one at s = m-r-1.
func TestRecursiveIsQuantum(t *testing.T) {
	for m := 1; m <= 16; m++ {
		for r := 0; r <= m; r++ {
			if r < m-r-1 {
				continue
			}
			got, err := Recursive(r, m)
			require.NoError(t, err)
			require.Equal(t, quantum(m-r-1, r, m), got, "r=%d m=%d", r, m)
			asym, err := Asymmetric(m-r-1, m, r)
			require.NoError(t, err)
			require.Equal(t, got, asym)
		}
	}
}

func TestRecursiveBelowFlat(t *testing.T) {
	for m := 1; m <= 14; m++ {
		for r := 0; r <= m; r++ {
			if r < m-r-1 {
				continue
			}
			rec, err := Recursive(r, m)
			require.NoError(t, err)
			std, err := Standard(r, m)
			require.NoError(t, err)
			nav, err := Naive(r, m)
			require.NoError(t, err)
			// At r = m-1 the flat rows already have weight 2 and the recursion loses.
			if r < m-1 {
				require.LessOrEqual(t, rec, std, "r=%d m=%d", r, m)
			}
			require.LessOrEqual(t, std, nav, "r=%d m=%d", r, m)
		}
	}
}

func TestInvalid(t *testing.T) {
	_, err := Standard(0, 3)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
	_, err = Recursive(4, 3)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
	_, err = Punctured(3, 3, false)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
	_, err = Asymmetric(2, 3, 1)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
	_, err = Urm(-2, 3)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
	_, err = Urr(MaxM + 1)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
	_, err = BinomSum(3, 2, 1)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
}

type params struct {
	v         synth.Variant
	r, m, rIn int
}

func valid(mMax int) []params {
	var out []params
	for m := 1; m <= mMax; m++ {
		for r := -1; r <= m; r++ {
			for _, v := range synth.Variants {
				if v == synth.Asymmetric {
					for rIn := r; rIn <= m; rIn++ {
						out = append(out, params{v, r, m, rIn})
					}
					continue
				}
				if _, err := synth.NewConfig(v, r, m); err == nil {
					out = append(out, params{v, r, m, r})
				}
			}
		}
	}
	return out
}

func TestPredictMatchesSynthesis(t *testing.T) {
	for _, p := range valid(6) {
		for _, opts := range [][]synth.Option{
			nil,
			{synth.WithStatePrep()},
			{synth.WithoutRowTransform()},
			{synth.WithOnlyCNOTs()},
		} {
			opts = append(opts, synth.WithRIn(p.rIn))
			cfg, err := synth.NewConfig(p.v, p.r, p.m, opts...)
			require.NoError(t, err)
			res, err := synth.Synthesize(cfg)
			require.NoError(t, err)
			cx, err := Predict(cfg)
			require.NoError(t, err)
			require.Equal(t, res.Circuit.CNOTCount(), cx, "%s r=%d m=%d rIn=%d", p.v, p.r, p.m, p.rIn)
			h, err := Hadamards(cfg)
			require.NoError(t, err)
			require.Equal(t, res.Circuit.HCount(), h, "%s r=%d m=%d rIn=%d", p.v, p.r, p.m, p.rIn)
		}
	}
}
