package rates

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/qrm-go/qrm/rm"
)

func frac(t *testing.T, r Rate, neg bool, num, den uint64) {
	t.Helper()
	// Compare cross products so unreduced fractions match.
	require.Equal(t, neg, r.Neg, "sign of %s", r)
	lhs, err := mul(r.Num, uint256.NewInt(den))
	require.NoError(t, err)
	rhs, err := mul(r.Den, uint256.NewInt(num))
	require.NoError(t, err)
	require.True(t, lhs.Eq(rhs), "%s != %d/%d", r, num, den)
}

func TestRates(t *testing.T) {
	c, err := Catalytic(0, 3)
	require.NoError(t, err)
	frac(t, c, true, 17, 32)
	require.False(t, c.Positive())

	c, err = Catalytic(1, 4)
	require.NoError(t, err)
	frac(t, c, false, 7, 128)
	require.True(t, c.Positive())
	require.Equal(t, "0.05468750", c.String())

	ea, err := EA(1, 1, 4, 4)
	require.NoError(t, err)
	frac(t, ea, false, 25, 128)
	require.InDelta(t, 25.0/128, ea.Float64(), 1e-12)

	ea, err = EA(0, 0, 3, 3)
	require.NoError(t, err)
	frac(t, ea, false, 1, 32)

	asym, err := CatalyticAsym(1, 1, 4, 4)
	require.NoError(t, err)
	frac(t, asym, false, 7, 128)

	rmRate, err := CatalyticRM(2, 5)
	require.NoError(t, err)
	require.True(t, rmRate.Num.IsZero())
	rmRate, err = CatalyticRM(3, 5)
	require.NoError(t, err)
	frac(t, rmRate, false, 20, 32)
}

func TestRatesInvalid(t *testing.T) {
	_, err := Catalytic(5, 3)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
	_, err = EA(0, 0, 200, 100)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
	_, err = CatalyticRM(0, -1)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
	_, err = LR(-1)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
}

func TestLR(t *testing.T) {
	for r, want := range []int{1, 2, 2, 2, 2, 2, 3, 3} {
		l, err := LR(r)
		require.NoError(t, err)
		require.Equal(t, want, l, "r=%d", r)
	}
	for r := 0; r <= 40; r++ {
		l, err := LR(r)
		require.NoError(t, err)
		m, err := ObtainLR(r)
		require.NoError(t, err)
		require.Equal(t, 2*r+l, m, "r=%d", r)
	}
	_, err := ObtainLR(100)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestPoints(t *testing.T) {
	pts, err := Points(12)
	require.NoError(t, err)
	var got [][2]int
	for _, p := range pts {
		got = append(got, [2]int{p.R, p.M})
		require.True(t, p.Bound, "r=%d m=%d", p.R, p.M)
		require.True(t, p.EA.Float64() >= p.Catalytic.Float64())
	}
	require.Equal(t, [][2]int{{1, 4}, {2, 6}, {3, 8}, {4, 10}, {5, 12}}, got)
}
