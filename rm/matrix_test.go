package rm

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestFullMatrixKronecker(t *testing.T) {
	G, err := FullMatrix(2)
	require.NoError(t, err)
	want := Matrix{
		{1, 1, 1, 1},
		{0, 1, 0, 1},
		{0, 0, 1, 1},
		{0, 0, 0, 1},
	}
	require.True(t, G.Equal(want), "got %v", G)

	for m := 0; m <= 5; m++ {
		G, err := FullMatrix(m)
		require.NoError(t, err)
		for i, row := range G {
			require.True(t, row.Equal(Row(i, m)), "m=%d row %d", m, i)
			lead, err := LeadingBitIndex(row)
			require.NoError(t, err)
			require.Equal(t, i, lead)
			require.Equal(t, 1<<(m-Degree(i)), row.Weight())
		}
	}
}

func TestFullMatrixRejectsNegative(t *testing.T) {
	_, err := FullMatrix(-1)
	require.True(t, errors.Is(err, ErrInvalidParameters))
}

func TestGrmRowCounts(t *testing.T) {
	for m := 0; m <= 6; m++ {
		for r := -1; r <= m+1; r++ {
			G, err := Grm(r, m)
			require.NoError(t, err)
			hi := r
			if hi > m {
				hi = m
			}
			require.Equal(t, binomSum(m, 0, hi), len(G), "r=%d m=%d", r, m)
			for _, row := range G {
				require.GreaterOrEqual(t, row.Weight(), 1<<(m-hi))
			}
		}
	}
	G, err := Grm(1, 3)
	require.NoError(t, err)
	require.Len(t, G, 4)
	H, err := Hrm(1, 3)
	require.NoError(t, err)
	require.Len(t, H, 4)
	for _, row := range H {
		require.GreaterOrEqual(t, row.Weight(), 4)
	}
}

func TestHqrmBlocks(t *testing.T) {
	H, err := Hqrm(1, 3)
	require.NoError(t, err)
	require.Len(t, H, 8)
	for k, row := range H {
		require.Len(t, row, 16)
		x, z := row[:8], row[8:]
		if k < 4 {
			require.Zero(t, z.Weight())
		} else {
			require.Zero(t, x.Weight())
		}
	}
}

func TestQRMGeneratorPartition(t *testing.T) {
	cases := []struct{ r, m int }{{0, 1}, {1, 2}, {1, 3}, {2, 3}, {2, 4}, {3, 5}, {2, 5}}
	for _, tc := range cases {
		gp, gl, err := QRMGenerator(tc.r, tc.m, tc.r, tc.m)
		require.NoError(t, err)
		G, err := Grm(tc.r, tc.m)
		require.NoError(t, err)
		require.Equal(t, len(G), len(gp)+len(gl))
		seen := map[string]bool{}
		for _, row := range gp {
			seen[row.Key()] = true
		}
		for _, row := range gl {
			require.False(t, seen[row.Key()], "overlap in r=%d m=%d", tc.r, tc.m)
			seen[row.Key()] = true
			w := row.Weight()
			require.True(t, w >= 1<<(tc.m-tc.r) && w <= 1<<tc.r)
		}
		for _, row := range G {
			require.True(t, seen[row.Key()])
		}
	}
}

func TestQRMGeneratorInvalid(t *testing.T) {
	_, _, err := QRMGenerator(0, 3, 0, 3)
	require.True(t, errors.Is(err, ErrInvalidParameters))
	_, _, err = QRMGenerator(1, 3, 1, 4)
	require.True(t, errors.Is(err, ErrInvalidParameters))
}

func TestBands(t *testing.T) {
	G, err := GeneratorsR1R2(1, 1, 3)
	require.NoError(t, err)
	require.Len(t, G, 3)
	require.True(t, G[0].Equal(Row(1, 3)))
	require.True(t, G[2].Equal(Row(4, 3)))

	Q, err := GeneratorQuotient(2, 0, 3)
	require.NoError(t, err)
	B, err := GeneratorsR1R2(1, 2, 3)
	require.NoError(t, err)
	require.True(t, Q.Equal(B))

	_, err = GeneratorQuotient(0, 2, 3)
	require.Error(t, err)
}

func TestBinomSum(t *testing.T) {
	s, err := BinomSum(4, 0, 2)
	require.NoError(t, err)
	require.Equal(t, 11, s)
	_, err = BinomSum(4, 3, 2)
	require.True(t, errors.Is(err, ErrInvalidParameters))
	_, err = BinomSum(4, 0, 5)
	require.Error(t, err)
}

func TestLeadingBitIndexZeroRow(t *testing.T) {
	_, err := LeadingBitIndex(Zero(8))
	require.True(t, errors.Is(err, ErrDegenerateRow))
}

func TestRankAndSpan(t *testing.T) {
	G, err := Grm(2, 4)
	require.NoError(t, err)
	require.Equal(t, len(G), Rank(G))

	// Sums of rows span the same space.
	H := make(Matrix, len(G))
	copy(H, G)
	H[0] = G[0].Xor(G[1])
	require.True(t, SpanEqual(G, H))
	H[0] = G[1]
	require.False(t, SpanEqual(G, H))
}

func TestFilterAndSort(t *testing.T) {
	G, err := Grm(2, 3)
	require.NoError(t, err)
	require.Len(t, FilterWeight(G, 2), 3)
	s := SortByWeight(G, false)
	require.Equal(t, 2, s[0].Weight())
	require.Equal(t, 8, s[len(s)-1].Weight())
}
