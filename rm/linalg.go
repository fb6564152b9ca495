package rm

import (
	"sort"

	"github.com/pkg/errors"
)

// packVec packs v into 64-bit words, bit i of word i>>6 holding v[i].
func packVec(v Vector) []uint64 {
	w := (len(v) + 63) / 64
	out := make([]uint64, w)
	for i, b := range v {
		if b&1 == 1 {
			out[i>>6] |= 1 << (uint(i) & 63)
		}
	}
	return out
}

// Rank returns the GF(2) rank of G by Gaussian elimination over packed rows.
func Rank(G Matrix) int {
	if len(G) == 0 {
		return 0
	}
	n := G.Columns()
	rows := make([][]uint64, len(G))
	for i, v := range G {
		rows[i] = packVec(v)
	}
	r := 0
	for c := 0; c < n && r < len(rows); c++ {
		wordIdx := c >> 6
		bitMask := uint64(1) << (uint(c) & 63)
		p := -1
		for i := r; i < len(rows); i++ {
			if rows[i][wordIdx]&bitMask != 0 {
				p = i
				break
			}
		}
		if p == -1 {
			continue
		}
		rows[r], rows[p] = rows[p], rows[r]
		for i := r + 1; i < len(rows); i++ {
			if rows[i][wordIdx]&bitMask != 0 {
				for k := range rows[i] {
					rows[i][k] ^= rows[r][k]
				}
			}
		}
		r++
	}
	return r
}

// SpanEqual reports whether A and B generate the same GF(2) space.
func SpanEqual(A, B Matrix) bool {
	ra := Rank(A)
	if ra != Rank(B) {
		return false
	}
	joined := make(Matrix, 0, len(A)+len(B))
	joined = append(append(joined, A...), B...)
	return Rank(joined) == ra
}

// Mul returns R·G over GF(2).
func Mul(R, G Matrix) (Matrix, error) {
	if len(R) > 0 && len(R[0]) != len(G) {
		return nil, errors.Wrapf(ErrInvalidParameters, "Mul: %d columns against %d rows", len(R[0]), len(G))
	}
	n := G.Columns()
	out := make(Matrix, len(R))
	for i, r := range R {
		acc := Zero(n)
		for j, b := range r {
			if b&1 == 0 {
				continue
			}
			for k := range acc {
				acc[k] ^= G[j][k] & 1
			}
		}
		out[i] = acc
	}
	return out, nil
}

// FilterWeight keeps the rows whose weight is one of weights, in order.
func FilterWeight(G Matrix, weights ...int) Matrix {
	keep := make(map[int]bool, len(weights))
	for _, w := range weights {
		keep[w] = true
	}
	out := make(Matrix, 0, len(G))
	for _, row := range G {
		if keep[row.Weight()] {
			out = append(out, row)
		}
	}
	return out
}

// SortByWeight returns a copy of G stably ordered by row weight.
func SortByWeight(G Matrix, descending bool) Matrix {
	out := make(Matrix, len(G))
	copy(out, G)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].Weight() > out[j].Weight()
		}
		return out[i].Weight() < out[j].Weight()
	})
	return out
}
