package rm

import "github.com/pkg/errors"

// RowTransform returns the change of basis R that turns every row of G into a
// minimum-weight row with the same leading one. Row k of R selects the rows of G
// whose leading index is one of MinSetInts of row k's eval set, grown to the largest
// eval-set size found in G.
func RowTransform(G Matrix) (Matrix, error) {
	if len(G) == 0 {
		return Matrix{}, nil
	}
	n := G.Columns()
	m := 0
	for 1<<m < n {
		m++
	}
	leads := make(map[int]int, len(G))
	sets := make([]Set, len(G))
	target := 0
	for j, row := range G {
		lead, err := LeadingBitIndex(row)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", j)
		}
		leads[lead] = j
		if sets[j], err = EvalSet(row, MSBFirst); err != nil {
			return nil, err
		}
		if len(sets[j]) > target {
			target = len(sets[j])
		}
	}
	R := make(Matrix, len(G))
	for k := range G {
		R[k] = Zero(len(G))
		for _, i := range MinSetInts(sets[k], target, m, MSBFirst) {
			if j, ok := leads[i]; ok {
				R[k][j] = 1
			}
		}
	}
	return R, nil
}

// Transform applies RowTransform(G) to G.
func Transform(G Matrix) (Matrix, error) {
	R, err := RowTransform(G)
	if err != nil {
		return nil, err
	}
	return Mul(R, G)
}
