package rm

import (
	"sort"

	"github.com/pkg/errors"
)

// Puncture drops the entries of row at the given positions.
func Puncture(row Vector, idx ...int) (Vector, error) {
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(row) {
			return nil, errors.Wrapf(ErrInvalidParameters, "puncture index %d outside row of length %d", i, len(row))
		}
		drop[i] = true
	}
	out := make(Vector, 0, len(row)-len(drop))
	for i, b := range row {
		if !drop[i] {
			out = append(out, b)
		}
	}
	return out, nil
}

// PunctureMatrix punctures every row of M at the same positions.
func PunctureMatrix(M Matrix, idx ...int) (Matrix, error) {
	out := make(Matrix, len(M))
	for k, row := range M {
		p, err := Puncture(row, idx...)
		if err != nil {
			return nil, err
		}
		out[k] = p
	}
	return out, nil
}

func allOnes(v Vector) bool {
	for _, b := range v {
		if b&1 == 0 {
			return false
		}
	}
	return len(v) > 0
}

// PunctureQRM punctures the generator pair of QRMGenerator(r,m,r,m) at idx. A stabilizer
// row that becomes all-ones is no longer a stabilizer of the punctured code and moves to
// the end of the logical part.
func PunctureQRM(r, m int, idx ...int) (gperp, glogical Matrix, err error) {
	gp, gl, err := QRMGenerator(r, m, r, m)
	if err != nil {
		return nil, nil, err
	}
	idx = append([]int(nil), idx...)
	sort.Ints(idx)
	if gp, err = PunctureMatrix(gp, idx...); err != nil {
		return nil, nil, err
	}
	if glogical, err = PunctureMatrix(gl, idx...); err != nil {
		return nil, nil, err
	}
	gperp = make(Matrix, 0, len(gp))
	for _, row := range gp {
		if allOnes(row) {
			glogical = append(glogical, row)
			continue
		}
		gperp = append(gperp, row)
	}
	return gperp, glogical, nil
}
