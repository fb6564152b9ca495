package rm

import "github.com/pkg/errors"

var (
	// ErrInvalidParameters reports code parameters outside the range an operation supports.
	ErrInvalidParameters = errors.New("invalid code parameters")
	// ErrDegenerateRow reports an all-zero row where a leading one is required.
	ErrDegenerateRow = errors.New("degenerate all-zero row")
)

// MaxM bounds the number of variables accepted by the vector builders (2^MaxM columns).
const MaxM = 20

func checkM(m int) error {
	if m < 0 || m > MaxM {
		return errors.Wrapf(ErrInvalidParameters, "m=%d outside [0,%d]", m, MaxM)
	}
	return nil
}
