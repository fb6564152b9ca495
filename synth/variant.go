package synth

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/qrm-go/qrm/rm"
)

//go:generate stringer -type=Variant

// Variant selects the construction.
type Variant uint8

const (
	// Standard is the flat canonical CSS encoder.
	Standard Variant = iota
	// Recursive is the symmetric Plotkin encoder with permutation tracking.
	Recursive
	// Basis encodes the classical code RM(r,m) on computational-basis inputs.
	Basis
	// Asymmetric prepares X stabilizers RM(r,m) with logical span RM(rIn,m).
	Asymmetric
	// Punctured is the recursive encoder with evaluation point 0 dropped.
	Punctured
)

// Variants lists every variant in declaration order.
var Variants = []Variant{Standard, Recursive, Basis, Asymmetric, Punctured}

// ParseVariant accepts a variant name in any case.
func ParseVariant(s string) (Variant, error) {
	for _, v := range Variants {
		if strings.EqualFold(v.String(), s) {
			return v, nil
		}
	}
	return 0, errors.Wrapf(rm.ErrInvalidParameters, "unknown variant %q", s)
}
