// Package serdes implements the Zcash-style compressed and
// uncompressed point serialization for BLS12-381 G1 and G2 described
// in spec section 5, on top of gnark-crypto's field and group types.
package serdes

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

const (
	flagCompressed = 1 << 7
	flagInfinity   = 1 << 6
	flagSortY      = 1 << 5
)

var (
	// ErrInvalidEncoding covers any structurally invalid input: wrong
	// length, reserved flag bits set inconsistently, or a non-canonical
	// coordinate (>= p).
	ErrInvalidEncoding = errors.New("serdes: invalid point encoding")

	// ErrNotOnCurve is returned when a decoded coordinate pair does not
	// satisfy the curve equation.
	ErrNotOnCurve = errors.New("serdes: point is not on curve")

	// ErrNotInSubgroup is returned by the subgroup-checked decoders when
	// a point is on the curve but not in the prime-order subgroup.
	ErrNotInSubgroup = errors.New("serdes: point is not in the prime-order subgroup")
)

// Options controls optional validation performed by the decoders.
// Subgroup membership is checked on request only: per spec section 5,
// checking it on every decode is the caller's choice to make, not a
// default this package imposes.
type Options struct {
	CheckSubgroup bool
}

// WithSubgroupChecks returns Options with subgroup membership checking
// enabled, the opt-in most callers verifying untrusted input want.
func WithSubgroupChecks(enabled bool) Options {
	return Options{CheckSubgroup: enabled}
}

func wrapf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// CheckSubgroupG1 reports whether p is a member of the prime-order G1
// subgroup, by scalar-multiplying with the group order r and checking
// the result is the point at infinity.
func CheckSubgroupG1(p bls12381.G1Affine) bool {
	var jac bls12381.G1Jac
	jac.FromAffine(&p)
	jac.ScalarMultiplication(&jac, fr.Modulus())
	var result bls12381.G1Affine
	result.FromJacobian(&jac)
	return result.X.IsZero() && result.Y.IsZero()
}

// CheckSubgroupG2 is the G2 analogue of CheckSubgroupG1.
func CheckSubgroupG2(p bls12381.G2Affine) bool {
	var jac bls12381.G2Jac
	jac.FromAffine(&p)
	jac.ScalarMultiplication(&jac, fr.Modulus())
	var result bls12381.G2Affine
	result.FromJacobian(&jac)
	return result.X.IsZero() && result.Y.IsZero()
}
