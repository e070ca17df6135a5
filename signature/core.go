package signature

import (
	"fmt"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/kysee/bls-sigs-go/curve"
)

// minSeedLength is the minimum IKM length for Keygen, per spec
// section 4: seeds shorter than this must be rejected before key
// derivation is attempted.
const minSeedLength = 32

// ErrSeedTooShort is returned by Keygen when the supplied seed is
// shorter than minSeedLength.
var ErrSeedTooShort = fmt.Errorf("signature: seed must be at least %d bytes", minSeedLength)

// deriveSecretKey runs spec section 4.1's IKM-to-secret-key procedure
// and rejects short seeds before calling into curve.XprimeFromSK.
func deriveSecretKey(seed []byte) (fr.Element, error) {
	if len(seed) < minSeedLength {
		return fr.Element{}, ErrSeedTooShort
	}
	return curve.XprimeFromSK(seed), nil
}

// augmentedMessage prepends the serialized public key to msg, the
// transform that distinguishes the Augmented scheme from Basic.
func augmentedMessage(pkBytes, msg []byte) []byte {
	out := make([]byte, 0, len(pkBytes)+len(msg))
	out = append(out, pkBytes...)
	out = append(out, msg...)
	return out
}

// scalarMulG1 and scalarMulG2 multiply a base point by a secret
// scalar, the one place this package reaches directly for
// gnark-crypto's scalar multiplication rather than curve package
// helpers, since it operates on points already known to be in the
// correct subgroup (generators and hash-to-curve outputs).
func scalarMulG1(base bls12381.G1Affine, s fr.Element) bls12381.G1Affine {
	var sBig big.Int
	s.BigInt(&sBig)
	var jac bls12381.G1Jac
	jac.FromAffine(&base)
	jac.ScalarMultiplication(&jac, &sBig)
	var out bls12381.G1Affine
	out.FromJacobian(&jac)
	return out
}

func scalarMulG2(base bls12381.G2Affine, s fr.Element) bls12381.G2Affine {
	var sBig big.Int
	s.BigInt(&sBig)
	var jac bls12381.G2Jac
	jac.FromAffine(&base)
	jac.ScalarMultiplication(&jac, &sBig)
	var out bls12381.G2Affine
	out.FromJacobian(&jac)
	return out
}

func addG1(a, b bls12381.G1Affine) bls12381.G1Affine {
	var aj bls12381.G1Jac
	aj.FromAffine(&a)
	var bj bls12381.G1Jac
	bj.FromAffine(&b)
	aj.AddAssign(&bj)
	var out bls12381.G1Affine
	out.FromJacobian(&aj)
	return out
}

func addG2(a, b bls12381.G2Affine) bls12381.G2Affine {
	var aj bls12381.G2Jac
	aj.FromAffine(&a)
	var bj bls12381.G2Jac
	bj.FromAffine(&b)
	aj.AddAssign(&bj)
	var out bls12381.G2Affine
	out.FromJacobian(&aj)
	return out
}
