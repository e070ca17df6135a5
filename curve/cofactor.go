package curve

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// ClearCofactorG1 clears the cofactor of a point on E(Fq) so the
// result lands in the prime-order subgroup G1, by scalar multiplying
// with h_eff = 1 - z (z the BLS12-381 curve parameter, z = -absZ),
// mirroring original_source's cofactor/mod.rs ClearHProjective for
// G1, whose chain_z/negation structure computes exactly this
// multiple. The scalar multiplication itself is gnark-crypto's
// responsibility (point arithmetic is explicitly out of this
// package's scope); only the choice of h_eff is ours.
func ClearCofactorG1(p bls12381.G1Affine) bls12381.G1Affine {
	hEff := new(big.Int).Add(absZ, big.NewInt(1)) // 1 - z = 1 + absZ
	var jac bls12381.G1Jac
	jac.FromAffine(&p)
	jac.ScalarMultiplication(&jac, hEff)
	var out bls12381.G1Affine
	out.FromJacobian(&jac)
	return out
}

// qiX and qiY are the Frobenius-twist constants used by the psi
// endomorphism below, i.e. psi(x,y) = (qiX*conj(x), qiY*conj(y)).
// Ported from original_source's cofactor/mod.rs K_QI_X/K_QI_Y.
var (
	qiX = bls12381.E2{
		A0: fqFromInt64(0),
		A1: fqFromHex("1a0111ea397fe699ec02408663d4de85aa0d857d89759ad4897d29650fb85f9b409427eb4f49fffd8bfd00000000aaac"),
	}
	qiY = bls12381.E2{
		A0: fqFromHex("135203e60180a68ee2e9c448d77a2cd91c3dedd930b1cf60ef396489f61eb45e304466cf3e67fa0af1ee7b04121bdea2"),
		A1: fqFromHex("6af0e0437ff400b6831e36d6bd17ffe48395dabc2d3435e77f76e17009241c5ee67992f72ec05f4c81084fbede3cc09"),
	}
)

// psi applies the untwist-Frobenius-twist endomorphism to a G2 point,
// conjugating both coordinates (Frobenius over Fq2/Fq is conjugation)
// and rescaling by the fixed twist constants.
func psi(p bls12381.G2Affine) bls12381.G2Affine {
	// Frobenius over Fq2/Fq is conjugation: (a+b*i)^q = a - b*i.
	x := bls12381.E2{A0: p.X.A0, A1: negFq(p.X.A1)}
	y := bls12381.E2{A0: p.Y.A0, A1: negFq(p.Y.A1)}
	x.Mul(&x, &qiX)
	y.Mul(&y, &qiY)
	return bls12381.G2Affine{X: x, Y: y}
}

func negFq(x fp.Element) fp.Element {
	var out fp.Element
	out.Neg(&x)
	return out
}

// ClearCofactorG2 clears the cofactor of a point on E(Fq2) so the
// result lands in the prime-order subgroup G2, via
//
//	P' = (z^2 - z - 1)*P + (z-1)*psi(P) + psi(psi(2*P))
//
// the endomorphism-based clearing from original_source's
// cofactor/mod.rs (qi_x/qi_y/psi), which is dramatically cheaper than
// scalar-multiplying by G2's large cofactor directly.
func ClearCofactorG2(p bls12381.G2Affine) bls12381.G2Affine {
	z2MinusZMinus1 := new(big.Int).Mul(absZ, absZ)
	z2MinusZMinus1.Add(z2MinusZMinus1, absZ)
	z2MinusZMinus1.Sub(z2MinusZMinus1, big.NewInt(1))

	zMinus1 := new(big.Int).Add(absZ, big.NewInt(1))
	zMinus1.Neg(zMinus1) // z - 1 = -(absZ+1)

	var pJac, term1 bls12381.G2Jac
	pJac.FromAffine(&p)
	term1.ScalarMultiplication(&pJac, z2MinusZMinus1)

	psiP := psi(p)
	var psiPJac, term2 bls12381.G2Jac
	psiPJac.FromAffine(&psiP)
	term2.ScalarMultiplication(&psiPJac, zMinus1)

	var twoP bls12381.G2Jac
	twoP.Double(&pJac)
	var twoPAff bls12381.G2Affine
	twoPAff.FromJacobian(&twoP)
	psi2P := psi(psi(twoPAff))
	var term3 bls12381.G2Jac
	term3.FromAffine(&psi2P)

	var sum bls12381.G2Jac
	sum.Set(&term1)
	sum.AddAssign(&term2)
	sum.AddAssign(&term3)

	var out bls12381.G2Affine
	out.FromJacobian(&sum)
	return out
}
