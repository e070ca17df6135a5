// Package curve implements the hash-to-curve machinery for BLS12-381:
// hash-to-field, the Optimized Simplified SWU map, the G2 3-isogeny
// map from the auxiliary curve E' to E (G1 maps directly onto E; see
// isogeny_g1.go), and cofactor clearing for both G1 and G2. Field and
// group arithmetic (Fq, Fq2, Fr, point addition, the pairing) are
// supplied by gnark-crypto; everything in this package builds on top
// of those primitives.
package curve

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// halfP is (p-1)/2, the threshold used by Sgn0Fq. Ported from
// original_source's signum.rs, where it is named PM1DIV2.
var halfP = func() *big.Int {
	p := fp.Modulus()
	h := new(big.Int).Sub(p, big.NewInt(1))
	return h.Rsh(h, 1)
}()

// Sgn0Fq implements the sgn0 predicate on Fq from spec section 4.2:
// an element is "negative" iff its canonical integer representative
// exceeds (p-1)/2.
func Sgn0Fq(x *fp.Element) bool {
	var v big.Int
	x.BigInt(&v)
	return v.Cmp(halfP) > 0
}

// Sgn0Fq2 implements sgn0 on Fq2: equal to sgn0(c1) if c1 != 0, else
// sgn0(c0) (E2.A0 is c0, E2.A1 is c1).
func Sgn0Fq2(x *bls12381.E2) bool {
	if !x.A1.IsZero() {
		return Sgn0Fq(&x.A1)
	}
	return Sgn0Fq(&x.A0)
}

// Sgn0XorFq reports whether sgn0(x) XOR sgn0(y), the "Sign XOR"
// testable property from spec section 8.
func Sgn0XorFq(x, y *fp.Element) bool {
	return Sgn0Fq(x) != Sgn0Fq(y)
}

// NegateIfFq negates x in place unless its current sign already
// matches wantNegative, following Signum0::negate_if.
func NegateIfFq(x *fp.Element, wantNegative bool) {
	if Sgn0Fq(x) != wantNegative {
		x.Neg(x)
	}
}

// NegateIfFq2 is the Fq2 analogue of NegateIfFq.
func NegateIfFq2(x *bls12381.E2, wantNegative bool) {
	if Sgn0Fq2(x) != wantNegative {
		x.Neg(x)
	}
}
