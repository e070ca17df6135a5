package curve

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// absZ is |z| for the BLS12-381 curve parameter z = -0xd201000000010000
// (the curve is defined with a negative z; |z| is what the cofactor
// clearing scalars in cofactor.go are derived from).
var absZ = mustBig("0xd201000000010000")

// p2m9Div16 is (p^2-9)/16, the exponent used by the G2 OSSWU map's
// square-root candidate.
var p2m9Div16 = func() *big.Int {
	p := fp.Modulus()
	p2 := new(big.Int).Mul(p, p)
	e := new(big.Int).Sub(p2, big.NewInt(9))
	return e.Rsh(e, 4)
}()

func mustBig(hex string) *big.Int {
	v, ok := new(big.Int).SetString(hex[2:], 16)
	if !ok {
		panic("curve: bad constant " + hex)
	}
	return v
}

// chainP2m9Div16 computes x^((p^2-9)/16) in Fq2 for the G2 OSSWU map.
//
// original_source's opt_sswu_g1.rs hand-unrolls the analogous Fq
// exponentiation as a 458-link, 16-variable Bos-Coster addition chain
// operating directly on Fq limbs; gnark-crypto's E2 type has no
// generic Exp the way fp.Element does, so this walks the same fixed,
// data-independent square-and-multiply ladder by hand instead (the
// exponent is a compile-time constant, so the bit pattern never varies
// with the input).
func chainP2m9Div16(x bls12381.E2) bls12381.E2 {
	return e2Exp(x, p2m9Div16)
}

// e2Exp is a fixed-exponent square-and-multiply ladder over Fq2, used
// only by chainP2m9Div16 above.
func e2Exp(base bls12381.E2, exp *big.Int) bls12381.E2 {
	var result bls12381.E2
	result.SetOne()
	if exp.Sign() == 0 {
		return result
	}
	cur := base
	bits := exp.Bits()
	for wi, w := range bits {
		bitCount := bitsPerWord
		if wi == len(bits)-1 {
			bitCount = bitLen(uint(w))
		}
		for b := 0; b < bitCount; b++ {
			if (w>>uint(b))&1 == 1 {
				result.Mul(&result, &cur)
			}
			var sq bls12381.E2
			sq.Square(&cur)
			cur = sq
		}
	}
	return result
}

const bitsPerWord = 32 << (^uint(0) >> 63)

func bitLen(w uint) int {
	n := 0
	for w != 0 {
		n++
		w >>= 1
	}
	return n
}
