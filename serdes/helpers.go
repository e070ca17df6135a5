package serdes

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

var halfP = func() *big.Int {
	p := fp.Modulus()
	h := new(big.Int).Sub(p, big.NewInt(1))
	return h.Rsh(h, 1)
}()

// setCanonical decodes a big-endian coordinate, rejecting values that
// are not the canonical representative (i.e. >= p), per spec section
// 5's non-canonical-encoding rejection requirement.
func setCanonical(dst *fp.Element, buf []byte) error {
	v := new(big.Int).SetBytes(buf)
	if v.Cmp(fp.Modulus()) >= 0 {
		return ErrInvalidEncoding
	}
	dst.SetBigInt(v)
	return nil
}

// isLexicographicallyLargest reports whether y's canonical integer
// representative exceeds (p-1)/2, the convention used to pick which
// of the two square roots is "large" for the compressed sort bit.
func isLexicographicallyLargest(y fp.Element) bool {
	var v big.Int
	y.BigInt(&v)
	return v.Cmp(halfP) > 0
}
