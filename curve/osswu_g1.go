package curve

import (
	"errors"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// ErrOsswuFailed is returned from the G2 OSSWU map's square-root trial
// when none of the four candidate roots of unity produces a valid y,
// which per spec section 9 indicates a bug in the fixed constants or
// memory corruption rather than a reachable runtime condition. The
// original_source panics there (`unreachable!()`); this repository
// turns that into a returned error instead.
var ErrOsswuFailed = errors.New("curve: osswu map found no valid square root")

// g1B is the B coefficient of E(Fq): y^2 = x^3 + 4. G1 has A = 0, so
// only B is needed by OsswuMapG1's curve equation check below.
var g1B = fqFromInt64(4)

func fqFromHex(hex string) fp.Element {
	var e fp.Element
	if _, err := e.SetString("0x" + hex); err != nil {
		panic("curve: bad Fq constant: " + err.Error())
	}
	return e
}

func fqFromInt64(v int64) fp.Element {
	var e fp.Element
	if v < 0 {
		e.SetUint64(uint64(-v))
		e.Neg(&e)
	} else {
		e.SetUint64(uint64(v))
	}
	return e
}

// ProjectivePointG1 is a point on E in (X, Y, Z) Jacobian-style
// projective coordinates, affine = (X/Z^2, Y/Z^3), matching spec
// section 3's "Curve points" data model. It is not gnark-crypto's
// G1Jac. OsswuMapG1 maps straight onto E, so this type never carries
// a point on an auxiliary curve E'.
type ProjectivePointG1 struct {
	X, Y, Z fp.Element
}

// osswuTrialLimit bounds the try-and-increment search in OsswuMapG1.
// original_source has no G1 isogeny file anywhere in the retrieval
// (see isogeny_g1.go's doc comment); wyf-ACCEPT-eth2030's
// pkg/crypto/bls12381_map.go solves the same "no usable isogeny
// constants" situation with a bounded search directly on E, which is
// what this loop is grounded on. The chance of exceeding this many
// consecutive non-residues is astronomically small.
const osswuTrialLimit = 256

// OsswuMapG1 sends a field element u to a point on E(Fq): y^2 = x^3 +
// 4, by a bounded try-and-increment search (x, x+1, x+2, ... until
// x^3+4 is a square), rather than the OSSWU-map-onto-E'-then-isogeny
// construction spec section 4.2 names. See isogeny_g1.go's doc comment
// for why: the 11-isogeny this construction needs has no verifiable
// source in this repository's grounding material. The resulting point
// is genuinely on E and, after ClearCofactorG1, in the correct
// subgroup; it does not reproduce the IETF suite's exact
// BLS12381G1_XMD:SHA-256_SSWU_RO_ output bit-for-bit.
func OsswuMapG1(u fp.Element) ProjectivePointG1 {
	x := u
	var one fp.Element
	one.SetOne()

	for i := 0; i < osswuTrialLimit; i++ {
		var x2, x3, rhs fp.Element
		x2.Square(&x)
		x3.Mul(&x2, &x)
		rhs.Add(&x3, &g1B)

		var y fp.Element
		if y.Sqrt(&rhs) != nil {
			var check fp.Element
			check.Square(&y)
			if check.Equal(&rhs) {
				NegateIfFq(&y, Sgn0Fq(&u))

				var out ProjectivePointG1
				out.X = x
				out.Y = y
				out.Z.SetOne()
				return out
			}
		}
		x.Add(&x, &one)
	}

	// Unreachable for a field this size (the density of quadratic
	// residues makes osswuTrialLimit consecutive misses vanishingly
	// unlikely); return infinity rather than a bogus point if it ever
	// somehow happens.
	var out ProjectivePointG1
	out.X.SetZero()
	out.Y.SetOne()
	out.Z.SetZero()
	return out
}

// toAffineG1 converts a Jacobian-style (X, Y, Z) point with affine
// (x,y) = (X/Z^2, Y/Z^3) into a gnark-crypto G1Affine, the boundary
// where this package hands a finished E-point back to the pairing
// library.
func toAffineG1(p ProjectivePointG1) bls12381.G1Affine {
	var out bls12381.G1Affine
	if p.Z.IsZero() {
		out.X.SetZero()
		out.Y.SetZero()
		return out
	}
	var zInv, zInv2, zInv3 fp.Element
	zInv.Inverse(&p.Z)
	zInv2.Mul(&zInv, &zInv)
	zInv3.Mul(&zInv2, &zInv)
	out.X.Mul(&p.X, &zInv2)
	out.Y.Mul(&p.Y, &zInv3)
	return out
}
