package curve

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// HashToG1 implements the hash_to_curve pipeline for G1 from spec
// section 4: hash_to_field (count=2) into Fq, map each field element
// onto E(Fq) (see OsswuMapG1's doc comment for why this lands directly
// on E rather than an auxiliary E' requiring an isogeny), add the two
// resulting points, and clear the cofactor to land in G1. IsogenyMapG1
// is still called for pipeline symmetry with HashToG2, but is a no-op.
func HashToG1(msg, dst []byte) bls12381.G1Affine {
	u := HashToFieldFq(msg, dst, 2)

	p0 := OsswuMapG1(u[0])
	p1 := OsswuMapG1(u[1])
	sum := addProjectiveG1(p0, p1)

	onE := IsogenyMapG1(sum)
	affine := toAffineG1(onE)
	return ClearCofactorG1(affine)
}

// HashToG2 is the G2 analogue of HashToG1: hash_to_field into Fq2,
// OSSWU-map, sum, apply the G2 isogeny, and clear the cofactor via
// the psi-endomorphism formula.
func HashToG2(msg, dst []byte) (bls12381.G2Affine, error) {
	u := HashToFieldFq2(msg, dst, 2)

	p0, err := OsswuMapG2(u[0])
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	p1, err := OsswuMapG2(u[1])
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	sum := addProjectiveG2(p0, p1)

	onE := IsogenyMapG2(sum)
	affine := toAffineG2(onE)
	return ClearCofactorG2(affine), nil
}

// addProjectiveG1 adds two points on E(Fq) via the affine
// chord-and-tangent addition law (both inputs are non-infinity in
// practice since OsswuMapG1 never returns the point at infinity for
// a finite field element, short of exhausting osswuTrialLimit).
// Converting through gnark-crypto's own Jacobian adder would work
// just as well here since both points are already on E, but this
// keeps the same shape as addProjectiveG2, which still needs its own
// affine law since G2's OSSWU map lands on the auxiliary curve E'.
func addProjectiveG1(p, q ProjectivePointG1) ProjectivePointG1 {
	ax := toAffineCoordFq(p.X, p.Z, 2)
	ay := toAffineCoordFq(p.Y, p.Z, 3)
	bx := toAffineCoordFq(q.X, q.Z, 2)
	by := toAffineCoordFq(q.Y, q.Z, 3)

	if ax.Equal(&bx) && !ay.Equal(&by) {
		// P and Q are mutual inverses (same x, opposite y): the chord
		// slope is undefined and the true sum is the point at infinity.
		var out ProjectivePointG1
		out.X.SetZero()
		out.Y.SetOne()
		out.Z.SetZero()
		return out
	}

	var lambda, num, den fp.Element
	if ax.Equal(&bx) {
		// Tangent: lambda = (3*ax^2 + A) / (2*ay); E(Fq) has A = 0.
		var ax2, three fp.Element
		ax2.Square(&ax)
		three.SetUint64(3)
		num.Mul(&ax2, &three)
		den.Add(&ay, &ay)
	} else {
		num.Sub(&by, &ay)
		den.Sub(&bx, &ax)
	}
	var denInv fp.Element
	denInv.Inverse(&den)
	lambda.Mul(&num, &denInv)

	var lambda2, rx, ry fp.Element
	lambda2.Square(&lambda)
	rx.Sub(&lambda2, &ax)
	rx.Sub(&rx, &bx)

	var dx fp.Element
	dx.Sub(&ax, &rx)
	ry.Mul(&lambda, &dx)
	ry.Sub(&ry, &ay)

	var out ProjectivePointG1
	out.X = rx
	out.Y = ry
	out.Z.SetOne()
	return out
}

func toAffineCoordFq(v, z fp.Element, power int) fp.Element {
	var zInv, scale fp.Element
	zInv.Inverse(&z)
	scale.SetOne()
	for i := 0; i < power; i++ {
		scale.Mul(&scale, &zInv)
	}
	var out fp.Element
	out.Mul(&v, &scale)
	return out
}

// addProjectiveG2 is the Fq2 analogue of addProjectiveG1.
func addProjectiveG2(p, q ProjectivePointG2) ProjectivePointG2 {
	ax := toAffineCoordFq2(p.X, p.Z, 2)
	ay := toAffineCoordFq2(p.Y, p.Z, 3)
	bx := toAffineCoordFq2(q.X, q.Z, 2)
	by := toAffineCoordFq2(q.Y, q.Z, 3)

	if ax.Equal(&bx) && !ay.Equal(&by) {
		// P and Q are mutual inverses: the true sum is infinity.
		var out ProjectivePointG2
		out.X.SetZero()
		out.Y.SetOne()
		out.Z.SetZero()
		return out
	}

	var lambda, num, den bls12381.E2
	if ax.Equal(&bx) {
		var ax2, three bls12381.E2
		ax2.Square(&ax)
		three = e2(3, 0)
		num.Mul(&ax2, &three)
		num.Add(&num, &g2EllA)
		den.Add(&ay, &ay)
	} else {
		num.Sub(&by, &ay)
		den.Sub(&bx, &ax)
	}
	var denInv bls12381.E2
	denInv.Inverse(&den)
	lambda.Mul(&num, &denInv)

	var lambda2, rx, ry bls12381.E2
	lambda2.Square(&lambda)
	rx.Sub(&lambda2, &ax)
	rx.Sub(&rx, &bx)

	var dx bls12381.E2
	dx.Sub(&ax, &rx)
	ry.Mul(&lambda, &dx)
	ry.Sub(&ry, &ay)

	var out ProjectivePointG2
	out.X = rx
	out.Y = ry
	out.Z.SetOne()
	return out
}

func toAffineCoordFq2(v, z bls12381.E2, power int) bls12381.E2 {
	var zInv, scale bls12381.E2
	zInv.Inverse(&z)
	scale.SetOne()
	for i := 0; i < power; i++ {
		scale.Mul(&scale, &zInv)
	}
	var out bls12381.E2
	out.Mul(&v, &scale)
	return out
}
