package curve

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// g2EllA, g2EllB and g2Xi parameterize the auxiliary curve E'(Fq2):
// y^2 = x^3 + g2EllA*x + g2EllB, and the non-square Z used by the
// OSSWU map for G2, Montgomery-decoded from original_source's
// osswu_map/g2_consts.rs ELLP_A/ELLP_B/XI (A'=240i, B'=1012(1+i),
// Z=1+i).
var (
	g2EllA = bls12381.E2{A0: fqFromInt64(0), A1: fqFromInt64(240)}
	g2EllB = bls12381.E2{A0: fqFromInt64(1012), A1: fqFromInt64(1012)}
	// g2Xi is original_source's osswu_map/g2_consts.rs XI = 1+i, kept
	// paired with its own ELLP_A/ELLP_B rather than swapped for a
	// differently-sourced non-residue: A', B' and Z must come from the
	// same curve instance, and this is the instance these A', B' are
	// taken from.
	g2Xi = bls12381.E2{A0: fqFromInt64(1), A1: fqFromInt64(1)}
)

// rootsOfUnityFq2 holds the four candidate square roots used by the
// G2 sqrt trial when testing x0 (ROOTS_OF_UNITY in original_source's
// osswu_map/g2_consts.rs, Montgomery-decoded): 1, i, and the two
// primitive 8th roots of unity whose square is i or -i.
var rootsOfUnityFq2 = [4]bls12381.E2{
	e2Hex("1", "0"),
	e2Hex("0", "1"),
	e2Hex(
		"6af0e0437ff400b6831e36d6bd17ffe48395dabc2d3435e77f76e17009241c5ee67992f72ec05f4c81084fbede3cc09",
		"6af0e0437ff400b6831e36d6bd17ffe48395dabc2d3435e77f76e17009241c5ee67992f72ec05f4c81084fbede3cc09",
	),
	e2Hex(
		"6af0e0437ff400b6831e36d6bd17ffe48395dabc2d3435e77f76e17009241c5ee67992f72ec05f4c81084fbede3cc09",
		"135203e60180a68ee2e9c448d77a2cd91c3dedd930b1cf60ef396489f61eb45e304466cf3e67fa0af1ee7b04121bdea2",
	),
}

// etasFq2 holds original_source's ETAS table, the distinct set of
// constants used for the x1 fallback trial (g2.rs / g2_consts.rs,
// Montgomery-decoded); unlike rootsOfUnityFq2 these do not all square
// to {1,-1,i,-i} and must not be conflated with that table.
var etasFq2 = [4]bls12381.E2{
	e2Hex(
		"2c4a7244a026bd3e305cc456ad9e235ed85f8b53954258ec8186bb3d4eccef7c4ee7b8d4b9e063a6c88d0aa3e03ba01",
		"0",
	),
	e2Hex(
		"0",
		"2c4a7244a026bd3e305cc456ad9e235ed85f8b53954258ec8186bb3d4eccef7c4ee7b8d4b9e063a6c88d0aa3e03ba01",
	),
	e2Hex(
		"85fa8cd9105715e641892a0f9a4bb2912b58b8d32f26594c60679cc7973076dc6638358daf3514d6426a813ae01f51a",
		"85fa8cd9105715e641892a0f9a4bb2912b58b8d32f26594c60679cc7973076dc6638358daf3514d6426a813ae01f51a",
	),
	e2Hex(
		"85fa8cd9105715e641892a0f9a4bb2912b58b8d32f26594c60679cc7973076dc6638358daf3514d6426a813ae01f51a",
		"11a1691ca87a753be703151549a6f1ae51c1bff7c092ad2aa12a58d47d3deeb658487ca5d660aeb255d857ec51fdb591",
	),
}

// ProjectivePointG2 is the G2 analogue of ProjectivePointG1.
type ProjectivePointG2 struct {
	X, Y, Z bls12381.E2
}

// OsswuMapG2 implements spec section 4.2's Optimized Simplified SWU
// map for Fq2, mirroring OsswuMapG1 but over the quadratic extension
// and using the four-candidate square-root trial from
// original_source's osswu_map/g2.rs instead of a single Shanks
// exponentiation, since -1 is a square in Fq2 and p^2-9 is only
// divisible by 16 rather than 4.
func OsswuMapG2(u bls12381.E2) (ProjectivePointG2, error) {
	var t2, t3, nd bls12381.E2
	t2.Mul(&u, &u)
	t2.Mul(&t2, &g2Xi)
	t3.Mul(&t2, &t2)
	nd.Add(&t3, &t2)

	var one, onePlusNd, x0Num, x0Den bls12381.E2
	one.SetOne()
	onePlusNd.Add(&one, &nd)
	x0Num.Mul(&g2EllB, &onePlusNd)

	if nd.IsZero() {
		x0Den.Mul(&g2EllA, &g2Xi)
	} else {
		x0Den.Mul(&g2EllA, &nd)
		x0Den.Neg(&x0Den)
	}

	var x0Num2, x0Num3, x0Den2, x0Den3 bls12381.E2
	x0Num2.Mul(&x0Num, &x0Num)
	x0Num3.Mul(&x0Num2, &x0Num)
	x0Den2.Mul(&x0Den, &x0Den)
	x0Den3.Mul(&x0Den2, &x0Den)

	var aTerm, bTerm, gx0Num bls12381.E2
	aTerm.Mul(&g2EllA, &x0Num)
	aTerm.Mul(&aTerm, &x0Den2)
	bTerm.Mul(&g2EllB, &x0Den3)
	gx0Num.Add(&x0Num3, &aTerm)
	gx0Num.Add(&gx0Num, &bTerm)
	gx0Den := x0Den3

	var gx0Den2 bls12381.E2
	gx0Den2.Mul(&gx0Den, &gx0Den)

	gx0Den3Val := gx0Den3(gx0Den, gx0Den2)

	var uv3, uv7, principal bls12381.E2
	uv3.Mul(&gx0Num, &gx0Den3Val)
	uv7.Mul(&uv3, &gx0Den2)
	uv7.Mul(&uv7, &gx0Den2)
	principal = chainP2m9Div16(uv7)

	var c bls12381.E2
	c.Mul(&uv3, &principal)

	var found bool
	var y bls12381.E2
	for _, root := range rootsOfUnityFq2 {
		var cand, candSq, candCheck bls12381.E2
		cand.Mul(&c, &root)
		candSq.Mul(&cand, &cand)
		candCheck.Mul(&candSq, &gx0Den)
		if candCheck.Equal(&gx0Num) {
			y = cand
			found = true
			break
		}
	}

	var xNum, xDen bls12381.E2
	if found {
		xNum, xDen = x0Num, x0Den
	} else {
		xNum.Mul(&t2, &x0Num)
		xDen = x0Den

		var u3 bls12381.E2
		u3.Mul(&u, &u)
		u3.Mul(&u3, &u)

		found = false
		for _, root := range etasFq2 {
			var cand, candSq, candCheck, x1gNum bls12381.E2
			cand.Mul(&c, &root)
			cand.Mul(&cand, &u3)
			candSq.Mul(&cand, &cand)
			candCheck.Mul(&candSq, &gx0Den)
			// g(x1) = xi^3 * u^6 * g(x0); check against that scaled value.
			var xi3, u6 bls12381.E2
			xi3.Mul(&g2Xi, &g2Xi)
			xi3.Mul(&xi3, &g2Xi)
			u6.Mul(&u3, &u3)
			x1gNum.Mul(&xi3, &u6)
			x1gNum.Mul(&x1gNum, &gx0Num)
			if candCheck.Equal(&x1gNum) {
				y = cand
				found = true
				break
			}
		}
		if !found {
			return ProjectivePointG2{}, ErrOsswuFailed
		}
	}

	NegateIfFq2(&y, Sgn0Fq2(&u))

	var out ProjectivePointG2
	out.X.Mul(&xNum, &xDen)
	out.Y.Mul(&y, &gx0Den)
	out.Z = xDen
	return out, nil
}

func gx0Den3(d, d2 bls12381.E2) bls12381.E2 {
	var out bls12381.E2
	out.Mul(&d, &d2)
	return out
}

// toAffineG2 converts a Jacobian-style (X, Y, Z) Fq2 point into a
// gnark-crypto G2Affine.
func toAffineG2(p ProjectivePointG2) bls12381.G2Affine {
	var out bls12381.G2Affine
	if p.Z.IsZero() {
		out.X.SetZero()
		out.Y.SetZero()
		return out
	}
	var zInv, zInv2, zInv3 bls12381.E2
	zInv.Inverse(&p.Z)
	zInv2.Mul(&zInv, &zInv)
	zInv3.Mul(&zInv2, &zInv)
	out.X.Mul(&p.X, &zInv2)
	out.Y.Mul(&p.Y, &zInv3)
	return out
}
