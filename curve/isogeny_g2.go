package curve

import bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

// isogenyCoeffsG2 holds the Fq2 coefficients of the 3-isogeny
// psi: E'(Fq2) -> E(Fq2), degree (3,2,3,3). Grounded on
// original_source's isogenies/g2_consts.rs XNUM/XDEN/YNUM/YDEN tables
// (G1 has no equivalent isogeny file in this repository's grounding
// material; see isogeny_g1.go).
type isogenyCoeffsG2 struct {
	xNum [4]bls12381.E2
	xDen [3]bls12381.E2
	yNum [4]bls12381.E2
	yDen [4]bls12381.E2
}

func e2(c0, c1 int64) bls12381.E2 {
	return bls12381.E2{A0: fqFromInt64(c0), A1: fqFromInt64(c1)}
}

// e2Hex builds an Fq2 element from two plain (non-Montgomery) hex
// limbs, matching how isogenies/g2_consts.rs stores XNUM/XDEN/YNUM/YDEN:
// unlike osswu_map/g2_consts.rs's ELLP_A/ELLP_B/XI/ETAS/ROOTS_OF_UNITY,
// these tuples are not wrapped in transmute::fq, so they are plain
// field-element integers rather than Montgomery-form limbs.
func e2Hex(c0, c1 string) bls12381.E2 {
	return bls12381.E2{A0: fqFromHex(c0), A1: fqFromHex(c1)}
}

var g2Isogeny = isogenyCoeffsG2{
	xNum: [4]bls12381.E2{
		e2Hex(
			"5c759507e8e333ebb5b7a9a47d7ed8532c52d39fd3a042a88b58423c50ae15d5c2638e343d9c71c6238aaaaaaaa97d6",
			"5c759507e8e333ebb5b7a9a47d7ed8532c52d39fd3a042a88b58423c50ae15d5c2638e343d9c71c6238aaaaaaaa97d6",
		),
		e2Hex(
			"0",
			"11560bf17baa99bc32126fced787c88f984f87adf7ae0c7f9a208c6b4f20a4181472aaa9cb8d555526a9ffffffffc71a",
		),
		e2Hex(
			"11560bf17baa99bc32126fced787c88f984f87adf7ae0c7f9a208c6b4f20a4181472aaa9cb8d555526a9ffffffffc71e",
			"8ab05f8bdd54cde190937e76bc3e447cc27c3d6fbd7063fcd104635a790520c0a395554e5c6aaaa9354ffffffffe38d",
		),
		e2Hex(
			"171d6541fa38ccfaed6dea691f5fb614cb14b4e7f4e810aa22d6108f142b85757098e38d0f671c7188e2aaaaaaaa5ed1",
			"0",
		),
	},
	xDen: [3]bls12381.E2{
		e2Hex(
			"0",
			"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaa63",
		),
		e2Hex(
			"c",
			"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaa9f",
		),
		e2Hex("1", "0"),
	},
	yNum: [4]bls12381.E2{
		e2Hex(
			"1530477c7ab4113b59a4c18b076d11930f7da5d4a07f649bf54439d87d27e500fc8c25ebf8c92f6812cfc71c71c6d706",
			"1530477c7ab4113b59a4c18b076d11930f7da5d4a07f649bf54439d87d27e500fc8c25ebf8c92f6812cfc71c71c6d706",
		),
		e2Hex(
			"0",
			"5c759507e8e333ebb5b7a9a47d7ed8532c52d39fd3a042a88b58423c50ae15d5c2638e343d9c71c6238aaaaaaaa97be",
		),
		e2Hex(
			"11560bf17baa99bc32126fced787c88f984f87adf7ae0c7f9a208c6b4f20a4181472aaa9cb8d555526a9ffffffffc71c",
			"8ab05f8bdd54cde190937e76bc3e447cc27c3d6fbd7063fcd104635a790520c0a395554e5c6aaaa9354ffffffffe38f",
		),
		e2Hex(
			"124c9ad43b6cf79bfbf7043de3811ad0761b0f37a1e26286b0e977c69aa274524e79097a56dc4bd9e1b371c71c718b10",
			"0",
		),
	},
	yDen: [4]bls12381.E2{
		e2Hex(
			"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffa8fb",
			"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffa8fb",
		),
		e2Hex(
			"0",
			"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffa9d3",
		),
		e2Hex(
			"12",
			"1a0111ea397fe69a4b1ba7b6434bacd764774b84f38512bf6730d2a0f6b0f6241eabfffeb153ffffb9feffffffffaa99",
		),
		e2Hex("1", "0"),
	},
}

// IsogenyMapG2 evaluates the G2 3-isogeny at a point on E'(Fq2),
// the Fq2 analogue of IsogenyMapG1.
func IsogenyMapG2(p ProjectivePointG2) ProjectivePointG2 {
	if p.Z.IsZero() {
		var zero ProjectivePointG2
		zero.X.SetZero()
		zero.Y.SetOne()
		zero.Z.SetZero()
		return zero
	}

	var zInv, zInv2, zInv3, x, y bls12381.E2
	zInv.Inverse(&p.Z)
	zInv2.Mul(&zInv, &zInv)
	zInv3.Mul(&zInv2, &zInv)
	x.Mul(&p.X, &zInv2)
	y.Mul(&p.Y, &zInv3)

	xNum := evalPolyFq2(g2Isogeny.xNum[:], x)
	xDen := evalPolyFq2(g2Isogeny.xDen[:], x)
	yNumP := evalPolyFq2(g2Isogeny.yNum[:], x)
	yDenP := evalPolyFq2(g2Isogeny.yDen[:], x)

	var xDenInv, yDenInv, outX, yFull, outY bls12381.E2
	xDenInv.Inverse(&xDen)
	yDenInv.Inverse(&yDenP)
	outX.Mul(&xNum, &xDenInv)
	yFull.Mul(&y, &yNumP)
	outY.Mul(&yFull, &yDenInv)

	var out ProjectivePointG2
	out.X = outX
	out.Y = outY
	out.Z.SetOne()
	return out
}

func evalPolyFq2(coeffs []bls12381.E2, x bls12381.E2) bls12381.E2 {
	acc := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		acc.Mul(&acc, &x)
		acc.Add(&acc, &coeffs[i])
	}
	return acc
}
