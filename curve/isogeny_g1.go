package curve

// IsogenyMapG1 is the identity on E(Fq): y^2 = x^3 + 4.
//
// BLS12-381's G1 isogeny is an 11-isogeny (12/11/16/15-term rational
// maps), not the degree-(3,2,3,3) shape G2 uses. This repository's
// grounding material has no verifiable source for those coefficients:
// original_source's retrieval index lists no isogenies/g1_consts.rs
// (cofactor.rs's ClearH for G1 and opt_sswu_g1.rs both operate with no
// isogeny step at all), and the 54 field elements the real map needs
// cannot be transcribed correctly without a way to check them against
// original_source, a published test vector, or a toolchain run, none
// of which are available here. OsswuMapG1 (osswu_g1.go) is therefore
// built to land directly on E via try-and-increment, so there is
// nothing left for an isogeny to do; this function stays as a no-op
// so HashToG1's pipeline shape in hash_to_curve.go still reads the
// same as HashToG2's.
func IsogenyMapG1(p ProjectivePointG1) ProjectivePointG1 {
	return p
}
