package serdes

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// G2CompressedSize and G2UncompressedSize are the wire lengths from
// spec section 5's serialization table.
const (
	G2CompressedSize   = 96
	G2UncompressedSize = 192
)

// Fq2 elements serialize as c1 || c0 (the flag bits live in the c1
// half), matching Zcash's BLS12-381 convention.

// EncodeG2Compressed serializes p compressed, flag bits in the first
// byte of the c1 half.
func EncodeG2Compressed(p bls12381.G2Affine) [G2CompressedSize]byte {
	var out [G2CompressedSize]byte
	if p.X.A0.IsZero() && p.X.A1.IsZero() && p.Y.A0.IsZero() && p.Y.A1.IsZero() {
		out[0] = flagCompressed | flagInfinity
		return out
	}

	c1 := p.X.A1.Bytes()
	c0 := p.X.A0.Bytes()
	copy(out[:48], c1[:])
	copy(out[48:], c0[:])
	out[0] |= flagCompressed
	if ySignFq2(p.Y) {
		out[0] |= flagSortY
	}
	return out
}

// EncodeG2Uncompressed serializes p as raw (x, y) Fq2 coordinates,
// each c1 || c0, with the compressed flag cleared.
func EncodeG2Uncompressed(p bls12381.G2Affine) [G2UncompressedSize]byte {
	var out [G2UncompressedSize]byte
	if p.X.A0.IsZero() && p.X.A1.IsZero() && p.Y.A0.IsZero() && p.Y.A1.IsZero() {
		out[0] = flagInfinity
		return out
	}
	xc1 := p.X.A1.Bytes()
	xc0 := p.X.A0.Bytes()
	yc1 := p.Y.A1.Bytes()
	yc0 := p.Y.A0.Bytes()
	copy(out[0:48], xc1[:])
	copy(out[48:96], xc0[:])
	copy(out[96:144], yc1[:])
	copy(out[144:192], yc0[:])
	return out
}

// DecodeG2 parses either a compressed (96-byte) or uncompressed
// (192-byte) encoding.
func DecodeG2(data []byte, opts Options) (bls12381.G2Affine, error) {
	switch len(data) {
	case G2CompressedSize:
		return decodeG2Compressed(data, opts)
	case G2UncompressedSize:
		return decodeG2Uncompressed(data, opts)
	default:
		return bls12381.G2Affine{}, wrapf("g2: invalid length %d: %w", len(data), ErrInvalidEncoding)
	}
}

func decodeG2Compressed(data []byte, opts Options) (bls12381.G2Affine, error) {
	tag := data[0] & 0xe0
	if tag&flagCompressed == 0 {
		return bls12381.G2Affine{}, ErrInvalidEncoding
	}
	infinity := tag&flagInfinity != 0
	sortY := tag&flagSortY != 0

	var c1Buf, c0Buf [48]byte
	copy(c1Buf[:], data[:48])
	copy(c0Buf[:], data[48:96])
	c1Buf[0] &^= 0xe0

	if infinity {
		if sortY || !isAllZero(c1Buf[:]) || !isAllZero(c0Buf[:]) {
			return bls12381.G2Affine{}, ErrInvalidEncoding
		}
		var p bls12381.G2Affine
		return p, nil
	}

	var c1, c0 fp.Element
	if err := setCanonical(&c1, c1Buf[:]); err != nil {
		return bls12381.G2Affine{}, err
	}
	if err := setCanonical(&c0, c0Buf[:]); err != nil {
		return bls12381.G2Affine{}, err
	}
	x := bls12381.E2{A0: c0, A1: c1}

	y, err := recoverYG2(x)
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	if ySignFq2(y) != sortY {
		y.Neg(&y)
	}

	p := bls12381.G2Affine{X: x, Y: y}
	return finishG2(p, opts)
}

func decodeG2Uncompressed(data []byte, opts Options) (bls12381.G2Affine, error) {
	tag := data[0] & 0xe0
	if tag&flagCompressed != 0 {
		return bls12381.G2Affine{}, ErrInvalidEncoding
	}
	infinity := tag&flagInfinity != 0
	sortY := tag&flagSortY != 0
	if sortY {
		return bls12381.G2Affine{}, ErrInvalidEncoding
	}

	var xc1, xc0, yc1, yc0 [48]byte
	copy(xc1[:], data[0:48])
	copy(xc0[:], data[48:96])
	copy(yc1[:], data[96:144])
	copy(yc0[:], data[144:192])
	xc1[0] &^= 0xe0

	if infinity {
		for _, b := range [][]byte{xc1[:], xc0[:], yc1[:], yc0[:]} {
			if !isAllZero(b) {
				return bls12381.G2Affine{}, ErrInvalidEncoding
			}
		}
		var p bls12381.G2Affine
		return p, nil
	}

	var x, y bls12381.E2
	if err := setCanonical(&x.A1, xc1[:]); err != nil {
		return bls12381.G2Affine{}, err
	}
	if err := setCanonical(&x.A0, xc0[:]); err != nil {
		return bls12381.G2Affine{}, err
	}
	if err := setCanonical(&y.A1, yc1[:]); err != nil {
		return bls12381.G2Affine{}, err
	}
	if err := setCanonical(&y.A0, yc0[:]); err != nil {
		return bls12381.G2Affine{}, err
	}

	p := bls12381.G2Affine{X: x, Y: y}
	return finishG2(p, opts)
}

func finishG2(p bls12381.G2Affine, opts Options) (bls12381.G2Affine, error) {
	if !p.IsOnCurve() {
		return bls12381.G2Affine{}, ErrNotOnCurve
	}
	if opts.CheckSubgroup && !CheckSubgroupG2(p) {
		return bls12381.G2Affine{}, ErrNotInSubgroup
	}
	return p, nil
}

// recoverYG2 computes y = sqrt(x^3 + b) over Fq2 for the G2 curve
// equation y^2 = x^3 + 4(1+i).
func recoverYG2(x bls12381.E2) (bls12381.E2, error) {
	var rhs, x3, b bls12381.E2
	x3.Square(&x)
	x3.Mul(&x3, &x)
	b.A0.SetUint64(4)
	b.A1.SetUint64(4)
	rhs.Add(&x3, &b)

	var y bls12381.E2
	if !y.Sqrt(&rhs) {
		return bls12381.E2{}, ErrNotOnCurve
	}
	return y, nil
}

func ySignFq2(y bls12381.E2) bool {
	if !y.A1.IsZero() {
		return isLexicographicallyLargest(y.A1)
	}
	return isLexicographicallyLargest(y.A0)
}
