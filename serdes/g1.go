package serdes

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
)

// G1CompressedSize and G1UncompressedSize are the wire lengths from
// spec section 5's serialization table.
const (
	G1CompressedSize   = 48
	G1UncompressedSize = 96
)

// EncodeG1Compressed serializes p using the compressed, flag-tagged
// encoding: top bit set, infinity bit set only for the identity, sort
// bit recording the sign of Y for non-infinity points.
func EncodeG1Compressed(p bls12381.G1Affine) [G1CompressedSize]byte {
	var out [G1CompressedSize]byte
	if p.X.IsZero() && p.Y.IsZero() {
		out[0] = flagCompressed | flagInfinity
		return out
	}

	xBytes := p.X.Bytes()
	copy(out[:], xBytes[:])
	out[0] |= flagCompressed
	if ySign(p.Y) {
		out[0] |= flagSortY
	}
	return out
}

// EncodeG1Uncompressed serializes p as raw (x, y) big-endian
// coordinates with the compressed flag bit cleared.
func EncodeG1Uncompressed(p bls12381.G1Affine) [G1UncompressedSize]byte {
	var out [G1UncompressedSize]byte
	if p.X.IsZero() && p.Y.IsZero() {
		out[0] = flagInfinity
		return out
	}
	xBytes := p.X.Bytes()
	yBytes := p.Y.Bytes()
	copy(out[:48], xBytes[:])
	copy(out[48:], yBytes[:])
	return out
}

// DecodeG1 parses either a compressed (48-byte) or uncompressed
// (96-byte) encoding, recovering the Y coordinate from its sign bit
// in the compressed case, and optionally checking subgroup
// membership per opts.
func DecodeG1(data []byte, opts Options) (bls12381.G1Affine, error) {
	switch len(data) {
	case G1CompressedSize:
		return decodeG1Compressed(data, opts)
	case G1UncompressedSize:
		return decodeG1Uncompressed(data, opts)
	default:
		return bls12381.G1Affine{}, wrapf("g1: invalid length %d: %w", len(data), ErrInvalidEncoding)
	}
}

func decodeG1Compressed(data []byte, opts Options) (bls12381.G1Affine, error) {
	tag := data[0] & 0xe0
	if tag&flagCompressed == 0 {
		return bls12381.G1Affine{}, ErrInvalidEncoding
	}
	infinity := tag&flagInfinity != 0
	sortY := tag&flagSortY != 0

	var buf [48]byte
	copy(buf[:], data)
	buf[0] &^= 0xe0

	if infinity {
		if sortY || !isAllZero(buf[:]) {
			return bls12381.G1Affine{}, ErrInvalidEncoding
		}
		var p bls12381.G1Affine
		p.X.SetZero()
		p.Y.SetZero()
		return p, nil
	}

	var x fp.Element
	if err := setCanonical(&x, buf[:]); err != nil {
		return bls12381.G1Affine{}, err
	}

	y, err := recoverYG1(x)
	if err != nil {
		return bls12381.G1Affine{}, err
	}
	if ySign(y) != sortY {
		y.Neg(&y)
	}

	p := bls12381.G1Affine{X: x, Y: y}
	return finishG1(p, opts)
}

func decodeG1Uncompressed(data []byte, opts Options) (bls12381.G1Affine, error) {
	tag := data[0] & 0xe0
	if tag&flagCompressed != 0 {
		return bls12381.G1Affine{}, ErrInvalidEncoding
	}
	infinity := tag&flagInfinity != 0
	sortY := tag&flagSortY != 0
	if sortY {
		return bls12381.G1Affine{}, ErrInvalidEncoding
	}

	var xBuf, yBuf [48]byte
	copy(xBuf[:], data[:48])
	copy(yBuf[:], data[48:])
	xBuf[0] &^= 0xe0

	if infinity {
		if !isAllZero(xBuf[:]) || !isAllZero(yBuf[:]) {
			return bls12381.G1Affine{}, ErrInvalidEncoding
		}
		var p bls12381.G1Affine
		p.X.SetZero()
		p.Y.SetZero()
		return p, nil
	}

	var x, y fp.Element
	if err := setCanonical(&x, xBuf[:]); err != nil {
		return bls12381.G1Affine{}, err
	}
	if err := setCanonical(&y, yBuf[:]); err != nil {
		return bls12381.G1Affine{}, err
	}

	p := bls12381.G1Affine{X: x, Y: y}
	return finishG1(p, opts)
}

func finishG1(p bls12381.G1Affine, opts Options) (bls12381.G1Affine, error) {
	if !p.IsOnCurve() {
		return bls12381.G1Affine{}, ErrNotOnCurve
	}
	if opts.CheckSubgroup && !CheckSubgroupG1(p) {
		return bls12381.G1Affine{}, ErrNotInSubgroup
	}
	return p, nil
}

// recoverYG1 computes y = sqrt(x^3 + b) over Fq for the G1 curve
// equation y^2 = x^3 + 4, failing if x^3+4 is not a square.
func recoverYG1(x fp.Element) (fp.Element, error) {
	var rhs, x3, b fp.Element
	x3.Square(&x)
	x3.Mul(&x3, &x)
	b.SetUint64(4)
	rhs.Add(&x3, &b)

	var y fp.Element
	if y.Sqrt(&rhs) == nil {
		return fp.Element{}, ErrNotOnCurve
	}
	return y, nil
}

func ySign(y fp.Element) bool {
	return isLexicographicallyLargest(y)
}

func isAllZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
