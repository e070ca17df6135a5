package curve

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/hkdf"
)

// lFieldFq and lFieldFr are the byte lengths used by expand_message
// for elements of Fq and Fr, per spec section 4.1: ceil((ceil(log2(p))+128)/8).
const (
	lFieldFq = 64
	lFieldFr = 48
)

// keygenSalt is the fixed HKDF salt used by xprimeFromSK, the literal
// ASCII string from the IETF BLS-signature draft's keygen procedure.
const keygenSalt = "BLS-SIG-KEYGEN-SALT-"

// hkdfExpand runs HKDF-Expand(prk, info, length) using HMAC-SHA256,
// the MAC pinned by spec section 4.1.
func hkdfExpand(prk, info []byte, length int) []byte {
	r := hkdf.Expand(sha256.New, prk, info)
	out := make([]byte, length)
	if _, err := r.Read(out); err != nil {
		// hkdf.Expand only errors when the requested length exceeds
		// 255*hash size; L_field is always well within that bound.
		panic(err)
	}
	return out
}

// fromOKMFq implements from_okm for Fq: split the 64-byte okm into two
// 32-byte halves, each big-endian integers, and combine as
// hi*2^256 + lo, reduced mod p via fp.Element.SetBigInt.
func fromOKMFq(okm []byte) fp.Element {
	half := lFieldFq / 2
	hi := new(big.Int).SetBytes(okm[:half])
	lo := new(big.Int).SetBytes(okm[half:])
	hi.Lsh(hi, uint(half*8))
	hi.Add(hi, lo)

	var out fp.Element
	out.SetBigInt(hi)
	return out
}

// fromOKMFr is the from_okm rule used for Fr (48-byte okm, as used by
// xprimeFromSK).
func fromOKMFr(okm []byte) fr.Element {
	half := lFieldFr / 2
	hi := new(big.Int).SetBytes(okm[:half])
	lo := new(big.Int).SetBytes(okm[half:])
	hi.Lsh(hi, uint(half*8))
	hi.Add(hi, lo)

	var out fr.Element
	out.SetBigInt(hi)
	return out
}

// expandInfo builds the HKDF-Expand info string "H2C" || ctr || idx,
// both counters encoded as single bytes since count is always small
// (<=2 here).
func expandInfo(ctr, idx uint8) []byte {
	return []byte{'H', '2', 'C', ctr, idx}
}

// HashToFieldFq runs hash_to_field(msg, dst, count, Fq): HKDF-Extract
// once over (salt=dst, ikm=msg), then one HKDF-Expand per requested
// element.
func HashToFieldFq(msg, dst []byte, count int) []fp.Element {
	prk := hkdf.Extract(sha256.New, msg, dst)
	out := make([]fp.Element, count)
	for i := 0; i < count; i++ {
		okm := hkdfExpand(prk, expandInfo(uint8(i), 1), lFieldFq)
		out[i] = fromOKMFq(okm)
	}
	return out
}

// HashToFieldFq2 runs hash_to_field(msg, dst, count, Fq2): each Fq2
// element consumes two independent Fq expansions (idx=1 for c0, idx=2
// for c1) sharing one HKDF-Extract.
func HashToFieldFq2(msg, dst []byte, count int) []bls12381.E2 {
	prk := hkdf.Extract(sha256.New, msg, dst)
	out := make([]bls12381.E2, count)
	for i := 0; i < count; i++ {
		okm0 := hkdfExpand(prk, expandInfo(uint8(i), 1), lFieldFq)
		okm1 := hkdfExpand(prk, expandInfo(uint8(i), 2), lFieldFq)
		out[i].A0 = fromOKMFq(okm0)
		out[i].A1 = fromOKMFq(okm1)
	}
	return out
}

// XprimeFromSK implements section 4.1's secret-exponent derivation:
// HKDF-Extract with the fixed keygen salt, ikm = sk || 0x00, expand 48
// bytes with info = I2OSP(48, 2), mapped to Fr via from_okm.
//
// Per spec section 4, callers must reject seeds shorter than 32 bytes
// before calling this; it does not re-check the length itself.
func XprimeFromSK(sk []byte) fr.Element {
	ikm := make([]byte, len(sk)+1)
	copy(ikm, sk)
	// last byte already zero

	prk := hkdf.Extract(sha256.New, ikm, []byte(keygenSalt))
	info := make([]byte, 2)
	binary.BigEndian.PutUint16(info, lFieldFr)
	okm := hkdfExpand(prk, info, lFieldFr)
	return fromOKMFr(okm)
}
