// Package cbls exposes a cgo FFI surface for the signature package,
// using fixed-size C struct layouts grounded on original_source's
// ffi.rs. The boundary only speaks compressed encodings; callers that
// need uncompressed points must convert on the Go side.
package cbls

/*
#include <stdint.h>

typedef struct { uint8_t bytes[32]; } bls_sk;
typedef struct { uint8_t bytes[48]; } bls_pk;
typedef struct { uint8_t bytes[96]; } bls_sig;
*/
import "C"

import (
	"math/big"
	"unsafe"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/kysee/bls-sigs-go/serdes"
	"github.com/kysee/bls-sigs-go/signature"
)

func skFromBytes(b []byte) fr.Element {
	var v big.Int
	v.SetBytes(b)
	var e fr.Element
	e.SetBigInt(&v)
	return e
}

func skToBytes(e fr.Element) [32]byte {
	var v big.Int
	e.BigInt(&v)
	var out [32]byte
	v.FillBytes(out[:])
	return out
}

// cKeygenMinPk derives a min-pk keypair (public key in G1, signature
// in G2) from a 32-byte seed, writing the compressed public key into
// outPk and the raw secret scalar into outSk. Returns 0 on success,
// -1 if the seed is rejected by spec section 4's minimum-length
// check.
//
//export cKeygenMinPk
func cKeygenMinPk(seed *C.bls_sk, outSk *C.bls_sk, outPk *C.bls_pk) C.int {
	seedBytes := C.GoBytes(unsafe.Pointer(&seed.bytes[0]), 32)
	kp, err := signature.KeygenMinPk(seedBytes)
	if err != nil {
		return -1
	}

	skBytes := skToBytes(kp.SK)
	copy((*[32]byte)(unsafe.Pointer(&outSk.bytes[0]))[:], skBytes[:])

	pkBytes := serdes.EncodeG1Compressed(kp.PK)
	copy((*[48]byte)(unsafe.Pointer(&outPk.bytes[0]))[:], pkBytes[:])
	return 0
}

// cSignMinPk signs a message with a min-pk keypair under the Basic
// scheme, writing the compressed signature into outSig.
//
//export cSignMinPk
func cSignMinPk(sk *C.bls_sk, pk *C.bls_pk, msg *C.uint8_t, msgLen C.size_t, outSig *C.bls_sig) C.int {
	skBytes := C.GoBytes(unsafe.Pointer(&sk.bytes[0]), 32)
	pkBytes := C.GoBytes(unsafe.Pointer(&pk.bytes[0]), 48)
	msgBytes := C.GoBytes(unsafe.Pointer(msg), C.int(msgLen))

	pkPoint, err := serdes.DecodeG1(pkBytes, serdes.Options{})
	if err != nil {
		return -1
	}
	kp := signature.KeyPairMinPk{SK: skFromBytes(skBytes), PK: pkPoint}

	cs := signature.Ciphersuite{Scheme: signature.Basic, Placement: signature.PKInG1}
	sig, err := signature.SignMinPk(cs, kp, msgBytes)
	if err != nil {
		return -1
	}
	sigBytes := serdes.EncodeG2Compressed(sig)
	copy((*[96]byte)(unsafe.Pointer(&outSig.bytes[0]))[:], sigBytes[:])
	return 0
}

// cVerifyMinPk verifies a Basic-scheme min-pk signature, returning 1
// for a valid signature, 0 for invalid, and -1 on a malformed input
// (undecodable point, wrong length).
//
//export cVerifyMinPk
func cVerifyMinPk(pk *C.bls_pk, msg *C.uint8_t, msgLen C.size_t, sig *C.bls_sig) C.int {
	pkBytes := C.GoBytes(unsafe.Pointer(&pk.bytes[0]), 48)
	sigBytes := C.GoBytes(unsafe.Pointer(&sig.bytes[0]), 96)
	msgBytes := C.GoBytes(unsafe.Pointer(msg), C.int(msgLen))

	pkPoint, err := serdes.DecodeG1(pkBytes, serdes.WithSubgroupChecks(true))
	if err != nil {
		return -1
	}
	sigPoint, err := serdes.DecodeG2(sigBytes, serdes.WithSubgroupChecks(true))
	if err != nil {
		return -1
	}

	cs := signature.Ciphersuite{Scheme: signature.Basic, Placement: signature.PKInG1}
	ok, err := signature.VerifyMinPk(cs, pkPoint, msgBytes, sigPoint)
	if err != nil {
		return -1
	}
	if ok {
		return 1
	}
	return 0
}
