// Package lightclient adapts the teacher's sync-committee aggregate
// verification path (originally types/lightclient.go and
// circuits/eth2_sc_update.go) onto this repository's signature
// package, so sync-committee BLS aggregates are verified using the
// same Basic/Augmented/PoP machinery as everything else here instead
// of ad hoc pairing calls.
package lightclient

import (
	"crypto/sha256"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	zrntcommon "github.com/protolambda/zrnt/eth2/beacon/common"

	"github.com/kysee/bls-sigs-go/serdes"
	"github.com/kysee/bls-sigs-go/signature"
)

// AggregatePublicKeys sums the public keys of every participating
// sync-committee member (bits[i] true) into a single G1 point, the
// min-pk placement's public-key group. Grounded on
// types/lightclient.go's AggregatePublicKeys, adapted to decode
// through serdes (so non-canonical or off-curve keys are rejected up
// front) and summed with a running Jacobian point addition (addG1).
func AggregatePublicKeys(pubkeys []zrntcommon.BLSPubkey, bits []bool) (bls12381.G1Affine, int, error) {
	var participating []bls12381.G1Affine
	for i, participate := range bits {
		if !participate || i >= len(pubkeys) {
			continue
		}
		pk, err := serdes.DecodeG1(pubkeys[i][:], serdes.Options{})
		if err != nil {
			return bls12381.G1Affine{}, 0, fmt.Errorf("lightclient: deserialize pubkey %d: %w", i, err)
		}
		participating = append(participating, pk)
	}

	if len(participating) == 0 {
		return bls12381.G1Affine{}, 0, fmt.Errorf("lightclient: no public keys to aggregate")
	}

	var sum bls12381.G1Affine
	for i, pk := range participating {
		if i == 0 {
			sum = pk
			continue
		}
		sum = addG1(sum, pk)
	}
	return sum, len(participating), nil
}

func addG1(a, b bls12381.G1Affine) bls12381.G1Affine {
	var aj, bj bls12381.G1Jac
	aj.FromAffine(&a)
	bj.FromAffine(&b)
	aj.AddAssign(&bj)
	var out bls12381.G1Affine
	out.FromJacobian(&aj)
	return out
}

// VerifySyncCommitteeSignature checks the sync committee's aggregate
// signature over signingRoot using the PoP scheme's min-pk placement,
// the ciphersuite this repository uses for multi-party signer sets
// (see signature.MultisigVerifyMinPk). The message is hashed with
// curve.HashToG2, whose hash_to_field step is HKDF-based, not
// expand_message_xmd, so signatures made with the standard
// BLS12381G2_XMD:SHA-256_SSWU_RO_ hash-to-curve do not verify here.
func VerifySyncCommitteeSignature(pubkeys []zrntcommon.BLSPubkey, bits []bool, signingRoot [32]byte, aggSigBytes []byte) (bool, error) {
	aggPK, count, err := AggregatePublicKeys(pubkeys, bits)
	if err != nil {
		return false, err
	}
	if count == 0 {
		return false, fmt.Errorf("lightclient: zero participating signers")
	}

	aggSig, err := serdes.DecodeG2(aggSigBytes, serdes.WithSubgroupChecks(true))
	if err != nil {
		return false, fmt.Errorf("lightclient: decode aggregate signature: %w", err)
	}

	cs := signature.Ciphersuite{Scheme: signature.ProofOfPossession, Placement: signature.PKInG1}
	return signature.VerifyMinPk(cs, aggPK, signingRoot[:], aggSig)
}

// ComputeScPubKeysHash computes a SHA256 commitment over the low 16
// bytes of each sync-committee public key's X coordinate, matching the
// commitment that verifyScPubKeysHash in circuits/eth2_sc_update.go
// checks against.
func ComputeScPubKeysHash(pubkeys []bls12381.G1Affine) [32]byte {
	hasher := sha256.New()
	for i := range pubkeys {
		xBytes := pubkeys[i].X.Bytes()
		hasher.Write(xBytes[32:])
	}
	var commitment [32]byte
	copy(commitment[:], hasher.Sum(nil))
	return commitment
}
