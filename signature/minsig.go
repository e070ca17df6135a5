package signature

import (
	"errors"
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/kysee/bls-sigs-go/curve"
	"github.com/kysee/bls-sigs-go/serdes"
)

// KeyPairMinSig is a keypair under the PK-in-G2 / signature-in-G1
// placement ("min-sig": signatures are the small element).
type KeyPairMinSig struct {
	SK fr.Element
	PK bls12381.G2Affine
}

// KeygenMinSig is the min-sig analogue of KeygenMinPk.
func KeygenMinSig(seed []byte) (KeyPairMinSig, error) {
	sk, err := deriveSecretKey(seed)
	if err != nil {
		return KeyPairMinSig{}, err
	}
	_, _, _, g2 := bls12381.Generators()
	pk := scalarMulG2(g2, sk)
	return KeyPairMinSig{SK: sk, PK: pk}, nil
}

// SignMinSig signs msg, returning a point in G1.
func SignMinSig(cs Ciphersuite, kp KeyPairMinSig, msg []byte) (bls12381.G1Affine, error) {
	hashInput := msg
	if cs.Scheme == Augmented {
		pkBytes := serdes.EncodeG2Compressed(kp.PK)
		hashInput = augmentedMessage(pkBytes[:], msg)
	}
	hp := curve.HashToG1(hashInput, cs.DST())
	return scalarMulG1(hp, kp.SK), nil
}

// VerifyMinSig checks a single min-sig signature.
func VerifyMinSig(cs Ciphersuite, pk bls12381.G2Affine, msg []byte, sig bls12381.G1Affine) (bool, error) {
	hashInput := msg
	if cs.Scheme == Augmented {
		pkBytes := serdes.EncodeG2Compressed(pk)
		hashInput = augmentedMessage(pkBytes[:], msg)
	}
	hp := curve.HashToG1(hashInput, cs.DST())
	return pairingCheckMinSig(hp, pk, sig)
}

// pairingCheckMinSig tests e(H(msg), pk) == e(sig, g2).
func pairingCheckMinSig(hp bls12381.G1Affine, pk bls12381.G2Affine, sig bls12381.G1Affine) (bool, error) {
	_, _, _, g2 := bls12381.Generators()
	var negSig bls12381.G1Affine
	negSig.Neg(&sig)

	return bls12381.PairingCheck(
		[]bls12381.G1Affine{hp, negSig},
		[]bls12381.G2Affine{pk, g2},
	)
}

// AggregateMinSig sums G1 signatures, the min-sig analogue of
// AggregateMinPk.
func AggregateMinSig(sigs []bls12381.G1Affine) (bls12381.G1Affine, error) {
	if len(sigs) == 0 {
		return bls12381.G1Affine{}, errors.New("signature: cannot aggregate zero signatures")
	}
	out := sigs[0]
	for _, s := range sigs[1:] {
		out = addG1(out, s)
	}
	return out, nil
}

// AggregateVerifyMinSig is the min-sig analogue of
// AggregateVerifyMinPk.
func AggregateVerifyMinSig(cs Ciphersuite, pks []bls12381.G2Affine, msgs [][]byte, aggSig bls12381.G1Affine) (bool, error) {
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
			pkBytes := serdes.EncodeG2Compressed(pk)
			hashInput = augmentedMessage(pkBytes[:], msgs[i])
		}
		hp := curve.HashToG1(hashInput, cs.DST())
		g1s = append(g1s, hp)
		g2s = append(g2s, pk)
	}

	_, _, _, g2 := bls12381.Generators()
	var negAggSig bls12381.G1Affine
	negAggSig.Neg(&aggSig)
	g1s = append(g1s, negAggSig)
	g2s = append(g2s, g2)

	return bls12381.PairingCheck(g1s, g2s)
}

// PopProveMinSig is the min-sig analogue of PopProveMinPk.
func PopProveMinSig(kp KeyPairMinSig) bls12381.G1Affine {
	cs := Ciphersuite{Scheme: ProofOfPossession, Placement: PKInG2}
	pkBytes := serdes.EncodeG2Compressed(kp.PK)
	hp := curve.HashToG1(pkBytes[:], cs.PopDST())
	return scalarMulG1(hp, kp.SK)
}

// PopVerifyMinSig is the min-sig analogue of PopVerifyMinPk.
func PopVerifyMinSig(pk bls12381.G2Affine, proof bls12381.G1Affine) (bool, error) {
	cs := Ciphersuite{Scheme: ProofOfPossession, Placement: PKInG2}
	pkBytes := serdes.EncodeG2Compressed(pk)
	hp := curve.HashToG1(pkBytes[:], cs.PopDST())
	return pairingCheckMinSig(hp, pk, proof)
}

// MultisigVerifyMinSig is the min-sig analogue of
// MultisigVerifyMinPk.
func MultisigVerifyMinSig(pks []bls12381.G2Affine, msg []byte, aggSig bls12381.G1Affine) (bool, error) {
	if len(pks) == 0 {
		return false, errors.New("signature: cannot verify an empty multisig")
	}
	aggPK := pks[0]
	for _, pk := range pks[1:] {
		aggPK = addG2(aggPK, pk)
	}
	cs := Ciphersuite{Scheme: ProofOfPossession, Placement: PKInG2}
	return VerifyMinSig(cs, aggPK, msg, aggSig)
}
