// Package signature implements the three BLS signature schemes from
// spec section 2 (Basic, Augmented, Proof-of-Possession) in both
// key/signature group placements, built on the curve, serdes and
// gnark-crypto packages.
package signature

import "fmt"

// Scheme selects which of the three signature schemes a Ciphersuite
// implements.
type Scheme int

const (
	Basic Scheme = iota
	Augmented
	ProofOfPossession
)

// Placement selects which group holds public keys versus signatures.
type Placement int

const (
	// PKInG1 places public keys in G1 and signatures in G2.
	PKInG1 Placement = iota
	// PKInG2 places public keys in G2 and signatures in G1.
	PKInG2
)

// Ciphersuite bundles a scheme and placement with the domain
// separation tags that distinguish it from every other combination,
// per spec section 2's ciphersuite table.
type Ciphersuite struct {
	Scheme    Scheme
	Placement Placement
}

// DST returns the hash-to-curve domain separation tag for signatures
// under this ciphersuite, string-tag form (the authoritative form per
// spec's resolved Open Question; the legacy byte-tag form lives in
// LegacyCiphersuite).
func (c Ciphersuite) DST() []byte {
	group := "G2"
	if c.Placement == PKInG2 {
		group = "G1"
	}
	var suffix string
	switch c.Scheme {
	case Basic:
		suffix = "NUL"
	case Augmented:
		suffix = "AUG"
	case ProofOfPossession:
		suffix = "POP"
	default:
		panic(fmt.Sprintf("signature: unknown scheme %d", c.Scheme))
	}
	return []byte(fmt.Sprintf("BLS_SIG_BLS12381%s_XMD:SHA-256_SSWU_RO_%s_", group, suffix))
}

// PopDST returns the domain separation tag used for proof-of-possession
// messages (pop_prove / pop_verify), only meaningful for the PoP
// scheme.
func (c Ciphersuite) PopDST() []byte {
	group := "G2"
	if c.Placement == PKInG2 {
		group = "G1"
	}
	return []byte(fmt.Sprintf("BLS_POP_BLS12381%s_XMD:SHA-256_SSWU_RO_POP_", group))
}

// LegacyCiphersuite identifies a ciphersuite by the single-byte tag
// convention used by the original pre-standardization implementation
// (original_source's api.rs), kept only for interoperating with
// callers that still speak that format; new code should use
// Ciphersuite's string DSTs.
type LegacyCiphersuite byte

const (
	LegacyBasicMinSig LegacyCiphersuite = 0x01
	LegacyBasicMinPk  LegacyCiphersuite = 0x02
	LegacyPopMinSig   LegacyCiphersuite = 0x03
	LegacyPopMinPk    LegacyCiphersuite = 0x04
)

// Ciphersuite converts a legacy byte tag to the modern Ciphersuite
// value it corresponds to. The legacy scheme only distinguished Basic
// from PoP; Augmented has no legacy byte-tag representation.
func (l LegacyCiphersuite) Ciphersuite() (Ciphersuite, error) {
	switch l {
	case LegacyBasicMinSig:
		return Ciphersuite{Scheme: Basic, Placement: PKInG2}, nil
	case LegacyBasicMinPk:
		return Ciphersuite{Scheme: Basic, Placement: PKInG1}, nil
	case LegacyPopMinSig:
		return Ciphersuite{Scheme: ProofOfPossession, Placement: PKInG2}, nil
	case LegacyPopMinPk:
		return Ciphersuite{Scheme: ProofOfPossession, Placement: PKInG1}, nil
	default:
		return Ciphersuite{}, fmt.Errorf("signature: unknown legacy ciphersuite tag 0x%02x", byte(l))
	}
}
