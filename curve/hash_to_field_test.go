package curve

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestXprimeFromSKKnownAnswer reproduces the scenario from
// original_source's signature.rs: xprime_from_sk of a fixed message
// produces a specific Fr value, expressed there as four 64-bit limbs
// (big-endian: limb[0] is most significant).
func TestXprimeFromSKKnownAnswer(t *testing.T) {
	sk := []byte("hello world (it's a secret!)")
	got := XprimeFromSK(sk)

	limbs := []uint64{
		0x077cf27e14db0de2,
		0xa98ec5b569484e7d,
		0xc26ed5c294f7cbb5,
		0x73f15a42979430a4,
	}
	want := new(big.Int)
	for _, l := range limbs {
		want.Lsh(want, 64)
		want.Or(want, new(big.Int).SetUint64(l))
	}

	var gotBig big.Int
	got.BigInt(&gotBig)
	require.Equal(t, want.String(), gotBig.String())
}

func TestHashToFieldFqDeterministic(t *testing.T) {
	dst := []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")
	a := HashToFieldFq([]byte("abc"), dst, 2)
	b := HashToFieldFq([]byte("abc"), dst, 2)
	require.Equal(t, a, b)

	c := HashToFieldFq([]byte("abcd"), dst, 2)
	require.NotEqual(t, a, c)
}
