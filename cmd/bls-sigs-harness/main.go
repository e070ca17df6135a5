// Command bls-sigs-harness runs the signature package's Basic scheme,
// with public keys in G1, against whitespace-hex test vectors, per spec
// section 6; the Augmented and PoP schemes are not exercised. Each
// vector's seed is turned into a keypair, the message
// is signed and verified, and any expected signature is compared
// byte-for-byte.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/kysee/bls-sigs-go/serdes"
	"github.com/kysee/bls-sigs-go/signature"
	"github.com/kysee/bls-sigs-go/vectors"
)

func main() {
	var (
		kind    = flag.String("kind", "sign", "test vector kind (subdirectory under the vectors root)")
		path    = flag.String("path", "", "explicit vector file or directory, overrides discovery")
		verbose = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	dir := *path
	if dir == "" {
		d, err := vectors.Discover(*kind)
		if err != nil {
			log.Fatal().Err(err).Msg("discover test vectors")
		}
		dir = d
	}

	vecs, err := vectors.LoadDir(dir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("load test vectors")
	}
	log.Info().Int("count", len(vecs)).Str("dir", dir).Msg("loaded vectors")

	failures := 0
	for _, v := range vecs {
		if err := runVector(v); err != nil {
			log.Error().Err(err).Str("file", v.File).Int("line", v.Line).Msg("vector failed")
			failures++
		}
	}

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d vectors failed\n", failures, len(vecs))
		os.Exit(1)
	}
	log.Info().Int("count", len(vecs)).Msg("all vectors passed")
}

func runVector(v vectors.Vector) error {
	kp, err := signature.KeygenMinPk(v.SK)
	if err != nil {
		return fmt.Errorf("keygen: %w", err)
	}

	cs := signature.Ciphersuite{Scheme: signature.Basic, Placement: signature.PKInG1}
	sig, err := signature.SignMinPk(cs, kp, v.Msg)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}

	ok, err := signature.VerifyMinPk(cs, kp.PK, v.Msg, sig)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if !ok {
		return fmt.Errorf("signature did not verify")
	}

	if len(v.Expected) > 0 {
		got := serdes.EncodeG2Compressed(sig)
		if !bytesEqual(got[:], v.Expected) {
			return fmt.Errorf("signature mismatch: got %x want %x", got, v.Expected)
		}
	}
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
