// Package vectors loads whitespace-delimited hex test vectors for the
// signature package, grounded on original_source's
// bls_sigs_test/src/testvec.rs.
package vectors

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Vector is one parsed line: msg, seed/sk, and an optional expected
// output, each originally ASCII-hex encoded.
type Vector struct {
	Msg      []byte
	SK       []byte
	Expected []byte
	Line     int
	File     string
}

// envVar is the discovery override, the Go-idiomatic analogue of
// testvec.rs's CARGO_MANIFEST_DIR-relative lookup.
const envVar = "BLS_TESTVEC_DIR"

// Discover locates the test-vector directory for the given vector
// type (e.g. "sign", "aggregate"), preferring BLS_TESTVEC_DIR when
// set and falling back to ../../test-vectors/<kind> relative to the
// caller's working directory.
func Discover(kind string) (string, error) {
	if dir := os.Getenv(envVar); dir != "" {
		return filepath.Join(dir, kind), nil
	}
	fallback := filepath.Join("..", "..", "test-vectors", kind)
	if _, err := os.Stat(fallback); err != nil {
		return "", fmt.Errorf("vectors: no test-vector directory for %q (set %s): %w", kind, envVar, err)
	}
	return fallback, nil
}

// LoadFile parses one test-vector file: each non-blank, non-comment
// line is "msg sk [expect]" as whitespace-separated hex strings.
func LoadFile(path string) ([]Vector, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Vector
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("vectors: %s:%d: expected at least 2 fields, got %d", path, lineNo, len(fields))
		}
		v := Vector{Line: lineNo, File: path}
		v.Msg, err = hex.DecodeString(fields[0])
		if err != nil {
			return nil, fmt.Errorf("vectors: %s:%d: bad msg hex: %w", path, lineNo, err)
		}
		v.SK, err = hex.DecodeString(fields[1])
		if err != nil {
			return nil, fmt.Errorf("vectors: %s:%d: bad sk hex: %w", path, lineNo, err)
		}
		if len(fields) >= 3 {
			v.Expected, err = hex.DecodeString(fields[2])
			if err != nil {
				return nil, fmt.Errorf("vectors: %s:%d: bad expect hex: %w", path, lineNo, err)
			}
		}
		out = append(out, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadDir parses every *.txt file directly inside dir, concatenating
// their vectors in filename order.
func LoadDir(dir string) ([]Vector, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var all []Vector
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		vs, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		all = append(all, vs...)
	}
	return all, nil
}
