package test

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// Source returns a deterministic stream of bytes derived from seed,
// suitable as a randomness source in reproducible tests.
//
// The stream is the SHAKE-256 output for the seed; a hash with extendable
// output is essentially an unlimited reader of pseudo random bytes.
func Source(seed []byte) io.Reader {
	h := sha3.NewShake256()
	_, _ = h.Write(seed)
	return h
}
