package hash

import "io"

// WriterToWithDomain is implemented by types that can feed themselves into a
// hash and name the domain they belong to. The domain string keeps the
// digests of different types apart even when their raw bytes coincide: a
// public key and a ciphertext hashing the same group elements must not
// collide.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a tag unique to the implementing type.
	Domain() string
}

// writeWithDomain frames object as (<domain><data>) in the hash state, so
// that adjacent writes cannot be reinterpreted across a boundary.
func writeWithDomain(w io.Writer, object WriterToWithDomain) error {
	if _, err := io.WriteString(w, "("); err != nil {
		return err
	}
	if _, err := io.WriteString(w, object.Domain()); err != nil {
		return err
	}
	if _, err := object.WriteTo(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, ")")
	return err
}

// bytesWithDomain tags a raw byte chunk with a domain, for the WriteAny
// cases that are not self-describing.
type bytesWithDomain struct {
	domain string
	bytes  []byte
}

func (b bytesWithDomain) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.bytes)
	return int64(n), err
}

func (b bytesWithDomain) Domain() string {
	return b.domain
}
