package main

import (
	"crypto/rand"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/taurusgroup/elgamal/internal/params"
	"github.com/taurusgroup/elgamal/pkg/elgamal"
	"github.com/taurusgroup/elgamal/pkg/pool"
)

const message = "The quick brown fox jumps over the lazy dog"

// toy demonstrates the engine math on tiny, insecure parameters:
// p = 23 is a safe prime and g = 5 passes the generator checks.
func toy() error {
	p := new(saferith.Nat).SetUint64(23)
	g := new(saferith.Nat).SetUint64(5)
	domain, err := elgamal.NewParameters(p, g)
	if err != nil {
		return err
	}
	pk, sk, err := elgamal.NewKeyPair(rand.Reader, domain)
	if err != nil {
		return err
	}

	m1 := elgamal.EncodeUint64(7)
	m2 := elgamal.EncodeUint64(3)
	ct1, _ := pk.Enc(m1, nil)
	ct2, _ := pk.Enc(m2, nil)

	product, err := sk.Dec(ct1.Mul(pk, ct2))
	if err != nil {
		return err
	}
	fmt.Printf("toy group p=23 g=5: Dec(Enc(7) ⊙ Enc(3)) = %s (expect 21)\n", product.Big())
	return nil
}

func main() {
	if err := toy(); err != nil {
		fmt.Println("toy demo failed:", err)
		return
	}

	pl := pool.NewPool(0)
	defer pl.TearDown()

	fmt.Printf("generating a %d-bit key pair (this takes a while)...\n", params.BitsSafePrime)
	pk, sk, err := elgamal.KeyGen(rand.Reader, pl, params.BitsSafePrime)
	if err != nil {
		fmt.Println("key generation failed:", err)
		return
	}
	fmt.Printf("public key fingerprint: %x\n", pk.Fingerprint())

	ct, _, err := pk.EncBytes([]byte(message))
	if err != nil {
		fmt.Println("encryption failed:", err)
		return
	}
	decrypted, err := sk.DecBytes(ct)
	if err != nil {
		fmt.Println("decryption failed:", err)
		return
	}
	fmt.Printf("decrypted: %q\n", decrypted)
	if string(decrypted) == message {
		fmt.Println("round trip ok")
	} else {
		fmt.Println("round trip FAILED")
	}
}
