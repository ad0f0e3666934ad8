package params

const (
	// BitsSafePrime is the default bit length of the group modulus p produced
	// by key generation. p = 2q+1 with q prime, so q has BitsSafePrime-1 bits.
	BitsSafePrime = 2048

	// BytesGroupElem is the fixed serialized width of a group element mod p.
	BytesGroupElem = BitsSafePrime / 8

	// PrimalityIterations is the number of Miller-Rabin rounds used when
	// testing prime candidates.
	//
	// More iterations mean fewer false positives, but more expensive calculations.
	//
	// 20 is the same number that Go uses internally.
	PrimalityIterations = 20
)
