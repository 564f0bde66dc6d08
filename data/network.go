package data

import "crypto/sha256"

// Network identifies a ledger network by its passphrase. Signature
// payloads start with the passphrase hash, so a transaction signed for
// one network never verifies on another.
type Network struct {
	Passphrase string
}

var (
	PublicNetwork = Network{"Public Global Stellar Network ; September 2015"}
	TestNetwork   = Network{"Test SDF Network ; September 2015"}
)

// ID is the SHA-256 of the passphrase.
func (n Network) ID() Hash {
	return Hash(sha256.Sum256([]byte(n.Passphrase)))
}
