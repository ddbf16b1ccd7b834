package service

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ECDSAKeypairGenerator implements ports.KeypairGenerator using secp256k1.
type ECDSAKeypairGenerator struct{}

// NewECDSAKeypairGenerator creates a new keypair generator.
func NewECDSAKeypairGenerator() *ECDSAKeypairGenerator {
	return &ECDSAKeypairGenerator{}
}

// Generate produces a fresh keypair from crypto/rand and derives the
// Ethereum address from the public key.
func (g *ECDSAKeypairGenerator) Generate() (string, string, error) {
	key, err := crypto.GenerateKey()
	if err != nil {
		return "", "", fmt.Errorf("generating keypair: %w", err)
	}

	address := crypto.PubkeyToAddress(key.PublicKey).Hex()
	privateKeyHex := hexutil.Encode(crypto.FromECDSA(key))

	return address, privateKeyHex, nil
}
