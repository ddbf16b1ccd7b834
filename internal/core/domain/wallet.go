package domain

import "time"

// Wallet is a custodial wallet record keyed by an opaque user id. The private
// key is stored encrypted (AES-256-CBC envelope, see cipher service) and the
// address is immutable once the record exists.
type Wallet struct {
	UID                 string    `json:"uid"`
	Address             string    `json:"address"`
	EncryptedPrivateKey string    `json:"-"` // never expose key material
	CreatedAt           time.Time `json:"created_at"`
}

// WalletInfo is the read-path view: stored address plus the balance derived
// from the chain. Balance is a human-readable decimal string.
type WalletInfo struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}
