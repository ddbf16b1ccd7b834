package ports

import (
	"context"
	"math/big"
	"time"

	"token-wallet-service/internal/core/domain"
)

// CipherService encrypts private key material at rest.
type CipherService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(envelope string) (string, error)
}

// KeypairGenerator produces a fresh secp256k1 keypair from a cryptographically
// secure random source. Returns the derived 0x-prefixed address and the
// 0x-prefixed private key hex.
type KeypairGenerator interface {
	Generate() (address string, privateKeyHex string, err error)
}

// ChainGateway is the thin adapter around one JSON-RPC endpoint and one
// deployed token contract. Mint and Burn block until one confirmation is
// observed or the ctx deadline elapses; they never retry internally, since a
// blind retry after an unknown-outcome broadcast risks double-submission.
type ChainGateway interface {
	Mint(ctx context.Context, to string, amountWei *big.Int) (*domain.TxResult, error)
	Burn(ctx context.Context, from string, amountWei *big.Int) (*domain.TxResult, error)
	// BalanceOf performs a read-only call: no signing, no confirmation wait.
	BalanceOf(ctx context.Context, address string) (*big.Int, error)
}

// ProvisionLock bounds concurrent provisioning for the same uid.
// Acquire returns true if the lock was taken, false if another provisioning
// attempt holds it.
type ProvisionLock interface {
	Acquire(ctx context.Context, uid string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, uid string) error
}

// HashService handles password hashing (Argon2id) for the admin credential.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenAuthService handles JWT token operations for the admin capability.
type TokenAuthService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}

// --- Service Ports (Business Logic) ---

// WalletService covers provisioning and the wallet-info read path.
type WalletService interface {
	// Provision creates a custodial wallet for uid, or returns the existing
	// address if one was provisioned before. At most one keypair is ever
	// generated per uid.
	Provision(ctx context.Context, uid string) (*domain.Wallet, error)
	// GetInfo resolves the stored address and the on-chain balance.
	GetInfo(ctx context.Context, uid string) (*domain.WalletInfo, error)
}

// TokenService exposes the admin-gated mint/burn command path.
type TokenService interface {
	Mint(ctx context.Context, req TokenOpRequest) (*domain.TxResult, error)
	Burn(ctx context.Context, req TokenOpRequest) (*domain.TxResult, error)
}

// TokenOpRequest holds validated input for a mint or burn operation.
type TokenOpRequest struct {
	// Address is the target: recipient for mint, holder for burn.
	Address string
	// Amount is a human-readable decimal token amount, e.g. "100" or "12.5".
	Amount string
	// Actor is the authenticated admin subject, recorded in the audit log.
	Actor string
	// ClientIP is recorded in the audit log.
	ClientIP string
}

// AuthService authenticates the admin capability.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// AuditService records audited actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}
