package ports

import (
	"context"

	"token-wallet-service/internal/core/domain"
)

// WalletRepository defines persistence for custodial wallet records.
// Get returns (nil, nil) when no record exists so the query service can map
// absence to a 404 without special-casing errors.
type WalletRepository interface {
	Put(ctx context.Context, w *domain.Wallet) error
	Get(ctx context.Context, uid string) (*domain.Wallet, error)
}

// UserRepository manages the externally-owned profile's wallet-address link.
// SetWalletAddress merges the field into the user document; it is set once at
// provisioning time and never changed afterwards.
type UserRepository interface {
	SetWalletAddress(ctx context.Context, uid string, address string) error
	GetWalletAddress(ctx context.Context, uid string) (string, error)
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}
