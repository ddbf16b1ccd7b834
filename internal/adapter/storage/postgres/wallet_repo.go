package postgres

import (
	"context"
	"errors"
	"fmt"

	"token-wallet-service/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// WalletRepo implements ports.WalletRepository. One row per user id in the
// wallets table; the store imposes no uniqueness beyond the primary key, and
// uniqueness of provisioning is the wallet service's responsibility.
type WalletRepo struct {
	pool Pool
}

// NewWalletRepo creates a new WalletRepo.
func NewWalletRepo(pool Pool) *WalletRepo {
	return &WalletRepo{pool: pool}
}

// Put writes a wallet record. First write wins on a repeated uid: a key that
// is already stored is never overwritten, so an address that may already hold
// funds cannot be orphaned by a racing insert.
func (r *WalletRepo) Put(ctx context.Context, w *domain.Wallet) error {
	query := `INSERT INTO wallets (uid, address, encrypted_private_key, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (uid) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, w.UID, w.Address, w.EncryptedPrivateKey, w.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert wallet: %w", err)
	}
	return nil
}

// Get fetches a wallet record by user id. Returns (nil, nil) when absent.
func (r *WalletRepo) Get(ctx context.Context, uid string) (*domain.Wallet, error) {
	query := `SELECT uid, address, encrypted_private_key, created_at FROM wallets WHERE uid = $1`

	w := &domain.Wallet{}
	err := r.pool.QueryRow(ctx, query, uid).Scan(
		&w.UID, &w.Address, &w.EncryptedPrivateKey, &w.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get wallet by uid: %w", err)
	}
	return w, nil
}
