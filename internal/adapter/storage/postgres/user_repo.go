package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// UserRepo implements ports.UserRepository against the externally-owned users
// table. Only the wallet_address field belongs to this service; the merge
// never touches other profile columns.
type UserRepo struct {
	pool Pool
}

// NewUserRepo creates a new UserRepo.
func NewUserRepo(pool Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// SetWalletAddress merges the wallet address into the user's profile row,
// creating the row if the profile subsystem has not written it yet.
func (r *UserRepo) SetWalletAddress(ctx context.Context, uid string, address string) error {
	query := `INSERT INTO users (uid, wallet_address)
		VALUES ($1, $2)
		ON CONFLICT (uid) DO UPDATE SET wallet_address = $2`

	_, err := r.pool.Exec(ctx, query, uid, address)
	if err != nil {
		return fmt.Errorf("set wallet address: %w", err)
	}
	return nil
}

// GetWalletAddress reads the linked wallet address. Returns "" when the
// profile row is missing or unlinked.
func (r *UserRepo) GetWalletAddress(ctx context.Context, uid string) (string, error) {
	query := `SELECT COALESCE(wallet_address, '') FROM users WHERE uid = $1`

	var address string
	err := r.pool.QueryRow(ctx, query, uid).Scan(&address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get wallet address: %w", err)
	}
	return address, nil
}
