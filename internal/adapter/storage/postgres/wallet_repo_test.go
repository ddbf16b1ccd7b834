package postgres

import (
	"context"
	"testing"
	"time"

	"token-wallet-service/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWallet() *domain.Wallet {
	return &domain.Wallet{
		UID:                 "user-1",
		Address:             "0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
		EncryptedPrivateKey: "00112233445566778899aabbccddeeff:deadbeef",
		CreatedAt:           time.Now().UTC().Truncate(time.Microsecond),
	}
}

func walletColumns() []string {
	return []string{"uid", "address", "encrypted_private_key", "created_at"}
}

func TestWalletRepo_Put(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet()

	mock.ExpectExec("INSERT INTO wallets").
		WithArgs(w.UID, w.Address, w.EncryptedPrivateKey, w.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Put(context.Background(), w)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_Get(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)
	w := newTestWallet()

	mock.ExpectQuery("SELECT uid, address, encrypted_private_key, created_at FROM wallets").
		WithArgs(w.UID).
		WillReturnRows(pgxmock.NewRows(walletColumns()).
			AddRow(w.UID, w.Address, w.EncryptedPrivateKey, w.CreatedAt))

	got, err := repo.Get(context.Background(), w.UID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, w.Address, got.Address)
	assert.Equal(t, w.EncryptedPrivateKey, got.EncryptedPrivateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWalletRepo_GetAbsentReturnsNil(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewWalletRepo(mock)

	mock.ExpectQuery("SELECT uid, address, encrypted_private_key, created_at FROM wallets").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(walletColumns()))

	got, err := repo.Get(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
