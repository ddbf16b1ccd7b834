package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddr = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"

func TestUserRepo_SetWalletAddress(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("user-1", testAddr).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.SetWalletAddress(context.Background(), "user-1", testAddr)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetWalletAddress(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"wallet_address"}).AddRow(testAddr))

	addr, err := repo.GetWalletAddress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, testAddr, addr)
}

func TestUserRepo_GetWalletAddressMissingRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"wallet_address"}))

	addr, err := repo.GetWalletAddress(context.Background(), "ghost")
	assert.NoError(t, err)
	assert.Empty(t, addr)
}
