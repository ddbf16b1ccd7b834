package service

import (
	"context"
	"math/big"
	"testing"
	"time"

	"token-wallet-service/internal/core/domain"
	"token-wallet-service/internal/core/ports"
	"token-wallet-service/internal/core/ports/mocks"
	"token-wallet-service/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const tokenTestAddr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

type tokenTestDeps struct {
	svc     *TokenServiceImpl
	gateway *mocks.MockChainGateway
	audit   *mocks.MockAuditService
	ctrl    *gomock.Controller
}

func setupTokenService(t *testing.T) *tokenTestDeps {
	ctrl := gomock.NewController(t)
	d := &tokenTestDeps{
		gateway: mocks.NewMockChainGateway(ctrl),
		audit:   mocks.NewMockAuditService(ctrl),
		ctrl:    ctrl,
	}
	d.svc = NewTokenService(d.gateway, d.audit, time.Minute, zerolog.Nop())
	return d
}

func TestTokenService_MintConvertsAmount(t *testing.T) {
	d := setupTokenService(t)
	defer d.ctrl.Finish()

	want, _ := new(big.Int).SetString("12500000000000000000", 10)
	d.gateway.EXPECT().Mint(gomock.Any(), tokenTestAddr, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, amountWei *big.Int) (*domain.TxResult, error) {
			assert.Equal(t, 0, amountWei.Cmp(want), "12.5 tokens at 18 decimals")
			return &domain.TxResult{Status: domain.TxStatusSuccess, TxHash: "0xabc"}, nil
		})
	d.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	result, err := d.svc.Mint(context.Background(), ports.TokenOpRequest{
		Address: tokenTestAddr,
		Amount:  "12.5",
		Actor:   "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TxStatusSuccess, result.Status)
}

func TestTokenService_InvalidAddress(t *testing.T) {
	d := setupTokenService(t)
	defer d.ctrl.Finish()
	// No gateway expectation: nothing reaches the chain on invalid input.

	_, err := d.svc.Mint(context.Background(), ports.TokenOpRequest{Address: "nope", Amount: "1"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "WAL_001", appErr.Code)
}

func TestTokenService_InvalidAmount(t *testing.T) {
	d := setupTokenService(t)
	defer d.ctrl.Finish()

	for _, amount := range []string{"", "abc", "-5", "1.2.3"} {
		_, err := d.svc.Burn(context.Background(), ports.TokenOpRequest{Address: tokenTestAddr, Amount: amount})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr, "amount %q", amount)
		assert.Equal(t, "CHN_001", appErr.Code, "amount %q", amount)
	}
}

func TestTokenService_AppliesConfirmTimeout(t *testing.T) {
	d := setupTokenService(t)
	defer d.ctrl.Finish()

	d.gateway.EXPECT().Mint(gomock.Any(), tokenTestAddr, gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ *big.Int) (*domain.TxResult, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok, "gateway call must carry the confirmation deadline")
			assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
			return &domain.TxResult{Status: domain.TxStatusSuccess, TxHash: "0xabc"}, nil
		})
	d.audit.EXPECT().Log(gomock.Any(), gomock.Any())

	_, err := d.svc.Mint(context.Background(), ports.TokenOpRequest{Address: tokenTestAddr, Amount: "1"})
	require.NoError(t, err)
}

func TestTokenService_TimeoutSurfacesInFlightHash(t *testing.T) {
	d := setupTokenService(t)
	defer d.ctrl.Finish()
	// No audit expectation: failed submissions are not audited as confirmed
	// operations.

	d.gateway.EXPECT().Burn(gomock.Any(), tokenTestAddr, gomock.Any()).Return(
		&domain.TxResult{Status: domain.TxStatusUnknown, TxHash: "0xpending"},
		apperror.ErrChainTimeout(context.DeadlineExceeded),
	)

	result, err := d.svc.Burn(context.Background(), ports.TokenOpRequest{Address: tokenTestAddr, Amount: "1"})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CHN_004", appErr.Code)

	// The broadcast hash travels with the error so an operator can resolve
	// the unknown outcome.
	require.NotNil(t, result)
	assert.Equal(t, domain.TxStatusUnknown, result.Status)
	assert.Equal(t, "0xpending", result.TxHash)
}

func TestTokenService_AuditsConfirmedOperation(t *testing.T) {
	d := setupTokenService(t)
	defer d.ctrl.Finish()

	d.gateway.EXPECT().Mint(gomock.Any(), tokenTestAddr, gomock.Any()).Return(
		&domain.TxResult{Status: domain.TxStatusSuccess, TxHash: "0xfeed"}, nil)

	var logged *domain.AuditLog
	d.audit.EXPECT().Log(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, entry *domain.AuditLog) {
			logged = entry
		})

	_, err := d.svc.Mint(context.Background(), ports.TokenOpRequest{
		Address:  tokenTestAddr,
		Amount:   "100",
		Actor:    "admin",
		ClientIP: "10.0.0.1",
	})
	require.NoError(t, err)

	require.NotNil(t, logged)
	assert.Equal(t, domain.AuditActionMint, logged.Action)
	assert.Equal(t, "admin", logged.Actor)
	assert.Equal(t, tokenTestAddr, logged.Target)
	assert.Equal(t, "0xfeed", logged.TxHash)
	assert.Equal(t, "10.0.0.1", logged.IPAddress)
}
