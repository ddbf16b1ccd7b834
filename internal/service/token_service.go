package service

import (
	"context"
	"math/big"
	"time"

	"token-wallet-service/internal/core/domain"
	"token-wallet-service/internal/core/ports"
	"token-wallet-service/pkg/apperror"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TokenServiceImpl implements ports.TokenService. It validates input, converts
// the decimal amount to the token's fixed-point representation and delegates
// to the chain gateway under a bounded confirmation wait. No retries: after an
// unknown-outcome broadcast a blind retry risks double-submission, so the
// decision is left to the caller.
type TokenServiceImpl struct {
	gateway        ports.ChainGateway
	auditSvc       ports.AuditService
	confirmTimeout time.Duration
	log            zerolog.Logger
}

// NewTokenService creates a new TokenServiceImpl.
func NewTokenService(gateway ports.ChainGateway, auditSvc ports.AuditService, confirmTimeout time.Duration, log zerolog.Logger) *TokenServiceImpl {
	return &TokenServiceImpl{
		gateway:        gateway,
		auditSvc:       auditSvc,
		confirmTimeout: confirmTimeout,
		log:            log,
	}
}

// Mint issues tokens to an address and blocks until one confirmation.
func (s *TokenServiceImpl) Mint(ctx context.Context, req ports.TokenOpRequest) (*domain.TxResult, error) {
	return s.submit(ctx, req, domain.AuditActionMint, s.gateway.Mint)
}

// Burn destroys tokens held by an address and blocks until one confirmation.
func (s *TokenServiceImpl) Burn(ctx context.Context, req ports.TokenOpRequest) (*domain.TxResult, error) {
	return s.submit(ctx, req, domain.AuditActionBurn, s.gateway.Burn)
}

type submitFunc func(ctx context.Context, address string, amountWei *big.Int) (*domain.TxResult, error)

func (s *TokenServiceImpl) submit(ctx context.Context, req ports.TokenOpRequest, action domain.AuditAction, op submitFunc) (*domain.TxResult, error) {
	if !common.IsHexAddress(req.Address) {
		return nil, apperror.ErrInvalidInput("Invalid address")
	}

	amountWei, err := domain.ParseTokenAmount(req.Amount)
	if err != nil {
		return nil, apperror.ErrInvalidAmount(err.Error())
	}

	opCtx := ctx
	if s.confirmTimeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, s.confirmTimeout)
		defer cancel()
	}

	result, err := op(opCtx, req.Address, amountWei)
	if err != nil {
		evt := s.log.Error().Err(err).
			Str("action", string(action)).
			Str("address", req.Address).
			Str("amount", req.Amount)
		if result != nil && result.TxHash != "" {
			evt = evt.Str("tx_hash", result.TxHash)
		}
		evt.Msg("token operation failed")
		// An unknown-outcome result still carries the broadcast hash; pass
		// it up with the error so the outcome can be resolved out of band.
		return result, err
	}

	s.auditSvc.Log(ctx, &domain.AuditLog{
		ID:        uuid.New(),
		Actor:     req.Actor,
		Action:    action,
		Target:    req.Address,
		Amount:    req.Amount,
		TxHash:    result.TxHash,
		IPAddress: req.ClientIP,
		CreatedAt: time.Now().UTC(),
	})

	s.log.Info().
		Str("action", string(action)).
		Str("address", req.Address).
		Str("amount", req.Amount).
		Str("tx_hash", result.TxHash).
		Msg("token operation confirmed")

	return result, nil
}
