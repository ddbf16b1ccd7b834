package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"token-wallet-service/internal/core/domain"
	"token-wallet-service/internal/core/ports"
	"token-wallet-service/pkg/apperror"

	"github.com/rs/zerolog"
)

const provisionLockTTL = 30 * time.Second

// WalletServiceImpl implements ports.WalletService: custodial wallet
// provisioning and the address+balance read path.
type WalletServiceImpl struct {
	walletRepo ports.WalletRepository
	userRepo   ports.UserRepository
	keygen     ports.KeypairGenerator
	cipher     ports.CipherService
	gateway    ports.ChainGateway
	lock       ports.ProvisionLock
	log        zerolog.Logger
}

// NewWalletService creates a new WalletServiceImpl.
func NewWalletService(
	walletRepo ports.WalletRepository,
	userRepo ports.UserRepository,
	keygen ports.KeypairGenerator,
	cipher ports.CipherService,
	gateway ports.ChainGateway,
	lock ports.ProvisionLock,
	log zerolog.Logger,
) *WalletServiceImpl {
	return &WalletServiceImpl{
		walletRepo: walletRepo,
		userRepo:   userRepo,
		keygen:     keygen,
		cipher:     cipher,
		gateway:    gateway,
		lock:       lock,
		log:        log,
	}
}

// Provision creates a custodial wallet for uid. Idempotent: if a wallet
// record already exists its address is returned and no keypair is generated,
// so a previously funded address is never orphaned. A missing profile link is
// repaired on the way out.
func (s *WalletServiceImpl) Provision(ctx context.Context, uid string) (*domain.Wallet, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, apperror.ErrInvalidInput("Missing user UID")
	}

	existing, err := s.walletRepo.Get(ctx, uid)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup wallet: %w", err))
	}
	if existing != nil {
		if err := s.ensureProfileLink(ctx, uid, existing.Address); err != nil {
			return nil, err
		}
		return existing, nil
	}

	// Bound concurrent provisioning for the same uid. On contention, the
	// winner is creating the record; re-read instead of generating a second
	// keypair.
	acquired, err := s.lock.Acquire(ctx, uid, provisionLockTTL)
	if err != nil {
		s.log.Warn().Err(err).Str("uid", uid).Msg("provision lock unavailable, proceeding on store idempotency")
	} else if !acquired {
		return s.awaitExisting(ctx, uid)
	} else {
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx), uid); err != nil {
				s.log.Warn().Err(err).Str("uid", uid).Msg("failed to release provision lock")
			}
		}()
	}

	address, privateKeyHex, err := s.keygen.Generate()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate keypair: %w", err))
	}

	encryptedKey, err := s.cipher.Encrypt(privateKeyHex)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encrypt private key: %w", err))
	}

	wallet := &domain.Wallet{
		UID:                 uid,
		Address:             address,
		EncryptedPrivateKey: encryptedKey,
		CreatedAt:           time.Now().UTC(),
	}

	if err := s.walletRepo.Put(ctx, wallet); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("persist wallet: %w", err))
	}

	// Put is first-write-wins. Re-read so that if a racing provisioner won
	// the insert, the caller gets the stored record, not an address whose
	// key was never persisted.
	stored, err := s.walletRepo.Get(ctx, uid)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reread wallet: %w", err))
	}
	if stored != nil {
		wallet = stored
		address = stored.Address
	}

	if err := s.userRepo.SetWalletAddress(ctx, uid, address); err != nil {
		// The wallet row is intact; do not roll it back. Surface a distinct
		// error so the caller retries provisioning to repair the link.
		s.log.Error().Err(err).Str("uid", uid).Str("address", address).
			Msg("wallet persisted but profile link failed")
		return nil, apperror.ErrProfileLinkFailed(err)
	}

	s.log.Info().Str("uid", uid).Str("address", address).Msg("wallet provisioned")
	return wallet, nil
}

// GetInfo resolves the stored address, then the on-chain balance. Absence maps
// to WAL_002; a chain read failure maps to CHN_003 so callers can distinguish
// "no wallet" from "wallet exists, chain temporarily unreachable".
func (s *WalletServiceImpl) GetInfo(ctx context.Context, uid string) (*domain.WalletInfo, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return nil, apperror.ErrInvalidInput("Missing or invalid user UID")
	}

	wallet, err := s.walletRepo.Get(ctx, uid)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup wallet: %w", err))
	}
	if wallet == nil {
		return nil, apperror.ErrWalletNotFound()
	}

	balanceWei, err := s.gateway.BalanceOf(ctx, wallet.Address)
	if err != nil {
		return nil, apperror.ErrChainUnavailable(err)
	}

	return &domain.WalletInfo{
		Address: wallet.Address,
		Balance: domain.FormatTokenAmount(balanceWei),
	}, nil
}

// ensureProfileLink repairs a profile link that a previous provisioning
// attempt failed to write.
func (s *WalletServiceImpl) ensureProfileLink(ctx context.Context, uid, address string) error {
	linked, err := s.userRepo.GetWalletAddress(ctx, uid)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("read profile link: %w", err))
	}
	if linked == address {
		return nil
	}

	if err := s.userRepo.SetWalletAddress(ctx, uid, address); err != nil {
		return apperror.ErrProfileLinkFailed(err)
	}
	s.log.Info().Str("uid", uid).Str("address", address).Msg("profile link repaired")
	return nil
}

// awaitExisting polls briefly for the record a concurrent provisioning call
// is writing.
func (s *WalletServiceImpl) awaitExisting(ctx context.Context, uid string) (*domain.Wallet, error) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for {
		wallet, err := s.walletRepo.Get(ctx, uid)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("lookup wallet: %w", err))
		}
		if wallet != nil {
			if err := s.ensureProfileLink(ctx, uid, wallet.Address); err != nil {
				return nil, err
			}
			return wallet, nil
		}
		if time.Now().After(deadline) {
			return nil, apperror.InternalError(fmt.Errorf("concurrent provisioning for %q did not complete", uid))
		}
		select {
		case <-ctx.Done():
			return nil, apperror.InternalError(ctx.Err())
		case <-ticker.C:
		}
	}
}
