package service

import (
	"context"
	"crypto/subtle"
	"time"

	"token-wallet-service/internal/core/ports"
	"token-wallet-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// AdminAuthService implements ports.AuthService against the single configured
// admin credential. There is no registration path: the credential is
// provisioned out of band and its Argon2id hash lives in configuration.
type AdminAuthService struct {
	username     string
	passwordHash string
	hashSvc      ports.HashService
	tokenSvc     ports.TokenAuthService
	log          zerolog.Logger
}

// NewAdminAuthService creates a new AdminAuthService.
func NewAdminAuthService(username, passwordHash string, hashSvc ports.HashService, tokenSvc ports.TokenAuthService, log zerolog.Logger) *AdminAuthService {
	return &AdminAuthService{
		username:     username,
		passwordHash: passwordHash,
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
		log:          log,
	}
}

// Login verifies the admin credential and issues a JWT.
func (s *AdminAuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if s.username == "" || s.passwordHash == "" {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	passwordOK, err := s.hashSvc.Verify(password, s.passwordHash)
	if err != nil {
		s.log.Warn().Err(err).Msg("admin password hash verification failed")
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	if !usernameOK || !passwordOK {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(err)
	}

	s.log.Info().Str("subject", username).Msg("admin login")
	return token, expiry, nil
}
