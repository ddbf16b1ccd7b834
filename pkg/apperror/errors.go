package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet & Provisioning (WAL) ----

// ErrInvalidInput rejects bad or missing request fields before any side effect.
func ErrInvalidInput(message string) *AppError {
	return New("WAL_001", message, http.StatusBadRequest)
}

// ErrWalletNotFound signals that no wallet exists for the given user id.
func ErrWalletNotFound() *AppError {
	return New("WAL_002", "Wallet not found", http.StatusNotFound)
}

// ErrProfileLinkFailed signals that the wallet record was written but the
// profile link could not be set. The wallet is intact; re-running provisioning
// for the same uid repairs the link without generating a new keypair.
func ErrProfileLinkFailed(err error) *AppError {
	return Wrap("WAL_003", "Wallet created but profile link failed; retry provisioning to repair", http.StatusInternalServerError, err)
}

// ---- Chain (CHN) ----

// ErrInvalidAmount rejects amounts that are not valid non-negative decimals.
func ErrInvalidAmount(message string) *AppError {
	return New("CHN_001", message, http.StatusBadRequest)
}

// ErrChain covers RPC, submission and revert failures. The transaction did not
// confirm; whether it was broadcast depends on the wrapped reason.
func ErrChain(reason string, err error) *AppError {
	return Wrap("CHN_002", fmt.Sprintf("Chain operation failed: %s", reason), http.StatusBadGateway, err)
}

// ErrChainUnavailable covers read-path failures. Distinct from WAL_002 so
// callers can tell "no wallet" from "wallet exists, chain unreachable".
func ErrChainUnavailable(err error) *AppError {
	return Wrap("CHN_003", "Chain node unavailable", http.StatusServiceUnavailable, err)
}

// ErrChainTimeout signals the bounded confirmation wait elapsed. The outcome
// is unknown: the transaction may still land. Callers must not blindly retry.
func ErrChainTimeout(err error) *AppError {
	return Wrap("CHN_004", "Confirmation wait timed out; transaction outcome unknown", http.StatusGatewayTimeout, err)
}

// ---- Admin Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// ErrDecryption covers corrupted ciphertext or a mismatched key.
func ErrDecryption(err error) *AppError {
	return Wrap("SYS_002", "Key material decryption failed", http.StatusInternalServerError, err)
}

// Validation returns a WAL_001-style validation error.
func Validation(message string) *AppError {
	return New("WAL_001", message, http.StatusBadRequest)
}
