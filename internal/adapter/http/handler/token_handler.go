package handler

import (
	"context"

	"token-wallet-service/internal/adapter/http/dto"
	"token-wallet-service/internal/adapter/http/middleware"
	"token-wallet-service/internal/core/domain"
	"token-wallet-service/internal/core/ports"
	"token-wallet-service/pkg/apperror"
	"token-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// TokenHandler handles the admin-gated mint and burn endpoints.
type TokenHandler struct {
	tokenSvc ports.TokenService
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokenSvc ports.TokenService) *TokenHandler {
	return &TokenHandler{tokenSvc: tokenSvc}
}

// Mint handles POST /mint.
func (h *TokenHandler) Mint(c *gin.Context) {
	var req dto.MintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	h.submit(c, req.To, req.Amount, h.tokenSvc.Mint)
}

// Burn handles POST /burn.
func (h *TokenHandler) Burn(c *gin.Context) {
	var req dto.BurnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	h.submit(c, req.From, req.Amount, h.tokenSvc.Burn)
}

func (h *TokenHandler) submit(c *gin.Context, address, amount string, op func(context.Context, ports.TokenOpRequest) (*domain.TxResult, error)) {
	actor := ""
	if sub, ok := c.Get(middleware.CtxAdminSubject); ok {
		actor, _ = sub.(string)
	}

	result, err := op(c.Request.Context(), ports.TokenOpRequest{
		Address:  address,
		Amount:   amount,
		Actor:    actor,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TokenOpResponse{
		Status: string(result.Status),
		TxHash: result.TxHash,
	})
}
