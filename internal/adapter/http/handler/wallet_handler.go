package handler

import (
	"token-wallet-service/internal/adapter/http/dto"
	"token-wallet-service/internal/core/ports"
	"token-wallet-service/pkg/apperror"
	"token-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet provisioning and lookup endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// Provision handles POST /provision-wallet.
func (h *WalletHandler) Provision(c *gin.Context) {
	var req dto.ProvisionWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.walletSvc.Provision(c.Request.Context(), req.UID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ProvisionWalletResponse{Address: wallet.Address})
}

// WalletInfo handles GET /wallet-info?uid=.
func (h *WalletHandler) WalletInfo(c *gin.Context) {
	uid := c.Query("uid")
	if uid == "" {
		response.Error(c, apperror.ErrInvalidInput("uid query parameter is required"))
		return
	}

	info, err := h.walletSvc.GetInfo(c.Request.Context(), uid)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WalletInfoResponse{
		Address: info.Address,
		Balance: info.Balance,
	})
}
