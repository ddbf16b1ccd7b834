package dto

// ProvisionWalletRequest is the request body for wallet provisioning.
type ProvisionWalletRequest struct {
	UID string `json:"uid" binding:"required,min=1,max=128,safe_id"`
}

// ProvisionWalletResponse is the response body for a provisioned wallet.
type ProvisionWalletResponse struct {
	Address string `json:"address"`
}

// WalletInfoResponse is the response body for the wallet-info query.
type WalletInfoResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// MintRequest is the request body for minting tokens to an address.
type MintRequest struct {
	To     string `json:"to" binding:"required,eth_addr"`
	Amount string `json:"amount" binding:"required,max=78"`
}

// BurnRequest is the request body for burning tokens held by an address.
type BurnRequest struct {
	From   string `json:"from" binding:"required,eth_addr"`
	Amount string `json:"amount" binding:"required,max=78"`
}

// TokenOpResponse is the response body for a confirmed mint or burn.
type TokenOpResponse struct {
	Status string `json:"status"`
	TxHash string `json:"txHash"`
}

// LoginRequest is the request body for admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}
