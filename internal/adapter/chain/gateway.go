package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"token-wallet-service/config"
	"token-wallet-service/internal/core/domain"
	"token-wallet-service/pkg/apperror"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
)

// tokenABI is the slice of the deployed contract this service calls. The
// contract itself is an opaque external dependency.
const tokenABI = `[
	{"type":"function","name":"mint","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"burn","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]}
]`

const receiptPollInterval = 2 * time.Second

// Backend is the slice of the JSON-RPC client surface the gateway uses.
// Satisfied by *ethclient.Client; stubbed in tests.
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// ERC20Gateway implements ports.ChainGateway against one JSON-RPC endpoint
// and one deployed token contract. Mint/Burn sign with the service key,
// broadcast and block until one confirmation or the ctx deadline.
type ERC20Gateway struct {
	backend  Backend
	abi      abi.ABI
	token    common.Address
	signer   *ecdsa.PrivateKey
	sender   common.Address
	chainID  *big.Int
	gasLimit uint64
	nonces   *NonceManager
	log      zerolog.Logger
}

// New dials the configured RPC endpoint and builds the gateway. Malformed
// signer key or token address is a fatal configuration error.
func New(ctx context.Context, cfg config.ChainConfig, log zerolog.Logger) (*ERC20Gateway, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("chain rpc_url is required")
	}

	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dialing rpc endpoint: %w", err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching chain id: %w", err)
	}

	return NewWithBackend(client, chainID, cfg, log)
}

// NewWithBackend builds the gateway over an existing backend. Used by New and
// by tests with a stub node.
func NewWithBackend(backend Backend, chainID *big.Int, cfg config.ChainConfig, log zerolog.Logger) (*ERC20Gateway, error) {
	parsed, err := abi.JSON(strings.NewReader(tokenABI))
	if err != nil {
		return nil, fmt.Errorf("parsing token abi: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parsing signing key: %w", err)
	}

	if !common.IsHexAddress(cfg.TokenAddress) {
		return nil, fmt.Errorf("invalid token contract address %q", cfg.TokenAddress)
	}

	sender := crypto.PubkeyToAddress(key.PublicKey)

	return &ERC20Gateway{
		backend:  backend,
		abi:      parsed,
		token:    common.HexToAddress(cfg.TokenAddress),
		signer:   key,
		sender:   sender,
		chainID:  chainID,
		gasLimit: cfg.GasLimit,
		nonces:   NewNonceManager(backend, sender),
		log:      log,
	}, nil
}

// Sender returns the service signing address.
func (g *ERC20Gateway) Sender() common.Address {
	return g.sender
}

// Node returns the underlying RPC backend, for health checks.
func (g *ERC20Gateway) Node() Backend {
	return g.backend
}

// Mint submits token.mint(to, amount) and waits for one confirmation.
func (g *ERC20Gateway) Mint(ctx context.Context, to string, amountWei *big.Int) (*domain.TxResult, error) {
	return g.transact(ctx, "mint", common.HexToAddress(to), amountWei)
}

// Burn submits token.burn(from, amount) and waits for one confirmation.
func (g *ERC20Gateway) Burn(ctx context.Context, from string, amountWei *big.Int) (*domain.TxResult, error) {
	return g.transact(ctx, "burn", common.HexToAddress(from), amountWei)
}

// BalanceOf performs a read-only token.balanceOf(address) call.
func (g *ERC20Gateway) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	data, err := g.abi.Pack("balanceOf", common.HexToAddress(address))
	if err != nil {
		return nil, fmt.Errorf("packing balanceOf call: %w", err)
	}

	out, err := g.backend.CallContract(ctx, ethereum.CallMsg{To: &g.token, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("balanceOf call: %w", err)
	}

	results, err := g.abi.Unpack("balanceOf", out)
	if err != nil {
		return nil, fmt.Errorf("unpacking balanceOf result: %w", err)
	}
	balance, ok := results[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected balanceOf result type %T", results[0])
	}
	return balance, nil
}

func (g *ERC20Gateway) transact(ctx context.Context, method string, target common.Address, amountWei *big.Int) (*domain.TxResult, error) {
	data, err := g.abi.Pack(method, target, amountWei)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("packing %s call: %w", method, err))
	}

	gasPrice, err := g.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, g.classify("gas price", err)
	}

	var signedTx *types.Transaction
	err = g.nonces.Submit(ctx, func(nonce uint64) error {
		tx := types.NewTransaction(nonce, g.token, common.Big0, g.gasLimit, gasPrice, data)
		signed, err := types.SignTx(tx, types.LatestSignerForChainID(g.chainID), g.signer)
		if err != nil {
			return fmt.Errorf("signing transaction: %w", err)
		}
		signedTx = signed
		return g.backend.SendTransaction(ctx, signed)
	})
	if err != nil {
		return nil, g.classify("broadcast", err)
	}

	g.log.Debug().
		Str("method", method).
		Str("tx_hash", signedTx.Hash().Hex()).
		Uint64("nonce", signedTx.Nonce()).
		Msg("transaction broadcast")

	return g.waitMined(ctx, signedTx.Hash())
}

// waitMined polls for the receipt until one confirmation is observed or the
// ctx deadline elapses. Past this point the transaction is on the wire, so a
// deadline means the outcome is unknown, not failed.
func (g *ERC20Gateway) waitMined(ctx context.Context, txHash common.Hash) (*domain.TxResult, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()

	for {
		receipt, err := g.backend.TransactionReceipt(ctx, txHash)
		if err == nil {
			if receipt.Status == types.ReceiptStatusFailed {
				return nil, apperror.ErrChain("transaction reverted", fmt.Errorf("tx %s reverted", txHash.Hex()))
			}
			return &domain.TxResult{Status: domain.TxStatusSuccess, TxHash: txHash.Hex()}, nil
		}
		if !errors.Is(err, ethereum.NotFound) && ctx.Err() == nil {
			g.log.Warn().Err(err).Str("tx_hash", txHash.Hex()).Msg("receipt poll failed")
		}

		select {
		case <-ctx.Done():
			// The transaction is already broadcast; hand the hash back with
			// the error so the caller can resolve the outcome later.
			result := &domain.TxResult{Status: domain.TxStatusUnknown, TxHash: txHash.Hex()}
			return result, apperror.ErrChainTimeout(fmt.Errorf("tx %s: %w", txHash.Hex(), ctx.Err()))
		case <-ticker.C:
		}
	}
}

// classify maps submission-path failures onto the error taxonomy. A deadline
// during SendTransaction is a Timeout: the request may have reached the node,
// so the outcome is unknown.
func (g *ERC20Gateway) classify(stage string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperror.ErrChainTimeout(fmt.Errorf("%s: %w", stage, err))
	}
	return apperror.ErrChain(stage, err)
}
