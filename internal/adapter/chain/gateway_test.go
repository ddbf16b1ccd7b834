package chain

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"token-wallet-service/config"
	"token-wallet-service/internal/core/domain"
	"token-wallet-service/pkg/apperror"
	"token-wallet-service/pkg/logger"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test signing key (well-known hardhat account #0, never holds real funds).
const testSignerKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const testTokenAddr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

// stubBackend simulates a chain node. Receipts become visible one poll after
// broadcast unless failSend or neverMine is set.
type stubBackend struct {
	mu           sync.Mutex
	pendingNonce uint64
	sentNonces   []uint64
	receipts     map[common.Hash]*types.Receipt
	balance      *big.Int
	failSend     error
	failSendOnce bool
	neverMine    bool
	revert       bool
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		pendingNonce: 7,
		receipts:     make(map[common.Hash]*types.Receipt),
		balance:      big.NewInt(0),
	}
}

func (b *stubBackend) ChainID(ctx context.Context) (*big.Int, error) { return big.NewInt(1337), nil }

func (b *stubBackend) PendingNonceAt(ctx context.Context, account common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pendingNonce, nil
}

func (b *stubBackend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1_000_000_000), nil
}

func (b *stubBackend) SendTransaction(ctx context.Context, tx *types.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failSend != nil {
		err := b.failSend
		if b.failSendOnce {
			b.failSend = nil
		}
		return err
	}
	b.sentNonces = append(b.sentNonces, tx.Nonce())
	b.pendingNonce = tx.Nonce() + 1
	if !b.neverMine {
		status := types.ReceiptStatusSuccessful
		if b.revert {
			status = types.ReceiptStatusFailed
		}
		b.receipts[tx.Hash()] = &types.Receipt{Status: status, TxHash: tx.Hash()}
	}
	return nil
}

func (b *stubBackend) TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if r, ok := b.receipts[txHash]; ok {
		return r, nil
	}
	return nil, ethereum.NotFound
}

func (b *stubBackend) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return common.LeftPadBytes(b.balance.Bytes(), 32), nil
}

func (b *stubBackend) BlockNumber(ctx context.Context) (uint64, error) { return 100, nil }

func newTestGateway(t *testing.T, backend Backend) *ERC20Gateway {
	t.Helper()
	gw, err := NewWithBackend(backend, big.NewInt(1337), config.ChainConfig{
		PrivateKey:   testSignerKey,
		TokenAddress: testTokenAddr,
		GasLimit:     120000,
	}, logger.NewWithWriter("error", testWriter{}))
	require.NoError(t, err)
	return gw
}

type testWriter struct{}

func (testWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestNewWithBackend_InvalidConfig(t *testing.T) {
	backend := newStubBackend()
	log := logger.NewWithWriter("error", testWriter{})

	_, err := NewWithBackend(backend, big.NewInt(1), config.ChainConfig{
		PrivateKey:   "not-a-key",
		TokenAddress: testTokenAddr,
	}, log)
	assert.Error(t, err)

	_, err = NewWithBackend(backend, big.NewInt(1), config.ChainConfig{
		PrivateKey:   testSignerKey,
		TokenAddress: "not-an-address",
	}, log)
	assert.Error(t, err)
}

func TestGateway_MintConfirms(t *testing.T) {
	backend := newStubBackend()
	gw := newTestGateway(t, backend)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := gw.Mint(ctx, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "success", string(result.Status))
	assert.NotEmpty(t, result.TxHash)
	assert.Equal(t, []uint64{7}, backend.sentNonces)
}

func TestGateway_BurnReverted(t *testing.T) {
	backend := newStubBackend()
	backend.revert = true
	gw := newTestGateway(t, backend)

	_, err := gw.Burn(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", big.NewInt(1))
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CHN_002", appErr.Code)
}

func TestGateway_ConfirmationTimeout(t *testing.T) {
	backend := newStubBackend()
	backend.neverMine = true
	gw := newTestGateway(t, backend)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	result, err := gw.Mint(ctx, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", big.NewInt(1))
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CHN_004", appErr.Code, "unconfirmed broadcast is an unknown outcome, not a failure")

	// The broadcast hash comes back alongside the error so the outcome can
	// be resolved once the chain catches up.
	require.NotNil(t, result)
	assert.Equal(t, domain.TxStatusUnknown, result.Status)
	assert.NotEmpty(t, result.TxHash)
}

func TestGateway_SendFailure(t *testing.T) {
	backend := newStubBackend()
	backend.failSend = errors.New("nonce too low")
	gw := newTestGateway(t, backend)

	_, err := gw.Mint(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", big.NewInt(1))
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CHN_002", appErr.Code)
}

func TestGateway_BalanceOf(t *testing.T) {
	backend := newStubBackend()
	backend.balance = big.NewInt(42)
	gw := newTestGateway(t, backend)

	balance, err := gw.BalanceOf(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	require.NoError(t, err)
	assert.Equal(t, int64(42), balance.Int64())
}

func TestGateway_ConcurrentSubmissionsGetDistinctNonces(t *testing.T) {
	backend := newStubBackend()
	gw := newTestGateway(t, backend)

	const calls = 20
	var wg sync.WaitGroup
	wg.Add(calls)
	for i := 0; i < calls; i++ {
		go func() {
			defer wg.Done()
			_, err := gw.Mint(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", big.NewInt(1))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, backend.sentNonces, calls)
	seen := make(map[uint64]bool, calls)
	for _, n := range backend.sentNonces {
		assert.False(t, seen[n], "nonce %d issued twice", n)
		seen[n] = true
	}
	for n := uint64(7); n < 7+calls; n++ {
		assert.True(t, seen[n], "nonce %d missing, sequence has a gap", n)
	}
}

func TestNonceManager_ResyncAfterFailure(t *testing.T) {
	backend := newStubBackend()
	backend.failSend = errors.New("connection reset")
	backend.failSendOnce = true
	gw := newTestGateway(t, backend)

	_, err := gw.Mint(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", big.NewInt(1))
	require.Error(t, err)

	// Next submission reseeds from the node's pending nonce.
	result, err := gw.Mint(context.Background(), "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, "success", string(result.Status))
	assert.Equal(t, []uint64{7}, backend.sentNonces)
}
