package chain

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
)

// pendingNonceReader is the slice of the RPC surface the nonce manager needs.
type pendingNonceReader interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
}

// NonceManager is the single point of nonce issuance for the service signing
// key. All transactions go through Submit, which holds the lock across
// sign+send so nonces leave the process strictly increasing and gap-free even
// under concurrent mint/burn calls.
type NonceManager struct {
	mu      sync.Mutex
	backend pendingNonceReader
	account common.Address
	next    uint64
	synced  bool
}

// NewNonceManager creates a nonce manager for the given signer account.
// The counter is seeded lazily from the node's pending nonce on first use.
func NewNonceManager(backend pendingNonceReader, account common.Address) *NonceManager {
	return &NonceManager{backend: backend, account: account}
}

// Submit reserves the next nonce and runs send with it, serialized against
// all other submissions from this signer. The counter advances only when send
// succeeds; on failure it is resynced from the node before the next
// submission, since the failed nonce may or may not have been consumed.
func (m *NonceManager) Submit(ctx context.Context, send func(nonce uint64) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.synced {
		pending, err := m.backend.PendingNonceAt(ctx, m.account)
		if err != nil {
			return fmt.Errorf("fetching pending nonce: %w", err)
		}
		m.next = pending
		m.synced = true
	}

	if err := m.send(ctx, send); err != nil {
		m.synced = false
		return err
	}

	m.next++
	return nil
}

func (m *NonceManager) send(ctx context.Context, send func(nonce uint64) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return send(m.next)
}
