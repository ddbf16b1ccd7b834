package integration

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"token-wallet-service/internal/core/domain"
)

// In-memory repositories and a local token ledger standing in for PostgreSQL
// and the chain node. The HTTP layer, middleware, services, and Redis stores
// run for real.

type inMemoryWalletRepo struct {
	mu      sync.Mutex
	wallets map[string]*domain.Wallet
}

func newInMemoryWalletRepo() *inMemoryWalletRepo {
	return &inMemoryWalletRepo{wallets: make(map[string]*domain.Wallet)}
}

func (r *inMemoryWalletRepo) Put(ctx context.Context, w *domain.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.wallets[w.UID]; exists {
		return nil // first write wins, matching the postgres repo
	}
	cp := *w
	r.wallets[w.UID] = &cp
	return nil
}

func (r *inMemoryWalletRepo) Get(ctx context.Context, uid string) (*domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wallets[uid]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

type inMemoryUserRepo struct {
	mu    sync.Mutex
	links map[string]string
}

func newInMemoryUserRepo() *inMemoryUserRepo {
	return &inMemoryUserRepo{links: make(map[string]string)}
}

func (r *inMemoryUserRepo) SetWalletAddress(ctx context.Context, uid, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[uid] = address
	return nil
}

func (r *inMemoryUserRepo) GetWalletAddress(ctx context.Context, uid string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.links[uid], nil
}

type inMemoryAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.entries = append(r.entries, &cp)
	return nil
}

func (r *inMemoryAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// localLedger implements ports.ChainGateway as an in-process token ledger.
// Every mint/burn gets a unique sequence number embedded in the tx hash so
// tests can assert that no submission was lost or double-applied.
type localLedger struct {
	mu       sync.Mutex
	balances map[string]*big.Int
	seq      uint64
	mintErr  error
	readErr  error
}

func newLocalLedger() *localLedger {
	return &localLedger{balances: make(map[string]*big.Int)}
}

func (l *localLedger) Mint(ctx context.Context, to string, amountWei *big.Int) (*domain.TxResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.mintErr != nil {
		return nil, l.mintErr
	}
	bal, ok := l.balances[to]
	if !ok {
		bal = new(big.Int)
		l.balances[to] = bal
	}
	bal.Add(bal, amountWei)
	l.seq++
	return &domain.TxResult{Status: domain.TxStatusSuccess, TxHash: fmt.Sprintf("0x%064x", l.seq)}, nil
}

func (l *localLedger) Burn(ctx context.Context, from string, amountWei *big.Int) (*domain.TxResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal, ok := l.balances[from]
	if !ok {
		bal = new(big.Int)
		l.balances[from] = bal
	}
	bal.Sub(bal, amountWei)
	l.seq++
	return &domain.TxResult{Status: domain.TxStatusSuccess, TxHash: fmt.Sprintf("0x%064x", l.seq)}, nil
}

func (l *localLedger) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.readErr != nil {
		return nil, l.readErr
	}
	bal, ok := l.balances[address]
	if !ok {
		return new(big.Int), nil
	}
	return new(big.Int).Set(bal), nil
}
