package postgres

import (
	"context"

	"token-wallet-service/internal/core/domain"
	"token-wallet-service/internal/core/ports"
)

type auditRepo struct {
	pool Pool
}

// NewAuditRepository creates a PostgreSQL-backed AuditRepository.
func NewAuditRepository(pool Pool) ports.AuditRepository {
	return &auditRepo{pool: pool}
}

func (r *auditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_log (id, actor, action, target, amount, tx_hash, ip_address, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.Actor, string(entry.Action), entry.Target,
		entry.Amount, entry.TxHash, entry.IPAddress, entry.CreatedAt,
	)
	return err
}
