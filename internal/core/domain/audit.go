package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionMint      AuditAction = "MINT"
	AuditActionBurn      AuditAction = "BURN"
	AuditActionProvision AuditAction = "PROVISION"
	AuditActionLogin     AuditAction = "LOGIN"
)

// AuditLog records a single audited action. Every mint/burn writes one entry
// with the acting admin subject, the target address, the amount and the
// resulting transaction hash.
type AuditLog struct {
	ID        uuid.UUID   `json:"id"`
	Actor     string      `json:"actor"`
	Action    AuditAction `json:"action"`
	Target    string      `json:"target"` // address or uid
	Amount    string      `json:"amount,omitempty"`
	TxHash    string      `json:"tx_hash,omitempty"`
	IPAddress string      `json:"ip_address"`
	CreatedAt time.Time   `json:"created_at"`
}
