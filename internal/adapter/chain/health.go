package chain

import "context"

// HealthCheck implements ports.HealthChecker for the chain node.
type HealthCheck struct {
	backend Backend
}

// NewHealthCheck creates a chain node health checker.
func NewHealthCheck(backend Backend) *HealthCheck {
	return &HealthCheck{backend: backend}
}

// Ping checks node connectivity with a block number read.
func (h *HealthCheck) Ping(ctx context.Context) error {
	_, err := h.backend.BlockNumber(ctx)
	return err
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return "chain"
}
