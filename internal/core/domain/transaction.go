package domain

// TxStatus is the terminal state of a submitted chain transaction.
type TxStatus string

const (
	// TxStatusSuccess means the transaction was included and confirmed.
	TxStatusSuccess TxStatus = "success"
	// TxStatusUnknown means the transaction was broadcast but the bounded
	// confirmation wait elapsed. It may still land; callers must not assume
	// failure.
	TxStatusUnknown TxStatus = "unknown"
)

// TxResult is the transient outcome of a mint or burn submission. Not persisted.
type TxResult struct {
	Status TxStatus `json:"status"`
	TxHash string   `json:"tx_hash"`
}
