package models

// PendingTxnStatus identifies a submitted transaction.
type PendingTxnStatus struct {
	Hash string `json:"hash"`
}

// PendingTransaction is a submitted transaction not yet cleared.
type PendingTransaction struct {
	UpdatedAt    string      `json:"updated_at"`
	Type         string      `json:"type"`
	Txn          Transaction `json:"txn"`
	Status       string      `json:"status"`
	Hash         string      `json:"hash"`
	FailedReason string      `json:"failed_reason"`
	CreatedAt    string      `json:"created_at"`
}
