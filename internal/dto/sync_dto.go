package dto

// Per-payment skip reasons reported by the synchronizer.
const (
	SkipNotDraft       = "not draft"
	SkipLockedOverride = "has locked/overridden splits"
)

type SkippedPayment struct {
	PaymentID uint64 `json:"payment_id"`
	Seq       int    `json:"seq"`
	Reason    string `json:"reason"`
}

type FailedPayment struct {
	PaymentID uint64 `json:"payment_id"`
	Seq       int    `json:"seq"`
	Error     string `json:"error"`
}

// SyncSummary is the per-payment outcome list of one auto-sync run. A failure
// on one payment never aborts the others.
type SyncSummary struct {
	DealID    uint64           `json:"deal_id"`
	Updated   int              `json:"updated"`
	Unchanged int              `json:"unchanged"`
	Skipped   []SkippedPayment `json:"skipped,omitempty"`
	Failed    []FailedPayment  `json:"failed,omitempty"`
}
