package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AddBrokerCmd struct {
	DealID   uint64 `json:"deal_id" binding:"required"`
	BrokerID uint64 `json:"broker_id" binding:"required"`
	ActorID  uint64 `json:"actor_id" binding:"required"`
}

type RemoveBrokerCmd struct {
	DealID   uint64 `json:"deal_id" binding:"required"`
	BrokerID uint64 `json:"broker_id" binding:"required"`
	ActorID  uint64 `json:"actor_id" binding:"required"`
}

// SetSplitPercentageCmd edits one pool percentage of one broker's commission
// split. Percent is a string so non-numeric input can be rejected explicitly.
type SetSplitPercentageCmd struct {
	DealID   uint64 `json:"deal_id" binding:"required"`
	BrokerID uint64 `json:"broker_id" binding:"required"`
	Pool     string `json:"pool" binding:"required"`
	Percent  string `json:"percent" binding:"required"`
	ActorID  uint64 `json:"actor_id" binding:"required"`
}

type CommissionSplitVO struct {
	SplitID        uint64          `json:"split_id"`
	DealID         uint64          `json:"deal_id"`
	BrokerID       uint64          `json:"broker_id"`
	OriginationPct decimal.Decimal `json:"origination_pct"`
	SitePct        decimal.Decimal `json:"site_pct"`
	DealPct        decimal.Decimal `json:"deal_pct"`
	OriginationAmt decimal.Decimal `json:"origination_amt"`
	SiteAmt        decimal.Decimal `json:"site_amt"`
	DealAmt        decimal.Decimal `json:"deal_amt"`
	Total          decimal.Decimal `json:"total"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SplitEditResult carries the persisted split plus non-fatal balance warnings
// so a UI can show "98% - needs 2% more" without blocking the edit.
type SplitEditResult struct {
	Split    CommissionSplitVO `json:"split"`
	Warnings []string          `json:"warnings,omitempty"`
	Sync     SyncSummary       `json:"sync"`
}
