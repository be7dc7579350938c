package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type ApprovePaymentCmd struct {
	PaymentID uint64 `json:"payment_id" binding:"required"`
	ActorID   uint64 `json:"actor_id" binding:"required"`
}

type RevertPaymentCmd struct {
	PaymentID uint64 `json:"payment_id" binding:"required"`
	ActorID   uint64 `json:"actor_id" binding:"required"`
}

type DisbursePaymentCmd struct {
	PaymentID uint64 `json:"payment_id" binding:"required"`
	ActorID   uint64 `json:"actor_id" binding:"required"`
}

// OverridePaymentAmountCmd replaces the scheduled amount of a draft payment.
type OverridePaymentAmountCmd struct {
	PaymentID uint64 `json:"payment_id" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	ActorID   uint64 `json:"actor_id" binding:"required"`
}

// OverrideSplitAmountCmd pins one payment split's total, exempting it from the
// synchronizer until the override is cleared.
type OverrideSplitAmountCmd struct {
	SplitID uint64 `json:"split_id" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
	ActorID uint64 `json:"actor_id" binding:"required"`
}

type ClearSplitOverrideCmd struct {
	SplitID uint64 `json:"split_id" binding:"required"`
	ActorID uint64 `json:"actor_id" binding:"required"`
}

type TogglePaidCmd struct {
	SplitID  uint64     `json:"split_id" binding:"required"`
	Paid     bool       `json:"paid"`
	PaidDate *time.Time `json:"paid_date"`
	ActorID  uint64     `json:"actor_id" binding:"required"`
}

type ToggleReferralPaidCmd struct {
	PaymentID uint64     `json:"payment_id" binding:"required"`
	Paid      bool       `json:"paid"`
	PaidDate  *time.Time `json:"paid_date"`
	ActorID   uint64     `json:"actor_id" binding:"required"`
}

type ToggleReceivedCmd struct {
	PaymentID    uint64     `json:"payment_id" binding:"required"`
	Received     bool       `json:"received"`
	ReceivedDate *time.Time `json:"received_date"`
	ActorID      uint64     `json:"actor_id" binding:"required"`
}

type DeletePaymentCmd struct {
	PaymentID uint64 `json:"payment_id" binding:"required"`
	ActorID   uint64 `json:"actor_id" binding:"required"`
}

type PaymentVO struct {
	PaymentID        uint64           `json:"payment_id"`
	DealID           uint64           `json:"deal_id"`
	Seq              int              `json:"seq"`
	Amount           decimal.Decimal  `json:"amount"`
	Status           string           `json:"status"`
	AmountOverridden bool             `json:"amount_overridden"`
	Received         bool             `json:"received"`
	ReferralAmount   decimal.Decimal  `json:"referral_amount"`
	ReferralPaid     bool             `json:"referral_paid"`
	DisbursedAt      *time.Time       `json:"disbursed_at,omitempty"`
	AccountingSyncID *string          `json:"accounting_sync_id,omitempty"`
	Splits           []PaymentSplitVO `json:"splits,omitempty"`
}

type PaymentSplitVO struct {
	PSplitID       uint64          `json:"psplit_id"`
	PaymentID      uint64          `json:"payment_id"`
	BrokerID       uint64          `json:"broker_id"`
	OriginationAmt decimal.Decimal `json:"origination_amt"`
	SiteAmt        decimal.Decimal `json:"site_amt"`
	DealAmt        decimal.Decimal `json:"deal_amt"`
	Total          decimal.Decimal `json:"total"`
	Paid           bool            `json:"paid"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	ManualOverride bool            `json:"manual_override"`
	Locked         bool            `json:"locked"`
}
