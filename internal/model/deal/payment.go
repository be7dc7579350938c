package dealmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment lifecycle states.
const (
	PaymentDraft     int8 = 0
	PaymentApproved  int8 = 1
	PaymentDisbursed int8 = 2
)

// StatusName renders a lifecycle status for logs and API payloads.
func StatusName(s int8) string {
	switch s {
	case PaymentDraft:
		return "draft"
	case PaymentApproved:
		return "approved"
	case PaymentDisbursed:
		return "disbursed"
	}
	return "unknown"
}

// Payment is one scheduled disbursement event of a deal. Once Status is
// disbursed only the referral paid flags and the accounting sync id may change.
type Payment struct {
	PaymentID        uint64          `gorm:"column:payment_id;primaryKey;not null" json:"paymentId"`
	DealID           uint64          `gorm:"column:deal_id;not null;index:idx_pm_deal" json:"dealId"`
	Seq              int             `gorm:"column:seq;not null" json:"seq"` // 1..N within the deal
	Amount           decimal.Decimal `gorm:"column:amount;type:decimal(18,4);not null" json:"amount"`
	Status           int8            `gorm:"column:status;not null;default:0" json:"status"`
	AmountOverridden bool            `gorm:"column:amount_overridden;not null;default:0" json:"amountOverridden"`
	OverrideReason   *string         `gorm:"column:override_reason;type:varchar(255)" json:"overrideReason"`
	OverriddenBy     *uint64         `gorm:"column:overridden_by" json:"overriddenBy"`
	OverriddenAt     *time.Time      `gorm:"column:overridden_at" json:"overriddenAt"`
	Received         bool            `gorm:"column:received;not null;default:0" json:"received"` // client money arrived
	ReceivedAt       *time.Time      `gorm:"column:received_at" json:"receivedAt"`
	ReferralAmount   decimal.Decimal `gorm:"column:referral_amount;type:decimal(18,4);not null" json:"referralAmount"` // proportional referral share
	ReferralPaid     bool            `gorm:"column:referral_paid;not null;default:0" json:"referralPaid"`
	ReferralPaidAt   *time.Time      `gorm:"column:referral_paid_at" json:"referralPaidAt"`
	DisbursedAt      *time.Time      `gorm:"column:disbursed_at" json:"disbursedAt"`
	DisbursedBy      *uint64         `gorm:"column:disbursed_by" json:"disbursedBy"`
	AccountingSyncID *string         `gorm:"column:accounting_sync_id;type:varchar(64)" json:"accountingSyncId"` // opaque, passed through unchanged
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime;not null" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime;not null" json:"updatedAt"`
}

func (Payment) TableName() string { return "payment" }

// Synced reports whether the payment has been pushed to the accounting system.
// A synced payment's lifecycle is terminal.
func (p *Payment) Synced() bool {
	return p.AccountingSyncID != nil && *p.AccountingSyncID != ""
}
