package dealmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentSplit is the per-broker dollar allocation for one payment, derived
// from the broker's CommissionSplit proportional to the payment's share of the
// deal fee. Locked rows are never touched by the synchronizer.
type PaymentSplit struct {
	PSplitID       uint64          `gorm:"column:psplit_id;primaryKey;not null" json:"psplitId"`
	PaymentID      uint64          `gorm:"column:payment_id;not null;index:idx_ps_payment" json:"paymentId"`
	DealID         uint64          `gorm:"column:deal_id;not null;index:idx_ps_deal_broker" json:"dealId"`
	BrokerID       uint64          `gorm:"column:broker_id;not null;index:idx_ps_deal_broker" json:"brokerId"`
	OriginationAmt decimal.Decimal `gorm:"column:origination_amt;type:decimal(18,4);not null" json:"originationAmt"`
	SiteAmt        decimal.Decimal `gorm:"column:site_amt;type:decimal(18,4);not null" json:"siteAmt"`
	DealAmt        decimal.Decimal `gorm:"column:deal_amt;type:decimal(18,4);not null" json:"dealAmt"`
	Total          decimal.Decimal `gorm:"column:total;type:decimal(18,4);not null" json:"total"`
	Paid           bool            `gorm:"column:paid;not null;default:0" json:"paid"`
	PaidAt         *time.Time      `gorm:"column:paid_at" json:"paidAt"`
	ManualOverride bool            `gorm:"column:manual_override;not null;default:0" json:"manualOverride"`
	OverrideReason *string         `gorm:"column:override_reason;type:varchar(255)" json:"overrideReason"`
	OverriddenBy   *uint64         `gorm:"column:overridden_by" json:"overriddenBy"`
	OverriddenAt   *time.Time      `gorm:"column:overridden_at" json:"overriddenAt"`
	Locked         bool            `gorm:"column:locked;not null;default:0" json:"locked"` // true once paid or payment approved/disbursed
	Version        int64           `gorm:"column:version;not null;default:0" json:"version"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime;not null" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime;not null" json:"updatedAt"`
}

func (PaymentSplit) TableName() string { return "payment_split" }
