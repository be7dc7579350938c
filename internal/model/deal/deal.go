package dealmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deal is one brokerage transaction. Pool bases are the dollar amounts split
// across brokers per pool; their sum may be less than Fee (house keeps the rest).
type Deal struct {
	DealID           uint64           `gorm:"column:deal_id;primaryKey;not null" json:"dealId"`
	Name             string           `gorm:"column:name;type:varchar(120);not null" json:"name"`
	Fee              decimal.Decimal  `gorm:"column:fee;type:decimal(18,4);not null" json:"fee"`                            // total deal fee
	OriginationBase  decimal.Decimal  `gorm:"column:origination_base;type:decimal(18,4);not null" json:"originationBase"`   // origination pool base
	SiteBase         decimal.Decimal  `gorm:"column:site_base;type:decimal(18,4);not null" json:"siteBase"`                 // site pool base
	DealBase         decimal.Decimal  `gorm:"column:deal_base;type:decimal(18,4);not null" json:"dealBase"`                 // deal pool base
	NumberOfPayments int              `gorm:"column:number_of_payments;not null" json:"numberOfPayments"`                   // scheduled payment count
	ReferralFee      *decimal.Decimal `gorm:"column:referral_fee;type:decimal(18,4)" json:"referralFee"`                    // optional referral fee
	ReferralPayee    *string          `gorm:"column:referral_payee;type:varchar(60)" json:"referralPayee"`                  // optional referral payee id
	Currency         string           `gorm:"column:currency;type:char(3);not null;default:USD" json:"currency"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime;not null" json:"createdAt"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime;not null" json:"updatedAt"`
}

func (Deal) TableName() string { return "deal" }
