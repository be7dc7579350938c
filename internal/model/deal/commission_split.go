package dealmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionSplit is one (deal, broker) percentage allocation across the three
// fee pools. Dollar amounts are derived from the deal pool bases and stored
// unrounded; rounding happens at display time only.
type CommissionSplit struct {
	SplitID        uint64          `gorm:"column:split_id;primaryKey;not null" json:"splitId"`
	DealID         uint64          `gorm:"column:deal_id;not null;index:idx_cs_deal" json:"dealId"`
	BrokerID       uint64          `gorm:"column:broker_id;not null;index:idx_cs_deal_broker" json:"brokerId"`
	OriginationPct decimal.Decimal `gorm:"column:origination_pct;type:decimal(10,4);not null" json:"originationPct"`
	SitePct        decimal.Decimal `gorm:"column:site_pct;type:decimal(10,4);not null" json:"sitePct"`
	DealPct        decimal.Decimal `gorm:"column:deal_pct;type:decimal(10,4);not null" json:"dealPct"`
	OriginationAmt decimal.Decimal `gorm:"column:origination_amt;type:decimal(18,4);not null" json:"originationAmt"`
	SiteAmt        decimal.Decimal `gorm:"column:site_amt;type:decimal(18,4);not null" json:"siteAmt"`
	DealAmt        decimal.Decimal `gorm:"column:deal_amt;type:decimal(18,4);not null" json:"dealAmt"`
	Total          decimal.Decimal `gorm:"column:total;type:decimal(18,4);not null" json:"total"`
	Version        int64           `gorm:"column:version;not null;default:0" json:"version"` // optimistic concurrency stamp
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime;not null" json:"createdAt"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime;not null" json:"updatedAt"`
}

func (CommissionSplit) TableName() string { return "commission_split" }
