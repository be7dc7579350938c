package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDealCmd opens a deal and schedules its payments. Money fields arrive
// as strings and are parsed into decimals at the service boundary.
type CreateDealCmd struct {
	Name             string `json:"name" binding:"required"`
	Fee              string `json:"fee" binding:"required"`
	OriginationBase  string `json:"origination_base" binding:"required"`
	SiteBase         string `json:"site_base" binding:"required"`
	DealBase         string `json:"deal_base" binding:"required"`
	NumberOfPayments int    `json:"number_of_payments" binding:"required"`
	ReferralFee      string `json:"referral_fee"`
	ReferralPayee    string `json:"referral_payee"`
	Currency         string `json:"currency"`
	ActorID          uint64 `json:"actor_id" binding:"required"`
}

// UpdateDealFinancialsCmd renegotiates the deal's money figures. Allowed only
// while every payment is still draft.
type UpdateDealFinancialsCmd struct {
	DealID          uint64 `json:"deal_id" binding:"required"`
	Fee             string `json:"fee" binding:"required"`
	OriginationBase string `json:"origination_base" binding:"required"`
	SiteBase        string `json:"site_base" binding:"required"`
	DealBase        string `json:"deal_base" binding:"required"`
	ReferralFee     string `json:"referral_fee"`
	ReferralPayee   string `json:"referral_payee"`
	ActorID         uint64 `json:"actor_id" binding:"required"`
}

type DealVO struct {
	DealID           uint64           `json:"deal_id"`
	Name             string           `json:"name"`
	Fee              decimal.Decimal  `json:"fee"`
	OriginationBase  decimal.Decimal  `json:"origination_base"`
	SiteBase         decimal.Decimal  `json:"site_base"`
	DealBase         decimal.Decimal  `json:"deal_base"`
	NumberOfPayments int              `json:"number_of_payments"`
	ReferralFee      *decimal.Decimal `json:"referral_fee,omitempty"`
	ReferralPayee    *string          `json:"referral_payee,omitempty"`
	Currency         string           `json:"currency"`
	CreatedAt        time.Time        `json:"created_at"`
}
