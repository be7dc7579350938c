package service

import (
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"

	"cre-commission-api/internal/constant"
	"cre-commission-api/internal/dao"
	"cre-commission-api/internal/dto"
	"cre-commission-api/internal/idgen"
	"cre-commission-api/internal/ledger"
	dealmodel "cre-commission-api/internal/model/deal"
	"cre-commission-api/internal/store"
)

// DealService handles deal intake and the read surface over a deal's splits
// and payments.
type DealService struct {
	st store.Store
}

func NewDealService() *DealService {
	return &DealService{st: dao.NewDao()}
}

func NewDealServiceWith(st store.Store) *DealService {
	return &DealService{st: st}
}

func parseMoney(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(raw))
}

// CreateDeal opens a deal and schedules number_of_payments draft payments of
// fee/N each. The last payment absorbs the division remainder so the schedule
// sums back to the fee exactly.
func (s *DealService) CreateDeal(cmd dto.CreateDealCmd) (dto.DealVO, error) {
	var vo dto.DealVO

	fee, err := parseMoney(cmd.Fee)
	if err != nil || fee.LessThanOrEqual(decimal.Zero) {
		return vo, constant.NewErrorf(constant.CodeDealAmountError, "fee %q", cmd.Fee)
	}
	origBase, err := parseMoney(cmd.OriginationBase)
	if err != nil || origBase.IsNegative() {
		return vo, constant.NewErrorf(constant.CodeDealAmountError, "origination_base %q", cmd.OriginationBase)
	}
	siteBase, err := parseMoney(cmd.SiteBase)
	if err != nil || siteBase.IsNegative() {
		return vo, constant.NewErrorf(constant.CodeDealAmountError, "site_base %q", cmd.SiteBase)
	}
	dealBase, err := parseMoney(cmd.DealBase)
	if err != nil || dealBase.IsNegative() {
		return vo, constant.NewErrorf(constant.CodeDealAmountError, "deal_base %q", cmd.DealBase)
	}
	if cmd.NumberOfPayments < 1 {
		return vo, constant.NewErrorf(constant.CodePaymentCountBad, "number_of_payments %d", cmd.NumberOfPayments)
	}

	var refFee *decimal.Decimal
	if strings.TrimSpace(cmd.ReferralFee) != "" {
		f, err := parseMoney(cmd.ReferralFee)
		if err != nil || f.IsNegative() {
			return vo, constant.NewErrorf(constant.CodeDealAmountError, "referral_fee %q", cmd.ReferralFee)
		}
		refFee = &f
	}
	var refPayee *string
	if p := strings.TrimSpace(cmd.ReferralPayee); p != "" {
		refPayee = &p
	}
	currency := strings.ToUpper(strings.TrimSpace(cmd.Currency))
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	deal := &dealmodel.Deal{
		DealID:           idgen.New(),
		Name:             strings.TrimSpace(cmd.Name),
		Fee:              fee,
		OriginationBase:  origBase,
		SiteBase:         siteBase,
		DealBase:         dealBase,
		NumberOfPayments: cmd.NumberOfPayments,
		ReferralFee:      refFee,
		ReferralPayee:    refPayee,
		Currency:         currency,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	n := decimal.NewFromInt(int64(cmd.NumberOfPayments))
	each := ledger.RoundCents(fee.Div(n))
	last := fee.Sub(each.Mul(n.Sub(decimal.NewFromInt(1))))

	err = s.st.Tx(func(tx store.Store) error {
		if err := tx.InsertDeal(deal); err != nil {
			return err
		}
		for seq := 1; seq <= cmd.NumberOfPayments; seq++ {
			amount := each
			if seq == cmd.NumberOfPayments {
				amount = last
			}
			p := &dealmodel.Payment{
				PaymentID:      idgen.New(),
				DealID:         deal.DealID,
				Seq:            seq,
				Amount:         amount,
				Status:         dealmodel.PaymentDraft,
				ReferralAmount: ledger.ReferralShare(deal, amount),
				CreatedAt:      now,
				UpdatedAt:      now,
			}
			if err := tx.InsertPayment(p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return vo, err
	}

	_ = copier.Copy(&vo, deal)
	return vo, nil
}

// UpdateDealFinancials renegotiates fee, pool bases and referral terms.
// Rejected once any payment left draft: approved or disbursed numbers are
// commitments. Non-overridden payment amounts are re-derived from the new fee,
// commission split dollars recomputed, and splits re-synced.
func (s *DealService) UpdateDealFinancials(cmd dto.UpdateDealFinancialsCmd) (dto.SyncSummary, error) {
	var sum dto.SyncSummary

	fee, err := parseMoney(cmd.Fee)
	if err != nil || fee.LessThanOrEqual(decimal.Zero) {
		return sum, constant.NewErrorf(constant.CodeDealAmountError, "fee %q", cmd.Fee)
	}
	origBase, err := parseMoney(cmd.OriginationBase)
	if err != nil || origBase.IsNegative() {
		return sum, constant.NewErrorf(constant.CodeDealAmountError, "origination_base %q", cmd.OriginationBase)
	}
	siteBase, err := parseMoney(cmd.SiteBase)
	if err != nil || siteBase.IsNegative() {
		return sum, constant.NewErrorf(constant.CodeDealAmountError, "site_base %q", cmd.SiteBase)
	}
	dealBase, err := parseMoney(cmd.DealBase)
	if err != nil || dealBase.IsNegative() {
		return sum, constant.NewErrorf(constant.CodeDealAmountError, "deal_base %q", cmd.DealBase)
	}
	var refFee *decimal.Decimal
	if strings.TrimSpace(cmd.ReferralFee) != "" {
		f, err := parseMoney(cmd.ReferralFee)
		if err != nil || f.IsNegative() {
			return sum, constant.NewErrorf(constant.CodeDealAmountError, "referral_fee %q", cmd.ReferralFee)
		}
		refFee = &f
	}

	deal, err := s.st.GetDeal(cmd.DealID)
	if err != nil {
		return sum, err
	}
	if deal == nil {
		return sum, constant.NewErrorf(constant.CodeDealNotFound, "deal %d", cmd.DealID)
	}

	payments, err := s.st.ListPayments(deal.DealID)
	if err != nil {
		return sum, err
	}
	for i := range payments {
		if payments[i].Status != dealmodel.PaymentDraft {
			return sum, constant.NewErrorf(constant.CodeDealLocked,
				"payment %d is %s", payments[i].PaymentID, dealmodel.StatusName(payments[i].Status))
		}
	}

	deal.Fee = fee
	deal.OriginationBase = origBase
	deal.SiteBase = siteBase
	deal.DealBase = dealBase
	deal.ReferralFee = refFee
	if p := strings.TrimSpace(cmd.ReferralPayee); p != "" {
		deal.ReferralPayee = &p
	}
	deal.UpdatedAt = time.Now()

	n := decimal.NewFromInt(int64(deal.NumberOfPayments))
	each := ledger.RoundCents(fee.Div(n))
	last := fee.Sub(each.Mul(n.Sub(decimal.NewFromInt(1))))

	err = s.st.Tx(func(tx store.Store) error {
		if err := tx.UpdateDeal(deal); err != nil {
			return err
		}
		// manually overridden amounts are the user's call, leave them alone
		for i := range payments {
			p := &payments[i]
			if p.AmountOverridden {
				continue
			}
			p.Amount = each
			if p.Seq == deal.NumberOfPayments {
				p.Amount = last
			}
			if err := tx.UpdatePayment(p); err != nil {
				return err
			}
		}
		csplits, err := tx.ListCommissionSplits(deal.DealID)
		if err != nil {
			return err
		}
		for i := range csplits {
			cs := &csplits[i]
			ledger.Recompute(deal, cs)
			if err := tx.UpdateCommissionSplit(cs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return sum, err
	}
	invalidateDeal(deal.DealID)

	return NewSyncServiceWith(s.st).AutoSyncPaymentSplits(deal.DealID, cmd.ActorID)
}

// GetDeal returns the deal header.
func (s *DealService) GetDeal(dealID uint64) (dto.DealVO, error) {
	var vo dto.DealVO
	d, err := s.st.GetDeal(dealID)
	if err != nil {
		return vo, err
	}
	if d == nil {
		return vo, constant.NewErrorf(constant.CodeDealNotFound, "deal %d", dealID)
	}
	_ = copier.Copy(&vo, d)
	return vo, nil
}

// ListCommissionSplits returns the deal's per-broker percentage allocations.
func (s *DealService) ListCommissionSplits(dealID uint64) ([]dto.CommissionSplitVO, error) {
	splits, err := s.st.ListCommissionSplits(dealID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommissionSplitVO, 0, len(splits))
	for i := range splits {
		var vo dto.CommissionSplitVO
		_ = copier.Copy(&vo, &splits[i])
		out = append(out, vo)
	}
	return out, nil
}
