package service

import (
	"time"

	"github.com/shopspring/decimal"

	"cre-commission-api/internal/constant"
	"cre-commission-api/internal/dao"
	"cre-commission-api/internal/dto"
	"cre-commission-api/internal/idgen"
	"cre-commission-api/internal/ledger"
	"cre-commission-api/internal/logger"
	dealmodel "cre-commission-api/internal/model/deal"
	"cre-commission-api/internal/mq"
	"cre-commission-api/internal/store"
	"cre-commission-api/internal/utils"
)

// SyncService projects commission splits onto every eligible payment of a
// deal. Only draft payments are touched; a payment with any locked or
// overridden split is skipped whole, so a manual adjustment on one broker is
// never half-overwritten.
type SyncService struct {
	st store.Store
}

func NewSyncService() *SyncService {
	return &SyncService{st: dao.NewDao()}
}

func NewSyncServiceWith(st store.Store) *SyncService {
	return &SyncService{st: st}
}

// AutoSyncPaymentSplits regenerates payment splits for every draft payment of
// the deal. Idempotent: a second run with no intervening commission change
// rewrites nothing. Per-payment failures are isolated into the summary.
func (s *SyncService) AutoSyncPaymentSplits(dealID, actorID uint64) (dto.SyncSummary, error) {
	sum := dto.SyncSummary{DealID: dealID}

	deal, err := s.st.GetDeal(dealID)
	if err != nil {
		return sum, err
	}
	if deal == nil {
		return sum, constant.NewErrorf(constant.CodeDealNotFound, "deal %d", dealID)
	}

	csplits, err := s.st.ListCommissionSplits(dealID)
	if err != nil {
		return sum, err
	}
	payments, err := s.st.ListPayments(dealID)
	if err != nil {
		return sum, err
	}

	for i := range payments {
		p := &payments[i]

		if p.Status != dealmodel.PaymentDraft {
			sum.Skipped = append(sum.Skipped, dto.SkippedPayment{
				PaymentID: p.PaymentID, Seq: p.Seq, Reason: dto.SkipNotDraft,
			})
			continue
		}

		existing, err := s.st.ListPaymentSplits(p.PaymentID)
		if err != nil {
			sum.Failed = append(sum.Failed, dto.FailedPayment{PaymentID: p.PaymentID, Seq: p.Seq, Error: err.Error()})
			continue
		}
		if hasLockedOrOverridden(existing) {
			sum.Skipped = append(sum.Skipped, dto.SkippedPayment{
				PaymentID: p.PaymentID, Seq: p.Seq, Reason: dto.SkipLockedOverride,
			})
			continue
		}

		desired := ledger.BuildPaymentSplits(deal, p, csplits)
		refShare := ledger.ReferralShare(deal, p.Amount)

		if ledger.SameAllocation(existing, desired) && p.ReferralAmount.Equal(refShare) {
			sum.Unchanged++
			continue
		}

		if err := s.regenerate(p, existing, desired, refShare, actorID); err != nil {
			sum.Failed = append(sum.Failed, dto.FailedPayment{PaymentID: p.PaymentID, Seq: p.Seq, Error: err.Error()})
			if logger.App != nil {
				logger.App.Warnf("sync deal %d payment %d failed: %v", dealID, p.PaymentID, err)
			}
			continue
		}
		sum.Updated++
	}

	invalidateDeal(dealID)
	_ = mq.PublishSplitsSynced(mq.SplitsSyncedEvent{
		DealID: dealID, Updated: sum.Updated, Unchanged: sum.Unchanged,
		Skipped: len(sum.Skipped), Failed: len(sum.Failed), OccurredAt: time.Now().Unix(),
	})
	if logger.App != nil {
		logger.App.Infof("sync deal %d: %s", dealID, utils.ToJSON(sum))
	}
	return sum, nil
}

// regenerate swaps one payment's splits for the desired allocation in a single
// transaction, so no reader ever sees the payment with zero splits.
func (s *SyncService) regenerate(p *dealmodel.Payment, existing, desired []dealmodel.PaymentSplit, refShare decimal.Decimal, actorID uint64) error {
	oldTotals := make(map[uint64]decimal.Decimal, len(existing))
	for _, ps := range existing {
		oldTotals[ps.BrokerID] = ps.Total
	}

	return s.st.Tx(func(tx store.Store) error {
		if err := tx.DeleteUnlockedSplits(p.PaymentID); err != nil {
			return err
		}
		now := time.Now()
		for i := range desired {
			ps := desired[i]
			ps.PSplitID = idgen.New()
			ps.CreatedAt = now
			ps.UpdatedAt = now
			if err := tx.InsertPaymentSplit(&ps); err != nil {
				return err
			}
			if err := tx.AppendAudit(&dealmodel.SplitAuditLog{
				ID:             idgen.New(),
				PaymentSplitID: ps.PSplitID,
				PaymentID:      p.PaymentID,
				DealID:         p.DealID,
				ChangeType:     dealmodel.ChangeAutoSync,
				OldTotal:       oldTotals[ps.BrokerID],
				NewTotal:       ps.Total,
				ChangedBy:      actorID,
				ChangedAt:      now,
			}); err != nil {
				return err
			}
		}
		if !p.ReferralAmount.Equal(refShare) {
			p.ReferralAmount = refShare
			if err := tx.UpdatePayment(p); err != nil {
				return err
			}
		}
		return nil
	})
}

func hasLockedOrOverridden(splits []dealmodel.PaymentSplit) bool {
	for _, ps := range splits {
		if ps.Locked || ps.ManualOverride {
			return true
		}
	}
	return false
}
