package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/shopspring/decimal"

	"cre-commission-api/internal/accounting"
	"cre-commission-api/internal/config"
	"cre-commission-api/internal/constant"
	"cre-commission-api/internal/dao"
	"cre-commission-api/internal/dto"
	"cre-commission-api/internal/idgen"
	"cre-commission-api/internal/ledger"
	"cre-commission-api/internal/logger"
	dealmodel "cre-commission-api/internal/model/deal"
	"cre-commission-api/internal/mq"
	"cre-commission-api/internal/notify"
	"cre-commission-api/internal/store"
)

// PaymentService drives the draft -> approved -> disbursed lifecycle and the
// per-split paid/override bookkeeping. Once a payment is disbursed its splits
// are permanently frozen; only the referral paid flag stays mutable.
type PaymentService struct {
	st   store.Store
	sync *SyncService
	acct accounting.Client
}

func NewPaymentService() *PaymentService {
	st := dao.NewDao()
	return &PaymentService{st: st, sync: NewSyncServiceWith(st), acct: accounting.NewHTTPClient()}
}

func NewPaymentServiceWith(st store.Store, acct accounting.Client) *PaymentService {
	return &PaymentService{st: st, sync: NewSyncServiceWith(st), acct: acct}
}

func (s *PaymentService) loadPayment(paymentID uint64) (*dealmodel.Payment, error) {
	p, err := s.st.GetPayment(paymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, constant.NewErrorf(constant.CodePaymentNotFound, "payment %d", paymentID)
	}
	return p, nil
}

// Approve moves a draft payment to approved and locks every split against the
// synchronizer.
func (s *PaymentService) Approve(cmd dto.ApprovePaymentCmd) error {
	p, err := s.loadPayment(cmd.PaymentID)
	if err != nil {
		return err
	}
	if err := ledger.CanApprove(p); err != nil {
		return err
	}

	err = s.st.Tx(func(tx store.Store) error {
		p.Status = dealmodel.PaymentApproved
		if err := tx.UpdatePayment(p); err != nil {
			return err
		}
		return s.lockSplits(tx, p, "approve", cmd.ActorID)
	})
	if err != nil {
		return err
	}

	invalidateDeal(p.DealID)
	_ = mq.PublishPaymentLifecycle(mq.PaymentLifecycleEvent{
		PaymentID: p.PaymentID, DealID: p.DealID, Transition: "approved",
		Actor: cmd.ActorID, OccurredAt: time.Now().Unix(),
	})
	return nil
}

// Revert walks an approved payment back to draft. Paid splits stay locked
// regardless: once money moved for a broker that row never thaws.
func (s *PaymentService) Revert(cmd dto.RevertPaymentCmd) error {
	p, err := s.loadPayment(cmd.PaymentID)
	if err != nil {
		return err
	}
	if err := ledger.CanRevert(p); err != nil {
		return err
	}

	err = s.st.Tx(func(tx store.Store) error {
		p.Status = dealmodel.PaymentDraft
		if err := tx.UpdatePayment(p); err != nil {
			return err
		}
		splits, err := tx.ListPaymentSplits(p.PaymentID)
		if err != nil {
			return err
		}
		now := time.Now()
		for i := range splits {
			ps := &splits[i]
			if ps.Paid || !ps.Locked {
				continue
			}
			ps.Locked = false
			if err := tx.UpdatePaymentSplit(ps); err != nil {
				return err
			}
			if err := tx.AppendAudit(&dealmodel.SplitAuditLog{
				ID: idgen.New(), PaymentSplitID: ps.PSplitID, PaymentID: p.PaymentID, DealID: p.DealID,
				ChangeType: dealmodel.ChangeLifecycleTransition,
				OldTotal:   ps.Total, NewTotal: ps.Total,
				Reason: "revert", ChangedBy: cmd.ActorID, ChangedAt: now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	invalidateDeal(p.DealID)
	_ = mq.PublishPaymentLifecycle(mq.PaymentLifecycleEvent{
		PaymentID: p.PaymentID, DealID: p.DealID, Transition: "reverted",
		Actor: cmd.ActorID, OccurredAt: time.Now().Unix(),
	})
	return nil
}

// Disburse records that money moved: sum-checks the splits, creates the
// payment in the external accounting system, then flips the payment terminal.
// An accounting failure leaves the payment approved and untouched.
func (s *PaymentService) Disburse(cmd dto.DisbursePaymentCmd) (*dealmodel.Payment, error) {
	p, err := s.loadPayment(cmd.PaymentID)
	if err != nil {
		return nil, err
	}
	if err := ledger.CanDisburse(p); err != nil {
		return nil, err
	}

	deal, err := s.st.GetDeal(p.DealID)
	if err != nil {
		return nil, err
	}
	if deal == nil {
		return nil, constant.NewErrorf(constant.CodeDealNotFound, "deal %d", p.DealID)
	}
	splits, err := s.st.ListPaymentSplits(p.PaymentID)
	if err != nil {
		return nil, err
	}

	expected := ledger.ExpectedDistributable(deal, p)
	total := ledger.SumTotals(splits)
	if !ledger.WithinTolerance(total, expected, ledger.AmountTolerance) {
		return nil, constant.NewErrorf(constant.CodeSplitOutOfBalance,
			"payment %d splits total %s, expected %s", p.PaymentID, total.StringFixed(2), expected.StringFixed(2))
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(config.C.Accounting.TimeoutSec+1)*time.Second*time.Duration(maxInt(config.C.Accounting.MaxRetries, 1)))
	defer cancel()
	syncID, err := s.acct.CreateDisbursement(ctx, accounting.DisbursementReq{
		PaymentID: p.PaymentID,
		DealID:    p.DealID,
		Amount:    p.Amount,
		Currency:  deal.Currency,
		Memo:      fmt.Sprintf("%s payment %d/%d", deal.Name, p.Seq, deal.NumberOfPayments),
	})
	if err != nil {
		notify.Alert("disbursement sync failed",
			fmt.Sprintf("payment %d (deal %d): %v", p.PaymentID, p.DealID, err))
		return nil, constant.NewErrorf(constant.CodeExternalSync, "payment %d: %v", p.PaymentID, err)
	}

	err = s.st.Tx(func(tx store.Store) error {
		now := time.Now()
		p.Status = dealmodel.PaymentDisbursed
		p.DisbursedAt = &now
		p.DisbursedBy = &cmd.ActorID
		p.AccountingSyncID = &syncID
		if err := tx.UpdatePayment(p); err != nil {
			return err
		}
		return s.lockSplits(tx, p, "disburse", cmd.ActorID)
	})
	if err != nil {
		return nil, err
	}

	invalidateDeal(p.DealID)
	_ = mq.PublishPaymentLifecycle(mq.PaymentLifecycleEvent{
		PaymentID: p.PaymentID, DealID: p.DealID, Transition: "disbursed",
		Actor: cmd.ActorID, SyncID: syncID, OccurredAt: time.Now().Unix(),
	})
	if logger.App != nil {
		logger.App.Infof("payment %d disbursed, sync id %s", p.PaymentID, syncID)
	}
	return p, nil
}

// lockSplits freezes every split of the payment, auditing the transition.
// Locking an already locked row is a no-op (disburse after approve).
func (s *PaymentService) lockSplits(tx store.Store, p *dealmodel.Payment, reason string, actorID uint64) error {
	splits, err := tx.ListPaymentSplits(p.PaymentID)
	if err != nil {
		return err
	}
	now := time.Now()
	for i := range splits {
		ps := &splits[i]
		if !ps.Locked {
			ps.Locked = true
			if err := tx.UpdatePaymentSplit(ps); err != nil {
				return err
			}
		}
		if err := tx.AppendAudit(&dealmodel.SplitAuditLog{
			ID: idgen.New(), PaymentSplitID: ps.PSplitID, PaymentID: p.PaymentID, DealID: p.DealID,
			ChangeType: dealmodel.ChangeLifecycleTransition,
			OldTotal:   ps.Total, NewTotal: ps.Total,
			Reason: reason, ChangedBy: actorID, ChangedAt: now,
		}); err != nil {
			return err
		}
	}
	return nil
}

// OverrideSplitAmount pins one split's total and exempts it (and by the
// whole-payment skip rule, its siblings) from the synchronizer.
func (s *PaymentService) OverrideSplitAmount(cmd dto.OverrideSplitAmountCmd) (*dealmodel.PaymentSplit, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(cmd.Amount))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) || strings.TrimSpace(cmd.Reason) == "" {
		return nil, constant.NewErrorf(constant.CodeOverrideInvalid, "split %d", cmd.SplitID)
	}

	ps, err := s.st.GetPaymentSplit(cmd.SplitID)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		return nil, constant.NewErrorf(constant.CodeSplitNotFound, "split %d", cmd.SplitID)
	}
	p, err := s.loadPayment(ps.PaymentID)
	if err != nil {
		return nil, err
	}
	if ps.Locked || p.Status == dealmodel.PaymentDisbursed {
		return nil, constant.NewErrorf(constant.CodeSplitLocked, "split %d on payment %d", ps.PSplitID, p.PaymentID)
	}

	oldTotal := ps.Total
	now := time.Now()
	reason := strings.TrimSpace(cmd.Reason)
	ps.ManualOverride = true
	ps.OverrideReason = &reason
	ps.OverriddenBy = &cmd.ActorID
	ps.OverriddenAt = &now
	ps.Total = amount

	err = s.st.Tx(func(tx store.Store) error {
		if err := tx.UpdatePaymentSplit(ps); err != nil {
			return err
		}
		return tx.AppendAudit(&dealmodel.SplitAuditLog{
			ID: idgen.New(), PaymentSplitID: ps.PSplitID, PaymentID: p.PaymentID, DealID: p.DealID,
			ChangeType: dealmodel.ChangeManualOverride,
			OldTotal:   oldTotal, NewTotal: amount,
			Reason: reason, ChangedBy: cmd.ActorID, ChangedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	invalidateDeal(p.DealID)
	return ps, nil
}

// ClearSplitOverride lifts a manual override so the split rejoins auto-sync.
// Allowed only while the owning payment is still draft.
func (s *PaymentService) ClearSplitOverride(cmd dto.ClearSplitOverrideCmd) (dto.SyncSummary, error) {
	var sum dto.SyncSummary

	ps, err := s.st.GetPaymentSplit(cmd.SplitID)
	if err != nil {
		return sum, err
	}
	if ps == nil {
		return sum, constant.NewErrorf(constant.CodeSplitNotFound, "split %d", cmd.SplitID)
	}
	p, err := s.loadPayment(ps.PaymentID)
	if err != nil {
		return sum, err
	}
	if p.Status != dealmodel.PaymentDraft {
		return sum, constant.NewErrorf(constant.CodeInvalidState,
			"clear override requires draft, payment %d is %s", p.PaymentID, dealmodel.StatusName(p.Status))
	}
	if !ps.ManualOverride {
		return s.sync.AutoSyncPaymentSplits(p.DealID, cmd.ActorID)
	}

	ps.ManualOverride = false
	ps.OverrideReason = nil
	ps.OverriddenBy = nil
	ps.OverriddenAt = nil
	if err := s.st.UpdatePaymentSplit(ps); err != nil {
		return sum, err
	}
	invalidateDeal(p.DealID)

	return s.sync.AutoSyncPaymentSplits(p.DealID, cmd.ActorID)
}

// TogglePaid records that a broker's check was cut. Marking paid permanently
// locks the split; unmarking a paid split is an administrative correction this
// surface refuses.
func (s *PaymentService) TogglePaid(cmd dto.TogglePaidCmd) (*dealmodel.PaymentSplit, error) {
	ps, err := s.st.GetPaymentSplit(cmd.SplitID)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		return nil, constant.NewErrorf(constant.CodeSplitNotFound, "split %d", cmd.SplitID)
	}
	p, err := s.loadPayment(ps.PaymentID)
	if err != nil {
		return nil, err
	}

	if !cmd.Paid {
		if ps.Paid {
			return nil, constant.NewErrorf(constant.CodeSplitLocked, "split %d already paid", ps.PSplitID)
		}
		ps.PaidAt = nil
		if err := s.st.UpdatePaymentSplit(ps); err != nil {
			return nil, err
		}
		return ps, nil
	}

	if p.Status == dealmodel.PaymentDisbursed {
		return nil, constant.NewErrorf(constant.CodeSplitLocked, "payment %d already disbursed", p.PaymentID)
	}
	if ps.Paid {
		return ps, nil
	}
	when := time.Now()
	if cmd.PaidDate != nil {
		when = *cmd.PaidDate
	}
	ps.Paid = true
	ps.PaidAt = &when
	ps.Locked = true
	if err := s.st.UpdatePaymentSplit(ps); err != nil {
		return nil, err
	}
	invalidateDeal(p.DealID)
	return ps, nil
}

// ToggleReferralPaid tracks the referral payee's share independently of broker
// splits; it stays mutable even after disbursement.
func (s *PaymentService) ToggleReferralPaid(cmd dto.ToggleReferralPaidCmd) (*dealmodel.Payment, error) {
	p, err := s.loadPayment(cmd.PaymentID)
	if err != nil {
		return nil, err
	}

	if cmd.Paid {
		when := time.Now()
		if cmd.PaidDate != nil {
			when = *cmd.PaidDate
		}
		p.ReferralPaid = true
		p.ReferralPaidAt = &when
	} else {
		p.ReferralPaid = false
		p.ReferralPaidAt = nil
	}
	if err := s.st.UpdatePayment(p); err != nil {
		return nil, err
	}
	invalidateDeal(p.DealID)
	return p, nil
}

// ToggleReceived flags that the client's money arrived for this payment.
func (s *PaymentService) ToggleReceived(cmd dto.ToggleReceivedCmd) (*dealmodel.Payment, error) {
	p, err := s.loadPayment(cmd.PaymentID)
	if err != nil {
		return nil, err
	}
	if p.Status == dealmodel.PaymentDisbursed {
		return nil, constant.NewErrorf(constant.CodeInvalidState, "payment %d is disbursed", p.PaymentID)
	}

	if cmd.Received {
		when := time.Now()
		if cmd.ReceivedDate != nil {
			when = *cmd.ReceivedDate
		}
		p.Received = true
		p.ReceivedAt = &when
	} else {
		p.Received = false
		p.ReceivedAt = nil
	}
	if err := s.st.UpdatePayment(p); err != nil {
		return nil, err
	}
	invalidateDeal(p.DealID)
	return p, nil
}

// OverridePaymentAmount replaces a draft payment's scheduled amount and
// re-syncs the deal so splits follow the new proportion.
func (s *PaymentService) OverridePaymentAmount(cmd dto.OverridePaymentAmountCmd) (dto.SyncSummary, error) {
	var sum dto.SyncSummary

	amount, err := decimal.NewFromString(strings.TrimSpace(cmd.Amount))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) || strings.TrimSpace(cmd.Reason) == "" {
		return sum, constant.NewErrorf(constant.CodeOverrideInvalid, "payment %d", cmd.PaymentID)
	}

	p, err := s.loadPayment(cmd.PaymentID)
	if err != nil {
		return sum, err
	}
	if p.Status != dealmodel.PaymentDraft {
		return sum, constant.NewErrorf(constant.CodePaymentNotDraft, "payment %d is %s", p.PaymentID, dealmodel.StatusName(p.Status))
	}

	now := time.Now()
	reason := strings.TrimSpace(cmd.Reason)
	p.Amount = amount
	p.AmountOverridden = true
	p.OverrideReason = &reason
	p.OverriddenBy = &cmd.ActorID
	p.OverriddenAt = &now
	if err := s.st.UpdatePayment(p); err != nil {
		return sum, err
	}
	invalidateDeal(p.DealID)

	return s.sync.AutoSyncPaymentSplits(p.DealID, cmd.ActorID)
}

// DeletePayment removes a draft payment and its splits. Approved or disbursed
// payments are never physically deleted.
func (s *PaymentService) DeletePayment(cmd dto.DeletePaymentCmd) error {
	p, err := s.loadPayment(cmd.PaymentID)
	if err != nil {
		return err
	}
	if p.Status != dealmodel.PaymentDraft {
		return constant.NewErrorf(constant.CodeInvalidState,
			"delete requires draft, payment %d is %s", p.PaymentID, dealmodel.StatusName(p.Status))
	}

	err = s.st.Tx(func(tx store.Store) error {
		if err := tx.DeleteSplitsByPayment(p.PaymentID); err != nil {
			return err
		}
		return tx.DeletePayment(p.PaymentID)
	})
	if err != nil {
		return err
	}
	invalidateDeal(p.DealID)
	return nil
}

// GetPayment returns the payment with its splits for display.
func (s *PaymentService) GetPayment(paymentID uint64) (dto.PaymentVO, error) {
	var vo dto.PaymentVO

	p, err := s.loadPayment(paymentID)
	if err != nil {
		return vo, err
	}
	splits, err := s.st.ListPaymentSplits(paymentID)
	if err != nil {
		return vo, err
	}

	_ = copier.Copy(&vo, p)
	vo.Status = dealmodel.StatusName(p.Status)
	for i := range splits {
		var svo dto.PaymentSplitVO
		_ = copier.Copy(&svo, &splits[i])
		vo.Splits = append(vo.Splits, svo)
	}
	return vo, nil
}

// ListDealPayments returns all payments of a deal with splits attached.
func (s *PaymentService) ListDealPayments(dealID uint64) ([]dto.PaymentVO, error) {
	payments, err := s.st.ListPayments(dealID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentVO, 0, len(payments))
	for i := range payments {
		vo, err := s.GetPayment(payments[i].PaymentID)
		if err != nil {
			return nil, err
		}
		out = append(out, vo)
	}
	return out, nil
}

// ListSplitAudit returns the audit trail for one payment split, newest first.
func (s *PaymentService) ListSplitAudit(psplitID uint64) ([]dealmodel.SplitAuditLog, error) {
	return s.st.ListAuditBySplit(psplitID, config.C.Audit.HistoryMonths)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
