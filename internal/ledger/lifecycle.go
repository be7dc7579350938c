package ledger

import (
	"cre-commission-api/internal/constant"
	dealmodel "cre-commission-api/internal/model/deal"
)

// Lifecycle guards. draft -> approved -> disbursed; revert walks approved back
// to draft only while the payment has not been synced to accounting.

func CanApprove(p *dealmodel.Payment) error {
	if p.Status != dealmodel.PaymentDraft {
		return constant.NewErrorf(constant.CodeInvalidState, "approve requires draft, payment %d is %s", p.PaymentID, dealmodel.StatusName(p.Status))
	}
	return nil
}

func CanRevert(p *dealmodel.Payment) error {
	if p.Status != dealmodel.PaymentApproved {
		return constant.NewErrorf(constant.CodeInvalidState, "revert requires approved, payment %d is %s", p.PaymentID, dealmodel.StatusName(p.Status))
	}
	if p.Synced() {
		return constant.NewErrorf(constant.CodePaymentSynced, "payment %d", p.PaymentID)
	}
	return nil
}

func CanDisburse(p *dealmodel.Payment) error {
	if p.Status != dealmodel.PaymentApproved {
		return constant.NewErrorf(constant.CodeInvalidState, "disburse requires approved, payment %d is %s", p.PaymentID, dealmodel.StatusName(p.Status))
	}
	return nil
}
