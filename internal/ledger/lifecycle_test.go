package ledger

import (
	"testing"

	"cre-commission-api/internal/constant"
	dealmodel "cre-commission-api/internal/model/deal"
)

func TestCanApprove(t *testing.T) {
	if err := CanApprove(&dealmodel.Payment{Status: dealmodel.PaymentDraft}); err != nil {
		t.Errorf("draft must be approvable: %v", err)
	}
	err := CanApprove(&dealmodel.Payment{Status: dealmodel.PaymentApproved})
	if constant.CodeOf(err) != constant.CodeInvalidState {
		t.Errorf("approving approved: code %d, want %d", constant.CodeOf(err), constant.CodeInvalidState)
	}
	err = CanApprove(&dealmodel.Payment{Status: dealmodel.PaymentDisbursed})
	if constant.CodeOf(err) != constant.CodeInvalidState {
		t.Errorf("approving disbursed: code %d, want %d", constant.CodeOf(err), constant.CodeInvalidState)
	}
}

func TestCanRevert(t *testing.T) {
	if err := CanRevert(&dealmodel.Payment{Status: dealmodel.PaymentApproved}); err != nil {
		t.Errorf("approved must be revertible: %v", err)
	}
	err := CanRevert(&dealmodel.Payment{Status: dealmodel.PaymentDraft})
	if constant.CodeOf(err) != constant.CodeInvalidState {
		t.Errorf("reverting draft: code %d, want %d", constant.CodeOf(err), constant.CodeInvalidState)
	}

	syncID := "ACC-123"
	err = CanRevert(&dealmodel.Payment{Status: dealmodel.PaymentApproved, AccountingSyncID: &syncID})
	if constant.CodeOf(err) != constant.CodePaymentSynced {
		t.Errorf("reverting synced payment: code %d, want %d", constant.CodeOf(err), constant.CodePaymentSynced)
	}
}

func TestCanDisburse(t *testing.T) {
	if err := CanDisburse(&dealmodel.Payment{Status: dealmodel.PaymentApproved}); err != nil {
		t.Errorf("approved must be disbursable: %v", err)
	}
	for _, status := range []int8{dealmodel.PaymentDraft, dealmodel.PaymentDisbursed} {
		err := CanDisburse(&dealmodel.Payment{Status: status})
		if constant.CodeOf(err) != constant.CodeInvalidState {
			t.Errorf("disbursing %s: code %d, want %d", dealmodel.StatusName(status), constant.CodeOf(err), constant.CodeInvalidState)
		}
	}
}
