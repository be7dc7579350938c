package service

import (
	"testing"

	"cre-commission-api/internal/constant"
	"cre-commission-api/internal/dto"
	dealmodel "cre-commission-api/internal/model/deal"
)

func TestAddBrokerDuplicate(t *testing.T) {
	st := newMemStore()
	dealID, _ := seedDeal(t, st)

	svc := NewCommissionServiceWith(st)
	if _, err := svc.AddBroker(dto.AddBrokerCmd{DealID: dealID, BrokerID: 7, ActorID: testActor}); err != nil {
		t.Fatalf("AddBroker: %v", err)
	}
	_, err := svc.AddBroker(dto.AddBrokerCmd{DealID: dealID, BrokerID: 7, ActorID: testActor})
	wantCode(t, err, constant.CodeDuplicateBroker)
}

func TestAddBrokerUnknownDeal(t *testing.T) {
	svc := NewCommissionServiceWith(newMemStore())
	_, err := svc.AddBroker(dto.AddBrokerCmd{DealID: 404, BrokerID: 7, ActorID: testActor})
	wantCode(t, err, constant.CodeDealNotFound)
}

func TestSetSplitPercentage(t *testing.T) {
	st := newMemStore()
	dealID, _ := seedDeal(t, st)
	svc := NewCommissionServiceWith(st)
	if _, err := svc.AddBroker(dto.AddBrokerCmd{DealID: dealID, BrokerID: 7, ActorID: testActor}); err != nil {
		t.Fatalf("AddBroker: %v", err)
	}

	res, err := svc.SetSplitPercentage(dto.SetSplitPercentageCmd{
		DealID: dealID, BrokerID: 7, Pool: "origination", Percent: "60", ActorID: testActor,
	})
	if err != nil {
		t.Fatalf("SetSplitPercentage: %v", err)
	}
	// 60% of the 10k origination base
	if !res.Split.OriginationAmt.Equal(dec("6000")) {
		t.Errorf("origination amt = %s, want 6000", res.Split.OriginationAmt)
	}
	if !res.Split.Total.Equal(dec("6000")) {
		t.Errorf("total = %s, want 6000", res.Split.Total)
	}
	// all three pools short of 100 -> three warnings
	if len(res.Warnings) != 3 {
		t.Errorf("warnings = %v, want one per pool", res.Warnings)
	}

	_, err = svc.SetSplitPercentage(dto.SetSplitPercentageCmd{
		DealID: dealID, BrokerID: 99, Pool: "origination", Percent: "40", ActorID: testActor,
	})
	wantCode(t, err, constant.CodeBrokerNotFound)

	_, err = svc.SetSplitPercentage(dto.SetSplitPercentageCmd{
		DealID: dealID, BrokerID: 7, Pool: "origination", Percent: "sixty", ActorID: testActor,
	})
	wantCode(t, err, constant.CodeInvalidPercentage)

	_, err = svc.SetSplitPercentage(dto.SetSplitPercentageCmd{
		DealID: dealID, BrokerID: 7, Pool: "bonus", Percent: "10", ActorID: testActor,
	})
	wantCode(t, err, constant.CodePoolInvalid)
}

// Percentage edits transiently violating the 100% sum must persist; the
// imbalance only surfaces through validateTotals.
func TestImbalanceIsWarningNotError(t *testing.T) {
	st := newMemStore()
	dealID, _ := seedDeal(t, st)
	svc := NewCommissionServiceWith(st)
	for _, b := range []uint64{7, 8} {
		if _, err := svc.AddBroker(dto.AddBrokerCmd{DealID: dealID, BrokerID: b, ActorID: testActor}); err != nil {
			t.Fatalf("AddBroker: %v", err)
		}
	}
	if _, err := svc.SetSplitPercentage(dto.SetSplitPercentageCmd{
		DealID: dealID, BrokerID: 7, Pool: "deal", Percent: "70", ActorID: testActor,
	}); err != nil {
		t.Fatalf("70%% edit must persist: %v", err)
	}

	report, err := svc.ValidateTotals(dealID)
	if err != nil {
		t.Fatalf("ValidateTotals: %v", err)
	}
	if report.Balanced {
		t.Fatal("deal pool at 70% must be flagged")
	}

	if _, err := svc.SetSplitPercentage(dto.SetSplitPercentageCmd{
		DealID: dealID, BrokerID: 8, Pool: "deal", Percent: "30", ActorID: testActor,
	}); err != nil {
		t.Fatalf("SetSplitPercentage: %v", err)
	}
	report, _ = svc.ValidateTotals(dealID)
	for _, pt := range report.Pools {
		if pt.Pool == "deal" && !pt.Balanced {
			t.Errorf("deal pool at 100%% still flagged: %+v", pt)
		}
	}
}

func TestRemoveBrokerCascades(t *testing.T) {
	st := newMemStore()
	dealID, payments := seedDeal(t, st)
	addSoleBroker(t, st, dealID)

	svc := NewCommissionServiceWith(st)
	if _, err := svc.RemoveBroker(dto.RemoveBrokerCmd{DealID: dealID, BrokerID: 7, ActorID: testActor}); err != nil {
		t.Fatalf("RemoveBroker: %v", err)
	}

	if cs, _ := st.GetCommissionSplit(dealID, 7); cs != nil {
		t.Error("commission split still present")
	}
	for _, p := range payments {
		if splits, _ := st.ListPaymentSplits(p.PaymentID); len(splits) != 0 {
			t.Errorf("payment %d still has broker splits", p.Seq)
		}
	}

	_, err := svc.RemoveBroker(dto.RemoveBrokerCmd{DealID: dealID, BrokerID: 7, ActorID: testActor})
	wantCode(t, err, constant.CodeBrokerNotFound)
}

// Unpaid splits on an approved payment are locked; removing the broker must
// leave them in place and only cascade through the draft payments.
func TestRemoveBrokerKeepsLockedSplits(t *testing.T) {
	st := newMemStore()
	dealID, payments := seedDeal(t, st)
	addSoleBroker(t, st, dealID)

	ps := NewPaymentServiceWith(st, nil)
	if err := ps.Approve(dto.ApprovePaymentCmd{PaymentID: payments[0].PaymentID, ActorID: testActor}); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	svc := NewCommissionServiceWith(st)
	if _, err := svc.RemoveBroker(dto.RemoveBrokerCmd{DealID: dealID, BrokerID: 7, ActorID: testActor}); err != nil {
		t.Fatalf("RemoveBroker: %v", err)
	}

	if splits, _ := st.ListPaymentSplits(payments[0].PaymentID); len(splits) != 1 {
		t.Fatalf("approved payment: want its locked split kept, got %d", len(splits))
	}
	for _, p := range payments[1:] {
		if splits, _ := st.ListPaymentSplits(p.PaymentID); len(splits) != 0 {
			t.Errorf("draft payment %d still has broker splits", p.Seq)
		}
	}
}

func TestCommissionChangeAudited(t *testing.T) {
	st := newMemStore()
	dealID, _ := seedDeal(t, st)
	svc := NewCommissionServiceWith(st)
	if _, err := svc.AddBroker(dto.AddBrokerCmd{DealID: dealID, BrokerID: 7, ActorID: testActor}); err != nil {
		t.Fatalf("AddBroker: %v", err)
	}
	if _, err := svc.SetSplitPercentage(dto.SetSplitPercentageCmd{
		DealID: dealID, BrokerID: 7, Pool: "site", Percent: "100", ActorID: testActor,
	}); err != nil {
		t.Fatalf("SetSplitPercentage: %v", err)
	}

	if st.auditCount(dealmodel.ChangeCommissionChange) != 1 {
		t.Error("percentage edit must append a commission_change audit row")
	}
}
