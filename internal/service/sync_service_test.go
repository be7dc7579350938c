package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"cre-commission-api/internal/dto"
	"cre-commission-api/internal/ledger"
	dealmodel "cre-commission-api/internal/model/deal"
)

const testActor uint64 = 42

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// seedDeal creates a 60k deal with 40k of pool bases and 3 payments of 20k.
func seedDeal(t *testing.T, st *memStore) (uint64, []dealmodel.Payment) {
	t.Helper()
	ds := NewDealServiceWith(st)
	vo, err := ds.CreateDeal(dto.CreateDealCmd{
		Name:             "100 Main St",
		Fee:              "60000",
		OriginationBase:  "10000",
		SiteBase:         "10000",
		DealBase:         "20000",
		NumberOfPayments: 3,
		ActorID:          testActor,
	})
	if err != nil {
		t.Fatalf("CreateDeal: %v", err)
	}
	payments, err := st.ListPayments(vo.DealID)
	if err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if len(payments) != 3 {
		t.Fatalf("want 3 payments, got %d", len(payments))
	}
	return vo.DealID, payments
}

// addSoleBroker puts one broker at 100% of every pool and returns their id.
func addSoleBroker(t *testing.T, st *memStore, dealID uint64) uint64 {
	t.Helper()
	cs := NewCommissionServiceWith(st)
	const brokerID uint64 = 7
	if _, err := cs.AddBroker(dto.AddBrokerCmd{DealID: dealID, BrokerID: brokerID, ActorID: testActor}); err != nil {
		t.Fatalf("AddBroker: %v", err)
	}
	for _, pool := range []string{"origination", "site", "deal"} {
		_, err := cs.SetSplitPercentage(dto.SetSplitPercentageCmd{
			DealID: dealID, BrokerID: brokerID, Pool: pool, Percent: "100", ActorID: testActor,
		})
		if err != nil {
			t.Fatalf("SetSplitPercentage(%s): %v", pool, err)
		}
	}
	return brokerID
}

func TestAutoSyncGeneratesSplits(t *testing.T) {
	st := newMemStore()
	dealID, payments := seedDeal(t, st)
	addSoleBroker(t, st, dealID)

	// each 20k payment carries half its deal-fee share of the 40k pool bases
	want := dec("13333.33")
	for _, p := range payments {
		splits, _ := st.ListPaymentSplits(p.PaymentID)
		if len(splits) != 1 {
			t.Fatalf("payment %d: want 1 split, got %d", p.Seq, len(splits))
		}
		got := ledger.RoundCents(splits[0].Total)
		if !ledger.WithinTolerance(got, want, ledger.AmountTolerance) {
			t.Errorf("payment %d split total = %s, want %s +-0.01", p.Seq, got, want)
		}
	}
}

func TestAutoSyncIdempotent(t *testing.T) {
	st := newMemStore()
	dealID, payments := seedDeal(t, st)
	addSoleBroker(t, st, dealID)

	before := make(map[uint64]uint64)
	for _, p := range payments {
		splits, _ := st.ListPaymentSplits(p.PaymentID)
		before[p.PaymentID] = splits[0].PSplitID
	}

	sum, err := NewSyncServiceWith(st).AutoSyncPaymentSplits(dealID, testActor)
	if err != nil {
		t.Fatalf("AutoSyncPaymentSplits: %v", err)
	}
	if sum.Updated != 0 || sum.Unchanged != 3 {
		t.Errorf("second run must rewrite nothing: %+v", sum)
	}
	for _, p := range payments {
		splits, _ := st.ListPaymentSplits(p.PaymentID)
		if splits[0].PSplitID != before[p.PaymentID] {
			t.Errorf("payment %d split row replaced on a no-op sync", p.Seq)
		}
	}
}

func TestAutoSyncSkipsNonDraft(t *testing.T) {
	st := newMemStore()
	dealID, payments := seedDeal(t, st)
	addSoleBroker(t, st, dealID)

	ps := NewPaymentServiceWith(st, nil)
	if err := ps.Approve(dto.ApprovePaymentCmd{PaymentID: payments[0].PaymentID, ActorID: testActor}); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	sum, err := NewSyncServiceWith(st).AutoSyncPaymentSplits(dealID, testActor)
	if err != nil {
		t.Fatalf("AutoSyncPaymentSplits: %v", err)
	}
	if len(sum.Skipped) != 1 || sum.Skipped[0].PaymentID != payments[0].PaymentID || sum.Skipped[0].Reason != dto.SkipNotDraft {
		t.Errorf("approved payment must be skipped as %q: %+v", dto.SkipNotDraft, sum.Skipped)
	}
	if sum.Unchanged != 2 {
		t.Errorf("remaining draft payments unchanged = %d, want 2", sum.Unchanged)
	}
}

// One overridden split shields the whole payment from the synchronizer, so a
// manual adjustment for one broker never gets half-merged with fresh numbers
// for the others.
func TestAutoSyncSkipsOverriddenPaymentWhole(t *testing.T) {
	st := newMemStore()
	dealID, payments := seedDeal(t, st)
	addSoleBroker(t, st, dealID)

	// second broker so the payment has a split the override does not touch
	cs := NewCommissionServiceWith(st)
	if _, err := cs.AddBroker(dto.AddBrokerCmd{DealID: dealID, BrokerID: 8, ActorID: testActor}); err != nil {
		t.Fatalf("AddBroker: %v", err)
	}

	target, _ := st.ListPaymentSplits(payments[0].PaymentID)
	psvc := NewPaymentServiceWith(st, nil)
	if _, err := psvc.OverrideSplitAmount(dto.OverrideSplitAmountCmd{
		SplitID: target[0].PSplitID, Amount: "9999", Reason: "negotiated bonus", ActorID: testActor,
	}); err != nil {
		t.Fatalf("OverrideSplitAmount: %v", err)
	}

	// change percentages: payment 1 must keep its override and its siblings
	if _, err := cs.SetSplitPercentage(dto.SetSplitPercentageCmd{
		DealID: dealID, BrokerID: 7, Pool: "deal", Percent: "80", ActorID: testActor,
	}); err != nil {
		t.Fatalf("SetSplitPercentage: %v", err)
	}

	sum, err := NewSyncServiceWith(st).AutoSyncPaymentSplits(dealID, testActor)
	if err != nil {
		t.Fatalf("AutoSyncPaymentSplits: %v", err)
	}
	found := false
	for _, sk := range sum.Skipped {
		if sk.PaymentID == payments[0].PaymentID && sk.Reason == dto.SkipLockedOverride {
			found = true
		}
	}
	if !found {
		t.Fatalf("overridden payment must be skipped whole: %+v", sum)
	}

	after, _ := st.GetPaymentSplit(target[0].PSplitID)
	if after == nil || !after.Total.Equal(dec("9999")) {
		t.Error("override value must survive subsequent syncs")
	}
}

func TestAutoSyncAuditsEveryRegeneration(t *testing.T) {
	st := newMemStore()
	dealID, _ := seedDeal(t, st)
	addSoleBroker(t, st, dealID)

	if st.auditCount(dealmodel.ChangeAutoSync) == 0 {
		t.Error("auto-sync must append auto_sync audit rows")
	}
}
