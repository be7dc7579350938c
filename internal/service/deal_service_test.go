package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"cre-commission-api/internal/constant"
	"cre-commission-api/internal/dto"
)

func TestCreateDealSchedulesPayments(t *testing.T) {
	st := newMemStore()
	svc := NewDealServiceWith(st)

	vo, err := svc.CreateDeal(dto.CreateDealCmd{
		Name:             "12 Elm Plaza",
		Fee:              "10000",
		OriginationBase:  "3000",
		SiteBase:         "3000",
		DealBase:         "4000",
		NumberOfPayments: 3,
		ReferralFee:      "600",
		ReferralPayee:    "outside-broker-55",
		ActorID:          testActor,
	})
	if err != nil {
		t.Fatalf("CreateDeal: %v", err)
	}

	payments, _ := st.ListPayments(vo.DealID)
	if len(payments) != 3 {
		t.Fatalf("want 3 payments, got %d", len(payments))
	}

	// 10000/3 rounds to 3333.33; the last payment absorbs the remainder
	if !payments[0].Amount.Equal(dec("3333.33")) || !payments[2].Amount.Equal(dec("3333.34")) {
		t.Errorf("amounts = %s, %s, %s", payments[0].Amount, payments[1].Amount, payments[2].Amount)
	}
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	if !total.Equal(dec("10000")) {
		t.Errorf("schedule sums to %s, want the full fee", total)
	}

	// referral share follows each payment's share of the fee
	if payments[0].ReferralAmount.IsZero() {
		t.Error("referral share missing on payments")
	}
	refTotal := decimal.Zero
	for _, p := range payments {
		refTotal = refTotal.Add(p.ReferralAmount)
	}
	if !refTotal.Round(2).Equal(dec("600")) {
		t.Errorf("referral shares sum to %s, want 600", refTotal)
	}
}

func TestCreateDealValidation(t *testing.T) {
	svc := NewDealServiceWith(newMemStore())
	cases := []struct {
		name string
		cmd  dto.CreateDealCmd
		code int
	}{
		{"zero fee", dto.CreateDealCmd{Name: "x", Fee: "0", OriginationBase: "1", SiteBase: "1", DealBase: "1", NumberOfPayments: 1, ActorID: testActor}, constant.CodeDealAmountError},
		{"bad fee", dto.CreateDealCmd{Name: "x", Fee: "lots", OriginationBase: "1", SiteBase: "1", DealBase: "1", NumberOfPayments: 1, ActorID: testActor}, constant.CodeDealAmountError},
		{"negative base", dto.CreateDealCmd{Name: "x", Fee: "100", OriginationBase: "-1", SiteBase: "1", DealBase: "1", NumberOfPayments: 1, ActorID: testActor}, constant.CodeDealAmountError},
		{"zero payments", dto.CreateDealCmd{Name: "x", Fee: "100", OriginationBase: "1", SiteBase: "1", DealBase: "1", NumberOfPayments: 0, ActorID: testActor}, constant.CodePaymentCountBad},
		{"bad referral", dto.CreateDealCmd{Name: "x", Fee: "100", OriginationBase: "1", SiteBase: "1", DealBase: "1", NumberOfPayments: 1, ReferralFee: "-5", ActorID: testActor}, constant.CodeDealAmountError},
	}
	for _, c := range cases {
		_, err := svc.CreateDeal(c.cmd)
		if constant.CodeOf(err) != c.code {
			t.Errorf("%s: code %d, want %d", c.name, constant.CodeOf(err), c.code)
		}
	}
}

func TestUpdateDealFinancials(t *testing.T) {
	st := newMemStore()
	dealID, _ := seedDeal(t, st)
	addSoleBroker(t, st, dealID)

	svc := NewDealServiceWith(st)
	sum, err := svc.UpdateDealFinancials(dto.UpdateDealFinancialsCmd{
		DealID: dealID, Fee: "90000",
		OriginationBase: "15000", SiteBase: "15000", DealBase: "30000",
		ActorID: testActor,
	})
	if err != nil {
		t.Fatalf("UpdateDealFinancials: %v", err)
	}
	if sum.Updated != 3 {
		t.Errorf("all draft payments must re-sync: %+v", sum)
	}

	after, _ := st.ListPayments(dealID)
	if !after[0].Amount.Equal(dec("30000")) {
		t.Errorf("payment amount = %s, want 30000 after fee change", after[0].Amount)
	}
	cs, _ := st.GetCommissionSplit(dealID, 7)
	// 100% of the new 60k pool bases
	if !cs.Total.Equal(dec("60000")) {
		t.Errorf("commission split total = %s, want 60000", cs.Total)
	}
	splits, _ := st.ListPaymentSplits(after[0].PaymentID)
	// 30k/90k share of 60k bases
	if !splits[0].Total.Round(2).Equal(dec("20000")) {
		t.Errorf("payment split total = %s, want 20000", splits[0].Total)
	}
}

func TestUpdateDealFinancialsLockedByLifecycle(t *testing.T) {
	st := newMemStore()
	dealID, payments := seedDeal(t, st)
	addSoleBroker(t, st, dealID)

	psvc := NewPaymentServiceWith(st, nil)
	if err := psvc.Approve(dto.ApprovePaymentCmd{PaymentID: payments[0].PaymentID, ActorID: testActor}); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	_, err := NewDealServiceWith(st).UpdateDealFinancials(dto.UpdateDealFinancialsCmd{
		DealID: dealID, Fee: "90000",
		OriginationBase: "15000", SiteBase: "15000", DealBase: "30000",
		ActorID: testActor,
	})
	wantCode(t, err, constant.CodeDealLocked)
}

func TestGetDealNotFound(t *testing.T) {
	svc := NewDealServiceWith(newMemStore())
	_, err := svc.GetDeal(404)
	wantCode(t, err, constant.CodeDealNotFound)
}
