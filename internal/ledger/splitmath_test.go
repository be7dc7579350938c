package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	dealmodel "cre-commission-api/internal/model/deal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testDeal() *dealmodel.Deal {
	return &dealmodel.Deal{
		DealID:           1,
		Fee:              dec("60000"),
		OriginationBase:  dec("10000"),
		SiteBase:         dec("10000"),
		DealBase:         dec("20000"),
		NumberOfPayments: 3,
	}
}

func TestParsePercent(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"50", "50", false},
		{" 33.3333 ", "33.3333", false},
		{"-5", "0", false},    // clamped
		{"150", "100", false}, // clamped
		{"abc", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ParsePercent(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParsePercent(%q): want error, got %s", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePercent(%q): %v", c.in, err)
			continue
		}
		if !got.Equal(dec(c.want)) {
			t.Errorf("ParsePercent(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParsePool(t *testing.T) {
	for _, in := range []string{"origination", "Site", " DEAL "} {
		if _, err := ParsePool(in); err != nil {
			t.Errorf("ParsePool(%q): %v", in, err)
		}
	}
	if _, err := ParsePool("bonus"); err == nil {
		t.Error("ParsePool(bonus): want error")
	}
}

func TestRecompute(t *testing.T) {
	d := testDeal()
	cs := &dealmodel.CommissionSplit{
		DealID: d.DealID, BrokerID: 7,
		OriginationPct: dec("50"), SitePct: dec("25"), DealPct: dec("10"),
	}
	Recompute(d, cs)

	if !cs.OriginationAmt.Equal(dec("5000")) {
		t.Errorf("origination amt = %s, want 5000", cs.OriginationAmt)
	}
	if !cs.SiteAmt.Equal(dec("2500")) {
		t.Errorf("site amt = %s, want 2500", cs.SiteAmt)
	}
	if !cs.DealAmt.Equal(dec("2000")) {
		t.Errorf("deal amt = %s, want 2000", cs.DealAmt)
	}
	if !cs.Total.Equal(dec("9500")) {
		t.Errorf("total = %s, want 9500", cs.Total)
	}
}

func TestZeroFeeDealYieldsZeroShares(t *testing.T) {
	if !PaymentPoolBase(dec("10000"), dec("100"), decimal.Zero).IsZero() {
		t.Error("zero-fee deal must yield zero pool base, not divide")
	}
	fee := dec("500")
	d := &dealmodel.Deal{ReferralFee: &fee}
	if !ReferralShare(d, dec("100")).IsZero() {
		t.Error("zero-fee deal must yield zero referral share")
	}
}

// A sole broker at 100% across all pools receives each payment's full pool
// bases: for a 60k deal with 40k of pool bases and 3 equal payments that is
// 13,333.33 per payment, within a cent.
func TestBuildPaymentSplitsSoleBroker(t *testing.T) {
	d := testDeal()
	p := &dealmodel.Payment{PaymentID: 11, DealID: d.DealID, Amount: dec("20000")}
	splits := []dealmodel.CommissionSplit{{
		DealID: d.DealID, BrokerID: 7,
		OriginationPct: dec("100"), SitePct: dec("100"), DealPct: dec("100"),
	}}

	out := BuildPaymentSplits(d, p, splits)
	if len(out) != 1 {
		t.Fatalf("want 1 split, got %d", len(out))
	}
	want := dec("13333.33")
	if !WithinTolerance(RoundCents(out[0].Total), want, AmountTolerance) {
		t.Errorf("total = %s, want %s +-0.01", out[0].Total, want)
	}
	if !WithinTolerance(out[0].Total, ExpectedDistributable(d, p), AmountTolerance) {
		t.Errorf("sole broker total %s must match distributable %s", out[0].Total, ExpectedDistributable(d, p))
	}
}

func TestBuildPaymentSplitsDeterministicOrder(t *testing.T) {
	d := testDeal()
	p := &dealmodel.Payment{PaymentID: 11, DealID: d.DealID, Amount: dec("20000")}
	splits := []dealmodel.CommissionSplit{
		{DealID: d.DealID, BrokerID: 9, OriginationPct: dec("40"), SitePct: dec("40"), DealPct: dec("40")},
		{DealID: d.DealID, BrokerID: 3, OriginationPct: dec("60"), SitePct: dec("60"), DealPct: dec("60")},
	}

	out := BuildPaymentSplits(d, p, splits)
	if len(out) != 2 || out[0].BrokerID != 3 || out[1].BrokerID != 9 {
		t.Fatalf("splits not ordered by broker: %+v", out)
	}

	total := SumTotals(out)
	if !WithinTolerance(total, ExpectedDistributable(d, p), AmountTolerance) {
		t.Errorf("balanced brokers must sum to distributable: %s vs %s", total, ExpectedDistributable(d, p))
	}
}

// 60% of a 40k origination base scaled to a half-fee payment is 12k.
func TestBuildPaymentSplitsProportional(t *testing.T) {
	d := &dealmodel.Deal{
		DealID:           2,
		Fee:              dec("100000"),
		OriginationBase:  dec("40000"),
		SiteBase:         decimal.Zero,
		DealBase:         decimal.Zero,
		NumberOfPayments: 2,
	}
	p := &dealmodel.Payment{PaymentID: 21, DealID: d.DealID, Amount: dec("50000")}
	splits := []dealmodel.CommissionSplit{{DealID: d.DealID, BrokerID: 5, OriginationPct: dec("60")}}

	out := BuildPaymentSplits(d, p, splits)
	if len(out) != 1 {
		t.Fatalf("want 1 split, got %d", len(out))
	}
	if !out[0].OriginationAmt.Equal(dec("12000")) {
		t.Errorf("origination amt = %s, want 12000", out[0].OriginationAmt)
	}
}

func TestSameAllocation(t *testing.T) {
	d := testDeal()
	p := &dealmodel.Payment{PaymentID: 11, DealID: d.DealID, Amount: dec("20000")}
	splits := []dealmodel.CommissionSplit{
		{DealID: d.DealID, BrokerID: 3, OriginationPct: dec("60"), SitePct: dec("60"), DealPct: dec("60")},
		{DealID: d.DealID, BrokerID: 9, OriginationPct: dec("40"), SitePct: dec("40"), DealPct: dec("40")},
	}

	a := BuildPaymentSplits(d, p, splits)
	b := BuildPaymentSplits(d, p, splits)
	if !SameAllocation(a, b) {
		t.Error("identical builds must compare equal")
	}

	splits[0].DealPct = dec("55")
	c := BuildPaymentSplits(d, p, splits)
	if SameAllocation(a, c) {
		t.Error("changed percentages must not compare equal")
	}

	if SameAllocation(a, a[:1]) {
		t.Error("different lengths must not compare equal")
	}
}

func TestReferralShare(t *testing.T) {
	d := testDeal()
	if !ReferralShare(d, dec("20000")).IsZero() {
		t.Error("no referral fee means zero share")
	}

	fee := dec("3000")
	d.ReferralFee = &fee
	got := ReferralShare(d, dec("20000"))
	if !got.Equal(dec("1000")) {
		t.Errorf("referral share = %s, want 1000", got)
	}
}
