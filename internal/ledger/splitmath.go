package ledger

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"cre-commission-api/internal/constant"
	dealmodel "cre-commission-api/internal/model/deal"
)

// Pool is one of the three fee categories split independently per deal.
type Pool string

const (
	PoolOrigination Pool = "origination"
	PoolSite        Pool = "site"
	PoolDeal        Pool = "deal"
)

var hundred = decimal.NewFromInt(100)

// PercentTolerance is how far a pool sum may drift from 100 and still count
// as balanced.
var PercentTolerance = decimal.NewFromFloat(0.1)

// AmountTolerance bounds the split-sum check per payment (one cent).
var AmountTolerance = decimal.NewFromFloat(0.01)

func ParsePool(s string) (Pool, error) {
	switch Pool(strings.ToLower(strings.TrimSpace(s))) {
	case PoolOrigination:
		return PoolOrigination, nil
	case PoolSite:
		return PoolSite, nil
	case PoolDeal:
		return PoolDeal, nil
	}
	return "", constant.NewErrorf(constant.CodePoolInvalid, "%q", s)
}

// ParsePercent parses a raw percentage. Non-numeric input is rejected,
// out-of-range values are clamped to [0, 100].
func ParsePercent(raw string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, constant.NewErrorf(constant.CodeInvalidPercentage, "%q", raw)
	}
	return ClampPercent(p), nil
}

func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// Allocate computes pct percent of base. Intermediate results stay unrounded;
// rounding is a display concern.
func Allocate(pct, base decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}

func PoolBase(d *dealmodel.Deal, pool Pool) decimal.Decimal {
	switch pool {
	case PoolOrigination:
		return d.OriginationBase
	case PoolSite:
		return d.SiteBase
	case PoolDeal:
		return d.DealBase
	}
	return decimal.Zero
}

// PaymentPoolBase scales a deal pool base down to one payment's share.
// Multiply before dividing: dividing first loses exactness on non-terminating
// shares.
func PaymentPoolBase(dealPoolBase, paymentAmount, dealFee decimal.Decimal) decimal.Decimal {
	if dealFee.IsZero() {
		return decimal.Zero
	}
	return dealPoolBase.Mul(paymentAmount).Div(dealFee)
}

// ReferralShare apportions the deal referral fee to one payment.
func ReferralShare(d *dealmodel.Deal, paymentAmount decimal.Decimal) decimal.Decimal {
	if d.ReferralFee == nil || d.ReferralFee.IsZero() || d.Fee.IsZero() {
		return decimal.Zero
	}
	return d.ReferralFee.Mul(paymentAmount).Div(d.Fee)
}

// Recompute refreshes a commission split's dollar amounts and total from its
// stored percentages and the deal pool bases.
func Recompute(d *dealmodel.Deal, cs *dealmodel.CommissionSplit) {
	cs.OriginationAmt = Allocate(cs.OriginationPct, d.OriginationBase)
	cs.SiteAmt = Allocate(cs.SitePct, d.SiteBase)
	cs.DealAmt = Allocate(cs.DealPct, d.DealBase)
	cs.Total = cs.OriginationAmt.Add(cs.SiteAmt).Add(cs.DealAmt)
}

// BuildPaymentSplits derives the payment splits a draft payment should carry
// given the deal's current commission splits. IDs and timestamps are left for
// the caller; output order is deterministic (by broker) so repeated builds
// compare equal.
func BuildPaymentSplits(d *dealmodel.Deal, p *dealmodel.Payment, splits []dealmodel.CommissionSplit) []dealmodel.PaymentSplit {
	orig := PaymentPoolBase(d.OriginationBase, p.Amount, d.Fee)
	site := PaymentPoolBase(d.SiteBase, p.Amount, d.Fee)
	deal := PaymentPoolBase(d.DealBase, p.Amount, d.Fee)

	out := make([]dealmodel.PaymentSplit, 0, len(splits))
	for _, cs := range splits {
		ps := dealmodel.PaymentSplit{
			PaymentID:      p.PaymentID,
			DealID:         d.DealID,
			BrokerID:       cs.BrokerID,
			OriginationAmt: Allocate(cs.OriginationPct, orig),
			SiteAmt:        Allocate(cs.SitePct, site),
			DealAmt:        Allocate(cs.DealPct, deal),
		}
		ps.Total = ps.OriginationAmt.Add(ps.SiteAmt).Add(ps.DealAmt)
		out = append(out, ps)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BrokerID < out[j].BrokerID })
	return out
}

// SameAllocation reports whether existing rows already carry exactly the
// desired per-broker amounts. Used to keep the synchronizer idempotent: equal
// allocations mean no delete/reinsert cycle.
func SameAllocation(existing, desired []dealmodel.PaymentSplit) bool {
	if len(existing) != len(desired) {
		return false
	}
	byBroker := make(map[uint64]dealmodel.PaymentSplit, len(existing))
	for _, ps := range existing {
		byBroker[ps.BrokerID] = ps
	}
	for _, want := range desired {
		have, ok := byBroker[want.BrokerID]
		if !ok {
			return false
		}
		if !have.OriginationAmt.Equal(want.OriginationAmt) ||
			!have.SiteAmt.Equal(want.SiteAmt) ||
			!have.DealAmt.Equal(want.DealAmt) ||
			!have.Total.Equal(want.Total) {
			return false
		}
	}
	return true
}

// ExpectedDistributable is the amount the broker splits of one payment must
// sum to: the three payment pool bases combined. Pool bases are AGCI figures,
// so the referral fee is already out of them.
func ExpectedDistributable(d *dealmodel.Deal, p *dealmodel.Payment) decimal.Decimal {
	return PaymentPoolBase(d.OriginationBase, p.Amount, d.Fee).
		Add(PaymentPoolBase(d.SiteBase, p.Amount, d.Fee)).
		Add(PaymentPoolBase(d.DealBase, p.Amount, d.Fee))
}

func SumTotals(splits []dealmodel.PaymentSplit) decimal.Decimal {
	sum := decimal.Zero
	for _, ps := range splits {
		sum = sum.Add(ps.Total)
	}
	return sum
}

// WithinTolerance reports |a-b| <= tol.
func WithinTolerance(a, b, tol decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tol)
}

// RoundCents rounds for display/export. Storage keeps full precision.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
