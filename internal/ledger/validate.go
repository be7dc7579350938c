package ledger

import (
	"github.com/shopspring/decimal"

	dealmodel "cre-commission-api/internal/model/deal"
)

// PoolTotal is one pool's percentage sum across a deal's commission splits.
type PoolTotal struct {
	Pool     Pool            `json:"pool"`
	Sum      decimal.Decimal `json:"sum"`
	Balanced bool            `json:"balanced"` // within PercentTolerance of 100
}

// TotalsReport is the read-time completeness check for a deal. Imbalance is a
// warning, never a write blocker: percentages are edited incrementally across
// several splits.
type TotalsReport struct {
	DealID   uint64      `json:"dealId"`
	Pools    []PoolTotal `json:"pools"`
	Balanced bool        `json:"balanced"`
}

// ValidateTotals sums each pool's percentages across the given splits and
// flags pools whose sum is within tolerance of 100. Pure read.
func ValidateTotals(dealID uint64, splits []dealmodel.CommissionSplit) TotalsReport {
	var orig, site, deal decimal.Decimal
	for _, cs := range splits {
		orig = orig.Add(cs.OriginationPct)
		site = site.Add(cs.SitePct)
		deal = deal.Add(cs.DealPct)
	}
	report := TotalsReport{
		DealID: dealID,
		Pools: []PoolTotal{
			{Pool: PoolOrigination, Sum: orig, Balanced: WithinTolerance(orig, hundred, PercentTolerance)},
			{Pool: PoolSite, Sum: site, Balanced: WithinTolerance(site, hundred, PercentTolerance)},
			{Pool: PoolDeal, Sum: deal, Balanced: WithinTolerance(deal, hundred, PercentTolerance)},
		},
	}
	report.Balanced = report.Pools[0].Balanced && report.Pools[1].Balanced && report.Pools[2].Balanced
	return report
}

// Warnings renders the unbalanced pools of a report as caller-facing strings.
func (r TotalsReport) Warnings() []string {
	var out []string
	for _, pt := range r.Pools {
		if !pt.Balanced {
			out = append(out, string(pt.Pool)+" pool at "+pt.Sum.StringFixed(2)+"%, needs 100%")
		}
	}
	return out
}
