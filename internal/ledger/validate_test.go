package ledger

import (
	"testing"

	dealmodel "cre-commission-api/internal/model/deal"
)

func TestValidateTotalsBalanced(t *testing.T) {
	splits := []dealmodel.CommissionSplit{
		{BrokerID: 1, OriginationPct: dec("60"), SitePct: dec("50"), DealPct: dec("33.34")},
		{BrokerID: 2, OriginationPct: dec("40"), SitePct: dec("50"), DealPct: dec("66.66")},
	}
	report := ValidateTotals(1, splits)
	if !report.Balanced {
		t.Fatalf("want balanced, got %+v", report)
	}
	if len(report.Warnings()) != 0 {
		t.Errorf("balanced report must yield no warnings, got %v", report.Warnings())
	}
}

// 33.33 * 3 = 99.99, off by 0.01 which is inside the 0.1 tolerance.
func TestValidateTotalsWithinTolerance(t *testing.T) {
	third := dec("33.33")
	splits := []dealmodel.CommissionSplit{
		{BrokerID: 1, OriginationPct: third, SitePct: third, DealPct: third},
		{BrokerID: 2, OriginationPct: third, SitePct: third, DealPct: third},
		{BrokerID: 3, OriginationPct: third, SitePct: third, DealPct: third},
	}
	report := ValidateTotals(1, splits)
	if !report.Balanced {
		t.Errorf("99.99 per pool is within tolerance, got %+v", report)
	}
}

func TestValidateTotalsImbalanced(t *testing.T) {
	splits := []dealmodel.CommissionSplit{
		{BrokerID: 1, OriginationPct: dec("100"), SitePct: dec("98"), DealPct: dec("100")},
	}
	report := ValidateTotals(1, splits)
	if report.Balanced {
		t.Fatal("98% site pool must flag the report")
	}
	if report.Pools[0].Balanced != true || report.Pools[1].Balanced != false {
		t.Errorf("per-pool flags wrong: %+v", report.Pools)
	}
	warnings := report.Warnings()
	if len(warnings) != 1 {
		t.Fatalf("want exactly one warning, got %v", warnings)
	}
}

func TestValidateTotalsEmpty(t *testing.T) {
	report := ValidateTotals(1, nil)
	if report.Balanced {
		t.Error("a deal with no splits sums to 0, not 100")
	}
}
