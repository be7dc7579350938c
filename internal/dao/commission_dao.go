package dao

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cre-commission-api/internal/constant"
	dealmodel "cre-commission-api/internal/model/deal"
)

func (r *Dao) ListCommissionSplits(dealID uint64) ([]dealmodel.CommissionSplit, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list commission splits failed: %w", err)
	}

	var out []dealmodel.CommissionSplit
	err := r.DB.Where("deal_id = ?", dealID).Order("broker_id ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}

func (r *Dao) GetCommissionSplit(dealID, brokerID uint64) (*dealmodel.CommissionSplit, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get commission split failed: %w", err)
	}

	var m dealmodel.CommissionSplit
	err := r.DB.Where("deal_id = ? AND broker_id = ?", dealID, brokerID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *Dao) InsertCommissionSplit(cs *dealmodel.CommissionSplit) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert commission split failed: %w", err)
	}
	return r.DB.Create(cs).Error
}

// UpdateCommissionSplit is an optimistic write: the row must still carry the
// version the caller loaded.
func (r *Dao) UpdateCommissionSplit(cs *dealmodel.CommissionSplit) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update commission split failed: %w", err)
	}

	res := r.DB.Model(&dealmodel.CommissionSplit{}).
		Where("split_id = ? AND version = ?", cs.SplitID, cs.Version).
		Updates(map[string]interface{}{
			"origination_pct": cs.OriginationPct,
			"site_pct":        cs.SitePct,
			"deal_pct":        cs.DealPct,
			"origination_amt": cs.OriginationAmt,
			"site_amt":        cs.SiteAmt,
			"deal_amt":        cs.DealAmt,
			"total":           cs.Total,
			"version":         cs.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("update failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return constant.NewErrorf(constant.CodeVersionConflict, "commission split %d", cs.SplitID)
	}
	cs.Version++
	return nil
}

func (r *Dao) DeleteCommissionSplit(splitID uint64) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("delete commission split failed: %w", err)
	}
	return r.DB.Where("split_id = ?", splitID).Delete(&dealmodel.CommissionSplit{}).Error
}
