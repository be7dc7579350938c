package dao

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"cre-commission-api/internal/constant"
	dealmodel "cre-commission-api/internal/model/deal"
)

func (r *Dao) ListPaymentSplits(paymentID uint64) ([]dealmodel.PaymentSplit, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list payment splits failed: %w", err)
	}

	var out []dealmodel.PaymentSplit
	err := r.DB.Where("payment_id = ?", paymentID).Order("broker_id ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}

func (r *Dao) ListBrokerSplits(dealID, brokerID uint64) ([]dealmodel.PaymentSplit, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list broker splits failed: %w", err)
	}

	var out []dealmodel.PaymentSplit
	err := r.DB.Where("deal_id = ? AND broker_id = ?", dealID, brokerID).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}

func (r *Dao) GetPaymentSplit(psplitID uint64) (*dealmodel.PaymentSplit, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get payment split failed: %w", err)
	}

	var m dealmodel.PaymentSplit
	err := r.DB.Where("psplit_id = ?", psplitID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *Dao) InsertPaymentSplit(ps *dealmodel.PaymentSplit) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert payment split failed: %w", err)
	}
	return r.DB.Create(ps).Error
}

// UpdatePaymentSplit is an optimistic write keyed on the loaded version.
func (r *Dao) UpdatePaymentSplit(ps *dealmodel.PaymentSplit) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update payment split failed: %w", err)
	}

	res := r.DB.Model(&dealmodel.PaymentSplit{}).
		Where("psplit_id = ? AND version = ?", ps.PSplitID, ps.Version).
		Updates(map[string]interface{}{
			"origination_amt": ps.OriginationAmt,
			"site_amt":        ps.SiteAmt,
			"deal_amt":        ps.DealAmt,
			"total":           ps.Total,
			"paid":            ps.Paid,
			"paid_at":         ps.PaidAt,
			"manual_override": ps.ManualOverride,
			"override_reason": ps.OverrideReason,
			"overridden_by":   ps.OverriddenBy,
			"overridden_at":   ps.OverriddenAt,
			"locked":          ps.Locked,
			"version":         ps.Version + 1,
		})
	if res.Error != nil {
		return fmt.Errorf("update failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return constant.NewErrorf(constant.CodeVersionConflict, "payment split %d", ps.PSplitID)
	}
	ps.Version++
	return nil
}

func (r *Dao) DeleteUnlockedSplits(paymentID uint64) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("delete unlocked splits failed: %w", err)
	}
	return r.DB.Where("payment_id = ? AND locked = ?", paymentID, false).
		Delete(&dealmodel.PaymentSplit{}).Error
}

func (r *Dao) DeleteSplitsByPayment(paymentID uint64) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("delete splits by payment failed: %w", err)
	}
	return r.DB.Where("payment_id = ?", paymentID).Delete(&dealmodel.PaymentSplit{}).Error
}

func (r *Dao) DeleteUnpaidBrokerSplits(dealID, brokerID uint64) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("delete unpaid broker splits failed: %w", err)
	}
	return r.DB.Where("deal_id = ? AND broker_id = ? AND paid = ? AND locked = ?",
		dealID, brokerID, false, false).
		Delete(&dealmodel.PaymentSplit{}).Error
}
