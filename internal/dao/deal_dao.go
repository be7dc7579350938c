package dao

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	dealmodel "cre-commission-api/internal/model/deal"
)

func (r *Dao) GetDeal(id uint64) (*dealmodel.Deal, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get deal failed: %w", err)
	}

	var m dealmodel.Deal
	err := r.DB.Where("deal_id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *Dao) InsertDeal(d *dealmodel.Deal) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert deal failed: %w", err)
	}
	return r.DB.Create(d).Error
}

func (r *Dao) UpdateDeal(d *dealmodel.Deal) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update deal failed: %w", err)
	}
	return r.DB.Save(d).Error
}

func (r *Dao) ListPayments(dealID uint64) ([]dealmodel.Payment, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list payments failed: %w", err)
	}

	var out []dealmodel.Payment
	err := r.DB.Where("deal_id = ?", dealID).Order("seq ASC").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return out, nil
}

func (r *Dao) GetPayment(paymentID uint64) (*dealmodel.Payment, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("get payment failed: %w", err)
	}

	var m dealmodel.Payment
	err := r.DB.Where("payment_id = ?", paymentID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return &m, nil
}

func (r *Dao) InsertPayment(p *dealmodel.Payment) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("insert payment failed: %w", err)
	}
	return r.DB.Create(p).Error
}

func (r *Dao) UpdatePayment(p *dealmodel.Payment) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("update payment failed: %w", err)
	}
	return r.DB.Save(p).Error
}

func (r *Dao) DeletePayment(paymentID uint64) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("delete payment failed: %w", err)
	}
	return r.DB.Where("payment_id = ?", paymentID).Delete(&dealmodel.Payment{}).Error
}
