package store

import (
	dealmodel "cre-commission-api/internal/model/deal"
)

// Store is the persistence surface the services run against. The production
// implementation is dao.Dao over gorm; tests substitute an in-memory store.
// Updates on versioned rows (commission splits, payment splits) are optimistic:
// a stale Version fails with CodeVersionConflict and persists nothing.
type Store interface {
	// Tx runs fn against a transaction-scoped store. Used so a payment's
	// delete-then-insert regeneration is never observable half done.
	Tx(fn func(Store) error) error

	GetDeal(id uint64) (*dealmodel.Deal, error)
	InsertDeal(d *dealmodel.Deal) error
	UpdateDeal(d *dealmodel.Deal) error

	ListCommissionSplits(dealID uint64) ([]dealmodel.CommissionSplit, error)
	GetCommissionSplit(dealID, brokerID uint64) (*dealmodel.CommissionSplit, error)
	InsertCommissionSplit(cs *dealmodel.CommissionSplit) error
	UpdateCommissionSplit(cs *dealmodel.CommissionSplit) error
	DeleteCommissionSplit(splitID uint64) error

	ListPayments(dealID uint64) ([]dealmodel.Payment, error)
	GetPayment(paymentID uint64) (*dealmodel.Payment, error)
	InsertPayment(p *dealmodel.Payment) error
	UpdatePayment(p *dealmodel.Payment) error
	DeletePayment(paymentID uint64) error

	ListPaymentSplits(paymentID uint64) ([]dealmodel.PaymentSplit, error)
	ListBrokerSplits(dealID, brokerID uint64) ([]dealmodel.PaymentSplit, error)
	GetPaymentSplit(psplitID uint64) (*dealmodel.PaymentSplit, error)
	InsertPaymentSplit(ps *dealmodel.PaymentSplit) error
	UpdatePaymentSplit(ps *dealmodel.PaymentSplit) error
	DeleteUnlockedSplits(paymentID uint64) error
	DeleteSplitsByPayment(paymentID uint64) error
	DeleteUnpaidBrokerSplits(dealID, brokerID uint64) error

	AppendAudit(e *dealmodel.SplitAuditLog) error
	ListAuditBySplit(psplitID uint64, months int) ([]dealmodel.SplitAuditLog, error)
}
