package dealmodel

import (
	"time"

	"github.com/shopspring/decimal"
)

// Audit change types.
const (
	ChangeAutoSync            = "auto_sync"
	ChangeManualOverride      = "manual_override"
	ChangeCommissionChange    = "commission_change"
	ChangeLifecycleTransition = "lifecycle_transition"
)

// SplitAuditLog is one append-only history row. The table is month-sharded;
// rows are addressed through the shard engine, never by gorm's default name.
type SplitAuditLog struct {
	ID             uint64          `gorm:"column:id;primaryKey;not null" json:"id"`
	PaymentSplitID uint64          `gorm:"column:payment_split_id;not null" json:"paymentSplitId"` // 0 for deal-level entries
	PaymentID      uint64          `gorm:"column:payment_id;not null" json:"paymentId"`
	DealID         uint64          `gorm:"column:deal_id;not null" json:"dealId"`
	ChangeType     string          `gorm:"column:change_type;type:varchar(30);not null" json:"changeType"`
	OldTotal       decimal.Decimal `gorm:"column:old_total;type:decimal(18,4);not null" json:"oldTotal"`
	NewTotal       decimal.Decimal `gorm:"column:new_total;type:decimal(18,4);not null" json:"newTotal"`
	Reason         string          `gorm:"column:reason;type:varchar(255)" json:"reason"`
	ChangedBy      uint64          `gorm:"column:changed_by;not null" json:"changedBy"`
	ChangedAt      time.Time       `gorm:"column:changed_at;not null" json:"changedAt"`
}
