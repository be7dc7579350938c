package dao

import (
	"fmt"
	"time"

	dealmodel "cre-commission-api/internal/model/deal"
	"cre-commission-api/internal/shard"
)

// AppendAudit writes one append-only history row. Sharded by payment split id
// so one split's trail always lands in the same monthly shard.
func (r *Dao) AppendAudit(e *dealmodel.SplitAuditLog) error {
	if err := r.checkDB(); err != nil {
		return fmt.Errorf("append audit failed: %w", err)
	}
	if e.ChangedAt.IsZero() {
		e.ChangedAt = time.Now()
	}
	table := shard.AuditShard.GetTable(e.PaymentSplitID, e.ChangedAt)
	return r.DB.Table(table).Create(e).Error
}

// ListAuditBySplit scans the split's shard across the last `months` monthly
// tables, newest rows first. Cross-table pagination is the caller's problem.
func (r *Dao) ListAuditBySplit(psplitID uint64, months int) ([]dealmodel.SplitAuditLog, error) {
	if err := r.checkDB(); err != nil {
		return nil, fmt.Errorf("list audit failed: %w", err)
	}
	if months <= 0 {
		months = 1
	}

	var out []dealmodel.SplitAuditLog
	now := time.Now()
	for i := 0; i < months; i++ {
		table := shard.AuditShard.GetTable(psplitID, now.AddDate(0, -i, 0))
		var tmp []dealmodel.SplitAuditLog
		err := r.DB.Table(table).
			Where("payment_split_id = ?", psplitID).
			Order("changed_at DESC").
			Find(&tmp).Error
		if err != nil {
			// monthly tables are provisioned on demand, a missing one is not fatal
			continue
		}
		out = append(out, tmp...)
	}
	return out, nil
}
