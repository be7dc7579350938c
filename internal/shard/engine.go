package shard

import (
	"fmt"
	"log"
	"time"
)

// ShardEngine routes append-only rows to month-partitioned tables.
type ShardEngine struct {
	BaseTable  string
	ShardCount uint32
	Strategy   ShardStrategy
}

func NewShardEngine(base string, count uint32) *ShardEngine {
	return &ShardEngine{
		BaseTable:  base,
		ShardCount: count,
		Strategy:   NewCRC32Strategy(count),
	}
}

// GetTable resolves the table for a record id at time t.
func (e *ShardEngine) GetTable(id uint64, t time.Time) string {
	if t.IsZero() || t.Year() < 2000 {
		log.Printf("[ShardEngine] invalid time %v, using now", t)
		t = time.Now()
	}
	month := t.Format("200601")
	shard := e.Strategy.GetShard(id)
	return fmt.Sprintf("%s_%s_p%d", e.BaseTable, month, shard)
}

// MonthTables lists every shard table for the month of t. Used by history
// reads that scan a whole month regardless of shard.
func (e *ShardEngine) MonthTables(t time.Time) []string {
	month := t.Format("200601")
	out := make([]string, 0, e.ShardCount)
	for i := uint32(0); i < e.ShardCount; i++ {
		out = append(out, fmt.Sprintf("%s_%s_p%d", e.BaseTable, month, i))
	}
	return out
}

// RecentTables lists shard tables for the last n months including the current
// one, newest first.
func (e *ShardEngine) RecentTables(now time.Time, n int) []string {
	var out []string
	for i := 0; i < n; i++ {
		out = append(out, e.MonthTables(now.AddDate(0, -i, 0))...)
	}
	return out
}
