package shard

import (
	"testing"
	"time"
)

func TestCRC32ShardStrategy(t *testing.T) {
	strategy := NewCRC32Strategy(4)
	splitID := uint64(123456789)
	shard := strategy.GetShard(splitID)
	if shard < 0 || shard >= 4 {
		t.Errorf("Shard out of range: %d", shard)
	}
}

func TestShardEngine_GetTable(t *testing.T) {
	engine := NewShardEngine("split_audit_log", 4)
	splitID := uint64(987654321)
	timestamp := time.Date(2026, 8, 12, 12, 0, 0, 0, time.Local)
	table := engine.GetTable(splitID, timestamp)

	expectedPrefix := "split_audit_log_202608_p"
	if len(table) < len(expectedPrefix) || table[:len(expectedPrefix)] != expectedPrefix {
		t.Errorf("Unexpected table name: %s", table)
	}
}

func TestShardEngine_RecentTables(t *testing.T) {
	engine := NewShardEngine("split_audit_log", 2)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tables := engine.RecentTables(now, 2)
	if len(tables) != 4 {
		t.Fatalf("expected 4 tables, got %d", len(tables))
	}
	if tables[0] != "split_audit_log_202603_p0" {
		t.Errorf("unexpected first table: %s", tables[0])
	}
	if tables[2] != "split_audit_log_202602_p0" {
		t.Errorf("unexpected previous-month table: %s", tables[2])
	}
}
