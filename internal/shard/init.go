package shard

var (
	AuditShard *ShardEngine
)

// InitShardEngines wires the audit-trail shard engine. The audit log is the
// only high-volume append-only table in this system.
func InitShardEngines(auditShards int) {
	if auditShards <= 0 {
		auditShards = 4
	}
	AuditShard = NewShardEngine("split_audit_log", uint32(auditShards))
}
