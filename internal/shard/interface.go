package shard

// ShardStrategy picks a shard index for a record id.
type ShardStrategy interface {
	GetShard(id uint64) int
}
