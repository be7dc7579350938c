package shard

import (
	"fmt"
	"hash/crc32"
)

// CRC32ShardStrategy shards by CRC32 of the record id.
type CRC32ShardStrategy struct {
	ShardCount uint32
}

func NewCRC32Strategy(count uint32) *CRC32ShardStrategy {
	return &CRC32ShardStrategy{ShardCount: count}
}

func (s *CRC32ShardStrategy) GetShard(id uint64) int {
	hash := crc32.ChecksumIEEE([]byte(fmt.Sprintf("%d", id)))
	return int(hash % s.ShardCount)
}
