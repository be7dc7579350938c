package idgen

import (
	"log"
)

// Init sets up the default node (supports multi-instance deploys via distinct
// node ids).
func Init(nodeID int64) {
	if nodeID < 0 || nodeID > 1023 {
		log.Fatalf("[IDGen] Invalid node id: %d", nodeID)
	}
	if err := InitNode("default", nodeID); err != nil {
		log.Fatalf("[IDGen] InitNode failed: %v", err)
	}
	log.Printf("[IDGen] Snowflake node initialized: nodeID=%d", nodeID)
}
