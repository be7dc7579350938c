package mq

import (
	"encoding/json"
	"log"

	"github.com/streadway/amqp"

	"cre-commission-api/internal/dal"
)

// PaymentLifecycleEvent announces a lifecycle transition to downstream
// reconciliation/reporting consumers.
type PaymentLifecycleEvent struct {
	PaymentID  uint64 `json:"payment_id"`
	DealID     uint64 `json:"deal_id"`
	Transition string `json:"transition"` // approved | reverted | disbursed
	Actor      uint64 `json:"actor"`
	SyncID     string `json:"sync_id,omitempty"`
	OccurredAt int64  `json:"occurred_at"`
}

// SplitsSyncedEvent summarizes one auto-sync run.
type SplitsSyncedEvent struct {
	DealID     uint64 `json:"deal_id"`
	Updated    int    `json:"updated"`
	Unchanged  int    `json:"unchanged"`
	Skipped    int    `json:"skipped"`
	Failed     int    `json:"failed"`
	OccurredAt int64  `json:"occurred_at"`
}

func publish(routingKey string, v interface{}) error {
	if dal.RabbitCh == nil {
		return nil
	}
	b, _ := json.Marshal(v)
	err := dal.RabbitCh.Publish(
		"commission_events",
		routingKey,
		false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         b,
		},
	)
	if err != nil {
		log.Printf("publish %s failed: %v", routingKey, err)
	}
	return err
}

func PublishPaymentLifecycle(evt PaymentLifecycleEvent) error {
	return publish("payment."+evt.Transition, evt)
}

func PublishSplitsSynced(evt SplitsSyncedEvent) error {
	return publish("splits.synced", evt)
}
