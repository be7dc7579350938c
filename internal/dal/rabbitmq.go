package dal

import (
	"log"

	"cre-commission-api/internal/config"

	"github.com/streadway/amqp"
)

var RabbitConn *amqp.Connection
var RabbitCh *amqp.Channel

func InitRabbitMQ() {
	url := config.C.RabbitMQ.URL
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Fatalf("rabbitmq dial failed: %v", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("rabbitmq channel failed: %v", err)
	}

	// exchange & queues for downstream reconciliation consumers
	if err := ch.ExchangeDeclare("commission_events", "topic", true, false, false, false, nil); err != nil {
		log.Fatalf("exchange declare failed: %v", err)
	}
	if _, err := ch.QueueDeclare("payment_lifecycle", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare payment_lifecycle failed: %v", err)
	}
	if _, err := ch.QueueDeclare("splits_synced", true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare splits_synced failed: %v", err)
	}
	if err := ch.QueueBind("payment_lifecycle", "payment.*", "commission_events", false, nil); err != nil {
		log.Fatalf("queue bind payment_lifecycle failed: %v", err)
	}
	if err := ch.QueueBind("splits_synced", "splits.synced", "commission_events", false, nil); err != nil {
		log.Fatalf("queue bind splits_synced failed: %v", err)
	}

	RabbitConn = conn
	RabbitCh = ch
}
