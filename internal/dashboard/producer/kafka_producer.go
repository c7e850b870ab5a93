package producer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	skafka "github.com/radieske/betting-admin-dashboard/internal/shared/kafka"
	"github.com/radieske/betting-admin-dashboard/pkg/contracts/events"
)

type KafkaPublisher struct {
	Writer *kafka.Writer
	Topic  string
}

func NewKafkaPublisher(w *kafka.Writer, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

// PublishBalanceAdjusted publica o evento com chave userId (ordem por usuário)
func (p *KafkaPublisher) PublishBalanceAdjusted(ctx context.Context, e events.BalanceAdjusted) error {
	if e.TsUnixMs == 0 {
		e.TsUnixMs = time.Now().UnixMilli()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return skafka.WriteJSON(ctx, p.Writer, e.UserID, b)
}

// Noop descarta os eventos quando KAFKA_BROKERS não está configurado
type Noop struct{}

func (Noop) PublishBalanceAdjusted(context.Context, events.BalanceAdjusted) error { return nil }
