// Package events publishes tenant lifecycle events for downstream
// consumers (audit, analytics). Publishing happens after the synchronous
// cache invalidation and is never part of the correctness path.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeTenantCreated     = "tenant.created"
	TypeTenantUpdated     = "tenant.updated"
	TypeTenantDeactivated = "tenant.deactivated"
)

// TenantEvent is the wire payload for a tenant lifecycle change.
type TenantEvent struct {
	Type      string    `json:"type"`
	TenantID  uuid.UUID `json:"tenant_id"`
	Subdomain string    `json:"subdomain"`
	At        time.Time `json:"at"`
}

// Publisher emits tenant lifecycle events.
type Publisher interface {
	PublishTenantEvent(ctx context.Context, ev TenantEvent) error
}

// KafkaPublisher writes events to a Kafka topic, keyed by tenant id so a
// tenant's events stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

func (p *KafkaPublisher) PublishTenantEvent(ctx context.Context, ev TenantEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal tenant event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.TenantID.String()),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishTenantEvent(context.Context, TenantEvent) error { return nil }
