package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/jhoicas/Personal-api/internal/domain/entity"
)

// auditMessage forma en la que viaja una entrada de bitácora por el tópico.
type auditMessage struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Action     string         `json:"action"`
	Actor      string         `json:"actor"`
	Timestamp  time.Time      `json:"timestamp"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// messageWriter subconjunto de *kafka.Writer usado por el publicador.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// AuditPublisher envía las entradas de bitácora confirmadas a un tópico de Kafka.
// La clave del mensaje es el id de la entidad, así los eventos de una misma entidad
// conservan su orden dentro de la partición.
type AuditPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewAuditPublisher crea el publicador contra los brokers indicados.
func NewAuditPublisher(brokers []string, topic string) *AuditPublisher {
	return &AuditPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			WriteTimeout: 10 * time.Second,
		},
		timeout: 5 * time.Second,
	}
}

// Publish implementa ports.AuditPublisher.
func (p *AuditPublisher) Publish(ctx context.Context, entries []*entity.AuditLog) error {
	if p == nil || p.writer == nil || len(entries) == 0 {
		return nil
	}
	msgs, err := encodeEntries(entries)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka audit publish: %w", err)
	}
	return nil
}

// Close libera las conexiones del writer.
func (p *AuditPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func encodeEntries(entries []*entity.AuditLog) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		value, err := json.Marshal(auditMessage{
			ID:         e.ID,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Action:     string(e.Action),
			Actor:      e.Actor,
			Timestamp:  e.Timestamp.UTC(),
			Payload:    e.Payload,
		})
		if err != nil {
			return nil, fmt.Errorf("kafka audit encode %s: %w", e.ID, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.EntityID),
			Value: value,
			Time:  e.Timestamp,
			Headers: []kafka.Header{
				{Key: "entity_type", Value: []byte(e.EntityType)},
				{Key: "action", Value: []byte(e.Action)},
			},
		})
	}
	return msgs, nil
}
