package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	TypeOrderCreated   = "OrderCreated"
	TypeProductChanged = "ProductChanged"
	TypeSettingChanged = "SettingChanged"
)

const (
	TopicOrderCreated    = "order.created"
	TopicProductsChanged = "catalog.products.changed"
	TopicSettingsChanged = "settings.changed"
)

// Envelope wraps every message on the change feed.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// Publisher is satisfied by kafka.Producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

func New(eventType, producer, correlationID string, payload any) (Envelope, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      producer,
		CorrelationID: correlationID,
		Payload:       b,
	}, nil
}

// Emit publishes env keyed by its correlation id so one entity keeps ordering
// within a partition.
func Emit(p Publisher, env Envelope) error {
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	p.Publish([]byte(env.CorrelationID), b,
		kafkago.Header{Key: "x-event-type", Value: []byte(env.EventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
	return nil
}

func Decode[T any](env Envelope) (T, error) {
	var t T
	err := json.Unmarshal(env.Payload, &t)
	return t, err
}

type ProductChangedPayload struct {
	ProductIDs []string `json:"product_ids"`
	Reason     string   `json:"reason"`
}

type SettingChangedPayload struct {
	Key string `json:"key"`
}
