package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event kinds. Downstream consumers subscribe by kind name.
const (
	KindPostCreated = "PostCreatedEvent"
	KindPostUpdated = "PostUpdatedEvent"
)

// StreamPostEvents is the stream all post domain events are published to.
const StreamPostEvents = "stream:post-events"

// ConsumerGroupKeywordNotifiers is the consumer group for keyword workers.
const ConsumerGroupKeywordNotifiers = "keyword-notifiers"

// DomainEvent is an immutable fact about a completed mutation. Events are
// staged inside the mutating transaction and published only after commit.
type DomainEvent interface {
	Kind() string
}

// PostCreatedEvent is emitted after a post and its detail are committed.
type PostCreatedEvent struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostCreatedEvent) Kind() string { return KindPostCreated }

// PostUpdatedEvent is emitted after a post update is committed. Content
// reflects the detail body after the update when one exists.
type PostUpdatedEvent struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	UpdatedAt time.Time `json:"updated_at"`
	Content   *string   `json:"content,omitempty"`
}

func (PostUpdatedEvent) Kind() string { return KindPostUpdated }

// Envelope is the wire form of a domain event on the stream.
type Envelope struct {
	EventID string          `json:"event_id"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

// NewEnvelope wraps a domain event for publishing, assigning a fresh event id.
func NewEnvelope(event DomainEvent) (Envelope, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal event: %w", err)
	}
	return Envelope{
		EventID: uuid.NewString(),
		Kind:    event.Kind(),
		Data:    data,
	}, nil
}

// ToMap converts the envelope to field-value pairs for Redis XADD.
func (e Envelope) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"event_id": e.EventID,
		"kind":     e.Kind,
		"data":     string(e.Data),
	}
}

// ParseEnvelope parses an envelope from Redis stream message values.
func ParseEnvelope(values map[string]interface{}) (Envelope, error) {
	kind, ok := values["kind"].(string)
	if !ok {
		return Envelope{}, fmt.Errorf("missing or invalid 'kind' field")
	}
	data, ok := values["data"].(string)
	if !ok {
		return Envelope{}, fmt.Errorf("missing or invalid 'data' field")
	}
	eventID, _ := values["event_id"].(string)

	return Envelope{
		EventID: eventID,
		Kind:    kind,
		Data:    json.RawMessage(data),
	}, nil
}

// Decode unmarshals the envelope payload into the typed event for its kind.
func (e Envelope) Decode() (DomainEvent, error) {
	switch e.Kind {
	case KindPostCreated:
		var event PostCreatedEvent
		if err := json.Unmarshal(e.Data, &event); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", e.Kind, err)
		}
		return event, nil
	case KindPostUpdated:
		var event PostUpdatedEvent
		if err := json.Unmarshal(e.Data, &event); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", e.Kind, err)
		}
		return event, nil
	default:
		return nil, fmt.Errorf("unknown event kind: %s", e.Kind)
	}
}
