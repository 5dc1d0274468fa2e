package events

import "time"

// Envelope is the canonical event shape exchanged between contexts.
// Outbox rows and bus messages both carry this structure.
type Envelope struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	SourceContext string    `json:"source_context"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	Payload       any       `json:"payload"`
}
