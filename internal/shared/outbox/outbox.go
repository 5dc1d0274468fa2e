package outbox

import "time"

// Outbox row persisted inside the same DB transaction as state changes.
// Worker relays read pending rows and publish them to the message bus,
// so notification side effects always run after commit.
type Message struct {
	OutboxID   string
	EventType  string
	Payload    []byte
	Status     string // pending, published, failed
	RetryCount int
	CreatedAt  time.Time
}
