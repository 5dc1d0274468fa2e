package mailer

import (
	"context"
	"log/slog"
	"net/smtp"
	"strings"
	"sync"
)

// Message is an outbound email. Delivery is fire-and-forget: callers
// log failures but never roll back state because of them.
type Message struct {
	To      string
	Subject string
	Body    string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender delivers through a plain SMTP relay.
type SMTPSender struct {
	Addr string
	From string
}

func (s SMTPSender) Send(_ context.Context, msg Message) error {
	payload := strings.Join([]string{
		"From: " + s.From,
		"To: " + msg.To,
		"Subject: " + msg.Subject,
		"",
		msg.Body,
	}, "\r\n")
	return smtp.SendMail(s.Addr, nil, s.From, []string{msg.To}, []byte(payload))
}

// LogSender writes deliveries to the log only. Used when no SMTP relay
// is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("mail delivery skipped, no smtp relay configured",
		"event", "mailer_log_delivery",
		"module", "internal/platform/mailer",
		"layer", "platform",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}

// MemorySender stores deliveries in memory for inspection in tests.
type MemorySender struct {
	mu         sync.Mutex
	deliveries []Message
}

func NewMemorySender() *MemorySender {
	return &MemorySender{}
}

func (m *MemorySender) Send(_ context.Context, msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries = append(m.deliveries, msg)
	return nil
}

func (m *MemorySender) Deliveries() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Message, len(m.deliveries))
	copy(out, m.deliveries)
	return out
}
